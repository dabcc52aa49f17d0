package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DefaultKeyer builds readable keys of the form
// "artifact:<format>:<sha256 of every input>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%t\x00%s\x00%t",
		recordsHash, opts.Format, opts.ConfigHash, opts.Header, opts.Engine, opts.Legacy)
	return "artifact:" + opts.Format + ":" + hex.EncodeToString(h.Sum(nil))
}

// scopedKeyer prefixes every key of an inner Keyer.
type scopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a Keyer that prepends prefix to inner's keys, so
// several deployments can share one backend:
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
//
// A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{inner: inner, prefix: prefix}
}

func (k scopedKeyer) ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(recordsHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the [Hash] of v's JSON encoding. Struct fields encode in
// declaration order, so equal configurations hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash json: %w", err)
	}
	return Hash(data), nil
}
