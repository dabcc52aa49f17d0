package cache

import (
	"context"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// entryExt is the file extension of cache entries.
const entryExt = ".entry"

// headerSize is the length of the expiry header that precedes the artifact
// bytes in an entry file: a big-endian Unix nanosecond timestamp, 0 for
// entries that never expire.
const headerSize = 8

// FileCache stores one file per entry under dir, fanned out into
// subdirectories named after the first two hex digits of the key hash.
// Entries are written to a temporary file and renamed into place, so
// concurrent readers never see a partial artifact.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens (creating if needed) a file cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	data, live := c.decode(raw)
	if !live {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}
	raw := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint64(raw, uint64(expires))
	copy(raw[headerSize:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	return c.sweep(nil)
}

// Prune removes expired and unreadable entries and returns how many were
// removed.
func (c *FileCache) Prune() (int, error) {
	return c.sweep(func(raw []byte) bool {
		_, live := c.decode(raw)
		return !live
	})
}

// sweep removes the entries for which drop returns true, or every entry
// when drop is nil, then any fan-out directory left empty.
func (c *FileCache) sweep(drop func(raw []byte) bool) (int, error) {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return 0, nil
	}
	removed := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, entryExt) {
			return nil
		}
		if drop != nil {
			raw, err := os.ReadFile(path)
			if err == nil && !drop(raw) {
				return nil
			}
		}
		if os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, err
	}

	dirs, err := os.ReadDir(c.dir)
	if err != nil {
		return removed, err
	}
	for _, d := range dirs {
		if d.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, d.Name())) // fails unless empty
		}
	}
	return removed, nil
}

// decode splits an entry file into its artifact and reports whether the
// entry is well formed and unexpired.
func (c *FileCache) decode(raw []byte) ([]byte, bool) {
	if len(raw) < headerSize {
		return nil, false
	}
	expires := int64(binary.BigEndian.Uint64(raw))
	if expires != 0 && c.now().UnixNano() >= expires {
		return nil, false
	}
	return raw[headerSize:], true
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
