package style

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/flowviz/pkg/errors"
)

// Supported configuration file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFromPath picks a configuration format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads a configuration file and layers it over base.
func Load(path string, base Config, logger *log.Logger) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return base, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Decode(bytes.NewReader(data), format, base, logger)
}

// Decode reads a configuration document and layers it over base.
//
// Fields absent from the document keep their base values. Curve tables go
// through [Config.WithCurves]: an invalid table is logged and the base table
// kept. Any other invalid field fails the whole call.
func Decode(r io.Reader, format string, base Config, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Tables start nil so the decoder allocates fresh slices instead of
	// writing into base's backing arrays.
	next := base
	next.Sizes, next.Angles, next.Alphas, next.Thickness = nil, nil, nil, nil
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&next); err != nil {
			return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&next); err != nil && err != io.EOF {
			return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return base, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}

	if next.Sizes == nil {
		next.Sizes = slices.Clone(base.Sizes)
	}
	angles := orBase(next.Angles, base.Angles)
	alphas := orBase(next.Alphas, base.Alphas)
	thickness := orBase(next.Thickness, base.Thickness)
	next.Angles, next.Alphas, next.Thickness = base.Angles, base.Alphas, base.Thickness
	next, err := next.WithCurves(angles, alphas, thickness)
	if err != nil {
		logger.Warn("kept previous curve tables", "err", errors.UserMessage(err))
	}

	if err := next.Validate(); err != nil {
		return base, err
	}
	return next, nil
}

// orBase returns decoded, or base when the document left the table out.
func orBase[T any](decoded, base []T) []T {
	if decoded == nil {
		return base
	}
	return decoded
}
