package acceptance

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an IR encoding.
type Format string

// Supported IR formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat reports an IR format other than json or yaml.
var ErrUnknownFormat = errors.New("unknown IR format")

// ParseFormat returns the Format named by s ("json", "yaml", or "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath returns the Format implied by a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// SerializeIR encodes a Feature as indented JSON or as YAML.
func SerializeIR(feature *Feature, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(feature, "", "  ")
	case FormatYAML:
		return yaml.Marshal(feature)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// DeserializeIR decodes a Feature from JSON or YAML.
func DeserializeIR(data []byte, format Format) (*Feature, error) {
	var feature Feature
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &feature)
	case FormatYAML:
		err = yaml.Unmarshal(data, &feature)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s IR: %w", format, err)
	}
	return &feature, nil
}
