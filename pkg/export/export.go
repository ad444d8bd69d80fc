// Package export encodes descriptors in the formats the configuration host
// and its build tooling accept.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

// Format selects the encoding.
type Format string

const (
	// FormatJSON emits the host's JSON array.
	FormatJSON Format = "json"
	// FormatYAML emits the same array as YAML.
	FormatYAML Format = "yaml"
	// FormatJS emits a CommonJS module exporting the array, the layout the
	// host's bundler expects for src/js/config.js.
	FormatJS Format = "js"
)

// ErrUnknownFormat is returned for formats other than the Format* constants.
var ErrUnknownFormat = errors.New("export: unknown format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatJS}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJS, "javascript":
		return FormatJS, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, raw)
	}
}

// Encode writes the descriptor's field sequence to w.
func Encode(w io.Writer, d descriptor.Descriptor, format Format) error {
	data, err := Marshal(d, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the encoded field sequence.
func Marshal(d descriptor.Descriptor, format Format) ([]byte, error) {
	fields := d.Fields
	if fields == nil {
		fields = []descriptor.Field{}
	}
	switch format {
	case FormatJSON:
		data, err := marshalJSON(fields, "")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fields); err != nil {
			return nil, fmt.Errorf("export: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("export: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJS:
		data, err := marshalJSON(fields, "")
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString("module.exports = ")
		buf.Write(data)
		buf.WriteString(";\n")
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func marshalJSON(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
