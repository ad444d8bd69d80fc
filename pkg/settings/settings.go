// Package settings interprets the mapping the configuration host returns on
// save: one entry per message key, booleans for toggles and RRGGBB strings for
// color pickers. It also covers the JSON Schema of that mapping and the packed
// record the watch application persists.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

var (
	ErrInvalidToggle = errors.New("settings: toggle value must be a boolean or 0/1")
	ErrInvalidColor  = errors.New("settings: color value must be RRGGBB or an integer in 0..0xFFFFFF")
	ErrUnknownKey    = errors.New("settings: message key not declared by descriptor")
)

// ValueError reports a payload entry that does not fit its field.
type ValueError struct {
	Key   string
	Value any
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("settings: %s: invalid value %v: %v", e.Key, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// Settings maps message keys to their values: bool for toggles, upper-case
// RRGGBB strings for colors.
type Settings map[string]any

// Bool returns the toggle value stored under key.
func (s Settings) Bool(key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

// Color returns the color value stored under key.
func (s Settings) Color(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Defaults returns the mapping the host would emit if the user saved without
// changing anything.
func Defaults(d descriptor.Descriptor) Settings {
	out := make(Settings)
	for _, field := range d.Configurable() {
		switch field.Type {
		case descriptor.FieldTypeToggle:
			out[field.MessageKey] = field.Enabled()
		case descriptor.FieldTypeColor:
			out[field.MessageKey] = strings.ToUpper(field.Text())
		}
	}
	return out
}

// Parse decodes a JSON settings object and applies it over the defaults.
func Parse(d descriptor.Descriptor, data []byte) (Settings, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("settings: decode payload: %w", err)
	}
	return Apply(d, payload)
}

// Apply overlays payload on the descriptor defaults. Keys missing from the
// payload keep their default and keys the descriptor does not declare are
// ignored, matching how the watch application only reads the keys it knows.
func Apply(d descriptor.Descriptor, payload map[string]any) (Settings, error) {
	out := Defaults(d)
	for _, field := range d.Configurable() {
		raw, ok := payload[field.MessageKey]
		if !ok || raw == nil {
			continue
		}
		value, err := coerce(field, raw)
		if err != nil {
			return nil, &ValueError{Key: field.MessageKey, Value: raw, Err: err}
		}
		out[field.MessageKey] = value
	}
	return out, nil
}

// Unknown lists payload keys the descriptor does not declare.
func Unknown(d descriptor.Descriptor, payload map[string]any) []string {
	declared := make(map[string]struct{})
	for _, key := range d.MessageKeys() {
		declared[key] = struct{}{}
	}
	var out []string
	for key := range payload {
		if _, ok := declared[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func coerce(field descriptor.Field, raw any) (any, error) {
	switch field.Type {
	case descriptor.FieldTypeToggle:
		return toggleValue(raw)
	case descriptor.FieldTypeColor:
		return colorValue(raw)
	default:
		return nil, ErrUnknownKey
	}
}

func toggleValue(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return false, ErrInvalidToggle
		}
		return n == 1, nil
	default:
		n, ok := integer(raw)
		if !ok {
			return false, ErrInvalidToggle
		}
		return n == 1, nil
	}
}

func colorValue(raw any) (string, error) {
	if s, ok := raw.(string); ok {
		if !descriptor.IsHexColor(s) {
			return "", ErrInvalidColor
		}
		return strings.ToUpper(s), nil
	}
	if num, ok := raw.(json.Number); ok {
		n, err := num.Int64()
		if err != nil {
			return "", ErrInvalidColor
		}
		raw = n
	}
	n, ok := integer(raw)
	if !ok || n < 0 || n > 0xFFFFFF {
		return "", ErrInvalidColor
	}
	return FormatHex(uint32(n)), nil
}

func integer(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}
