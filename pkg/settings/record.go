package settings

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

var (
	ErrLayoutKey    = errors.New("settings: layout references an undeclared message key")
	ErrRecordLength = errors.New("settings: record is longer than its layout")
)

// FormatHex renders a 24-bit RGB value as upper-case RRGGBB.
func FormatHex(rgb uint32) string {
	return fmt.Sprintf("%06X", rgb&0xFFFFFF)
}

// ParseHex parses an RRGGBB string into a 24-bit RGB value.
func ParseHex(hex string) (uint32, error) {
	if !descriptor.IsHexColor(hex) {
		return 0, ErrInvalidColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, ErrInvalidColor
	}
	return uint32(v), nil
}

// ColorByte quantises a 24-bit RGB value to the watch's 8-bit ARGB color:
// two bits of opaque alpha, then two bits per channel.
func ColorByte(rgb uint32) byte {
	r := byte(rgb>>16) >> 6
	g := byte(rgb>>8) >> 6
	b := byte(rgb) >> 6
	return 0xC0 | r<<4 | g<<2 | b
}

// ColorFromByte expands an 8-bit ARGB color back to 24-bit RGB.
func ColorFromByte(argb byte) uint32 {
	r := uint32((argb>>4)&0x3) * 0x55
	g := uint32((argb>>2)&0x3) * 0x55
	b := uint32(argb&0x3) * 0x55
	return r<<16 | g<<8 | b
}

// Pack encodes s as the record the watch application persists: one byte per
// key in layout order, 0/1 for toggles and an 8-bit ARGB color for pickers.
// Keys missing from s are packed with their defaults.
func Pack(d descriptor.Descriptor, s Settings, layout []string) ([]byte, error) {
	defaults := Defaults(d)
	out := make([]byte, 0, len(layout))
	for _, key := range layout {
		field, ok := d.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLayoutKey, key)
		}
		value, ok := s[key]
		if !ok {
			value = defaults[key]
		}
		switch field.Type {
		case descriptor.FieldTypeToggle:
			on, err := toggleValue(value)
			if err != nil {
				return nil, &ValueError{Key: key, Value: value, Err: err}
			}
			if on {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		case descriptor.FieldTypeColor:
			hex, err := colorValue(value)
			if err != nil {
				return nil, &ValueError{Key: key, Value: value, Err: err}
			}
			rgb, err := ParseHex(hex)
			if err != nil {
				return nil, &ValueError{Key: key, Value: value, Err: err}
			}
			out = append(out, ColorByte(rgb))
		}
	}
	return out, nil
}

// Unpack decodes a persisted record. Values start from the descriptor
// defaults and are overwritten for as many bytes as the record holds, so a
// record written by an older build keeps defaults for keys appended later.
func Unpack(d descriptor.Descriptor, layout []string, data []byte) (Settings, error) {
	if len(data) > len(layout) {
		return nil, fmt.Errorf("%w: %d bytes for %d keys", ErrRecordLength, len(data), len(layout))
	}
	out := Defaults(d)
	for idx, key := range layout {
		field, ok := d.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLayoutKey, key)
		}
		if idx >= len(data) {
			continue
		}
		switch field.Type {
		case descriptor.FieldTypeToggle:
			out[key] = data[idx] == 1
		case descriptor.FieldTypeColor:
			out[key] = FormatHex(ColorFromByte(data[idx]))
		}
	}
	return out, nil
}
