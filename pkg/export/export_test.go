package export_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clayconfig/pkg/catalog"
	"github.com/goliatone/go-clayconfig/pkg/export"
	"github.com/goliatone/go-clayconfig/pkg/presets"
	"github.com/goliatone/go-clayconfig/pkg/testsupport"
)

func TestMarshal_Goldens(t *testing.T) {
	tests := []struct {
		format export.Format
		golden string
	}{
		{export.FormatJSON, "bubble-watch.json.golden"},
		{export.FormatJS, "bubble-watch.js.golden"},
	}
	for _, tc := range tests {
		t.Run(string(tc.format), func(t *testing.T) {
			got, err := export.Marshal(presets.BubbleWatch(), tc.format)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			testsupport.AssertGolden(t, filepath.Join("testdata", tc.golden), got)
		})
	}
}

func TestMarshal_RoundTripsThroughCatalogParser(t *testing.T) {
	for _, format := range export.Formats() {
		t.Run(string(format), func(t *testing.T) {
			want := presets.PlanetaryClockB()
			data, err := export.Marshal(want, format)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, err := catalog.ParseFile(want.Name+"."+string(format), data)
			if err != nil {
				t.Fatalf("parse: %v\n%s", err, data)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Encode(&buf, presets.PlanetaryClockA(), export.FormatJS); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("module.exports = [")) {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]export.Format{
		"":           export.FormatJSON,
		"JSON":       export.FormatJSON,
		"yml":        export.FormatYAML,
		" yaml ":     export.FormatYAML,
		"javascript": export.FormatJS,
	}
	for raw, want := range tests {
		got, err := export.ParseFormat(raw)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := export.ParseFormat("xml"); !errors.Is(err, export.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := export.Marshal(presets.BubbleWatch(), "xml"); !errors.Is(err, export.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
