package settings_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clayconfig/pkg/presets"
	"github.com/goliatone/go-clayconfig/pkg/settings"
)

func TestDefaults(t *testing.T) {
	got := settings.Defaults(presets.BubbleWatch())
	want := settings.Settings{
		"ConfigShowSeconds":                  true,
		"ConfigShowBubbles":                  true,
		"ConfigVibrateOnBluetoothDisconnect": false,
		"ConfigForegroundColor":              "FFFFFF",
		"ConfigBackgroundColor":              "000000",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_OverlaysPayload(t *testing.T) {
	payload := `{
		"ConfigShowSeconds": false,
		"ConfigShowBubbles": 0,
		"ConfigVibrateOnBluetoothDisconnect": 1,
		"ConfigForegroundColor": "ff5500",
		"ConfigBackgroundColor": 170,
		"ConfigSomethingElse": "ignored"
	}`
	got, err := settings.Parse(presets.BubbleWatch(), []byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := settings.Settings{
		"ConfigShowSeconds":                  false,
		"ConfigShowBubbles":                  false,
		"ConfigVibrateOnBluetoothDisconnect": true,
		"ConfigForegroundColor":              "FF5500",
		"ConfigBackgroundColor":              "0000AA",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}

	if on, ok := got.Bool("ConfigVibrateOnBluetoothDisconnect"); !ok || !on {
		t.Fatalf("Bool accessor failed")
	}
	if hex, ok := got.Color("ConfigForegroundColor"); !ok || hex != "FF5500" {
		t.Fatalf("Color accessor failed: %q", hex)
	}
}

func TestApply_MissingKeysKeepDefaults(t *testing.T) {
	got, err := settings.Apply(presets.PlanetaryClockB(), map[string]any{"ConfigInverted": true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := settings.Settings{"ConfigInverted": true, "ConfigShowBubbles": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_NumericTogglesFollowWatchSemantics(t *testing.T) {
	got, err := settings.Apply(presets.PlanetaryClockA(), map[string]any{"ConfigInverted": 2})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if on, _ := got.Bool("ConfigInverted"); on {
		t.Fatalf("only 1 should read as enabled")
	}
}

func TestApply_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		key     string
		want    error
	}{
		{"toggle string", map[string]any{"ConfigShowSeconds": "yes"}, "ConfigShowSeconds", settings.ErrInvalidToggle},
		{"toggle fraction", map[string]any{"ConfigShowSeconds": 0.5}, "ConfigShowSeconds", settings.ErrInvalidToggle},
		{"color marker", map[string]any{"ConfigForegroundColor": "#FFFFFF"}, "ConfigForegroundColor", settings.ErrInvalidColor},
		{"color too large", map[string]any{"ConfigForegroundColor": float64(0x1000000)}, "ConfigForegroundColor", settings.ErrInvalidColor},
		{"color negative", map[string]any{"ConfigBackgroundColor": -1}, "ConfigBackgroundColor", settings.ErrInvalidColor},
		{"color bool", map[string]any{"ConfigBackgroundColor": true}, "ConfigBackgroundColor", settings.ErrInvalidColor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := settings.Apply(presets.BubbleWatch(), tc.payload)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var verr *settings.ValueError
			if !errors.As(err, &verr) || verr.Key != tc.key {
				t.Fatalf("expected ValueError for %s, got %#v", tc.key, err)
			}
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := settings.Parse(presets.BubbleWatch(), []byte(`[true]`)); err == nil {
		t.Fatalf("expected error for non-object payload")
	}
}

func TestUnknown(t *testing.T) {
	got := settings.Unknown(presets.PlanetaryClockA(), map[string]any{
		"ConfigInverted":    true,
		"ConfigShowBubbles": true,
		"Extra":             1,
	})
	if diff := cmp.Diff([]string{"ConfigShowBubbles", "Extra"}, got); diff != "" {
		t.Fatalf("unknown keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings_Keys(t *testing.T) {
	got := settings.Defaults(presets.PlanetaryClockB()).Keys()
	if diff := cmp.Diff([]string{"ConfigInverted", "ConfigShowBubbles"}, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
