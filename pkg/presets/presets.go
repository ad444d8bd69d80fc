// Package presets holds the configuration pages shipped with the watch faces.
// Every accessor builds a fresh descriptor, so results can be modified by the
// caller without affecting later calls.
package presets

import (
	"sort"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

const (
	BubbleWatchName     = "bubble-watch"
	PlanetaryClockAName = "planetary-clock-a"
	PlanetaryClockBName = "planetary-clock-b"
)

// Message keys shared with the watch applications.
const (
	KeyShowSeconds                  = "ConfigShowSeconds"
	KeyShowBubbles                  = "ConfigShowBubbles"
	KeyVibrateOnBluetoothDisconnect = "ConfigVibrateOnBluetoothDisconnect"
	KeyForegroundColor              = "ConfigForegroundColor"
	KeyBackgroundColor              = "ConfigBackgroundColor"
	KeyInverted                     = "ConfigInverted"
)

const submitLabel = "Save Settings"

type preset struct {
	build  func() descriptor.Descriptor
	layout []string
}

var registry = map[string]preset{
	BubbleWatchName: {
		build: BubbleWatch,
		layout: []string{
			KeyShowSeconds,
			KeyForegroundColor,
			KeyBackgroundColor,
			KeyShowBubbles,
			KeyVibrateOnBluetoothDisconnect,
		},
	},
	PlanetaryClockAName: {
		build:  PlanetaryClockA,
		layout: []string{KeyInverted},
	},
	PlanetaryClockBName: {
		build:  PlanetaryClockB,
		layout: []string{KeyInverted, KeyShowBubbles},
	},
}

// BubbleWatch returns the Bubble Watch configuration page.
func BubbleWatch() descriptor.Descriptor {
	return descriptor.New(BubbleWatchName,
		descriptor.Heading("Bubble Watch"),
		descriptor.Section(
			descriptor.Toggle(KeyShowSeconds, "Show seconds", true),
			descriptor.Toggle(KeyShowBubbles, "Show values in bubbles", true),
			descriptor.Toggle(KeyVibrateOnBluetoothDisconnect, "Vibrate on Bluetooth disconnect", false),
			descriptor.Color(KeyForegroundColor, "Foreground Color", "FFFFFF", false),
			descriptor.Color(KeyBackgroundColor, "Background Color", "000000", false),
		),
		descriptor.Submit(submitLabel),
	)
}

// PlanetaryClockA returns the Planetary Clock build that only exposes color
// inversion.
func PlanetaryClockA() descriptor.Descriptor {
	return descriptor.New(PlanetaryClockAName,
		descriptor.Heading("Planetary Clock"),
		descriptor.Section(
			descriptor.Toggle(KeyInverted, "Invert colors", false),
		),
		descriptor.Submit(submitLabel),
	)
}

// PlanetaryClockB returns the Planetary Clock build that also shows values in
// bubbles.
func PlanetaryClockB() descriptor.Descriptor {
	return descriptor.New(PlanetaryClockBName,
		descriptor.Heading("Planetary Clock"),
		descriptor.Section(
			descriptor.Toggle(KeyInverted, "Invert colors", false),
			descriptor.Toggle(KeyShowBubbles, "Show values in bubbles", true),
		),
		descriptor.Submit(submitLabel),
	)
}

// Get returns the named preset.
func Get(name string) (descriptor.Descriptor, bool) {
	p, ok := registry[name]
	if !ok {
		return descriptor.Descriptor{}, false
	}
	return p.build(), true
}

// All returns every preset ordered by name.
func All() []descriptor.Descriptor {
	names := Names()
	out := make([]descriptor.Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name].build())
	}
	return out
}

// Names lists the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layout returns the order in which the named watch face stores its settings
// in the persisted record.
func Layout(name string) ([]string, bool) {
	p, ok := registry[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), p.layout...), true
}
