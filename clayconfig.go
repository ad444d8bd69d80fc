// Package clayconfig exposes the watch face configuration pages and the
// helpers most callers need without importing the individual packages.
package clayconfig

import (
	"io/fs"

	"github.com/goliatone/go-clayconfig/pkg/catalog"
	"github.com/goliatone/go-clayconfig/pkg/descriptor"
	"github.com/goliatone/go-clayconfig/pkg/presets"
	"github.com/goliatone/go-clayconfig/pkg/settings"
)

// Descriptor aliases descriptor.Descriptor.
type Descriptor = descriptor.Descriptor

// Field aliases descriptor.Field.
type Field = descriptor.Field

// Settings aliases settings.Settings.
type Settings = settings.Settings

// Get returns the bundled configuration page with the given name.
func Get(name string) (Descriptor, bool) {
	return presets.Get(name)
}

// Names lists the bundled configuration pages.
func Names() []string {
	return presets.Names()
}

// Validate checks a descriptor's structure.
func Validate(d Descriptor) error {
	return d.Validate()
}

// NewCatalog returns a store holding the bundled pages plus every descriptor
// file found in fsys. fsys may be nil.
func NewCatalog(fsys fs.FS) (*catalog.Store, error) {
	return catalog.LoadFS(fsys, catalog.WithPresets())
}

// Defaults returns the settings the host saves when nothing is changed.
func Defaults(d Descriptor) Settings {
	return settings.Defaults(d)
}
