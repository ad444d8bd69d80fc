package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clayconfig/pkg/catalog"
	"github.com/goliatone/go-clayconfig/pkg/descriptor"
	"github.com/goliatone/go-clayconfig/pkg/presets"
)

func TestNew_WithPresets(t *testing.T) {
	store, err := catalog.New(catalog.WithPresets())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff(presets.Names(), store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	got := store.MustGet(presets.PlanetaryClockBName)
	if diff := cmp.Diff(presets.PlanetaryClockB(), got); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
	if source, _ := store.Source(presets.BubbleWatchName); source != "preset" {
		t.Fatalf("source: %q", source)
	}
}

func TestRegister_Errors(t *testing.T) {
	store, err := catalog.New(catalog.WithPresets())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := store.Register(presets.BubbleWatch()); !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	unnamed := presets.BubbleWatch()
	unnamed.Name = " "
	if err := store.Register(unnamed); !errors.Is(err, catalog.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}

	invalid := descriptor.New("invalid", descriptor.Toggle("ConfigA", "A", true))
	if err := store.Register(invalid); !errors.Is(err, descriptor.ErrHeadingPosition) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.Len() != len(presets.Names()) {
		t.Fatalf("failed registrations must not be stored")
	}
}

func TestNew_WithDescriptorsAndMustRegister(t *testing.T) {
	nightMode := descriptor.New("night-mode",
		descriptor.Heading("Night Mode"),
		descriptor.Section(descriptor.Toggle("ConfigNight", "Enable night mode", false)),
		descriptor.Submit("Save"),
	)
	store, err := catalog.New(catalog.WithDescriptors(nightMode))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if source, _ := store.Source("night-mode"); source != "inline" {
		t.Fatalf("source: %q", source)
	}

	store.MustRegister(presets.PlanetaryClockA())
	want := []string{"night-mode", presets.PlanetaryClockAName}
	if diff := cmp.Diff(want, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	defer func() {
		recovered, ok := recover().(error)
		if !ok || !errors.Is(recovered, catalog.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate panic, got %v", recovered)
		}
	}()
	store.MustRegister(presets.PlanetaryClockA())
}

func TestNew_WithDescriptorsRejectsDuplicates(t *testing.T) {
	_, err := catalog.New(catalog.WithPresets(), catalog.WithDescriptors(presets.BubbleWatch()))
	if !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGet_ReturnsCopies(t *testing.T) {
	store, err := catalog.New(catalog.WithPresets())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	d := store.MustGet(presets.BubbleWatchName)
	d.Fields[1].Items = nil

	again := store.MustGet(presets.BubbleWatchName)
	if len(again.Configurable()) != 5 {
		t.Fatalf("store contents were mutated through a returned descriptor")
	}
	if _, err := store.Get("missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	store, err := catalog.New(catalog.WithPresets())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range store.Names() {
				if _, err := store.Get(name); err != nil {
					t.Errorf("get %s: %v", name, err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadFS_Valid(t *testing.T) {
	store, err := catalog.LoadFS(os.DirFS(filepath.Join("testdata", "valid")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"bubble-watch", "minimal", "night-mode"}
	if diff := cmp.Diff(want, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(presets.BubbleWatch(), store.MustGet("bubble-watch")); diff != "" {
		t.Fatalf("config module mismatch (-want +got):\n%s", diff)
	}

	night := store.MustGet("night-mode")
	color, ok := night.Lookup("ConfigNightColor")
	if !ok || color.Text() != "000055" || !color.AllowGray {
		t.Fatalf("unexpected night color: %#v", color)
	}
	if source, _ := store.Source("night-mode"); source != "night-mode.yaml" {
		t.Fatalf("source: %q", source)
	}

	minimal := store.MustGet("minimal")
	if diff := cmp.Diff([]string{"ConfigEnabled"}, minimal.MessageKeys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_DuplicateWithPresets(t *testing.T) {
	_, err := catalog.LoadFS(os.DirFS(filepath.Join("testdata", "valid")), catalog.WithPresets())
	if !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestLoadFS_Invalid(t *testing.T) {
	_, err := catalog.LoadFS(os.DirFS(filepath.Join("testdata", "invalid")))
	if !errors.Is(err, descriptor.ErrDuplicateMessageKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if !errors.Is(err, descriptor.ErrInvalidColor) {
		t.Fatalf("expected invalid color error, got %v", err)
	}
}

func TestLoadFS_NilAndSkippedFiles(t *testing.T) {
	store, err := catalog.LoadFS(nil)
	if err != nil || store.Len() != 0 {
		t.Fatalf("nil fs should yield an empty store: %v", err)
	}

	fsys := fstest.MapFS{
		"README.md":        {Data: []byte("# not a descriptor")},
		"nested/page.json": {Data: []byte(`{"name":"renamed","fields":[{"type":"heading","defaultValue":"P"},{"type":"submit","defaultValue":"S"}]}`)},
	}
	store, err = catalog.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"renamed"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_Errors(t *testing.T) {
	tests := map[string]string{
		"empty.json":      "  \n",
		"broken.json":     "[{",
		"no-exports.js":   `var config = [];`,
		"empty-export.js": `module.exports = ;`,
		"broken.yaml":     "- type: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := catalog.ParseFile(name, []byte(src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := catalog.ParseFile("empty.json", nil); !errors.Is(err, catalog.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestNameFromPath(t *testing.T) {
	tests := map[string]string{
		"config.js":                  "config",
		"dir/bubble-watch.json":      "bubble-watch",
		`C:\faces\planetary.yaml`:    "planetary",
		"nested/dir/night.mode.yaml": "night.mode",
	}
	for in, want := range tests {
		if got := catalog.NameFromPath(in); got != want {
			t.Fatalf("NameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
