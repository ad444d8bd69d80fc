// Package testsupport holds fixture and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clayconfig/pkg/catalog"
	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

// UpdateEnv enables golden rewrites when set to a non-empty value.
const UpdateEnv = "UPDATE_GOLDENS"

// LoadDescriptor reads a descriptor fixture (JSON, YAML or JS module).
func LoadDescriptor(t *testing.T, path string) descriptor.Descriptor {
	t.Helper()

	d, err := LoadDescriptorFromPath(path)
	if err != nil {
		t.Fatalf("load descriptor: %v", err)
	}
	return d
}

// LoadDescriptorFromPath returns a descriptor without requiring testing.T so
// callers can load fixtures in setup functions.
func LoadDescriptorFromPath(path string) (descriptor.Descriptor, error) {
	if path == "" {
		return descriptor.Descriptor{}, errors.New("testsupport: descriptor path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return descriptor.Descriptor{}, fmt.Errorf("testsupport: read descriptor: %w", err)
	}
	d, err := catalog.ParseFile(path, data)
	if err != nil {
		return descriptor.Descriptor{}, fmt.Errorf("testsupport: parse descriptor: %w", err)
	}
	return d, nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv(UpdateEnv) == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got against the golden file at path, rewriting it
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}
