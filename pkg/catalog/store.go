// Package catalog keeps named configuration descriptors, either the bundled
// presets or descriptor files loaded from a filesystem. Stores validate every
// descriptor on registration and hand out copies, so they are safe for
// concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
	"github.com/goliatone/go-clayconfig/pkg/presets"
)

var (
	ErrNameRequired = errors.New("catalog: descriptor name is required")
	ErrDuplicate    = errors.New("catalog: descriptor already registered")
	ErrNotFound     = errors.New("catalog: descriptor not found")
)

// Store holds descriptors by name.
type Store struct {
	mu          sync.RWMutex
	descriptors map[string]descriptor.Descriptor
	sources     map[string]string
}

// Option configures a Store during construction.
type Option func(*Store) error

// WithPresets registers the bundled watch face descriptors.
func WithPresets() Option {
	return func(s *Store) error {
		for _, d := range presets.All() {
			if err := s.register(d, "preset"); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithDescriptors registers the provided descriptors.
func WithDescriptors(list ...descriptor.Descriptor) Option {
	return func(s *Store) error {
		for _, d := range list {
			if err := s.register(d, "inline"); err != nil {
				return err
			}
		}
		return nil
	}
}

// New builds a store and applies options in order.
func New(options ...Option) (*Store, error) {
	s := &Store{
		descriptors: make(map[string]descriptor.Descriptor),
		sources:     make(map[string]string),
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register validates and adds a descriptor.
func (s *Store) Register(d descriptor.Descriptor) error {
	return s.register(d, "inline")
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (s *Store) MustRegister(d descriptor.Descriptor) {
	if err := s.Register(d); err != nil {
		panic(err)
	}
}

func (s *Store) register(d descriptor.Descriptor, source string) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ErrNameRequired
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("catalog: %s (%s): %w", name, source, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.sources[name]; exists {
		return fmt.Errorf("%w: %q from %s (first defined in %s)", ErrDuplicate, name, source, existing)
	}
	cloned := d.Clone()
	cloned.Name = name
	s.descriptors[name] = cloned
	s.sources[name] = source
	return nil
}

// Get returns a copy of the named descriptor.
func (s *Store) Get(name string) (descriptor.Descriptor, error) {
	if s == nil {
		return descriptor.Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.descriptors[name]
	if !ok {
		return descriptor.Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d.Clone(), nil
}

// MustGet panics if the descriptor is missing.
func (s *Store) MustGet(name string) descriptor.Descriptor {
	d, err := s.Get(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Source reports where the named descriptor came from: "preset", "inline",
// or the file path it was loaded from.
func (s *Store) Source(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	source, ok := s.sources[name]
	return source, ok
}

// Names returns the registered names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.descriptors))
	for name := range s.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many descriptors are registered.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.descriptors)
}
