package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

// ErrEmptyFile is returned for descriptor files without content.
var ErrEmptyFile = errors.New("catalog: descriptor file is empty")

const moduleExportsPrefix = "module.exports"

// LoadFS walks fsys and registers every descriptor file it finds on top of
// the supplied options. When fsys is nil the store only holds what the
// options register.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	return New(append(options, WithFS(fsys))...)
}

// WithFS registers every descriptor file under fsys. Descriptor names default
// to the file name without its extension.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) error {
		if fsys == nil {
			return nil
		}
		return fs.WalkDir(fsys, ".", func(filePath string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || !IsDescriptorFile(filePath) {
				return nil
			}
			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				return fmt.Errorf("catalog: read %s: %w", filePath, err)
			}
			d, err := ParseFile(filePath, data)
			if err != nil {
				return err
			}
			return s.register(d, filePath)
		})
	}
}

// IsDescriptorFile reports whether the path has a supported extension.
func IsDescriptorFile(filePath string) bool {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".json", ".yaml", ".yml", ".js":
		return true
	default:
		return false
	}
}

// NameFromPath derives a descriptor name from a file path.
func NameFromPath(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

type documentFile struct {
	Name   string             `json:"name" yaml:"name"`
	Fields []descriptor.Field `json:"fields" yaml:"fields"`
}

// ParseFile decodes a descriptor file without validating it. JSON and YAML
// files hold either the bare field array or an object with name and fields;
// .js files hold a CommonJS module exporting the array.
func ParseFile(filePath string, data []byte) (descriptor.Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return descriptor.Descriptor{}, fmt.Errorf("%w: %s", ErrEmptyFile, filePath)
	}

	var (
		doc documentFile
		err error
	)
	switch strings.ToLower(path.Ext(filePath)) {
	case ".js":
		doc, err = parseModule(trimmed)
	case ".yaml", ".yml":
		doc, err = parseYAML(trimmed)
	default:
		doc, err = parseJSON(trimmed)
	}
	if err != nil {
		return descriptor.Descriptor{}, fmt.Errorf("catalog: parse %s: %w", filePath, err)
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = NameFromPath(filePath)
	}
	return descriptor.Descriptor{Name: name, Fields: doc.Fields}, nil
}

func parseJSON(data []byte) (documentFile, error) {
	if data[0] == '[' {
		fields, err := descriptor.DecodeFields(data)
		if err != nil {
			return documentFile{}, err
		}
		return documentFile{Fields: fields}, nil
	}
	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return documentFile{}, err
	}
	return doc, nil
}

func parseYAML(data []byte) (documentFile, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return documentFile{}, err
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.SequenceNode {
		var fields []descriptor.Field
		if err := root.Decode(&fields); err != nil {
			return documentFile{}, err
		}
		return documentFile{Fields: fields}, nil
	}
	var doc documentFile
	if err := root.Decode(&doc); err != nil {
		return documentFile{}, err
	}
	return doc, nil
}

// parseModule accepts the `module.exports = [...];` layout. The exported
// value must be plain JSON.
func parseModule(data []byte) (documentFile, error) {
	src := strings.TrimSpace(string(data))
	if !strings.HasPrefix(src, moduleExportsPrefix) {
		return documentFile{}, fmt.Errorf("expected %s assignment", moduleExportsPrefix)
	}
	src = strings.TrimSpace(strings.TrimPrefix(src, moduleExportsPrefix))
	if !strings.HasPrefix(src, "=") {
		return documentFile{}, fmt.Errorf("expected %s assignment", moduleExportsPrefix)
	}
	src = strings.TrimSpace(strings.TrimPrefix(src, "="))
	src = strings.TrimSpace(strings.TrimSuffix(src, ";"))
	if src == "" {
		return documentFile{}, errors.New("module exports nothing")
	}
	return parseJSON([]byte(src))
}
