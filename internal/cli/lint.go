package cli

import (
	"errors"
	"fmt"
	"html"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-clayconfig/pkg/catalog"
	"github.com/goliatone/go-clayconfig/pkg/descriptor"
	"github.com/goliatone/go-clayconfig/pkg/presets"
)

// ErrLintFailed is returned when lint reports at least one violation.
var ErrLintFailed = errors.New("lint: violations found")

type violation struct {
	file     string
	location string
	message  string
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [PATH...]",
		Short: "Check descriptor files for structural problems",
		Long: "Lint descriptor files (.json, .yaml, .yml, .js) or directories of them.\n" +
			"Without arguments the configured catalog directories are linted, or the\n" +
			"bundled presets when no catalog is configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = a.cfg.Catalog
			}

			var violations []violation
			names := make(nameIndex)
			for _, d := range presets.All() {
				names[d.Name] = "preset"
				if len(paths) == 0 {
					violations = append(violations, lintDescriptor("preset:"+d.Name, d)...)
				}
			}
			for _, path := range paths {
				linted, err := lintPath(path, names)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				violations = append(violations, linted...)
			}

			if len(violations) == 0 {
				a.log.Info().Int("paths", len(paths)).Msg("lint clean")
				return nil
			}
			writeViolations(cmd.ErrOrStderr(), violations)
			return fmt.Errorf("%w: %d", ErrLintFailed, len(violations))
		},
	}
}

// nameIndex maps descriptor names to the file that first declared them. The
// catalog registers presets and every linted file under one namespace.
type nameIndex map[string]string

func (n nameIndex) claim(file, name string) *violation {
	if first, exists := n[name]; exists {
		return &violation{
			file:     file,
			location: "document",
			message:  fmt.Sprintf("descriptor name %q already defined in %s", name, first),
		}
	}
	n[name] = file
	return nil
}

func lintPath(path string, names nameIndex) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return lintFile(path, names)
	}

	var result []violation
	err = filepath.WalkDir(path, func(filePath string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !catalog.IsDescriptorFile(filePath) {
			return nil
		}
		linted, err := lintFile(filePath, names)
		if err != nil {
			return err
		}
		result = append(result, linted...)
		return nil
	})
	return result, err
}

func lintFile(path string, names nameIndex) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	d, err := catalog.ParseFile(path, raw)
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}, nil
	}
	result := lintDescriptor(path, d)
	if dup := names.claim(path, d.Name); dup != nil {
		result = append(result, *dup)
	}
	return result, nil
}

func lintDescriptor(file string, d descriptor.Descriptor) []violation {
	var result []violation
	for _, issue := range descriptor.Check(d.Fields) {
		location := issue.Path
		if location == "" {
			location = "document"
		}
		if issue.Field != "" {
			location += " > " + issue.Field
		}
		result = append(result, violation{file: file, location: location, message: issue.Message})
	}

	descriptor.Walk(d.Fields, func(path string, field descriptor.Field) bool {
		for _, text := range []string{field.Label, labelText(field)} {
			if text == "" || !hasMarkup(text) {
				continue
			}
			result = append(result, violation{
				file:     file,
				location: path,
				message:  fmt.Sprintf("text %q contains markup the host would not show literally", text),
			})
		}
		return true
	})
	return result
}

func labelText(field descriptor.Field) string {
	if field.Type == descriptor.FieldTypeHeading || field.Type == descriptor.FieldTypeSubmit {
		return field.Text()
	}
	return ""
}

func hasMarkup(text string) bool {
	cleaned := html.UnescapeString(labelSanitizer().Sanitize(text))
	return cleaned != text
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func writeViolations(w io.Writer, violations []violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, strings.TrimSpace(v.location), v.message)
	}
}
