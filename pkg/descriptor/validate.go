package descriptor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrEmptyDescriptor     = errors.New("descriptor: no fields")
	ErrHeadingPosition     = errors.New("descriptor: exactly one heading must lead the sequence")
	ErrSubmitPosition      = errors.New("descriptor: exactly one submit must end the sequence")
	ErrNestedContainer     = errors.New("descriptor: sections cannot contain headings or sections")
	ErrMissingMessageKey   = errors.New("descriptor: message key is required")
	ErrDuplicateMessageKey = errors.New("descriptor: duplicate message key")
	ErrInvalidColor        = errors.New("descriptor: color default must be six hex digits")
	ErrDefaultType         = errors.New("descriptor: default value has the wrong type")
	ErrUnknownFieldType    = errors.New("descriptor: unknown field type")
	ErrUnexpectedItems     = errors.New("descriptor: only sections carry items")
)

// HexColorPattern matches an RRGGBB color without a leading marker.
var HexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether value is a six digit hex color.
func IsHexColor(value string) bool {
	return HexColorPattern.MatchString(value)
}

// Issue describes one structural problem. Path points at the offending
// field (for example fields[1].items[3]); Field holds its message key when it
// has one.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (i Issue) String() string {
	location := i.Path
	if i.Field != "" {
		location += " (" + i.Field + ")"
	}
	if location == "" {
		return i.Message
	}
	return location + ": " + i.Message
}

// ValidationError aggregates every issue found in a descriptor. errors.Is
// matches any of the sentinel errors carried by its issues.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "descriptor: invalid"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "descriptor: invalid: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Err != nil {
			out = append(out, issue.Err)
		}
	}
	return out
}

// Validate checks the descriptor's fields.
func (d Descriptor) Validate() error {
	return Validate(d.Fields)
}

// Validate checks fields against the structural contract shared with the
// host: a single leading heading, a single trailing submit, unique non-empty
// message keys, well typed defaults, and hex color defaults. It returns nil or
// a *ValidationError listing every issue found.
func Validate(fields []Field) error {
	issues := Check(fields)
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// Check returns every issue found in fields without wrapping them in an
// error.
func Check(fields []Field) []Issue {
	if len(fields) == 0 {
		return []Issue{newIssue("", "", ErrEmptyDescriptor, "descriptor has no fields")}
	}

	var issues []Issue

	headings, submits := 0, 0
	for idx, field := range fields {
		path := fmt.Sprintf("fields[%d]", idx)
		switch field.Type {
		case FieldTypeHeading:
			headings++
			if idx != 0 || headings > 1 {
				issues = append(issues, newIssue(path, "", ErrHeadingPosition, "heading must appear once, first"))
			}
		case FieldTypeSubmit:
			submits++
			if idx != len(fields)-1 || submits > 1 {
				issues = append(issues, newIssue(path, "", ErrSubmitPosition, "submit must appear once, last"))
			}
		}
	}
	if fields[0].Type != FieldTypeHeading {
		issues = append(issues, newIssue("fields[0]", "", ErrHeadingPosition, fmt.Sprintf("first field is %q, want heading", fields[0].Type)))
	}
	if last := len(fields) - 1; fields[last].Type != FieldTypeSubmit {
		issues = append(issues, newIssue(fmt.Sprintf("fields[%d]", last), "", ErrSubmitPosition, fmt.Sprintf("last field is %q, want submit", fields[last].Type)))
	}

	seen := make(map[string]string)
	for idx, field := range fields {
		path := fmt.Sprintf("fields[%d]", idx)
		issues = append(issues, checkField(path, field, seen)...)
		if field.Type != FieldTypeSection {
			continue
		}
		for itemIdx, item := range field.Items {
			itemPath := fmt.Sprintf("%s.items[%d]", path, itemIdx)
			if item.Type.Container() {
				issues = append(issues, newIssue(itemPath, "", ErrNestedContainer, fmt.Sprintf("%s cannot be nested in a section", item.Type)))
				continue
			}
			if item.Type == FieldTypeSubmit {
				issues = append(issues, newIssue(itemPath, "", ErrSubmitPosition, "submit cannot be nested in a section"))
				continue
			}
			issues = append(issues, checkField(itemPath, item, seen)...)
		}
	}

	return issues
}

func checkField(path string, field Field, seen map[string]string) []Issue {
	var issues []Issue
	if field.Type != FieldTypeSection && len(field.Items) > 0 {
		issues = append(issues, newIssue(path, field.MessageKey, ErrUnexpectedItems, fmt.Sprintf("%s cannot carry items", field.Type)))
	}
	switch field.Type {
	case FieldTypeHeading, FieldTypeSubmit:
		if _, ok := field.DefaultValue.(string); !ok {
			issues = append(issues, newIssue(path, "", ErrDefaultType, fmt.Sprintf("%s default must be a string, found %T", field.Type, field.DefaultValue)))
		}
	case FieldTypeSection:
	case FieldTypeToggle, FieldTypeColor:
		issues = append(issues, checkMessageKey(path, field, seen)...)
		if field.Type == FieldTypeToggle {
			if _, ok := field.DefaultValue.(bool); !ok {
				issues = append(issues, newIssue(path, field.MessageKey, ErrDefaultType, fmt.Sprintf("toggle default must be a boolean, found %T", field.DefaultValue)))
			}
			break
		}
		hex, ok := field.DefaultValue.(string)
		switch {
		case !ok:
			issues = append(issues, newIssue(path, field.MessageKey, ErrDefaultType, fmt.Sprintf("color default must be a string, found %T", field.DefaultValue)))
		case !IsHexColor(hex):
			issues = append(issues, newIssue(path, field.MessageKey, ErrInvalidColor, fmt.Sprintf("color default %q is not RRGGBB", hex)))
		}
	default:
		issues = append(issues, newIssue(path, field.MessageKey, ErrUnknownFieldType, fmt.Sprintf("unknown field type %q", field.Type)))
	}
	return issues
}

func checkMessageKey(path string, field Field, seen map[string]string) []Issue {
	key := strings.TrimSpace(field.MessageKey)
	if key == "" {
		return []Issue{newIssue(path, "", ErrMissingMessageKey, fmt.Sprintf("%s requires a message key", field.Type))}
	}
	if first, exists := seen[key]; exists {
		return []Issue{newIssue(path, key, ErrDuplicateMessageKey, fmt.Sprintf("message key %q already declared at %s", key, first))}
	}
	seen[key] = path
	return nil
}

func newIssue(path, key string, err error, message string) Issue {
	return Issue{Path: path, Field: key, Message: message, Err: err}
}
