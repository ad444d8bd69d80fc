package descriptor

import "strconv"

// WalkFunc is invoked for every field in sequence order, sections before their
// items. Items on any other field type are not visited. Returning false stops
// the walk.
type WalkFunc func(path string, field Field) bool

// Walk visits fields depth-first in sequence order.
func Walk(fields []Field, fn WalkFunc) {
	walk(fields, "fields", fn)
}

func walk(fields []Field, prefix string, fn WalkFunc) bool {
	for idx, field := range fields {
		path := prefix + "[" + strconv.Itoa(idx) + "]"
		if !fn(path, field) {
			return false
		}
		if field.Type == FieldTypeSection && len(field.Items) > 0 {
			if !walk(field.Items, path+".items", fn) {
				return false
			}
		}
	}
	return true
}

// Configurable returns the toggle and color fields in the order the host
// renders them, with sections flattened.
func (d Descriptor) Configurable() []Field {
	var out []Field
	Walk(d.Fields, func(_ string, field Field) bool {
		if field.Type.Configurable() {
			out = append(out, field.Clone())
		}
		return true
	})
	return out
}

// MessageKeys lists the settings keys the host will emit on save.
func (d Descriptor) MessageKeys() []string {
	fields := d.Configurable()
	keys := make([]string, 0, len(fields))
	for _, field := range fields {
		keys = append(keys, field.MessageKey)
	}
	return keys
}

// Lookup finds the configurable field persisted under key.
func (d Descriptor) Lookup(key string) (Field, bool) {
	var (
		found Field
		ok    bool
	)
	Walk(d.Fields, func(_ string, field Field) bool {
		if field.Type.Configurable() && field.MessageKey == key {
			found, ok = field.Clone(), true
			return false
		}
		return true
	})
	return found, ok
}

// Title returns the heading text, or an empty string when no heading leads
// the sequence.
func (d Descriptor) Title() string {
	if len(d.Fields) == 0 || d.Fields[0].Type != FieldTypeHeading {
		return ""
	}
	return d.Fields[0].Text()
}

// SubmitLabel returns the save button text, or an empty string when no
// submit field ends the sequence.
func (d Descriptor) SubmitLabel() string {
	if len(d.Fields) == 0 {
		return ""
	}
	last := d.Fields[len(d.Fields)-1]
	if last.Type != FieldTypeSubmit {
		return ""
	}
	return last.Text()
}
