package descriptor

// FieldType tags the variant a Field represents.
type FieldType string

const (
	FieldTypeHeading FieldType = "heading"
	FieldTypeSection FieldType = "section"
	FieldTypeToggle  FieldType = "toggle"
	FieldTypeColor   FieldType = "color"
	FieldTypeSubmit  FieldType = "submit"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeHeading, FieldTypeSection, FieldTypeToggle, FieldTypeColor, FieldTypeSubmit:
		return true
	default:
		return false
	}
}

// Configurable reports whether fields of this type carry a message key and
// therefore appear in the saved settings mapping.
func (t FieldType) Configurable() bool {
	return t == FieldTypeToggle || t == FieldTypeColor
}

// Container reports whether the type may only appear at the top level.
func (t FieldType) Container() bool {
	return t == FieldTypeHeading || t == FieldTypeSection
}

// Field models a single entry of a configuration page. Which members are
// meaningful depends on Type:
//
//	heading  DefaultValue (string title)
//	section  Items
//	toggle   MessageKey, Label, DefaultValue (bool)
//	color    MessageKey, Label, DefaultValue (RRGGBB string), AllowGray
//	submit   DefaultValue (string button label)
//
// Use the constructors in builder.go rather than populating the struct by hand.
type Field struct {
	Type         FieldType
	MessageKey   string
	Label        string
	DefaultValue any
	AllowGray    bool
	Items        []Field
}

// Descriptor is a named, ordered configuration page.
type Descriptor struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Items != nil {
		out.Items = cloneFields(f.Items)
	}
	return out
}

// Clone returns a deep copy of the descriptor so callers can hand it out
// without exposing shared slices.
func (d Descriptor) Clone() Descriptor {
	return Descriptor{
		Name:   d.Name,
		Fields: cloneFields(d.Fields),
	}
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}

// Text returns the string default carried by heading, submit and color fields.
func (f Field) Text() string {
	s, _ := f.DefaultValue.(string)
	return s
}

// Enabled returns the boolean default of a toggle.
func (f Field) Enabled() bool {
	b, _ := f.DefaultValue.(bool)
	return b
}
