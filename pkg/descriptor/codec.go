package descriptor

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// wireField mirrors the host's field object. Member order matches the order
// the host documents and keeps encoded snapshots stable.
type wireField struct {
	Type         FieldType `json:"type" yaml:"type"`
	MessageKey   string    `json:"messageKey,omitempty" yaml:"messageKey,omitempty"`
	Label        string    `json:"label,omitempty" yaml:"label,omitempty"`
	DefaultValue any       `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	AllowGray    *bool     `json:"allowGray,omitempty" yaml:"allowGray,omitempty"`
	Items        []Field   `json:"items,omitempty" yaml:"items,omitempty"`
}

func (f Field) wire() wireField {
	out := wireField{Type: f.Type}
	switch f.Type {
	case FieldTypeHeading, FieldTypeSubmit:
		out.DefaultValue = f.DefaultValue
	case FieldTypeSection:
		out.Items = f.Items
	case FieldTypeToggle:
		out.MessageKey = f.MessageKey
		out.Label = f.Label
		out.DefaultValue = f.DefaultValue
	case FieldTypeColor:
		allowGray := f.AllowGray
		out.MessageKey = f.MessageKey
		out.Label = f.Label
		out.DefaultValue = f.DefaultValue
		out.AllowGray = &allowGray
	default:
		out.MessageKey = f.MessageKey
		out.Label = f.Label
		out.DefaultValue = f.DefaultValue
		out.Items = f.Items
	}
	return out
}

func (w wireField) field() Field {
	out := Field{
		Type:         w.Type,
		MessageKey:   w.MessageKey,
		Label:        w.Label,
		DefaultValue: w.DefaultValue,
		Items:        w.Items,
	}
	if w.AllowGray != nil {
		out.AllowGray = *w.AllowGray
	}
	return out
}

// MarshalJSON emits only the members the field's type carries.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.wire())
}

// UnmarshalJSON decodes a host field object. Unknown members are ignored;
// type and default mismatches are left for Validate to report.
func (f *Field) UnmarshalJSON(data []byte) error {
	var w wireField
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = w.field()
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML documents.
func (f Field) MarshalYAML() (any, error) {
	return f.wire(), nil
}

// UnmarshalYAML decodes a YAML field mapping. Color defaults are read from the
// raw scalar so unquoted values such as 000000 keep their leading zeros.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	var w wireField
	if err := node.Decode(&w); err != nil {
		return err
	}
	if w.Type == FieldTypeColor {
		if raw, ok := scalarMember(node, "defaultValue"); ok {
			w.DefaultValue = raw
		}
	}
	*f = w.field()
	return nil
}

func scalarMember(node *yaml.Node, key string) (string, bool) {
	if node == nil || node.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != key {
			continue
		}
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return "", false
		}
		return value.Value, true
	}
	return "", false
}

// DecodeFields parses a host JSON array into fields.
func DecodeFields(data []byte) ([]Field, error) {
	var fields []Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
