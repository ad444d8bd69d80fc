package descriptor

// Heading returns the page title field.
func Heading(title string) Field {
	return Field{Type: FieldTypeHeading, DefaultValue: title}
}

// Section groups the provided items under a single visual block.
func Section(items ...Field) Field {
	return Field{Type: FieldTypeSection, Items: append([]Field{}, items...)}
}

// Toggle returns a boolean switch persisted under key.
func Toggle(key, label string, enabled bool) Field {
	return Field{
		Type:         FieldTypeToggle,
		MessageKey:   key,
		Label:        label,
		DefaultValue: enabled,
	}
}

// Color returns a color picker persisted under key. hex is an RRGGBB value
// without a leading marker.
func Color(key, label, hex string, allowGray bool) Field {
	return Field{
		Type:         FieldTypeColor,
		MessageKey:   key,
		Label:        label,
		DefaultValue: hex,
		AllowGray:    allowGray,
	}
}

// Submit returns the save button carrying label.
func Submit(label string) Field {
	return Field{Type: FieldTypeSubmit, DefaultValue: label}
}

// New assembles a named descriptor from fields.
func New(name string, fields ...Field) Descriptor {
	return Descriptor{Name: name, Fields: append([]Field{}, fields...)}
}
