package settings

import (
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

// SchemaIDBase prefixes the $id of generated settings schemas.
const SchemaIDBase = "https://github.com/goliatone/go-clayconfig/schemas/"

// JSONSchema describes the normalised settings mapping for d (the output of
// Defaults and Apply, colors as RRGGBB strings), not the raw host payload,
// which may also carry integer colors. One property per message key, in page
// order, with defaults and titles taken from the descriptor.
func JSONSchema(d descriptor.Descriptor) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, field := range d.Configurable() {
		prop := &jsonschema.Schema{
			Title:   field.Label,
			Default: field.DefaultValue,
		}
		switch field.Type {
		case descriptor.FieldTypeToggle:
			prop.Type = "boolean"
		case descriptor.FieldTypeColor:
			prop.Type = "string"
			prop.Pattern = descriptor.HexColorPattern.String()
			prop.Default = strings.ToUpper(field.Text())
		}
		props.Set(field.MessageKey, prop)
	}

	schema := &jsonschema.Schema{
		Version:              jsonschema.Version,
		Type:                 "object",
		Title:                d.Title(),
		Properties:           props,
		AdditionalProperties: jsonschema.FalseSchema,
	}
	if d.Name != "" {
		schema.ID = jsonschema.ID(SchemaIDBase + d.Name + ".settings.json")
	}
	return schema
}
