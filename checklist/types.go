// Package checklist parses ENA sample-checklist XML documents into a
// structured in-memory representation.
package checklist

// FieldType discriminates between free-text and choice fields.
type FieldType string

const (
	// FieldTypeText is a free-text field, optionally pattern-constrained.
	FieldTypeText FieldType = "TEXT_FIELD"

	// FieldTypeChoice is a field restricted to a closed set of values.
	FieldTypeChoice FieldType = "TEXT_CHOICE_FIELD"
)

// Checklist is the parsed form of one ENA checklist document.
type Checklist struct {
	// Accession is the checklist identifier (e.g. "ERC000015").
	Accession string

	// ChecklistType classifies the checklist (e.g. "Sample").
	ChecklistType string

	// Label is the human-readable checklist title.
	Label string

	// Name is the short checklist name.
	Name string

	// Description describes the checklist's intended use.
	Description string

	// Authority identifies the maintaining authority.
	Authority string

	// FieldGroups holds the field groups in document order.
	FieldGroups []FieldGroup
}

// Fields returns all fields across all groups in flattened document order.
func (c *Checklist) Fields() []Field {
	var fields []Field
	for _, g := range c.FieldGroups {
		fields = append(fields, g.Fields...)
	}
	return fields
}

// FieldGroup is a named group of related checklist fields.
type FieldGroup struct {
	// Name is the group identifier, preserved downstream as a slot group.
	Name string

	// RestrictionType is the group's restriction classification.
	RestrictionType string

	// Fields holds the group's fields in document order.
	Fields []Field
}

// Field is one checklist field definition.
type Field struct {
	// Label is the display label.
	Label string

	// Name is the field identifier, unique across the checklist.
	Name string

	// Description describes the field.
	Description string

	// Type is the field type. Fields without a recognised type
	// descriptor default to FieldTypeText.
	Type FieldType

	// Pattern is the regular expression constraint for text fields,
	// empty when the field declares none.
	Pattern string

	// Choices holds the permitted values of a choice field in document
	// order. Populated only for FieldTypeChoice.
	Choices []string

	// Units lists advisory unit strings, possibly empty.
	Units []string

	// Mandatory is the raw requiredness string from the source
	// (e.g. "mandatory", "recommended", "optional").
	Mandatory string

	// Multiplicity is the raw multiplicity string, preserved for
	// forward compatibility.
	Multiplicity string
}

// Required reports whether the field is mandatory. Only the exact
// string "mandatory" counts; any other value is not required.
func (f *Field) Required() bool {
	return f.Mandatory == "mandatory"
}

// HasChoices reports whether the field is a choice field with at least
// one extracted value. Choice fields with no values produce no enum.
func (f *Field) HasChoices() bool {
	return f.Type == FieldTypeChoice && len(f.Choices) > 0
}
