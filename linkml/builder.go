package linkml

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seqschema/checklistml/checklist"
)

const (
	// DefaultVersion is the schema version emitted when a Builder does
	// not override it.
	DefaultVersion = "1.0.0"

	// InterfaceClass is the name of the fixed DataHarmonizer interface
	// class every generated schema carries.
	InterfaceClass = "dh_interface"

	// stringRange is the generic slot range for non-enum fields.
	stringRange = "string"
)

// Builder converts parsed checklists into LinkML schemas.
type Builder struct {
	// BaseURI prefixes each schema id. A trailing slash is tolerated.
	BaseURI string

	// Version overrides DefaultVersion when non-empty.
	Version string
}

// Build converts a parsed checklist with the package defaults.
func Build(c *checklist.Checklist, baseURI string) *Schema {
	return Builder{BaseURI: baseURI}.Build(c)
}

// Build converts a parsed checklist into a LinkML schema. It is a pure
// function of its inputs: a structurally valid checklist always yields
// a valid schema, and two builds of the same checklist are identical.
func (b Builder) Build(c *checklist.Checklist) *Schema {
	schemaID := strings.TrimRight(b.BaseURI, "/") + "/" + c.Accession

	version := b.Version
	if version == "" {
		version = DefaultVersion
	}

	schema := &Schema{
		ID:          schemaID,
		Name:        c.Accession,
		Title:       c.Label,
		Description: c.Description,
		Version:     version,
		Imports:     []string{"linkml:types"},
		Prefixes: []Prefix{
			{Prefix: "linkml", Reference: "https://w3id.org/linkml/"},
			{Prefix: "ENA", Reference: "https://www.ebi.ac.uk/ena/browser/view/"},
		},
		DefaultRange: stringRange,
	}

	mainClass := Class{
		Name:        c.Accession,
		Title:       c.Label,
		Description: c.Description,
		IsA:         InterfaceClass,
	}

	enumIndex := make(map[string]int)
	rank := 1
	for _, group := range c.FieldGroups {
		for _, field := range group.Fields {
			schema.Slots = append(schema.Slots, buildSlot(field))
			mainClass.Slots = append(mainClass.Slots, field.Name)
			mainClass.SlotUsage = append(mainClass.SlotUsage, SlotUsage{
				Slot:      field.Name,
				Rank:      rank,
				SlotGroup: group.Name,
			})
			rank++

			if field.HasChoices() {
				enum := buildEnum(field)
				// Two fields can derive the same enum name; the
				// later field's values win, at the original position.
				if i, ok := enumIndex[enum.Name]; ok {
					schema.Enums[i] = enum
				} else {
					enumIndex[enum.Name] = len(schema.Enums)
					schema.Enums = append(schema.Enums, enum)
				}
			}
		}
	}

	schema.Classes = []Class{
		{
			Name:        InterfaceClass,
			Description: "A DataHarmonizer interface",
			FromSchema:  schemaID,
		},
		mainClass,
	}

	return schema
}

// buildSlot converts one checklist field into a slot definition.
func buildSlot(f checklist.Field) Slot {
	slot := Slot{
		Name:        f.Name,
		Title:       f.Label,
		Description: f.Description,
		Range:       stringRange,
		Required:    f.Required(),
		Pattern:     f.Pattern,
	}

	if f.HasChoices() {
		slot.Range = EnumName(f.Name)
	}

	if len(f.Units) > 0 {
		slot.Comments = []string{"Allowed units: " + strings.Join(f.Units, ", ")}
	}

	return slot
}

// buildEnum converts a non-empty choice field into an enum definition.
func buildEnum(f checklist.Field) Enum {
	return Enum{
		Name:   EnumName(f.Name),
		Values: append([]string(nil), f.Choices...),
	}
}

// EnumName derives an enum name from a snake_case field name by
// upper-casing the first letter of each underscore-separated segment,
// leaving the rest of each segment unchanged, and appending "Menu".
// Example: "trophic_level" becomes "TrophicLevelMenu".
func EnumName(fieldName string) string {
	var sb strings.Builder
	for _, part := range strings.Split(fieldName, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	sb.WriteString("Menu")
	return sb.String()
}
