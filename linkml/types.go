// Package linkml builds LinkML schema object graphs from parsed ENA
// checklists.
package linkml

// Schema is the root of one generated LinkML schema. Mapping-valued
// sections are held as ordered slices because their key order is
// semantically meaningful and must survive serialization.
type Schema struct {
	// ID is the schema URI, base URI joined with the accession.
	ID string

	// Name is the schema name, equal to the checklist accession.
	Name string

	// Title is the checklist label.
	Title string

	// Description is the checklist description.
	Description string

	// Version is the schema version string.
	Version string

	// Imports lists imported LinkML modules.
	Imports []string

	// Prefixes maps prefix names to namespace URIs, in order.
	Prefixes []Prefix

	// DefaultRange is the default slot range.
	DefaultRange string

	// Classes holds the interface class followed by the main class.
	Classes []Class

	// Slots holds one slot per checklist field, in flattened field
	// order, keyed by Slot.Name.
	Slots []Slot

	// Enums holds the generated enums in field traversal order, keyed
	// by Enum.Name. Empty when no choice field produced an enum.
	Enums []Enum
}

// SlotByName returns the slot with the given name, or nil.
func (s *Schema) SlotByName(name string) *Slot {
	for i := range s.Slots {
		if s.Slots[i].Name == name {
			return &s.Slots[i]
		}
	}
	return nil
}

// EnumByName returns the enum with the given name, or nil.
func (s *Schema) EnumByName(name string) *Enum {
	for i := range s.Enums {
		if s.Enums[i].Name == name {
			return &s.Enums[i]
		}
	}
	return nil
}

// RequiredCount returns the number of required slots.
func (s *Schema) RequiredCount() int {
	n := 0
	for i := range s.Slots {
		if s.Slots[i].Required {
			n++
		}
	}
	return n
}

// Prefix is one namespace prefix binding.
type Prefix struct {
	Prefix    string
	Reference string
}

// Slot is one LinkML slot definition.
type Slot struct {
	// Name is the slot key, equal to the source field name.
	Name string

	// Title is the field label.
	Title string

	// Description is the field description.
	Description string

	// Range is the slot range: an enum name for non-empty choice
	// fields, the generic string range otherwise.
	Range string

	// Required is true only for fields whose mandatory string is
	// exactly "mandatory". The key is omitted from output when false.
	Required bool

	// Pattern is the regular expression constraint, empty when the
	// field declares none. Omitted from output when empty.
	Pattern string

	// Comments holds advisory notes (the allowed-units comment).
	// Omitted from output when empty.
	Comments []string
}

// Enum is one LinkML enumeration definition.
type Enum struct {
	// Name is the enum key, derived from the source field name.
	Name string

	// Values holds the permissible values in source order. Each value
	// maps to itself as display text.
	Values []string
}

// Class is one LinkML class definition.
type Class struct {
	// Name is the class key.
	Name string

	// Title is the class title. Set only on the main class.
	Title string

	// Description describes the class.
	Description string

	// FromSchema is the owning schema URI. Set only on the interface
	// class.
	FromSchema string

	// IsA names the parent class. Set only on the main class.
	IsA string

	// Slots lists the class's slot names in flattened field order.
	Slots []string

	// SlotUsage carries per-slot ordering and grouping metadata, in
	// slot order.
	SlotUsage []SlotUsage
}

// SlotUsage ties a slot to its display rank and originating group.
type SlotUsage struct {
	// Slot is the slot name.
	Slot string

	// Rank is the 1-based position across the flattened checklist.
	Rank int

	// SlotGroup is the name of the originating field group.
	SlotGroup string
}
