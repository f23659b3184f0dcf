package checklist

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// xmlDocument covers both observed document shapes: a wrapper element
// containing a CHECKLIST child, or the CHECKLIST element as the root.
type xmlDocument struct {
	XMLName       xml.Name
	Accession     string         `xml:"accession,attr"`
	ChecklistType string         `xml:"checklistType,attr"`
	Descriptor    *xmlDescriptor `xml:"DESCRIPTOR"`
	Checklist     *xmlChecklist  `xml:"CHECKLIST"`
}

type xmlChecklist struct {
	Accession     string         `xml:"accession,attr"`
	ChecklistType string         `xml:"checklistType,attr"`
	Descriptor    *xmlDescriptor `xml:"DESCRIPTOR"`
}

type xmlDescriptor struct {
	Label       string          `xml:"LABEL"`
	Name        string          `xml:"NAME"`
	Description string          `xml:"DESCRIPTION"`
	Authority   string          `xml:"AUTHORITY"`
	Groups      []xmlFieldGroup `xml:"FIELD_GROUP"`
}

type xmlFieldGroup struct {
	RestrictionType string     `xml:"restrictionType,attr"`
	Name            string     `xml:"NAME"`
	Fields          []xmlField `xml:"FIELD"`
}

type xmlField struct {
	Label        string        `xml:"LABEL"`
	Name         string        `xml:"NAME"`
	Description  string        `xml:"DESCRIPTION"`
	Mandatory    string        `xml:"MANDATORY"`
	Multiplicity string        `xml:"MULTIPLICITY"`
	FieldType    *xmlFieldType `xml:"FIELD_TYPE"`
	Units        *xmlUnits     `xml:"UNITS"`
}

type xmlFieldType struct {
	TextField   *xmlTextField   `xml:"TEXT_FIELD"`
	ChoiceField *xmlChoiceField `xml:"TEXT_CHOICE_FIELD"`
}

type xmlTextField struct {
	RegexValue string `xml:"REGEX_VALUE"`
}

type xmlChoiceField struct {
	Values []xmlTextValue `xml:"TEXT_VALUE"`
}

type xmlTextValue struct {
	Value string `xml:"VALUE"`
}

type xmlUnits struct {
	Units []string `xml:"UNIT"`
}

// Parse reads and parses the checklist document at path.
func Parse(path string) (*Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist: %w", err)
	}
	return ParseBytes(path, data)
}

// ParseBytes parses a checklist document held in memory. The name is
// used for error reporting only.
//
// A nested CHECKLIST element is preferred as the checklist container;
// when none exists the document root itself is treated as the
// container. Missing attributes and absent text elements yield empty
// strings, never errors; a missing DESCRIPTOR yields a StructureError.
func ParseBytes(name string, data []byte) (*Checklist, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	accession := doc.Accession
	checklistType := doc.ChecklistType
	descriptor := doc.Descriptor
	if doc.Checklist != nil {
		accession = doc.Checklist.Accession
		checklistType = doc.Checklist.ChecklistType
		descriptor = doc.Checklist.Descriptor
	}
	if descriptor == nil {
		return nil, &StructureError{Path: name, Element: "DESCRIPTOR"}
	}

	c := &Checklist{
		Accession:     accession,
		ChecklistType: checklistType,
		Label:         strings.TrimSpace(descriptor.Label),
		Name:          strings.TrimSpace(descriptor.Name),
		Description:   strings.TrimSpace(descriptor.Description),
		Authority:     strings.TrimSpace(descriptor.Authority),
	}

	for _, g := range descriptor.Groups {
		group := FieldGroup{
			Name:            strings.TrimSpace(g.Name),
			RestrictionType: g.RestrictionType,
		}
		for _, f := range g.Fields {
			group.Fields = append(group.Fields, parseField(f))
		}
		c.FieldGroups = append(c.FieldGroups, group)
	}

	return c, nil
}

// parseField converts one FIELD element into a Field record.
func parseField(f xmlField) Field {
	field := Field{
		Label:        strings.TrimSpace(f.Label),
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		Type:         FieldTypeText,
		Mandatory:    strings.TrimSpace(f.Mandatory),
		Multiplicity: strings.TrimSpace(f.Multiplicity),
	}

	if f.FieldType != nil {
		switch {
		case f.FieldType.ChoiceField != nil:
			field.Type = FieldTypeChoice
			for _, tv := range f.FieldType.ChoiceField.Values {
				if val := strings.TrimSpace(tv.Value); val != "" {
					field.Choices = append(field.Choices, val)
				}
			}
		case f.FieldType.TextField != nil:
			field.Pattern = strings.TrimSpace(f.FieldType.TextField.RegexValue)
		}
	}

	if f.Units != nil {
		for _, u := range f.Units.Units {
			if unit := strings.TrimSpace(u); unit != "" {
				field.Units = append(field.Units, unit)
			}
		}
	}

	return field
}
