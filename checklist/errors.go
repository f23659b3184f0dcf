package checklist

import "fmt"

// ParseError indicates the input document is not well-formed XML.
type ParseError struct {
	// Path is the source file or document name.
	Path string

	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse checklist %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError indicates a well-formed document that is missing a
// required element.
type StructureError struct {
	// Path is the source file or document name.
	Path string

	// Element is the missing element tag.
	Element string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("checklist %s: missing %s element", e.Path, e.Element)
}
