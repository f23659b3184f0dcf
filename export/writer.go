// Package export serializes LinkML schemas to YAML.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seqschema/checklistml/linkml"
)

// Options configures a Writer. Serialization rules that are functional
// properties of the output format (key order, block style, lowercase
// booleans, literal blocks for multiline strings) are not configurable.
type Options struct {
	// Indent is the indentation width in spaces. Zero means the
	// default of 2.
	Indent int
}

// Writer serializes schemas with deterministic key ordering: mapping
// keys appear in the order the builder produced them, never re-sorted,
// because slot order carries display semantics.
type Writer struct {
	indent int
}

// NewWriter creates a writer with the given options.
func NewWriter(opts Options) *Writer {
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	return &Writer{indent: indent}
}

// Marshal serializes a schema to YAML.
func (w *Writer) Marshal(s *linkml.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(w.indent)
	if err := enc.Encode(schemaNode(s)); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile serializes a schema and writes it to path, creating any
// missing parent directories. The schema is serialized to memory first
// so a serialization failure never leaves a partial file behind.
func (w *Writer) WriteFile(s *linkml.Schema, path string) error {
	data, err := w.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

// schemaNode builds the document node for a schema. Top-level key
// order: id, name, title, description, version, imports, prefixes,
// default_range, classes, slots, enums. The enums key is omitted
// entirely when no enum was generated.
func schemaNode(s *linkml.Schema) *yaml.Node {
	m := newMapping()
	m.put("id", str(s.ID))
	m.put("name", str(s.Name))
	m.put("title", str(s.Title))
	m.put("description", str(s.Description))
	m.put("version", str(s.Version))

	imports := newSequence()
	for _, imp := range s.Imports {
		imports.add(str(imp))
	}
	m.put("imports", imports.node)

	prefixes := newMapping()
	for _, p := range s.Prefixes {
		prefixes.put(p.Prefix, str(p.Reference))
	}
	m.put("prefixes", prefixes.node)

	m.put("default_range", str(s.DefaultRange))

	classes := newMapping()
	for i := range s.Classes {
		classes.put(s.Classes[i].Name, classNode(&s.Classes[i]))
	}
	m.put("classes", classes.node)

	slots := newMapping()
	for i := range s.Slots {
		slots.put(s.Slots[i].Name, slotNode(&s.Slots[i]))
	}
	m.put("slots", slots.node)

	if len(s.Enums) > 0 {
		enums := newMapping()
		for i := range s.Enums {
			enums.put(s.Enums[i].Name, enumNode(&s.Enums[i]))
		}
		m.put("enums", enums.node)
	}

	return m.node
}

// classNode builds a class body. The interface class carries name,
// description and from_schema; the main class carries name, title,
// description, is_a, slots and slot_usage.
func classNode(c *linkml.Class) *yaml.Node {
	m := newMapping()
	m.put("name", str(c.Name))

	if c.FromSchema != "" {
		m.put("description", str(c.Description))
		m.put("from_schema", str(c.FromSchema))
		return m.node
	}

	m.put("title", str(c.Title))
	m.put("description", str(c.Description))
	m.put("is_a", str(c.IsA))

	slots := newSequence()
	for _, name := range c.Slots {
		slots.add(str(name))
	}
	m.put("slots", slots.node)

	usage := newMapping()
	for _, u := range c.SlotUsage {
		um := newMapping()
		um.put("rank", integer(u.Rank))
		um.put("slot_group", str(u.SlotGroup))
		usage.put(u.Slot, um.node)
	}
	m.put("slot_usage", usage.node)

	return m.node
}

// slotNode builds a slot body. The required, pattern and comments keys
// are emitted only when set.
func slotNode(s *linkml.Slot) *yaml.Node {
	m := newMapping()
	m.put("name", str(s.Name))
	m.put("title", str(s.Title))
	m.put("description", str(s.Description))
	m.put("range", str(s.Range))
	if s.Required {
		m.put("required", boolean(true))
	}
	if s.Pattern != "" {
		m.put("pattern", str(s.Pattern))
	}
	if len(s.Comments) > 0 {
		comments := newSequence()
		for _, c := range s.Comments {
			comments.add(str(c))
		}
		m.put("comments", comments.node)
	}
	return m.node
}

// enumNode builds an enum body. Each permissible value maps to itself
// as display text.
func enumNode(e *linkml.Enum) *yaml.Node {
	m := newMapping()
	m.put("name", str(e.Name))

	values := newMapping()
	for _, v := range e.Values {
		vm := newMapping()
		vm.put("text", str(v))
		values.put(v, vm.node)
	}
	m.put("permissible_values", values.node)

	return m.node
}

// mapping accumulates key/value pairs into a block-style mapping node.
type mapping struct {
	node *yaml.Node
}

func newMapping() mapping {
	return mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

func (m mapping) put(key string, value *yaml.Node) {
	m.node.Content = append(m.node.Content, str(key), value)
}

// sequence accumulates items into a block-style sequence node.
type sequence struct {
	node *yaml.Node
}

func newSequence() sequence {
	return sequence{node: &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}}
}

func (s sequence) add(item *yaml.Node) {
	s.node.Content = append(s.node.Content, item)
}

// str builds a string scalar. Strings containing a line break use
// literal block style so newlines survive round-tripping; everything
// else renders as a plain scalar.
func str(v string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	if strings.Contains(v, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

// boolean builds a bool scalar rendered as lowercase true/false.
func boolean(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

// integer builds an int scalar.
func integer(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}
