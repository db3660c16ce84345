package catalog

import "golang.org/x/text/unicode/norm"

// Attribute is a typed column of a Table: a name, its ordinal within the
// table, and a PrimitiveType. It is read-only once constructed.
type Attribute struct {
	name    string
	ordinal int
	typ     PrimitiveType
}

// Name returns the attribute's NFC-normalized name.
func (a Attribute) Name() string { return a.name }

// Ordinal returns the attribute's position within its table, starting at 0.
func (a Attribute) Ordinal() int { return a.ordinal }

// Type returns the attribute's primitive type.
func (a Attribute) Type() PrimitiveType { return a.typ }

// Table is an ordered sequence of attributes with a name. It is the
// host-provided schema description stores are built against.
type Table struct {
	name       string
	attributes []Attribute
}

// NewTable builds a Table from a name and an ordered list of
// (name, type) pairs, assigning ordinals in declaration order. Attribute
// and table names are normalized to Unicode NFC so that two differently
// composed spellings of the same identifier compare equal.
//
// NewTable panics if attrs is empty: a zero-attribute table is a
// programmer-precondition violation, not a runtime data error.
func NewTable(name string, attrs []struct {
	Name string
	Type PrimitiveType
}) *Table {
	if len(attrs) == 0 {
		panic("catalog: table must have at least one attribute")
	}
	t := &Table{
		name:       norm.NFC.String(name),
		attributes: make([]Attribute, len(attrs)),
	}
	for i, a := range attrs {
		t.attributes[i] = Attribute{
			name:    norm.NFC.String(a.Name),
			ordinal: i,
			typ:     a.Type,
		}
	}
	return t
}

// Name returns the table's NFC-normalized name.
func (t *Table) Name() string { return t.name }

// Size returns the number of attributes in the table.
func (t *Table) Size() int { return len(t.attributes) }

// Attributes returns the table's attributes in declaration order. The
// returned slice must not be mutated by the caller.
func (t *Table) Attributes() []Attribute { return t.attributes }

// At returns the attribute at the given ordinal.
func (t *Table) At(ordinal int) Attribute { return t.attributes[ordinal] }
