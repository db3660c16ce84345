// Package linear implements the Linearization descriptor the host reads
// to compute the bit address of (tuple, attribute) pairs.
//
// A Linearization is a tree of Sequences. Each Sequence is exactly one
// of: an attribute sequence (Attribute != nil), a null-bitmap sequence
// (NullBitmap == true), or a nested child Linearization (Child != nil).
// Offset is an opaque bit offset rather than an absolute address — the
// host adds its own current base address when resolving a Sequence,
// which is what lets a store re-grow its backing buffers without the
// descriptor itself needing to know where those buffers live.
package linear

import "github.com/tuplekit/dbkernel/catalog"

// Sequence is one element of a Linearization's sequence list.
type Sequence struct {
	// Offset is the bit offset of the first repetition within its
	// containing block.
	Offset uint64
	// Stride is the number of bits advanced per repetition.
	Stride uint64

	// Attribute is set for an attribute sequence.
	Attribute *catalog.Attribute
	// NullBitmap is true for a null-bitmap sequence: one bit per
	// attribute in schema order, starting at Offset.
	NullBitmap bool
	// Child is set for a nested child-linearization sequence.
	Child *Linearization
}

// Linearization is a node in the layout-descriptor tree.
type Linearization struct {
	// Infinite is true for a root with unknown row count.
	Infinite bool
	// NumTuples is the declared length of this sequence list; only
	// meaningful when Infinite is false.
	NumTuples uint64

	Sequences []Sequence
}

// CreateInfinite returns a Linearization with unknown row count,
// reserving capacity for numSeqHint sequences.
func CreateInfinite(numSeqHint int) *Linearization {
	return &Linearization{Infinite: true, Sequences: make([]Sequence, 0, numSeqHint)}
}

// CreateFinite returns a Linearization of known length numTuples,
// reserving capacity for numSeqHint sequences.
func CreateFinite(numTuples uint64, numSeqHint int) *Linearization {
	return &Linearization{NumTuples: numTuples, Sequences: make([]Sequence, 0, numSeqHint)}
}

// AddSequence appends an attribute sequence at the given bit offset and
// stride.
func (l *Linearization) AddSequence(offset, stride uint64, attr catalog.Attribute) {
	l.Sequences = append(l.Sequences, Sequence{Offset: offset, Stride: stride, Attribute: &attr})
}

// AddNullBitmap appends the table's null-bitmap sequence at the given
// bit offset and stride.
func (l *Linearization) AddNullBitmap(offset, stride uint64) {
	l.Sequences = append(l.Sequences, Sequence{Offset: offset, Stride: stride, NullBitmap: true})
}

// AddChild appends a nested child-linearization sequence at the given
// bit offset and stride.
func (l *Linearization) AddChild(offset, stride uint64, child *Linearization) {
	l.Sequences = append(l.Sequences, Sequence{Offset: offset, Stride: stride, Child: child})
}

// AttributeAddress descends the linearization tree and returns the bit
// address of the given attribute ordinal at tuple index row, or false if
// no such attribute sequence is reachable.
func (l *Linearization) AttributeAddress(row uint64, ordinal int) (uint64, bool) {
	return l.resolve(row, func(s *Sequence) bool {
		return s.Attribute != nil && s.Attribute.Ordinal() == ordinal
	})
}

// NullBitmapAddress descends the linearization tree and returns the bit
// address of the start of the null bitmap at tuple index row, or false
// if no null-bitmap sequence is reachable. The bit for attribute ordinal
// i lives at the returned address plus i.
func (l *Linearization) NullBitmapAddress(row uint64) (uint64, bool) {
	return l.resolve(row, func(s *Sequence) bool { return s.NullBitmap })
}

func (l *Linearization) resolve(row uint64, match func(*Sequence) bool) (uint64, bool) {
	for i := range l.Sequences {
		s := &l.Sequences[i]
		if match(s) {
			return s.Offset + row*s.Stride, true
		}
		if s.Child != nil {
			if childAddr, ok := s.Child.resolve(row, match); ok {
				return s.Offset + row*s.Stride + childAddr, true
			}
		}
	}
	return 0, false
}
