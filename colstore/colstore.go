// Package colstore implements a column-major physical layout: one
// contiguous buffer per attribute plus one for the shared NULL bitmap,
// grown in lockstep as rows are appended.
package colstore

import (
	"fmt"
	"io"

	"github.com/tuplekit/dbkernel/catalog"
	"github.com/tuplekit/dbkernel/linear"
	"github.com/tuplekit/dbkernel/store"
)

const initialCapacity = 8

// ColumnStore materializes a table as one packed buffer per attribute,
// plus a shared per-tuple NULL bitmap buffer.
type ColumnStore struct {
	table *catalog.Table

	columns    [][]byte // one buffer per attribute, byte-packed
	nullBitmap []byte
	rows       int
	capacity   int
}

// New lays out table column-major and returns a ColumnStore with
// initial capacity for a handful of rows.
func New(table *catalog.Table) *ColumnStore {
	cs := &ColumnStore{
		table:    table,
		columns:  make([][]byte, table.Size()),
		capacity: initialCapacity,
	}
	for _, a := range table.Attributes() {
		cs.columns[a.Ordinal()] = make([]byte, columnBytes(a.Type().Size(), cs.capacity))
	}
	cs.nullBitmap = make([]byte, store.BytesForBits(uint64(table.Size())*uint64(cs.capacity)))
	return cs
}

// columnBytes returns the number of bytes needed to hold capacity
// values of bitWidth bits each, packed back-to-back (so a boolean
// column is bit-packed, not byte-padded per value).
func columnBytes(bitWidth uint32, capacity int) uint64 {
	return store.BytesForBits(uint64(bitWidth) * uint64(capacity))
}

// linearization builds the store's layout descriptor: an outer infinite
// sequence list with one entry per attribute (stride = the attribute's
// bit width) plus one for the null bitmap (stride = one bit per
// attribute row), each wrapping a trivial single-sequence child whose
// own stride is zero. This mirrors RowStore's shape turned inside out:
// there the outer stride is shared and the per-attribute offsets vary
// inside the child; here each attribute gets its own outer stride since
// every attribute lives in its own buffer.
func (cs *ColumnStore) linearization() *linear.Linearization {
	root := linear.CreateInfinite(cs.table.Size() + 1)
	for _, a := range cs.table.Attributes() {
		leaf := linear.CreateFinite(1, 1)
		leaf.AddSequence(0, 0, a)
		root.AddChild(0, uint64(a.Type().Size()), leaf)
	}
	leaf := linear.CreateFinite(1, 1)
	leaf.AddNullBitmap(0, 0)
	root.AddChild(0, uint64(cs.table.Size()), leaf)
	return root
}

// NumRows reports the number of live rows.
func (cs *ColumnStore) NumRows() int { return cs.rows }

// Append reserves space for one more row in every column and the null
// bitmap, doubling capacity (and re-publishing the linearization) if
// any buffer is full.
func (cs *ColumnStore) Append() error {
	if cs.rows == cs.capacity {
		cs.capacity *= 2
		for _, a := range cs.table.Attributes() {
			grown := make([]byte, columnBytes(a.Type().Size(), cs.capacity))
			copy(grown, cs.columns[a.Ordinal()])
			cs.columns[a.Ordinal()] = grown
		}
		grownBitmap := make([]byte, store.BytesForBits(uint64(cs.table.Size())*uint64(cs.capacity)))
		copy(grownBitmap, cs.nullBitmap)
		cs.nullBitmap = grownBitmap
	}
	cs.rows++
	return nil
}

// Drop removes the most recently appended row, or is a no-op if the
// store is empty.
func (cs *ColumnStore) Drop() {
	if cs.rows > 0 {
		cs.rows--
	}
}

// Linearization returns the store's current layout descriptor. Any
// address derived from a previous call is invalidated by a subsequent
// Append that grows a backing buffer.
func (cs *ColumnStore) Linearization() *linear.Linearization { return cs.linearization() }

// Column returns the current backing buffer for the attribute at the
// given ordinal. Callers must re-fetch it after any Append that grows
// the store.
func (cs *ColumnStore) Column(ordinal int) []byte { return cs.columns[ordinal] }

// SetNull marks attribute ordinal of row as NULL or not-NULL.
func (cs *ColumnStore) SetNull(row uint64, ordinal int, isNull bool) {
	bitOffset := row * uint64(cs.table.Size())
	store.PackNullBitmap(cs.nullBitmap, bitOffset, ordinal, isNull)
}

// IsNull reports whether attribute ordinal of row is NULL.
func (cs *ColumnStore) IsNull(row uint64, ordinal int) bool {
	bitOffset := row * uint64(cs.table.Size())
	return store.IsNull(cs.nullBitmap, bitOffset, ordinal)
}

// Dump writes a human-readable description of the store to w.
func (cs *ColumnStore) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "ColumnStore(table=%s, rows=%d/%d)\n",
		cs.table.Name(), cs.rows, cs.capacity); err != nil {
		return err
	}
	for _, a := range cs.table.Attributes() {
		if _, err := fmt.Fprintf(w, "  %s: %d bits/value, buffer=%d bytes\n",
			a.Name(), a.Type().Size(), len(cs.columns[a.Ordinal()])); err != nil {
			return err
		}
	}
	return nil
}

var _ store.Store = (*ColumnStore)(nil)
