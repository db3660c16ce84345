// Package rowstore implements a packed row-major physical layout: one
// contiguous buffer holding fixed-size records, with a trailing
// per-tuple NULL bitmap.
package rowstore

import (
	"fmt"
	"io"

	"github.com/tuplekit/dbkernel/catalog"
	"github.com/tuplekit/dbkernel/linear"
	"github.com/tuplekit/dbkernel/store"
)

const initialCapacity = 10

// RowStore materializes a table as packed rows in one contiguous
// buffer.
type RowStore struct {
	table *catalog.Table

	// attrOffsetBits[i] is the bit offset of attribute i within a row.
	attrOffsetBits []uint32
	// nullBitmapOffsetBits is the bit offset of the null bitmap within
	// a row, immediately after the last attribute.
	nullBitmapOffsetBits uint32
	// rowSizeBytes is the padded, per-row size in bytes.
	rowSizeBytes uint32

	base     []byte
	rows     int
	capacity int
}

// New lays out table row-major and returns a RowStore with initial
// capacity for a handful of rows.
func New(table *catalog.Table) *RowStore {
	attrOffsetBits, nullBitmapOffsetBits, rowSizeBytes := computeLayout(table)
	rs := &RowStore{
		table:                table,
		attrOffsetBits:       attrOffsetBits,
		nullBitmapOffsetBits: nullBitmapOffsetBits,
		rowSizeBytes:         rowSizeBytes,
		capacity:             initialCapacity,
	}
	rs.base = make([]byte, uint64(rowSizeBytes)*uint64(rs.capacity))
	return rs
}

// computeLayout assigns each attribute a bit offset within a row: for
// each attribute in declaration order, align the running bit offset up
// to the attribute's alignment (booleans need none and are packed a bit
// at a time), then place the null bitmap immediately after the last
// attribute, then pad the whole row up to the widest attribute's
// alignment (minimum one byte).
func computeLayout(table *catalog.Table) (attrOffsetBits []uint32, nullBitmapOffsetBits uint32, rowSizeBytes uint32) {
	attrs := table.Attributes()
	attrOffsetBits = make([]uint32, len(attrs))

	var running uint32
	maxAlignBits := uint32(1)
	for i, a := range attrs {
		size := a.Type().Size()
		if a.Type().IsBoolean() {
			// Booleans pack back-to-back with no alignment.
			attrOffsetBits[i] = running
			running += size
			continue
		}
		align := a.Type().AlignBits()
		running = store.AlignUp(running, align)
		if align > maxAlignBits {
			maxAlignBits = align
		}
		attrOffsetBits[i] = running
		running += size
	}

	nullBitmapOffsetBits = running
	running += uint32(len(attrs)) // one bit per attribute

	rowSizeBits := store.AlignUp(running, maxAlignBits)
	rowSizeBytes = rowSizeBits / 8
	return
}

// linearization builds the row's layout descriptor as a tree of opaque
// bit offsets, to be republished every time the backing buffer is
// reallocated.
func (rs *RowStore) linearization() *linear.Linearization {
	row := linear.CreateFinite(uint64(rs.table.Size())+1, rs.table.Size()+1)
	for _, a := range rs.table.Attributes() {
		row.AddSequence(uint64(rs.attrOffsetBits[a.Ordinal()]), 0, a)
	}
	row.AddNullBitmap(uint64(rs.nullBitmapOffsetBits), 0)

	root := linear.CreateInfinite(1)
	root.AddChild(0, uint64(rs.rowSizeBytes)*8, row)
	return root
}

// NumRows reports the number of live rows.
func (rs *RowStore) NumRows() int { return rs.rows }

// Append reserves space for one more row, doubling capacity (and
// re-publishing the linearization) if the buffer is full.
func (rs *RowStore) Append() error {
	if rs.rows == rs.capacity {
		rs.capacity *= 2
		grown := make([]byte, uint64(rs.rowSizeBytes)*uint64(rs.capacity))
		copy(grown, rs.base)
		rs.base = grown
	}
	rs.rows++
	return nil
}

// Drop removes the most recently appended row, or is a no-op if the
// store is empty.
func (rs *RowStore) Drop() {
	if rs.rows > 0 {
		rs.rows--
	}
}

// Linearization returns the store's current layout descriptor. Any
// address derived from a previous call is invalidated by a subsequent
// Append that grows the backing buffer.
func (rs *RowStore) Linearization() *linear.Linearization { return rs.linearization() }

// RowSizeBytes returns the padded per-row size in bytes.
func (rs *RowStore) RowSizeBytes() uint32 { return rs.rowSizeBytes }

// Base returns the current backing buffer. Callers must re-fetch it
// after any Append that grows the store.
func (rs *RowStore) Base() []byte { return rs.base }

// SetNull marks attribute ordinal of row as NULL or not-NULL.
func (rs *RowStore) SetNull(row uint64, ordinal int, isNull bool) {
	rowBase := row * uint64(rs.rowSizeBytes) * 8
	store.PackNullBitmap(rs.base, rowBase+uint64(rs.nullBitmapOffsetBits), ordinal, isNull)
}

// IsNull reports whether attribute ordinal of row is NULL.
func (rs *RowStore) IsNull(row uint64, ordinal int) bool {
	rowBase := row * uint64(rs.rowSizeBytes) * 8
	return store.IsNull(rs.base, rowBase+uint64(rs.nullBitmapOffsetBits), ordinal)
}

// Dump writes a human-readable description of the store to w.
func (rs *RowStore) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "RowStore(table=%s, row_size=%d bytes, rows=%d/%d)\n",
		rs.table.Name(), rs.rowSizeBytes, rs.rows, rs.capacity); err != nil {
		return err
	}
	for _, a := range rs.table.Attributes() {
		if _, err := fmt.Fprintf(w, "  %s: offset=%d bits, size=%d bits\n",
			a.Name(), rs.attrOffsetBits[a.Ordinal()], a.Type().Size()); err != nil {
			return err
		}
	}
	return nil
}

var _ store.Store = (*RowStore)(nil)
