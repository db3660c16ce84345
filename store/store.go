// Package store defines the capability interface that RowStore and
// ColumnStore implement, plus the bit-packing helpers shared by both
// physical layouts.
package store

import (
	"errors"
	"io"

	"github.com/tuplekit/dbkernel/linear"
)

// ErrCapacity is the error a Store's Append returns when it refuses to
// grow its backing buffers. RowStore and ColumnStore never return it:
// no capacity ceiling can be set on them, and their Append always grows
// and returns nil.
var ErrCapacity = errors.New("store: capacity exceeded")

// Store is the capability interface a physical layout implements. A
// host kernel drives it directly through this interface rather than
// through virtual dispatch or a visitor.
type Store interface {
	// NumRows reports the number of live rows.
	NumRows() int

	// Append reserves space for one more row, growing the backing
	// buffers (and re-publishing the Linearization) if necessary.
	Append() error

	// Drop removes the most recently appended row, or is a no-op if
	// the store is empty.
	Drop()

	// Linearization returns the store's current layout descriptor.
	// Any address derived from a previous call is invalidated once
	// Append grows the store.
	Linearization() *linear.Linearization

	// Dump writes a human-readable description of the store to w, for
	// diagnostic use by the host. Nothing in this package logs on its
	// own.
	Dump(w io.Writer) error
}
