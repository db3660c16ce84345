package rowstore

import (
	"bytes"
	"testing"

	"github.com/tuplekit/dbkernel/catalog"
)

func tableOf(fields ...struct {
	Name string
	Type catalog.PrimitiveType
}) *catalog.Table {
	return catalog.NewTable("t", fields)
}

func TestComputeLayoutFiveBooleans(t *testing.T) {
	// 5 booleans + 5 null bits = 10 bits total -> padded up to 2 bytes.
	fields := make([]struct {
		Name string
		Type catalog.PrimitiveType
	}, 5)
	for i := range fields {
		fields[i] = struct {
			Name string
			Type catalog.PrimitiveType
		}{Name: string(rune('a' + i)), Type: catalog.NewBoolean()}
	}
	table := tableOf(fields...)
	rs := New(table)
	if rs.RowSizeBytes() != 2 {
		t.Fatalf("expected row size 2 bytes, got %d", rs.RowSizeBytes())
	}
}

func TestAppendGrowsCapacityAndPreservesData(t *testing.T) {
	table := tableOf(struct {
		Name string
		Type catalog.PrimitiveType
	}{Name: "id", Type: catalog.NewInteger(4)})
	rs := New(table)

	for i := 0; i < initialCapacity; i++ {
		if err := rs.Append(); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if rs.NumRows() != initialCapacity {
		t.Fatalf("expected %d rows, got %d", initialCapacity, rs.NumRows())
	}

	rs.SetNull(0, 0, true)
	if err := rs.Append(); err != nil { // forces a grow
		t.Fatalf("Append failed: %v", err)
	}
	if rs.NumRows() != initialCapacity+1 {
		t.Fatalf("expected %d rows after growth, got %d", initialCapacity+1, rs.NumRows())
	}
	if !rs.IsNull(0, 0) {
		t.Fatalf("expected row 0's NULL flag to survive a capacity grow")
	}
}

func TestDropRemovesLastRow(t *testing.T) {
	table := tableOf(struct {
		Name string
		Type catalog.PrimitiveType
	}{Name: "id", Type: catalog.NewInteger(4)})
	rs := New(table)
	_ = rs.Append()
	_ = rs.Append()
	rs.Drop()
	if rs.NumRows() != 1 {
		t.Fatalf("expected 1 row after Drop, got %d", rs.NumRows())
	}
	rs.Drop()
	rs.Drop() // no-op on an empty store
	if rs.NumRows() != 0 {
		t.Fatalf("expected 0 rows, got %d", rs.NumRows())
	}
}

func TestLinearizationResolvesAttributeAddresses(t *testing.T) {
	table := tableOf(
		struct {
			Name string
			Type catalog.PrimitiveType
		}{Name: "id", Type: catalog.NewInteger(4)},
		struct {
			Name string
			Type catalog.PrimitiveType
		}{Name: "flag", Type: catalog.NewBoolean()},
	)
	rs := New(table)
	_ = rs.Append()
	_ = rs.Append()

	lin := rs.Linearization()
	addr0, ok := lin.AttributeAddress(0, 0)
	if !ok || addr0 != uint64(rs.attrOffsetBits[0]) {
		t.Fatalf("row 0 attribute 0 address = (%d,%v), want (%d,true)", addr0, ok, rs.attrOffsetBits[0])
	}
	addr1, ok := lin.AttributeAddress(1, 0)
	if !ok || addr1 != uint64(rs.RowSizeBytes())*8+uint64(rs.attrOffsetBits[0]) {
		t.Fatalf("row 1 attribute 0 address = (%d,%v)", addr1, ok)
	}

	if _, err := rowStoreDump(rs); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
}

func rowStoreDump(rs *RowStore) (string, error) {
	var buf bytes.Buffer
	if err := rs.Dump(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
