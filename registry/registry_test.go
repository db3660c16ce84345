package registry

import (
	"io"
	"testing"

	"github.com/tuplekit/dbkernel/catalog"
	"github.com/tuplekit/dbkernel/linear"
	"github.com/tuplekit/dbkernel/store"
)

// fakeStore is a minimal store.Store used to exercise Registry without
// depending on a concrete physical layout.
type fakeStore struct{}

func (fakeStore) NumRows() int                        { return 0 }
func (fakeStore) Append() error                        { return nil }
func (fakeStore) Drop()                                {}
func (fakeStore) Linearization() *linear.Linearization { return linear.CreateInfinite(0) }
func (fakeStore) Dump(w io.Writer) error               { return nil }

var _ store.Store = fakeStore{}

func oneColumnTable(name string) *catalog.Table {
	return catalog.NewTable(name, []struct {
		Name string
		Type catalog.PrimitiveType
	}{{Name: "x", Type: catalog.NewInteger(4)}})
}

func TestRegistryDefaultAndNamedPools(t *testing.T) {
	r := New()
	if _, err := r.CreateStore(oneColumnTable("t")); err == nil {
		t.Fatalf("expected an error with no default pool set")
	}

	called := false
	r.RegisterStore("row", func(t *catalog.Table) store.Store {
		called = true
		return fakeStore{}
	})
	if _, err := r.CreateStoreFromPool("col", oneColumnTable("t")); err == nil {
		t.Fatalf("expected an error for an unregistered pool")
	}

	r.SetDefaultStore("row")
	if _, err := r.CreateStore(oneColumnTable("t")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected the registered factory to be invoked")
	}
}
