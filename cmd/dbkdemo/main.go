// Command dbkdemo exercises the storage and planning packages end to
// end: it builds a table, appends synthetic rows to the physical layout
// chosen by the -pool flag, bulk-loads an index over one column, and runs join-order
// enumeration over a small synthetic query graph.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/tuplekit/dbkernel/bptree"
	"github.com/tuplekit/dbkernel/catalog"
	"github.com/tuplekit/dbkernel/colstore"
	"github.com/tuplekit/dbkernel/planner"
	"github.com/tuplekit/dbkernel/registry"
	"github.com/tuplekit/dbkernel/rowstore"
	"github.com/tuplekit/dbkernel/store"
)

var (
	numRows = flag.Int("rows", 1000, "number of synthetic rows to append")
	pool    = flag.String("pool", "row", "physical layout to demonstrate: row or col")
)

func main() {
	flag.Parse()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	table := catalog.NewTable("orders", []struct {
		Name string
		Type catalog.PrimitiveType
	}{
		{Name: "id", Type: catalog.NewInteger(4)},
		{Name: "customer_id", Type: catalog.NewInteger(4)},
		{Name: "total_cents", Type: catalog.NewInteger(8)},
		{Name: "shipped", Type: catalog.NewBoolean()},
	})

	reg := registry.New()
	reg.RegisterStore("row", func(t *catalog.Table) store.Store { return rowstore.New(t) })
	reg.RegisterStore("col", func(t *catalog.Table) store.Store { return colstore.New(t) })
	reg.SetDefaultStore(*pool)

	s, err := reg.CreateStore(table)
	if err != nil {
		return err
	}

	log.Printf("appending %d rows via the %q pool", *numRows, *pool)
	for i := 0; i < *numRows; i++ {
		if err := s.Append(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	if err := s.Dump(os.Stdout); err != nil {
		return err
	}

	runIndexDemo(*numRows)
	runPlannerDemo()
	return nil
}

// runIndexDemo bulk-loads a static index over a synthetic id column and
// runs a handful of point and range lookups against it.
func runIndexDemo(n int) {
	entries := make([]bptree.Entry[int, string], n)
	for i := 0; i < n; i++ {
		entries[i] = bptree.Entry[int, string]{Key: i, Value: "order"}
	}
	tree := bptree.Bulkload(entries)
	log.Printf("bulk-loaded index: %d entries, height %d", tree.NumEntries(), tree.Height())

	if v, ok := tree.Find(n / 2); ok {
		log.Printf("Find(%d) = %q", n/2, v)
	}
	cur := tree.InRange(0, 10)
	count := 0
	for {
		if _, ok := cur.Next(); !ok {
			break
		}
		count++
	}
	log.Printf("InRange(0, 10) returned %d entries", count)
}

// runPlannerDemo enumerates join orders over a small synthetic query
// graph of the orders table joined against customers and line items.
func runPlannerDemo() {
	g := planner.NewQueryGraph()
	orders := g.AddRelation("orders", 1000)
	customers := g.AddRelation("customers", 100)
	lineItems := g.AddRelation("line_items", 5000)
	g.AddJoin(orders, customers)
	g.AddJoin(orders, lineItems)

	pt := planner.NewPlanTable()
	for _, r := range g.Relations() {
		pt.SetBase(r.ID, planner.Cost(r.Size))
	}
	planner.Enumerate(g, planner.DefaultCostFunction, pt)

	var full planner.Subproblem
	for _, r := range g.Relations() {
		full = full.Set(r.ID)
	}
	plan := pt.BuildPlan(full)
	if plan == nil {
		log.Print("no plan found covering all relations")
		return
	}
	log.Printf("optimized join order found, estimated cost %d", plan.Cost)
}
