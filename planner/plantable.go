package planner

import (
	"fmt"
	"io"
)

// Plan is the cheapest known derivation for a Subproblem: either a
// base relation (IsLeaf) or a join of Left and Right, two disjoint
// subproblems whose union is the Subproblem this Plan is stored under.
type Plan struct {
	Cost   Cost
	Size   Cost
	Left   Subproblem
	Right  Subproblem
	IsLeaf bool
}

// PlanTable retains, for every connected Subproblem visited so far, the
// cheapest (left, right) derivation found.
type PlanTable struct {
	plans map[Subproblem]Plan
}

// NewPlanTable returns an empty PlanTable.
func NewPlanTable() *PlanTable {
	return &PlanTable{plans: make(map[Subproblem]Plan)}
}

// SetBase seeds the table with a base relation's plan: zero cost, and
// size equal to its cardinality estimate.
func (pt *PlanTable) SetBase(id int, size Cost) {
	sp := Subproblem{}.Set(id)
	pt.plans[sp] = Plan{Size: size, IsLeaf: true}
}

// HasPlan reports whether sp has a recorded plan.
func (pt *PlanTable) HasPlan(sp Subproblem) bool {
	_, ok := pt.plans[sp]
	return ok
}

// Plan returns the recorded plan for sp, if any.
func (pt *PlanTable) Plan(sp Subproblem) (Plan, bool) {
	p, ok := pt.plans[sp]
	return p, ok
}

// Cost returns the recorded cost for sp, or zero if sp has no plan.
func (pt *PlanTable) Cost(sp Subproblem) Cost { return pt.plans[sp].Cost }

// Size returns the recorded size estimate for sp, or zero if sp has no
// plan.
func (pt *PlanTable) Size(sp Subproblem) Cost { return pt.plans[sp].Size }

// Update considers joining left and right, recording the result under
// their union if it beats (or is the first plan for) that union. The
// merged size estimate is the product of the two input sizes, the
// same cross-join cardinality estimate the cost function's Size terms
// are built from.
func (pt *PlanTable) Update(cf CostFunction, left, right Subproblem) {
	cost := cf(left, right, pt)
	merged := left.Union(right)
	if existing, ok := pt.plans[merged]; !ok || cost < existing.Cost {
		size := pt.Size(left) * pt.Size(right)
		pt.plans[merged] = Plan{Cost: cost, Size: size, Left: left, Right: right}
	}
}

// PlanNode is a materialized join tree read back out of a PlanTable.
type PlanNode struct {
	Relations Subproblem
	Cost      Cost
	Left      *PlanNode
	Right     *PlanNode
}

// BuildPlan reconstructs the join tree for sp from pt's recorded
// derivations, or returns nil if sp has no plan.
func (pt *PlanTable) BuildPlan(sp Subproblem) *PlanNode {
	p, ok := pt.plans[sp]
	if !ok {
		return nil
	}
	node := &PlanNode{Relations: sp, Cost: p.Cost}
	if !p.IsLeaf {
		node.Left = pt.BuildPlan(p.Left)
		node.Right = pt.BuildPlan(p.Right)
	}
	return node
}

// Dump writes every recorded subproblem and its cost to w, for
// diagnostic use by the host.
func (pt *PlanTable) Dump(w io.Writer) error {
	for sp, p := range pt.plans {
		if _, err := fmt.Fprintf(w, "%v: cost=%d size=%d leaf=%v\n", sp.Bits(), p.Cost, p.Size, p.IsLeaf); err != nil {
			return err
		}
	}
	return nil
}
