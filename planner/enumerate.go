package planner

// connectedSubsets returns every non-empty connected subset of ids.
func connectedSubsets(ids []int, m AdjacencyMatrix) []Subproblem {
	n := len(ids)
	var out []Subproblem
	for mask := 1; mask < (1 << uint(n)); mask++ {
		var sp Subproblem
		for x := 0; x < n; x++ {
			if mask&(1<<uint(x)) != 0 {
				sp = sp.Set(ids[x])
			}
		}
		if m.IsConnected(sp) {
			out = append(out, sp)
		}
	}
	return out
}

// connectedSubsetsOfSize returns every connected subset of ids with
// exactly size members.
func connectedSubsetsOfSize(ids []int, size int, m AdjacencyMatrix) []Subproblem {
	var out []Subproblem
	for _, sp := range connectedSubsets(ids, m) {
		if sp.Count() == size {
			out = append(out, sp)
		}
	}
	return out
}

// connectedSubsetsOf returns every non-empty connected subset of
// source's own members.
func connectedSubsetsOf(source Subproblem, m AdjacencyMatrix) []Subproblem {
	return connectedSubsets(source.Bits(), m)
}

// Enumerate runs DPsub over g, filling pt with the cheapest (left,
// right) derivation for every connected subset of g's relations, under
// cf. pt must already have a base plan recorded for every relation
// (see PlanTable.SetBase).
func Enumerate(g *QueryGraph, cf CostFunction, pt *PlanTable) {
	m := g.Matrix()
	relations := g.Relations()
	n := len(relations)
	ids := make([]int, n)
	for i, r := range relations {
		ids[i] = r.ID
	}

	for planSize := 2; planSize <= n; planSize++ {
		for _, s := range connectedSubsetsOfSize(ids, planSize, m) {
			for _, o := range connectedSubsetsOf(s, m) {
				diff := s.Without(o)
				if pt.HasPlan(o) && pt.HasPlan(diff) && m.IsConnected(o.Union(diff)) {
					pt.Update(cf, o, diff)
				}
			}
		}
	}
}
