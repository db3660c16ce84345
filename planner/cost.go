package planner

import "math"

// Cost is a unitless estimate of join-plan expense, typically a
// cardinality or cardinality sum.
type Cost uint64

// SumWithoutOverflow adds values together, saturating at the maximum
// representable Cost instead of wrapping.
func SumWithoutOverflow(values ...Cost) Cost {
	var sum Cost
	for _, v := range values {
		if sum > math.MaxUint64-v {
			return math.MaxUint64
		}
		sum += v
	}
	return sum
}

// CostFunction estimates the cost of joining the plans for left and
// right, given the costs and sizes already recorded in pt.
type CostFunction func(left, right Subproblem, pt *PlanTable) Cost

// DefaultCostFunction estimates a join's cost as the saturating sum of
// both sides' costs and sizes, the classic C_out-style estimate used
// when no independent selectivity model is available.
func DefaultCostFunction(left, right Subproblem, pt *PlanTable) Cost {
	return SumWithoutOverflow(pt.Cost(left), pt.Cost(right), pt.Size(left), pt.Size(right))
}
