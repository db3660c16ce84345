package planner

import set3 "github.com/TomTonic/Set3"

// Relation is one source in a query graph: a name, a sequential id
// assigned at AddRelation time (also its bit position in a Subproblem),
// and a cardinality estimate used by the default cost function.
type Relation struct {
	Name string
	ID   int
	Size uint64
}

type edgeKey struct{ a, b int }

func normalizedEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// AdjacencyMatrix answers connectivity queries over a query graph's
// join edges, restricted to a given Subproblem.
type AdjacencyMatrix struct {
	neighbors []Subproblem
}

// IsConnected reports whether the induced subgraph on sp's members is
// connected, by walking from sp's lowest member using only edges whose
// both endpoints lie in sp.
func (m AdjacencyMatrix) IsConnected(sp Subproblem) bool {
	if sp.Count() <= 1 {
		return true
	}
	bits := sp.Bits()
	var visited Subproblem
	stack := []int{bits[0]}
	visited = visited.Set(bits[0])
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range m.neighbors[cur].Intersect(sp).Bits() {
			if !visited.Contains(nb) {
				visited = visited.Set(nb)
				stack = append(stack, nb)
			}
		}
	}
	return visited == sp
}

// QueryGraph is a set of relations and the join edges between them.
type QueryGraph struct {
	relations []Relation
	neighbors []Subproblem
	seenEdges *set3.Set3[edgeKey]
}

// NewQueryGraph returns an empty query graph.
func NewQueryGraph() *QueryGraph {
	return &QueryGraph{seenEdges: set3.Empty[edgeKey]()}
}

// AddRelation adds a relation with the given cardinality estimate and
// returns its id.
func (g *QueryGraph) AddRelation(name string, size uint64) int {
	id := len(g.relations)
	g.relations = append(g.relations, Relation{Name: name, ID: id, Size: size})
	g.neighbors = append(g.neighbors, Subproblem{})
	return id
}

// AddJoin records a join edge between relations a and b. Duplicate
// edges (including the reverse direction) are ignored.
func (g *QueryGraph) AddJoin(a, b int) {
	key := normalizedEdge(a, b)
	if g.seenEdges.Contains(key) {
		return
	}
	g.seenEdges.Add(key)
	g.neighbors[a] = g.neighbors[a].Set(b)
	g.neighbors[b] = g.neighbors[b].Set(a)
}

// Relations returns the graph's relations in id order.
func (g *QueryGraph) Relations() []Relation { return g.relations }

// Matrix returns the graph's current adjacency matrix.
func (g *QueryGraph) Matrix() AdjacencyMatrix {
	return AdjacencyMatrix{neighbors: g.neighbors}
}
