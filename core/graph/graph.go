// Package graph implements the recipe dependency graph.
//
// An edge A → B means "A is consumed to craft B". Every edge into the goal
// node records how much of an item the goal demands.
package graph

// NodeKind separates item nodes from the reserved goal node
type NodeKind int

const (
	KindItem NodeKind = iota // Craftable item or raw material
	KindGoal                 // The synthetic sink
)

// String returns the kind name
func (k NodeKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// NodeKey uniquely identifies a node. The goal key can never be produced
// from an item name, so an item literally called "GOAL" is just an item.
type NodeKey struct {
	Kind NodeKind
	Name string
}

// Goal is the key of the synthetic terminal node
var Goal = NodeKey{Kind: KindGoal}

// Item returns the key for an item name
func Item(name string) NodeKey {
	return NodeKey{Kind: KindItem, Name: name}
}

// IsGoal reports whether the key is the goal node
func (k NodeKey) IsGoal() bool {
	return k.Kind == KindGoal
}

// String returns the display name
func (k NodeKey) String() string {
	if k.IsGoal() {
		return "GOAL"
	}
	return k.Name
}

// Node is a vertex of the recipe graph
type Node struct {
	Key NodeKey

	// YieldPerCraft is how many units one craft produces
	YieldPerCraft int64

	// HasRecipe is set once a recipe declares this node as its product
	HasRecipe bool
}

// Edge is a directed dependency
type Edge struct {
	From NodeKey
	To   NodeKey

	// RequiredPerCraft is units of From consumed by one craft of To
	RequiredPerCraft int64

	// TotalRequired is units of From needed across the whole plan.
	// Only meaningful once Computed is set.
	TotalRequired int64
	Computed      bool
}

// SetTotal records the computed total for the edge
func (e *Edge) SetTotal(total int64) {
	e.TotalRequired = total
	e.Computed = true
}

type edgeKey struct {
	from NodeKey
	to   NodeKey
}

// Graph is a directed recipe graph with forward and reverse adjacency.
// Iteration order everywhere is insertion order.
type Graph struct {
	// Nodes indexed by key
	nodes map[NodeKey]*Node

	// Insertion order of nodes
	order []NodeKey

	// Edges indexed by (from, to); at most one per ordered pair
	edges map[edgeKey]*Edge

	// Forward edges (from → to)
	out map[NodeKey][]*Edge

	// Reverse edges (to → from) for upstream lookups
	in map[NodeKey][]*Edge
}

// New creates a graph holding only the goal node
func New() *Graph {
	g := &Graph{
		nodes: make(map[NodeKey]*Node),
		edges: make(map[edgeKey]*Edge),
		out:   make(map[NodeKey][]*Edge),
		in:    make(map[NodeKey][]*Edge),
	}
	g.AddNode(Goal)
	return g
}

// AddNode returns the node for key, creating it if needed
func (g *Graph) AddNode(key NodeKey) *Node {
	if node, ok := g.nodes[key]; ok {
		return node
	}
	node := &Node{Key: key}
	g.nodes[key] = node
	g.order = append(g.order, key)
	return node
}

// SetYield declares key as a recipe product. A later call overwrites the yield.
func (g *Graph) SetYield(key NodeKey, yield int64) *Node {
	node := g.AddNode(key)
	node.YieldPerCraft = yield
	node.HasRecipe = true
	return node
}

// SetEdge adds from → to, or overwrites the amount of an existing edge.
// Missing endpoints are created.
func (g *Graph) SetEdge(from, to NodeKey, requiredPerCraft int64) *Edge {
	g.AddNode(from)
	g.AddNode(to)

	k := edgeKey{from: from, to: to}
	if edge, ok := g.edges[k]; ok {
		edge.RequiredPerCraft = requiredPerCraft
		return edge
	}

	edge := &Edge{From: from, To: to, RequiredPerCraft: requiredPerCraft}
	g.edges[k] = edge
	g.out[from] = append(g.out[from], edge)
	g.in[to] = append(g.in[to], edge)
	return edge
}

// Node returns a node by key
func (g *Graph) Node(key NodeKey) (*Node, bool) {
	node, ok := g.nodes[key]
	return node, ok
}

// Has reports whether the node exists
func (g *Graph) Has(key NodeKey) bool {
	_, ok := g.nodes[key]
	return ok
}

// Edge returns the edge from → to
func (g *Graph) Edge(from, to NodeKey) (*Edge, bool) {
	edge, ok := g.edges[edgeKey{from: from, to: to}]
	return edge, ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.order))
	for _, key := range g.order {
		result = append(result, g.nodes[key])
	}
	return result
}

// Edges returns all edges grouped by source node in insertion order
func (g *Graph) Edges() []*Edge {
	result := make([]*Edge, 0, len(g.edges))
	for _, key := range g.order {
		result = append(result, g.out[key]...)
	}
	return result
}

// OutEdges returns the edges leaving key (its consumers)
func (g *Graph) OutEdges(key NodeKey) []*Edge {
	return append([]*Edge(nil), g.out[key]...)
}

// InEdges returns the edges entering key (its ingredients)
func (g *Graph) InEdges(key NodeKey) []*Edge {
	return append([]*Edge(nil), g.in[key]...)
}

// OutDegree returns the number of consumers of key
func (g *Graph) OutDegree(key NodeKey) int {
	return len(g.out[key])
}

// InDegree returns the number of ingredients of key
func (g *Graph) InDegree(key NodeKey) int {
	return len(g.in[key])
}

// Predecessors returns the sources of key's incoming edges
func (g *Graph) Predecessors(key NodeKey) []NodeKey {
	result := make([]NodeKey, 0, len(g.in[key]))
	for _, edge := range g.in[key] {
		result = append(result, edge.From)
	}
	return result
}

// RemoveNode deletes a node and every edge touching it.
// The goal node cannot be removed.
func (g *Graph) RemoveNode(key NodeKey) bool {
	if key.IsGoal() {
		return false
	}
	if _, ok := g.nodes[key]; !ok {
		return false
	}

	for _, edge := range g.out[key] {
		g.in[edge.To] = removeEdge(g.in[edge.To], edge)
		delete(g.edges, edgeKey{from: edge.From, to: edge.To})
	}
	for _, edge := range g.in[key] {
		g.out[edge.From] = removeEdge(g.out[edge.From], edge)
		delete(g.edges, edgeKey{from: edge.From, to: edge.To})
	}
	delete(g.out, key)
	delete(g.in, key)
	delete(g.nodes, key)

	for i, k := range g.order {
		if k == key {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

func removeEdge(edges []*Edge, target *Edge) []*Edge {
	for i, edge := range edges {
		if edge == target {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}

// Size returns node count, goal included
func (g *Graph) Size() int {
	return len(g.nodes)
}

// EdgeCount returns edge count
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Clone returns an independent deep copy that preserves ordering
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make(map[NodeKey]*Node, len(g.nodes)),
		order: append([]NodeKey(nil), g.order...),
		edges: make(map[edgeKey]*Edge, len(g.edges)),
		out:   make(map[NodeKey][]*Edge, len(g.out)),
		in:    make(map[NodeKey][]*Edge, len(g.in)),
	}
	for key, node := range g.nodes {
		copied := *node
		c.nodes[key] = &copied
	}
	for _, key := range g.order {
		for _, edge := range g.out[key] {
			copied := *edge
			c.edges[edgeKey{from: copied.From, to: copied.To}] = &copied
			c.out[copied.From] = append(c.out[copied.From], &copied)
		}
	}
	for _, key := range g.order {
		for _, edge := range g.in[key] {
			c.in[key] = append(c.in[key], c.edges[edgeKey{from: edge.From, to: edge.To}])
		}
	}
	return c
}
