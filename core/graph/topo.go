package graph

import (
	"fmt"
	"strings"
)

// TopologicalSort returns nodes so that every node comes after all of its
// ingredients. Ties are broken by insertion order.
func (g *Graph) TopologicalSort() ([]NodeKey, error) {
	indegree := make(map[NodeKey]int, len(g.nodes))
	queue := make([]NodeKey, 0, len(g.nodes))
	for _, key := range g.order {
		indegree[key] = len(g.in[key])
		if indegree[key] == 0 {
			queue = append(queue, key)
		}
	}

	order := make([]NodeKey, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, edge := range g.out[n] {
			indegree[edge.To]--
			if indegree[edge.To] == 0 {
				queue = append(queue, edge.To)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var stuck []NodeKey
		for _, key := range g.order {
			if indegree[key] > 0 {
				stuck = append(stuck, key)
			}
		}
		return nil, &CycleError{Nodes: stuck}
	}

	return order, nil
}

// ReverseTopologicalSort returns nodes so that every node comes after all of
// its consumers
func (g *Graph) ReverseTopologicalSort() ([]NodeKey, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// CycleError indicates a dependency cycle. Nodes lists every node that is on
// a cycle or downstream of one.
type CycleError struct {
	Nodes []NodeKey
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Nodes))
	for i, key := range e.Nodes {
		names[i] = key.String()
	}
	return fmt.Sprintf("dependency cycle detected among: %s", strings.Join(names, ", "))
}
