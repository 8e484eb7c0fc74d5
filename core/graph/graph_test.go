package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-planner/core/graph"
)

func keys(names ...string) []graph.NodeKey {
	result := make([]graph.NodeKey, len(names))
	for i, n := range names {
		result[i] = graph.Item(n)
	}
	return result
}

// stickGraph is log → plank → stick → GOAL
func stickGraph() *graph.Graph {
	g := graph.New()
	g.SetYield(graph.Item("plank"), 1)
	g.SetEdge(graph.Item("log"), graph.Item("plank"), 1)
	g.SetYield(graph.Item("stick"), 1)
	g.SetEdge(graph.Item("plank"), graph.Item("stick"), 2)
	g.SetEdge(graph.Item("stick"), graph.Goal, 4)
	return g
}

func TestNewHoldsGoal(t *testing.T) {
	g := graph.New()

	assert.Equal(t, 1, g.Size())
	assert.True(t, g.Has(graph.Goal))
	assert.False(t, g.Has(graph.Item("GOAL")), "an item named GOAL is not the goal node")
	assert.Equal(t, "GOAL", graph.Goal.String())
}

func TestSetEdgeOverwrites(t *testing.T) {
	g := graph.New()
	g.SetEdge(graph.Item("log"), graph.Item("plank"), 1)
	g.SetEdge(graph.Item("log"), graph.Item("plank"), 3)

	assert.Equal(t, 1, g.EdgeCount())
	edge, ok := g.Edge(graph.Item("log"), graph.Item("plank"))
	require.True(t, ok)
	assert.Equal(t, int64(3), edge.RequiredPerCraft)
	assert.Len(t, g.OutEdges(graph.Item("log")), 1)
	assert.Len(t, g.InEdges(graph.Item("plank")), 1)
}

func TestSetYieldOverwrites(t *testing.T) {
	g := graph.New()
	g.SetYield(graph.Item("stick"), 4)
	g.SetYield(graph.Item("stick"), 2)

	node, ok := g.Node(graph.Item("stick"))
	require.True(t, ok)
	assert.Equal(t, int64(2), node.YieldPerCraft)
	assert.True(t, node.HasRecipe)
}

func TestRemoveNode(t *testing.T) {
	g := stickGraph()

	require.True(t, g.RemoveNode(graph.Item("plank")))

	assert.False(t, g.Has(graph.Item("plank")))
	assert.Equal(t, 0, g.OutDegree(graph.Item("log")))
	assert.Equal(t, 0, g.InDegree(graph.Item("stick")))
	assert.Equal(t, 1, g.EdgeCount())
	assert.False(t, g.RemoveNode(graph.Item("plank")), "second removal is a no-op")
	assert.False(t, g.RemoveNode(graph.Goal), "goal cannot be removed")
}

func TestPredecessors(t *testing.T) {
	g := graph.New()
	g.SetEdge(graph.Item("iron"), graph.Item("pick"), 3)
	g.SetEdge(graph.Item("stick"), graph.Item("pick"), 2)

	assert.Equal(t, keys("iron", "stick"), g.Predecessors(graph.Item("pick")))
}

func TestTopologicalSort(t *testing.T) {
	g := stickGraph()

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, append(keys("log", "plank", "stick"), graph.Goal), order)

	reversed, err := g.ReverseTopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeKey{graph.Goal, graph.Item("stick"), graph.Item("plank"), graph.Item("log")}, reversed)
}

func TestTopologicalSortValidity(t *testing.T) {
	g := graph.New()
	g.SetEdge(graph.Item("ore"), graph.Item("plate"), 1)
	g.SetEdge(graph.Item("plate"), graph.Item("gear"), 2)
	g.SetEdge(graph.Item("plate"), graph.Item("circuit"), 1)
	g.SetEdge(graph.Item("copper"), graph.Item("wire"), 1)
	g.SetEdge(graph.Item("wire"), graph.Item("circuit"), 3)
	g.SetEdge(graph.Item("gear"), graph.Goal, 1)
	g.SetEdge(graph.Item("circuit"), graph.Goal, 1)

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, g.Size())

	position := make(map[graph.NodeKey]int, len(order))
	for i, key := range order {
		position[key] = i
	}
	for _, edge := range g.Edges() {
		assert.Less(t, position[edge.From], position[edge.To], "%s must precede %s", edge.From, edge.To)
	}
}

func TestTopologicalSortDetectsCycle(t *testing.T) {
	tests := []struct {
		name  string
		build func(g *graph.Graph)
		stuck []graph.NodeKey
	}{
		{
			name: "two node cycle",
			build: func(g *graph.Graph) {
				g.SetEdge(graph.Item("b"), graph.Item("a"), 1)
				g.SetEdge(graph.Item("a"), graph.Item("b"), 1)
				g.SetEdge(graph.Item("a"), graph.Goal, 1)
			},
			stuck: []graph.NodeKey{graph.Goal, graph.Item("b"), graph.Item("a")},
		},
		{
			name: "self loop",
			build: func(g *graph.Graph) {
				g.SetEdge(graph.Item("a"), graph.Item("a"), 1)
			},
			stuck: keys("a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			tt.build(g)

			_, err := g.TopologicalSort()
			var cycle *graph.CycleError
			require.ErrorAs(t, err, &cycle)
			assert.Equal(t, tt.stuck, cycle.Nodes)
			assert.Contains(t, err.Error(), "dependency cycle detected")
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := stickGraph()
	c := g.Clone()

	edge, ok := c.Edge(graph.Item("stick"), graph.Goal)
	require.True(t, ok)
	edge.SetTotal(4)
	c.RemoveNode(graph.Item("log"))
	node, _ := c.Node(graph.Item("stick"))
	node.YieldPerCraft = 9

	original, _ := g.Edge(graph.Item("stick"), graph.Goal)
	assert.False(t, original.Computed)
	assert.True(t, g.Has(graph.Item("log")))
	stick, _ := g.Node(graph.Item("stick"))
	assert.Equal(t, int64(1), stick.YieldPerCraft)

	gOrder, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, append(keys("log", "plank", "stick"), graph.Goal), gOrder)

	cEdges := c.InEdges(graph.Item("stick"))
	require.Len(t, cEdges, 1)
	assert.Same(t, cEdges[0], c.OutEdges(graph.Item("plank"))[0], "clone shares one edge value per pair")
}
