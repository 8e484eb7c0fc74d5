package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recipe-planner/core/graph"
	"recipe-planner/internal/errors"
)

func TestBuildStickRecipe(t *testing.T) {
	g, err := BuildText("plank = 1 log\nstick = 2 plank\n4 stick")
	require.NoError(t, err)

	assert.Equal(t, 4, g.Size())
	assert.Equal(t, 3, g.EdgeCount())

	plank, ok := g.Node(graph.Item("plank"))
	require.True(t, ok)
	assert.Equal(t, int64(1), plank.YieldPerCraft)
	assert.True(t, plank.HasRecipe)

	log, ok := g.Node(graph.Item("log"))
	require.True(t, ok)
	assert.False(t, log.HasRecipe)

	edge, ok := g.Edge(graph.Item("plank"), graph.Item("stick"))
	require.True(t, ok)
	assert.Equal(t, int64(2), edge.RequiredPerCraft)
	assert.False(t, edge.Computed)

	goalEdge, ok := g.Edge(graph.Item("stick"), graph.Goal)
	require.True(t, ok)
	assert.Equal(t, int64(4), goalEdge.RequiredPerCraft)
}

func TestBuildRedefinitionOverwritesYield(t *testing.T) {
	text := `4 stick = 2 plank
2 stick = 1 plank, 1 resin
stick`
	g, err := NewBuilder(zaptest.NewLogger(t)).Build(mustParse(t, text))
	require.NoError(t, err)

	stick, _ := g.Node(graph.Item("stick"))
	assert.Equal(t, int64(2), stick.YieldPerCraft)

	plank, _ := g.Edge(graph.Item("plank"), graph.Item("stick"))
	assert.Equal(t, int64(1), plank.RequiredPerCraft, "same pair overwrites")

	_, ok := g.Edge(graph.Item("resin"), graph.Item("stick"))
	assert.True(t, ok, "ingredients of both definitions are kept")
	assert.Equal(t, 2, g.InDegree(graph.Item("stick")))
}

func TestBuildTransitiveProduct(t *testing.T) {
	g, err := BuildText("gear = 2 iron plate\niron plate = iron ore\nmachine = 3 gear, iron plate\nmachine")
	require.NoError(t, err)

	assert.Equal(t, int64(1), mustEdge(t, g, "iron ore", "iron plate").RequiredPerCraft)
	assert.Equal(t, int64(2), mustEdge(t, g, "iron plate", "gear").RequiredPerCraft)
	assert.Equal(t, int64(1), mustEdge(t, g, "iron plate", "machine").RequiredPerCraft)
	assert.Equal(t, 2, g.OutDegree(graph.Item("iron plate")))
}

func TestBuildItemNamedGoalIsOrdinary(t *testing.T) {
	g, err := BuildText("GOAL = 2 gold\nGOAL")
	require.NoError(t, err)

	_, ok := g.Edge(graph.Item("GOAL"), graph.Goal)
	assert.True(t, ok)
	assert.Equal(t, 3, g.Size())
}

func TestBuildValidatesBook(t *testing.T) {
	tests := []struct {
		name string
		book Book
	}{
		{
			name: "recipe without product",
			book: Book{Recipes: []Recipe{{Yield: 1, Ingredients: []ItemCount{{Name: "log", Count: 1}}}}},
		},
		{
			name: "ingredient without name",
			book: Book{Recipes: []Recipe{{Product: "plank", Yield: 1, Ingredients: []ItemCount{{Count: 1}}}}},
		},
		{
			name: "goal with zero count",
			book: Book{Goal: []ItemCount{{Name: "plank", Count: 0}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.book)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeFormat))
		})
	}
}

func TestBuildTextPropagatesFormatError(t *testing.T) {
	_, err := BuildText("a = b = c\n1 a")
	assert.True(t, errors.IsType(err, errors.TypeFormat))
}

func mustParse(t *testing.T, text string) Book {
	t.Helper()
	book, err := ParseText(text)
	require.NoError(t, err)
	return book
}

func mustEdge(t *testing.T, g *graph.Graph, from, to string) *graph.Edge {
	t.Helper()
	edge, ok := g.Edge(graph.Item(from), graph.Item(to))
	require.True(t, ok, "missing edge %s -> %s", from, to)
	return edge
}
