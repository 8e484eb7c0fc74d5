package recipe

import (
	"go.uber.org/zap"

	"recipe-planner/core/graph"
	"recipe-planner/internal/errors"
)

// Builder turns a Book into a recipe graph
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a builder. A nil logger discards output.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Build creates a new graph from book. Each recipe sets its product's yield
// (a later recipe for the same product overwrites it) and adds an edge from
// every ingredient to the product. Each goal entry adds an edge into the goal
// node. Repeating a product/ingredient pair overwrites the amount.
func (b *Builder) Build(book Book) (*graph.Graph, error) {
	g := graph.New()

	for _, r := range book.Recipes {
		if r.Product == "" {
			return nil, errors.Formatf("recipe on line %d has no product", r.Line)
		}
		if len(r.Ingredients) == 0 {
			return nil, errors.Formatf("recipe for %q has no ingredients", r.Product)
		}
		product := graph.Item(r.Product)

		if node, ok := g.Node(product); ok && node.HasRecipe {
			b.logger.Debug("recipe redefined; later yield wins",
				zap.String("product", r.Product),
				zap.Int64("previous_yield", node.YieldPerCraft),
				zap.Int64("yield", r.Yield))
		}
		g.SetYield(product, r.Yield)

		for _, ing := range r.Ingredients {
			if err := validateItem(ing); err != nil {
				return nil, err
			}
			g.SetEdge(graph.Item(ing.Name), product, ing.Count)
		}
	}

	for _, item := range book.Goal {
		if err := validateItem(item); err != nil {
			return nil, err
		}
		g.SetEdge(graph.Item(item.Name), graph.Goal, item.Count)
	}

	b.logger.Debug("recipe graph built",
		zap.Int("recipes", len(book.Recipes)),
		zap.Int("nodes", g.Size()),
		zap.Int("edges", g.EdgeCount()))

	return g, nil
}

func validateItem(item ItemCount) error {
	if item.Name == "" {
		return errors.Formatf("item with count %d has no name", item.Count)
	}
	if item.Count < 1 {
		return errors.Formatf("item %q: count must be at least 1, got %d", item.Name, item.Count)
	}
	return nil
}

// Build creates a graph from book without logging
func Build(book Book) (*graph.Graph, error) {
	return NewBuilder(nil).Build(book)
}

// BuildText parses text and builds its graph
func BuildText(text string) (*graph.Graph, error) {
	book, err := ParseText(text)
	if err != nil {
		return nil, err
	}
	return Build(book)
}
