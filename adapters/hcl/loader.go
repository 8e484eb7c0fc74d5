// Package hcl loads recipe books written in HCL.
//
//	recipe "stick" {
//	  yield       = 4
//	  ingredients = { plank = 2 }
//	}
//	goal = { stick = 4 }
//
// Ingredient and goal maps keep their source order, so an HCL book and the
// equivalent recipe text build identical graphs.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"go.uber.org/zap"

	"recipe-planner/core/recipe"
	"recipe-planner/internal/errors"
)

// Extension is the file suffix that selects this loader
const Extension = ".hcl"

var fileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "goal", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "recipe", LabelNames: []string{"product"}},
	},
}

var recipeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "yield"},
		{Name: "ingredients", Required: true},
	},
}

// Loader parses HCL recipe files. It keeps no parse state between calls and
// is safe for concurrent use.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadFile reads and parses the file at path
func (l *Loader) LoadFile(path string) (recipe.Book, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return recipe.Book{}, errors.Input(fmt.Sprintf("failed to read %s", path), err)
	}
	return l.Load(src, path)
}

// Load parses src. filename is only used in diagnostics.
func (l *Loader) Load(src []byte, filename string) (recipe.Book, error) {
	// hclparse.Parser caches files by name, so each call gets its own
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return recipe.Book{}, diagError(diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return recipe.Book{}, diagError(diags)
	}

	var book recipe.Book
	for _, block := range content.Blocks {
		r, err := decodeRecipe(block)
		if err != nil {
			return recipe.Book{}, err
		}
		book.Recipes = append(book.Recipes, r)
	}

	goal, err := decodeItems(content.Attributes["goal"])
	if err != nil {
		return recipe.Book{}, err
	}
	book.Goal = goal

	l.logger.Debug("loaded HCL recipe book",
		zap.String("file", filename),
		zap.Int("recipes", len(book.Recipes)),
		zap.Int("goal_items", len(book.Goal)))

	return book, nil
}

func decodeRecipe(block *hcl.Block) (recipe.Recipe, error) {
	r := recipe.Recipe{
		Product: block.Labels[0],
		Yield:   1,
		Line:    block.DefRange.Start.Line,
	}

	content, diags := block.Body.Content(recipeSchema)
	if diags.HasErrors() {
		return recipe.Recipe{}, diagError(diags)
	}

	if attr, ok := content.Attributes["yield"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return recipe.Recipe{}, diagError(diags)
		}
		yield, err := wholeNumber(val, attr.Expr.Range())
		if err != nil {
			return recipe.Recipe{}, err
		}
		r.Yield = yield
	}

	ingredients, err := decodeItems(content.Attributes["ingredients"])
	if err != nil {
		return recipe.Recipe{}, err
	}
	r.Ingredients = ingredients

	return r, nil
}

// decodeItems reads a static { name = count, ... } map in source order
func decodeItems(attr *hcl.Attribute) ([]recipe.ItemCount, error) {
	pairs, diags := hcl.ExprMap(attr.Expr)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	items := make([]recipe.ItemCount, 0, len(pairs))
	for _, pair := range pairs {
		key, diags := pair.Key.Value(nil)
		if diags.HasErrors() {
			return nil, diagError(diags)
		}
		if key.IsNull() || key.Type() != cty.String {
			return nil, rangeError(pair.Key.Range(), "item names must be strings")
		}

		val, diags := pair.Value.Value(nil)
		if diags.HasErrors() {
			return nil, diagError(diags)
		}
		count, err := wholeNumber(val, pair.Value.Range())
		if err != nil {
			return nil, err
		}

		items = append(items, recipe.ItemCount{Name: key.AsString(), Count: count})
	}
	return items, nil
}

func wholeNumber(val cty.Value, rng hcl.Range) (int64, error) {
	if val.IsNull() || val.Type() != cty.Number {
		return 0, rangeError(rng, fmt.Sprintf("expected a number, got %s", val.Type().FriendlyName()))
	}
	var n int64
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, rangeError(rng, err.Error())
	}
	return n, nil
}

func rangeError(rng hcl.Range, message string) error {
	return errors.Formatf("%s: %s", rng.String(), message).
		WithContext("line_number", rng.Start.Line)
}

func diagError(diags hcl.Diagnostics) error {
	e := errors.Wrap(errors.TypeFormat, "invalid HCL recipe file", diags)
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			e.WithContext("line_number", d.Subject.Start.Line)
			break
		}
	}
	return e
}
