// Package recipe turns recipe definitions into a dependency graph.
//
// A recipe line reads "PRODUCT = ING, ING, ..." where every token may carry a
// leading count ("4 stick = 2 plank"). The last line of a recipe text is the
// goal list ("4 stick, 2 torch").
package recipe

// ItemCount is a name with a quantity
type ItemCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Recipe is one craft rule
type Recipe struct {
	// Product is the crafted item
	Product string `json:"product"`

	// Yield is units produced per craft
	Yield int64 `json:"yield"`

	// Ingredients are consumed per craft
	Ingredients []ItemCount `json:"ingredients"`

	// Line is the 1-based source line, 0 when unknown
	Line int `json:"line,omitempty"`
}

// Book is a full recipe set plus the goal to plan for
type Book struct {
	Recipes []Recipe    `json:"recipes"`
	Goal    []ItemCount `json:"goal"`
}
