// Package plan holds the output of a requirement evaluation: what to gather
// and what to craft, in build order.
package plan

// Entry is one row of the plan
type Entry struct {
	// Item is the item name
	Item string `json:"item"`

	// Count is the total quantity consumed downstream
	Count int64 `json:"count"`

	// Crafted is false for raw materials
	Crafted bool `json:"crafted"`

	// Crafts is how many times the recipe runs (crafted items only)
	Crafts int64 `json:"crafts,omitempty"`

	// Yield is units per craft (crafted items only)
	Yield int64 `json:"yield,omitempty"`
}

// Produced returns the units actually made: Crafts × Yield
func (e Entry) Produced() int64 {
	return e.Crafts * e.Yield
}

// Surplus returns units crafted beyond demand because crafts are whole
func (e Entry) Surplus() int64 {
	if !e.Crafted {
		return 0
	}
	return e.Produced() - e.Count
}

// GoalItem is an item the goal demands directly
type GoalItem struct {
	Item  string `json:"item"`
	Count int64  `json:"count"`
}

// Plan is the evaluated plan. Entries are in topological order: every item
// appears after all of its ingredients.
type Plan struct {
	Entries []Entry    `json:"entries"`
	Goal    []GoalItem `json:"goal"`
}

// Materials returns the raw materials in plan order
func (p *Plan) Materials() []Entry {
	return p.filter(false)
}

// CraftingOrder returns the crafted items in build order
func (p *Plan) CraftingOrder() []Entry {
	return p.filter(true)
}

func (p *Plan) filter(crafted bool) []Entry {
	result := []Entry{}
	for _, e := range p.Entries {
		if e.Crafted == crafted {
			result = append(result, e)
		}
	}
	return result
}

// Lookup returns the entry for an item
func (p *Plan) Lookup(item string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Item == item {
			return e, true
		}
	}
	return Entry{}, false
}

// TotalCrafts returns the number of craft actions in the whole plan
func (p *Plan) TotalCrafts() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.Crafts
	}
	return total
}
