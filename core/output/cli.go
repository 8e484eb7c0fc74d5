package output

import (
	"io"
	"strconv"

	"recipe-planner/core/engine"
	"recipe-planner/core/ui"
)

// CLIFormatter renders plan tables for a terminal
type CLIFormatter struct {
	opts Options
}

// NewCLIFormatter creates a terminal formatter
func NewCLIFormatter(opts Options) *CLIFormatter {
	return &CLIFormatter{opts: opts}
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the materials table, then the crafting order
func (f *CLIFormatter) Render(w io.Writer, result *engine.Result) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	if f.opts.Verbose {
		out.SetVerbosity(2)
	}
	p := result.Plan

	if f.opts.ShowGoal {
		out.Header("Goal")
		goal := out.NewTable("Item", "Count").AlignRight(1)
		for _, g := range p.Goal {
			goal.AddRow(g.Item, itoa(g.Count))
		}
		goal.Render()
	}

	out.Header("Materials Required")
	materials := out.NewTable("Item", "Count").AlignRight(1)
	for _, e := range p.Materials() {
		materials.AddRow(e.Item, itoa(e.Count))
	}
	materials.Render()

	out.Header("Crafting Order")
	crafting := out.NewTable("Step", "Item", "Count", "Crafts", "Yield", "Surplus").AlignRight(0, 2, 3, 4, 5)
	var surplus int64
	for i, e := range p.CraftingOrder() {
		crafting.AddRow(strconv.Itoa(i+1), e.Item, itoa(e.Count), itoa(e.Crafts), itoa(e.Yield), itoa(e.Surplus()))
		surplus += e.Surplus()
	}
	crafting.Render()

	summary := out.NewPlanSummary()
	summary.Materials = materials.Len()
	summary.Crafted = crafting.Len()
	summary.Crafts = p.TotalCrafts()
	summary.Surplus = surplus
	summary.Pruned = result.Metadata.Pruned
	summary.Render()

	if f.opts.Verbose {
		md := result.Metadata
		out.Line("")
		out.SubHeader("Details")
		out.Debug("plan id    %s", md.ID)
		out.Debug("input hash %s", md.InputHash)
		out.Debug("graph      %d recipes, %d nodes, %d edges", md.Recipes, md.Nodes, md.Edges)
		out.Debug("duration   %s", md.Duration)
	}

	return out.Err()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
