package output

import (
	"fmt"
	"io"
	"strings"

	"recipe-planner/core/engine"
)

// MarkdownFormatter renders the plan as markdown tables
type MarkdownFormatter struct {
	opts Options
}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter(opts Options) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts}
}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, result *engine.Result) error {
	var b strings.Builder
	p := result.Plan

	b.WriteString("# Crafting Plan\n")

	if f.opts.ShowGoal {
		b.WriteString("\n## Goal\n\n")
		b.WriteString("| Item | Count |\n")
		b.WriteString("|------|------:|\n")
		for _, g := range p.Goal {
			fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(g.Item), g.Count)
		}
	}

	b.WriteString("\n## Materials Required\n\n")
	b.WriteString("| Item | Count |\n")
	b.WriteString("|------|------:|\n")
	for _, e := range p.Materials() {
		fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(e.Item), e.Count)
	}

	b.WriteString("\n## Crafting Order\n\n")
	b.WriteString("| Step | Item | Count | Crafts | Yield | Surplus |\n")
	b.WriteString("|-----:|------|------:|-------:|------:|--------:|\n")
	for i, e := range p.CraftingOrder() {
		fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %d |\n",
			i+1, escapeCell(e.Item), e.Count, e.Crafts, e.Yield, e.Surplus())
	}

	md := result.Metadata
	if len(md.Pruned) > 0 {
		fmt.Fprintf(&b, "\n> Not needed for the goal: %s\n", strings.Join(md.Pruned, ", "))
	}
	fmt.Fprintf(&b, "\n_Plan %s, %s, recipe-planner %s_\n", md.ID, md.Timestamp, md.Version)

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
