package output

import (
	"fmt"
	"io"
	"strings"

	"recipe-planner/core/engine"
	"recipe-planner/core/graph"
)

// DOTFormatter renders the recipe graph in Graphviz DOT
type DOTFormatter struct {
	opts Options
}

// NewDOTFormatter creates a DOT formatter
func NewDOTFormatter(opts Options) *DOTFormatter {
	return &DOTFormatter{opts: opts}
}

// Format returns the format type
func (f *DOTFormatter) Format() Format {
	return FormatDOT
}

// Render writes the annotated graph. With Unpruned set the builder's graph is
// drawn instead; edges that pruning removed are dashed and carry their
// per-craft amount.
func (f *DOTFormatter) Render(w io.Writer, result *engine.Result) error {
	g := result.Graph
	if f.opts.Unpruned && result.Source != nil {
		g = result.Source
	}

	var b strings.Builder
	b.WriteString("digraph recipes {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	ids := make(map[graph.NodeKey]string)
	for i, node := range g.Nodes() {
		id := fmt.Sprintf("n%d", i)
		ids[node.Key] = id

		var attrs []string
		attrs = append(attrs, "label="+quoteDOT(node.Key.String()))
		switch {
		case node.Key.IsGoal():
			attrs = append(attrs, "shape=doublecircle")
		case g.InDegree(node.Key) == 0:
			attrs = append(attrs, "shape=ellipse")
		}
		if !result.Graph.Has(node.Key) {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&b, "  %s [%s];\n", id, strings.Join(attrs, ", "))
	}

	for _, edge := range g.Edges() {
		label, pruned := f.edgeLabel(result.Graph, edge)
		attrs := "label=" + quoteDOT(label)
		if pruned {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", ids[edge.From], ids[edge.To], attrs)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// edgeLabel looks the edge up in the annotated graph so totals are available
// even when drawing the unpruned source.
func (f *DOTFormatter) edgeLabel(annotated *graph.Graph, edge *graph.Edge) (string, bool) {
	computed, ok := annotated.Edge(edge.From, edge.To)
	if !ok {
		return itoa(edge.RequiredPerCraft), true
	}
	if f.opts.EdgeLabel == LabelPerCraft || !computed.Computed {
		return itoa(computed.RequiredPerCraft), false
	}
	return itoa(computed.TotalRequired), false
}

func quoteDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
