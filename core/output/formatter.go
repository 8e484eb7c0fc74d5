// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"strings"

	"recipe-planner/core/engine"
	"recipe-planner/core/plan"
	"recipe-planner/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatMsgpack is the JSON document encoded as MessagePack
	FormatMsgpack Format = "msgpack"

	// FormatDOT is a Graphviz rendering of the recipe graph
	FormatDOT Format = "dot"
)

// Formats lists every supported format in registration order
func Formats() []Format {
	return []Format{FormatCLI, FormatJSON, FormatMarkdown, FormatMsgpack, FormatDOT}
}

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NotSupported("output format " + name)
}

// EdgeLabel selects which edge quantity the graph view prints
type EdgeLabel string

const (
	// LabelTotal prints the total units flowing along the edge
	LabelTotal EdgeLabel = "total"

	// LabelPerCraft prints units consumed by a single craft
	LabelPerCraft EdgeLabel = "per-craft"
)

// ParseEdgeLabel resolves an edge label name
func ParseEdgeLabel(name string) (EdgeLabel, error) {
	switch l := EdgeLabel(strings.ToLower(strings.TrimSpace(name))); l {
	case LabelTotal, LabelPerCraft:
		return l, nil
	case "":
		return LabelTotal, nil
	default:
		return "", errors.Configuration(fmt.Sprintf("unknown edge label %q (want total or per-craft)", name))
	}
}

// Options tune how formatters render
type Options struct {
	// NoColor disables ANSI colors in the cli format
	NoColor bool

	// ShowGoal adds the goal items to human-readable output
	ShowGoal bool

	// EdgeLabel picks the quantity drawn on graph edges
	EdgeLabel EdgeLabel

	// Unpruned draws the graph as built, before unused recipes are removed
	Unpruned bool

	// Verbose appends run details to the cli format
	Verbose bool
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *engine.Result) error
}

// Document is the serializable view of a plan
type Document struct {
	// Materials are the raw materials to gather
	Materials []plan.Entry `json:"materials"`

	// CraftingOrder lists crafted items, each after its ingredients
	CraftingOrder []plan.Entry `json:"crafting_order"`

	// Goal is what the plan satisfies
	Goal []plan.GoalItem `json:"goal"`

	// Metadata describes the run
	Metadata engine.Metadata `json:"metadata"`
}

// NewDocument builds the serializable view of result
func NewDocument(result *engine.Result) Document {
	goal := result.Plan.Goal
	if goal == nil {
		goal = []plan.GoalItem{}
	}
	return Document{
		Materials:     result.Plan.Materials(),
		CraftingOrder: result.Plan.CraftingOrder(),
		Goal:          goal,
		Metadata:      result.Metadata,
	}
}

// FormatterRegistry manages formatter registration
type FormatterRegistry interface {
	// Register adds a formatter to the registry
	Register(formatter Formatter) error

	// GetFormatter returns a formatter for a format type
	GetFormatter(format Format) (Formatter, bool)

	// GetAll returns all registered formatters
	GetAll() []Formatter
}

// Registry is the default FormatterRegistry
type Registry struct {
	formatters map[Format]Formatter
	order      []Format
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Default returns a registry holding every built-in formatter
func Default(opts Options) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		NewCLIFormatter(opts),
		NewJSONFormatter(),
		NewMarkdownFormatter(opts),
		NewMsgpackFormatter(),
		NewDOTFormatter(opts),
	} {
		// Built-ins have distinct formats
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) error {
	f := formatter.Format()
	if _, exists := r.formatters[f]; exists {
		return errors.Newf(errors.TypeInternal, "formatter for %q already registered", f)
	}
	r.formatters[f] = formatter
	r.order = append(r.order, f)
	return nil
}

// GetFormatter returns a formatter for a format type
func (r *Registry) GetFormatter(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// GetAll returns all registered formatters
func (r *Registry) GetAll() []Formatter {
	all := make([]Formatter, 0, len(r.order))
	for _, f := range r.order {
		all = append(all, r.formatters[f])
	}
	return all
}

var _ FormatterRegistry = (*Registry)(nil)

// Get returns the built-in formatter for format
func Get(format Format, opts Options) (Formatter, error) {
	f, ok := Default(opts).GetFormatter(format)
	if !ok {
		return nil, errors.NotSupported("output format " + string(format))
	}
	return f, nil
}

// Render writes result to w in the given format
func Render(w io.Writer, format Format, opts Options, result *engine.Result) error {
	f, err := Get(format, opts)
	if err != nil {
		return err
	}
	return f.Render(w, result)
}
