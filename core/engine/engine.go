// Package engine provides the planning engine.
// CLI is a thin wrapper around this engine.
package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-planner/core/determinism"
	"recipe-planner/core/graph"
	"recipe-planner/core/plan"
	"recipe-planner/core/propagation"
	"recipe-planner/core/recipe"
	"recipe-planner/internal/errors"
)

// Version is reported in plan metadata
const Version = "0.1.0"

// Engine is the primary API for planning.
// All other interfaces (CLI, formatters) are thin wrappers.
type Engine struct {
	builder    *recipe.Builder
	propagator *propagation.Propagator
	logger     *zap.Logger
	version    string
	now        func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger passed down to the builder and propagator
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithVersion overrides the version recorded in metadata
func WithVersion(version string) Option {
	return func(e *Engine) {
		e.version = version
	}
}

// WithClock overrides the time source used for metadata
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates a new planning engine
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		version: Version,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.builder = recipe.NewBuilder(e.logger.Named("builder"))
	e.propagator = propagation.New(propagation.WithLogger(e.logger.Named("propagation")))
	return e
}

// Metadata contains execution context
type Metadata struct {
	// ID uniquely identifies this plan run
	ID string `json:"id"`

	// Timestamp is when planning started
	Timestamp string `json:"timestamp"`

	// Duration is how long planning took
	Duration string `json:"duration"`

	// Version is the tool version
	Version string `json:"version"`

	// InputHash identifies the recipe book; equal books share a hash
	InputHash string `json:"input_hash"`

	// Recipes is the number of recipe definitions read
	Recipes int `json:"recipes"`

	// Nodes and Edges describe the graph after pruning, goal included
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`

	// Pruned lists items that do not lead to the goal
	Pruned []string `json:"pruned,omitempty"`
}

// Result is the output of planning
type Result struct {
	// Plan is the evaluated plan
	Plan *plan.Plan

	// Graph is the pruned graph with every edge total computed
	Graph *graph.Graph

	// Source is the graph as built, before pruning
	Source *graph.Graph

	// Metadata describes the run
	Metadata Metadata
}

// Plan builds and evaluates book. The built graph is left untouched; the
// evaluation runs on a clone.
func (e *Engine) Plan(book recipe.Book) (*Result, error) {
	start := e.now()

	source, err := e.builder.Build(book)
	if err != nil {
		return nil, err
	}

	annotated := source.Clone()
	ev, err := e.propagator.Run(annotated)
	if err != nil {
		return nil, err
	}

	hash, err := determinism.HashJSON(book)
	if err != nil {
		return nil, errors.Internal("failed to hash recipe book", err)
	}

	pruned := make([]string, len(ev.Pruned))
	for i, key := range ev.Pruned {
		pruned[i] = key.String()
	}

	result := &Result{
		Plan:   ev.Plan,
		Graph:  annotated,
		Source: source,
		Metadata: Metadata{
			ID:        uuid.New().String(),
			Timestamp: start.UTC().Format(time.RFC3339),
			Duration:  e.now().Sub(start).String(),
			Version:   e.version,
			InputHash: hash.Hex(),
			Recipes:   len(book.Recipes),
			Nodes:     annotated.Size(),
			Edges:     annotated.EdgeCount(),
			Pruned:    pruned,
		},
	}

	e.logger.Info("plan complete",
		zap.String("plan_id", result.Metadata.ID),
		zap.Int("materials", len(ev.Plan.Materials())),
		zap.Int("crafted", len(ev.Plan.CraftingOrder())),
		zap.Int("pruned", len(pruned)))

	return result, nil
}

// PlanText parses a recipe text and plans it
func (e *Engine) PlanText(text string) (*Result, error) {
	book, err := recipe.ParseText(text)
	if err != nil {
		return nil, err
	}
	return e.Plan(book)
}
