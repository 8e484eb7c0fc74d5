// Package propagation computes how much of every item a goal requires.
//
// Demand flows backwards: the goal seeds the edges into it, then every
// crafted item, visited after all of its consumers, turns its summed demand
// into a whole number of crafts and charges each ingredient for them.
package propagation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"recipe-planner/core/graph"
	"recipe-planner/core/plan"
	"recipe-planner/internal/errors"
)

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// Propagator evaluates a recipe graph in place
type Propagator struct {
	logger *zap.Logger
}

// Option configures a Propagator
type Option func(*Propagator)

// WithLogger sets the logger used for pruning and craft count decisions
func WithLogger(logger *zap.Logger) Option {
	return func(p *Propagator) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a propagator
func New(opts ...Option) *Propagator {
	p := &Propagator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluation is the outcome of Run
type Evaluation struct {
	Plan *plan.Plan

	// Pruned lists removed nodes in removal order
	Pruned []graph.NodeKey
}

// Evaluate prunes g, annotates every edge with its total and returns the plan.
// g is mutated. Evaluating the same graph again yields the same totals.
func (p *Propagator) Evaluate(g *graph.Graph) (*plan.Plan, error) {
	ev, err := p.Run(g)
	if err != nil {
		return nil, err
	}
	return ev.Plan, nil
}

// Run is Evaluate that also reports which nodes were pruned
func (p *Propagator) Run(g *graph.Graph) (*Evaluation, error) {
	if err := p.ValidateGoal(g); err != nil {
		return nil, err
	}

	pruned := p.Prune(g)
	p.SeedGoal(g)

	if err := p.Propagate(g); err != nil {
		return nil, err
	}

	result, err := p.Emit(g)
	if err != nil {
		return nil, err
	}

	return &Evaluation{Plan: result, Pruned: pruned}, nil
}

// ValidateGoal checks that the goal demands something and that every item it
// demands directly has a recipe
func (p *Propagator) ValidateGoal(g *graph.Graph) error {
	edges := g.InEdges(graph.Goal)
	if len(edges) == 0 {
		return errors.InvalidGraph("goal demands no items")
	}

	for _, edge := range edges {
		node, ok := g.Node(edge.From)
		if !ok || !node.HasRecipe {
			return errors.Newf(errors.TypeInvalidGraph, "goal item %q has no recipe", edge.From.String()).
				WithContext("item", edge.From.String())
		}
	}
	return nil
}

// Prune removes every node that has no path to the goal. A node with no
// consumers is removed and its ingredients are re-examined, until a fixpoint
// where every remaining node except the goal has a consumer.
func (p *Propagator) Prune(g *graph.Graph) []graph.NodeKey {
	var worklist []graph.NodeKey
	for _, node := range g.Nodes() {
		if !node.Key.IsGoal() {
			worklist = append(worklist, node.Key)
		}
	}

	var removed []graph.NodeKey
	for len(worklist) > 0 {
		key := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if key.IsGoal() || !g.Has(key) || g.OutDegree(key) > 0 {
			continue
		}

		worklist = append(worklist, g.Predecessors(key)...)
		g.RemoveNode(key)
		removed = append(removed, key)

		p.logger.Debug("pruned item unreachable from goal", zap.String("item", key.String()))
	}

	return removed
}

// SeedGoal sets the total of every edge into the goal to the amount the goal
// demands
func (p *Propagator) SeedGoal(g *graph.Graph) {
	for _, edge := range g.InEdges(graph.Goal) {
		edge.SetTotal(edge.RequiredPerCraft)
	}
}

// Propagate visits nodes consumers-first and sets the total of every edge
// into a crafted item. Raw materials and the goal are skipped.
func (p *Propagator) Propagate(g *graph.Graph) error {
	order, err := g.ReverseTopologicalSort()
	if err != nil {
		return errors.Wrap(errors.TypeInvalidGraph, "recipe graph is not acyclic", err)
	}

	for _, key := range order {
		if g.InDegree(key) == 0 || g.OutDegree(key) == 0 {
			continue
		}

		node, _ := g.Node(key)
		demand, err := demandOf(g, key)
		if err != nil {
			return err
		}

		if node.YieldPerCraft <= 0 {
			return yieldError(key, node.YieldPerCraft)
		}
		crafts, err := CraftCount(demand, node.YieldPerCraft)
		if err != nil {
			return err
		}

		p.logger.Debug("craft count",
			zap.String("item", key.String()),
			zap.Int64("demand", demand.IntPart()),
			zap.Int64("yield", node.YieldPerCraft),
			zap.Int64("crafts", crafts))

		for _, edge := range g.InEdges(key) {
			total := decimal.NewFromInt(edge.RequiredPerCraft).Mul(decimal.NewFromInt(crafts))
			if total.GreaterThan(maxQuantity) {
				return errors.Newf(errors.TypeInput, "required quantity of %q for %q overflows", edge.From.String(), key.String())
			}
			edge.SetTotal(total.IntPart())
		}
	}

	return nil
}

// CraftCount returns ceil(demand / yield): partial crafts are impossible
func CraftCount(demand decimal.Decimal, yield int64) (int64, error) {
	if yield <= 0 {
		return 0, errors.Configuration(fmt.Sprintf("yield per craft must be positive, got %d", yield))
	}

	q, r := demand.QuoRem(decimal.NewFromInt(yield), 0)
	if r.Sign() > 0 {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.IntPart(), nil
}

func yieldError(key graph.NodeKey, yield int64) error {
	return errors.Configuration(fmt.Sprintf("item %q must declare a positive yield per craft, got %d", key.String(), yield)).
		WithContext("item", key.String())
}

// demandOf sums the totals of key's outgoing edges
func demandOf(g *graph.Graph, key graph.NodeKey) (decimal.Decimal, error) {
	demand := decimal.Zero
	for _, edge := range g.OutEdges(key) {
		if !edge.Computed {
			return decimal.Zero, errors.Newf(errors.TypeInternal, "demand of %q read before %q was evaluated", key.String(), edge.To.String())
		}
		demand = demand.Add(decimal.NewFromInt(edge.TotalRequired))
	}
	if demand.GreaterThan(maxQuantity) {
		return decimal.Zero, errors.Newf(errors.TypeInput, "total demand of %q overflows", key.String())
	}
	return demand, nil
}

// Emit reads the annotated graph into a plan, in topological order
func (p *Propagator) Emit(g *graph.Graph) (*plan.Plan, error) {
	order, err := g.TopologicalSort()
	if err != nil {
		return nil, errors.Wrap(errors.TypeInvalidGraph, "recipe graph is not acyclic", err)
	}

	result := &plan.Plan{Entries: []plan.Entry{}}
	for _, key := range order {
		if key.IsGoal() {
			continue
		}

		demand, err := demandOf(g, key)
		if err != nil {
			return nil, err
		}

		entry := plan.Entry{
			Item:    key.String(),
			Count:   demand.IntPart(),
			Crafted: g.InDegree(key) > 0,
		}
		if entry.Crafted {
			node, _ := g.Node(key)
			if node.YieldPerCraft <= 0 {
				return nil, yieldError(key, node.YieldPerCraft)
			}
			crafts, err := CraftCount(demand, node.YieldPerCraft)
			if err != nil {
				return nil, err
			}
			entry.Crafts = crafts
			entry.Yield = node.YieldPerCraft
		}
		result.Entries = append(result.Entries, entry)
	}

	for _, edge := range g.InEdges(graph.Goal) {
		result.Goal = append(result.Goal, plan.GoalItem{
			Item:  edge.From.String(),
			Count: edge.RequiredPerCraft,
		})
	}

	return result, nil
}
