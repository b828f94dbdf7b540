package pathfind

import (
	"context"
	"fmt"
	"sync"
)

// ctxCheckInterval is how many expansions run between context checks.
const ctxCheckInterval = 256

// Result is the outcome of a successful search.
type Result struct {
	// Path runs from start to goal inclusive.
	Path []*Node
	// Costs[i] is the accumulated cost at which the search reached Path[i].
	Costs []float64
	// Cost is the accumulated cost of the goal.
	Cost float64
	// Expanded counts popped frontier nodes.
	Expanded int
}

type nodeState uint8

const (
	stateUnseen nodeState = iota
	stateOpen
	stateClosed
)

// record is the per-search bookkeeping of one discovered cell.
type record struct {
	node   *Node
	g, h   float64
	parent int32
	state  nodeState
}

// expandFunc generates successors of the record at index current.
type expandFunc func(r *runner, current int32) error

// planner holds what strategies share: the grid, the options and a pool of
// reusable per-search state.
type planner struct {
	name   Algorithm
	grid   *Grid
	opts   Options
	hscale float64
	pool   sync.Pool
}

func newPlanner(name Algorithm, grid *Grid, opts []Option) (*planner, error) {
	if grid == nil {
		return nil, fmt.Errorf("pathfind: %s: grid is nil", name)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("pathfind: %s: %w", name, err)
	}
	p := &planner{name: name, grid: grid, opts: o, hscale: o.heuristicScale()}
	p.pool.New = func() any {
		return &runner{
			index: make(map[Cell]int32, 256),
			open:  NewPriorityQueue[int32](256),
		}
	}
	return p, nil
}

// runner is the mutable state of a single search. Runners are pooled and
// reset explicitly before every run.
type runner struct {
	grid    *Grid
	weights Weights
	hscale  float64
	goal    Cell
	records []record
	index   map[Cell]int32
	open    *PriorityQueue[int32]
}

func (r *runner) reset(p *planner, goal Cell) {
	r.grid = p.grid
	r.weights = p.opts.Weights
	r.hscale = p.hscale
	r.goal = goal
	clear(r.records)
	r.records = r.records[:0]
	clear(r.index)
	r.open.Clear()
}

// record returns the index of n's record, creating an unseen one if needed.
func (r *runner) record(n *Node) int32 {
	if id, ok := r.index[n.cell]; ok {
		return id
	}
	id := int32(len(r.records))
	r.records = append(r.records, record{node: n, parent: -1})
	r.index[n.cell] = id
	return id
}

func (r *runner) heuristic(c Cell) float64 {
	return Distance(c, r.goal) * r.hscale
}

func (r *runner) weight(n *Node) (float64, error) {
	w, err := r.weights.Of(n.terrain)
	if err != nil {
		return 0, fmt.Errorf("entering %s: %w", n.cell, err)
	}
	return w, nil
}

// relax offers n a path through current costing step more than current.
// Closed records are final and never reopened.
func (r *runner) relax(current int32, n *Node, step float64) {
	g := r.records[current].g + step
	id := r.record(n)
	rec := &r.records[id]

	switch rec.state {
	case stateClosed:
		return
	case stateUnseen:
		rec.g, rec.h, rec.parent, rec.state = g, r.heuristic(n.cell), current, stateOpen
		r.open.Enqueue(id, rec.g+rec.h)
	case stateOpen:
		if g < rec.g {
			rec.g, rec.parent = g, current
			r.open.Update(id, rec.g+rec.h)
		}
	}
}

// search runs the open/closed loop shared by every strategy.
func (p *planner) search(ctx context.Context, start, goal Cell, optimize bool, expand expandFunc) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	p.grid.mu.RLock()
	defer p.grid.mu.RUnlock()

	startNode, ok := p.grid.node(start)
	if !ok {
		return Result{}, fmt.Errorf("%w: start %s not in grid", ErrNoPath, start)
	}
	goalNode, ok := p.grid.node(goal)
	if !ok || !goalNode.walkable.Load() {
		return Result{}, fmt.Errorf("%w: goal %s missing or blocked", ErrNoPath, goal)
	}

	r := p.pool.Get().(*runner)
	defer p.pool.Put(r)
	r.reset(p, goal)

	sid := r.record(startNode)
	rec := &r.records[sid]
	rec.h = r.heuristic(start)
	rec.state = stateOpen
	r.open.Enqueue(sid, rec.h)

	expanded := 0
	for r.open.Len() > 0 {
		if p.opts.MaxIterations > 0 && expanded >= p.opts.MaxIterations {
			return Result{}, fmt.Errorf("%w: %d expansions from %s to %s", ErrIterationLimit, expanded, start, goal)
		}
		if expanded%ctxCheckInterval == ctxCheckInterval-1 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		current := r.open.Dequeue()
		r.records[current].state = stateClosed
		expanded++

		if r.records[current].node.cell == goal {
			res := r.result(current, optimize)
			res.Expanded = expanded
			p.opts.Logger.Debug("path found",
				"algo", p.name,
				"from", start,
				"to", goal,
				"waypoints", len(res.Path),
				"cost", res.Cost,
				"expanded", expanded,
			)
			return res, nil
		}

		if err := expand(r, current); err != nil {
			return Result{}, fmt.Errorf("pathfind: %s: %w", p.name, err)
		}
	}

	p.opts.Logger.Debug("no path", "algo", p.name, "from", start, "to", goal, "expanded", expanded)
	return Result{}, fmt.Errorf("%w: frontier exhausted from %s to %s", ErrNoPath, start, goal)
}

// result walks the predecessor chain from goal back to the start.
func (r *runner) result(goal int32, optimize bool) Result {
	var n int
	for id := goal; id >= 0; id = r.records[id].parent {
		n++
	}

	path := make([]*Node, n)
	costs := make([]float64, n)
	for id, i := goal, n-1; id >= 0; id, i = r.records[id].parent, i-1 {
		path[i] = r.records[id].node
		costs[i] = r.records[id].g
	}

	if optimize {
		keep := r.grid.pull(path)
		path = pick(path, keep)
		costs = pick(costs, keep)
	}

	return Result{Path: path, Costs: costs, Cost: r.records[goal].g}
}
