package pathfind

import "context"

// AStar is an 8-directional A* search over a Grid.
//
// A move costs its Euclidean length times the weight of the entered cell.
// Improved open nodes are re-prioritised in place.
type AStar struct {
	p *planner
}

// NewAStar creates an A* strategy bound to grid.
func NewAStar(grid *Grid, opts ...Option) (*AStar, error) {
	p, err := newPlanner(AlgorithmAStar, grid, opts)
	if err != nil {
		return nil, err
	}
	return &AStar{p: p}, nil
}

// FindPath returns the path from start to goal, smoothed if optimize is set.
// It returns ErrNoPath when no path exists.
func (a *AStar) FindPath(ctx context.Context, start, goal Cell, optimize bool) ([]*Node, error) {
	res, err := a.Search(ctx, start, goal, optimize)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search is FindPath with costs and expansion statistics.
func (a *AStar) Search(ctx context.Context, start, goal Cell, optimize bool) (Result, error) {
	return a.p.search(ctx, start, goal, optimize, a.expand)
}

func (a *AStar) expand(r *runner, current int32) error {
	from := r.records[current].node
	for _, d := range directions {
		n, ok := r.grid.node(from.cell.Add(d))
		if !ok || !n.walkable.Load() {
			continue
		}
		w, err := r.weight(n)
		if err != nil {
			return err
		}
		r.relax(current, n, Distance(from.cell, n.cell)*w)
	}
	return nil
}
