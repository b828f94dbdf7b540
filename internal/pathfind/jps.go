package pathfind

import "context"

// JPS is a jump point search over a Grid.
//
// Instead of adjacent cells, each expansion scans straight lines in the 8
// directions and only admits cells that are the goal, have a forced
// neighbour, or (for diagonal scans) lead to one along a cardinal scan.
//
// A jump costs its Euclidean span times the weight of the landing cell only;
// cells crossed on the way do not add their own weight. On mixed terrain JPS
// costs therefore differ from A*.
type JPS struct {
	p *planner
}

// NewJPS creates a jump point search strategy bound to grid.
func NewJPS(grid *Grid, opts ...Option) (*JPS, error) {
	p, err := newPlanner(AlgorithmJPS, grid, opts)
	if err != nil {
		return nil, err
	}
	return &JPS{p: p}, nil
}

// FindPath returns the jump points from start to goal, smoothed if optimize
// is set. It returns ErrNoPath when no path exists.
func (j *JPS) FindPath(ctx context.Context, start, goal Cell, optimize bool) ([]*Node, error) {
	res, err := j.Search(ctx, start, goal, optimize)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search is FindPath with costs and expansion statistics.
func (j *JPS) Search(ctx context.Context, start, goal Cell, optimize bool) (Result, error) {
	return j.p.search(ctx, start, goal, optimize, j.expand)
}

func (j *JPS) expand(r *runner, current int32) error {
	from := r.records[current].node
	for _, d := range directions {
		n, ok := r.jump(from.cell, d)
		if !ok {
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

// jump walks from c in direction d while cells exist and are walkable and
// returns the first jump point.
func (r *runner) jump(c, d Cell) (*Node, bool) {
	for {
		c = c.Add(d)
		n, ok := r.grid.node(c)
		if !ok || !n.walkable.Load() {
			return nil, false
		}
		if c == r.goal || r.forced(c, d) {
			return n, true
		}
		if diagonal(d) {
			if _, ok := r.jump(c, Cell{X: d.X}); ok {
				return n, true
			}
			if _, ok := r.jump(c, Cell{Y: d.Y}); ok {
				return n, true
			}
		}
	}
}

// forced reports whether c, reached moving in d, has a neighbour that forces
// a turn. A blocked cell perpendicular to d forces one, as does, for diagonal
// moves, a blocked orthogonal component cell. An obstructed cell (blocked or
// missing) with a walkable cell behind it also forces one: beside a cardinal
// move, or trailing a diagonal move.
func (r *runner) forced(c, d Cell) bool {
	left := Cell{X: -d.Y, Y: d.X}
	right := Cell{X: d.Y, Y: -d.X}
	if r.grid.blocked(c.Add(left)) || r.grid.blocked(c.Add(right)) {
		return true
	}
	if !diagonal(d) {
		return r.detour(c.Add(left), d) || r.detour(c.Add(right), d)
	}
	if r.grid.blocked(c.Add(Cell{X: d.X})) || r.grid.blocked(c.Add(Cell{Y: d.Y})) {
		return true
	}
	return r.detour(c.Add(Cell{X: -d.X}), Cell{Y: d.Y}) || r.detour(c.Add(Cell{Y: -d.Y}), Cell{X: d.X})
}

// detour reports whether side cannot be entered while side+d can.
func (r *runner) detour(side, d Cell) bool {
	return !r.grid.walkable(side) && r.grid.walkable(side.Add(d))
}
