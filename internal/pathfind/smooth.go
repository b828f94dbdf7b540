package pathfind

import "math"

// Smooth removes waypoints that a straight walk can skip ("string pulling").
//
// From the current anchor it picks the furthest later waypoint with a clear
// line of sight and makes it the next anchor. The result starts and ends with
// the endpoints of path and never has more waypoints than the input.
func Smooth(g *Grid, path []*Node) []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return pick(path, g.pull(path))
}

// LineOfSight reports whether every cell sampled along the segment a→b exists
// and is walkable. The endpoints themselves are not sampled.
func LineOfSight(g *Grid, a, b Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lineOfSight(a, b)
}

// pull returns the indices of the waypoints kept by string pulling.
func (g *Grid) pull(path []*Node) []int {
	if len(path) <= 2 {
		keep := make([]int, len(path))
		for i := range keep {
			keep[i] = i
		}
		return keep
	}

	keep := make([]int, 1, len(path))
	anchor := 0
	for anchor < len(path)-1 {
		furthest := anchor + 1
		for i := anchor + 2; i < len(path); i++ {
			if g.lineOfSight(path[anchor].cell, path[i].cell) {
				furthest = i
			}
		}
		keep = append(keep, furthest)
		anchor = furthest
	}
	return keep
}

// lineOfSight samples the segment at unit steps and rounds each sample to the
// nearest cell. Missing cells block the sight line.
func (g *Grid) lineOfSight(a, b Cell) bool {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return true
	}
	ux, uy := dx/dist, dy/dist

	for i := 1.0; i < dist; i++ {
		c := Cell{
			X: int32(math.Round(float64(a.X) + ux*i)),
			Y: int32(math.Round(float64(a.Y) + uy*i)),
		}
		if !g.walkable(c) {
			return false
		}
	}
	return true
}

func pick[E any](s []E, idx []int) []E {
	if s == nil {
		return nil
	}
	out := make([]E, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}
