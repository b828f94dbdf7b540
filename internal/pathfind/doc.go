// Package pathfind finds paths on a sparse 2D grid of cells with per-cell
// walkability and terrain weights.
//
// Two strategies implement the same Pathfinder contract: AStar expands the 8
// adjacent cells, JPS jumps along straight lines to jump points. Both return
// the path from start to goal as grid nodes, optionally simplified by Smooth.
//
// Search bookkeeping lives in a per-search arena, so a Grid can serve any
// number of concurrent searches. Grid mutators block while searches run.
//
// A missing path is reported as ErrNoPath:
//
//	path, err := astar.FindPath(ctx, start, goal, true)
//	if errors.Is(err, pathfind.ErrNoPath) {
//		// unreachable
//	}
package pathfind
