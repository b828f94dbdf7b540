package pathfind

import (
	"cmp"
	"slices"
	"sync"
)

// Grid is a sparse index from cell to node.
//
// Mutators take the write lock; searches hold the read lock for their whole
// run, so SetWalkable and Clear wait for in-flight searches to finish.
type Grid struct {
	mu    sync.RWMutex
	nodes map[Cell]*Node
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{nodes: make(map[Cell]*Node, 64*64)}
}

// Clear drops every node.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.nodes)
}

// Node returns the node at c, or false if the cell was never set.
func (g *Grid) Node(c Cell) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.node(c)
}

// SetWalkable creates the node at c on first call. Later calls for the same
// cell only update walkability: position and terrain are fixed at creation.
func (g *Grid) SetWalkable(c Cell, pos Position, walkable bool, terrain Terrain) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if n, ok := g.nodes[c]; ok {
		n.walkable.Store(walkable)
		return
	}
	g.nodes[c] = newNode(c, pos, walkable, terrain)
}

// Walkable reports whether c exists and is walkable.
func (g *Grid) Walkable(c Cell) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.walkable(c)
}

// Len returns the number of nodes.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Nodes returns all nodes ordered by Y, then X.
func (g *Grid) Nodes() []*Node {
	g.mu.RLock()
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	g.mu.RUnlock()

	slices.SortFunc(nodes, func(a, b *Node) int {
		if c := cmp.Compare(a.cell.Y, b.cell.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.cell.X, b.cell.X)
	})
	return nodes
}

// Bounds returns the smallest and largest coordinates present.
// ok is false for an empty grid.
func (g *Grid) Bounds() (lo, hi Cell, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for c := range g.nodes {
		if !ok {
			lo, hi, ok = c, c, true
			continue
		}
		lo.X, lo.Y = min(lo.X, c.X), min(lo.Y, c.Y)
		hi.X, hi.Y = max(hi.X, c.X), max(hi.Y, c.Y)
	}
	return lo, hi, ok
}

// node, walkable and blocked assume the caller holds g.mu.

func (g *Grid) node(c Cell) (*Node, bool) {
	n, ok := g.nodes[c]
	return n, ok
}

func (g *Grid) walkable(c Cell) bool {
	n, ok := g.nodes[c]
	return ok && n.walkable.Load()
}

// blocked reports a present, non-walkable cell. Missing cells are not blocked.
func (g *Grid) blocked(c Cell) bool {
	n, ok := g.nodes[c]
	return ok && !n.walkable.Load()
}
