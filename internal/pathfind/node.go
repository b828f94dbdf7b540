package pathfind

import "sync/atomic"

// Node is the static topology of one grid cell.
// Search bookkeeping (costs, predecessors) never lives on a Node.
type Node struct {
	cell     Cell
	position Position
	walkable atomic.Bool
	terrain  Terrain
}

func newNode(c Cell, pos Position, walkable bool, terrain Terrain) *Node {
	n := &Node{cell: c, position: pos, terrain: terrain}
	n.walkable.Store(walkable)
	return n
}

// Cell returns the node's identity.
func (n *Node) Cell() Cell { return n.cell }

// Position returns the world position recorded when the node was created.
func (n *Node) Position() Position { return n.position }

// Walkable reports whether the cell can be entered.
func (n *Node) Walkable() bool { return n.walkable.Load() }

// Terrain returns the terrain recorded when the node was created.
func (n *Node) Terrain() Terrain { return n.terrain }

// Cells extracts the cell coordinates of a path.
func Cells(path []*Node) []Cell {
	if path == nil {
		return nil
	}
	cells := make([]Cell, len(path))
	for i, n := range path {
		cells[i] = n.cell
	}
	return cells
}

// Length returns the summed Euclidean length of the path's segments.
func Length(path []*Node) float64 {
	var l float64
	for i := 1; i < len(path); i++ {
		l += Distance(path[i-1].cell, path[i].cell)
	}
	return l
}
