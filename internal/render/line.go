package render

import "github.com/udisondev/navgrid/internal/pathfind"

// LineIterator walks the cells of a 2D Bresenham line, both ends included.
type LineIterator struct {
	cur, target  pathfind.Cell
	dx, dy       int32
	stepX, stepY int32
	err          int32
	xMajor       bool
	started      bool
}

// NewLineIterator creates an iterator from a to b.
func NewLineIterator(a, b pathfind.Cell) *LineIterator {
	it := &LineIterator{cur: a, target: b, stepX: 1, stepY: 1}

	it.dx = abs32(b.X - a.X)
	it.dy = abs32(b.Y - a.Y)
	if b.X < a.X {
		it.stepX = -1
	}
	if b.Y < a.Y {
		it.stepY = -1
	}

	it.xMajor = it.dx >= it.dy
	if it.xMajor {
		it.err = it.dx / 2
	} else {
		it.err = it.dy / 2
	}
	return it
}

// Next advances to the next cell. It returns false once the target has been
// returned.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.cur == it.target {
		return false
	}

	if it.xMajor {
		it.cur.X += it.stepX
		it.err += it.dy
		if it.err >= it.dx {
			it.cur.Y += it.stepY
			it.err -= it.dx
		}
	} else {
		it.cur.Y += it.stepY
		it.err += it.dx
		if it.err >= it.dy {
			it.cur.X += it.stepX
			it.err -= it.dy
		}
	}
	return true
}

// Cell returns the current cell.
func (it *LineIterator) Cell() pathfind.Cell { return it.cur }

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
