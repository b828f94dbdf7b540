package pathfind

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell is a discrete 2D grid coordinate. It is the identity key of a Node.
type Cell struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// Add returns c shifted by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ParseCell parses a cell written as "x,y".
func ParseCell(s string) (Cell, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Cell{}, fmt.Errorf("parsing cell %q: want x,y", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 32)
	if err != nil {
		return Cell{}, fmt.Errorf("parsing cell %q: %w", s, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 32)
	if err != nil {
		return Cell{}, fmt.Errorf("parsing cell %q: %w", s, err)
	}
	return Cell{X: int32(x), Y: int32(y)}, nil
}

// Distance returns the Euclidean distance between two cells.
func Distance(a, b Cell) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Position is an opaque world-space position attached to a cell.
// The grid never interprets it; it is returned to callers unchanged.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// directions lists the 8 moves in the order every search expands them:
// up, down, left, right, then the diagonals.
var directions = [8]Cell{
	{X: 0, Y: 1}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: 1, Y: 1},
}

func diagonal(d Cell) bool {
	return d.X != 0 && d.Y != 0
}
