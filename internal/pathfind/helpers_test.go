package pathfind

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFrom builds a grid from text rows; row 0 is y = 0.
// '.' normal, '#' blocked, '^' rough, '~' water, '=' road, ' ' no cell.
func gridFrom(t testing.TB, rows ...string) *Grid {
	t.Helper()
	g := NewGrid()
	for y, row := range rows {
		for x, ch := range row {
			c := Cell{X: int32(x), Y: int32(y)}
			pos := Position{X: float64(x), Y: float64(y)}
			switch ch {
			case ' ':
			case '.':
				g.SetWalkable(c, pos, true, TerrainNormal)
			case '#':
				g.SetWalkable(c, pos, false, TerrainNormal)
			case '^':
				g.SetWalkable(c, pos, true, TerrainRough)
			case '~':
				g.SetWalkable(c, pos, true, TerrainWater)
			case '=':
				g.SetWalkable(c, pos, true, TerrainRoad)
			default:
				t.Fatalf("unknown glyph %q at %d,%d", ch, x, y)
			}
		}
	}
	return g
}

// openGrid returns a w×h grid of walkable normal cells.
func openGrid(t testing.TB, w, h int) *Grid {
	t.Helper()
	rows := make([]string, h)
	for y := range rows {
		row := make([]byte, w)
		for x := range row {
			row[x] = '.'
		}
		rows[y] = string(row)
	}
	return gridFrom(t, rows...)
}

type strategyCase struct {
	name string
	new  func(*Grid, ...Option) (Searcher, error)
}

var strategies = []strategyCase{
	{"astar", func(g *Grid, opts ...Option) (Searcher, error) { return NewAStar(g, opts...) }},
	{"jps", func(g *Grid, opts ...Option) (Searcher, error) { return NewJPS(g, opts...) }},
}

func mustSearch(t *testing.T, s Searcher, start, goal Cell, optimize bool) Result {
	t.Helper()
	res, err := s.Search(context.Background(), start, goal, optimize)
	require.NoError(t, err)
	require.NotEmpty(t, res.Path)
	return res
}

func c(x, y int32) Cell { return Cell{X: x, Y: y} }
