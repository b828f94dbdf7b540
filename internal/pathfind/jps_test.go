package pathfind

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJPSForced(t *testing.T) {
	g := gridFrom(t,
		"...",
		".#.",
		"...",
	)
	r := &runner{grid: g}

	tests := []struct {
		name string
		at   Cell
		dir  Cell
		want bool
	}{
		{"Blocked above cardinal", c(1, 0), c(1, 0), true},
		{"Blocked below cardinal", c(1, 2), c(-1, 0), true},
		{"Open cardinal", c(0, 0), c(0, 1), false},
		{"Blocked component diagonal", c(1, 0), c(1, 1), true},
		{"Missing side at map edge", c(2, 0), c(1, 0), false},
		{"Open diagonal from corner", c(0, 0), c(1, 1), false},
		{"Open diagonal", c(2, 2), c(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.forced(tt.at, tt.dir))
		})
	}
}

func TestJPSForcedBehindDiagonalCorner(t *testing.T) {
	g := gridFrom(t,
		"...",
		"#..",
		"...",
	)
	r := &runner{grid: g}

	// Moving (1,1) into (1,1): the trailing cell (0,1) is blocked and (0,2)
	// behind it can only be reached by turning here.
	assert.True(t, r.forced(c(1, 1), c(1, 1)))
}

func TestJPSForcedAroundHole(t *testing.T) {
	g := gridFrom(t,
		"....",
		". ..",
		"....",
	)
	r := &runner{grid: g}

	assert.True(t, r.forced(c(1, 0), c(1, 0)), "missing cell with walkable cell past it")
	assert.False(t, r.forced(c(3, 0), c(1, 0)), "edge of the map")
}

func TestJPSOpenGridJumpsStraightToGoal(t *testing.T) {
	j, err := NewJPS(openGrid(t, 5, 5))
	require.NoError(t, err)

	res := mustSearch(t, j, c(0, 0), c(4, 4), false)
	assert.Equal(t, []Cell{c(0, 0), c(4, 4)}, Cells(res.Path))
	assert.Equal(t, 2, res.Expanded)
}

func TestJPSFindsPocketBehindCorner(t *testing.T) {
	g := gridFrom(t,
		"...",
		"#..",
		"...",
	)
	j, err := NewJPS(g)
	require.NoError(t, err)

	res := mustSearch(t, j, c(0, 0), c(0, 2), false)
	assert.Equal(t, []Cell{c(0, 0), c(1, 1), c(0, 2)}, Cells(res.Path))
}

func TestJPSAgreesWithAStarOnReachability(t *testing.T) {
	g := gridFrom(t,
		"........#.",
		".######.#.",
		".#....#.#.",
		".#.##.#...",
		".#..#.###.",
		".####.....",
		"......###.",
	)
	a, err := NewAStar(g)
	require.NoError(t, err)
	j, err := NewJPS(g)
	require.NoError(t, err)

	ctx := context.Background()
	start := c(0, 0)
	for _, n := range g.Nodes() {
		if !n.Walkable() {
			continue
		}
		_, aerr := a.FindPath(ctx, start, n.Cell(), false)
		_, jerr := j.FindPath(ctx, start, n.Cell(), false)
		assert.Equal(t, aerr == nil, jerr == nil, "goal %s: astar=%v jps=%v", n.Cell(), aerr, jerr)
	}
}

func TestJPSCostsEndpointWeightOnly(t *testing.T) {
	g := gridFrom(t, "....=")

	j, err := NewJPS(g)
	require.NoError(t, err)
	res := mustSearch(t, j, c(0, 0), c(4, 0), false)
	assert.Equal(t, []Cell{c(0, 0), c(4, 0)}, Cells(res.Path))
	assert.InDelta(t, 4*0.8, res.Cost, 1e-9)

	a, err := NewAStar(g)
	require.NoError(t, err)
	res = mustSearch(t, a, c(0, 0), c(4, 0), false)
	assert.InDelta(t, 3+0.8, res.Cost, 1e-9)
}
