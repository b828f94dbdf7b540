package pathfind

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Behaviour shared by every strategy.

func TestSearchStartIsGoal(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(openGrid(t, 3, 3))
			require.NoError(t, err)

			for _, optimize := range []bool{false, true} {
				res := mustSearch(t, pf, c(1, 1), c(1, 1), optimize)
				assert.Equal(t, []Cell{c(1, 1)}, Cells(res.Path))
				assert.Equal(t, []float64{0}, res.Costs)
				assert.Zero(t, res.Cost)
			}
		})
	}
}

func TestSearchNoPath(t *testing.T) {
	g := gridFrom(t,
		"..#..",
		"..#..",
		"..#..",
	)

	tests := []struct {
		name        string
		start, goal Cell
	}{
		{"Goal missing", c(0, 0), c(9, 9)},
		{"Start missing", c(9, 9), c(0, 0)},
		{"Goal blocked", c(0, 0), c(2, 1)},
		{"Walled off", c(0, 0), c(4, 2)},
	}
	for _, s := range strategies {
		pf, err := s.new(g)
		require.NoError(t, err)
		for _, tt := range tests {
			t.Run(s.name+"/"+tt.name, func(t *testing.T) {
				path, err := pf.FindPath(context.Background(), tt.start, tt.goal, true)
				assert.ErrorIs(t, err, ErrNoPath)
				assert.Nil(t, path)
			})
		}
	}
}

func TestSearchOpenGridDiagonal(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(openGrid(t, 5, 5))
			require.NoError(t, err)

			for _, optimize := range []bool{false, true} {
				res := mustSearch(t, pf, c(0, 0), c(4, 4), optimize)
				assert.Equal(t, c(0, 0), res.Path[0].Cell())
				assert.Equal(t, c(4, 4), res.Path[len(res.Path)-1].Cell())
				assert.InDelta(t, 4*math.Sqrt2, Length(res.Path), 1e-9)
				assert.InDelta(t, 4*math.Sqrt2, res.Cost, 1e-9)
			}

			smoothed := mustSearch(t, pf, c(0, 0), c(4, 4), true)
			assert.Equal(t, []Cell{c(0, 0), c(4, 4)}, Cells(smoothed.Path))
		})
	}
}

func TestSearchAroundCentreObstacle(t *testing.T) {
	g := gridFrom(t,
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(g)
			require.NoError(t, err)

			for _, optimize := range []bool{false, true} {
				res := mustSearch(t, pf, c(0, 0), c(4, 4), optimize)
				assert.NotContains(t, Cells(res.Path), c(2, 2))
				assert.Equal(t, c(0, 0), res.Path[0].Cell())
				assert.Equal(t, c(4, 4), res.Path[len(res.Path)-1].Cell())
				assert.Greater(t, res.Cost, 4*math.Sqrt2)
			}
		})
	}
}

func TestSearchCostsMonotone(t *testing.T) {
	g := gridFrom(t,
		"..^^....",
		".##~~##.",
		"..====..",
		".#....#.",
	)
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(g)
			require.NoError(t, err)

			for _, optimize := range []bool{false, true} {
				res := mustSearch(t, pf, c(0, 0), c(7, 3), optimize)
				require.Len(t, res.Costs, len(res.Path))
				assert.Zero(t, res.Costs[0])
				assert.Equal(t, res.Cost, res.Costs[len(res.Costs)-1])
				for i := 1; i < len(res.Costs); i++ {
					assert.Greater(t, res.Costs[i], res.Costs[i-1])
				}
				assert.Positive(t, res.Expanded)
			}
		})
	}
}

func TestSearchDeterministic(t *testing.T) {
	g := gridFrom(t,
		"..........",
		".###..###.",
		"....##....",
		".#......#.",
		"..........",
	)
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(g)
			require.NoError(t, err)
			want := mustSearch(t, pf, c(0, 0), c(9, 4), false)

			for range 10 {
				got := mustSearch(t, pf, c(0, 0), c(9, 4), false)
				assert.Equal(t, Cells(want.Path), Cells(got.Path))
				assert.Equal(t, want.Costs, got.Costs)
			}

			fresh, err := s.new(g)
			require.NoError(t, err)
			got := mustSearch(t, fresh, c(0, 0), c(9, 4), false)
			assert.Equal(t, Cells(want.Path), Cells(got.Path))
		})
	}
}

func TestSearchSeesGridChanges(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			g := openGrid(t, 3, 1)
			pf, err := s.new(g)
			require.NoError(t, err)

			mustSearch(t, pf, c(0, 0), c(2, 0), false)

			g.SetWalkable(c(1, 0), Position{}, false, TerrainNormal)
			_, err = pf.FindPath(context.Background(), c(0, 0), c(2, 0), false)
			assert.ErrorIs(t, err, ErrNoPath)

			g.SetWalkable(c(1, 0), Position{}, true, TerrainNormal)
			mustSearch(t, pf, c(0, 0), c(2, 0), false)
		})
	}
}

func TestSearchUnknownTerrainWeight(t *testing.T) {
	g := gridFrom(t, "..~")
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(g, WithWeights(Weights{TerrainNormal: 1}))
			require.NoError(t, err)

			_, err = pf.FindPath(context.Background(), c(0, 0), c(2, 0), false)
			assert.ErrorIs(t, err, ErrUnknownTerrain)
			assert.NotErrorIs(t, err, ErrNoPath)
		})
	}
}

func TestSearchIterationLimit(t *testing.T) {
	g := openGrid(t, 20, 20)
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			limited, err := s.new(g, WithMaxIterations(1))
			require.NoError(t, err)
			_, err = limited.FindPath(context.Background(), c(0, 0), c(19, 19), false)
			assert.ErrorIs(t, err, ErrIterationLimit)

			unlimited, err := s.new(g, WithMaxIterations(0))
			require.NoError(t, err)
			mustSearch(t, unlimited, c(0, 0), c(19, 19), false)
		})
	}
}

func TestSearchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			pf, err := s.new(openGrid(t, 4, 4))
			require.NoError(t, err)

			_, err = pf.FindPath(ctx, c(0, 0), c(3, 3), false)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestNewStrategyOptionErrors(t *testing.T) {
	g := openGrid(t, 2, 2)
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			_, err := s.new(nil)
			assert.Error(t, err)

			_, err = s.new(g, WithWeights(Weights{TerrainNormal: 0}))
			assert.ErrorIs(t, err, ErrInvalidWeight)

			_, err = s.new(g, WithHeuristic("manhattan"))
			assert.ErrorIs(t, err, ErrUnknownHeuristic)

			_, err = s.new(g, WithMaxIterations(-1))
			assert.Error(t, err)

			_, err = s.new(g, WithLogger(nil))
			assert.NoError(t, err)
		})
	}
}

func TestWithWeightsCopiesTable(t *testing.T) {
	w := DefaultWeights()
	var o Options
	WithWeights(w)(&o)

	w[TerrainNormal] = 100
	got, err := o.Weights.Of(TerrainNormal)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}
