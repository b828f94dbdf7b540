package pathfind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	got, err := ParseCell("12,-3")
	require.NoError(t, err)
	assert.Equal(t, c(12, -3), got)

	got, err = ParseCell(" 4 , 5 ")
	require.NoError(t, err)
	assert.Equal(t, c(4, 5), got)

	for _, bad := range []string{"", "1", "a,2", "1,b", "1,2,3", "99999999999,0"} {
		_, err := ParseCell(bad)
		assert.Error(t, err, bad)
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "-1,7", c(-1, 7).String())
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(c(3, 3), c(3, 3)))
	assert.Equal(t, 5.0, Distance(c(0, 0), c(3, 4)))
	assert.InDelta(t, math.Sqrt2, Distance(c(1, 1), c(0, 0)), 1e-12)
}

func TestDirectionsOrder(t *testing.T) {
	want := [8]Cell{
		c(0, 1), c(0, -1), c(-1, 0), c(1, 0),
		c(-1, -1), c(-1, 1), c(1, -1), c(1, 1),
	}
	assert.Equal(t, want, directions)
}
