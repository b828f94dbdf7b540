package pathfind

import (
	"fmt"
	"math"
)

// Terrain is the cost category of a cell.
type Terrain uint8

const (
	TerrainNormal Terrain = iota
	TerrainRough
	TerrainWater
	TerrainRoad
)

var terrainNames = [...]string{
	TerrainNormal: "normal",
	TerrainRough:  "rough",
	TerrainWater:  "water",
	TerrainRoad:   "road",
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// ParseTerrain converts a terrain name into a Terrain.
func ParseTerrain(s string) (Terrain, error) {
	for i, name := range terrainNames {
		if name == s {
			return Terrain(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Terrain) MarshalText() ([]byte, error) {
	if int(t) >= len(terrainNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTerrain, uint8(t))
	}
	return []byte(terrainNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Terrain) UnmarshalText(text []byte) error {
	v, err := ParseTerrain(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Weights maps a terrain to the multiplier applied to the Euclidean length
// of a move into a cell of that terrain.
type Weights map[Terrain]float64

// DefaultWeights returns the stock weight table.
func DefaultWeights() Weights {
	return Weights{
		TerrainNormal: 1.0,
		TerrainRough:  2.0,
		TerrainWater:  3.0,
		TerrainRoad:   0.8,
	}
}

// Of returns the weight registered for t.
// A missing entry is a configuration error and is never defaulted.
func (w Weights) Of(t Terrain) (float64, error) {
	v, ok := w[t]
	if !ok {
		return 0, fmt.Errorf("%w: no weight for %s", ErrUnknownTerrain, t)
	}
	return v, nil
}

// Min returns the smallest registered weight.
func (w Weights) Min() float64 {
	m := math.Inf(1)
	for _, v := range w {
		m = min(m, v)
	}
	return m
}

// Validate checks that the table is non-empty and every weight is finite and positive.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("%w: empty weight table", ErrInvalidWeight)
	}
	for t, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeight, t, v)
		}
	}
	return nil
}

func (w Weights) clone() Weights {
	c := make(Weights, len(w))
	for t, v := range w {
		c[t] = v
	}
	return c
}
