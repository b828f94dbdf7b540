// Package gridmap reads grid maps from YAML files.
//
// A map is a list of text rows, one glyph per cell. Row 0 is y = 0 and the
// rune index within a row is x. A space leaves the cell out of the grid.
package gridmap

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/navgrid/internal/pathfind"
)

// ErrEmptyMap is returned for a map without rows.
var ErrEmptyMap = errors.New("gridmap: map has no rows")

// Glyph describes the cell a legend character stands for.
type Glyph struct {
	Walkable bool             `yaml:"walkable"`
	Terrain  pathfind.Terrain `yaml:"terrain"`
}

// DefaultLegend returns the stock glyph table.
func DefaultLegend() map[string]Glyph {
	return map[string]Glyph{
		".": {Walkable: true, Terrain: pathfind.TerrainNormal},
		"#": {Walkable: false, Terrain: pathfind.TerrainNormal},
		"^": {Walkable: true, Terrain: pathfind.TerrainRough},
		"~": {Walkable: true, Terrain: pathfind.TerrainWater},
		"=": {Walkable: true, Terrain: pathfind.TerrainRoad},
	}
}

// Map is a parsed map file.
type Map struct {
	Name     string            `yaml:"name"`
	CellSize float64           `yaml:"cell_size"`
	Origin   pathfind.Position `yaml:"origin"`
	Legend   map[string]Glyph  `yaml:"legend"`
	Rows     []string          `yaml:"rows"`

	// Digest is the hex BLAKE2b-256 of the file the map was parsed from.
	Digest string `yaml:"-"`

	legend map[rune]Glyph
}

// Digest returns the hex-encoded BLAKE2b-256 sum of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads and parses the map file at path.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing map %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a map from YAML and validates it. Legend entries in the file
// override the default legend glyph by glyph.
func Parse(data []byte) (*Map, error) {
	m := &Map{CellSize: 1}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(m.Rows) == 0 {
		return nil, ErrEmptyMap
	}
	if m.CellSize <= 0 || math.IsInf(m.CellSize, 0) || math.IsNaN(m.CellSize) {
		return nil, fmt.Errorf("gridmap: cell_size must be positive, got %v", m.CellSize)
	}

	m.legend = make(map[rune]Glyph, len(m.Legend)+5)
	for k, g := range DefaultLegend() {
		r, _ := utf8.DecodeRuneInString(k)
		m.legend[r] = g
	}
	for k, g := range m.Legend {
		r, size := utf8.DecodeRuneInString(k)
		if size != len(k) || r == utf8.RuneError {
			return nil, fmt.Errorf("gridmap: legend key %q must be a single character", k)
		}
		if r == ' ' {
			return nil, errors.New("gridmap: space is reserved for missing cells")
		}
		m.legend[r] = g
	}

	for y, row := range m.Rows {
		x := 0
		for _, r := range row {
			if _, ok := m.legend[r]; !ok && r != ' ' {
				return nil, fmt.Errorf("gridmap: unknown glyph %q at row %d col %d", r, y, x)
			}
			x++
		}
	}

	m.Digest = Digest(data)
	return m, nil
}

// Build clears g and fills it with the map's cells.
func (m *Map) Build(g *pathfind.Grid) {
	g.Clear()
	for y, row := range m.Rows {
		x := int32(0)
		for _, r := range row {
			if glyph, ok := m.legend[r]; ok {
				c := pathfind.Cell{X: x, Y: int32(y)}
				g.SetWalkable(c, m.WorldPosition(c), glyph.Walkable, glyph.Terrain)
			}
			x++
		}
	}
}

// Grid returns a new grid holding the map's cells.
func (m *Map) Grid() *pathfind.Grid {
	g := pathfind.NewGrid()
	m.Build(g)
	return g
}

// WorldPosition returns the world position of the centre of c.
func (m *Map) WorldPosition(c pathfind.Cell) pathfind.Position {
	return pathfind.Position{
		X: m.Origin.X + (float64(c.X)+0.5)*m.CellSize,
		Y: m.Origin.Y + (float64(c.Y)+0.5)*m.CellSize,
		Z: m.Origin.Z,
	}
}

// CellAt returns the cell containing the world position p.
func (m *Map) CellAt(p pathfind.Position) pathfind.Cell {
	return pathfind.Cell{
		X: int32(math.Floor((p.X - m.Origin.X) / m.CellSize)),
		Y: int32(math.Floor((p.Y - m.Origin.Y) / m.CellSize)),
	}
}
