// Package render draws grids and paths as PNG images.
//
// Each cell becomes one pixel, coloured by terrain or as blocked. Rows keep
// the order of map files: y grows downwards. The image is then scaled up with
// nearest-neighbour sampling so cells stay crisp.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/udisondev/navgrid/internal/pathfind"
)

// ErrEmptyGrid is returned when there is nothing to draw.
var ErrEmptyGrid = errors.New("render: grid is empty")

// Palette maps grid features to colours.
type Palette struct {
	Missing  color.RGBA
	Blocked  color.RGBA
	Path     color.RGBA
	Waypoint color.RGBA
	Terrain  map[pathfind.Terrain]color.RGBA
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		Missing:  colornames.Black,
		Blocked:  colornames.Dimgray,
		Path:     colornames.Red,
		Waypoint: colornames.Yellow,
		Terrain: map[pathfind.Terrain]color.RGBA{
			pathfind.TerrainNormal: colornames.Beige,
			pathfind.TerrainRough:  colornames.Sienna,
			pathfind.TerrainWater:  colornames.Steelblue,
			pathfind.TerrainRoad:   colornames.Darkkhaki,
		},
	}
}

// Options configures Render.
type Options struct {
	Scale   int // pixels per cell; values below 1 mean 1
	Palette Palette
}

// DefaultOptions returns 8 pixels per cell and the default palette.
func DefaultOptions() Options {
	return Options{Scale: 8, Palette: DefaultPalette()}
}

// Render draws g and, if non-empty, path on top of it.
func Render(g *pathfind.Grid, path []*pathfind.Node, opts Options) (*image.RGBA, error) {
	lo, hi, ok := g.Bounds()
	if !ok {
		return nil, ErrEmptyGrid
	}
	w := int(hi.X-lo.X) + 1
	h := int(hi.Y-lo.Y) + 1
	pal := opts.Palette

	src := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(src, src.Bounds(), &image.Uniform{C: pal.Missing}, image.Point{}, draw.Src)

	px := func(c pathfind.Cell) (int, int) {
		return int(c.X - lo.X), int(c.Y - lo.Y)
	}

	for _, n := range g.Nodes() {
		col := pal.Blocked
		if n.Walkable() {
			tc, ok := pal.Terrain[n.Terrain()]
			if !ok {
				return nil, fmt.Errorf("render: no colour for terrain %s", n.Terrain())
			}
			col = tc
		}
		x, y := px(n.Cell())
		src.SetRGBA(x, y, col)
	}

	for i := 1; i < len(path); i++ {
		it := NewLineIterator(path[i-1].Cell(), path[i].Cell())
		for it.Next() {
			x, y := px(it.Cell())
			src.SetRGBA(x, y, pal.Path)
		}
	}
	for _, n := range path {
		x, y := px(n.Cell())
		src.SetRGBA(x, y, pal.Waypoint)
	}

	scale := max(opts.Scale, 1)
	if scale == 1 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
