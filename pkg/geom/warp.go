package geom

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// ErrMesh reports a mesh whose shape cannot describe a grid warp.
var ErrMesh = errors.New("geom: malformed warp mesh")

// Mesh is a Rows x Cols grid of control points over a Width x Height source.
// Points is row-major: Points[r*Cols+c].
type Mesh struct {
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Points []Point `json:"points"`
}

// NewMesh returns the default mesh: a uniform grid spanning the w x h
// source exactly, which warps to the identity.
func NewMesh(rows, cols, w, h int) *Mesh {
	m := &Mesh{Rows: rows, Cols: cols, Width: w, Height: h}
	if rows < 2 || cols < 2 {
		return m
	}
	cw, ch := m.cellSize()
	m.Points = make([]Point, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Points[r*cols+c] = Point{X: float64(c) * cw, Y: float64(r) * ch}
		}
	}
	return m
}

// Validate checks rows, cols >= 2 and that Points holds exactly rows*cols
// entries.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrMesh)
	}
	if m.Rows < 2 || m.Cols < 2 {
		return fmt.Errorf("%w: %dx%d grid, need at least 2x2", ErrMesh, m.Rows, m.Cols)
	}
	if len(m.Points) != m.Rows*m.Cols {
		return fmt.Errorf("%w: %d points for a %dx%d grid", ErrMesh, len(m.Points), m.Rows, m.Cols)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: domain %dx%d", ErrMesh, m.Width, m.Height)
	}
	return nil
}

// At returns the control point at grid position (r, c).
func (m *Mesh) At(r, c int) Point {
	return m.Points[r*m.Cols+c]
}

// Set moves the control point at grid position (r, c).
func (m *Mesh) Set(r, c int, p Point) {
	m.Points[r*m.Cols+c] = p
}

func (m *Mesh) cellSize() (float64, float64) {
	return float64(m.Width) / float64(m.Cols-1), float64(m.Height) / float64(m.Rows-1)
}

// ApplyWarpMesh warps src through the mesh into a buffer of the same size.
// For each destination pixel the containing grid cell is found, the four
// corner control positions are bilinearly interpolated to a source
// coordinate, and the source is sampled at the nearest texel. Samples that
// fall outside the source are fully transparent.
func ApplyWarpMesh(src *image.NRGBA, m *Mesh) (*image.NRGBA, error) {
	if err := raster.Validate(src); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	cw, ch := m.cellSize()

	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			gy := float64(y) / ch
			row := raster.ClampInt(int(math.Floor(gy)), 0, m.Rows-2)
			fy := gy - float64(row)
			for x := 0; x < w; x++ {
				gx := float64(x) / cw
				col := raster.ClampInt(int(math.Floor(gx)), 0, m.Cols-2)
				fx := gx - float64(col)

				p00 := m.At(row, col)
				p10 := m.At(row, col+1)
				p01 := m.At(row+1, col)
				p11 := m.At(row+1, col+1)
				sx := (p00.X*(1-fx)+p10.X*fx)*(1-fy) + (p01.X*(1-fx)+p11.X*fx)*fy
				sy := (p00.Y*(1-fx)+p10.Y*fx)*(1-fy) + (p01.Y*(1-fx)+p11.Y*fx)*fy

				ix := int(math.Round(sx))
				iy := int(math.Round(sy))
				if ix < 0 || iy < 0 || ix >= w || iy >= h {
					continue
				}
				si := raster.Offset(src, ix, iy)
				di := raster.Offset(out, x, y)
				copy(out.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	})
	return out, nil
}
