package bitmap

import (
	"fmt"
	"math"
	"strings"
)

// Grid is a rectangular binary image stored row-major.
//
// Width and height are fixed at construction. The zero value is not usable;
// build grids with New, FromRows or Parse.
type Grid struct {
	width, height int
	pix           []uint8
}

// New returns an all-zero grid of the given size.
//
// Returns ErrEmptyGrid if width or height is less than 1 and ErrTooLarge if
// width*height overflows an int.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyGrid, width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: got %dx%d", ErrTooLarge, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

// FromRows builds a grid from rows[y][x]. Non-zero values become 1.
// The input is copied.
func FromRows(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), g.width)
		}
		for x, v := range row {
			g.Set(x, y, v)
		}
	}
	return g, nil
}

// Parse builds a grid from text, one row per line. Cells are '1' or '#' for
// foreground and '0' or '.' for background. Blank lines and spaces are
// skipped, so both "0110" and "0 1 1 0" are accepted.
func Parse(text string) (*Grid, error) {
	var rows [][]uint8
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]uint8, 0, len(line))
		for _, ch := range line {
			switch ch {
			case '1', '#':
				row = append(row, 1)
			case '0', '.':
				row = append(row, 0)
			case ' ', '\t':
			default:
				return nil, fmt.Errorf("%w: %q on line %d", ErrInvalidCell, ch, n+1)
			}
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x, y), or 0 when (x, y) is outside the grid.
func (g *Grid) Get(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.pix[y*g.width+x]
}

// Set stores v at (x, y). Any non-zero v is stored as 1.
// Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	if v != 0 {
		v = 1
	}
	g.pix[y*g.width+x] = v
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	pix := make([]uint8, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, pix: pix}
}

// SameSize reports whether o has the same width and height as g.
func (g *Grid) SameSize(o *Grid) bool {
	return o != nil && g.width == o.width && g.height == o.height
}

// Equal reports whether o has the same size and the same cells.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Count returns the number of foreground cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.pix {
		n += int(v)
	}
	return n
}

// Rows returns a copy of the cells as rows[y][x].
func (g *Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.height)
	for y := range rows {
		rows[y] = make([]uint8, g.width)
		copy(rows[y], g.pix[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Lines renders each row as a string of '0' and '1'.
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			sb.WriteByte('0' + g.pix[y*g.width+x])
		}
		lines[y] = sb.String()
	}
	return lines
}

// String renders the grid with one row per line.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Crop returns a copy of the region [x1,x2) x [y1,y2).
//
// The region must lie inside the grid and be non-empty; otherwise an error
// wrapping ErrRegion is returned.
func (g *Grid) Crop(x1, y1, x2, y2 int) (*Grid, error) {
	if x1 < 0 || y1 < 0 || x2 > g.width || y2 > g.height {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d) outside grid bounds (0,0)-(%d,%d)",
			ErrRegion, x1, y1, x2, y2, g.width, g.height)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("%w: x1 must be < x2, y1 must be < y2", ErrRegion)
	}
	out, err := New(x2-x1, y2-y1)
	if err != nil {
		return nil, err
	}
	for y := y1; y < y2; y++ {
		copy(out.pix[(y-y1)*out.width:(y-y1+1)*out.width], g.pix[y*g.width+x1:y*g.width+x2])
	}
	return out, nil
}
