package bitmap

import "fmt"

// Offset is a neighbour displacement relative to a mask's center.
type Offset struct {
	DX, DY int
}

// Mask is an immutable structuring element.
//
// The center is (Height()/2, Width()/2) using integer division. Offsets are
// precomputed at construction so traversals never redo the center math.
// The zero Mask has no cells; IsZero reports it.
type Mask struct {
	width, height int
	cells         []uint8
	offsets       []Offset
}

// NewMask builds a mask from rows[j][i]. Non-zero values are active.
//
// Returns ErrEmptyMask for an empty mask or one with no active cell,
// ErrNonRectangular for ragged rows and ErrEvenMask when either dimension is
// even.
func NewMask(rows [][]uint8) (Mask, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Mask{}, ErrEmptyMask
	}
	h, w := len(rows), len(rows[0])
	if w%2 == 0 || h%2 == 0 {
		return Mask{}, fmt.Errorf("%w: got %dx%d", ErrEvenMask, w, h)
	}

	m := Mask{width: w, height: h, cells: make([]uint8, w*h)}
	cx, cy := w/2, h/2
	active := 0
	for j, row := range rows {
		if len(row) != w {
			return Mask{}, fmt.Errorf("%w: mask row %d has %d cells, want %d", ErrNonRectangular, j, len(row), w)
		}
		for i, v := range row {
			if v == 0 {
				continue
			}
			m.cells[j*w+i] = 1
			active++
			if i == cx && j == cy {
				continue
			}
			m.offsets = append(m.offsets, Offset{DX: i - cx, DY: j - cy})
		}
	}
	if active == 0 {
		return Mask{}, ErrEmptyMask
	}
	return m, nil
}

// MustMask is NewMask that panics on error. Intended for literal masks.
func MustMask(rows [][]uint8) Mask {
	m, err := NewMask(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Full returns the 3x3 mask of ones (8-connectivity).
func Full() Mask {
	return MustMask([][]uint8{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
}

// Plus returns the 3x3 center cross (4-connectivity).
func Plus() Mask {
	return MustMask([][]uint8{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	})
}

// Connectivity returns Full for 8 and Plus for 4.
func Connectivity(n int) (Mask, error) {
	switch n {
	case 8:
		return Full(), nil
	case 4:
		return Plus(), nil
	default:
		return Mask{}, fmt.Errorf("bitmap: unsupported connectivity %d (want 4 or 8)", n)
	}
}

// Width returns the number of mask columns.
func (m Mask) Width() int { return m.width }

// Height returns the number of mask rows.
func (m Mask) Height() int { return m.height }

// Center returns the center cell as (row, column).
func (m Mask) Center() (row, col int) {
	return m.height / 2, m.width / 2
}

// IsZero reports whether m is the zero Mask.
func (m Mask) IsZero() bool {
	return m.width == 0 || m.height == 0
}

// At returns the mask cell at column i, row j, or 0 outside the mask.
func (m Mask) At(i, j int) uint8 {
	if i < 0 || j < 0 || i >= m.width || j >= m.height {
		return 0
	}
	return m.cells[j*m.width+i]
}

// Offsets returns the neighbour offsets of every active cell except the
// center, in row-major mask order. The returned slice must not be modified.
func (m Mask) Offsets() []Offset {
	return m.offsets
}

// Symmetric reports whether the mask is unchanged by a 180 degree rotation.
// Only symmetric masks define an undirected neighbour relation.
func (m Mask) Symmetric() bool {
	for j := 0; j < m.height; j++ {
		for i := 0; i < m.width; i++ {
			if m.At(i, j) != m.At(m.width-1-i, m.height-1-j) {
				return false
			}
		}
	}
	return true
}

// String renders the mask with one row per line.
func (m Mask) String() string {
	buf := make([]byte, 0, (m.width+1)*m.height)
	for j := 0; j < m.height; j++ {
		if j > 0 {
			buf = append(buf, '\n')
		}
		for i := 0; i < m.width; i++ {
			buf = append(buf, '0'+m.cells[j*m.width+i])
		}
	}
	return string(buf)
}
