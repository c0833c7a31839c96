package bitmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 0, g.Count())

	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		_, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrEmptyGrid, "New(%d, %d)", dims[0], dims[1])
	}
}

func TestNew_Overflow(t *testing.T) {
	for _, dims := range [][2]int{{1 << 62, 4}, {3037000500, 3037000500}, {math.MaxInt, 2}} {
		g, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrTooLarge, "New(%d, %d)", dims[0], dims[1])
		assert.Nil(t, g)
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]uint8{
		{0, 1, 2},
		{1, 0, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, uint8(1), g.Get(2, 0), "non-zero values are stored as 1")
	assert.Equal(t, 3, g.Count())

	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = FromRows([][]uint8{{1, 0}, {1}})
	assert.ErrorIs(t, err, ErrNonRectangular)
}

func TestParse(t *testing.T) {
	g, err := Parse(`
		.#.
		###
		0 1 0
	`)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, "010\n111\n010", g.String())

	_, err = Parse("01x")
	assert.ErrorIs(t, err, ErrInvalidCell)
}

func TestGrid_OutOfBounds(t *testing.T) {
	g := mustParse(t, "11\n11")

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"top", 0, -1},
		{"right", 2, 0},
		{"bottom", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, g.InBounds(tt.x, tt.y))
			assert.Equal(t, uint8(0), g.Get(tt.x, tt.y))
			g.Set(tt.x, tt.y, 1) // ignored
			assert.Equal(t, 4, g.Count())
		})
	}
}

func TestGrid_CloneIsDeep(t *testing.T) {
	g := mustParse(t, "10\n01")
	c := g.Clone()
	require.True(t, g.Equal(c))

	c.Set(0, 0, 0)
	assert.Equal(t, uint8(1), g.Get(0, 0))
	assert.False(t, g.Equal(c))
}

func TestGrid_Equal(t *testing.T) {
	a := mustParse(t, "10\n01")
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(mustParse(t, "100\n010")))
	assert.True(t, a.Equal(mustParse(t, "10\n01")))
}

func TestGrid_Rows(t *testing.T) {
	g := mustParse(t, "10\n01")
	rows := g.Rows()
	assert.Equal(t, [][]uint8{{1, 0}, {0, 1}}, rows)

	rows[0][0] = 0
	assert.Equal(t, uint8(1), g.Get(0, 0), "Rows returns a copy")
}

func TestGrid_Crop(t *testing.T) {
	g := mustParse(t, `
		0000
		0110
		0110
		0000
	`)
	c, err := g.Crop(1, 1, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "11\n11", c.String())

	_, err = g.Crop(2, 2, 5, 3)
	assert.ErrorIs(t, err, ErrRegion)
	_, err = g.Crop(2, 2, 2, 3)
	assert.ErrorIs(t, err, ErrRegion)
}

func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := Parse(text)
	require.NoError(t, err)
	return g
}
