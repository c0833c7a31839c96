package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

// TestCountComponents_Simple checks a 5x5 grid under both connectivities.
//
// Grid:
//
//	1 0 0 0 1
//	0 1 0 1 0
//	0 0 0 0 0
//	1 1 0 0 1
//	1 0 0 1 1
//
// 8-connected: {(0,0),(1,1)}, {(4,0),(3,1)}, {(0,3),(1,3),(0,4)}, {(4,3),(3,4),(4,4)} = 4.
// 4-connected: the two diagonal pairs split, giving 6.
func TestCountComponents_Simple(t *testing.T) {
	g := mustParse(t, `
		10001
		01010
		00000
		11001
		10011
	`)
	assert.Equal(t, 4, CountComponents(g, bitmap.Full()))
	assert.Equal(t, 6, CountComponents(g, bitmap.Plus()))
}

func TestCountComponents_DoesNotMutate(t *testing.T) {
	g := mustParse(t, "101\n010\n101")
	_ = CountComponents(g, bitmap.Plus())
	assert.Equal(t, "101\n010\n101", g.String())
}

func TestCountComponents_SolidRectangle(t *testing.T) {
	g := mustParse(t, `
		00000000
		00111110
		00111110
		00111110
		00000000
	`)
	assert.Equal(t, 1, CountComponents(g, bitmap.Full()))
}

func TestCountComponents_AllZero(t *testing.T) {
	g, err := bitmap.New(9, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, CountComponents(g, bitmap.Full()))
	assert.Empty(t, ComponentSizes(g, bitmap.Full()))
}

func TestCountComponents_ScanOrderInvariant(t *testing.T) {
	g, err := bitmap.New(23, 17)
	require.NoError(t, err)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if (x*7+y*13)%5 < 2 || (x*y)%11 == 3 {
				g.Set(x, y, 1)
			}
		}
	}

	for name, m := range map[string]bitmap.Mask{"full": bitmap.Full(), "plus": bitmap.Plus()} {
		t.Run(name, func(t *testing.T) {
			col := CountComponentsOrder(g, m, ColumnMajor)
			row := CountComponentsOrder(g, m, RowMajor)
			assert.Equal(t, col, row)
			assert.Positive(t, col)

			total := 0
			for _, n := range ComponentSizesOrder(g, m, RowMajor) {
				total += n
			}
			assert.Equal(t, g.Count(), total)
		})
	}
}

func TestComponentSizes_DiscoveryOrder(t *testing.T) {
	// Column-major finds both pairs in column 0 before the single pixels.
	g := mustParse(t, `
		1100
		0010
		1101
	`)
	assert.Equal(t, []int{2, 2, 1, 1}, ComponentSizes(g, bitmap.Plus()))
	assert.Equal(t, []int{6}, ComponentSizes(g, bitmap.Full()))
}
