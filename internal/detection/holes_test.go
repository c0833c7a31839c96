package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/shape-count/internal/bitmap"
	"github.com/ironsheep/shape-count/internal/morphology"
)

func TestExtractHoles_SolidRectangleHasNone(t *testing.T) {
	g := mustParse(t, `
		000000
		011110
		011110
		011110
		000000
	`)
	holes := ExtractHoles(g, bitmap.Full())
	assert.Equal(t, 0, holes.Count())
	assert.True(t, holes.SameSize(g))
}

func TestExtractHoles_Annulus(t *testing.T) {
	ring := mustParse(t, `
		0000000
		0111110
		0100010
		0100010
		0100010
		0111110
		0000000
	`)
	wantHoles := mustParse(t, `
		0000000
		0000000
		0011100
		0011100
		0011100
		0000000
		0000000
	`)
	wantSolid := mustParse(t, `
		0000000
		0111110
		0111110
		0111110
		0111110
		0111110
		0000000
	`)

	holes := ExtractHoles(ring, bitmap.Full())
	assert.Equal(t, wantHoles.String(), holes.String())

	solid, err := FillHoles(ring, holes)
	require.NoError(t, err)
	assert.Equal(t, wantSolid.String(), solid.String())
	assert.Equal(t, 16, ring.Count(), "ring must not be modified")
}

func TestExtractHoles_BorderReachability(t *testing.T) {
	tests := []struct {
		name  string
		image string
		holes int
	}{
		{
			// The enclosed area touches the border through the gap at (3,0),
			// so it is background, not a hole.
			name: "ring open at the border",
			image: `
				1110111
				1000001
				1000001
				1111111
				0000000`,
			holes: 0,
		},
		{
			name: "ring closed along the border",
			image: `
				1111111
				1000001
				1111111
				0000000`,
			holes: 5,
		},
		{
			// 8-connected background leaks through the diagonal gap.
			name: "diagonal gap",
			image: `
				00000
				01100
				01010
				00110
				00000`,
			holes: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.image)
			holes := ExtractHoles(g, bitmap.Full())
			assert.Equal(t, tt.holes, holes.Count())
		})
	}
}

func TestExtractHoles_PlusMaskKeepsDiagonalPocket(t *testing.T) {
	g := mustParse(t, `
		00000
		01100
		01010
		00110
		00000
	`)
	holes := ExtractHoles(g, bitmap.Plus())
	assert.Equal(t, 1, holes.Count())
	assert.Equal(t, uint8(1), holes.Get(2, 2))
}

func TestRemoveBackground_EqualsExtractHolesOfNegation(t *testing.T) {
	g := mustParse(t, `
		0000000
		0111110
		0101010
		0111110
		0000000
	`)
	a := RemoveBackground(morphology.Negate(g), bitmap.Full())
	b := ExtractHoles(g, bitmap.Full())
	assert.True(t, a.Equal(b))
	assert.Equal(t, 2, a.Count())
}

func TestExtractHoles_AllZero(t *testing.T) {
	g, err := bitmap.New(5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, ExtractHoles(g, bitmap.Full()).Count())
}

func TestFillHoles_Errors(t *testing.T) {
	a := mustParse(t, "11\n11")
	b := mustParse(t, "111\n111")

	_, err := FillHoles(a, b)
	assert.ErrorIs(t, err, morphology.ErrSizeMismatch)

	_, err = FillHoles(nil, b)
	assert.ErrorIs(t, err, ErrNilGrid)
}
