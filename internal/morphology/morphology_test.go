package morphology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

func mustParse(t *testing.T, text string) *bitmap.Grid {
	t.Helper()
	g, err := bitmap.Parse(text)
	require.NoError(t, err)
	return g
}

func TestNegate_Involution(t *testing.T) {
	grids := []string{
		"0",
		"1",
		"0110\n1001\n0110",
		"111\n101\n111\n000",
	}
	for _, text := range grids {
		g := mustParse(t, text)
		n := Negate(g)
		assert.Equal(t, g.Width()*g.Height()-g.Count(), n.Count())
		assert.True(t, g.Equal(Negate(n)), "negate(negate(g)) != g for\n%s", text)
	}
}

func TestNegate_DoesNotMutate(t *testing.T) {
	g := mustParse(t, "10\n01")
	_ = Negate(g)
	assert.Equal(t, "10\n01", g.String())
}

func TestErode_SolidRectangle(t *testing.T) {
	g := mustParse(t, `
		0000000
		0111110
		0111110
		0111110
		0111110
		0000000
	`)
	want := mustParse(t, `
		0000000
		0000000
		0011100
		0011100
		0000000
		0000000
	`)
	got, err := Erode(g, bitmap.Full())
	require.NoError(t, err)
	assert.Equal(t, want.String(), got.String())
}

func TestErode_BorderFrameIsAlwaysZero(t *testing.T) {
	g := mustParse(t, `
		11111
		11111
		11111
		11111
	`)
	got, err := Erode(g, bitmap.Full())
	require.NoError(t, err)
	assert.Equal(t, "00000\n01110\n01110\n00000", got.String())
}

func TestErode_PlusKeepsCorners(t *testing.T) {
	// With the plus mask, diagonal neighbours do not matter.
	g := mustParse(t, `
		01110
		11111
		11111
		01110
	`)
	full, err := Erode(g, bitmap.Full())
	require.NoError(t, err)
	plus, err := Erode(g, bitmap.Plus())
	require.NoError(t, err)

	assert.Equal(t, "00000\n01110\n01110\n00000", plus.String())
	assert.Equal(t, "00000\n00100\n00100\n00000", full.String())
}

func TestDilate_SinglePixel(t *testing.T) {
	g := mustParse(t, `
		00000
		00000
		00100
		00000
		00000
	`)
	got, err := Dilate(g, bitmap.Full())
	require.NoError(t, err)
	assert.Equal(t, "00000\n01110\n01110\n01110\n00000", got.String())

	plus, err := Dilate(g, bitmap.Plus())
	require.NoError(t, err)
	assert.Equal(t, "00000\n00100\n01110\n00100\n00000", plus.String())
}

func TestDilate_BorderFrameIsAlwaysZero(t *testing.T) {
	g := mustParse(t, `
		10000
		00000
		00000
	`)
	got, err := Dilate(g, bitmap.Full())
	require.NoError(t, err)
	assert.Equal(t, uint8(0), got.Get(0, 0))
	assert.Equal(t, uint8(1), got.Get(1, 1))
	assert.Equal(t, 1, got.Count())
}

func TestTransforms_AllZero(t *testing.T) {
	g, err := bitmap.New(6, 4)
	require.NoError(t, err)

	for _, op := range []Operation{Erosion, Dilation} {
		transformed, err := op.Apply(g, bitmap.Full())
		require.NoError(t, err)
		assert.Equal(t, 0, transformed.Count(), op.String())
		assert.True(t, transformed.SameSize(g))

		envelope, err := Envelope(g, bitmap.Full(), op)
		require.NoError(t, err)
		assert.Equal(t, 0, envelope.Count(), op.String())
	}
}

func TestTransforms_GridSmallerThanMask(t *testing.T) {
	g := mustParse(t, "11\n11")
	got, err := Dilate(g, bitmap.Full())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Count())
}

func TestErode_LargerMask(t *testing.T) {
	m, err := bitmap.NewMask([][]uint8{
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
	})
	require.NoError(t, err)

	g, err := bitmap.New(7, 7)
	require.NoError(t, err)
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			g.Set(x, y, 1)
		}
	}

	got, err := Erode(g, m)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Count())
	assert.Equal(t, uint8(1), got.Get(2, 2))
	assert.Equal(t, uint8(1), got.Get(4, 4))
	assert.Equal(t, uint8(0), got.Get(1, 3))
}

func TestTransforms_InvalidInput(t *testing.T) {
	g := mustParse(t, "111\n111\n111")

	_, err := Erode(nil, bitmap.Full())
	assert.ErrorIs(t, err, ErrNilGrid)

	_, err = Dilate(g, bitmap.Mask{})
	assert.ErrorIs(t, err, ErrNilMask)

	_, err = Operation(7).Apply(g, bitmap.Full())
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		in   string
		want Operation
	}{
		{"erode", Erosion},
		{"Erosion", Erosion},
		{" dilate ", Dilation},
		{"DILATION", Dilation},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOperation("open")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "erosion", Erosion.String())
	assert.Equal(t, "dilation", Dilation.String())
	assert.Equal(t, "Operation(9)", Operation(9).String())
	assert.False(t, Operation(9).Valid())
}
