package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	m := Full()
	row, col := m.Center()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
	assert.Len(t, m.Offsets(), 8)
	assert.True(t, m.Symmetric())
}

func TestPlus(t *testing.T) {
	m := Plus()
	assert.Equal(t, []Offset{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}, m.Offsets())
	assert.Equal(t, "010\n111\n010", m.String())
	assert.True(t, m.Symmetric())
}

func TestNewMask_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]uint8
		want error
	}{
		{"empty", nil, ErrEmptyMask},
		{"even width", [][]uint8{{1, 1}}, ErrEvenMask},
		{"even height", [][]uint8{{1}, {1}}, ErrEvenMask},
		{"ragged", [][]uint8{{1, 1, 1}, {1}, {1, 1, 1}}, ErrNonRectangular},
		{"no active cell", [][]uint8{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, ErrEmptyMask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMask(tt.rows)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewMask_CenterUsesFloorDivision(t *testing.T) {
	m, err := NewMask([][]uint8{
		{1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
	})
	require.NoError(t, err)
	row, col := m.Center()
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)
	assert.Equal(t, []Offset{{-2, -1}, {0, 1}}, m.Offsets())
	assert.False(t, m.Symmetric())
}

func TestMask_CenterOnlyHasNoOffsets(t *testing.T) {
	m, err := NewMask([][]uint8{{1}})
	require.NoError(t, err)
	assert.Empty(t, m.Offsets())
}

func TestConnectivity(t *testing.T) {
	m8, err := Connectivity(8)
	require.NoError(t, err)
	assert.Len(t, m8.Offsets(), 8)

	m4, err := Connectivity(4)
	require.NoError(t, err)
	assert.Len(t, m4.Offsets(), 4)

	_, err = Connectivity(6)
	assert.Error(t, err)
}

func TestMask_IsZero(t *testing.T) {
	var m Mask
	assert.True(t, m.IsZero())
	assert.False(t, Plus().IsZero())
	assert.Equal(t, uint8(0), m.At(0, 0))
}
