package raster_test

import (
	"testing"

	"github.com/dargueta/hashpix/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate__Defaults(t *testing.T) {
	colors := raster.New[raster.Color](3, 2)
	assert.Equal(t, 3, colors.Width())
	assert.Equal(t, 2, colors.Height())
	assert.Equal(t, 6, colors.Count(raster.Background), "colors should default to background")

	mask := raster.New[bool](4, 4)
	assert.Equal(t, 16, mask.Count(false))

	offsets := raster.New[raster.Offset](2, 2)
	assert.Equal(t, 4, offsets.Count(raster.Offset{}))
}

func TestAllocate__Empty(t *testing.T) {
	img := raster.New[raster.Color](0, 0)
	assert.True(t, img.Empty())
	assert.Equal(t, 0, img.Len())
	img.Fill(raster.Color{R: 1})
}

func TestAllocate__ReplacesBuffer(t *testing.T) {
	img := raster.New[bool](2, 2)
	img.Set(1, 1, true)
	img.Allocate(5, 1)

	assert.Equal(t, 5, img.Width())
	assert.Equal(t, 1, img.Height())
	assert.Equal(t, 0, img.Count(true), "old contents survived reallocation")
}

func TestAllocate__InvalidDimensions(t *testing.T) {
	tests := []struct {
		Name          string
		Width, Height int
	}{
		{"zero width", 0, 3},
		{"zero height", 3, 0},
		{"negative", -1, -1},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Panics(t, func() { raster.New[bool](test.Width, test.Height) })
		})
	}
}

func TestGetSet__RowMajor(t *testing.T) {
	img := raster.New[raster.Color](3, 2)
	img.Set(2, 1, raster.Color{R: 10, G: 20, B: 30})

	assert.Equal(t, raster.Color{R: 10, G: 20, B: 30}, img.At(2, 1))
	assert.Equal(t, raster.Background, img.At(1, 0))

	var last raster.Color
	var lastX, lastY int
	img.Each(func(x, y int, value raster.Color) {
		lastX, lastY, last = x, y, value
	})
	assert.Equal(t, 2, lastX)
	assert.Equal(t, 1, lastY)
	assert.Equal(t, raster.Color{R: 10, G: 20, B: 30}, last)
}

func TestGetSet__OutOfBounds(t *testing.T) {
	img := raster.New[raster.Offset](2, 3)
	points := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}}
	for _, p := range points {
		assert.Panicsf(t, func() { img.At(p[0], p[1]) }, "At(%d, %d)", p[0], p[1])
		assert.Panicsf(t, func() { img.Set(p[0], p[1], raster.Offset{}) }, "Set(%d, %d)", p[0], p[1])
	}
}

func TestClone__DoesNotAlias(t *testing.T) {
	original := raster.New[raster.Offset](2, 2)
	original.Set(0, 0, raster.Offset{DX: 3, DY: 4})

	dup := original.Clone()
	require.True(t, dup.Equal(original))

	dup.Set(0, 0, raster.Offset{DX: 9, DY: 9})
	assert.Equal(t, raster.Offset{DX: 3, DY: 4}, original.At(0, 0))
	assert.False(t, dup.Equal(original))
}

func TestSameSize(t *testing.T) {
	assert.True(t, raster.SameSize(raster.New[bool](3, 4), raster.New[raster.Color](3, 4)))
	assert.False(t, raster.SameSize(raster.New[bool](3, 4), raster.New[raster.Color](4, 3)))
}

func TestOffsetPacking(t *testing.T) {
	for dx := uint8(0); dx <= raster.MaxOffset; dx++ {
		for dy := uint8(0); dy <= raster.MaxOffset; dy++ {
			o := raster.Offset{DX: dx, DY: dy}
			require.True(t, o.Valid())
			assert.Equal(t, o, raster.UnpackOffset(o.Pack()))
		}
	}

	assert.Equal(t, byte(0xa3), raster.Offset{DX: 10, DY: 3}.Pack())
	assert.False(t, raster.Offset{DX: 16}.Valid())
	assert.Panics(t, func() { raster.Offset{DY: 200}.Pack() })
}
