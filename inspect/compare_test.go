package inspect_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/inspect"
	"github.com/dargueta/hashpix/raster"
	htest "github.com/dargueta/hashpix/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare__Identical(t *testing.T) {
	img := htest.SparseImage(3, 9, 5, 2)

	result, err := inspect.Compare(img, img.Clone())
	require.NoError(t, err)
	assert.True(t, result.Identical())
	assert.Zero(t, result.Mismatched)
	assert.Equal(t, img.Len(), result.Matches.Count(true))
	assert.Empty(t, result.Mismatches())
	assert.Equal(t, "9x5 images are identical", result.String())
}

func TestCompare__Symmetric(t *testing.T) {
	a := htest.ParseColors(t, "r.g", "..b")
	b := htest.ParseColors(t, "r.x", "k.b")

	ab, err := inspect.Compare(a, b)
	require.NoError(t, err)
	ba, err := inspect.Compare(b, a)
	require.NoError(t, err)

	assert.True(t, ab.Matches.Equal(ba.Matches))
	assert.Equal(t, 2, ab.Mismatched)
	assert.Equal(t, ab.Mismatched, ba.Mismatched)
	assert.Equal(t, htest.ParseMask(t, "##.", ".##"), ab.Matches)
	assert.Equal(t, "2 of 6 pixels differ", ab.String())
}

func TestCompare__DimensionMismatch(t *testing.T) {
	result, err := inspect.Compare(
		raster.New[raster.Color](3, 2), raster.New[raster.Color](2, 3))
	assert.ErrorIs(t, err, hashpix.ErrDimensionMismatch)
	assert.Nil(t, result)
}

func TestCompare__Mismatches(t *testing.T) {
	a := htest.ParseColors(t, "r.g", "..b")
	b := htest.ParseColors(t, "r.x", "k.b")

	result, err := inspect.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]inspect.Mismatch{
			{X: 2, Y: 0, LeftR: 0, LeftG: 255, LeftB: 0, RightR: 10, RightG: 20, RightB: 30},
			{X: 0, Y: 1, LeftR: 255, LeftG: 255, LeftB: 255, RightR: 0, RightG: 0, RightB: 0},
		},
		result.Mismatches())
}

func TestWriteReport(t *testing.T) {
	a := htest.ParseColors(t, "r.g", "..b")
	b := htest.ParseColors(t, "r.x", "k.b")

	result, err := inspect.Compare(a, b)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, inspect.WriteReport(&out, result))
	assert.Equal(
		t,
		"x,y,left_r,left_g,left_b,right_r,right_g,right_b\n"+
			"2,0,0,255,0,10,20,30\n"+
			"0,1,255,255,255,0,0,0\n",
		out.String())
}
