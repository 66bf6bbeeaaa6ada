package rle_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/hashpix/utilities/rle"
	"github.com/stretchr/testify/assert"
)

func TestGrouper__First(t *testing.T) {
	tests := []struct {
		Data     []byte
		Expected rle.Run
		Name     string
	}{
		{[]byte{}, rle.EndOfInput, "empty"},
		{[]byte{0, 0, 1, 0, 0, 0, 0}, rle.Run{Value: 0, Length: 2}, "two initial"},
		{[]byte{6, 1, 5, 20, 31}, rle.Run{Value: 6, Length: 1}, "one byte"},
		{[]byte{9, 9, 9, 9, 9, 9}, rle.Run{Value: 9, Length: 6}, "entire run"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			result, _ := rle.NewGrouper(bytes.NewReader(test.Data)).Next()
			assert.Equal(t, test.Expected, result)
		})
	}
}

func TestGrouper__Sequence(t *testing.T) {
	data := []byte{1, 9, 4, 4, 4, 4, 4, 6, 6, 0, 1, 0, 0, 0}
	expected := []rle.Run{
		{1, 1}, {9, 1}, {4, 5}, {6, 2}, {0, 1}, {1, 1}, {0, 3},
	}

	grouper := rle.NewGrouper(bytes.NewReader(data))
	for i, expectedRun := range expected {
		result, err := grouper.Next()
		assert.NoErrorf(t, err, "run %d", i)
		assert.Equalf(t, expectedRun, result, "run %d is wrong", i)
	}

	result, err := grouper.Next()
	assert.Equal(t, rle.EndOfInput, result)
	assert.ErrorIs(t, err, io.EOF)
}
