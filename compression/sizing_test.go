package compression_test

import (
	"fmt"
	"testing"

	c "github.com/dargueta/hashpix/compression"
	"github.com/stretchr/testify/assert"
)

func TestHashTableSize(t *testing.T) {
	tests := map[int]int{
		0:     0,
		1:     1,
		2:     2,
		4:     2, // perfect squares below 10000 get no slack
		5:     3,
		9:     3,
		99:    10,
		100:   11,
		10000: 101,
	}
	for occupied, expected := range tests {
		t.Run(fmt.Sprint(occupied), func(t *testing.T) {
			assert.Equal(t, expected, c.HashTableSize(occupied))
		})
	}
}

func TestOffsetTableSize(t *testing.T) {
	tests := map[int]int{
		0:   0,
		1:   1,
		4:   1,
		5:   2,
		16:  2,
		17:  3,
		100: 5,
		101: 6,
	}
	for occupied, expected := range tests {
		t.Run(fmt.Sprint(occupied), func(t *testing.T) {
			assert.Equal(t, expected, c.OffsetTableSize(occupied))
		})
	}
}

func TestFeasible(t *testing.T) {
	tests := []struct {
		Name                            string
		ImageSize, HashSize, OffsetSize int
		Expected                        bool
	}{
		{"empty", 16, 0, 0, true},
		{"typical", 36, 3, 2, true},
		{"offset equals hash", 16, 2, 2, true},
		{"offset larger than hash", 16, 2, 3, false},
		{"hash table larger than image", 100, 11, 5, false},
		{"exactly image size", 9, 3, 1, true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(
				t, test.Expected, c.Feasible(test.ImageSize, test.HashSize, test.OffsetSize))
		})
	}
}
