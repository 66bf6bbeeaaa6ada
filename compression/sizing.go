package compression

import "math"

// HashTableSize returns the side length of the color table for a given number
// of foreground pixels: the smallest square holding p cells plus 1% slack,
// rounded down to whole cells.
func HashTableSize(occupied int) int {
	return ceilSqrt(occupied + occupied/100)
}

// OffsetTableSize returns the side length of the first offset table tried for
// a given number of foreground pixels, ceil(sqrt(p) / 2).
func OffsetTableSize(occupied int) int {
	// 2k >= sqrt(p) <=> k*k >= p/4, and k*k is an integer.
	return ceilSqrt((occupied + 3) / 4)
}

// Feasible returns false if tables of the given sizes wouldn't be any smaller
// than an image of imageSize pixels, or the offset table would be larger than
// the color table.
func Feasible(imageSize, hashSize, offsetSize int) bool {
	switch {
	case hashSize < offsetSize:
		return false
	case imageSize < hashSize*hashSize:
		return false
	case imageSize < offsetSize*offsetSize:
		return false
	}
	return true
}

// ceilSqrt returns the smallest k >= 0 such that k*k >= n.
func ceilSqrt(n int) int {
	if n <= 0 {
		return 0
	}
	k := int(math.Sqrt(float64(n)))
	for k*k < n {
		k++
	}
	for k > 0 && (k-1)*(k-1) >= n {
		k--
	}
	return k
}
