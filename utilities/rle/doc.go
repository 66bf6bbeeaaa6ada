// Package rle implements the RLE8 run-length encoding used for the payload of
// offset table files.
//
// An offset table is usually one value repeated across the whole table with a
// single cell that differs, so runs are long and the encoding is small.
//
// If a byte B occurs N times where N >= 2, B is written twice, followed by a
// third (unsigned) byte indicating how many additional times B occurred:
//
//	WXXXXXXXXXXXXXXXYZZ
//	W XX 13 Y ZZ 0
//
// Runs longer than 257 bytes are split, so a run of 300 "X" is `XX 255 XX 41`.
// A byte occurring exactly twice costs three bytes.
package rle
