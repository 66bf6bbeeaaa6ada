package storage

import (
	"bufio"
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
)

// PBM is the portable bitmap format. A set bit (black) is an occupied pixel.
type PBM struct{}

var _ hashpix.RasterCodec[bool] = PBM{}

// bitIndex maps column x to its bit in a packed PBM row. PBM rows are most
// significant bit first, and the bitmap package counts from the least
// significant bit, so the position is mirrored within each byte.
func bitIndex(x int) int {
	return x&^7 | (7 - x&7)
}

func (PBM) Decode(r io.Reader) (*raster.Raster[bool], error) {
	rd := newNetpbmReader(r)

	magic, err := rd.magic()
	if err != nil {
		return nil, err
	}
	if magic != "P4" && magic != "P1" {
		return nil, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("not a PBM file (magic %q)", magic))
	}

	width, height, err := rd.dimensions()
	if err != nil {
		return nil, err
	}

	img := raster.New[bool](width, height)
	if magic == "P1" {
		return img, decodePlainPBM(rd, img)
	}

	row := bitmap.New((width + 7) / 8 * 8)
	for y := range height {
		if _, err := io.ReadFull(rd.rd, row); err != nil {
			return nil, readFailure(err, fmt.Sprintf("bits of row %d", y))
		}
		for x := range width {
			img.Set(x, y, row.Get(bitIndex(x)))
		}
	}
	return img, nil
}

// decodePlainPBM reads P1 data. Bits may or may not be separated by
// whitespace.
func decodePlainPBM(rd *netpbmReader, img *raster.Raster[bool]) error {
	for y := range img.Height() {
		for x := range img.Width() {
			what := fmt.Sprintf("bit of pixel (%d, %d)", x, y)
			if _, err := rd.skip(what); err != nil {
				return err
			}
			b, err := rd.rd.ReadByte()
			if err != nil {
				return readFailure(err, what)
			}
			if b != '0' && b != '1' {
				return hashpix.ErrInvalidFormat.WithMessage(
					fmt.Sprintf("unexpected byte %q in %s", b, what))
			}
			img.Set(x, y, b == '1')
		}
	}
	return nil
}

// Encode writes img as a binary (P4) PBM file.
func (PBM) Encode(w io.Writer, img *raster.Raster[bool]) error {
	out := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(out, "P4\n%d %d\n", img.Width(), img.Height()); err != nil {
		return writeFailure(err, "PBM header")
	}

	row := bitmap.New((img.Width() + 7) / 8 * 8)
	for y := range img.Height() {
		clear(row)
		for x := range img.Width() {
			row.Set(bitIndex(x), img.At(x, y))
		}
		if _, err := out.Write(row); err != nil {
			return writeFailure(err, fmt.Sprintf("row %d", y))
		}
	}

	if err := out.Flush(); err != nil {
		return writeFailure(err, "PBM data")
	}
	return nil
}
