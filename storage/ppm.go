package storage

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
)

// PPM is the portable pixmap format. Only a maximum sample value of 255 is
// supported.
type PPM struct{}

var _ hashpix.RasterCodec[raster.Color] = PPM{}

func (PPM) Decode(r io.Reader) (*raster.Raster[raster.Color], error) {
	rd := newNetpbmReader(r)

	magic, err := rd.magic()
	if err != nil {
		return nil, err
	}
	if magic != "P6" && magic != "P3" {
		return nil, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("not a PPM file (magic %q)", magic))
	}

	width, height, err := rd.dimensions()
	if err != nil {
		return nil, err
	}
	maxValue, err := rd.integer("maximum sample value")
	if err != nil {
		return nil, err
	}
	if maxValue != 255 {
		return nil, hashpix.ErrNotSupported.WithMessage(
			fmt.Sprintf("maximum sample value must be 255, got %d", maxValue))
	}

	img := raster.New[raster.Color](width, height)
	if magic == "P3" {
		return img, decodePlainPPM(rd, img)
	}

	row := make([]byte, width*3)
	for y := range height {
		if _, err := io.ReadFull(rd.rd, row); err != nil {
			return nil, readFailure(err, fmt.Sprintf("pixel data of row %d", y))
		}
		for x := range width {
			img.Set(x, y, raster.Color{R: row[x*3], G: row[x*3+1], B: row[x*3+2]})
		}
	}
	return img, nil
}

func decodePlainPPM(rd *netpbmReader, img *raster.Raster[raster.Color]) error {
	var samples [3]uint8
	for y := range img.Height() {
		for x := range img.Width() {
			for i := range samples {
				v, err := rd.integer(fmt.Sprintf("sample of pixel (%d, %d)", x, y))
				if err != nil {
					return err
				}
				if v > 255 {
					return hashpix.ErrInvalidFormat.WithMessage(
						fmt.Sprintf("sample %d of pixel (%d, %d) exceeds 255", v, x, y))
				}
				samples[i] = uint8(v)
			}
			img.Set(x, y, raster.Color{R: samples[0], G: samples[1], B: samples[2]})
		}
	}
	return nil
}

// Encode writes img as a binary (P6) PPM file.
func (PPM) Encode(w io.Writer, img *raster.Raster[raster.Color]) error {
	out := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(out, "P6\n%d %d\n255\n", img.Width(), img.Height()); err != nil {
		return writeFailure(err, "PPM header")
	}

	row := make([]byte, img.Width()*3)
	for y := range img.Height() {
		for x := range img.Width() {
			c := img.At(x, y)
			row[x*3], row[x*3+1], row[x*3+2] = c.R, c.G, c.B
		}
		if _, err := out.Write(row); err != nil {
			return writeFailure(err, fmt.Sprintf("row %d", y))
		}
	}

	if err := out.Flush(); err != nil {
		return writeFailure(err, "PPM data")
	}
	return nil
}
