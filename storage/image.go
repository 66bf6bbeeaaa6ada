package storage

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageFile bridges the formats understood by the image package. Any
// registered format can be decoded; Format selects the encoder and must be one
// of "png", "bmp", or "tiff".
//
// Transparency is dropped: fully transparent pixels become the background
// color and every other pixel keeps its (unpremultiplied) RGB value.
//
// These formats can't hold a 0x0 image, so an empty raster is written as a
// single background pixel. Decoding that gives a 1x1 background raster.
type ImageFile struct {
	Format string
}

var _ hashpix.RasterCodec[raster.Color] = ImageFile{}

func (f ImageFile) Decode(r io.Reader) (*raster.Raster[raster.Color], error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, hashpix.ErrInvalidFormat.WithMessage("decoding image").Wrap(err)
	}

	bounds := img.Bounds()
	if err := checkDimensions(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}
	if f.Format != "" && f.Format != format {
		return nil, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("expected a %s image, got %s", f.Format, format))
	}

	out := raster.New[raster.Color](bounds.Dx(), bounds.Dy())
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			out.Set(x, y, raster.Color{R: c.R, G: c.G, B: c.B})
		}
	}
	return out, nil
}

func (f ImageFile) Encode(w io.Writer, img *raster.Raster[raster.Color]) error {
	width, height := img.Width(), img.Height()
	if img.Empty() {
		width, height = 1, 1
	}

	dest := image.NewNRGBA(image.Rect(0, 0, width, height))
	if img.Empty() {
		bg := raster.Background
		dest.SetNRGBA(0, 0, color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	}
	img.Each(func(x, y int, c raster.Color) {
		dest.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	})

	var err error
	switch f.Format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(w, dest)
	case "bmp":
		err = bmp.Encode(w, dest)
	case "tiff":
		err = tiff.Encode(w, dest, &tiff.Options{Compression: tiff.Deflate})
	default:
		return hashpix.ErrNotSupported.WithMessage(
			fmt.Sprintf("can't encode images as %q", f.Format))
	}

	if err != nil {
		return writeFailure(err, f.Format+" image")
	}
	return nil
}
