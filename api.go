package hashpix

import (
	"io"

	"github.com/dargueta/hashpix/raster"
)

// RasterDecoder is the interface for file formats that can be read into a
// raster of pixel kind P.
type RasterDecoder[P raster.Pixel] interface {
	// Decode reads one complete raster from the stream. Implementations must
	// return an error wrapping ErrInvalidFormat for malformed data and
	// ErrIOFailed when the underlying reader fails.
	Decode(r io.Reader) (*raster.Raster[P], error)
}

// RasterEncoder is the interface for file formats that can store a raster of
// pixel kind P.
type RasterEncoder[P raster.Pixel] interface {
	Encode(w io.Writer, img *raster.Raster[P]) error
}

// RasterCodec is a file format supporting both directions.
type RasterCodec[P raster.Pixel] interface {
	RasterDecoder[P]
	RasterEncoder[P]
}
