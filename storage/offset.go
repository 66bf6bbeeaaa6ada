package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dargueta/hashpix"
	"github.com/dargueta/hashpix/raster"
	"github.com/dargueta/hashpix/utilities/rle"
)

const offsetFileVersion = 1

var offsetFileMagic = [4]byte{'H', 'P', 'O', 'F'}

// offsetFileHeader is the fixed-size header at the start of an offset file.
type offsetFileHeader struct {
	Magic   [4]byte
	Version uint8
	Width   uint32
	Height  uint32
}

// OffsetFile is the on-disk format for offset tables.
type OffsetFile struct{}

var _ hashpix.RasterCodec[raster.Offset] = OffsetFile{}

func (OffsetFile) Decode(r io.Reader) (*raster.Raster[raster.Offset], error) {
	var header offsetFileHeader
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, readFailure(err, "offset file header")
	}
	if header.Magic != offsetFileMagic {
		return nil, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("not an offset file (magic %q)", header.Magic[:]))
	}
	if header.Version != offsetFileVersion {
		return nil, hashpix.ErrNotSupported.WithMessage(
			fmt.Sprintf("offset file version %d", header.Version))
	}
	if header.Width > maxPixels || header.Height > maxPixels {
		return nil, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("%dx%d offset table is too large", header.Width, header.Height))
	}

	width, height := int(header.Width), int(header.Height)
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	var payload bytes.Buffer
	if _, err := rle.Decode(&payload, r); err != nil {
		return nil, hashpix.ErrInvalidFormat.WithMessage("offset payload").Wrap(err)
	}
	if payload.Len() != width*height {
		return nil, hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf(
				"offset payload has %d entries, expected %d for %dx%d",
				payload.Len(), width*height, width, height))
	}

	img := raster.New[raster.Offset](width, height)
	packed := payload.Bytes()
	for i, b := range packed {
		img.Set(i%width, i/width, raster.UnpackOffset(b))
	}
	return img, nil
}

// Encode writes img as an offset file. It returns an error wrapping
// hashpix.ErrOffsetOutOfRange if any component doesn't fit in four bits.
func (OffsetFile) Encode(w io.Writer, img *raster.Raster[raster.Offset]) error {
	packed := make([]byte, 0, img.Len())
	var invalid error
	img.Each(func(x, y int, o raster.Offset) {
		if !o.Valid() {
			if invalid == nil {
				invalid = hashpix.ErrOffsetOutOfRange.WithMessage(
					fmt.Sprintf("offset %v at (%d, %d)", o, x, y))
			}
			return
		}
		packed = append(packed, o.Pack())
	})
	if invalid != nil {
		return invalid
	}

	header := offsetFileHeader{
		Magic:   offsetFileMagic,
		Version: offsetFileVersion,
		Width:   uint32(img.Width()),
		Height:  uint32(img.Height()),
	}
	if err := binary.Write(w, binary.BigEndian, &header); err != nil {
		return writeFailure(err, "offset file header")
	}
	if _, err := rle.Encode(w, bytes.NewReader(packed)); err != nil {
		return writeFailure(err, "offset payload")
	}
	return nil
}
