package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dargueta/hashpix"
)

// maxPixels bounds the size of rasters we're willing to allocate from a file
// header.
const maxPixels = 1 << 28

// netpbmReader tokenizes the ASCII parts of PBM and PPM files.
type netpbmReader struct {
	rd *bufio.Reader
}

func newNetpbmReader(r io.Reader) *netpbmReader {
	return &netpbmReader{rd: bufio.NewReader(r)}
}

// readFailure converts an error from the underlying reader into a storage
// error. Running out of data is a format problem, anything else is I/O.
func readFailure(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("file ends in the middle of the %s", what)).Wrap(io.ErrUnexpectedEOF)
	}
	return hashpix.ErrIOFailed.WithMessage("reading " + what).Wrap(err)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// magic reads the two-byte magic number, e.g. "P6".
func (r *netpbmReader) magic() (string, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r.rd, buf[:]); err != nil {
		return "", readFailure(err, "magic number")
	}
	return string(buf[:]), nil
}

// skip advances past whitespace and comments and returns the next byte without
// consuming it.
func (r *netpbmReader) skip(what string) (byte, error) {
	for {
		b, err := r.rd.ReadByte()
		if err != nil {
			return 0, readFailure(err, what)
		}
		if b == '#' {
			if _, err := r.rd.ReadString('\n'); err != nil {
				return 0, readFailure(err, what)
			}
			continue
		}
		if !isSpace(b) {
			r.rd.UnreadByte()
			return b, nil
		}
	}
}

// integer reads a decimal number and consumes the single whitespace byte that
// terminates it.
func (r *netpbmReader) integer(what string) (int, error) {
	if _, err := r.skip(what); err != nil {
		return 0, err
	}

	value, digits := 0, 0
	for {
		b, err := r.rd.ReadByte()
		if err == io.EOF && digits > 0 {
			return value, nil
		} else if err != nil {
			return 0, readFailure(err, what)
		}

		if b >= '0' && b <= '9' {
			value = value*10 + int(b-'0')
			digits++
			if value > maxPixels {
				return 0, hashpix.ErrInvalidFormat.WithMessage(what + " is too large")
			}
			continue
		}
		if digits == 0 || !isSpace(b) {
			return 0, hashpix.ErrInvalidFormat.WithMessage(
				fmt.Sprintf("unexpected byte %q in %s", b, what))
		}
		return value, nil
	}
}

// dimensions reads the width and height fields of the header.
func (r *netpbmReader) dimensions() (int, int, error) {
	width, err := r.integer("width")
	if err != nil {
		return 0, 0, err
	}
	height, err := r.integer("height")
	if err != nil {
		return 0, 0, err
	}
	if err := checkDimensions(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func checkDimensions(width, height int) error {
	if (width == 0) != (height == 0) {
		return hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("invalid dimensions %dx%d", width, height))
	}
	if width*height > maxPixels {
		return hashpix.ErrInvalidFormat.WithMessage(
			fmt.Sprintf("%dx%d raster is too large", width, height))
	}
	return nil
}

// writeFailure wraps an error from the destination writer.
func writeFailure(err error, what string) error {
	return hashpix.ErrIOFailed.WithMessage("writing " + what).Wrap(err)
}
