package rle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxRun is the longest run a single three-byte group can encode.
const maxRun = 257

// Encode reads input until EOF and writes its RLE8 encoding to output. It
// returns the number of bytes written.
func Encode(output io.Writer, input io.Reader) (int64, error) {
	grouper := NewGrouper(input)

	written := int64(0)
	for {
		run, err := grouper.Next()
		if errors.Is(err, io.EOF) {
			return written, nil
		} else if err != nil {
			return written, fmt.Errorf("error reading input: %w", err)
		}

		for run.Length >= 2 {
			chunk := min(run.Length, maxRun)
			n, err := output.Write([]byte{run.Value, run.Value, byte(chunk - 2)})
			written += int64(n)
			if err != nil {
				return written, fmt.Errorf("failed to write to output: %w", err)
			}
			run.Length -= chunk
		}

		if run.Length == 1 {
			n, err := output.Write([]byte{run.Value})
			written += int64(n)
			if err != nil {
				return written, fmt.Errorf("failed to write to output: %w", err)
			}
		}
	}
}

// EncodeBytes is Encode for data already in memory.
func EncodeBytes(data []byte) []byte {
	var out bytes.Buffer
	// Writes to a bytes.Buffer can't fail.
	Encode(&out, bytes.NewReader(data))
	return append([]byte{}, out.Bytes()...)
}

// Decode reads RLE8 data from input until EOF and writes the expanded bytes to
// output. It returns the number of bytes written. A pair of equal bytes at the
// very end of the input, missing its repeat count, is reported as
// io.ErrUnexpectedEOF.
func Decode(output io.Writer, input io.Reader) (int64, error) {
	source := bufio.NewReader(input)
	previous := -1
	written := int64(0)

	for {
		current, err := source.ReadByte()
		if errors.Is(err, io.EOF) {
			return written, nil
		} else if err != nil {
			return written, fmt.Errorf("error reading input: %w", err)
		}

		var expanded []byte
		if int(current) == previous {
			count, err := source.ReadByte()
			if errors.Is(err, io.EOF) {
				return written, fmt.Errorf(
					"%w: missing repeat count after two %02x bytes",
					io.ErrUnexpectedEOF,
					current)
			} else if err != nil {
				return written, fmt.Errorf("error reading input: %w", err)
			}

			// The first byte of the pair was already written on the previous
			// iteration, so this is count + 1 rather than count + 2.
			expanded = bytes.Repeat([]byte{current}, int(count)+1)

			// A third equal byte starts a new pair, not another repeat count.
			previous = -1
		} else {
			previous = int(current)
			expanded = []byte{current}
		}

		n, err := output.Write(expanded)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write to output: %w", err)
		}
	}
}
