package rle

import (
	"bufio"
	"io"
)

// Run is a single run of a byte value.
type Run struct {
	Value byte
	// Length is the number of times Value occurs in the run. It's 0 only for
	// EndOfInput.
	Length int
}

// EndOfInput is returned by Grouper.Next along with an error once the input is
// exhausted or fails.
var EndOfInput = Run{}

// Grouper splits a byte stream into runs.
type Grouper struct {
	rd *bufio.Reader
}

func NewGrouper(rd io.Reader) Grouper {
	return Grouper{rd: bufio.NewReader(rd)}
}

// Next returns the next run in the stream. At the end of the stream it returns
// EndOfInput and io.EOF.
func (g Grouper) Next() (Run, error) {
	first, err := g.rd.ReadByte()
	if err != nil {
		return EndOfInput, err
	}

	length := 1
	for {
		current, err := g.rd.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return EndOfInput, err
		}
		if current != first {
			g.rd.UnreadByte()
			break
		}
		length++
	}
	return Run{Value: first, Length: length}, nil
}
