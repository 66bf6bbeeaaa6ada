package hashpix

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error is the error type returned by the storage layer and the comparison
// tools. Every Error descends from one of the sentinel values below, so callers
// can test for a category with errors.Is no matter how many messages were
// layered on top.
type Error interface {
	error
	WithMessage(message string) Error
	Wrap(err error) Error
}

type baseError string

const rootError = baseError("")

var ErrChecksumMismatch = rootError.WithMessage("Artifact digest mismatch")
var ErrDimensionMismatch = rootError.WithMessage("Raster dimensions differ")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrInvalidFormat = rootError.WithMessage("Malformed raster file")
var ErrIOFailed = rootError.WithMessage("Input/output error")
var ErrNotSupported = rootError.WithMessage("Operation not supported")
var ErrOffsetOutOfRange = rootError.WithMessage("Offset component out of range")

func (e baseError) Error() string {
	return string(e)
}

func (e baseError) WithMessage(message string) Error {
	return customError{
		message:       message,
		originalError: e,
	}
}

func (e baseError) Wrap(err error) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customError) Error() string {
	return e.message
}

func (e customError) WithMessage(message string) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customError) Wrap(err error) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customError) Unwrap() error {
	return e.originalError
}
