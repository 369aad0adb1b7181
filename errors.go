package spritepack

import (
	"fmt"
)

// NotFoundError is returned when a source directory does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no such directory", e.Path)
}

// EmptyInputError is returned when a directory holds no usable images.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no images found", e.Path)
}

// DecodeError carries the path of an image that could not be decoded, or
// whose dimensions could not be determined.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Cause makes DecodeError play along with errors.Cause from github.com/pkg/errors.
func (e *DecodeError) Cause() error { return e.Err }

// InvalidDimensionsError is returned for a sprite or first animation frame
// with a zero width or height.
type InvalidDimensionsError struct {
	Path          string
	Width, Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("%s: invalid image dimensions %dx%d", e.Path, e.Width, e.Height)
}
