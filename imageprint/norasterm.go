//go:build !go1.13 || windows
// +build !go1.13 windows

package imageprint

import (
	"image"
	"io"
)

// printRasTerm never finds a graphics protocol on this platform.
func printRasTerm(w io.Writer, i image.Image) (bool, error) {
	return false, nil
}
