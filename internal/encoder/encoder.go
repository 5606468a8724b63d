// Package encoder writes processed frames in a selectable image format.
package encoder

import (
	"image"
)

// Encoder encodes a frame to a specific format.
type Encoder interface {
	// Format returns the format name (e.g. "png", "jpeg", "tiff", "bmp").
	Format() string

	// Encode converts the frame to bytes. quality is only honoured by
	// lossy formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
