package encoder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for formats with no registered encoder.
var ErrUnknownFormat = errors.New("unknown output format")

// Registry maps format names (and common aliases) to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// order is the listing order for Formats.
var order = []string{"png", "jpeg", "tiff", "bmp"}

var aliases = map[string]string{
	"jpg": "jpeg",
	"tif": "tiff",
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&TIFFEncoder{},
		&BMPEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns the encoder for format.
func (r *Registry) Get(format string) (Encoder, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if a, ok := aliases[f]; ok {
		f = a
	}
	enc, ok := r.encoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(r.Formats(), ", "))
	}
	return enc, nil
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	var result []string
	for _, f := range order {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of registered encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Formats(), ", "))
}
