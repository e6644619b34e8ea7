/*
Package format describes the pixel formats understood by tips.

Each format is a combination of a channel layout (luminance, luminance with
alpha, RGB or RGBA) and a per-channel representation (8-bit unsigned,
16-bit unsigned or 32-bit float). Nothing is stored per format; the channel
count and byte footprint are derived by lookup.
*/
package format

import (
	"errors"
	"strings"
)

// Format identifies a pixel's channel layout and sample representation.
type Format int8

// Concrete formats, in table order.
const (
	Mono8   Format = iota // uint8 luminance
	Mono16                // uint16 luminance
	Mono32                // float32 luminance
	MonoA8                // uint8 luminance with alpha
	MonoA16               // uint16 luminance with alpha
	MonoA32               // float32 luminance with alpha
	RGB8                  // uint8 RGB
	RGB16                 // uint16 RGB
	RGB32                 // float32 RGB
	RGBA8                 // uint8 RGBA
	RGBA16                // uint16 RGBA
	RGBA32                // float32 RGBA

	numFormats

	// Undefined is the explicit "no format" tag.
	Undefined Format = -1
)

// ErrUnknownFormat is returned by Parse for names that match no format.
var ErrUnknownFormat = errors.New("format: unknown format")

var names = [numFormats]string{
	"Mono8", "Mono16", "Mono32",
	"MonoA8", "MonoA16", "MonoA32",
	"RGB8", "RGB16", "RGB32",
	"RGBA8", "RGBA16", "RGBA32",
}

// Formats returns every concrete format in table order.
func Formats() []Format {
	f := make([]Format, numFormats)
	for i := range f {
		f[i] = Format(i)
	}
	return f
}

// Channels returns the number of channels per pixel for f: 1 for
// luminance, 2 for luminance with alpha, 3 for RGB and 4 for RGBA. It
// returns 0 for Undefined or any unrecognised value.
func Channels(f Format) int {
	switch f {
	case Mono8, Mono16, Mono32:
		return 1
	case MonoA8, MonoA16, MonoA32:
		return 2
	case RGB8, RGB16, RGB32:
		return 3
	case RGBA8, RGBA16, RGBA32:
		return 4
	default:
		return 0
	}
}

// BytesPerChannel returns the size in bytes of a single sample of f, or 0
// for Undefined or any unrecognised value.
func BytesPerChannel(f Format) int {
	if !f.IsValid() {
		return 0
	}
	switch f % 3 {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return 4
	}
}

// BytesPerPixel returns the size in bytes of one pixel of f, so RGBA32 is
// 16 and Mono8 is 1. It returns 0 for Undefined or any unrecognised value.
func BytesPerPixel(f Format) int {
	return Channels(f) * BytesPerChannel(f)
}

// IsValid reports whether f is one of the concrete formats.
func (f Format) IsValid() bool {
	return f >= 0 && f < numFormats
}

// Channels is shorthand for Channels(f).
func (f Format) Channels() int {
	return Channels(f)
}

// BytesPerPixel is shorthand for BytesPerPixel(f).
func (f Format) BytesPerPixel() int {
	return BytesPerPixel(f)
}

// BytesPerChannel is shorthand for BytesPerChannel(f).
func (f Format) BytesPerChannel() int {
	return BytesPerChannel(f)
}

// BitsPerChannel returns 8, 16 or 32, or 0 for an invalid format.
func (f Format) BitsPerChannel() int {
	return BytesPerChannel(f) << 3
}

// IsFloat reports whether samples of f are 32-bit floats.
func (f Format) IsFloat() bool {
	return BytesPerChannel(f) == 4
}

// HasAlpha reports whether the last channel of f is alpha.
func (f Format) HasAlpha() bool {
	c := Channels(f)
	return c == 2 || c == 4
}

// RowBytes returns the number of bytes in a row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * BytesPerPixel(f)
}

// ImageBytes returns the number of bytes needed for a width by height
// image, which is what a decoder should allocate before filling a buffer.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

func (f Format) String() string {
	if !f.IsValid() {
		return "Undefined"
	}
	return names[f]
}

// Parse returns the format with the given name, compared case-insensitively.
func Parse(s string) (Format, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return Format(i), nil
		}
	}
	if strings.EqualFold(s, "Undefined") {
		return Undefined, nil
	}
	return Undefined, ErrUnknownFormat
}
