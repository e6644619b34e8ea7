/*
Package codec implements the TIPS raw image decoder and encoder.

A TIPS file is a 16 byte header followed by the uncompressed pixel data:

	offset  size  field
	0       4     magic "TIPS"
	4       1     version, currently 1
	5       1     pixel format, see package format
	6       2     reserved, zero
	8       4     width, little endian
	12      4     height, little endian

The pixel data is width*height*format.BytesPerPixel bytes of interleaved
channel samples. Rows are stored in the same order as an image.Image from
this module, so the first row in the file is the bottom row of the
picture. 16-bit samples are little endian unsigned integers and 32-bit
samples are little endian IEEE 754 floats nominally in [0, 1]. Alpha is
straight, not premultiplied.

Importing this package registers the format with the standard library's
image.Decode.
*/
package codec

import "errors"

const (
	magic      = "TIPS"
	version    = 1
	// HeaderSize is the size in bytes of an encoded Header.
	HeaderSize = 16

	// Guard against absurd headers before allocating.
	maxPixels = 1 << 28
)

var (
	// ErrBadMagic is returned when the input is not a TIPS file.
	ErrBadMagic = errors.New("codec: bad magic")
	// ErrVersion is returned for an unsupported format version.
	ErrVersion = errors.New("codec: unsupported version")
	// ErrFormat is returned for an undefined or unknown pixel format.
	ErrFormat = errors.New("codec: invalid pixel format")
	// ErrDimensions is returned for unusable image dimensions.
	ErrDimensions = errors.New("codec: invalid dimensions")
	// ErrNotEnough is returned when the pixel data is truncated.
	ErrNotEnough = errors.New("codec: not enough image data")
	// ErrTooMuch is returned when there is data past the end of the image.
	ErrTooMuch = errors.New("codec: too much image data")
	// ErrChannels is returned when the number of planes does not match the
	// channels of the pixel format.
	ErrChannels = errors.New("codec: wrong number of channels")
	// ErrSampleType is returned when the plane element type does not match
	// the sample size of the pixel format.
	ErrSampleType = errors.New("codec: sample type does not match format")
	// ErrColors is returned when asking for an unusable palette size.
	ErrColors = errors.New("codec: palette size must be between 2 and 256")
)
