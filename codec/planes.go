package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bodgit/tips/format"
	"github.com/bodgit/tips/image"
)

// Sample is a constraint for the element types a channel plane can hold.
// uint8 goes with the 8-bit formats, uint16 with the 16-bit formats and
// float32 with the 32-bit formats.
type Sample interface {
	uint8 | uint16 | float32
}

func sampleSize[T Sample]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	default:
		return 4
	}
}

func checkSample[T Sample](f format.Format) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %d", ErrFormat, f)
	}
	if sampleSize[T]() != f.BytesPerChannel() {
		var zero T
		return fmt.Errorf("%w: %T with %s", ErrSampleType, zero, f)
	}
	return nil
}

func putSample[T Sample](b []byte, v T) {
	switch v := any(v).(type) {
	case uint8:
		b[0] = v
	case uint16:
		binary.LittleEndian.PutUint16(b, v)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	}
}

func getSample[T Sample](b []byte) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = b[0]
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	return v
}

// Pack interleaves planes, one per channel of f, into pixel data laid out
// as described in the package documentation. Every plane must have the
// same dimensions.
func Pack[T Sample](f format.Format, planes []*image.Image[T]) ([]byte, error) {
	if err := checkSample[T](f); err != nil {
		return nil, err
	}

	ch := f.Channels()
	if len(planes) != ch {
		return nil, fmt.Errorf("%w: %d planes for %s", ErrChannels, len(planes), f)
	}
	for _, p := range planes {
		if p == nil {
			return nil, fmt.Errorf("%w: nil plane", ErrChannels)
		}
		if p.Width() != planes[0].Width() || p.Height() != planes[0].Height() {
			return nil, fmt.Errorf("%w: planes %s and %s differ", ErrDimensions, planes[0], p)
		}
	}

	size := sampleSize[T]()
	b := make([]byte, f.ImageBytes(planes[0].Width(), planes[0].Height()))
	for c, p := range planes {
		for i, v := range p.All() {
			putSample(b[(i*ch+c)*size:], v)
		}
	}

	return b, nil
}

// Unpack splits width by height pixel data of format f into one plane per
// channel.
func Unpack[T Sample](f format.Format, width, height int, b []byte) ([]*image.Image[T], error) {
	if err := checkSample[T](f); err != nil {
		return nil, err
	}

	if err := (Header{Format: f, Width: width, Height: height}).validate(); err != nil {
		return nil, err
	}

	switch n := f.ImageBytes(width, height); {
	case len(b) < n:
		return nil, ErrNotEnough
	case len(b) > n:
		return nil, ErrTooMuch
	}

	ch, size := f.Channels(), sampleSize[T]()
	planes := make([]*image.Image[T], ch)
	for c := range planes {
		p, err := image.New[T](width, height)
		if err != nil {
			return nil, err
		}
		pix := p.Data()
		for i := range pix {
			pix[i] = getSample[T](b[(i*ch+c)*size:])
		}
		planes[c] = p
	}

	return planes, nil
}
