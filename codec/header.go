package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bodgit/tips/format"
)

// Header describes a TIPS file. It implements the encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler interfaces.
type Header struct {
	Format format.Format
	Width  int
	Height int
}

// Size returns the number of bytes of pixel data following the header.
func (h Header) Size() int {
	return h.Format.ImageBytes(h.Width, h.Height)
}

func (h Header) validate() error {
	if !h.Format.IsValid() {
		return fmt.Errorf("%w: %d", ErrFormat, h.Format)
	}
	if h.Width < 0 || h.Height < 0 || uint64(h.Width) > math.MaxUint32 || uint64(h.Height) > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, h.Width, h.Height)
	}
	if uint64(h.Width)*uint64(h.Height) > maxPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDimensions, h.Width, h.Height, maxPixels)
	}
	return nil
}

// MarshalBinary encodes the header into its 16 byte form.
func (h Header) MarshalBinary() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	b.Grow(HeaderSize)

	b.WriteString(magic)
	b.Write([]byte{version, byte(h.Format), 0, 0})

	dims := [2]uint32{uint32(h.Width), uint32(h.Height)}
	if err := binary.Write(b, binary.LittleEndian, &dims); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from the first 16 bytes of b.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return ErrNotEnough
	}
	if string(b[:len(magic)]) != magic {
		return ErrBadMagic
	}
	if b[4] != version {
		return fmt.Errorf("%w: %d", ErrVersion, b[4])
	}

	tmp := Header{
		Format: format.Format(int8(b[5])),
		Width:  int(binary.LittleEndian.Uint32(b[8:])),
		Height: int(binary.LittleEndian.Uint32(b[12:])),
	}
	if err := tmp.validate(); err != nil {
		return err
	}
	*h = tmp

	return nil
}
