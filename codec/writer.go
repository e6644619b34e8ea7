package codec

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bodgit/tips/format"
	tipsimage "github.com/bodgit/tips/image"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(h Header, pix []byte) error {
	b, err := h.MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := e.w.Write(b); err != nil {
		return err
	}

	_, err = e.w.Write(pix)
	return err
}

// Write writes planes, one per channel of f, to w as a TIPS file.
func Write[T Sample](w io.Writer, f format.Format, planes []*tipsimage.Image[T]) error {
	pix, err := Pack(f, planes)
	if err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(Header{Format: f, Width: planes[0].Width(), Height: planes[0].Height()}, pix)
}

// Encode writes the Image m to w as a TIPS file in format f.
func Encode(w io.Writer, m image.Image, f format.Format) error {
	pix, err := FromImage(m, f)
	if err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(Header{Format: f, Width: m.Bounds().Dx(), Height: m.Bounds().Dy()}, pix)
}

// Quantize reduces m to a paletted image of at most colors colors using a
// median cut. An image that is already paletted with few enough colors is
// returned as is.
func Quantize(m image.Image, colors int) (*image.Paletted, error) {
	if colors < 2 || colors > 256 {
		return nil, fmt.Errorf("%w: %d", ErrColors, colors)
	}

	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= colors {
		return pm, nil
	}

	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}

	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm, nil
}
