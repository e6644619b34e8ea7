package codec

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/bodgit/tips/format"
	tipsimage "github.com/bodgit/tips/image"
)

func colorModel(f format.Format) color.Model {
	switch {
	case f.Channels() == 1 && f.BytesPerChannel() == 1:
		return color.GrayModel
	case f.Channels() == 1:
		return color.Gray16Model
	case f.BytesPerChannel() == 1:
		return color.NRGBAModel
	default:
		return color.NRGBA64Model
	}
}

// to16 scales a sample to 16 bits. Floats are clamped to [0, 1] and NaN
// becomes 0.
func to16[T Sample](v T) uint16 {
	switch v := any(v).(type) {
	case uint8:
		return uint16(v) * 0x101
	case uint16:
		return v
	case float32:
		switch {
		case math.IsNaN(float64(v)), v <= 0:
			return 0
		case v >= 1:
			return 0xffff
		}
		return uint16(v*0xffff + 0.5)
	}
	return 0
}

func from16[T Sample](v uint16) T {
	var s T
	switch p := any(&s).(type) {
	case *uint8:
		*p = uint8(v >> 8)
	case *uint16:
		*p = v
	case *float32:
		*p = float32(v) / 0xffff
	}
	return s
}

// Same weights as color.Gray16Model.
func luminance(r, g, b uint16) uint16 {
	return uint16((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16)
}

func nrgba64At(m image.Image, x, y int) color.NRGBA64 {
	switch m := m.(type) {
	case *image.NRGBA:
		c := m.NRGBAAt(x, y)
		return color.NRGBA64{
			uint16(c.R) * 0x101, uint16(c.G) * 0x101, uint16(c.B) * 0x101, uint16(c.A) * 0x101,
		}
	case *image.NRGBA64:
		return m.NRGBA64At(x, y)
	case *image.Gray:
		v := uint16(m.GrayAt(x, y).Y) * 0x101
		return color.NRGBA64{v, v, v, 0xffff}
	case *image.Gray16:
		v := m.Gray16At(x, y).Y
		return color.NRGBA64{v, v, v, 0xffff}
	default:
		return color.NRGBA64Model.Convert(m.At(x, y)).(color.NRGBA64)
	}
}

// ToPlanes splits m into one plane per channel of f. Row 0 of each plane is
// the bottom row of m. Color images are reduced to luminance for the single
// channel formats and alpha is dropped for formats without it.
func ToPlanes[T Sample](m image.Image, f format.Format) ([]*tipsimage.Image[T], error) {
	if err := checkSample[T](f); err != nil {
		return nil, err
	}

	r := m.Bounds()
	w, h := r.Dx(), r.Dy()
	if err := (Header{Format: f, Width: w, Height: h}).validate(); err != nil {
		return nil, err
	}

	ch := f.Channels()
	planes := make([]*tipsimage.Image[T], ch)
	for i := range planes {
		p, err := tipsimage.New[T](w, h)
		if err != nil {
			return nil, err
		}
		planes[i] = p
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := nrgba64At(m, r.Min.X+x, r.Min.Y+y)

			var v [4]uint16
			switch ch {
			case 1:
				v[0] = luminance(c.R, c.G, c.B)
			case 2:
				v[0], v[1] = luminance(c.R, c.G, c.B), c.A
			case 3:
				v[0], v[1], v[2] = c.R, c.G, c.B
			default:
				v = [4]uint16{c.R, c.G, c.B, c.A}
			}

			for i, p := range planes {
				if err := p.Set(x, h-1-y, from16[T](v[i])); err != nil {
					return nil, err
				}
			}
		}
	}

	return planes, nil
}

// FromPlanes joins planes, one per channel of f, into an image.Image. Row 0
// of each plane becomes the bottom row. Single channel formats become
// *image.Gray or *image.Gray16, other formats *image.NRGBA or
// *image.NRGBA64.
func FromPlanes[T Sample](f format.Format, planes []*tipsimage.Image[T]) (image.Image, error) {
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

	w, h := planes[0].Width(), planes[0].Height()
	rect := image.Rect(0, 0, w, h)

	pixel := func(x, y int) (color.NRGBA64, error) {
		var v [4]uint16
		for i, p := range planes {
			s, err := p.At(x, h-1-y)
			if err != nil {
				return color.NRGBA64{}, err
			}
			v[i] = to16(s)
		}

		switch ch {
		case 1:
			return color.NRGBA64{v[0], v[0], v[0], 0xffff}, nil
		case 2:
			return color.NRGBA64{v[0], v[0], v[0], v[1]}, nil
		case 3:
			return color.NRGBA64{v[0], v[1], v[2], 0xffff}, nil
		default:
			return color.NRGBA64{v[0], v[1], v[2], v[3]}, nil
		}
	}

	var set func(x, y int, c color.NRGBA64)
	var m image.Image

	switch bpc := f.BytesPerChannel(); {
	case ch == 1 && bpc == 1:
		g := image.NewGray(rect)
		set = func(x, y int, c color.NRGBA64) { g.SetGray(x, y, color.Gray{Y: uint8(c.R >> 8)}) }
		m = g
	case ch == 1:
		g := image.NewGray16(rect)
		set = func(x, y int, c color.NRGBA64) { g.SetGray16(x, y, color.Gray16{Y: c.R}) }
		m = g
	case bpc == 1:
		n := image.NewNRGBA(rect)
		set = func(x, y int, c color.NRGBA64) {
			n.SetNRGBA(x, y, color.NRGBA{uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8), uint8(c.A >> 8)})
		}
		m = n
	default:
		n := image.NewNRGBA64(rect)
		set = n.SetNRGBA64
		m = n
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := pixel(x, y)
			if err != nil {
				return nil, err
			}
			set(x, y, c)
		}
	}

	return m, nil
}

func toImage[T Sample](h Header, b []byte) (image.Image, error) {
	planes, err := Unpack[T](h.Format, h.Width, h.Height, b)
	if err != nil {
		return nil, err
	}
	return FromPlanes(h.Format, planes)
}

// ToImage converts the pixel data b described by h into an image.Image as
// FromPlanes does. The rows are flipped as the standard library puts the
// origin at the top left.
func ToImage(h Header, b []byte) (image.Image, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	switch h.Format.BytesPerChannel() {
	case 1:
		return toImage[uint8](h, b)
	case 2:
		return toImage[uint16](h, b)
	default:
		return toImage[float32](h, b)
	}
}

func fromImage[T Sample](m image.Image, f format.Format) ([]byte, error) {
	planes, err := ToPlanes[T](m, f)
	if err != nil {
		return nil, err
	}
	return Pack(f, planes)
}

// FromImage converts m into pixel data of format f, splitting it into
// planes as ToPlanes does.
func FromImage(m image.Image, f format.Format) ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrFormat, f)
	}

	switch f.BytesPerChannel() {
	case 1:
		return fromImage[uint8](m, f)
	case 2:
		return fromImage[uint16](m, f)
	default:
		return fromImage[float32](m, f)
	}
}
