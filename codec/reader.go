package codec

import (
	"errors"
	"image"
	"io"

	"github.com/bodgit/tips/format"
	tipsimage "github.com/bodgit/tips/image"
)

func init() {
	image.RegisterFormat("tips", magic, Decode, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	header Header
	pix    []byte
}

func (d *decoder) readHeader() error {
	var tmp [HeaderSize]byte
	if err := readFull(d.r, tmp[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrNotEnough
		}
		return err
	}
	return d.header.UnmarshalBinary(tmp[:])
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	d.pix = make([]byte, d.header.Size())
	if err := readFull(d.r, d.pix); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrNotEnough
		}
		return err
	}

	var tmp [1]byte
	n, err := r.Read(tmp[:])
	if n != 0 {
		return ErrTooMuch
	}
	if err != nil && err != io.EOF {
		return err
	}

	return nil
}

// ReadHeader reads just the header of a TIPS file from r.
func ReadHeader(r io.Reader) (Header, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Header{}, err
	}
	return d.header, nil
}

// Read reads a TIPS file from r and returns its format and one plane per
// channel. T must match the sample size of the stored format.
func Read[T Sample](r io.Reader) (format.Format, []*tipsimage.Image[T], error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return format.Undefined, nil, err
	}

	planes, err := Unpack[T](d.header.Format, d.header.Width, d.header.Height, d.pix)
	if err != nil {
		return format.Undefined, nil, err
	}

	return d.header.Format, planes, nil
}

// Decode reads a TIPS file from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return ToImage(d.header, d.pix)
}

// DecodeConfig returns the color model and dimensions of a TIPS file
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: colorModel(d.header.Format),
		Width:      d.header.Width,
		Height:     d.header.Height,
	}, nil
}
