/*
Package image implements Image, an owning two-dimensional buffer of
homogeneous elements.

Elements are stored contiguously in row-major order: element (x, y) lives
at index y*Width()+x. Coordinates follow a bottom-left origin, so (0, 0) is
the bottom-left pixel of the image and row 0 is its bottom row. Anything
that fills or reads an Image in terms of scanlines, such as a decoder, must
honour that convention.

An Image is agnostic of pixel format. The element type is typically a
single sample (uint8, uint16, float32) or a comparable pixel struct.

Image is not safe for concurrent use.
*/
package image

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument is returned when a width or height is negative, or
	// their product does not fit in an int.
	ErrInvalidArgument = errors.New("image: invalid argument")

	// ErrOutOfRange is returned when an element access falls outside the
	// image, or initial data does not match the image dimensions.
	ErrOutOfRange = errors.New("image: out of range")
)

// Number is a constraint for the element types Convert can cast between.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Image is a width by height buffer of T. The zero value is an empty 0x0
// image ready to use.
type Image[T comparable] struct {
	pix    []T // bottom-up raster order
	width  int
	height int
}

func checkDimensions(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be non-negative", ErrInvalidArgument, width, height)
	}
	if height != 0 && width > math.MaxInt/height {
		return fmt.Errorf("%w: dimensions %dx%d overflow", ErrInvalidArgument, width, height)
	}
	return nil
}

// New returns a width by height image with every element set to the zero
// value of T.
func New[T comparable](width, height int) (*Image[T], error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Image[T]{
		pix:    make([]T, width*height),
		width:  width,
		height: height,
	}, nil
}

// FromData returns a width by height image that adopts *data as its store
// without copying. On success *data is set to nil so the caller no longer
// shares the slice; on failure it is left untouched. A nil data is treated
// as an empty slice.
func FromData[T comparable](width, height int, data *[]T) (*Image[T], error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	var pix []T
	if data != nil {
		pix = *data
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d elements for a %dx%d image", ErrOutOfRange, len(pix), width, height)
	}

	if data != nil {
		*data = nil
	}

	return &Image[T]{
		pix:    pix,
		width:  width,
		height: height,
	}, nil
}

// Clone returns a deep copy of m.
func (m *Image[T]) Clone() *Image[T] {
	pix := make([]T, len(m.pix))
	copy(pix, m.pix)
	return &Image[T]{
		pix:    pix,
		width:  m.width,
		height: m.height,
	}
}

// Move transfers the store of m to a new image and resets m to 0x0. No
// elements are copied.
func (m *Image[T]) Move() *Image[T] {
	n := &Image[T]{
		pix:    m.pix,
		width:  m.width,
		height: m.height,
	}
	m.pix, m.width, m.height = nil, 0, 0
	return n
}

// Assign replaces the dimensions and contents of m with a copy of src and
// returns m.
func (m *Image[T]) Assign(src *Image[T]) *Image[T] {
	if m == src {
		return m
	}

	pix := make([]T, len(src.pix))
	copy(pix, src.pix)
	m.pix, m.width, m.height = pix, src.width, src.height

	return m
}

// Resize changes the dimensions of m. Elements keep their linear index, so
// the first min(Len(), width*height) elements survive and any new elements
// are zero. On error m is unchanged.
func (m *Image[T]) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	n := width * height
	switch {
	case n <= cap(m.pix):
		old := len(m.pix)
		m.pix = m.pix[:n]
		if n > old {
			clear(m.pix[old:])
		}
	default:
		pix := make([]T, n)
		copy(pix, m.pix)
		m.pix = pix
	}
	m.width, m.height = width, height

	return nil
}

func (m *Image[T]) offset(x, y int) (int, error) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, m.width, m.height)
	}
	return y*m.width + x, nil
}

func (m *Image[T]) check(i int) error {
	if i < 0 || i >= len(m.pix) {
		return fmt.Errorf("%w: index %d outside [0, %d)", ErrOutOfRange, i, len(m.pix))
	}
	return nil
}

// At returns the element at (x, y).
func (m *Image[T]) At(x, y int) (T, error) {
	i, err := m.offset(x, y)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.pix[i], nil
}

// Set stores v at (x, y).
func (m *Image[T]) Set(x, y int, v T) error {
	i, err := m.offset(x, y)
	if err != nil {
		return err
	}
	m.pix[i] = v
	return nil
}

// Ptr returns a pointer to the element at (x, y). The pointer is only
// valid until the next Move, Assign or Resize of m.
func (m *Image[T]) Ptr(x, y int) (*T, error) {
	i, err := m.offset(x, y)
	if err != nil {
		return nil, err
	}
	return &m.pix[i], nil
}

// Index returns the element at linear index i.
func (m *Image[T]) Index(i int) (T, error) {
	if err := m.check(i); err != nil {
		var zero T
		return zero, err
	}
	return m.pix[i], nil
}

// SetIndex stores v at linear index i.
func (m *Image[T]) SetIndex(i int, v T) error {
	if err := m.check(i); err != nil {
		return err
	}
	m.pix[i] = v
	return nil
}

// PtrIndex returns a pointer to the element at linear index i, with the
// same lifetime rules as Ptr.
func (m *Image[T]) PtrIndex(i int) (*T, error) {
	if err := m.check(i); err != nil {
		return nil, err
	}
	return &m.pix[i], nil
}

// Row returns row y as a slice sharing the store of m.
func (m *Image[T]) Row(y int) ([]T, error) {
	if y < 0 || y >= m.height {
		return nil, fmt.Errorf("%w: row %d outside [0, %d)", ErrOutOfRange, y, m.height)
	}
	return m.pix[y*m.width : (y+1)*m.width : (y+1)*m.width], nil
}

// Len returns the number of elements, Width()*Height().
func (m *Image[T]) Len() int {
	return m.width * m.height
}

// Fill sets every element to v.
func (m *Image[T]) Fill(v T) {
	for i := range m.pix {
		m.pix[i] = v
	}
}

// Width returns the image width.
func (m *Image[T]) Width() int {
	return m.width
}

// Height returns the image height.
func (m *Image[T]) Height() int {
	return m.height
}

// IsEmpty reports whether m has no elements.
func (m *Image[T]) IsEmpty() bool {
	return m.Len() == 0
}

// Data returns the backing store in row-major order. Writes through the
// slice modify m. The slice must not be used after a Move, Assign or
// Resize of m.
func (m *Image[T]) Data() []T {
	return m.pix
}

// Equal reports whether m and o have the same dimensions and elements. An
// image of 4x1 never equals one of 2x2, whatever the contents. No image
// equals nil.
func (m *Image[T]) Equal(o *Image[T]) bool {
	if o == nil {
		return false
	}
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, v := range m.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

func (m *Image[T]) String() string {
	return fmt.Sprintf("Image[%dx%d]", m.width, m.height)
}
