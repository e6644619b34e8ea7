package image

// Convert returns a new image with the dimensions of src where every
// element is src's element converted with T(v). No rounding or saturation
// is applied beyond what the Go conversion does, so converting a float out
// of the range of an integer T is implementation-defined.
func Convert[T, S Number](src *Image[S]) (*Image[T], error) {
	m, err := New[T](src.width, src.height)
	if err != nil {
		return nil, err
	}
	for i, v := range src.pix {
		m.pix[i] = T(v)
	}
	return m, nil
}
