package image

import "iter"

// All returns an iterator over the linear index and value of every
// element in row-major storage order. Values are copies, so the iterator
// cannot be used to modify m.
func (m *Image[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range m.pix {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over copies of every element in row-major
// storage order.
func (m *Image[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range m.pix {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward is like All but runs from the last element to the first.
func (m *Image[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(m.pix) - 1; i >= 0; i-- {
			if !yield(i, m.pix[i]) {
				return
			}
		}
	}
}

// Pointers returns an iterator over the linear index of, and a pointer to,
// every element in row-major storage order.
func (m *Image[T]) Pointers() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range m.pix {
			if !yield(i, &m.pix[i]) {
				return
			}
		}
	}
}

// BackwardPointers is like Pointers but runs from the last element to the
// first.
func (m *Image[T]) BackwardPointers() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := len(m.pix) - 1; i >= 0; i-- {
			if !yield(i, &m.pix[i]) {
				return
			}
		}
	}
}
