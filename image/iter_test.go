package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteration(t *testing.T) {
	data := sequence(6)
	m, err := FromData(3, 2, &data)
	require.NoError(t, err)

	var forward []int
	for i, v := range m.All() {
		assert.Equal(t, i, v)
		forward = append(forward, v)
	}
	assert.Equal(t, sequence(6), forward)

	var backward []int
	for i, v := range m.Backward() {
		assert.Equal(t, i, v)
		backward = append(backward, v)
	}
	assert.Equal(t, []int{5, 4, 3, 2, 1, 0}, backward)

	// Each call starts a fresh traversal
	var values []int
	for v := range m.Values() {
		values = append(values, v)
	}
	for v := range m.Values() {
		values = append(values, v)
	}
	assert.Len(t, values, 12)
}

func TestIterationReadOnly(t *testing.T) {
	m, err := New[int](2, 2)
	require.NoError(t, err)

	for _, v := range m.All() {
		v++
		_ = v
	}
	for v := range m.Values() {
		assert.Zero(t, v)
	}
}

func TestIterationPointers(t *testing.T) {
	m, err := New[int](3, 3)
	require.NoError(t, err)

	for i, p := range m.Pointers() {
		*p = i * 10
	}
	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70, 80}, m.Data())

	n := 0
	for _, p := range m.BackwardPointers() {
		*p = n
		n++
	}
	assert.Equal(t, []int{8, 7, 6, 5, 4, 3, 2, 1, 0}, m.Data())
}

func TestIterationBreak(t *testing.T) {
	m, err := New[int](10, 10)
	require.NoError(t, err)

	n := 0
	for range m.All() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)

	n = 0
	for range m.BackwardPointers() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}
