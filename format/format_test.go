package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannels(t *testing.T) {
	want := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}

	got := make([]int, 0, len(want))
	for _, f := range Formats() {
		got = append(got, Channels(f))
	}
	assert.Equal(t, want, got)

	assert.Equal(t, 0, Channels(Undefined))
	assert.Equal(t, 0, Channels(Format(12)))
	assert.Equal(t, 0, Channels(Format(-7)))
}

func TestBytesPerPixel(t *testing.T) {
	want := []int{1, 2, 4, 2, 4, 8, 3, 6, 12, 4, 8, 16}

	got := make([]int, 0, len(want))
	for _, f := range Formats() {
		got = append(got, BytesPerPixel(f))
		assert.Equal(t, BytesPerPixel(f), f.BytesPerPixel())
	}
	assert.Equal(t, want, got)

	assert.Equal(t, 0, BytesPerPixel(Undefined))
	assert.Equal(t, 0, BytesPerPixel(Format(100)))
}

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		format Format
		bits   int
		float  bool
		alpha  bool
	}{
		{Mono8, 8, false, false},
		{Mono32, 32, true, false},
		{MonoA16, 16, false, true},
		{RGB8, 8, false, false},
		{RGB32, 32, true, false},
		{RGBA16, 16, false, true},
		{RGBA32, 32, true, true},
		{Undefined, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.bits, tt.format.BitsPerChannel())
			assert.Equal(t, tt.float, tt.format.IsFloat())
			assert.Equal(t, tt.alpha, tt.format.HasAlpha())
		})
	}
}

func TestImageBytes(t *testing.T) {
	assert.Equal(t, 64*16, RGBA32.RowBytes(64))
	assert.Equal(t, 64*40*3, RGB8.ImageBytes(64, 40))
	assert.Equal(t, 0, Undefined.ImageBytes(64, 40))
}

func TestParse(t *testing.T) {
	for _, f := range Formats() {
		got, err := Parse(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	f, err := Parse("rgba16")
	require.NoError(t, err)
	assert.Equal(t, RGBA16, f)

	f, err = Parse("undefined")
	require.NoError(t, err)
	assert.Equal(t, Undefined, f)

	_, err = Parse("CMYK8")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
