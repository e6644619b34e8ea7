package tips

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/tips/codec"
	"github.com/bodgit/tips/format"
	tipsimage "github.com/bodgit/tips/image"
)

func testImage(w, h int, seed uint8) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x*16) + seed, uint8(y * 16), seed, 0xff})
		}
	}
	return m
}

func encodeTIPS(t *testing.T, m image.Image, f format.Format) []byte {
	t.Helper()

	b := new(bytes.Buffer)
	require.NoError(t, codec.Encode(b, m, f))
	return b.Bytes()
}

func writePNG(t *testing.T, file string, m image.Image) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func newToolkit(t *testing.T) *Toolkit {
	t.Helper()

	tk, err := New(filepath.Join(t.TempDir(), "tips.db"), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, tk.Close())
	})
	return tk
}

func TestCatalog(t *testing.T) {
	c := newToolkit(t).Catalog()

	a := encodeTIPS(t, testImage(4, 3, 1), format.RGB8)
	b := encodeTIPS(t, testImage(4, 3, 2), format.Mono16)

	id1, err := c.Add("a", a)
	require.NoError(t, err)
	id2, err := c.Add("b", b)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	// Identical data is stored once
	dup, err := c.Add("copy of a", a)
	require.NoError(t, err)
	assert.Equal(t, id1, dup)

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, codec.Header{Format: format.RGB8, Width: 4, Height: 3}, entries[0].Header)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, format.Mono16, entries[1].Header.Format)
	assert.Len(t, entries[0].SHA1, 40)

	e, data, err := c.Get(id2)
	require.NoError(t, err)
	assert.Equal(t, entries[1], e)
	assert.Equal(t, b, data)

	_, _, err = c.Get(id2 + 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogRejectsBadData(t *testing.T) {
	c := newToolkit(t).Catalog()

	good := encodeTIPS(t, testImage(2, 2, 0), format.RGBA8)

	_, err := c.Add("short", good[:len(good)-1])
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = c.Add("png", []byte("\x89PNG\r\n\x1a\n0000000000"))
	assert.ErrorIs(t, err, codec.ErrBadMagic)

	entries, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	src := testImage(6, 4, 3)

	for _, ext := range []string{".png", ".gif", ".jpg", ".tips"} {
		t.Run(ext, func(t *testing.T) {
			file := filepath.Join(dir, "out"+ext)
			require.NoError(t, WriteFile(file, src, format.RGB8, 16))

			m, _, err := ReadFile(file)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), m.Bounds())
		})
	}

	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "out.xcf"), src, format.RGB8, 16), ErrUnsupported)
	assert.ErrorIs(t, WriteFile(filepath.Join(dir, "out.gif"), src, format.RGB8, 1), codec.ErrColors)
}

func TestWriteFileTIPS(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.tips")
	src := testImage(5, 2, 7)
	require.NoError(t, WriteFile(file, src, format.RGB8, 0))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	pf, planes, err := codec.Read[uint8](f)
	require.NoError(t, err)
	assert.Equal(t, format.RGB8, pf)
	require.Len(t, planes, 3)

	// (0, 0) is the bottom-left pixel, which is the last row of src
	r, err := planes[0].At(4, 0)
	require.NoError(t, err)
	assert.Equal(t, src.NRGBAAt(4, 1).R, r)

	g, err := planes[1].At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, src.NRGBAAt(0, 0).G, g)

	// The red plane converts like any other buffer
	f32, err := tipsimage.Convert[float32](planes[0])
	require.NoError(t, err)
	back, err := tipsimage.Convert[uint8](f32)
	require.NoError(t, err)
	assert.True(t, back.Equal(planes[0]))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	writePNG(t, filepath.Join(dir, "one.png"), testImage(8, 8, 1))
	writePNG(t, filepath.Join(dir, "sub", "two.png"), testImage(4, 2, 2))
	writePNG(t, filepath.Join(dir, "sub", "same.png"), testImage(4, 2, 2))
	writePNG(t, filepath.Join(dir, ".hidden", "three.png"), testImage(3, 3, 3))
	writePNG(t, filepath.Join(dir, ".dotfile.png"), testImage(3, 3, 4))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	tk := newToolkit(t)
	require.NoError(t, tk.Scan(dir, format.RGBA16))

	entries, err := tk.Catalog().List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	names := map[string]codec.Header{}
	for _, e := range entries {
		names[e.Name] = e.Header
	}
	assert.Equal(t, codec.Header{Format: format.RGBA16, Width: 8, Height: 8}, names["one.png"])
	if h, ok := names["sub/two.png"]; ok {
		assert.Equal(t, 4, h.Width)
	} else {
		assert.Contains(t, names, "sub/same.png")
	}

	// Scanning again adds nothing new
	require.NoError(t, tk.Scan(dir, format.RGBA16))
	entries, err = tk.Catalog().List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "single.png")
	writePNG(t, file, testImage(2, 2, 9))

	tk := newToolkit(t)
	require.NoError(t, tk.Scan(file, format.Mono8))

	entries, err := tk.Catalog().List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "single.png", entries[0].Name)
	assert.Equal(t, format.Mono8, entries[0].Header.Format)

	assert.ErrorIs(t, tk.Scan(file, format.Undefined), codec.ErrFormat)
	assert.Error(t, tk.Scan(filepath.Join(dir, "missing"), format.Mono8))
}

func TestExport(t *testing.T) {
	tk := newToolkit(t)
	src := testImage(4, 4, 5)
	data := encodeTIPS(t, src, format.RGBA32)

	id, err := tk.Catalog().Add("src", data)
	require.NoError(t, err)

	dir := t.TempDir()

	tipsFile := filepath.Join(dir, "copy.tips")
	require.NoError(t, tk.Export(id, tipsFile))
	b, err := os.ReadFile(tipsFile)
	require.NoError(t, err)
	assert.Equal(t, data, b)

	pngFile := filepath.Join(dir, "copy.png")
	require.NoError(t, tk.Export(id, pngFile))
	m, name, err := ReadFile(pngFile)
	require.NoError(t, err)
	assert.Equal(t, "png", name)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, a := m.At(x, y).RGBA()
			sr, sg, sb, sa := src.At(x, y).RGBA()
			assert.Equal(t, []uint32{sr >> 8, sg >> 8, sb >> 8, sa >> 8}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
		}
	}

	assert.ErrorIs(t, tk.Export(id+1, filepath.Join(dir, "missing.png")), ErrNotFound)
	assert.ErrorIs(t, tk.Export(id, filepath.Join(dir, "copy.xcf")), ErrUnsupported)
}
