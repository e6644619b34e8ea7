package tips

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Additional input formats
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bodgit/tips/codec"
	"github.com/bodgit/tips/format"
)

// ErrUnsupported is returned when writing to a file with an extension no
// encoder is known for.
var ErrUnsupported = errors.New("tips: unsupported file type")

// Extensions lists the file extensions ReadFile is expected to decode.
var Extensions = []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".tips", ".webp"}

func supported(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadFile decodes the image in file, returning it along with the name of
// the format it was stored in.
func ReadFile(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return image.Decode(f)
}

// WriteFile encodes m to file, choosing the encoder from the extension.
// TIPS files are written in format pf and GIF files are quantized to at
// most colors colors; both arguments are ignored otherwise.
func WriteFile(file string, m image.Image, pf format.Format, colors int) (err error) {
	var encode func(*os.File) error

	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".tips":
		encode = func(f *os.File) error {
			return codec.Encode(f, m, pf)
		}
	case ".png":
		encode = func(f *os.File) error {
			return png.Encode(f, m)
		}
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error {
			return jpeg.Encode(f, m, nil)
		}
	case ".gif":
		pm, err := codec.Quantize(m, colors)
		if err != nil {
			return err
		}
		encode = func(f *os.File) error {
			return gif.Encode(f, pm, nil)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return encode(f)
}
