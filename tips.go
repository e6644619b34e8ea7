/*
Package tips is a toolkit for building and maintaining a catalog of raw
images.

Images in any format the standard library or golang.org/x/image can decode
are converted to a chosen pixel format, encoded as TIPS files and stored in
an SQLite database, de-duplicated by checksum. They can later be exported
again as PNG, GIF, JPEG or TIPS files.
*/
package tips

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/tips/codec"
)

// DefaultColors is the palette size used when exporting GIF files.
const DefaultColors = 256

// Toolkit ties a Catalog to a logger.
type Toolkit struct {
	catalog *Catalog
	logger  *log.Logger
}

// New returns a Toolkit using the catalog database in file, which is
// created if necessary. A nil logger discards everything.
func New(file string, logger *log.Logger) (*Toolkit, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	catalog, err := NewCatalog(file)
	if err != nil {
		return nil, err
	}

	return &Toolkit{
		catalog: catalog,
		logger:  logger,
	}, nil
}

// Catalog returns the underlying catalog.
func (t *Toolkit) Catalog() *Catalog {
	return t.catalog
}

// Close closes the catalog.
func (t *Toolkit) Close() error {
	return t.catalog.Close()
}

// Export writes the image with the given ID to file, choosing the encoder
// from the extension as WriteFile does. TIPS files are written back
// unchanged.
func (t *Toolkit) Export(id int64, file string) error {
	e, data, err := t.catalog.Get(id)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(file), ".tips") {
		if err := os.WriteFile(file, data, 0o644); err != nil {
			return err
		}
	} else {
		m, err := codec.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}

		if err := WriteFile(file, m, e.Header.Format, DefaultColors); err != nil {
			return err
		}
	}
	t.logger.Printf("Exported %d (%s) to \"%s\"\n", id, e.Name, file)

	return nil
}
