package tips

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/tips/codec"
	"github.com/bodgit/tips/format"
)

const numWorkers = 10

func (t *Toolkit) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file we can decode
			if !info.Mode().IsRegular() || !supported(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (t *Toolkit) fileWorker(ctx context.Context, root string, pf format.Format, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			m, name, err := ReadFile(file)
			if err != nil {
				t.logger.Printf("Unable to decode \"%s\": %s\n", file, err)
				continue
			}

			b := new(bytes.Buffer)
			if err := codec.Encode(b, m, pf); err != nil {
				errc <- err
				return
			}

			rel, err := filepath.Rel(root, file)
			if err != nil {
				errc <- err
				return
			}

			id, err := t.catalog.Add(filepath.ToSlash(rel), b.Bytes())
			if err != nil {
				errc <- err
				return
			}
			t.logger.Printf("Added \"%s\" (%s, %s) as %d\n", file, name, pf, id)

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path, which may be a single file or a directory, and adds
// every image it can decode to the catalog converted to format pf. Files
// that cannot be decoded are logged and skipped. Images are named by their
// path relative to path, or by their base name when path is a file.
func (t *Toolkit) Scan(path string, pf format.Format) error {
	if !pf.IsValid() {
		return codec.ErrFormat
	}

	base, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(base)
	if err != nil {
		return err
	}

	root := base
	if !info.IsDir() {
		root = filepath.Dir(base)
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := t.findFiles(ctx, base)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := t.fileWorker(ctx, root, pf, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
