package lang

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/readahead"
)

// Reader resolves and reads configuration files on behalf of the parser.
type Reader interface {
	// Resolve returns the name of file name referenced from file base.
	// Relative names are anchored at the directory containing base, or at
	// the working directory when base is empty.
	Resolve(base, name string) string

	// ReadFile returns the contents of the resolved file name.
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// OSReader reads files from the operating system.
// Contents are consumed through an asynchronous read-ahead buffer.
type OSReader struct{}

// Resolve returns an absolute, cleaned path when possible.
func (OSReader) Resolve(base, name string) string {
	if !filepath.IsAbs(name) && base != "" {
		name = filepath.Join(filepath.Dir(base), name)
	}

	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}

	return filepath.Clean(name)
}

// ReadFile reads the named file.
func (OSReader) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", name))
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", name))
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", name))
	}

	return data, nil
}

// FSReader reads files from an [fs.FS], using slash-separated names.
type FSReader struct {
	FS fs.FS
}

// Resolve returns a cleaned, unrooted name valid for [fs.FS].
func (r FSReader) Resolve(base, name string) string {
	if !path.IsAbs(name) && base != "" {
		name = path.Join(path.Dir(base), name)
	}

	name = strings.TrimLeft(path.Clean(name), "/")
	if name == "" {
		return "."
	}

	return name
}

// ReadFile reads the named file from r.FS.
func (r FSReader) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", name))
	}

	data, err := fs.ReadFile(r.FS, name)
	if err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", name))
	}

	return data, nil
}
