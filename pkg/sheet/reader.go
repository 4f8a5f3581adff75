package sheet

import (
	"context"
	"io/fs"
	"strings"
)

// Reader materialises the first (or configured) worksheet of a workbook as a
// Grid. Implementations live under internal/sheet.
type Reader interface {
	Read(ctx context.Context, src Source) (Grid, error)
}

// ReaderFunc adapts a function into a Reader.
type ReaderFunc func(ctx context.Context, src Source) (Grid, error)

// Read delegates to the underlying function.
func (fn ReaderFunc) Read(ctx context.Context, src Source) (Grid, error) {
	return fn(ctx, src)
}

// ReaderOptions configures how a Reader resolves sources.
type ReaderOptions struct {
	// FileSystem backs SourceKindFS sources. Nil disables them.
	FileSystem fs.FS

	// Sheet selects a worksheet by name. Empty means the first worksheet.
	Sheet string
}

// ReaderOption mutates ReaderOptions prior to construction.
type ReaderOption func(*ReaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS sources.
func WithFileSystem(files fs.FS) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.FileSystem = files
	}
}

// WithSheet selects the worksheet to read by name.
func WithSheet(name string) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.Sheet = strings.TrimSpace(name)
	}
}

// NewReaderOptions applies a set of ReaderOption values and returns the
// resulting configuration.
func NewReaderOptions(options ...ReaderOption) ReaderOptions {
	cfg := ReaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
