package xlsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheetform/pkg/converr"
)

func openFile(ctx context.Context, path string) (*excelize.File, error) {
	if path == "" {
		return nil, converr.New(converr.KindReadError, "file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, converr.Wrap(converr.KindReadError, err)
	}
	defer file.Close()
	return openReader(file)
}

func openFromFS(ctx context.Context, filesystem fs.FS, name string) (*excelize.File, error) {
	if filesystem == nil {
		return nil, converr.New(converr.KindReadError, "filesystem is not configured")
	}
	if name == "" {
		return nil, converr.New(converr.KindReadError, "fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := filesystem.Open(name)
	if err != nil {
		return nil, converr.Wrap(converr.KindReadError, err)
	}
	defer file.Close()
	return openReader(file)
}

func openBytes(ctx context.Context, data []byte) (*excelize.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return openReader(bytes.NewReader(data))
}

// openReader decodes a workbook. Failures reading the stream are read errors,
// everything else is a container decoding error.
func openReader(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, converr.Wrap(converr.KindReadError, err)
		}
		return nil, converr.Wrap(converr.KindXlsxError, err)
	}
	return f, nil
}
