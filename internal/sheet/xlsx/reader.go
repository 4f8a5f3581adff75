package xlsx

import (
	"context"
	"errors"
	"io/fs"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheetform/pkg/converr"
	"github.com/goliatone/go-sheetform/pkg/sheet"
)

// Reader implements sheet.Reader on top of excelize. Construction helpers live
// in the top-level sheetform package.
type Reader struct {
	files fs.FS
	sheet string
}

var _ sheet.Reader = (*Reader)(nil)

// New constructs a Reader from pre-resolved options.
func New(options sheet.ReaderOptions) *Reader {
	return &Reader{files: options.FileSystem, sheet: options.Sheet}
}

// Read decodes the workbook behind src and materialises the selected worksheet.
func (r *Reader) Read(ctx context.Context, src sheet.Source) (sheet.Grid, error) {
	if src == nil {
		return sheet.Grid{}, errors.New("xlsx reader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		f   *excelize.File
		err error
	)
	switch src.Kind() {
	case sheet.SourceKindFile:
		f, err = openFile(ctx, src.Location())
	case sheet.SourceKindFS:
		f, err = openFromFS(ctx, r.files, src.Location())
	case sheet.SourceKindBytes:
		bytesSrc, ok := src.(sheet.BytesSource)
		if !ok {
			return sheet.Grid{}, errors.New("xlsx reader: bytes source carries no payload")
		}
		f, err = openBytes(ctx, bytesSrc.Bytes())
	default:
		err = errors.New("xlsx reader: unsupported source kind")
	}
	if err != nil {
		return sheet.Grid{}, err
	}
	defer f.Close()

	name, err := r.selectSheet(f)
	if err != nil {
		return sheet.Grid{}, err
	}
	return readGrid(ctx, f, name)
}

func (r *Reader) selectSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", converr.New(converr.KindNoWorksheet, "")
	}
	if r.sheet == "" {
		return sheets[0], nil
	}
	for _, name := range sheets {
		if name == r.sheet {
			return name, nil
		}
	}
	return "", converr.New(converr.KindNoWorksheet, r.sheet)
}

func readGrid(ctx context.Context, f *excelize.File, name string) (sheet.Grid, error) {
	values, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet.Grid{}, converr.Wrap(converr.KindXlsxError, err)
	}

	rows := make([]sheet.Row, len(values))
	for r, cols := range values {
		if err := ctx.Err(); err != nil {
			return sheet.Grid{}, err
		}
		row := make(sheet.Row, len(cols))
		for c, raw := range cols {
			if raw == "" {
				row[c] = sheet.Empty()
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return sheet.Grid{}, converr.Wrap(converr.KindXlsxError, err)
			}
			kind, err := f.GetCellType(name, ref)
			if err != nil {
				return sheet.Grid{}, converr.Wrap(converr.KindXlsxError, err)
			}
			row[c] = toCell(kind, raw)
		}
		rows[r] = row
	}
	return sheet.NewGrid(name, rows...), nil
}
