package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheetform/pkg/sheet"
)

// Cells converts plain Go values into a sheet row: nil is Empty, string,
// int, int64, float64 and bool map to their cell kinds, and a sheet.Cell is
// used as-is.
func Cells(values ...any) sheet.Row {
	row := make(sheet.Row, len(values))
	for i, value := range values {
		row[i] = cellOf(value)
	}
	return row
}

func cellOf(value any) sheet.Cell {
	switch v := value.(type) {
	case nil:
		return sheet.Empty()
	case sheet.Cell:
		return v
	case string:
		return sheet.String(v)
	case int:
		return sheet.Int(int64(v))
	case int64:
		return sheet.Int(v)
	case float64:
		return sheet.Float(v)
	case bool:
		return sheet.Bool(v)
	default:
		panic(fmt.Sprintf("testsupport: unsupported cell value %T", value))
	}
}

// Template assembles a template grid one subject row at a time.
type Template struct {
	rows []sheet.Row
}

// NewTemplate returns an empty template.
func NewTemplate() *Template {
	return &Template{}
}

// Row appends a subject row whose cells start at column 1.
func (t *Template) Row(label string, cells ...any) *Template {
	row := append(sheet.Row{sheet.String(label)}, Cells(cells...)...)
	t.rows = append(t.rows, row)
	return t
}

// Fields appends a subject row holding one value per field, placed in each
// field's value column. Companion columns stay empty.
func (t *Template) Fields(label string, values ...any) *Template {
	row := make(sheet.Row, 1+2*len(values))
	row[0] = sheet.String(label)
	for i := range row[1:] {
		row[i+1] = sheet.Empty()
	}
	for i, value := range values {
		row[1+2*i] = cellOf(value)
	}
	t.rows = append(t.rows, row)
	return t
}

// Companion sets the companion column of field (1-based) on the last row.
func (t *Template) Companion(field int, value any) *Template {
	if len(t.rows) == 0 {
		panic("testsupport: companion without a row")
	}
	last := t.rows[len(t.rows)-1]
	col := 2 * field
	for len(last) <= col {
		last = append(last, sheet.Empty())
	}
	last[col] = cellOf(value)
	t.rows[len(t.rows)-1] = last
	return t
}

// Raw appends a row verbatim, including column 0.
func (t *Template) Raw(cells ...any) *Template {
	t.rows = append(t.rows, Cells(cells...))
	return t
}

// Grid returns the assembled grid.
func (t *Template) Grid() sheet.Grid {
	rows := make([]sheet.Row, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append(sheet.Row(nil), row...)
	}
	return sheet.NewGrid("Sheet1", rows...)
}

// SampleTemplate returns a seven field template covering every variant, a
// back-reference, a numeric range and an exclusive multiselect option. Text
// fields carry stray option cells that must be ignored.
func SampleTemplate() *Template {
	return NewTemplate().
		Fields("ページング", 1, 1, 1, 1, 1, 1, 2).
		Fields("表示", "表示(必須)", "表示(必須)", "表示(任意)", "表示(必須)", "表示(必須)", "表示(任意)", "表示(任意)").
		Fields("タイプ", "テキスト一行", "ラジオボタン", "テキスト一行", "マルチセレクト", "プルダウン", "プルダウン", "テキストエリア").
		Fields("ラベル", "氏名", "性別", "年齢", "興味のある分野", "都道府県", "市区町村", "備考").
		Fields("最大", 20, nil, 2, 3, nil, nil, 400).
		Fields("最小", 1, nil, 1, 1, nil, nil, 10).
		Fields("入力指定", nil, nil, "半角数字").
		Fields("数値入力指定", nil, nil, "1~100").
		Fields("数値入力指定エラー", nil, nil, "1~99の数値を入力してください").
		Fields("プレースホルダ", "山田太郎", nil, nil, "該当なし", "選択してください", "選択してください", "ご自由にお書きください").
		Companion(6, "field5").
		Raw(nil, "annotations between blocks are skipped").
		Fields("プルダウン1", "紛れ込んだ選択肢", "男性", nil, "音楽", "東京都", "古い選択肢").
		Fields("プルダウン2", nil, "女性", nil, "映画", "大阪府").
		Fields("プルダウン3", nil, nil, nil, "読書").
		Fields("プルダウン4", nil, nil, nil, "該当なし")
}

// WriteWorkbook stores grid as the only worksheet of a new xlsx file under
// dir and returns its path.
func WriteWorkbook(t *testing.T, dir, name string, grid sheet.Grid) string {
	t.Helper()

	f, err := workbook(grid)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create workbook dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// WorkbookBytes encodes grid as an in-memory xlsx payload.
func WorkbookBytes(t *testing.T, grid sheet.Grid) []byte {
	t.Helper()

	f, err := workbook(grid)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode workbook: %v", err)
	}
	return buf.Bytes()
}

func workbook(grid sheet.Grid) (*excelize.File, error) {
	f := excelize.NewFile()
	name := grid.Name
	if name == "" {
		name = "Sheet1"
	}
	if name != "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	}
	for r, row := range grid.Rows {
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			var value any
			switch cell.Kind {
			case sheet.CellEmpty:
				continue
			case sheet.CellString:
				value = cell.Text
			case sheet.CellInt:
				value = cell.Int
			case sheet.CellFloat, sheet.CellDateTime:
				value = cell.Float
			case sheet.CellBool:
				value = cell.Bool
			default:
				return nil, fmt.Errorf("testsupport: cannot write %s cell", cell.Kind)
			}
			if err := f.SetCellValue(name, ref, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its content with a
// trailing newline trimmed.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return strings.TrimSuffix(string(MustReadGolden(t, path)), "\n")
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// ErrorKind fails the test unless err is a conversion error matching target.
func ErrorKind(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error matching %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error matching %v, got %v", target, err)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
