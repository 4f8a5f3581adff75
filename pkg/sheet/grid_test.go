package sheet

import "testing"

func TestGridCellOutOfRangeIsEmpty(t *testing.T) {
	grid := NewGrid("Sheet1",
		Row{String("表示"), String("表示(必須)")},
		Row{String("タイプ")},
	)

	if got := grid.Cell(0, 1); got.Kind != CellString || got.Text != "表示(必須)" {
		t.Fatalf("unexpected cell %+v", got)
	}
	for _, pos := range [][2]int{{1, 1}, {5, 0}, {-1, 0}, {0, -1}} {
		if got := grid.Cell(pos[0], pos[1]); got.Kind != CellEmpty {
			t.Fatalf("cell %v: expected empty, got %s", pos, got.Describe())
		}
	}
	if grid.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", grid.Len())
	}
}

func TestCellIsEmpty(t *testing.T) {
	tests := []struct {
		cell Cell
		want bool
	}{
		{Empty(), true},
		{String(""), true},
		{String(" "), false},
		{Int(0), false},
		{Float(0), false},
	}
	for _, tc := range tests {
		if got := tc.cell.IsEmpty(); got != tc.want {
			t.Errorf("%s: IsEmpty() = %v, want %v", tc.cell.Describe(), got, tc.want)
		}
	}
}

func TestCellDescribe(t *testing.T) {
	tests := map[string]Cell{
		"empty cell":     Empty(),
		`string "a"`:     String("a"),
		"int 3":          Int(3),
		"float 1.5":      Float(1.5),
		"datetime 45000": DateTime(45000),
		"bool true":      Bool(true),
		`error "#N/A"`:   Error("#N/A"),
	}
	for want, cell := range tests {
		if got := cell.Describe(); got != want {
			t.Errorf("Describe() = %q, want %q", got, want)
		}
	}
}

func TestSourceFromBytesCopiesPayload(t *testing.T) {
	data := []byte{1, 2, 3}
	src := SourceFromBytes("inline.xlsx", data)
	data[0] = 9
	if src.Bytes()[0] != 1 {
		t.Fatalf("expected payload to be copied")
	}
	if src.Kind() != SourceKindBytes || src.Location() != "inline.xlsx" {
		t.Fatalf("unexpected source %s %s", src.Kind(), src.Location())
	}
}
