package sheet

// Row is an ordered sequence of cells. Rows may be ragged: cells past the end
// of a row read as Empty.
type Row []Cell

// Cell returns the cell at col, or Empty when col is out of range.
func (r Row) Cell(col int) Cell {
	if col < 0 || col >= len(r) {
		return Empty()
	}
	return r[col]
}

// Grid is a fully materialised worksheet.
type Grid struct {
	Name string
	Rows []Row
}

// NewGrid builds a grid from rows. The rows are used as-is.
func NewGrid(name string, rows ...Row) Grid {
	return Grid{Name: name, Rows: rows}
}

// Cell returns the cell at (row, col), or Empty when out of range.
func (g Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.Rows) {
		return Empty()
	}
	return g.Rows[row].Cell(col)
}

// Len reports the number of rows.
func (g Grid) Len() int {
	return len(g.Rows)
}
