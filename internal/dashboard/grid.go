package dashboard

// Grid is a fixed-capacity layout filled column by column: the first Rows
// servers fill the first column top to bottom, the next Rows the second
// column, and so on.
type Grid struct {
	Columns int
	Rows    int
}

// Capacity returns the number of cells.
func (g Grid) Capacity() int {
	if g.Columns < 1 || g.Rows < 1 {
		return 0
	}
	return g.Columns * g.Rows
}

// Fit splits ids into those that get a cell and those dropped for lack of space.
func (g Grid) Fit(ids []string) (visible, dropped []string) {
	n := g.Capacity()
	if len(ids) <= n {
		return ids, nil
	}
	return ids[:n], ids[n:]
}

// Position returns the row and column of the i'th cell.
func (g Grid) Position(i int) (row, col int) {
	return i % g.Rows, i / g.Rows
}

// Index returns the cell index at row, col, or -1 if that cell is outside
// the grid or beyond count filled cells.
func (g Grid) Index(row, col, count int) int {
	if row < 0 || col < 0 || row >= g.Rows || col >= g.Columns {
		return -1
	}
	i := col*g.Rows + row
	if i >= count {
		return -1
	}
	return i
}

// UsedRows returns how many rows hold at least one of count cells.
func (g Grid) UsedRows(count int) int {
	if count >= g.Rows {
		return g.Rows
	}
	return count
}

// UsedColumns returns how many columns hold at least one of count cells.
func (g Grid) UsedColumns(count int) int {
	if count == 0 {
		return 0
	}
	return (count-1)/g.Rows + 1
}

// Move returns the cell reached from i by stepping dRow rows and dCol
// columns, or i when that cell is empty.
func (g Grid) Move(i, dRow, dCol, count int) int {
	if count == 0 {
		return 0
	}
	row, col := g.Position(i)
	if next := g.Index(row+dRow, col+dCol, count); next >= 0 {
		return next
	}
	return i
}
