package ansiconsole

// Buffer stores a 2D grid of cells for an emulated console screen.
type Buffer struct {
	rows     int
	cols     int
	cells    [][]Cell
	hasDirty bool
}

// NewBuffer creates a buffer with the given dimensions, blanked with attr.
func NewBuffer(rows, cols int, attr Attribute) *Buffer {
	b := &Buffer{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}

	for i := range b.cells {
		b.cells[i] = make([]Cell, cols)
		for j := range b.cells[i] {
			b.cells[i][j] = NewCell(attr)
		}
	}

	return b
}

// Rows returns the buffer height in character rows.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the buffer width in character columns.
func (b *Buffer) Cols() int {
	return b.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (b *Buffer) Cell(row, col int) *Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil
	}
	return &b.cells[row][col]
}

// SetCell replaces the cell at (row, col) and marks it dirty.
// Does nothing if coordinates are out of bounds.
func (b *Buffer) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	cell.MarkDirty()
	b.cells[row][col] = cell
	b.hasDirty = true
}

// HasDirty returns true if any cell has been modified since the last ClearAllDirty call.
func (b *Buffer) HasDirty() bool {
	return b.hasDirty
}

// DirtyCells returns positions of all modified cells.
func (b *Buffer) DirtyCells() []Position {
	var positions []Position
	for row := range b.cells {
		for col := range b.cells[row] {
			if b.cells[row][col].IsDirty() {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// ClearAllDirty resets the dirty state of all cells.
func (b *Buffer) ClearAllDirty() {
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col].ClearDirty()
		}
	}
	b.hasDirty = false
}

// FillChars writes r into n cells in reading order starting at pos, wrapping
// across rows and stopping at the end of the buffer. Attributes are kept.
// Returns the number of cells written.
func (b *Buffer) FillChars(pos Position, n int, r rune) int {
	return b.walk(pos, n, func(c *Cell) {
		c.Char = r
		c.ClearFlag(CellFlagWideChar | CellFlagWideCharSpacer)
	})
}

// FillAttrs sets the attribute of n cells in reading order starting at pos.
// Returns the number of cells written.
func (b *Buffer) FillAttrs(pos Position, n int, attr Attribute) int {
	return b.walk(pos, n, func(c *Cell) {
		c.Attr = attr
	})
}

func (b *Buffer) walk(pos Position, n int, fn func(*Cell)) int {
	if n <= 0 || pos.Row < 0 || pos.Row >= b.rows || pos.Col < 0 || pos.Col >= b.cols {
		return 0
	}
	done := 0
	row, col := pos.Row, pos.Col
	for done < n && row < b.rows {
		cell := &b.cells[row][col]
		fn(cell)
		cell.MarkDirty()
		done++
		col++
		if col == b.cols {
			col = 0
			row++
		}
	}
	b.hasDirty = true
	return done
}

// ScrollUp shifts all lines up by n positions and blanks the bottom lines with fill.
func (b *Buffer) ScrollUp(n int, fill Attribute) {
	if n <= 0 {
		return
	}
	b.MoveRegion(Rect{Top: 0, Left: 0, Bottom: b.rows - 1, Right: b.cols - 1}, Position{Row: -n}, fill)
}

// MoveRegion copies the cells of src so its top-left lands on dst. src also
// clips the destination: cells moved outside it are discarded, and cells of
// src left uncovered are blanked with fill.
func (b *Buffer) MoveRegion(src Rect, dst Position, fill Attribute) {
	src = b.clip(src)
	if src.Top > src.Bottom || src.Left > src.Right {
		return
	}

	height := src.Bottom - src.Top + 1
	width := src.Right - src.Left + 1
	saved := make([][]Cell, height)
	for i := range saved {
		saved[i] = make([]Cell, width)
		copy(saved[i], b.cells[src.Top+i][src.Left:src.Right+1])
	}

	for row := src.Top; row <= src.Bottom; row++ {
		for col := src.Left; col <= src.Right; col++ {
			b.cells[row][col].Reset(fill)
			b.cells[row][col].MarkDirty()
		}
	}

	for i := 0; i < height; i++ {
		row := dst.Row + i
		if row < src.Top || row > src.Bottom {
			continue
		}
		for j := 0; j < width; j++ {
			col := dst.Col + j
			if col < src.Left || col > src.Right {
				continue
			}
			b.cells[row][col] = saved[i][j]
			b.cells[row][col].MarkDirty()
		}
	}
	b.hasDirty = true
}

func (b *Buffer) clip(r Rect) Rect {
	r.Top = clamp(r.Top, 0, b.rows)
	r.Left = clamp(r.Left, 0, b.cols)
	r.Bottom = clamp(r.Bottom, -1, b.rows-1)
	r.Right = clamp(r.Right, -1, b.cols-1)
	return r
}

// LineContent returns the text content of a line, trimming trailing spaces.
// Wide character spacers are skipped. Returns empty string if the line is empty or out of bounds.
func (b *Buffer) LineContent(row int) string {
	if row < 0 || row >= b.rows {
		return ""
	}

	// Find the last non-space character
	lastNonSpace := -1
	for col := b.cols - 1; col >= 0; col-- {
		cell := &b.cells[row][col]
		if cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}

	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := range b.cells[row][:lastNonSpace+1] {
		cell := &b.cells[row][col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}

	return string(runes)
}
