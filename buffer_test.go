package ansiconsole

import (
	"testing"
)

func TestNewBuffer(t *testing.T) {
	buf := NewBuffer(24, 80, DefaultAttribute)

	if buf.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", buf.Rows())
	}
	if buf.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", buf.Cols())
	}
	if buf.Cell(0, 0).Attr != DefaultAttribute {
		t.Errorf("expected default attribute, got %#x", buf.Cell(0, 0).Attr)
	}
}

func TestBufferCell(t *testing.T) {
	buf := NewBuffer(24, 80, DefaultAttribute)

	cell := NewCell(ForegroundGreen)
	cell.Char = 'A'
	buf.SetCell(5, 10, cell)

	got := buf.Cell(5, 10)
	if got.Char != 'A' {
		t.Errorf("expected 'A', got '%c'", got.Char)
	}
	if got.Attr != ForegroundGreen {
		t.Errorf("expected green, got %#x", got.Attr)
	}
}

func TestBufferCellOutOfBounds(t *testing.T) {
	buf := NewBuffer(24, 80, DefaultAttribute)

	if buf.Cell(-1, 0) != nil {
		t.Error("expected nil for negative row")
	}
	if buf.Cell(0, -1) != nil {
		t.Error("expected nil for negative col")
	}
	if buf.Cell(24, 0) != nil {
		t.Error("expected nil for row >= rows")
	}
	if buf.Cell(0, 80) != nil {
		t.Error("expected nil for col >= cols")
	}

	// Must not panic
	buf.SetCell(100, 100, NewCell(DefaultAttribute))
}

func TestBufferFillChars(t *testing.T) {
	buf := NewBuffer(3, 4, DefaultAttribute)

	n := buf.FillChars(Position{Row: 0, Col: 2}, 4, 'x')
	if n != 4 {
		t.Errorf("expected 4 cells written, got %d", n)
	}
	if buf.LineContent(0) != "  xx" {
		t.Errorf("expected '  xx', got '%s'", buf.LineContent(0))
	}
	if buf.LineContent(1) != "xx" {
		t.Errorf("expected 'xx', got '%s'", buf.LineContent(1))
	}
}

func TestBufferFillStopsAtEnd(t *testing.T) {
	buf := NewBuffer(2, 3, DefaultAttribute)

	n := buf.FillAttrs(Position{Row: 1, Col: 1}, 100, ForegroundRed)
	if n != 2 {
		t.Errorf("expected 2 cells written, got %d", n)
	}
	if buf.Cell(1, 2).Attr != ForegroundRed {
		t.Errorf("expected red at (1, 2), got %#x", buf.Cell(1, 2).Attr)
	}
	if buf.Cell(1, 0).Attr != DefaultAttribute {
		t.Errorf("expected (1, 0) untouched, got %#x", buf.Cell(1, 0).Attr)
	}

	if buf.FillChars(Position{Row: 5, Col: 0}, 3, 'x') != 0 {
		t.Error("expected no cells written outside the buffer")
	}
}

func TestBufferScrollUp(t *testing.T) {
	buf := NewBuffer(5, 10, DefaultAttribute)

	for i := 0; i < 5; i++ {
		cell := NewCell(DefaultAttribute)
		cell.Char = rune('A' + i)
		buf.SetCell(i, 0, cell)
	}

	buf.ScrollUp(2, BackgroundBlue)

	if buf.Cell(0, 0).Char != 'C' {
		t.Errorf("expected 'C' at row 0, got '%c'", buf.Cell(0, 0).Char)
	}
	if buf.Cell(2, 0).Char != 'E' {
		t.Errorf("expected 'E' at row 2, got '%c'", buf.Cell(2, 0).Char)
	}
	if buf.Cell(3, 0).Char != ' ' {
		t.Errorf("expected space at row 3, got '%c'", buf.Cell(3, 0).Char)
	}
	if buf.Cell(4, 5).Attr != BackgroundBlue {
		t.Errorf("expected fill attribute on new line, got %#x", buf.Cell(4, 5).Attr)
	}
}

func TestBufferScrollUpAll(t *testing.T) {
	buf := NewBuffer(3, 3, DefaultAttribute)
	buf.FillChars(Position{}, 9, 'x')

	buf.ScrollUp(10, ForegroundGreen)

	for row := 0; row < 3; row++ {
		if buf.LineContent(row) != "" {
			t.Errorf("expected row %d blank, got '%s'", row, buf.LineContent(row))
		}
	}
	if buf.Cell(2, 2).Attr != ForegroundGreen {
		t.Errorf("expected fill attribute, got %#x", buf.Cell(2, 2).Attr)
	}
}

func TestBufferMoveRegion(t *testing.T) {
	buf := NewBuffer(4, 4, DefaultAttribute)
	for row := 0; row < 4; row++ {
		cell := NewCell(DefaultAttribute)
		cell.Char = rune('0' + row)
		buf.SetCell(row, 0, cell)
	}

	// Insert one line at row 1
	buf.MoveRegion(Rect{Top: 1, Left: 0, Bottom: 3, Right: 3}, Position{Row: 2, Col: 0}, DefaultAttribute)

	expected := []string{"0", "", "1", "2"}
	for row, want := range expected {
		if got := buf.LineContent(row); got != want {
			t.Errorf("row %d: expected '%s', got '%s'", row, want, got)
		}
	}
}

func TestBufferMoveRegionEmpty(t *testing.T) {
	buf := NewBuffer(2, 2, DefaultAttribute)
	buf.ClearAllDirty()

	buf.MoveRegion(Rect{Top: 5, Left: 0, Bottom: 6, Right: 1}, Position{}, DefaultAttribute)

	if buf.HasDirty() {
		t.Error("expected no change for a region outside the buffer")
	}
}

func TestBufferLineContent(t *testing.T) {
	buf := NewBuffer(24, 80, DefaultAttribute)

	for i, ch := range "Hello" {
		cell := NewCell(DefaultAttribute)
		cell.Char = ch
		buf.SetCell(0, i, cell)
	}

	content := buf.LineContent(0)
	if content != "Hello" {
		t.Errorf("expected 'Hello', got '%s'", content)
	}
	if buf.LineContent(99) != "" {
		t.Error("expected empty content for out of range row")
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	buf := NewBuffer(24, 80, DefaultAttribute)

	if buf.HasDirty() {
		t.Error("expected no dirty cells initially")
	}

	cell := NewCell(DefaultAttribute)
	cell.Char = 'X'
	buf.SetCell(5, 10, cell)

	if !buf.HasDirty() {
		t.Error("expected dirty cells after SetCell")
	}

	dirty := buf.DirtyCells()
	if len(dirty) != 1 || dirty[0] != (Position{Row: 5, Col: 10}) {
		t.Errorf("expected one dirty cell at (5, 10), got %v", dirty)
	}

	buf.ClearAllDirty()
	if buf.HasDirty() {
		t.Error("expected no dirty cells after clear")
	}
}

func TestPositionClamp(t *testing.T) {
	size := Position{Row: 10, Col: 20}

	tests := []struct {
		pos      Position
		expected Position
	}{
		{Position{Row: 3, Col: 4}, Position{Row: 3, Col: 4}},
		{Position{Row: -1, Col: -5}, Position{Row: 0, Col: 0}},
		{Position{Row: 99, Col: 99}, Position{Row: 9, Col: 19}},
	}

	for _, tt := range tests {
		if got := tt.pos.Clamp(size); got != tt.expected {
			t.Errorf("Clamp(%+v) = %+v, want %+v", tt.pos, got, tt.expected)
		}
	}
}
