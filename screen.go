package ansiconsole

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// DEFAULT_ROWS is the default number of screen rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of screen columns.
	DEFAULT_COLS = 80
)

// ScreenConsole is an in-memory legacy console. It implements Console the
// way a non-ANSI console behaves: text lands at the cursor with the current
// attribute, LF returns to column 0, and the screen scrolls at the bottom.
// Escape bytes written to it are stored literally.
// All operations are thread-safe via internal locking.
type ScreenConsole struct {
	mu sync.RWMutex

	buffer *Buffer
	cursor Position
	attr   Attribute

	// Incomplete UTF-8 sequence from the previous write
	pending []byte
}

// ScreenOption configures a ScreenConsole during construction.
type ScreenOption func(*ScreenConsole)

// WithScreenSize sets the screen dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithScreenSize(rows, cols int) ScreenOption {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}
	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	return func(s *ScreenConsole) {
		s.buffer = NewBuffer(rows, cols, s.attr)
	}
}

// WithScreenAttribute sets the initial attribute. Apply it before WithScreenSize.
func WithScreenAttribute(attr Attribute) ScreenOption {
	return func(s *ScreenConsole) {
		s.attr = attr
		if s.buffer != nil {
			s.buffer = NewBuffer(s.buffer.Rows(), s.buffer.Cols(), attr)
		}
	}
}

// NewScreenConsole creates a blank 24x80 screen with DefaultAttribute.
func NewScreenConsole(opts ...ScreenOption) *ScreenConsole {
	s := &ScreenConsole{
		attr: DefaultAttribute,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.buffer == nil {
		s.buffer = NewBuffer(DEFAULT_ROWS, DEFAULT_COLS, s.attr)
	}

	return s
}

// Write places text at the cursor. Implements io.Writer.
func (s *ScreenConsole) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := p
	if len(s.pending) > 0 {
		data = append(s.pending, p...)
		s.pending = nil
	}

	for len(data) > 0 {
		if !utf8.FullRune(data) {
			s.pending = append([]byte(nil), data...)
			break
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		s.put(r)
	}

	return len(p), nil
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (s *ScreenConsole) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// put handles one rune at the cursor.
func (s *ScreenConsole) put(r rune) {
	switch r {
	case '\r':
		s.cursor.Col = 0
		return
	case '\n':
		s.newline()
		return
	case '\b':
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
		return
	case '\t':
		next := (s.cursor.Col/8 + 1) * 8
		s.cursor.Col = clamp(next, 0, s.buffer.Cols()-1)
		return
	}

	width := runeWidth(r)
	if r < 0x20 || width == 0 {
		if r == esc {
			// Legacy consoles print ESC as a glyph
			width = 1
		} else {
			return
		}
	}

	cols := s.buffer.Cols()
	if width > cols {
		return
	}
	if s.cursor.Col+width > cols {
		s.newline()
	}

	cell := NewCell(s.attr)
	cell.Char = r
	if width == 2 {
		cell.SetFlag(CellFlagWideChar)
	}
	s.buffer.SetCell(s.cursor.Row, s.cursor.Col, cell)
	if width == 2 {
		spacer := NewCell(s.attr)
		spacer.Char = 0
		spacer.SetFlag(CellFlagWideCharSpacer)
		s.buffer.SetCell(s.cursor.Row, s.cursor.Col+1, spacer)
	}

	s.cursor.Col += width
	if s.cursor.Col >= cols {
		s.newline()
	}
}

func (s *ScreenConsole) newline() {
	s.cursor.Col = 0
	s.cursor.Row++
	if s.cursor.Row >= s.buffer.Rows() {
		s.buffer.ScrollUp(s.cursor.Row-s.buffer.Rows()+1, s.attr)
		s.cursor.Row = s.buffer.Rows() - 1
	}
}

// ScreenInfo returns the screen size, cursor and current attribute.
// The window always covers the whole buffer.
func (s *ScreenConsole) ScreenInfo() (ScreenInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, cols := s.buffer.Rows(), s.buffer.Cols()
	return ScreenInfo{
		Size:       Position{Row: rows, Col: cols},
		Cursor:     s.cursor,
		Attributes: s.attr,
		Window:     Rect{Top: 0, Left: 0, Bottom: rows - 1, Right: cols - 1},
	}, nil
}

// SetCursorPosition moves the cursor. Out of range positions are rejected.
func (s *ScreenConsole) SetCursorPosition(pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos.Row < 0 || pos.Row >= s.buffer.Rows() || pos.Col < 0 || pos.Col >= s.buffer.Cols() {
		return fmt.Errorf("cursor position (%d, %d) out of range", pos.Row, pos.Col)
	}
	s.cursor = pos
	return nil
}

// SetTextAttribute sets the attribute for subsequent writes.
func (s *ScreenConsole) SetTextAttribute(attr Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attr = attr
	return nil
}

// FillCharacter writes r into n cells starting at pos.
func (s *ScreenConsole) FillCharacter(r rune, n int, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.FillChars(pos, n, r)
	return nil
}

// FillAttribute sets the attribute of n cells starting at pos.
func (s *ScreenConsole) FillAttribute(attr Attribute, n int, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.FillAttrs(pos, n, attr)
	return nil
}

// ScrollRegion moves src to dst, clipped to src, and blanks the uncovered cells with fill.
func (s *ScreenConsole) ScrollRegion(src Rect, dst Position, fill Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.MoveRegion(src, dst, fill)
	return nil
}

// Rows returns the screen height in character rows.
func (s *ScreenConsole) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.Rows()
}

// Cols returns the screen width in character columns.
func (s *ScreenConsole) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.Cols()
}

// CursorPos returns the current cursor position (0-based).
func (s *ScreenConsole) CursorPos() (row, col int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Row, s.cursor.Col
}

// Attribute returns the attribute applied to new text.
func (s *ScreenConsole) Attribute() Attribute {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attr
}

// Cell returns a copy of the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (s *ScreenConsole) Cell(row, col int) *Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cell := s.buffer.Cell(row, col)
	if cell == nil {
		return nil
	}
	c := *cell
	return &c
}

// LineContent returns the text of a row with trailing spaces trimmed.
func (s *ScreenConsole) LineContent(row int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.LineContent(row)
}

// HasDirty returns true if any cell was modified since the last ClearDirty call.
func (s *ScreenConsole) HasDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.HasDirty()
}

// DirtyCells returns positions of all cells modified since the last ClearDirty call.
func (s *ScreenConsole) DirtyCells() []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffer.DirtyCells()
}

// ClearDirty marks all cells as clean.
func (s *ScreenConsole) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.ClearAllDirty()
}

// String returns the screen content as a newline-separated string.
// Trailing empty lines are omitted. Implements fmt.Stringer.
func (s *ScreenConsole) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, s.buffer.Rows())
	lastNonEmpty := -1
	for row := range lines {
		lines[row] = s.buffer.LineContent(row)
		if lines[row] != "" {
			lastNonEmpty = row
		}
	}

	return strings.Join(lines[:lastNonEmpty+1], "\n")
}
