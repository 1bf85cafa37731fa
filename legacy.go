package ansiconsole

import "fmt"

// ansiToConsole maps ANSI color numbers (black, red, green, yellow, blue,
// magenta, cyan, white) to console RGB bit order.
var ansiToConsole = [8]Attribute{
	0,
	ForegroundRed,
	ForegroundGreen,
	ForegroundRed | ForegroundGreen,
	ForegroundBlue,
	ForegroundRed | ForegroundBlue,
	ForegroundGreen | ForegroundBlue,
	ForegroundRed | ForegroundGreen | ForegroundBlue,
}

// legacyRenderer translates control sequences into Console calls.
type legacyRenderer struct {
	console Console
	stats   *Stats

	// Attributes
	original Attribute
	attr     Attribute
	reverse  bool
	applied  Attribute

	saved    Position
	hasSaved bool
}

func newLegacyRenderer(c Console, stats *Stats) (*legacyRenderer, error) {
	info, err := c.ScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("read console info: %w", err)
	}
	return &legacyRenderer{
		console:  c,
		stats:    stats,
		original: info.Attributes,
		attr:     info.Attributes,
		applied:  info.Attributes,
	}, nil
}

func (r *legacyRenderer) Text(p []byte) error {
	_, err := r.console.Write(p)
	return err
}

func (r *legacyRenderer) Sequence(seq *ControlSequence) error {
	r.stats.Sequences++
	if seq.Private != 0 || len(seq.Intermediate) > 0 {
		r.stats.Unsupported++
		return nil
	}

	switch seq.Final {
	case 'A':
		return r.moveCursor(-seq.Param(0, 1), 0)
	case 'B':
		return r.moveCursor(seq.Param(0, 1), 0)
	case 'C':
		return r.moveCursor(0, seq.Param(0, 1))
	case 'D':
		return r.moveCursor(0, -seq.Param(0, 1))
	case 'E':
		return r.moveToLine(seq.Param(0, 1))
	case 'F':
		return r.moveToLine(-seq.Param(0, 1))
	case 'G':
		return r.gotoCol(seq.Param(0, 1) - 1)
	case 'H', 'f':
		return r.gotoPos(seq.Param(0, 1)-1, seq.Param(1, 1)-1)
	case 'J':
		return r.clearScreen(seq.Param(0, 0))
	case 'K':
		return r.clearLine(seq.Param(0, 0))
	case 'L':
		return r.insertLines(seq.Param(0, 1))
	case 'M':
		return r.deleteLines(seq.Param(0, 1))
	case 'S':
		return r.scrollUp(seq.Param(0, 1))
	case 'T':
		return r.scrollDown(seq.Param(0, 1))
	case 's':
		return r.saveCursor()
	case 'u':
		return r.restoreCursor()
	case 'm':
		return r.setGraphics(seq)
	default:
		r.stats.Unsupported++
		return nil
	}
}

// Close restores the attributes captured at creation.
func (r *legacyRenderer) Close() error {
	if r.applied == r.original {
		return nil
	}
	r.attr = r.original
	r.reverse = false
	return r.apply()
}

// --- Cursor ---

func (r *legacyRenderer) moveCursor(rows, cols int) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	return r.setCursor(info, info.Cursor.Row+rows, info.Cursor.Col+cols)
}

func (r *legacyRenderer) moveToLine(rows int) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	return r.setCursor(info, info.Cursor.Row+rows, 0)
}

func (r *legacyRenderer) gotoCol(col int) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	return r.setCursor(info, info.Cursor.Row, info.Window.Left+col)
}

// gotoPos moves to (row, col) relative to the visible window.
func (r *legacyRenderer) gotoPos(row, col int) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	return r.setCursor(info, info.Window.Top+row, info.Window.Left+col)
}

func (r *legacyRenderer) setCursor(info ScreenInfo, row, col int) error {
	pos := Position{Row: row, Col: col}
	return r.console.SetCursorPosition(pos.Clamp(info.Size))
}

func (r *legacyRenderer) saveCursor() error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	r.saved = info.Cursor
	r.hasSaved = true
	return nil
}

func (r *legacyRenderer) restoreCursor() error {
	if !r.hasSaved {
		return nil
	}
	return r.console.SetCursorPosition(r.saved)
}

// --- Erase ---

// clearScreen handles ED: 0 cursor to end, 1 start to cursor, 2 whole window.
func (r *legacyRenderer) clearScreen(mode int) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	width := info.Size.Col
	top := Position{Row: info.Window.Top, Col: 0}

	switch mode {
	case 0:
		n := (info.Window.Bottom-info.Cursor.Row)*width + (width - info.Cursor.Col)
		return r.fill(info.Cursor, n, info.Attributes)
	case 1:
		n := (info.Cursor.Row-info.Window.Top)*width + info.Cursor.Col + 1
		return r.fill(top, n, info.Attributes)
	case 2:
		n := (info.Window.Bottom - info.Window.Top + 1) * width
		return r.fill(top, n, info.Attributes)
	default:
		r.stats.Unsupported++
		return nil
	}
}

// clearLine handles EL: 0 cursor to end, 1 start to cursor, 2 whole line.
func (r *legacyRenderer) clearLine(mode int) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	lineStart := Position{Row: info.Cursor.Row, Col: 0}

	switch mode {
	case 0:
		return r.fill(info.Cursor, info.Size.Col-info.Cursor.Col, info.Attributes)
	case 1:
		return r.fill(lineStart, info.Cursor.Col+1, info.Attributes)
	case 2:
		return r.fill(lineStart, info.Size.Col, info.Attributes)
	default:
		r.stats.Unsupported++
		return nil
	}
}

func (r *legacyRenderer) fill(pos Position, n int, attr Attribute) error {
	if n <= 0 {
		return nil
	}
	if err := r.console.FillAttribute(attr, n, pos); err != nil {
		return err
	}
	return r.console.FillCharacter(' ', n, pos)
}

// --- Lines ---

func (r *legacyRenderer) insertLines(n int) error {
	return r.shiftLines(n, true)
}

func (r *legacyRenderer) deleteLines(n int) error {
	return r.shiftLines(-n, true)
}

func (r *legacyRenderer) scrollUp(n int) error {
	return r.shiftLines(-n, false)
}

func (r *legacyRenderer) scrollDown(n int) error {
	return r.shiftLines(n, false)
}

// shiftLines moves a band of whole lines by n rows (negative is up). The band
// starts at the cursor row or at the window top and ends at the window bottom.
func (r *legacyRenderer) shiftLines(n int, fromCursor bool) error {
	info, err := r.console.ScreenInfo()
	if err != nil {
		return err
	}
	top := info.Window.Top
	if fromCursor {
		top = info.Cursor.Row
	}
	height := info.Window.Bottom - top + 1
	if height <= 0 {
		return nil
	}
	n = clamp(n, -height, height)
	src := Rect{Top: top, Left: 0, Bottom: info.Window.Bottom, Right: info.Size.Col - 1}
	return r.console.ScrollRegion(src, Position{Row: top + n, Col: 0}, info.Attributes)
}

// --- Graphics ---

// setGraphics applies an SGR sequence with a single SetTextAttribute call.
func (r *legacyRenderer) setGraphics(seq *ControlSequence) error {
	if len(seq.Params) == 0 {
		r.resetAttributes()
		return r.apply()
	}

	for i := 0; i < len(seq.Params); i++ {
		p := seq.Param(i, 0)
		switch {
		case p == 0:
			r.resetAttributes()
		case p == 1:
			r.attr |= ForegroundIntensity
		case p == 22:
			r.attr &^= ForegroundIntensity
		case p == 4:
			r.attr |= Underscore
		case p == 24:
			r.attr &^= Underscore
		case p == 7:
			r.reverse = true
		case p == 27:
			r.reverse = false
		case p >= 30 && p <= 37:
			r.attr = r.attr&^(ForegroundMask&^ForegroundIntensity) | ansiToConsole[p-30]
		case p == 39:
			r.attr = r.attr&^ForegroundMask | r.original&ForegroundMask
		case p >= 40 && p <= 47:
			r.attr = r.attr&^(BackgroundMask&^BackgroundIntensity) | ansiToConsole[p-40]<<4
		case p == 49:
			r.attr = r.attr&^BackgroundMask | r.original&BackgroundMask
		case p >= 90 && p <= 97:
			r.attr = r.attr&^ForegroundMask | ansiToConsole[p-90] | ForegroundIntensity
		case p >= 100 && p <= 107:
			r.attr = r.attr&^BackgroundMask | (ansiToConsole[p-100]|ForegroundIntensity)<<4
		case p == 38 || p == 48:
			color, used, ok := extendedColor(seq, i+1)
			if !ok {
				r.stats.Unsupported++
				return r.apply()
			}
			i += used
			if p == 38 {
				r.attr = r.attr&^ForegroundMask | color
			} else {
				r.attr = r.attr&^BackgroundMask | color<<4
			}
		default:
			r.stats.Unsupported++
		}
	}
	return r.apply()
}

func (r *legacyRenderer) resetAttributes() {
	r.attr = r.original
	r.reverse = false
}

// apply pushes the effective attribute to the console.
func (r *legacyRenderer) apply() error {
	attr := r.attr
	if r.reverse {
		attr = attr&0xff00 | (attr&0x000f)<<4 | (attr&0x00f0)>>4
	}
	r.applied = attr
	return r.console.SetTextAttribute(attr)
}

// extendedColor parses "5;n" or "2;r;g;b" starting at params[i]. It returns
// the foreground-aligned console color and the number of params consumed.
func extendedColor(seq *ControlSequence, i int) (Attribute, int, bool) {
	switch seq.Param(i, -1) {
	case 5:
		n := seq.Param(i+1, -1)
		if n < 0 || n > 255 {
			return 0, 0, false
		}
		if n < 16 {
			return consoleColor(n), 2, true
		}
		c := DefaultPalette[n]
		return consoleColor(nearestNamedColor(c.R, c.G, c.B)), 2, true
	case 2:
		red, green, blue := seq.Param(i+1, -1), seq.Param(i+2, -1), seq.Param(i+3, -1)
		if red < 0 || green < 0 || blue < 0 || red > 255 || green > 255 || blue > 255 {
			return 0, 0, false
		}
		return consoleColor(nearestNamedColor(uint8(red), uint8(green), uint8(blue))), 4, true
	default:
		return 0, 0, false
	}
}

// consoleColor converts an ANSI color index (0-15) to console foreground bits.
func consoleColor(index int) Attribute {
	attr := ansiToConsole[index%8]
	if index >= 8 {
		attr |= ForegroundIntensity
	}
	return attr
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
