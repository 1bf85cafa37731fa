package ansiconsole

// consoleColorNames names the 16 console colors in console bit order.
var consoleColorNames = [16]string{
	"black", "blue", "green", "cyan", "red", "magenta", "yellow", "white",
	"bright-black", "bright-blue", "bright-green", "bright-cyan",
	"bright-red", "bright-magenta", "bright-yellow", "bright-white",
}

// Snapshot represents a complete capture of a ScreenConsole.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds screen dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
}

// SnapshotSegment is a run of cells sharing one attribute.
type SnapshotSegment struct {
	Text      string `json:"text"`
	Fg        string `json:"fg"`
	Bg        string `json:"bg"`
	Underline bool   `json:"underline,omitempty"`
	Reverse   bool   `json:"reverse,omitempty"`
}

// Snapshot captures the screen text and attribute runs.
// Trailing blank cells of each line are not included in segments.
func (s *ScreenConsole) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, cols := s.buffer.Rows(), s.buffer.Cols()
	snap := &Snapshot{
		Size:   SnapshotSize{Rows: rows, Cols: cols},
		Cursor: SnapshotCursor{Row: s.cursor.Row, Col: s.cursor.Col},
		Lines:  make([]SnapshotLine, rows),
	}

	for row := 0; row < rows; row++ {
		text := s.buffer.LineContent(row)
		line := SnapshotLine{Text: text}

		last := -1
		for col := cols - 1; col >= 0; col-- {
			cell := s.buffer.Cell(row, col)
			if cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
				last = col
				break
			}
		}

		var seg *SnapshotSegment
		var segAttr Attribute
		for col := 0; col <= last; col++ {
			cell := s.buffer.Cell(row, col)
			if cell.IsWideSpacer() {
				continue
			}
			if seg == nil || cell.Attr != segAttr {
				line.Segments = append(line.Segments, newSegment(cell.Attr))
				seg = &line.Segments[len(line.Segments)-1]
				segAttr = cell.Attr
			}
			if cell.Char == 0 {
				seg.Text += " "
			} else {
				seg.Text += string(cell.Char)
			}
		}
		snap.Lines[row] = line
	}

	return snap
}

func newSegment(attr Attribute) SnapshotSegment {
	return SnapshotSegment{
		Fg:        consoleColorNames[attr.Foreground()],
		Bg:        consoleColorNames[attr.Background()],
		Underline: attr.HasFlag(Underscore),
		Reverse:   attr.HasFlag(ReverseVideo),
	}
}
