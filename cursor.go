package ansiconsole

// Position identifies a cell location in the console grid (0-based).
type Position struct {
	Row int
	Col int
}

// Clamp limits the position to a grid of the given size (Row = rows, Col = columns).
func (p Position) Clamp(size Position) Position {
	return Position{
		Row: clamp(p.Row, 0, size.Row-1),
		Col: clamp(p.Col, 0, size.Col-1),
	}
}
