package ansiconsole

// CellFlags is a bitmask of cell layout and tracking flags.
type CellFlags uint8

const (
	CellFlagWideChar CellFlags = 1 << iota
	CellFlagWideCharSpacer
	CellFlagDirty
)

// Cell stores the character and console attribute for one grid position.
// Wide characters (2 columns) use a spacer cell in the second position.
type Cell struct {
	Char  rune
	Attr  Attribute
	Flags CellFlags
}

// NewCell creates a blank cell with the given attribute.
func NewCell(attr Attribute) Cell {
	return Cell{
		Char: ' ',
		Attr: attr,
	}
}

// Reset blanks the cell with the given attribute.
func (c *Cell) Reset(attr Attribute) {
	c.Char = ' '
	c.Attr = attr
	c.Flags = 0
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsDirty returns true if the cell was modified since the last ClearDirty call.
func (c *Cell) IsDirty() bool {
	return c.HasFlag(CellFlagDirty)
}

// MarkDirty marks the cell as modified for dirty tracking.
func (c *Cell) MarkDirty() {
	c.SetFlag(CellFlagDirty)
}

// ClearDirty resets the dirty tracking flag.
func (c *Cell) ClearDirty() {
	c.ClearFlag(CellFlagDirty)
}

// IsWide returns true if this cell contains a wide character (CJK, emoji, etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}
