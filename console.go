package ansiconsole

import (
	"errors"
	"io"
	"os"
)

// ErrNoConsole is returned when a stream has no native console behind it.
var ErrNoConsole = errors.New("ansiconsole: no native console")

// Attribute is a legacy console character attribute word.
// Bit layout matches the Windows console (FOREGROUND_*, BACKGROUND_*, COMMON_LVB_*).
type Attribute uint16

const (
	ForegroundBlue      Attribute = 0x0001
	ForegroundGreen     Attribute = 0x0002
	ForegroundRed       Attribute = 0x0004
	ForegroundIntensity Attribute = 0x0008
	BackgroundBlue      Attribute = 0x0010
	BackgroundGreen     Attribute = 0x0020
	BackgroundRed       Attribute = 0x0040
	BackgroundIntensity Attribute = 0x0080
	ReverseVideo        Attribute = 0x4000
	Underscore          Attribute = 0x8000

	// ForegroundMask selects the four foreground bits.
	ForegroundMask = ForegroundBlue | ForegroundGreen | ForegroundRed | ForegroundIntensity
	// BackgroundMask selects the four background bits.
	BackgroundMask = BackgroundBlue | BackgroundGreen | BackgroundRed | BackgroundIntensity

	// DefaultAttribute is light gray on black.
	DefaultAttribute = ForegroundRed | ForegroundGreen | ForegroundBlue
)

// Foreground returns the 16-color foreground index (0-15) in console bit order.
func (a Attribute) Foreground() int {
	return int(a & ForegroundMask)
}

// Background returns the 16-color background index (0-15) in console bit order.
func (a Attribute) Background() int {
	return int(a&BackgroundMask) >> 4
}

// HasFlag returns true if every bit of flag is set.
func (a Attribute) HasFlag(flag Attribute) bool {
	return a&flag == flag
}

// Rect is an inclusive rectangle of screen cells.
type Rect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// ScreenInfo describes the console screen buffer.
type ScreenInfo struct {
	// Size is the buffer size (Row = rows, Col = columns).
	Size Position
	// Cursor is the current cursor position.
	Cursor Position
	// Attributes are the attributes applied to newly written text.
	Attributes Attribute
	// Window is the visible part of the buffer.
	Window Rect
}

// Console is the native control API of a legacy console.
// Writes place text at the cursor using the current attributes.
type Console interface {
	io.Writer

	// ScreenInfo returns the buffer size, cursor and attributes.
	ScreenInfo() (ScreenInfo, error)
	// SetCursorPosition moves the cursor. Coordinates are buffer coordinates.
	SetCursorPosition(pos Position) error
	// SetTextAttribute sets the attributes for subsequent writes.
	SetTextAttribute(attr Attribute) error
	// FillCharacter writes r into n cells starting at pos, wrapping across rows.
	FillCharacter(r rune, n int, pos Position) error
	// FillAttribute sets the attributes of n cells starting at pos.
	FillAttribute(attr Attribute, n int, pos Position) error
	// ScrollRegion moves the cells in src so its top-left lands on dst.
	// src also clips the move; uncovered cells of src are cleared with fill.
	ScrollRegion(src Rect, dst Position, fill Attribute) error
}

// ConsoleOpener returns the native console behind f, or ErrNoConsole.
type ConsoleOpener func(f *os.File) (Console, error)
