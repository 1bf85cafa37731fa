//go:build windows

package ansiconsole

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                        = windows.NewLazySystemDLL("kernel32.dll")
	procSetConsoleTextAttribute     = kernel32.NewProc("SetConsoleTextAttribute")
	procFillConsoleOutputCharacterW = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute  = kernel32.NewProc("FillConsoleOutputAttribute")
	procScrollConsoleScreenBufferW  = kernel32.NewProc("ScrollConsoleScreenBufferW")
)

// charInfo mirrors CHAR_INFO.
type charInfo struct {
	char uint16
	attr uint16
}

// windowsConsole drives a console screen buffer through kernel32.
type windowsConsole struct {
	file   *os.File
	handle windows.Handle
}

// OpenConsole returns the console screen buffer behind f.
// It fails with ErrNoConsole when f is redirected.
func OpenConsole(f *os.File) (Console, error) {
	h := windows.Handle(f.Fd())
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConsole, err)
	}
	return &windowsConsole{file: f, handle: h}, nil
}

// Write goes through os.File, which converts UTF-8 to UTF-16 for console handles.
func (c *windowsConsole) Write(p []byte) (int, error) {
	return c.file.Write(p)
}

func (c *windowsConsole) ScreenInfo() (ScreenInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.handle, &info); err != nil {
		return ScreenInfo{}, err
	}
	return ScreenInfo{
		Size:       Position{Row: int(info.Size.Y), Col: int(info.Size.X)},
		Cursor:     Position{Row: int(info.CursorPosition.Y), Col: int(info.CursorPosition.X)},
		Attributes: Attribute(info.Attributes),
		Window: Rect{
			Top:    int(info.Window.Top),
			Left:   int(info.Window.Left),
			Bottom: int(info.Window.Bottom),
			Right:  int(info.Window.Right),
		},
	}, nil
}

func (c *windowsConsole) SetCursorPosition(pos Position) error {
	return windows.SetConsoleCursorPosition(c.handle, coord(pos))
}

func (c *windowsConsole) SetTextAttribute(attr Attribute) error {
	r1, _, e1 := procSetConsoleTextAttribute.Call(uintptr(c.handle), uintptr(attr))
	if r1 == 0 {
		return e1
	}
	return nil
}

func (c *windowsConsole) FillCharacter(r rune, n int, pos Position) error {
	var written uint32
	r1, _, e1 := procFillConsoleOutputCharacterW.Call(
		uintptr(c.handle),
		uintptr(uint16(r)),
		uintptr(uint32(n)),
		packCoord(coord(pos)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return e1
	}
	return nil
}

func (c *windowsConsole) FillAttribute(attr Attribute, n int, pos Position) error {
	var written uint32
	r1, _, e1 := procFillConsoleOutputAttribute.Call(
		uintptr(c.handle),
		uintptr(attr),
		uintptr(uint32(n)),
		packCoord(coord(pos)),
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return e1
	}
	return nil
}

func (c *windowsConsole) ScrollRegion(src Rect, dst Position, fill Attribute) error {
	scroll := windows.SmallRect{
		Left:   int16(src.Left),
		Top:    int16(src.Top),
		Right:  int16(src.Right),
		Bottom: int16(src.Bottom),
	}
	ci := charInfo{char: ' ', attr: uint16(fill)}
	r1, _, e1 := procScrollConsoleScreenBufferW.Call(
		uintptr(c.handle),
		uintptr(unsafe.Pointer(&scroll)),
		uintptr(unsafe.Pointer(&scroll)),
		packCoord(coord(dst)),
		uintptr(unsafe.Pointer(&ci)),
	)
	if r1 == 0 {
		return e1
	}
	return nil
}

func coord(pos Position) windows.Coord {
	return windows.Coord{X: int16(pos.Col), Y: int16(pos.Row)}
}

// packCoord passes a COORD by value the way kernel32 expects it.
func packCoord(c windows.Coord) uintptr {
	return uintptr(*(*uint32)(unsafe.Pointer(&c)))
}

// virtualTerminalEnabled reports whether the console already interprets ANSI.
func virtualTerminalEnabled(f *os.File) bool {
	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(f.Fd()), &mode); err != nil {
		return false
	}
	return mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}
