//go:build !windows

package ansiconsole

import "os"

// OpenConsole returns ErrNoConsole: only Windows has a legacy console API.
func OpenConsole(f *os.File) (Console, error) {
	return nil, ErrNoConsole
}

// virtualTerminalEnabled is always true; terminals outside Windows speak ANSI.
func virtualTerminalEnabled(f *os.File) bool {
	return true
}
