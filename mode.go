package ansiconsole

// TerminalMode selects how a wrapped stream treats escape sequences.
// It is chosen once when a stream is wrapped and never changes afterwards.
type TerminalMode int

const (
	// NativeANSI forwards sequences unchanged; the terminal interprets them.
	NativeANSI TerminalMode = iota
	// LegacyTranslated converts sequences into native console calls.
	LegacyTranslated
	// PassThroughDisabled bypasses scanning: every byte, ESC included, is written as is.
	PassThroughDisabled
	// StripOnly removes well-formed sequences and keeps plain text.
	StripOnly
)

// String returns the mode name.
func (m TerminalMode) String() string {
	switch m {
	case NativeANSI:
		return "native-ansi"
	case LegacyTranslated:
		return "legacy-translated"
	case PassThroughDisabled:
		return "pass-through-disabled"
	case StripOnly:
		return "strip-only"
	default:
		return "unknown"
	}
}

// scans reports whether bytes must go through the Scanner in this mode.
func (m TerminalMode) scans() bool {
	return m != PassThroughDisabled
}
