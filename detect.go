package ansiconsole

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Capabilities describes what a single output stream is attached to.
type Capabilities struct {
	// TTY is true when the stream is an interactive terminal (Cygwin/MSYS ptys included).
	TTY bool
	// Cygwin is true for Cygwin/MSYS pseudo terminals, which understand ANSI on Windows.
	Cygwin bool
	// VirtualTerminal is true when the console already processes ANSI sequences.
	// Always true outside Windows.
	VirtualTerminal bool
}

// Detect selects the TerminalMode for a stream. Overrides win in the order
// strip, force, pass-through; then non-terminals pass bytes through untouched,
// legacy consoles get translation, and everything else is native ANSI.
func Detect(cfg Config, caps Capabilities) TerminalMode {
	legacy := caps.TTY && isLegacyConsole(cfg.osFamily(), caps)

	switch {
	case cfg.Strip:
		return StripOnly
	case cfg.Force:
		if legacy {
			return LegacyTranslated
		}
		return NativeANSI
	case cfg.PassThrough:
		return NativeANSI
	case !caps.TTY:
		return PassThroughDisabled
	case legacy:
		return LegacyTranslated
	default:
		return NativeANSI
	}
}

// isLegacyConsole reports whether the OS family has a console without native ANSI support.
func isLegacyConsole(osFamily string, caps Capabilities) bool {
	return osFamily == "windows" && !caps.Cygwin && !caps.VirtualTerminal
}

// ProbeCapabilities inspects f. A nil file has no capabilities.
func ProbeCapabilities(f *os.File, cfg Config) Capabilities {
	if f == nil {
		return Capabilities{VirtualTerminal: true}
	}

	fd := f.Fd()
	cygwin := isatty.IsCygwinTerminal(fd)
	caps := Capabilities{
		TTY:             term.IsTerminal(int(fd)) || cygwin,
		Cygwin:          cygwin,
		VirtualTerminal: true,
	}

	if cfg.osFamily() == "windows" {
		caps.Cygwin = caps.Cygwin || msysShell()
		if caps.TTY && !caps.Cygwin {
			caps.VirtualTerminal = virtualTerminalEnabled(f)
		}
	}
	return caps
}

// DetectFile probes f and applies Detect.
func DetectFile(f *os.File, cfg Config) TerminalMode {
	return Detect(cfg, ProbeCapabilities(f, cfg))
}

// msysShell reports whether the process runs under an MSYS2/MinGW shell.
func msysShell() bool {
	msystem := os.Getenv("MSYSTEM")
	return strings.HasPrefix(msystem, "MINGW") || strings.HasPrefix(msystem, "MSYS") ||
		strings.HasPrefix(msystem, "UCRT") || strings.HasPrefix(msystem, "CLANG")
}
