package ansiconsole

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tty := Capabilities{TTY: true, VirtualTerminal: true}
	legacyTTY := Capabilities{TTY: true}
	cygwinTTY := Capabilities{TTY: true, Cygwin: true}
	pipe := Capabilities{VirtualTerminal: true}

	tests := []struct {
		name     string
		cfg      Config
		caps     Capabilities
		expected TerminalMode
	}{
		{"unix tty", Config{OS: "linux"}, tty, NativeANSI},
		{"unix pipe", Config{OS: "linux"}, pipe, PassThroughDisabled},
		{"windows vt console", Config{OS: "windows"}, tty, NativeANSI},
		{"windows legacy console", Config{OS: "windows"}, legacyTTY, LegacyTranslated},
		{"windows cygwin", Config{OS: "windows"}, cygwinTTY, NativeANSI},
		{"windows pipe", Config{OS: "windows"}, Capabilities{}, PassThroughDisabled},
		{"legacy caps off windows", Config{OS: "darwin"}, legacyTTY, NativeANSI},
		{"strip wins over everything", Config{Strip: true, Force: true, PassThrough: true}, tty, StripOnly},
		{"strip on pipe", Config{Strip: true}, pipe, StripOnly},
		{"force on pipe", Config{Force: true, OS: "linux"}, pipe, NativeANSI},
		{"force on legacy console", Config{Force: true, OS: "windows"}, legacyTTY, LegacyTranslated},
		{"force on windows pipe", Config{Force: true, OS: "windows"}, Capabilities{}, NativeANSI},
		{"passthrough on pipe", Config{PassThrough: true, OS: "linux"}, pipe, NativeANSI},
		{"passthrough on legacy console", Config{PassThrough: true, OS: "windows"}, legacyTTY, NativeANSI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.cfg, tt.caps)
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestProbeCapabilitiesNil(t *testing.T) {
	caps := ProbeCapabilities(nil, Config{})

	if caps.TTY {
		t.Error("expected nil file not to be a TTY")
	}
	if !caps.VirtualTerminal {
		t.Error("expected nil file to report virtual terminal")
	}
}

func TestProbeCapabilitiesRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer f.Close()

	caps := ProbeCapabilities(f, Config{OS: "linux"})
	if caps.TTY {
		t.Error("expected regular file not to be a TTY")
	}

	if mode := DetectFile(f, Config{OS: "linux"}); mode != PassThroughDisabled {
		t.Errorf("expected %s, got %s", PassThroughDisabled, mode)
	}
	if mode := DetectFile(f, Config{Force: true, OS: "linux"}); mode != NativeANSI {
		t.Errorf("expected %s, got %s", NativeANSI, mode)
	}
}

func TestMsysShell(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"MINGW64", true},
		{"MSYS", true},
		{"UCRT64", true},
		{"CLANG64", true},
		{"", false},
		{"cmd", false},
	}

	for _, tt := range tests {
		t.Setenv("MSYSTEM", tt.value)
		if got := msysShell(); got != tt.expected {
			t.Errorf("msysShell() with MSYSTEM=%q = %v, want %v", tt.value, got, tt.expected)
		}
	}
}

func TestTerminalModeString(t *testing.T) {
	tests := []struct {
		mode     TerminalMode
		expected string
	}{
		{NativeANSI, "native-ansi"},
		{LegacyTranslated, "legacy-translated"},
		{PassThroughDisabled, "pass-through-disabled"},
		{StripOnly, "strip-only"},
		{TerminalMode(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
