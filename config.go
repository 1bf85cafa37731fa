package ansiconsole

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Environment variables read by LoadConfig.
const (
	EnvForce       = "ANSICONSOLE_FORCE"
	EnvStrip       = "ANSICONSOLE_STRIP"
	EnvPassThrough = "ANSICONSOLE_PASSTHROUGH"
	EnvOS          = "ANSICONSOLE_OS"
	EnvNoColor     = "NO_COLOR"
)

// Config holds the process-wide overrides consumed by Detect.
// The zero value means "no overrides, current OS".
type Config struct {
	// Force renders ANSI even when the stream is not a terminal.
	Force bool
	// Strip removes every escape sequence regardless of the stream type.
	Strip bool
	// PassThrough asserts the terminal understands ANSI natively.
	PassThrough bool
	// OS is the operating system family (runtime.GOOS values). Empty means runtime.GOOS.
	OS string
}

// LoadConfig reads the overrides from the environment.
// Unparseable boolean values count as false. NO_COLOR (any value) implies Strip.
func LoadConfig() Config {
	cfg := Config{
		Force:       envBool(EnvForce),
		Strip:       envBool(EnvStrip),
		PassThrough: envBool(EnvPassThrough),
		OS:          strings.ToLower(strings.TrimSpace(os.Getenv(EnvOS))),
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Strip = true
	}
	return cfg
}

// osFamily returns the configured OS family, defaulting to runtime.GOOS.
func (c Config) osFamily() string {
	if c.OS == "" {
		return runtime.GOOS
	}
	return c.OS
}

func envBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return b
}
