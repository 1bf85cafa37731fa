package ansiconsole

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Writer is an output stream that interprets ANSI escape sequences according to its TerminalMode.
// One lock spans each call, so a single Write is never interleaved with another.
type Writer struct {
	mu sync.Mutex

	dst      io.Writer
	mode     TerminalMode
	console  Console
	scanner  *Scanner
	renderer Renderer
	stats    Stats
	logger   *slog.Logger
	closed   bool
}

// WriterOption configures a Writer during construction.
type WriterOption func(*Writer)

// WithConsole sets the native console used by LegacyTranslated mode.
func WithConsole(c Console) WriterOption {
	return func(w *Writer) {
		w.console = c
	}
}

// WithWriterLogger sets the logger for diagnostics. Defaults to a discarding logger.
func WithWriterLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter wraps dst. LegacyTranslated requires WithConsole and fails with
// ErrNoConsole otherwise.
func NewWriter(dst io.Writer, mode TerminalMode, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dst:    dst,
		mode:   mode,
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if mode.scans() {
		r, err := newRenderer(mode, dst, w.console, &w.stats)
		if err != nil {
			return nil, err
		}
		w.renderer = r
		w.scanner = NewScanner(r)
	}

	w.logger.Debug("ansiconsole writer created", "mode", mode.String())
	return w, nil
}

// Mode returns the mode chosen at construction.
func (w *Writer) Mode() TerminalMode {
	return w.mode
}

// Write processes p. Errors from the destination are returned unchanged.
// Implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, os.ErrClosed
	}
	if w.scanner == nil {
		return w.dst.Write(p)
	}
	return w.scanner.Write(p)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush emits any incomplete escape sequence as plain text.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.scanner == nil {
		return nil
	}
	return w.scanner.Flush()
}

// Close flushes incomplete sequences and restores default attributes.
// The destination is not closed. Calling Close twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.scanner == nil {
		return nil
	}

	flushErr := w.scanner.Flush()
	closeErr := w.renderer.Close()
	return errors.Join(flushErr, closeErr)
}

// Stats returns the counters accumulated so far.
func (w *Writer) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.stats
	if w.scanner != nil {
		s.Malformed = w.scanner.Malformed()
	}
	return s
}

// discardLogger returns a logger that drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
