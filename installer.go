package ansiconsole

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Target is a process-wide stream slot that an Installer can wrap.
type Target struct {
	Name  string
	Load  func() *os.File
	Store func(*os.File)
}

var (
	// StdoutTarget binds os.Stdout.
	StdoutTarget = Target{
		Name:  "stdout",
		Load:  func() *os.File { return os.Stdout },
		Store: func(f *os.File) { os.Stdout = f },
	}
	// StderrTarget binds os.Stderr.
	StderrTarget = Target{
		Name:  "stderr",
		Load:  func() *os.File { return os.Stderr },
		Store: func(f *os.File) { os.Stderr = f },
	}
)

// Detector selects the mode for a captured stream.
type Detector func(f *os.File, cfg Config) TerminalMode

// Installer wraps the standard streams with reference counting.
// The first Install of a stream wraps it, the matching last Uninstall
// restores the original file. All methods are safe for concurrent use.
//
// While installed, the os.Stdout and os.Stderr slots hold pipes drained by
// one goroutine per stream. Output from each slot keeps its order, but
// writes alternating between the two slots may reach the terminal in a
// different order than they were made, and a destination failure only
// surfaces from Uninstall and from later writes to the slot. Writes through
// Stdout and Stderr are synchronous and report errors directly.
type Installer struct {
	mu sync.Mutex

	cfg         Config
	logger      *slog.Logger
	detect      Detector
	openConsole ConsoleOpener

	stdout *stream
	stderr *stream
}

// stream is the installation state of one target.
type stream struct {
	target Target
	count  int

	// Valid while count > 0
	original *os.File
	writer   *Writer
	pipeW    *os.File
	done     chan error

	captures int
	restores int
}

// InstallerOption configures an Installer during construction.
type InstallerOption func(*Installer)

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(cfg Config) InstallerOption {
	return func(i *Installer) {
		i.cfg = cfg
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) InstallerOption {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithTargets replaces the stdout and stderr slots.
func WithTargets(stdout, stderr Target) InstallerOption {
	return func(i *Installer) {
		i.stdout = &stream{target: stdout}
		i.stderr = &stream{target: stderr}
	}
}

// WithDetector replaces DetectFile.
func WithDetector(d Detector) InstallerOption {
	return func(i *Installer) {
		i.detect = d
	}
}

// WithConsoleOpener replaces OpenConsole for LegacyTranslated streams.
func WithConsoleOpener(o ConsoleOpener) InstallerOption {
	return func(i *Installer) {
		i.openConsole = o
	}
}

// NewInstaller creates an installer for os.Stdout and os.Stderr configured from the environment.
func NewInstaller(opts ...InstallerOption) *Installer {
	i := &Installer{
		cfg:         LoadConfig(),
		logger:      discardLogger(),
		detect:      DetectFile,
		openConsole: OpenConsole,
		stdout:      &stream{target: StdoutTarget},
		stderr:      &stream{target: StderrTarget},
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Install increments the count of both streams, wrapping each on its first install.
// A stream that cannot be wrapped keeps its count and is reported in the error.
func (i *Installer) Install() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	var errs []error
	for _, s := range i.streams() {
		if s.count == 0 {
			if err := i.wrap(s); err != nil {
				errs = append(errs, fmt.Errorf("install %s: %w", s.target.Name, err))
				continue
			}
		}
		s.count++
	}
	return errors.Join(errs...)
}

// Uninstall decrements the count of both streams, restoring each when it reaches zero.
// Extra calls are no-ops. The returned error reports flush failures; the
// original streams are restored regardless.
func (i *Installer) Uninstall() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	var errs []error
	for _, s := range i.streams() {
		if s.count == 0 {
			continue
		}
		s.count--
		if s.count == 0 {
			if err := i.restore(s); err != nil {
				errs = append(errs, fmt.Errorf("uninstall %s: %w", s.target.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Stdout returns the adapter for stdout while installed, else the current os.Stdout slot.
// Writes through it report destination errors synchronously.
func (i *Installer) Stdout() io.Writer {
	return i.current(i.stdout)
}

// Stderr returns the adapter for stderr while installed, else the current os.Stderr slot.
func (i *Installer) Stderr() io.Writer {
	return i.current(i.stderr)
}

// Counts returns the install counts of stdout and stderr.
func (i *Installer) Counts() (stdout, stderr int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stdout.count, i.stderr.count
}

// Installed returns true if either stream is wrapped.
func (i *Installer) Installed() bool {
	stdout, stderr := i.Counts()
	return stdout > 0 || stderr > 0
}

// Mode returns the mode of the wrapped stdout, or false when stdout is not installed.
func (i *Installer) Mode() (TerminalMode, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stdout.writer == nil {
		return 0, false
	}
	return i.stdout.writer.Mode(), true
}

func (i *Installer) streams() []*stream {
	return []*stream{i.stdout, i.stderr}
}

func (i *Installer) current(s *stream) io.Writer {
	i.mu.Lock()
	defer i.mu.Unlock()
	if s.writer != nil {
		return s.writer
	}
	return s.target.Load()
}

// wrap captures the original file and substitutes a pipe drained into a Writer.
func (i *Installer) wrap(s *stream) error {
	original := s.target.Load()
	if original == nil {
		return errors.New("no stream to wrap")
	}

	mode := i.detect(original, i.cfg)
	opts := []WriterOption{WithWriterLogger(i.logger)}
	if mode == LegacyTranslated {
		console, err := i.openConsole(original)
		if err != nil {
			i.logger.Warn("native console unavailable, stripping escape sequences",
				"stream", s.target.Name, "error", err)
			mode = StripOnly
		} else {
			opts = append(opts, WithConsole(console))
		}
	}

	w, err := NewWriter(original, mode, opts...)
	if err != nil {
		return err
	}

	r, pw, err := os.Pipe()
	if err != nil {
		w.Close()
		return fmt.Errorf("create pipe: %w", err)
	}

	s.original = original
	s.writer = w
	s.pipeW = pw
	s.done = make(chan error, 1)
	s.captures++
	s.target.Store(pw)

	go pump(r, w, s.done, i.logger.With("stream", s.target.Name))

	i.logger.Debug("stream wrapped", "stream", s.target.Name, "mode", mode.String())
	return nil
}

// restore puts the original file back and drains the pipe into the Writer.
func (i *Installer) restore(s *stream) error {
	s.target.Store(s.original)

	var errs []error
	if err := s.pipeW.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := <-s.done; err != nil {
		errs = append(errs, err)
	}
	if err := s.writer.Close(); err != nil {
		errs = append(errs, err)
	}

	s.original = nil
	s.writer = nil
	s.pipeW = nil
	s.done = nil
	s.restores++

	i.logger.Debug("stream restored", "stream", s.target.Name)
	return errors.Join(errs...)
}

// pump copies the pipe into the Writer until the write end closes and
// reports the first destination error on done. After a destination error
// the read end is closed, so later writes to the slot fail.
func pump(r io.ReadCloser, w *Writer, done chan<- error, logger *slog.Logger) {
	var werr error
	defer func() {
		r.Close()
		done <- werr
	}()

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr = w.Write(buf[:n]); werr != nil {
				logger.Warn("write to original stream failed", "error", werr)
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn("read from stream pipe failed", "error", err)
			}
			return
		}
	}
}

var (
	defaultOnce      sync.Once
	defaultInstaller *Installer
)

// Default returns the process-wide Installer, configured from the environment on first use.
func Default() *Installer {
	defaultOnce.Do(func() {
		defaultInstaller = NewInstaller()
	})
	return defaultInstaller
}

// Install wraps os.Stdout and os.Stderr using the process-wide Installer.
func Install() error {
	return Default().Install()
}

// Uninstall undoes one Install on the process-wide Installer.
func Uninstall() error {
	return Default().Uninstall()
}

// Stdout returns the process-wide stdout adapter, or os.Stdout when not installed.
func Stdout() io.Writer {
	return Default().Stdout()
}

// Stderr returns the process-wide stderr adapter, or os.Stderr when not installed.
func Stderr() io.Writer {
	return Default().Stderr()
}
