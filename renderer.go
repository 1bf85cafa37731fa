package ansiconsole

import (
	"bytes"
	"errors"
	"io"
)

// resetSequence restores default attributes on an ANSI terminal.
var resetSequence = []byte("\x1b[0m")

// Stats counts what a Writer has seen.
type Stats struct {
	// Sequences is the number of complete control sequences.
	Sequences uint64
	// Unsupported is the number of sequences (or SGR parameters) that were dropped.
	Unsupported uint64
	// Malformed is the number of aborted sequences emitted as plain text.
	Malformed uint64
}

// Renderer performs the action for each piece of scanned output.
// There is one variant per TerminalMode that scans.
type Renderer interface {
	SequenceHandler
	// Close releases renderer state and restores default attributes if needed.
	Close() error
}

// newRenderer builds the renderer for mode. LegacyTranslated needs a console.
func newRenderer(mode TerminalMode, dst io.Writer, console Console, stats *Stats) (Renderer, error) {
	switch mode {
	case NativeANSI:
		return &ansiRenderer{dst: dst, stats: stats}, nil
	case StripOnly:
		return &stripRenderer{dst: dst, stats: stats}, nil
	case LegacyTranslated:
		if console == nil {
			return nil, ErrNoConsole
		}
		return newLegacyRenderer(console, stats)
	default:
		return nil, errors.New("ansiconsole: mode " + mode.String() + " has no renderer")
	}
}

// ansiRenderer re-emits sequences verbatim and tracks whether SGR state is dirty.
type ansiRenderer struct {
	dst   io.Writer
	stats *Stats
	dirty bool
}

func (r *ansiRenderer) Text(p []byte) error {
	_, err := r.dst.Write(p)
	return err
}

func (r *ansiRenderer) Sequence(seq *ControlSequence) error {
	r.stats.Sequences++
	if seq.Final == 'm' && seq.Private == 0 && len(seq.Intermediate) == 0 {
		r.dirty = !resetsAttributes(seq)
	}
	_, err := r.dst.Write(seq.Raw)
	return err
}

// Close emits a reset when the last SGR left attributes set.
func (r *ansiRenderer) Close() error {
	if !r.dirty {
		return nil
	}
	r.dirty = false
	_, err := r.dst.Write(resetSequence)
	return err
}

// resetsAttributes reports whether an SGR sequence ends in the default state.
// Sub-parameters of extended colors are not resets.
func resetsAttributes(seq *ControlSequence) bool {
	reset := true
	for i := 0; i < len(seq.Params); i++ {
		switch seq.Param(i, 0) {
		case 0:
			reset = true
		case 38, 48:
			reset = false
			switch seq.Param(i+1, -1) {
			case 5:
				i += 2
			case 2:
				i += 4
			}
		default:
			reset = false
		}
	}
	return reset
}

// stripRenderer drops every sequence and every stray ESC byte.
type stripRenderer struct {
	dst   io.Writer
	stats *Stats
}

func (r *stripRenderer) Text(p []byte) error {
	if bytes.IndexByte(p, esc) < 0 {
		_, err := r.dst.Write(p)
		return err
	}
	clean := make([]byte, 0, len(p))
	for _, b := range p {
		if b != esc {
			clean = append(clean, b)
		}
	}
	if len(clean) == 0 {
		return nil
	}
	_, err := r.dst.Write(clean)
	return err
}

func (r *stripRenderer) Sequence(seq *ControlSequence) error {
	r.stats.Sequences++
	return nil
}

func (r *stripRenderer) Close() error {
	return nil
}
