package ansiconsole

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// recorder collects scanner output as a readable event log.
type recorder struct {
	events []string
	text   bytes.Buffer
	seqs   []ControlSequence
	err    error
}

func (r *recorder) Text(p []byte) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, "text:"+string(p))
	r.text.Write(p)
	return nil
}

func (r *recorder) Sequence(seq *ControlSequence) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, "seq:"+seq.String())
	r.seqs = append(r.seqs, seq.Clone())
	return nil
}

func scanAll(t *testing.T, chunks ...string) *recorder {
	t.Helper()
	rec := &recorder{}
	s := NewScanner(rec)
	for _, c := range chunks {
		n, err := s.Write([]byte(c))
		if err != nil {
			t.Fatalf("Write(%q) failed: %v", c, err)
		}
		if n != len(c) {
			t.Fatalf("Write(%q) = %d, want %d", c, n, len(c))
		}
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	return rec
}

func TestScannerPlainText(t *testing.T) {
	rec := scanAll(t, "hello world\n")

	if rec.text.String() != "hello world\n" {
		t.Errorf("expected text unchanged, got %q", rec.text.String())
	}
	if len(rec.seqs) != 0 {
		t.Errorf("expected no sequences, got %d", len(rec.seqs))
	}
}

func TestScannerSequence(t *testing.T) {
	rec := scanAll(t, "a\x1b[1;31mb")

	expected := []string{"text:a", "seq:CSI 1;31 m", "text:b"}
	if strings.Join(rec.events, "|") != strings.Join(expected, "|") {
		t.Errorf("expected %v, got %v", expected, rec.events)
	}

	seq := rec.seqs[0]
	if seq.Final != 'm' {
		t.Errorf("expected final 'm', got '%c'", seq.Final)
	}
	if len(seq.Params) != 2 || seq.Params[0] != 1 || seq.Params[1] != 31 {
		t.Errorf("expected params [1 31], got %v", seq.Params)
	}
	if string(seq.Raw) != "\x1b[1;31m" {
		t.Errorf("expected raw bytes preserved, got %q", seq.Raw)
	}
}

func TestScannerNoParams(t *testing.T) {
	rec := scanAll(t, "\x1b[m")

	if len(rec.seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(rec.seqs))
	}
	if len(rec.seqs[0].Params) != 0 {
		t.Errorf("expected no params, got %v", rec.seqs[0].Params)
	}
	if rec.seqs[0].Param(0, 7) != 7 {
		t.Errorf("expected default for missing param, got %d", rec.seqs[0].Param(0, 7))
	}
}

func TestScannerOmittedParams(t *testing.T) {
	rec := scanAll(t, "\x1b[;5H")

	seq := rec.seqs[0]
	if len(seq.Params) != 2 || seq.Params[0] != -1 || seq.Params[1] != 5 {
		t.Fatalf("expected params [-1 5], got %v", seq.Params)
	}
	if seq.Param(0, 1) != 1 {
		t.Errorf("expected omitted param to use default, got %d", seq.Param(0, 1))
	}
}

func TestScannerSplitWrites(t *testing.T) {
	input := "x\x1b[38;5;196mred\x1b[0m"

	whole := scanAll(t, input)

	chunks := make([]string, 0, len(input))
	for i := 0; i < len(input); i++ {
		chunks = append(chunks, input[i:i+1])
	}
	split := scanAll(t, chunks...)

	if split.text.String() != whole.text.String() {
		t.Errorf("expected text %q, got %q", whole.text.String(), split.text.String())
	}
	if len(split.seqs) != len(whole.seqs) {
		t.Fatalf("expected %d sequences, got %d", len(whole.seqs), len(split.seqs))
	}
	for i := range whole.seqs {
		if split.seqs[i].String() != whole.seqs[i].String() {
			t.Errorf("sequence %d: expected %s, got %s", i, whole.seqs[i].String(), split.seqs[i].String())
		}
	}
}

func TestScannerMalformed(t *testing.T) {
	rec := &recorder{}
	s := NewScanner(rec)

	s.Write([]byte("a\x1b[12xb"))

	// 'x' is a final byte, so "12x" is a complete sequence
	if len(rec.seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(rec.seqs))
	}

	rec = &recorder{}
	s = NewScanner(rec)
	s.Write([]byte("a\x1b[12\x07b"))

	if rec.text.String() != "a\x1b[12\x07b" {
		t.Errorf("expected aborted bytes as text, got %q", rec.text.String())
	}
	if s.Malformed() != 1 {
		t.Errorf("expected 1 malformed sequence, got %d", s.Malformed())
	}
	if s.State() != StateGround {
		t.Errorf("expected ground state, got %s", s.State())
	}
}

func TestScannerNonCSIEscape(t *testing.T) {
	rec := scanAll(t, "\x1b]0;title\x07")

	if rec.text.String() != "\x1b]0;title\x07" {
		t.Errorf("expected literal text, got %q", rec.text.String())
	}
	if len(rec.seqs) != 0 {
		t.Errorf("expected no sequences, got %d", len(rec.seqs))
	}
}

func TestScannerEscRestarts(t *testing.T) {
	rec := scanAll(t, "\x1b[1\x1b[2m")

	if rec.text.String() != "\x1b[1" {
		t.Errorf("expected aborted prefix as text, got %q", rec.text.String())
	}
	if len(rec.seqs) != 1 || rec.seqs[0].Param(0, 0) != 2 {
		t.Errorf("expected sequence CSI 2 m, got %v", rec.events)
	}
}

func TestScannerFlushIncomplete(t *testing.T) {
	rec := &recorder{}
	s := NewScanner(rec)

	s.Write([]byte("abc\x1b[3"))
	if s.State() != StateCollectingParameters {
		t.Errorf("expected collecting-parameters, got %s", s.State())
	}
	if rec.text.String() != "abc" {
		t.Errorf("expected 'abc' before flush, got %q", rec.text.String())
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if rec.text.String() != "abc\x1b[3" {
		t.Errorf("expected incomplete sequence as text, got %q", rec.text.String())
	}
	if s.State() != StateGround {
		t.Errorf("expected ground after flush, got %s", s.State())
	}
}

func TestScannerPrivateMarker(t *testing.T) {
	rec := scanAll(t, "\x1b[?25l")

	seq := rec.seqs[0]
	if seq.Private != '?' {
		t.Errorf("expected private '?', got %q", seq.Private)
	}
	if seq.Param(0, 0) != 25 || seq.Final != 'l' {
		t.Errorf("expected CSI ?25 l, got %s", seq.String())
	}

	// A marker after a digit aborts
	rec = scanAll(t, "\x1b[1?l")
	if len(rec.seqs) != 0 {
		t.Errorf("expected no sequence, got %v", rec.events)
	}
	if rec.text.String() != "\x1b[1?l" {
		t.Errorf("expected literal text, got %q", rec.text.String())
	}
}

func TestScannerIntermediate(t *testing.T) {
	rec := scanAll(t, "\x1b[2 q")

	seq := rec.seqs[0]
	if string(seq.Intermediate) != " " || seq.Final != 'q' {
		t.Errorf("expected intermediate ' ' and final 'q', got %s", seq.String())
	}

	// Digits are not allowed after an intermediate
	rec = scanAll(t, "\x1b[ 1q")
	if len(rec.seqs) != 0 {
		t.Errorf("expected no sequence, got %v", rec.events)
	}
}

func TestScannerMaxLength(t *testing.T) {
	input := "\x1b[" + strings.Repeat("1;", 60) + "m"
	rec := scanAll(t, input)

	if len(rec.seqs) != 0 {
		t.Errorf("expected oversized sequence to abort, got %d sequences", len(rec.seqs))
	}
	if rec.text.String() != input {
		t.Errorf("expected all bytes as text")
	}
}

func TestScannerParamSaturates(t *testing.T) {
	rec := scanAll(t, "\x1b[99999999A")

	if rec.seqs[0].Param(0, 0) != 65535 {
		t.Errorf("expected 65535, got %d", rec.seqs[0].Param(0, 0))
	}
}

func TestScannerHandlerError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{err: boom}
	s := NewScanner(rec)

	n, err := s.Write([]byte("abc"))
	if !errors.Is(err, boom) {
		t.Errorf("expected handler error, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 bytes handled, got %d", n)
	}
}

// failOnce fails the first sequence it receives.
type failOnce struct {
	recorder
	failed bool
}

func (f *failOnce) Sequence(seq *ControlSequence) error {
	if !f.failed {
		f.failed = true
		return errors.New("boom")
	}
	return f.recorder.Sequence(seq)
}

func TestScannerHandlerErrorResume(t *testing.T) {
	h := &failOnce{}
	s := NewScanner(h)
	input := []byte("\x1b[31mZ")

	n, err := s.Write(input)
	if err == nil {
		t.Fatal("expected handler error")
	}
	if n != 5 {
		t.Errorf("expected the final byte counted as handled, got %d", n)
	}

	if _, err := s.Write(input[n:]); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if h.text.String() != "Z" {
		t.Errorf("expected only 'Z' after resuming, got %q", h.text.String())
	}
}

func TestScannerReset(t *testing.T) {
	rec := &recorder{}
	s := NewScanner(rec)

	s.Write([]byte("\x1b[1"))
	s.Reset()
	s.Flush()

	if rec.text.Len() != 0 {
		t.Errorf("expected discarded sequence, got %q", rec.text.String())
	}
}

func TestControlSequenceString(t *testing.T) {
	tests := []struct {
		seq      ControlSequence
		expected string
	}{
		{ControlSequence{Params: []int{1, 31}, Final: 'm'}, "CSI 1;31 m"},
		{ControlSequence{Final: 'm'}, "CSI m"},
		{ControlSequence{Params: []int{-1, 5}, Final: 'H'}, "CSI ;5 H"},
		{ControlSequence{Params: []int{25}, Private: '?', Final: 'h'}, "CSI ?25 h"},
	}

	for _, tt := range tests {
		if got := tt.seq.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
