package ansiconsole

// ScanState is the position of a Scanner inside the escape sequence grammar.
type ScanState int

const (
	// StateGround copies plain bytes.
	StateGround ScanState = iota
	// StateEscapeStarted follows an ESC byte.
	StateEscapeStarted
	// StateCollectingParameters follows ESC [ and accepts digits and separators.
	StateCollectingParameters
	// StateAwaitingFinalByte follows an intermediate byte; only intermediates or a final byte may come next.
	StateAwaitingFinalByte
)

// String returns the state name.
func (s ScanState) String() string {
	switch s {
	case StateGround:
		return "ground"
	case StateEscapeStarted:
		return "escape-started"
	case StateCollectingParameters:
		return "collecting-parameters"
	case StateAwaitingFinalByte:
		return "awaiting-final-byte"
	default:
		return "unknown"
	}
}

const (
	esc = 0x1b

	// maxSequenceLength bounds the bytes buffered for one sequence.
	maxSequenceLength = 100

	// maxParamValue saturates numeric parameters.
	maxParamValue = 65535
)

// SequenceHandler receives the Scanner output in input order.
// Slices and sequences passed to it are only valid during the call.
type SequenceHandler interface {
	// Text receives plain bytes, including the bytes of aborted sequences.
	Text(p []byte) error
	// Sequence receives a complete control sequence.
	Sequence(seq *ControlSequence) error
}

// Scanner splits a byte stream into plain text and CSI control sequences.
// State survives across Write calls, so sequences may be split arbitrarily.
// A Scanner is not safe for concurrent use.
type Scanner struct {
	handler SequenceHandler
	state   ScanState

	// Pending sequence
	raw          []byte
	params       []int
	current      int
	hasCurrent   bool
	private      byte
	intermediate []byte
	seq          ControlSequence

	malformed uint64
}

// NewScanner creates a scanner in the ground state that reports to h.
func NewScanner(h SequenceHandler) *Scanner {
	return &Scanner{
		handler: h,
		raw:     make([]byte, 0, 16),
		params:  make([]int, 0, 4),
	}
}

// State returns the current state.
func (s *Scanner) State() ScanState {
	return s.state
}

// Malformed returns how many sequences were aborted and emitted as text.
func (s *Scanner) Malformed() uint64 {
	return s.malformed
}

// Write scans p. It returns the number of bytes handled before the first
// handler error; a byte that completed or aborted a sequence counts as
// handled even when the handler fails on it. Bytes of an unfinished sequence
// count as handled: they are held until the sequence completes or Flush is
// called.
func (s *Scanner) Write(p []byte) (int, error) {
	start := 0
	for i := 0; i < len(p); i++ {
		b := p[i]
		if s.state == StateGround {
			if b != esc {
				continue
			}
			if i > start {
				if err := s.handler.Text(p[start:i]); err != nil {
					return start, err
				}
			}
			s.begin()
			start = i + 1
			continue
		}

		if err := s.step(b); err != nil {
			return i + 1, err
		}
		start = i + 1
	}

	if s.state == StateGround && start < len(p) {
		if err := s.handler.Text(p[start:]); err != nil {
			return start, err
		}
	}
	return len(p), nil
}

// Flush emits an unfinished sequence as plain text and returns to ground.
func (s *Scanner) Flush() error {
	if s.state == StateGround {
		return nil
	}
	return s.abort()
}

// Reset discards an unfinished sequence without emitting it.
func (s *Scanner) Reset() {
	s.clear()
}

// step advances the state machine by one byte outside the ground state.
func (s *Scanner) step(b byte) error {
	if len(s.raw) >= maxSequenceLength {
		return s.abortWith(b)
	}

	switch s.state {
	case StateEscapeStarted:
		return s.escapeStarted(b)
	case StateCollectingParameters:
		return s.collectingParameters(b)
	case StateAwaitingFinalByte:
		return s.awaitingFinalByte(b)
	}
	return nil
}

func (s *Scanner) escapeStarted(b byte) error {
	if b != '[' {
		return s.abortWith(b)
	}
	s.raw = append(s.raw, b)
	s.state = StateCollectingParameters
	return nil
}

func (s *Scanner) collectingParameters(b byte) error {
	switch {
	case b >= '0' && b <= '9':
		s.raw = append(s.raw, b)
		s.current = s.current*10 + int(b-'0')
		if s.current > maxParamValue {
			s.current = maxParamValue
		}
		s.hasCurrent = true
	case b == ';' || b == ':':
		s.raw = append(s.raw, b)
		s.pushParam()
	case b >= '<' && b <= '?' && len(s.raw) == 2:
		// Private marker, only valid right after the introducer
		s.raw = append(s.raw, b)
		s.private = b
	case b >= 0x20 && b <= 0x2f:
		s.raw = append(s.raw, b)
		s.intermediate = append(s.intermediate, b)
		s.state = StateAwaitingFinalByte
	case isFinalByte(b):
		return s.complete(b)
	default:
		return s.abortWith(b)
	}
	return nil
}

func (s *Scanner) awaitingFinalByte(b byte) error {
	switch {
	case b >= 0x20 && b <= 0x2f:
		s.raw = append(s.raw, b)
		s.intermediate = append(s.intermediate, b)
	case isFinalByte(b):
		return s.complete(b)
	default:
		return s.abortWith(b)
	}
	return nil
}

// begin starts a sequence with the ESC byte already consumed.
func (s *Scanner) begin() {
	s.clear()
	s.raw = append(s.raw, esc)
	s.state = StateEscapeStarted
}

func (s *Scanner) pushParam() {
	if s.hasCurrent {
		s.params = append(s.params, s.current)
	} else {
		s.params = append(s.params, -1)
	}
	s.current = 0
	s.hasCurrent = false
}

// complete hands the finished sequence to the handler.
func (s *Scanner) complete(final byte) error {
	s.raw = append(s.raw, final)
	if s.hasCurrent || len(s.params) > 0 {
		s.pushParam()
	}

	s.seq = ControlSequence{
		Params:       s.params,
		Private:      s.private,
		Intermediate: s.intermediate,
		Final:        final,
		Raw:          s.raw,
	}
	err := s.handler.Sequence(&s.seq)
	s.clear()
	return err
}

// abortWith emits the pending bytes as text. A non-ESC offending byte is
// emitted with them; an ESC starts a new sequence.
func (s *Scanner) abortWith(b byte) error {
	if b == esc {
		err := s.abort()
		s.begin()
		return err
	}
	s.raw = append(s.raw, b)
	return s.abort()
}

func (s *Scanner) abort() error {
	s.malformed++
	err := s.handler.Text(s.raw)
	s.clear()
	return err
}

// clear returns to ground, keeping buffer capacity.
func (s *Scanner) clear() {
	s.state = StateGround
	s.raw = s.raw[:0]
	s.params = s.params[:0]
	s.current = 0
	s.hasCurrent = false
	s.private = 0
	s.intermediate = s.intermediate[:0]
	s.seq = ControlSequence{}
}

// isFinalByte reports whether b terminates a control sequence.
func isFinalByte(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}
