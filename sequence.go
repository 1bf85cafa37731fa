package ansiconsole

import (
	"strconv"
	"strings"
)

// ControlSequence is one complete CSI sequence: ESC [ <private> <params> <intermediates> <final>.
// The Scanner reuses its storage, so handlers must copy anything they keep.
type ControlSequence struct {
	// Params are the numeric parameters in order. Omitted fields are -1.
	Params []int
	// Private is the private-mode marker ('?', '<', '=', '>'), or 0.
	Private byte
	// Intermediate holds bytes in 0x20-0x2F that precede the final byte.
	Intermediate []byte
	// Final is the operation identifier.
	Final byte
	// Raw is the exact byte sequence as received.
	Raw []byte
}

// Param returns parameter i, or def when it is missing or omitted.
func (s *ControlSequence) Param(i, def int) int {
	if i < 0 || i >= len(s.Params) || s.Params[i] < 0 {
		return def
	}
	return s.Params[i]
}

// String renders the sequence in a readable form, e.g. "CSI 1;31 m".
func (s *ControlSequence) String() string {
	var b strings.Builder
	b.WriteString("CSI ")
	if s.Private != 0 {
		b.WriteByte(s.Private)
	}
	for i, p := range s.Params {
		if i > 0 {
			b.WriteByte(';')
		}
		if p >= 0 {
			b.WriteString(strconv.Itoa(p))
		}
	}
	if len(s.Params) > 0 || s.Private != 0 {
		b.WriteByte(' ')
	}
	b.Write(s.Intermediate)
	b.WriteByte(s.Final)
	return b.String()
}

// Clone returns a deep copy that is safe to retain after the handler returns.
func (s *ControlSequence) Clone() ControlSequence {
	return ControlSequence{
		Params:       append([]int(nil), s.Params...),
		Private:      s.Private,
		Intermediate: append([]byte(nil), s.Intermediate...),
		Final:        s.Final,
		Raw:          append([]byte(nil), s.Raw...),
	}
}
