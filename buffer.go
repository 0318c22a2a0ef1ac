package yadbf

import "encoding/binary"

// accumulator holds bytes that have been pushed but not yet consumed. It is
// owned exclusively by one Decoder and never discards bytes except via take.
type accumulator struct {
	buf []byte
}

func (a *accumulator) append(p []byte) {
	a.buf = append(a.buf, p...)
}

func (a *accumulator) size() int {
	return len(a.buf)
}

// hasHeader reports whether enough bytes are held to parse the complete
// header: at least the fixed 32-byte preamble, and at least the header byte
// count the preamble itself declares at offset 8.
func (a *accumulator) hasHeader() bool {
	if len(a.buf) < fixedHeaderSize {
		return false
	}
	declared := int(binary.LittleEndian.Uint16(a.buf[8:10]))
	return len(a.buf) >= declared
}

// hasRecord reports whether enough bytes are held for one full record.
func (a *accumulator) hasRecord(h *Header) bool {
	return len(a.buf) >= int(h.NumberOfBytesInRecord)
}

// take removes and returns the first n held bytes. The returned slice is
// owned by the caller; the remainder stays held for the next call.
func (a *accumulator) take(n int) []byte {
	out := make([]byte, n)
	copy(out, a.buf[:n])
	a.buf = a.buf[:copy(a.buf, a.buf[n:])]
	return out
}

// peek returns the first n held bytes without consuming them.
func (a *accumulator) peek(n int) []byte {
	return a.buf[:n]
}
