// Package stream provides an endian-aware, bounds-checked random-access
// byte reader used throughout the container and chunk-codec layers.
//
// Every read is bounds-checked; a short read returns ErrEndOfStream rather
// than panicking. Endianness is a mutable property of the Stream rather
// than baked into each call, because Lingo script chunks are always
// big-endian even inside a little-endian file (see lingo.DecodeBytecode).
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrEndOfStream is returned by any read that would run past the end of
// the underlying buffer.
var ErrEndOfStream = errors.New("stream: end of stream")

// Stream is a cursor over a byte slice with a mutable byte order.
type Stream struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

// New creates a Stream over buf with the given initial byte order.
func New(buf []byte, order binary.ByteOrder) *Stream {
	return &Stream{buf: buf, order: order}
}

// Len returns the total length of the underlying buffer.
func (s *Stream) Len() int { return len(s.buf) }

// Pos returns the current cursor position.
func (s *Stream) Pos() int { return s.pos }

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int { return len(s.buf) - s.pos }

// Order returns the current byte order.
func (s *Stream) Order() binary.ByteOrder { return s.order }

// SetOrder changes the byte order used by subsequent multi-byte reads.
func (s *Stream) SetOrder(order binary.ByteOrder) { s.order = order }

// Seek moves the cursor to absolute position p.
func (s *Stream) Seek(p int) error {
	if p < 0 || p > len(s.buf) {
		return fmt.Errorf("stream: seek %d out of range [0,%d]: %w", p, len(s.buf), ErrEndOfStream)
	}
	s.pos = p
	return nil
}

// Skip advances the cursor by n bytes.
func (s *Stream) Skip(n int) error {
	return s.Seek(s.pos + n)
}

// Substream borrows a read-only window of n bytes starting at the current
// position and advances the parent past it. The substream carries the
// parent's byte order and has its own independent cursor.
func (s *Stream) Substream(n int) (*Stream, error) {
	if n < 0 || s.pos+n > len(s.buf) {
		return nil, fmt.Errorf("stream: substream(%d) at %d: %w", n, s.pos, ErrEndOfStream)
	}
	sub := &Stream{buf: s.buf[s.pos : s.pos+n], order: s.order}
	s.pos += n
	return sub, nil
}

func (s *Stream) need(n int) error {
	if s.pos+n > len(s.buf) {
		return fmt.Errorf("stream: need %d bytes at %d, have %d: %w", n, s.pos, len(s.buf)-s.pos, ErrEndOfStream)
	}
	return nil
}

// ReadU8 reads one unsigned byte.
func (s *Stream) ReadU8() (uint8, error) {
	if err := s.need(1); err != nil {
		return 0, err
	}
	v := s.buf[s.pos]
	s.pos++
	return v, nil
}

// ReadI8 reads one signed byte.
func (s *Stream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

// ReadU16 reads an unsigned 16-bit value in the stream's byte order.
func (s *Stream) ReadU16() (uint16, error) {
	if err := s.need(2); err != nil {
		return 0, err
	}
	v := s.order.Uint16(s.buf[s.pos:])
	s.pos += 2
	return v, nil
}

// ReadI16 reads a signed 16-bit value.
func (s *Stream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit value.
func (s *Stream) ReadU32() (uint32, error) {
	if err := s.need(4); err != nil {
		return 0, err
	}
	v := s.order.Uint32(s.buf[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadI32 reads a signed 32-bit value.
func (s *Stream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

// ReadF32 reads an IEEE-754 single-precision float.
func (s *Stream) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads an IEEE-754 double-precision float.
func (s *Stream) ReadF64() (float64, error) {
	if err := s.need(8); err != nil {
		return 0, err
	}
	v := s.order.Uint64(s.buf[s.pos:])
	s.pos += 8
	return math.Float64frombits(v), nil
}

// ReadF80 reads an 80-bit Apple SANE extended-precision float and
// converts it to an IEEE-754 double. It fails when the biased exponent
// would overflow a double's range.
func (s *Stream) ReadF80() (float64, error) {
	if err := s.need(10); err != nil {
		return 0, err
	}
	// SANE extended format is always big-endian regardless of stream order.
	b := s.buf[s.pos : s.pos+10]
	s.pos += 10

	signExp := binary.BigEndian.Uint16(b[0:2])
	mantissa := binary.BigEndian.Uint64(b[2:10])

	sign := signExp >> 15
	exp := int32(signExp & 0x7fff)

	if exp == 0 && mantissa == 0 {
		if sign != 0 {
			return math.Copysign(0, -1), nil
		}
		return 0, nil
	}

	// Rebias from the 80-bit format's 15-bit exponent (bias 16383) to the
	// 64-bit double's 11-bit exponent (bias 1023).
	unbiased := exp - 16383
	biased := unbiased + 1023
	if biased >= 0x7ff || biased <= 0 {
		return 0, fmt.Errorf("stream: f80 exponent %d out of double range", unbiased)
	}

	// mantissa's explicit leading 1 bit must be dropped; keep the top 52
	// bits of the remaining 63 fractional bits.
	frac := (mantissa << 1) >> 12

	bits := uint64(sign)<<63 | uint64(biased)<<52 | frac
	return math.Float64frombits(bits), nil
}

// ReadBytes returns a view into the underlying buffer when that's safe
// (the caller must not mutate the result), copying only when n bytes
// aren't contiguous in backing storage — which never happens for a
// flat []byte buffer, so this always returns a slice view. Fails on a
// short read.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if err := s.need(n); err != nil {
		return nil, err
	}
	v := s.buf[s.pos : s.pos+n]
	s.pos += n
	return v, nil
}

// ReadUpTo returns up to n bytes, never failing on a short read.
func (s *Stream) ReadUpTo(n int) []byte {
	if s.pos+n > len(s.buf) {
		n = len(s.buf) - s.pos
	}
	if n < 0 {
		n = 0
	}
	v := s.buf[s.pos : s.pos+n]
	s.pos += n
	return v
}

// ReadVarInt reads a 7-bit continuation-encoded unsigned integer (MSB of
// each byte signals continuation, MSB-last in value order). Used only by
// the Afterburner container format.
func (s *Stream) ReadVarInt() (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		b, err := s.ReadU8()
		if err != nil {
			return 0, err
		}
		v = (v << 7) | uint32(b&0x7f)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("stream: varint exceeds 5 bytes")
}

// ReadString reads n raw Latin-1 bytes, mapping each byte to the code
// point of the same value (0-255).
func (s *Stream) ReadString(n int) (string, error) {
	b, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes), nil
}

// ReadCString reads bytes up to (and consuming) a NUL terminator.
func (s *Stream) ReadCString() (string, error) {
	start := s.pos
	for {
		b, err := s.ReadU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
	}
	raw := s.buf[start : s.pos-1]
	runes := make([]rune, len(raw))
	for i, c := range raw {
		runes[i] = rune(c)
	}
	return string(runes), nil
}

// ReadPascalString reads a u8 length prefix followed by that many
// Latin-1 bytes.
func (s *Stream) ReadPascalString() (string, error) {
	n, err := s.ReadU8()
	if err != nil {
		return "", err
	}
	return s.ReadString(int(n))
}
