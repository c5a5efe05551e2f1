package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/internal/pool"
)

// BitStream is a growable, MSB-first bit buffer.
//
// Bits are accumulated in a 64-bit register and flushed to a pooled byte buffer
// whenever the register fills. Align pads the stream with zero bits up to the
// next byte boundary; Bytes aligns implicitly. After alignment, further writes
// start at the next byte.
//
// A BitStream holds a pooled buffer: call Finish once the bytes have been
// consumed to return it.
type BitStream struct {
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf
	buf      *pool.ByteBuffer
}

// NewBitStream creates an empty bit stream backed by a pooled buffer.
func NewBitStream() *BitStream {
	return &BitStream{buf: pool.GetPayloadBuffer()}
}

// WriteBits appends the low width bits of value, most significant bit first.
//
// Parameters:
//   - value: the bits to write (only the least significant width bits are used)
//   - width: number of bits to write (0-64)
func (s *BitStream) WriteBits(value uint64, width int) {
	if s.buf == nil {
		panic("bit stream already finished - cannot write after Finish()")
	}
	if width <= 0 {
		return
	}
	if width < 64 {
		value &= (1 << width) - 1
	}

	available := 64 - s.bitCount
	if width <= available {
		if width == 64 {
			s.bitBuf = value
		} else {
			s.bitBuf = (s.bitBuf << width) | value
		}
		s.bitCount += width
		if s.bitCount == 64 {
			s.flushWord()
		}

		return
	}

	// split across the register boundary
	highBits := width - available
	s.bitBuf = (s.bitBuf << available) | (value >> highBits)
	s.bitCount = 64
	s.flushWord()

	s.bitBuf = value & ((1 << highBits) - 1)
	s.bitCount = highBits
}

// WriteBitsValue appends a Bits value.
func (s *BitStream) WriteBitsValue(b Bits) error {
	if b.Width < 0 || b.Width > 64 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, b.Width)
	}
	s.WriteBits(b.Value, b.Width)

	return nil
}

// Align pads the stream with zero bits up to the next byte boundary.
func (s *BitStream) Align() {
	if s.buf == nil {
		panic("bit stream already finished - cannot align after Finish()")
	}
	if s.bitCount == 0 {
		return
	}

	numBytes := (s.bitCount + 7) / 8
	aligned := s.bitBuf << (64 - s.bitCount)

	start := s.buf.Len()
	s.buf.ExtendOrGrow(numBytes)
	bs := s.buf.Slice(start, start+numBytes)
	for i := range numBytes {
		bs[i] = byte(aligned >> (56 - i*8))
	}

	s.bitBuf = 0
	s.bitCount = 0
}

// Bytes aligns the stream and returns its bytes.
//
// The returned slice is valid until the next write or Finish.
func (s *BitStream) Bytes() []byte {
	s.Align()
	return s.buf.Bytes()
}

// Finish returns the underlying buffer to the pool. The stream is unusable afterwards.
func (s *BitStream) Finish() {
	if s.buf == nil {
		return
	}

	pool.PutPayloadBuffer(s.buf)
	s.buf = nil
}

func (s *BitStream) flushWord() {
	start := s.buf.Len()
	s.buf.ExtendOrGrow(8)
	binary.BigEndian.PutUint64(s.buf.Slice(start, start+8), s.bitBuf)

	s.bitBuf = 0
	s.bitCount = 0
}
