package encoding

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/arloliu/cmapgos/errs"
)

// MaxNoNNibbles is the largest magnitude width, in nibbles, that a NoN prefix can describe.
const MaxNoNNibbles = 8

// Bits is a fixed-width big-endian bit string.
type Bits struct {
	Value uint64 // right-aligned bits
	Width int    // number of bits, 0-64
}

// String renders the bits as '0' and '1' characters, most significant first.
func (b Bits) String() string {
	if b.Width <= 0 {
		return ""
	}

	s := strconv.FormatUint(b.Value, 2)
	if len(s) >= b.Width {
		return s[len(s)-b.Width:]
	}

	return strings.Repeat("0", b.Width-len(s)) + s
}

// NibbleBin returns the binary form of a non-negative number, zero-padded on
// the left to a whole number of nibbles.
//
// Zero is represented by one nibble.
//
// Example: NibbleBin(16) returns (2, "00010000").
//
// Returns:
//   - int: number of nibbles
//   - Bits: the value with width 4 × nibbles
//   - error: ErrNegativeValue if number is negative
func NibbleBin(number int64) (int, Bits, error) {
	if number < 0 {
		return 0, Bits{}, fmt.Errorf("%w: %d", errs.ErrNegativeValue, number)
	}

	nibbles := nibbleCount(uint64(number))

	return nibbles, Bits{Value: uint64(number), Width: nibbles * 4}, nil
}

func nibbleCount(v uint64) int {
	if v == 0 {
		return 1
	}

	return (bits.Len64(v) + 3) / 4
}

// NoN encodes a signed number as a Number-of-Nibbles string.
//
// The first nibble is a prefix p: for non-negative numbers p is the magnitude's
// nibble count minus one (0-7), for negative numbers it is the count plus seven
// (8-15). The magnitude follows in NibbleBin form.
//
// Example:
//
//	 17 -> 0001 0001 0001 (0x111)
//	-17 -> 1001 0001 0001 (0x911)
//
// Returns ErrNibbleOverflow when the magnitude needs more than MaxNoNNibbles nibbles.
func NoN(number int64) (Bits, error) {
	magnitude := uint64(number)
	if number < 0 {
		magnitude = -magnitude
	}

	nibbles := nibbleCount(magnitude)
	if nibbles > MaxNoNNibbles {
		return Bits{}, fmt.Errorf("%w: %d needs %d nibbles", errs.ErrNibbleOverflow, number, nibbles)
	}

	prefix := uint64(nibbles - 1)
	if number < 0 {
		prefix = uint64(nibbles + 7)
	}

	return Bits{
		Value: prefix<<(nibbles*4) | magnitude,
		Width: 4 + nibbles*4,
	}, nil
}

// Field is the result of encoding one value with AOE.
type Field struct {
	// Bits is the fixed-width primary representation. For escaped values it is all ones.
	Bits Bits
	// Escaped reports whether the value must be carried in the secondary stream.
	Escaped bool
	// Value is the original value.
	Value int64
}

// AOE encodes number in a fixed field of width bits, reserving the all-ones
// pattern as an escape.
//
// Negative numbers and numbers ≥ 2^width-1 are escaped: the field is all ones
// and the caller must append NoN(number) to the secondary stream.
//
// Example:
//
//	AOE(12, 5) -> 01100
//	AOE(12, 3) -> 111, escaped 12
//	AOE(-1, 2) -> 11, escaped -1
func AOE(number int64, width int) (Field, error) {
	if width <= 0 || width > 63 {
		return Field{}, fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, width)
	}

	escape := uint64(1)<<width - 1
	if number < 0 || uint64(number) >= escape {
		return Field{Bits: Bits{Value: escape, Width: width}, Escaped: true, Value: number}, nil
	}

	return Field{Bits: Bits{Value: uint64(number), Width: width}, Value: number}, nil
}
