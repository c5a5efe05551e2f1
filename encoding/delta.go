package encoding

import (
	"fmt"

	"github.com/arloliu/cmapgos/errs"
)

// Delta writes the difference sequence of src into dst.
//
// dst[0] = src[0] and dst[i] = src[i] - src[i-1]. Near-monotonic code point
// and glyph id progressions turn into small values that fit narrow fields.
// dst may alias src.
//
// Parameters:
//   - dst: destination, must have the same length as src
//   - src: source sequence, must not be empty
//
// Returns:
//   - error: ErrEmptyInput if src is empty
func Delta(dst, src []int64) error {
	if len(src) == 0 {
		return errs.ErrEmptyInput
	}
	if len(dst) != len(src) {
		return fmt.Errorf("delta: destination length %d, source length %d", len(dst), len(src))
	}

	prev := src[0]
	dst[0] = prev
	for i := 1; i < len(src); i++ {
		cur := src[i]
		dst[i] = cur - prev
		prev = cur
	}

	return nil
}
