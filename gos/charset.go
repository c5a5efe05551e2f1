package gos

import (
	"fmt"

	"github.com/arloliu/cmapgos/encoding"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/internal/pool"
	"github.com/arloliu/cmapgos/section"
)

const (
	charsetFirstWidth = 5
	charsetNLeftWidth = 3
)

// charsetRanges holds the ranges of a CFF charset in format 1 or 2.
type charsetRanges struct {
	format uint8
	first  []uint16
	nLeft  []uint16
}

// readCharset reads charset ranges at off until they cover numGlyphs glyphs.
//
// Format 1 ranges carry an 8-bit nLeft, format 2 ranges a 16-bit nLeft.
func readCharset(src Source, off int, numGlyphs int) (charsetRanges, error) {
	f, err := src.Uint8At(off)
	if err != nil {
		return charsetRanges{}, err
	}
	if f != 1 && f != 2 {
		return charsetRanges{}, fmt.Errorf("%w: format %d", errs.ErrUnsupportedCharset, f)
	}

	cs := charsetRanges{format: f}
	pos := off + 1
	for seen := 0; seen < numGlyphs; {
		first, err := src.Uint16At(pos)
		if err != nil {
			return charsetRanges{}, err
		}
		pos += 2

		var nLeft uint16
		if f == 2 {
			nLeft, err = src.Uint16At(pos)
			pos += 2
		} else {
			var n uint8
			n, err = src.Uint8At(pos)
			nLeft = uint16(n)
			pos++
		}
		if err != nil {
			return charsetRanges{}, err
		}

		cs.first = append(cs.first, first)
		cs.nLeft = append(cs.nLeft, nLeft)
		seen += int(nLeft) + 1
	}

	return cs, nil
}

// appendCharset writes type 6 for format 2 charsets and type 7 for format 1 charsets.
func appendCharset(dst []byte, src Source) ([]byte, Result, error) {
	loc, err := src.CFFCharset()
	if err != nil {
		return dst, Result{}, err
	}
	if loc.FontCount != 1 {
		return dst, Result{}, fmt.Errorf("%w: %d fonts", errs.ErrMultipleFonts, loc.FontCount)
	}
	if loc.IsPredefined() {
		return dst, Result{}, fmt.Errorf("%w: predefined charset %d", errs.ErrUnsupportedCharset, loc.CharsetOffset)
	}

	numGlyphs, err := src.NumGlyphs()
	if err != nil {
		return dst, Result{}, err
	}

	cs, err := readCharset(src, int(loc.AbsoluteOffset()), numGlyphs)
	if err != nil {
		return dst, Result{}, err
	}
	count := len(cs.first)
	if count == 0 {
		return dst, Result{}, fmt.Errorf("%w: charset has no ranges", errs.ErrEmptyInput)
	}

	t := format.TypeCharset2
	if cs.format == 1 {
		t = format.TypeCharset1
	}
	h, err := section.NewGOSHeader(t, count)
	if err != nil {
		return dst, Result{}, err
	}
	h.CharsetOffset = loc.AbsoluteOffset()

	firsts, releaseFirsts := pool.GetInt64Slice(count)
	defer releaseFirsts()
	nLefts, releaseNLefts := pool.GetInt64Slice(count)
	defer releaseNLefts()

	if err := deltaInto(firsts, cs.first); err != nil {
		return dst, Result{}, err
	}
	if err := deltaInto(nLefts, cs.nLeft); err != nil {
		return dst, Result{}, err
	}

	return appendFields(dst, h, count, func(w *encoding.FieldWriter, i int) error {
		if err := w.Write(firsts[i], charsetFirstWidth); err != nil {
			return err
		}

		return w.Write(nLefts[i], charsetNLeftWidth)
	})
}
