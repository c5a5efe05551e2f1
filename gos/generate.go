package gos

import (
	"fmt"

	"github.com/arloliu/cmapgos/encoding"
	"github.com/arloliu/cmapgos/endian"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/section"
)

// Append generates the payload of type t from src and appends it to dst.
//
// On error dst is returned unchanged in length; bytes beyond len(dst) in its
// backing array may have been overwritten.
//
// Parameters:
//   - dst: destination slice
//   - src: font data
//   - t: requested GOS type; TypeCharset2 and TypeCharset1 are interchangeable
//   - cfg: cmap subtable selection
//
// Returns:
//   - []byte: dst with the payload appended
//   - Result: type id written, entry and escape counts, payload size
//   - error: ErrUnknownGOSType for undefined types, or the generator's error
func Append(dst []byte, src Source, t format.GOSType, cfg Config) ([]byte, Result, error) {
	start := len(dst)

	var (
		out []byte
		res Result
		err error
	)
	switch t {
	case format.TypeCMap12DeltaGID:
		out, res, err = appendCMap12DeltaGID(dst, src, cfg)
	case format.TypeCMap12Delta:
		out, res, err = appendCMap12Delta(dst, src, cfg)
	case format.TypeCMap4:
		out, res, err = appendCMap4(dst, src, cfg)
	case format.TypeCMap12Raw:
		out, res, err = appendCMap12Raw(dst, src, cfg)
	case format.TypeCharset2, format.TypeCharset1:
		out, res, err = appendCharset(dst, src)
	default:
		return dst, Result{}, fmt.Errorf("%w: %d", errs.ErrUnknownGOSType, t)
	}
	if err != nil {
		return dst[:start], Result{}, fmt.Errorf("GOS type %d: %w", t, err)
	}

	res.Size = len(out) - start

	return out, res, nil
}

// Generate returns the payload of type t as a new byte slice.
func Generate(src Source, t format.GOSType, cfg Config) ([]byte, Result, error) {
	return Append(nil, src, t, cfg)
}

// appendFields writes the header followed by count entries produced by write,
// with escapes routed to the secondary stream.
func appendFields(dst []byte, h section.GOSHeader, count int,
	write func(w *encoding.FieldWriter, i int) error,
) ([]byte, Result, error) {
	w := encoding.NewFieldWriter()
	defer w.Finish()

	for i := range count {
		if err := write(w, i); err != nil {
			return dst, Result{}, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	dst = h.AppendTo(dst, endian.GetBigEndianEngine())
	dst = w.AppendTo(dst)

	return dst, Result{Type: h.Type, Entries: int(h.EntryCount), Escapes: w.Escapes()}, nil
}

// deltaInto writes the delta sequence of src into dst, which must have the same length.
func deltaInto[T uint16 | uint32](dst []int64, src []T) error {
	for i, v := range src {
		dst[i] = int64(v)
	}

	return encoding.Delta(dst, dst)
}
