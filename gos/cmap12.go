package gos

import (
	"fmt"

	"github.com/arloliu/cmapgos/encoding"
	"github.com/arloliu/cmapgos/endian"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/internal/pool"
	"github.com/arloliu/cmapgos/section"
	"github.com/arloliu/cmapgos/sfnt"
)

// Field widths of the delta encoded cmap 12 types.
const (
	type3StartWidth  = 5
	type3LengthWidth = 3
	type3GIDWidth    = 16

	type2StartWidth  = 3
	type2LengthWidth = 2
	type2GIDWidth    = 3
)

func loadCMap12(src Source, cfg Config) (*sfnt.CMap12, error) {
	c, err := src.CMapFormat12(cfg.CMap12.PlatformID, cfg.CMap12.EncodingID)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("%w: cmap format 12 (%d, %d) has no groups",
			errs.ErrEmptyInput, cfg.CMap12.PlatformID, cfg.CMap12.EncodingID)
	}

	return c, nil
}

// appendCMap12Raw writes type 5: every group as three raw big-endian uint32.
func appendCMap12Raw(dst []byte, src Source, cfg Config) ([]byte, Result, error) {
	c, err := loadCMap12(src, cfg)
	if err != nil {
		return dst, Result{}, err
	}

	h, err := section.NewGOSHeader(format.TypeCMap12Raw, c.Len())
	if err != nil {
		return dst, Result{}, err
	}

	engine := endian.GetBigEndianEngine()
	dst = h.AppendTo(dst, engine)
	for i := range c.Len() {
		dst = engine.AppendUint32(dst, c.StartCodes[i])
		dst = engine.AppendUint32(dst, c.Lengths[i])
		dst = engine.AppendUint32(dst, c.GlyphIDs[i])
	}

	return dst, Result{Type: h.Type, Entries: c.Len()}, nil
}

// appendCMap12Delta writes type 3: delta start codes, lengths and absolute glyph ids.
func appendCMap12Delta(dst []byte, src Source, cfg Config) ([]byte, Result, error) {
	c, err := loadCMap12(src, cfg)
	if err != nil {
		return dst, Result{}, err
	}

	h, err := section.NewGOSHeader(format.TypeCMap12Delta, c.Len())
	if err != nil {
		return dst, Result{}, err
	}

	starts, release := pool.GetInt64Slice(c.Len())
	defer release()
	if err := deltaInto(starts, c.StartCodes); err != nil {
		return dst, Result{}, err
	}

	return appendFields(dst, h, c.Len(), func(w *encoding.FieldWriter, i int) error {
		if err := w.Write(starts[i], type3StartWidth); err != nil {
			return err
		}
		if err := w.Write(int64(c.Lengths[i]), type3LengthWidth); err != nil {
			return err
		}

		return w.Write(int64(c.GlyphIDs[i]), type3GIDWidth)
	})
}

// appendCMap12DeltaGID writes type 2: delta start codes, lengths and delta glyph ids.
func appendCMap12DeltaGID(dst []byte, src Source, cfg Config) ([]byte, Result, error) {
	c, err := loadCMap12(src, cfg)
	if err != nil {
		return dst, Result{}, err
	}

	h, err := section.NewGOSHeader(format.TypeCMap12DeltaGID, c.Len())
	if err != nil {
		return dst, Result{}, err
	}

	starts, releaseStarts := pool.GetInt64Slice(c.Len())
	defer releaseStarts()
	gids, releaseGIDs := pool.GetInt64Slice(c.Len())
	defer releaseGIDs()

	if err := deltaInto(starts, c.StartCodes); err != nil {
		return dst, Result{}, err
	}
	if err := deltaInto(gids, c.GlyphIDs); err != nil {
		return dst, Result{}, err
	}

	return appendFields(dst, h, c.Len(), func(w *encoding.FieldWriter, i int) error {
		if err := w.Write(starts[i], type2StartWidth); err != nil {
			return err
		}
		if err := w.Write(int64(c.Lengths[i]), type2LengthWidth); err != nil {
			return err
		}

		return w.Write(gids[i], type2GIDWidth)
	})
}
