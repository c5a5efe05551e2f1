// Package measure sizes GOS payloads of a font.
//
// Measure generates every requested type independently and records its size,
// its xxHash64 digest and its size after each configured compression codec,
// next to the size of the font table it was derived from. Every compressed
// form is decompressed again and compared with the payload. A failing type is
// recorded with its error instead of aborting the report, so one report can
// show which layouts a font supports at all.
package measure

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/cmapgos/compress"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/gos"
	"github.com/arloliu/cmapgos/internal/hash"
	"github.com/arloliu/cmapgos/internal/options"
	"github.com/arloliu/cmapgos/internal/pool"
	"github.com/arloliu/cmapgos/section"
)

// DefaultCodecs are the codecs measured when WithCodecs is not given.
var DefaultCodecs = []format.CompressionType{
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

type config struct {
	codecs []format.CompressionType
	gos    gos.Config
}

// Option configures Measure.
type Option = options.Option[*config]

// WithCodecs selects the compression codecs applied to every payload.
func WithCodecs(codecs ...format.CompressionType) Option {
	return options.New(func(c *config) error {
		for _, ct := range codecs {
			if _, err := compress.GetCodec(ct); err != nil {
				return err
			}
		}
		c.codecs = slices.Clone(codecs)

		return nil
	})
}

// WithGOSConfig selects the cmap subtables the payloads are generated from.
func WithGOSConfig(cfg gos.Config) Option {
	return options.NoError(func(c *config) {
		c.gos = cfg
	})
}

// Result is the measurement of one requested type.
type Result struct {
	// Requested is the type that was asked for.
	Requested format.GOSType
	// Type is the type id written; differs from Requested for charsets of the other format.
	Type format.GOSType
	// Entries and Escapes are taken from the generated payload.
	Entries int
	Escapes int
	// Size is the payload size in bytes.
	Size int
	// SourceSize is the size of the font data the payload replaces.
	SourceSize int
	// Digest is the xxHash64 of the payload.
	Digest uint64
	// Compressed holds one entry per configured codec.
	Compressed []compress.CompressionStats
	// Err is set when the type could not be generated; all other fields except Requested are zero.
	Err error
}

// OK reports whether the payload was generated.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report holds the results of Measure in request order.
type Report struct {
	Results []Result
	Codecs  []format.CompressionType
}

// Measure generates and sizes every type in types.
//
// Returns:
//   - *Report: one result per requested type
//   - error: only for invalid options; generator failures are stored in Result.Err
func Measure(src gos.Source, types []format.GOSType, opts ...Option) (*Report, error) {
	cfg := &config{
		codecs: DefaultCodecs,
		gos:    gos.DefaultConfig(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codecs := make([]compress.Codec, len(cfg.codecs))
	for i, ct := range cfg.codecs {
		codec, err := compress.CreateCodec(ct, "measure")
		if err != nil {
			return nil, err
		}
		codecs[i] = codec
	}

	report := &Report{
		Results: make([]Result, 0, len(types)),
		Codecs:  slices.Clone(cfg.codecs),
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	for _, t := range types {
		buf.Reset()
		res, err := measureOne(buf, src, t, cfg, codecs)
		if err != nil {
			res = Result{Requested: t, Err: err}
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

func measureOne(buf *pool.ByteBuffer, src gos.Source, t format.GOSType, cfg *config, codecs []compress.Codec) (Result, error) {
	out, gen, err := gos.Append(buf.B, src, t, cfg.gos)
	if err != nil {
		return Result{}, err
	}
	buf.B = out

	sourceSize, err := SourceSize(src, gen.Type, gen.Entries, cfg.gos)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Requested:  t,
		Type:       gen.Type,
		Entries:    gen.Entries,
		Escapes:    gen.Escapes,
		Size:       gen.Size,
		SourceSize: sourceSize,
		Digest:     hash.Digest(buf.Bytes()),
		Compressed: make([]compress.CompressionStats, len(codecs)),
	}

	for i, codec := range codecs {
		start := time.Now()
		compressed, err := codec.Compress(buf.Bytes())
		if err != nil {
			return Result{}, fmt.Errorf("%s compression: %w", cfg.codecs[i], err)
		}
		elapsed := time.Since(start)

		restored, err := codec.Decompress(compressed)
		if err != nil {
			return Result{}, fmt.Errorf("%s decompression: %w", cfg.codecs[i], err)
		}
		if !bytes.Equal(restored, buf.Bytes()) {
			return Result{}, fmt.Errorf("%w: %s round trip changed the payload", errs.ErrRoundTrip, cfg.codecs[i])
		}

		res.Compressed[i] = compress.CompressionStats{
			Algorithm:         cfg.codecs[i],
			OriginalSize:      int64(gen.Size),
			CompressedSize:    int64(len(compressed)),
			CompressionTimeNs: elapsed.Nanoseconds(),
		}
	}

	return res, nil
}

// SourceSize returns the size in bytes of the font structure a payload of
// type t with the given entry count replaces:
//
//   - cmap format 12 types: the format 12 subtable, 16 + 12 × groups
//   - type 4: the format 4 subtable, 16 + 8 × segments + glyph id array
//   - type 6: the format 2 charset, 1 + 4 × ranges
//   - type 7: the format 1 charset, 1 + 3 × ranges
func SourceSize(src gos.Source, t format.GOSType, entries int, cfg gos.Config) (int, error) {
	switch t {
	case format.TypeCMap12DeltaGID, format.TypeCMap12Delta, format.TypeCMap12Raw:
		return 16 + 12*entries, nil
	case format.TypeCMap4:
		c4, err := src.CMapFormat4(cfg.CMap4.PlatformID, cfg.CMap4.EncodingID)
		if err != nil {
			return 0, err
		}

		return 16 + 8*c4.Len() + 2*len(c4.GlyphIDArray), nil
	case format.TypeCharset2:
		return 1 + 4*entries, nil
	case format.TypeCharset1:
		return 1 + 3*entries, nil
	default:
		return 0, fmt.Errorf("no source size for GOS type %d", t)
	}
}

// Best returns the successful result with the smallest payload among the
// given types, or false if none of them succeeded. Ties go to the type listed first.
func (r *Report) Best(candidates ...format.GOSType) (Result, bool) {
	var (
		best  Result
		found bool
	)
	for _, want := range candidates {
		for _, res := range r.Results {
			if res.Requested != want || !res.OK() {
				continue
			}
			if !found || res.Size < best.Size {
				best, found = res, true
			}

			break
		}
	}

	return best, found
}

// ContainerSize returns the size of a container holding every successful payload.
func (r *Report) ContainerSize() int {
	size := section.ContainerHeaderSize
	for _, res := range r.Results {
		if res.OK() {
			size += res.Size
		}
	}

	return size
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}

	return failed
}
