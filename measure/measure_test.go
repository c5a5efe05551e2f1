package measure

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmapgos/compress"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/gos"
	"github.com/arloliu/cmapgos/internal/fonttest"
	"github.com/arloliu/cmapgos/internal/hash"
	"github.com/arloliu/cmapgos/internal/pool"
	"github.com/arloliu/cmapgos/sfnt"
)

func testFont(t *testing.T) *sfnt.Font {
	t.Helper()

	groups := []fonttest.Group{{Start: 0x20, End: 0x20, GID: 3}}
	for i := range 40 {
		start := uint32(0x100 + i*4)
		groups = append(groups, fonttest.Group{Start: start, End: start + 1, GID: uint32(10 + i*2)})
	}

	font, err := sfnt.Parse(fonttest.New(100).
		WithCMap4(fonttest.Segment{Start: 0x20, End: 0x20, IDDelta: -29}).
		WithCMap12(groups...).
		WithCharset(1, fonttest.Range{First: 1, NLeft: 49}, fonttest.Range{First: 60, NLeft: 49}).
		Build())
	require.NoError(t, err)

	return font
}

func TestMeasure(t *testing.T) {
	font := testFont(t)
	types := []format.GOSType{
		format.TypeCMap12Raw, format.TypeCMap12Delta, format.TypeCMap12DeltaGID,
		format.TypeCMap4, format.TypeCharset2,
	}

	report, err := Measure(font, types)
	require.NoError(t, err)
	require.Len(t, report.Results, len(types))
	require.Equal(t, DefaultCodecs, report.Codecs)
	require.Empty(t, report.Failed())

	for i, res := range report.Results {
		require.Equal(t, types[i], res.Requested)

		payload, gen, err := gos.Generate(font, types[i], gos.DefaultConfig())
		require.NoError(t, err)
		require.Equal(t, len(payload), res.Size)
		require.Equal(t, gen.Type, res.Type)
		require.Equal(t, gen.Entries, res.Entries)
		require.Equal(t, hash.Digest(payload), res.Digest)
		require.Len(t, res.Compressed, len(DefaultCodecs))
		for j, s := range res.Compressed {
			require.Equal(t, DefaultCodecs[j], s.Algorithm)
			require.Equal(t, int64(res.Size), s.OriginalSize)
		}
	}

	raw := report.Results[0]
	require.Equal(t, 41, raw.Entries)
	require.Equal(t, 16+12*41, raw.SourceSize)
	require.Equal(t, 3+12*41, raw.Size)

	// charset format 1 is reported as type 7
	charset := report.Results[4]
	require.Equal(t, format.TypeCharset1, charset.Type)
	require.Equal(t, 1+3*2, charset.SourceSize)

	require.Equal(t, 16+8*2, report.Results[3].SourceSize)
}

func TestMeasure_RecordsFailures(t *testing.T) {
	font, err := sfnt.Parse(fonttest.New(10).WithCMap12(fonttest.Group{Start: 1, End: 1, GID: 1}).Build())
	require.NoError(t, err)

	report, err := Measure(font, []format.GOSType{format.TypeCMap4, format.TypeCMap12Raw, format.TypeCharset2})
	require.NoError(t, err)

	failed := report.Failed()
	require.Len(t, failed, 2)
	require.ErrorIs(t, failed[0].Err, errs.ErrMissingSubtable)
	require.ErrorIs(t, failed[1].Err, errs.ErrMissingTable)
	require.Equal(t, format.TypeCharset2, failed[1].Requested)

	require.True(t, report.Results[1].OK())
	require.Equal(t, 1+3+12, report.ContainerSize())
}

func TestMeasure_Options(t *testing.T) {
	font := testFont(t)

	report, err := Measure(font, []format.GOSType{format.TypeCMap12Raw}, WithCodecs(format.CompressionNone))
	require.NoError(t, err)
	require.Equal(t, []format.CompressionType{format.CompressionNone}, report.Codecs)
	require.Equal(t, int64(report.Results[0].Size), report.Results[0].Compressed[0].CompressedSize)

	report, err = Measure(font, []format.GOSType{format.TypeCMap12Raw}, WithCodecs())
	require.NoError(t, err)
	require.Empty(t, report.Results[0].Compressed)

	_, err = Measure(font, nil, WithCodecs(format.CompressionType(99)))
	require.Error(t, err)

	cfg := gos.DefaultConfig()
	cfg.CMap12 = gos.Subtable{PlatformID: 0, EncodingID: 4}
	report, err = Measure(font, []format.GOSType{format.TypeCMap12Raw}, WithGOSConfig(cfg))
	require.NoError(t, err)
	require.ErrorIs(t, report.Results[0].Err, errs.ErrMissingSubtable)
}

// lossyCodec drops the last byte on decompression.
type lossyCodec struct{}

func (lossyCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (lossyCodec) Decompress(data []byte) ([]byte, error) { return data[:len(data)-1], nil }

func TestMeasureOne_RoundTripMismatch(t *testing.T) {
	font := testFont(t)
	cfg := &config{codecs: []format.CompressionType{format.CompressionNone}, gos: gos.DefaultConfig()}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	_, err := measureOne(buf, font, format.TypeCMap12Raw, cfg, []compress.Codec{lossyCodec{}})
	require.ErrorIs(t, err, errs.ErrRoundTrip)

	buf.Reset()
	res, err := measureOne(buf, font, format.TypeCMap12Raw, cfg, []compress.Codec{compress.NewNoOpCompressor()})
	require.NoError(t, err)
	require.Equal(t, int64(res.Size), res.Compressed[0].CompressedSize)
}

func TestReport_Best(t *testing.T) {
	report := &Report{Results: []Result{
		{Requested: format.TypeCMap12Raw, Size: 100},
		{Requested: format.TypeCMap12Delta, Size: 40},
		{Requested: format.TypeCMap12DeltaGID, Size: 40},
		{Requested: format.TypeCMap4, Err: errs.ErrIncompatibleTables},
	}}

	best, ok := report.Best(format.TypeCMap12DeltaGID, format.TypeCMap12Delta, format.TypeCMap12Raw)
	require.True(t, ok)
	require.Equal(t, format.TypeCMap12DeltaGID, best.Requested)

	best, ok = report.Best(format.TypeCMap12Raw, format.TypeCMap4)
	require.True(t, ok)
	require.Equal(t, format.TypeCMap12Raw, best.Requested)

	_, ok = report.Best(format.TypeCMap4, format.TypeCharset2)
	require.False(t, ok)
}

func TestReport_WriteTable(t *testing.T) {
	font := testFont(t)
	report, err := Measure(font, []format.GOSType{format.TypeCMap12Raw, format.TypeCMap4, format.GOSType(9)},
		WithCodecs(format.CompressionZstd))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf))

	out := buf.String()
	require.Contains(t, out, "CMap12Raw")
	require.Contains(t, out, "Zstd")
	zstd := report.Results[0].Compressed[0]
	require.Contains(t, out, fmt.Sprintf("%d (%.0f%%)", zstd.CompressedSize, zstd.SpaceSavings()))
	require.Contains(t, out, "error: unknown GOS type")
	require.Contains(t, out, "Container:")
}
