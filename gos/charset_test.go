package gos

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmapgos/endian"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/internal/fonttest"
	"github.com/arloliu/cmapgos/section"
	"github.com/arloliu/cmapgos/sfnt"
)

var charsetRanges10 = []fonttest.Range{
	{First: 1, NLeft: 4},
	{First: 20, NLeft: 3},
	{First: 40, NLeft: 0},
}

func TestGenerate_Charset(t *testing.T) {
	tests := []struct {
		name      string
		format    uint8
		requested format.GOSType
		want      format.GOSType
	}{
		{"Format 2 as type 6", 2, format.TypeCharset2, format.TypeCharset2},
		{"Format 2 requested as type 7", 2, format.TypeCharset1, format.TypeCharset2},
		{"Format 1 as type 7", 1, format.TypeCharset1, format.TypeCharset1},
		{"Format 1 requested as type 6", 1, format.TypeCharset2, format.TypeCharset1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font := parseFont(t, fonttest.New(10).WithCharset(tt.format, charsetRanges10...))
			loc, err := font.CFFCharset()
			require.NoError(t, err)

			data, res, err := Generate(font, tt.requested, DefaultConfig())
			require.NoError(t, err)
			require.Equal(t, Result{Type: tt.want, Entries: 3, Escapes: 2, Size: len(data)}, res)

			h, err := section.ParseGOSHeader(data, true)
			require.NoError(t, err)
			require.Equal(t, loc.AbsoluteOffset(), h.CharsetOffset)
			require.Equal(t, tt.want, h.Type)
			require.Equal(t, uint16(3), h.EntryCount)

			// header begins with the absolute charset offset
			require.Equal(t, loc.AbsoluteOffset(), endian.GetBigEndianEngine().Uint32(data[:4]))
			require.Equal(t, byte(tt.want), data[4])

			// Δfirst 1 19 20, ΔnLeft 4 -1 -3:
			// primary 00001 100 | 10011 111 | 10100 111, secondary NoN(-1) NoN(-3)
			require.Equal(t, []byte{0x0C, 0x9F, 0xA7, 0x81, 0x83}, data[section.CharsetHeaderSize:])
		})
	}
}

func TestGenerate_CharsetErrors(t *testing.T) {
	t.Run("Format 0", func(t *testing.T) {
		font := parseFont(t, fonttest.New(10).WithCharset(0, charsetRanges10...))

		_, _, err := Generate(font, format.TypeCharset2, DefaultConfig())
		require.ErrorIs(t, err, errs.ErrUnsupportedCharset)
	})

	t.Run("Predefined", func(t *testing.T) {
		for id := range 3 {
			font := parseFont(t, fonttest.New(10).WithPredefinedCharset(id))

			_, _, err := Generate(font, format.TypeCharset2, DefaultConfig())
			require.ErrorIs(t, err, errs.ErrUnsupportedCharset)
		}
	})

	t.Run("Multiple fonts", func(t *testing.T) {
		font := parseFont(t, fonttest.New(10).WithCharset(2, charsetRanges10...).WithFontCount(2))

		_, _, err := Generate(font, format.TypeCharset2, DefaultConfig())
		require.ErrorIs(t, err, errs.ErrMultipleFonts)
	})

	t.Run("No glyphs", func(t *testing.T) {
		font := parseFont(t, fonttest.New(0).WithCharset(2, charsetRanges10...))

		_, _, err := Generate(font, format.TypeCharset2, DefaultConfig())
		require.ErrorIs(t, err, errs.ErrEmptyInput)
	})

	t.Run("No CFF table", func(t *testing.T) {
		font := parseFont(t, fonttest.New(10))

		_, _, err := Generate(font, format.TypeCharset1, DefaultConfig())
		require.ErrorIs(t, err, errs.ErrMissingTable)
	})

	t.Run("Truncated ranges", func(t *testing.T) {
		src := &fakeSource{
			charset:   sfnt.CFFCharset{TableOffset: 0, CharsetOffset: 3, FontCount: 1},
			numGlyphs: 100,
			data:      []byte{0, 0, 0, 2, 0x00, 0x01, 0x00, 0x04},
		}

		_, _, err := Generate(src, format.TypeCharset2, DefaultConfig())
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
	})
}

func TestReadCharset(t *testing.T) {
	src := &fakeSource{data: []byte{
		1,          // format
		0x00, 0x05, // first
		0x02,       // nLeft
		0x01, 0x00, // first
		0xFF,       // nLeft
	}}

	cs, err := readCharset(src, 0, 3+256)
	require.NoError(t, err)
	require.Equal(t, uint8(1), cs.format)
	require.Equal(t, []uint16{5, 256}, cs.first)
	require.Equal(t, []uint16{2, 255}, cs.nLeft)

	// stops as soon as numGlyphs is covered
	cs, err = readCharset(src, 0, 3)
	require.NoError(t, err)
	require.Len(t, cs.first, 1)
}
