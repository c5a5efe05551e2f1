package sfnt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/internal/fonttest"
)

func TestParse(t *testing.T) {
	t.Run("TrueType", func(t *testing.T) {
		data := fonttest.New(10).WithCMap12(fonttest.Group{Start: 0x20, End: 0x7E, GID: 1}).Build()

		font, err := Parse(data)
		require.NoError(t, err)
		require.False(t, font.IsCFF())
		require.True(t, font.HasTable("cmap"))
		require.True(t, font.HasTable("maxp"))
		require.False(t, font.HasTable("CFF "))
		require.Equal(t, len(data), font.Len())

		n, err := font.NumGlyphs()
		require.NoError(t, err)
		require.Equal(t, 10, n)
	})

	t.Run("CFF flavored", func(t *testing.T) {
		data := fonttest.New(3).WithCharset(2, fonttest.Range{First: 1, NLeft: 1}).Build()

		font, err := Parse(data)
		require.NoError(t, err)
		require.True(t, font.IsCFF())
		require.True(t, font.HasTable("CFF "))
	})

	t.Run("Too short", func(t *testing.T) {
		_, err := Parse([]byte{0, 1, 0, 0})
		require.ErrorIs(t, err, errs.ErrInvalidFontData)
	})

	t.Run("Bad version", func(t *testing.T) {
		data := fonttest.New(1).Build()
		copy(data, "wOFF")

		_, err := Parse(data)
		require.ErrorIs(t, err, errs.ErrInvalidFontData)
	})

	t.Run("Truncated directory", func(t *testing.T) {
		data := fonttest.New(1).Build()

		_, err := Parse(data[:14])
		require.ErrorIs(t, err, errs.ErrInvalidFontData)
	})

	t.Run("Table past end of file", func(t *testing.T) {
		data := fonttest.New(1).Build()

		_, err := Parse(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrInvalidFontData)
	})
}

func TestFont_Table(t *testing.T) {
	font, err := Parse(fonttest.New(7).Build())
	require.NoError(t, err)

	b, offset, err := font.Table("maxp")
	require.NoError(t, err)
	require.Len(t, b, 6)
	require.Equal(t, uint32(12+16), offset)
	require.Equal(t, font.Bytes()[offset:offset+6], b)

	_, _, err = font.Table("cmap")
	require.ErrorIs(t, err, errs.ErrMissingTable)

	_, err = font.CFFCharset()
	require.ErrorIs(t, err, errs.ErrMissingTable)
}

func TestFont_PositionedReads(t *testing.T) {
	font, err := Parse(fonttest.New(0x1234).Build())
	require.NoError(t, err)

	_, offset, err := font.Table("maxp")
	require.NoError(t, err)

	v8, err := font.Uint8At(int(offset) + 4)
	require.NoError(t, err)
	require.Equal(t, uint8(0x12), v8)

	v16, err := font.Uint16At(int(offset) + 4)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), v16)

	_, err = font.Uint8At(-1)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	_, err = font.Uint8At(font.Len())
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	_, err = font.Uint16At(font.Len() - 1)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}
