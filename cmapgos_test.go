package cmapgos

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/gos"
	"github.com/arloliu/cmapgos/internal/fonttest"
	"github.com/arloliu/cmapgos/sfnt"
)

func testFontData() []byte {
	return fonttest.New(10).
		WithCMap4(
			fonttest.Segment{Start: 0x20, End: 0x20, IDDelta: -29},
			fonttest.Segment{Start: 0x41, End: 0x5A, IDRangeOffset: 4},
		).
		WithCMap12(
			fonttest.Group{Start: 0x20, End: 0x20, GID: 3},
			fonttest.Group{Start: 0x41, End: 0x4A, GID: 4},
			fonttest.Group{Start: 0x4B, End: 0x5A, GID: 5},
		).
		WithCharset(2, fonttest.Range{First: 1, NLeft: 9}).
		Build()
}

func newTestCompacter(t *testing.T, opts ...Option) *Compacter {
	t.Helper()

	font, err := sfnt.Parse(testFontData())
	require.NoError(t, err)
	c, err := NewCompacter(font, opts...)
	require.NoError(t, err)

	return c
}

func TestGenerateGOSTypes(t *testing.T) {
	c := newTestCompacter(t)

	t.Run("Empty list", func(t *testing.T) {
		data, err := c.GenerateGOSTypes(nil)
		require.NoError(t, err)
		require.Equal(t, []byte{0x00}, data)
	})

	t.Run("Single type", func(t *testing.T) {
		payload, err := c.GenerateGOSType(format.TypeCMap12Raw)
		require.NoError(t, err)

		data, err := c.GenerateGOSTypes([]format.GOSType{format.TypeCMap12Raw})
		require.NoError(t, err)
		require.Equal(t, append([]byte{0x01}, payload...), data)
		require.Len(t, data, 1+3+12*3)
	})

	t.Run("Order and duplicates are kept", func(t *testing.T) {
		types := []format.GOSType{format.TypeCMap4, format.TypeCharset1, format.TypeCMap4, format.TypeCMap12Delta}

		var want []byte
		want = append(want, byte(len(types)))
		for _, typ := range types {
			payload, err := c.GenerateGOSType(typ)
			require.NoError(t, err)
			want = append(want, payload...)
		}

		data, err := c.GenerateGOSTypes(types)
		require.NoError(t, err)
		require.Equal(t, want, data)
		// type 7 was requested, the font carries a format 2 charset
		require.Equal(t, byte(format.TypeCMap4), data[1])
		require.Equal(t, byte(format.TypeCharset2), data[1+4+4])
	})

	t.Run("Failure returns nothing", func(t *testing.T) {
		data, err := c.GenerateGOSTypes([]format.GOSType{format.TypeCMap12Raw, format.GOSType(1)})
		require.ErrorIs(t, err, errs.ErrUnknownGOSType)
		require.Nil(t, data)
	})

	t.Run("Too many types", func(t *testing.T) {
		types := make([]format.GOSType, 256)
		for i := range types {
			types[i] = format.TypeCMap12Raw
		}

		_, err := c.GenerateGOSTypes(types)
		require.ErrorIs(t, err, errs.ErrTooManyTypes)

		data, err := c.GenerateGOSTypes(types[:255])
		require.NoError(t, err)
		require.Equal(t, byte(255), data[0])
	})
}

func TestGenerateGOSType_Isolated(t *testing.T) {
	c := newTestCompacter(t)

	first, err := c.GenerateGOSType(format.TypeCMap12DeltaGID)
	require.NoError(t, err)
	_, err = c.GenerateGOSType(format.TypeCMap12Raw)
	require.NoError(t, err)
	again, err := c.GenerateGOSType(format.TypeCMap12DeltaGID)
	require.NoError(t, err)

	require.Equal(t, first, again)
}

func TestCompact(t *testing.T) {
	data, err := Compact(testFontData(), []format.GOSType{format.TypeCMap4})
	require.NoError(t, err)
	// counts 1 and 2: 01 10
	require.Equal(t, []byte{0x01, 0x04, 0x00, 0x02, 0x60}, data)

	_, err = Compact([]byte("not a font"), nil)
	require.ErrorIs(t, err, errs.ErrInvalidFontData)
}

func TestOptions(t *testing.T) {
	t.Run("Subtable selection", func(t *testing.T) {
		c := newTestCompacter(t, WithCMap12Encoding(0, 4), WithCMap4Encoding(0, 3))
		require.Equal(t, gos.Subtable{PlatformID: 0, EncodingID: 4}, c.cfg.CMap12)
		require.Equal(t, gos.Subtable{PlatformID: 0, EncodingID: 3}, c.cfg.CMap4)

		_, err := c.GenerateGOSType(format.TypeCMap12Raw)
		require.ErrorIs(t, err, errs.ErrMissingSubtable)
	})

	t.Run("Nil logger", func(t *testing.T) {
		font, err := sfnt.Parse(testFontData())
		require.NoError(t, err)

		_, err = NewCompacter(font, WithLogger(nil))
		require.Error(t, err)
	})

	t.Run("Nil source", func(t *testing.T) {
		_, err := NewCompacter(nil)
		require.Error(t, err)
	})

	t.Run("Logger", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		c := newTestCompacter(t, WithLogger(logger))

		_, err := c.GenerateGOSTypes([]format.GOSType{format.TypeCMap12Raw})
		require.NoError(t, err)

		entries := hook.AllEntries()
		require.Len(t, entries, 2)
		require.Equal(t, int(format.TypeCMap12Raw), entries[0].Data["gos_type"])
		require.Equal(t, 3, entries[0].Data["entries"])
		require.Equal(t, 3+12*3, entries[0].Data["bytes"])
		require.Equal(t, 1+3+12*3, entries[1].Data["bytes"])
	})
}
