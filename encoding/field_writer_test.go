package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmapgos/errs"
)

func TestFieldWriter_RoutesEscapes(t *testing.T) {
	w := NewFieldWriter()
	defer w.Finish()

	require.NoError(t, w.Write(3, 5))
	require.NoError(t, w.Write(40, 5))

	require.Equal(t, 1, w.Escapes())
	require.Equal(t, []byte{0x1F, 0xC0}, w.Primary())
	require.Equal(t, []byte{0x12, 0x80}, w.Secondary())
	require.Equal(t, []byte{0x1F, 0xC0, 0x12, 0x80}, w.AppendTo(nil))
}

func TestFieldWriter_EscapeOrder(t *testing.T) {
	w := NewFieldWriter()
	defer w.Finish()

	// every field escapes; secondary must keep encounter order
	values := []int64{-1, 7, 300, -17}
	for _, v := range values {
		require.NoError(t, w.Write(v, 3))
	}

	expected := NewBitStream()
	defer expected.Finish()
	for _, v := range values {
		non, err := NoN(v)
		require.NoError(t, err)
		expected.WriteBits(non.Value, non.Width)
	}

	require.Equal(t, []byte{0xFF, 0xF0}, w.Primary())
	require.Equal(t, expected.Bytes(), w.Secondary())
	require.Equal(t, 4, w.Escapes())
}

func TestFieldWriter_NoEscapes(t *testing.T) {
	w := NewFieldWriter()
	defer w.Finish()

	require.NoError(t, w.Write(1, 2))
	require.NoError(t, w.Write(2, 2))

	require.Equal(t, []byte{0x60}, w.AppendTo(nil))
	require.Empty(t, w.Secondary())
}

func TestFieldWriter_Errors(t *testing.T) {
	w := NewFieldWriter()
	defer w.Finish()

	require.ErrorIs(t, w.Write(1, 0), errs.ErrInvalidBitWidth)
	require.ErrorIs(t, w.Write(1<<40, 5), errs.ErrNibbleOverflow)
}
