package encoding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmapgos/errs"
)

func deltas(t *testing.T, src []int64) []int64 {
	t.Helper()

	dst := make([]int64, len(src))
	require.NoError(t, Delta(dst, src))

	return dst
}

func TestDelta(t *testing.T) {
	require.Equal(t, []int64{4, 8, 3, 7}, deltas(t, []int64{4, 12, 15, 22}))
	require.Equal(t, []int64{10, -5, 0}, deltas(t, []int64{10, 5, 5}))
	require.Equal(t, []int64{-3}, deltas(t, []int64{-3}))
}

func TestDelta_Empty(t *testing.T) {
	err := Delta(nil, []int64{})
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	err = Delta(nil, nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestDelta_InPlace(t *testing.T) {
	values := []int64{0x20, 0x21, 0x30, 0x4E00}
	require.NoError(t, Delta(values, values))
	require.Equal(t, []int64{0x20, 0x1, 0xF, 0x4DD0}, values)
}

func TestDelta_LengthMismatch(t *testing.T) {
	err := Delta(make([]int64, 2), []int64{1, 2, 3})
	require.Error(t, err)
}

func TestDelta_RunningSumRestoresInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 200 {
		n := rng.Intn(64) + 1
		src := make([]int64, n)
		for i := range src {
			src[i] = rng.Int63n(1<<33) - 1<<32
		}

		d := deltas(t, src)
		require.Equal(t, src[0], d[0])

		var sum int64
		for i, v := range d {
			sum += v
			require.Equal(t, src[i], sum)
		}
	}
}
