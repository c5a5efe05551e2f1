package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGOSType(t *testing.T) {
	for _, want := range GOSTypes {
		got, err := ParseGOSType(int(want))
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NotEqual(t, "Unknown", got.String())
	}

	for _, id := range []int{-1, 0, 1, 8, 255, 256} {
		_, err := ParseGOSType(id)
		require.Error(t, err, "id %d", id)
	}
}

func TestGOSType_IsCharset(t *testing.T) {
	require.True(t, TypeCharset1.IsCharset())
	require.True(t, TypeCharset2.IsCharset())
	require.False(t, TypeCMap4.IsCharset())
	require.False(t, TypeCMap12Raw.IsCharset())
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
	}{
		{"none", CompressionNone},
		{"zstd", CompressionZstd},
		{"s2", CompressionS2},
		{"lz4", CompressionLZ4},
		{"LZ4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompressionType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
	require.Equal(t, "Unknown", CompressionType(0).String())
}
