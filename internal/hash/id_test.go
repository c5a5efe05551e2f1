package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Digest([]byte(tt.data)))
		})
	}
}

func TestDigest_Differs(t *testing.T) {
	assert.NotEqual(t, Digest([]byte{0x01, 0x00, 0x00}), Digest([]byte{0x00, 0x00, 0x01}))
}
