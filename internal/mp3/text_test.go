package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  TextEncoding
		want string
	}{
		{"latin1 ascii", []byte("hello"), EncodingLatin1, "hello"},
		{"latin1 high bytes", []byte{'n', 0xE4, 'c', 'h', 's', 't', 'e'}, EncodingLatin1, "nächste"},
		{"latin1 terminator", []byte("abc\x00def"), EncodingLatin1, "abc"},
		{"utf16 le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, EncodingUTF16, "hi"},
		{"utf16 be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, EncodingUTF16, "hi"},
		{"utf16 terminator is unit aligned", []byte{0xFF, 0xFE, 0x00, 0x01, 0x00, 0x00}, EncodingUTF16, "Ā"},
		{"utf16 odd trailing byte", []byte{0xFF, 0xFE, 'o', 0, 'k', 0, 'x'}, EncodingUTF16, "ok"},
		{"utf16 bom only", []byte{0xFF, 0xFE}, EncodingUTF16, ""},
		{"utf16be", []byte{0x00, 0xE9, 0x00, 0x00, 0x00, 'z'}, EncodingUTF16BE, "é"},
		{"utf8", []byte("ü\x00tail"), EncodingUTF8, "ü"},
		{"utf8 invalid bytes replaced", []byte{'a', 0xFF, 'b'}, EncodingUTF8, "a\uFFFDb"},
		{"unknown encoding as latin1", []byte{0xA9}, TextEncoding(9), "©"},
		{"empty", nil, EncodingLatin1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.data, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextEncoding_Known(t *testing.T) {
	assert.True(t, EncodingLatin1.Known())
	assert.True(t, EncodingUTF8.Known())
	assert.False(t, TextEncoding(4).Known())
}

func TestTerminate(t *testing.T) {
	assert.Equal(t, []byte("ab"), terminate([]byte("ab\x00c"), 1))
	assert.Equal(t, []byte("abc"), terminate([]byte("abc"), 1))
	// 0x00 0x00 straddling a unit boundary is not a terminator.
	assert.Equal(t, []byte{'a', 0x00, 0x00, 'b'}, terminate([]byte{'a', 0x00, 0x00, 'b'}, 2))
	assert.Equal(t, []byte{'a', 0x00}, terminate([]byte{'a', 0x00, 0x00, 0x00, 'b', 0x00}, 2))
}

func TestDecodeLatin1(t *testing.T) {
	assert.Equal(t, "ÿ", DecodeLatin1([]byte{0xFF}))
	assert.Equal(t, "plain", DecodeLatin1([]byte("plain")))
}
