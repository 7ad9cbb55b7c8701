package mp3

import (
	"bytes"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/fixture"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
)

func parseBytes(t *testing.T, data []byte) types.Result {
	t.Helper()
	c := binary.NewCursor(bytes.NewReader(data), int64(len(data)), "test.mp3")
	return (&parser{}).Parse(c)
}

// frame128 is an MPEG1 Layer III, 128 kbps, 44100 Hz header.
func frame128() []byte {
	return fixture.MPEGHeader(fixture.MPEG1, 4, 0)
}

func TestParse_NoTagDurationEstimate(t *testing.T) {
	data := fixture.MP3(16000, frame128())

	res := parseBytes(t, data)

	assert.False(t, res.OK)
	assert.InDelta(t, 1.0, res.Duration, 1e-2)
	assert.Equal(t, 128000, res.Stream.Bitrate)
	assert.Equal(t, 44100, res.Stream.SampleRate)
	assert.Equal(t, 2, res.Stream.Channels)
	assert.Empty(t, res.Metadata)
}

func TestParse_ID3v23Latin1(t *testing.T) {
	tagBytes := fixture.ID3v2(3, 32,
		fixture.TextFrame("TIT2", fixture.EncLatin1, []byte("Caf\xe9\x00")),
		fixture.TextFrame("TPE1", fixture.EncLatin1, []byte("Artist")),
		fixture.TextFrame("TALB", fixture.EncLatin1, []byte("Album\x00\x00\x00")),
	)
	data := fixture.MP3(4000, tagBytes, frame128())

	res := parseBytes(t, data)

	require.True(t, res.OK)
	assert.Equal(t, "Café", res.Metadata.Title)
	assert.Equal(t, "Artist", res.Metadata.Artist)
	assert.Equal(t, "Album", res.Metadata.Album)
	// The estimate covers the whole file, tag included.
	assert.InDelta(t, 4000*8/128000.0, res.Duration, 1e-9)
	assert.Empty(t, res.Warnings)
}

func TestParse_TextEncodings(t *testing.T) {
	tests := []struct {
		name  string
		frame fixture.Frame
		want  string
	}{
		{
			name:  "utf16 little-endian bom",
			frame: fixture.TextFrame("TIT2", fixture.EncUTF16, append(fixture.UTF16LE("Ünïcode"), 0, 0, 'x', 'x')),
			want:  "Ünïcode",
		},
		{
			name:  "utf16 big-endian bom",
			frame: fixture.TextFrame("TIT2", fixture.EncUTF16, append([]byte{0xFE, 0xFF}, fixture.UTF16BE("Grüße")...)),
			want:  "Grüße",
		},
		{
			name:  "utf16 without bom",
			frame: fixture.TextFrame("TIT2", fixture.EncUTF16, fixture.UTF16BE("plain")),
			want:  "plain",
		},
		{
			name:  "utf16be",
			frame: fixture.TextFrame("TIT2", fixture.EncUTF16BE, append(fixture.UTF16BE("日本語"), 0, 0)),
			want:  "日本語",
		},
		{
			name:  "utf16 surrogate pair",
			frame: fixture.TextFrame("TIT2", fixture.EncUTF16, fixture.UTF16LE("a🎵b")),
			want:  "a🎵b",
		},
		{
			name:  "utf8",
			frame: fixture.TextFrame("TIT2", fixture.EncUTF8, []byte("naïve\x00rest")),
			want:  "naïve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fixture.MP3(2000, fixture.ID3v2(3, 0, tt.frame), frame128())
			res := parseBytes(t, data)
			require.True(t, res.OK)
			assert.Equal(t, tt.want, res.Metadata.Title)
		})
	}
}

func TestParse_UnknownEncodingWarns(t *testing.T) {
	data := fixture.MP3(2000,
		fixture.ID3v2(3, 0, fixture.TextFrame("TPE1", 7, []byte("abc"))),
		frame128())

	res := parseBytes(t, data)

	assert.Equal(t, "abc", res.Metadata.Artist)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "unknown text encoding")
}

func TestParse_OversizedFrameSkipped(t *testing.T) {
	big := fixture.Frame{ID: "APIC", Data: make([]byte, maxFrameBytes+100)}
	data := fixture.MP3(4000,
		fixture.ID3v2(3, 0,
			big,
			fixture.TextFrame("TIT2", fixture.EncLatin1, []byte("After Picture")),
		),
		frame128())

	res := parseBytes(t, data)

	require.True(t, res.OK)
	assert.Equal(t, "After Picture", res.Metadata.Title)
}

func TestParse_OversizedTextFrameIgnored(t *testing.T) {
	long := make([]byte, maxFrameBytes+1)
	for i := range long {
		long[i] = 'a'
	}
	data := fixture.MP3(4000,
		fixture.ID3v2(3, 0, fixture.TextFrame("TIT2", fixture.EncLatin1, long)),
		frame128())

	res := parseBytes(t, data)

	assert.True(t, res.OK)
	assert.Empty(t, res.Metadata.Title)
}

func TestParse_ID3v24SynchsafeFrameSizes(t *testing.T) {
	// 200 encodes differently as synchsafe (0x01 0x48) and plain (0xC8),
	// so a misread size would land the walk inside PRIV's payload.
	priv := fixture.Frame{ID: "PRIV", Data: bytes.Repeat([]byte{'p'}, 200)}
	data := fixture.MP3(4000,
		fixture.ID3v2(4, 16,
			priv,
			fixture.TextFrame("TALB", fixture.EncUTF8, []byte("Synchsafe Album")),
		),
		frame128())

	res := parseBytes(t, data)

	require.True(t, res.OK)
	assert.Equal(t, "Synchsafe Album", res.Metadata.Album)
}

func TestParse_PaddingEndsWalk(t *testing.T) {
	tagBytes := fixture.ID3v2(3, 64, fixture.TextFrame("TIT2", fixture.EncLatin1, []byte("Only")))
	data := fixture.MP3(2000, tagBytes, frame128())

	res := parseBytes(t, data)

	assert.Equal(t, "Only", res.Metadata.Title)
	assert.Empty(t, res.Warnings)
}

func TestParse_ID3v1Fallback(t *testing.T) {
	data := append(fixture.MP3(16000-128, frame128()), fixture.ID3v1("V1 Title", "V1 Artist", "V1 Album")...)

	res := parseBytes(t, data)

	require.True(t, res.OK)
	assert.Equal(t, "V1 Title", res.Metadata.Title)
	assert.Equal(t, "V1 Artist", res.Metadata.Artist)
	assert.Equal(t, "V1 Album", res.Metadata.Album)
	assert.InDelta(t, 1.0, res.Duration, 1e-2)
}

func TestParse_ID3v1FillsOnlyEmptyFields(t *testing.T) {
	v2 := fixture.ID3v2(3, 0, fixture.TextFrame("TIT2", fixture.EncLatin1, []byte("From V2")))
	data := append(fixture.MP3(3000, v2, frame128()), fixture.ID3v1("From V1", "V1 Artist     ", "Alb\xfcm")...)

	res := parseBytes(t, data)

	require.True(t, res.OK)
	assert.Equal(t, "From V2", res.Metadata.Title)
	assert.Equal(t, "V1 Artist", res.Metadata.Artist)
	assert.Equal(t, "Albüm", res.Metadata.Album)
}

func TestParse_ID3v2WrittenByTagLibrary(t *testing.T) {
	tests := []struct {
		name     string
		version  byte
		encoding id3v2.Encoding
	}{
		{"v2.3 utf16", 3, id3v2.EncodingUTF16},
		{"v2.3 latin1", 3, id3v2.EncodingISO},
		{"v2.4 utf8", 4, id3v2.EncodingUTF8},
		{"v2.4 utf16be", 4, id3v2.EncodingUTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := id3v2.NewEmptyTag()
			tg.SetVersion(tt.version)
			tg.SetDefaultEncoding(tt.encoding)
			tg.SetTitle("Título")
			tg.SetArtist("Artist Name")
			tg.SetAlbum("Album Name")

			var buf bytes.Buffer
			_, err := tg.WriteTo(&buf)
			require.NoError(t, err)

			data := fixture.MP3(8000, buf.Bytes(), frame128())
			res := parseBytes(t, data)

			require.True(t, res.OK)
			assert.Equal(t, "Título", res.Metadata.Title)
			assert.Equal(t, "Artist Name", res.Metadata.Artist)
			assert.Equal(t, "Album Name", res.Metadata.Album)
		})
	}
}

func TestParse_MatchesTagLibrary(t *testing.T) {
	data := fixture.MP3(4000,
		fixture.ID3v2(3, 0,
			fixture.TextFrame("TIT2", fixture.EncLatin1, []byte("Oracle Title")),
			fixture.TextFrame("TPE1", fixture.EncLatin1, []byte("Oracle Artist")),
			fixture.TextFrame("TALB", fixture.EncLatin1, []byte("Oracle Album")),
		),
		frame128())

	res := parseBytes(t, data)
	require.True(t, res.OK)

	m, err := tag.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, tag.ID3v2_3, m.Format())
	assert.Equal(t, m.Title(), res.Metadata.Title)
	assert.Equal(t, m.Artist(), res.Metadata.Artist)
	assert.Equal(t, m.Album(), res.Metadata.Album)
}

func TestParse_EmptyFile(t *testing.T) {
	res := parseBytes(t, nil)

	assert.False(t, res.OK)
	assert.Zero(t, res.Duration)
}

func TestDecodeSynchsafe(t *testing.T) {
	tests := []struct {
		in   [4]byte
		want uint32
	}{
		{[4]byte{0, 0, 0, 0}, 0},
		{[4]byte{0, 0, 1, 0}, 128},
		{[4]byte{0, 0, 0, 127}, 127},
		{[4]byte{0x7F, 0x7F, 0x7F, 0x7F}, 1<<28 - 1},
		{[4]byte{0x80, 0x80, 0x81, 0xFF}, 128 + 127}, // top bits ignored
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeSynchsafe(tt.in), "%v", tt.in)
	}
}

func TestDecodeSynchsafe_RoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 127, 128, 200, 16383, 16384, 1<<28 - 1} {
		assert.Equal(t, n, DecodeSynchsafe([4]byte(fixture.Synchsafe(n))))
	}
}

func TestRegistered(t *testing.T) {
	assert.NotNil(t, registry.Get(types.FormatMP3))
}
