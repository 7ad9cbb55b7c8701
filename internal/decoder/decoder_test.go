package decoder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/trackmeta/internal/output"
	"github.com/simonhull/trackmeta/internal/types"
)

func writeWAV(t *testing.T, rate, bits, channels int) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probe.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, bits, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           make([]int, rate/10*channels),
		SourceBitDepth: bits,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestProbe_WAV(t *testing.T) {
	f := writeWAV(t, 48000, 24, 2)

	params, err := Probe(f, types.FormatWAV, types.StreamInfo{})

	require.NoError(t, err)
	assert.Equal(t, output.StreamParams{SampleRate: 48000, Channels: 2, BitsPerSample: 24}, params)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Zero(t, pos, "reader should be rewound")
}

func TestProbe_WAVFallsBackToStreamInfo(t *testing.T) {
	r := bytes.NewReader([]byte("not a riff header at all"))
	fallback := types.StreamInfo{SampleRate: 8000, Channels: 1, BitsPerSample: 16}

	params, err := Probe(r, types.FormatWAV, fallback)

	require.NoError(t, err)
	assert.Equal(t, 16000, params.ByteRate())
}

func TestProbe_WAVInvalidWithoutFallback(t *testing.T) {
	r := bytes.NewReader([]byte("garbage"))

	_, err := Probe(r, types.FormatWAV, types.StreamInfo{})

	assert.Error(t, err)
}

func TestProbe_FLAC(t *testing.T) {
	info := types.StreamInfo{SampleRate: 96000, Channels: 2, BitsPerSample: 24}

	params, err := Probe(bytes.NewReader(nil), types.FormatFLAC, info)

	require.NoError(t, err)
	assert.Equal(t, 96000*2*3, params.ByteRate())
}

func TestProbe_FLACWithoutStreamInfo(t *testing.T) {
	_, err := Probe(bytes.NewReader(nil), types.FormatFLAC, types.StreamInfo{})
	assert.ErrorIs(t, err, ErrNoStreamParams)
}

func TestProbe_MP3DecodesTo16BitStereo(t *testing.T) {
	params, err := Probe(bytes.NewReader(nil), types.FormatMP3, types.StreamInfo{SampleRate: 44100})

	require.NoError(t, err)
	assert.Equal(t, output.StreamParams{SampleRate: 44100, Channels: 2, BitsPerSample: 16}, params)
}

func TestProbe_MP3Mono(t *testing.T) {
	params, err := Probe(bytes.NewReader(nil), types.FormatMP3, types.StreamInfo{SampleRate: 22050, Channels: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, params.Channels)
}

func TestProbe_Unsupported(t *testing.T) {
	_, err := Probe(bytes.NewReader(nil), types.FormatUnsupported, types.StreamInfo{SampleRate: 44100, Channels: 2, BitsPerSample: 16})

	var unsupported *types.UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)
}
