package vorbis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/trackmeta/internal/types"
)

func TestParseComment(t *testing.T) {
	tests := []struct {
		comment string
		want    types.TrackMetadata
	}{
		{"TITLE=Blue in Green", types.TrackMetadata{Title: "Blue in Green"}},
		{"title=lower", types.TrackMetadata{Title: "lower"}},
		{"Artist=Miles Davis", types.TrackMetadata{Artist: "Miles Davis"}},
		{"ALBUM=Kind of Blue", types.TrackMetadata{Album: "Kind of Blue"}},
		{"ALBUM=a=b", types.TrackMetadata{Album: "a=b"}},
		{"TITLE=", types.TrackMetadata{}},
		{"GENRE=Jazz", types.TrackMetadata{}},
		{"TITLEX=nope", types.TrackMetadata{}},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			var m types.TrackMetadata
			require.NoError(t, ParseComment(tt.comment, &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestParseComment_MissingSeparator(t *testing.T) {
	m := types.TrackMetadata{Title: "kept"}
	err := ParseComment("NOSEPARATOR", &m)

	assert.Error(t, err)
	assert.Equal(t, "kept", m.Title)
}

func TestSplit(t *testing.T) {
	key, value, err := Split("REPLAYGAIN_TRACK_GAIN=-6.5 dB")
	require.NoError(t, err)
	assert.Equal(t, "REPLAYGAIN_TRACK_GAIN", key)
	assert.Equal(t, "-6.5 dB", value)
}
