package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// TrackMetadata is an alias to types.TrackMetadata.
type TrackMetadata = types.TrackMetadata

// StreamInfo is an alias to types.StreamInfo.
type StreamInfo = types.StreamInfo

// Fallback values used when a tag field is missing.
const (
	UnknownArtist = types.UnknownArtist
	UnknownAlbum  = types.UnknownAlbum
)

// FileStem returns the base name of path without its final extension.
func FileStem(path string) string {
	return types.FileStem(path)
}

// FormatDuration renders seconds as "m:ss", or "h:mm:ss" past one hour.
func FormatDuration(seconds float64) string {
	return types.FormatDuration(seconds)
}
