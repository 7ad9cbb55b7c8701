// Package vorbis provides Vorbis comment parsing for FLAC metadata blocks.
//
// Vorbis comments are UTF-8 strings in "KEY=VALUE" form. Field names are
// case-insensitive.
package vorbis

import (
	"fmt"
	"strings"

	"github.com/simonhull/trackmeta/internal/types"
)

// Field names mapped onto TrackMetadata.
const (
	KeyTitle  = "TITLE"
	KeyArtist = "ARTIST"
	KeyAlbum  = "ALBUM"
)

// Split separates a comment into key and value at the first '='.
func Split(comment string) (key, value string, err error) {
	key, value, ok := strings.Cut(comment, "=")
	if !ok {
		return "", "", fmt.Errorf("missing '=' in comment: %q", comment)
	}
	return key, value, nil
}

// ParseComment parses a single "KEY=VALUE" comment and assigns TITLE, ARTIST
// or ALBUM to m. Other keys are accepted and ignored.
//
// Returns an error if the comment is not in valid "KEY=VALUE" format.
func ParseComment(comment string, m *types.TrackMetadata) error {
	key, value, err := Split(comment)
	if err != nil {
		return err
	}

	switch {
	case strings.EqualFold(key, KeyTitle):
		m.Title = value
	case strings.EqualFold(key, KeyArtist):
		m.Artist = value
	case strings.EqualFold(key, KeyAlbum):
		m.Album = value
	}
	return nil
}
