package mp3

import (
	"strings"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// ID3v1 is a fixed 128-byte trailer.
const (
	id3v1Size        = 128
	id3v1FieldLength = 30

	id3v1TitleOffset  = 3
	id3v1ArtistOffset = 33
	id3v1AlbumOffset  = 63
)

// parseID3v1 reads the trailing tag and fills only fields that are still
// empty. It reports whether a "TAG" signature was found.
func parseID3v1(c *binary.Cursor, m *types.TrackMetadata) bool {
	start := c.Size() - id3v1Size
	if start < 0 {
		return false
	}
	if err := c.Seek(start); err != nil {
		return false
	}
	tag, err := c.Read(id3v1Size, "ID3v1 tag")
	if err != nil || string(tag[0:3]) != "TAG" {
		return false
	}

	fill := func(dst *string, offset int) {
		if *dst == "" {
			*dst = id3v1Field(tag[offset : offset+id3v1FieldLength])
		}
	}
	fill(&m.Title, id3v1TitleOffset)
	fill(&m.Artist, id3v1ArtistOffset)
	fill(&m.Album, id3v1AlbumOffset)
	return true
}

// id3v1Field trims NUL and space padding and converts Latin-1 to UTF-8.
func id3v1Field(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimRight(DecodeLatin1(b), " ")
}
