// Package mp3 reads ID3v2 and ID3v1 tags and estimates MP3 duration from
// the first frame header.
package mp3

import (
	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
)

// parser implements registry.FormatParser for MP3 files
type parser struct{}

// Parse reads the ID3v2 tag if present, always runs the duration estimate,
// then falls back to ID3v1 for any field still empty. The result is OK
// when either tag was found.
func (p *parser) Parse(c *binary.Cursor) types.Result {
	var res types.Result

	header, hasID3v2 := readID3v2Header(c)
	if hasID3v2 {
		parseID3v2Frames(c, header, &res)
	}

	parseTechnicalInfo(c, &res)

	hasID3v1 := false
	if !hasID3v2 || !res.Metadata.IsComplete() {
		hasID3v1 = parseID3v1(c, &res.Metadata)
	}

	res.OK = hasID3v2 || hasID3v1
	return res
}

// init registers the MP3 parser
func init() {
	registry.Register(types.FormatMP3, &parser{})
}
