// Package wav reads PCM WAV headers and RIFF LIST/INFO tags.
package wav

import (
	"strings"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
)

const (
	formatPCM = 1

	// fmtOffset is where the fmt chunk payload starts in a canonical file.
	fmtOffset     = 20
	fmtSizeOffset = 16

	// maxInfoBytes is the largest INFO value read into memory.
	maxInfoBytes = 512
)

// INFO sub-chunk IDs mapped onto TrackMetadata.
const (
	infoTitle  = "INAM"
	infoArtist = "IART"
	infoAlbum  = "IPRD"
)

// Header holds the PCM format fields.
type Header struct {
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// parser implements registry.FormatParser for WAV files
type parser struct{}

// Parse validates the RIFF/PCM header, then walks chunks until "data".
// The result is OK once the header is valid; INFO tags and the duration
// are filled when their chunks are reached.
func (p *parser) Parse(c *binary.Cursor) types.Result {
	var res types.Result

	if err := c.Expect("RIFF", "RIFF signature"); err != nil {
		res.Warn("metadata", 0, "not a RIFF file: %v", err)
		return res
	}

	h, err := readHeader(c)
	if err != nil {
		res.Warn("technical", fmtOffset, "%v", err)
		return res
	}

	res.Stream = types.StreamInfo{
		SampleRate:    int(h.SampleRate),
		Channels:      int(h.Channels),
		BitsPerSample: int(h.BitsPerSample),
		Bitrate:       int(h.ByteRate) * 8,
	}
	res.OK = true

	walkChunks(c, chunksStart(c), h, &res)
	return res
}

// readHeader reads the format fields at their canonical offsets.
func readHeader(c *binary.Cursor) (Header, error) {
	if err := c.Seek(fmtOffset); err != nil {
		return Header{}, err
	}

	cr := binary.NewChainReader(c)
	format := binary.ReadChained[uint16](cr, binary.LittleEndian, "audio format")
	h := Header{
		Channels:   binary.ReadChained[uint16](cr, binary.LittleEndian, "channels"),
		SampleRate: binary.ReadChained[uint32](cr, binary.LittleEndian, "sample rate"),
		ByteRate:   binary.ReadChained[uint32](cr, binary.LittleEndian, "byte rate"),
		BlockAlign: binary.ReadChained[uint16](cr, binary.LittleEndian, "block align"),
	}
	h.BitsPerSample = binary.ReadChained[uint16](cr, binary.LittleEndian, "bits per sample")

	if err := cr.Error(); err != nil {
		return Header{}, err
	}
	if format != formatPCM {
		return Header{}, &types.UnsupportedFormatError{
			Path:   c.Path(),
			Reason: "WAV audio format is not PCM",
		}
	}
	return h, nil
}

// chunksStart returns the offset of the first chunk after fmt. The fmt
// chunk size is honored so extended fmt payloads are stepped over; an
// unreadable size falls back to the 16-byte PCM layout.
func chunksStart(c *binary.Cursor) int64 {
	start := int64(fmtOffset + 16)
	if err := c.Seek(fmtSizeOffset); err != nil {
		return start
	}
	size, err := binary.ReadLE[uint32](c, "fmt chunk size")
	if err != nil || size < 16 {
		return start
	}
	return int64(fmtOffset) + padded(int64(size))
}

// walkChunks visits top-level chunks. It stops at "data", at a chunk that
// runs past the end of the file, or when the file ends.
func walkChunks(c *binary.Cursor, pos int64, h Header, res *types.Result) {
	size := c.Size()

	for pos+8 <= size {
		if err := c.Seek(pos); err != nil {
			return
		}
		header, err := c.Read(8, "chunk header")
		if err != nil {
			res.Warn("metadata", pos, "failed to read chunk header: %v", err)
			return
		}
		id := string(header[0:4])
		length := int64(binary.Decode[uint32](header[4:8], binary.LittleEndian))

		payload := pos + 8
		switch id {
		case "data":
			if h.ByteRate > 0 {
				res.SetDuration(float64(length) / float64(h.ByteRate))
			} else {
				res.Warn("technical", pos, "byte rate is zero, duration unknown")
			}
			return

		case "LIST":
			parseList(c, payload, length, res)
		}

		next := payload + padded(length)
		if next > size {
			res.Warn("metadata", pos, "chunk %q overruns file", id)
			return
		}
		pos = next
	}
}

// parseList reads INFO sub-chunks inside a LIST chunk. Other list types
// are ignored.
func parseList(c *binary.Cursor, payload, length int64, res *types.Result) {
	if length < 4 {
		return
	}
	if err := c.Seek(payload); err != nil {
		return
	}
	listType, err := c.Read(4, "LIST type")
	if err != nil || string(listType) != "INFO" {
		return
	}

	end := min(payload+length, c.Size())
	pos := payload + 4

	for pos+8 < end {
		if err := c.Seek(pos); err != nil {
			return
		}
		header, err := c.Read(8, "INFO item header")
		if err != nil {
			res.Warn("metadata", pos, "failed to read INFO item: %v", err)
			return
		}
		id := string(header[0:4])
		itemLength := int64(binary.Decode[uint32](header[4:8], binary.LittleEndian))
		valueOffset := pos + 8
		pos = valueOffset + padded(itemLength)

		if itemLength > maxInfoBytes {
			continue
		}
		value, err := c.Read(int(itemLength), "INFO "+id)
		if err != nil {
			res.Warn("metadata", valueOffset, "failed to read INFO %s: %v", id, err)
			return
		}

		switch id {
		case infoTitle:
			res.Metadata.Title = infoString(value)
		case infoArtist:
			res.Metadata.Artist = infoString(value)
		case infoAlbum:
			res.Metadata.Album = infoString(value)
		}
	}
}

// infoString cuts an INFO value at its NUL terminator.
func infoString(b []byte) string {
	s, _, _ := strings.Cut(string(b), "\x00")
	return s
}

// padded rounds n up to the RIFF word boundary.
func padded(n int64) int64 {
	return n + n&1
}

// init registers the WAV parser
func init() {
	registry.Register(types.FormatWAV, &parser{})
}
