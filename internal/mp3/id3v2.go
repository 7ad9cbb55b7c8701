package mp3

import (
	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// ID3v2 frame IDs mapped onto TrackMetadata.
const (
	frameTitle  = "TIT2"
	frameArtist = "TPE1"
	frameAlbum  = "TALB"
)

const (
	id3v2HeaderSize = 10
	frameHeaderSize = 10

	// maxFrameBytes is the largest frame payload read into memory. Bigger
	// frames (pictures, lyrics, corrupt size fields) are skipped.
	maxFrameBytes = 512
)

// ID3v2Header is the fixed 10-byte tag header.
type ID3v2Header struct {
	Version  byte // major version: 3 or 4 in practice
	Revision byte
	Flags    byte
	Size     uint32 // tag size excluding the header, decoded from synchsafe
}

// DecodeSynchsafe decodes a 28-bit synchsafe integer: the top bit of each
// byte is ignored and the remaining 7 bits are concatenated big-endian.
func DecodeSynchsafe(b [4]byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// readID3v2Header reads the header at offset 0. ok is false when the file
// does not start with "ID3".
func readID3v2Header(c *binary.Cursor) (ID3v2Header, bool) {
	if err := c.Seek(0); err != nil {
		return ID3v2Header{}, false
	}
	buf, err := c.Read(id3v2HeaderSize, "ID3v2 header")
	if err != nil || string(buf[0:3]) != "ID3" {
		return ID3v2Header{}, false
	}
	return ID3v2Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     DecodeSynchsafe([4]byte(buf[6:10])),
	}, true
}

// frameSize decodes a frame header size field. Only ID3v2.4 stores frame
// sizes as synchsafe; earlier versions use a plain big-endian integer.
func frameSize(b []byte, version byte) uint32 {
	if version == 4 {
		return DecodeSynchsafe([4]byte(b))
	}
	return binary.Decode[uint32](b, binary.BigEndian)
}

// extendedHeaderSize returns how many bytes the optional extended header
// occupies after the tag header.
func extendedHeaderSize(c *binary.Cursor, h ID3v2Header) int64 {
	if h.Flags&0x40 == 0 {
		return 0
	}
	if err := c.Seek(id3v2HeaderSize); err != nil {
		return 0
	}
	buf, err := c.Read(4, "extended header size")
	if err != nil {
		return 0
	}
	if h.Version == 4 {
		// ID3v2.4: synchsafe size including the size field itself
		return int64(DecodeSynchsafe([4]byte(buf)))
	}
	// ID3v2.3: size excludes the size field
	return int64(binary.Decode[uint32](buf, binary.BigEndian)) + 4
}

// parseID3v2Frames walks the frames inside the tag and assigns title,
// artist and album.
func parseID3v2Frames(c *binary.Cursor, h ID3v2Header, res *types.Result) {
	size := c.Size()
	end := int64(id3v2HeaderSize) + int64(h.Size)
	pos := int64(id3v2HeaderSize) + extendedHeaderSize(c, h)

	for pos < end && pos+frameHeaderSize < size {
		if err := c.Seek(pos); err != nil {
			res.Warn("metadata", pos, "seek to frame: %v", err)
			return
		}
		header, err := c.Read(frameHeaderSize, "ID3v2 frame header")
		if err != nil {
			res.Warn("metadata", pos, "failed to read frame header: %v", err)
			return
		}

		// A NUL frame ID marks the start of padding.
		if header[0] == 0 {
			return
		}

		id := string(header[0:4])
		length := int64(frameSize(header[4:8], h.Version))
		payloadOffset := pos + frameHeaderSize
		pos = payloadOffset + length

		if length == 0 || length > maxFrameBytes {
			continue
		}

		payload, err := c.Read(int(length), "frame "+id)
		if err != nil {
			res.Warn("metadata", payloadOffset, "failed to read frame %s: %v", id, err)
			return
		}

		switch id {
		case frameTitle:
			res.Metadata.Title = decodeTextFrame(payload, payloadOffset, res)
		case frameArtist:
			res.Metadata.Artist = decodeTextFrame(payload, payloadOffset, res)
		case frameAlbum:
			res.Metadata.Album = decodeTextFrame(payload, payloadOffset, res)
		}
	}
}

// decodeTextFrame splits the encoding byte from a text frame payload.
func decodeTextFrame(payload []byte, offset int64, res *types.Result) string {
	if len(payload) < 1 {
		return ""
	}
	encoding := TextEncoding(payload[0])
	if !encoding.Known() {
		res.Warn("metadata", offset, "unknown text encoding %d, reading as Latin-1", payload[0])
	}
	text, err := DecodeText(payload[1:], encoding)
	if err != nil {
		res.Warn("metadata", offset, "failed to decode text: %v", err)
	}
	return text
}
