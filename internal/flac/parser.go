// Package flac reads FLAC metadata blocks: STREAMINFO for duration and
// VORBIS_COMMENT for title, artist and album.
package flac

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
	"github.com/simonhull/trackmeta/internal/vorbis"
)

// Metadata block types
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeApplication   = 2
	blockTypeSeekTable     = 3
	blockTypeVorbisComment = 4
	blockTypeCueSheet      = 5
	blockTypePicture       = 6
)

// Signature is the four-byte FLAC stream marker.
const Signature = "fLaC"

// maxCommentBytes caps how much of a single Vorbis comment is read into
// memory. Longer comments are truncated.
const maxCommentBytes = 256

// parser implements registry.FormatParser for FLAC files
type parser struct{}

// Parse walks the metadata blocks. The result is OK only when a
// VORBIS_COMMENT block was reached; a STREAMINFO duration is kept either way.
func (p *parser) Parse(c *binary.Cursor) types.Result {
	var res types.Result

	if err := c.Expect(Signature, "FLAC signature"); err != nil {
		res.Warn("metadata", 0, "not a FLAC stream: %v", err)
		return res
	}

	for {
		offset := c.Position()
		header, err := c.Read(4, "metadata block header")
		if err != nil {
			res.Warn("metadata", offset, "failed to read metadata block header: %v", err)
			return res
		}

		isLast := header[0]&0x80 != 0
		blockType := header[0] & 0x7F
		blockLength := int64(binary.Uint24BE(header[1:4]))

		switch blockType {
		case blockTypeStreamInfo:
			if err := parseStreamInfo(c, blockLength, &res); err != nil {
				res.Warn("technical", offset, "failed to parse STREAMINFO: %v", err)
				return res
			}

		case blockTypeVorbisComment:
			if err := parseVorbisComment(c, &res); err != nil {
				res.Warn("metadata", offset, "failed to parse Vorbis comments: %v", err)
			}
			res.OK = true
			return res

		default:
			// PADDING, APPLICATION, SEEKTABLE, CUESHEET, PICTURE and
			// reserved types carry nothing we need.
			if err := c.Skip(blockLength); err != nil {
				res.Warn("metadata", offset, "block type %d overruns file: %v", blockType, err)
				return res
			}
		}

		if isLast {
			return res
		}
	}
}

// parseStreamInfo decodes the fixed 34-byte STREAMINFO payload and skips any
// bytes beyond it.
func parseStreamInfo(c *binary.Cursor, blockLength int64, res *types.Result) error {
	if blockLength < StreamInfoSize {
		return fmt.Errorf("invalid STREAMINFO size: %d (expected %d)", blockLength, StreamInfoSize)
	}

	var raw [StreamInfoSize]byte
	if err := c.ReadFull(raw[:], "STREAMINFO block"); err != nil {
		return err
	}

	info := DecodeStreamInfo(raw)
	res.Stream = types.StreamInfo{
		SampleRate:    int(info.SampleRate),
		Channels:      int(info.Channels),
		BitsPerSample: int(info.BitsPerSample),
		TotalSamples:  info.TotalSamples,
	}

	if d := info.Duration(); d > 0 {
		res.SetDuration(d)
		// FLAC is variable bitrate; file size over duration is a rough figure.
		res.Stream.Bitrate = int(float64(c.Size()) * 8 / d)
	}

	if extra := blockLength - StreamInfoSize; extra > 0 {
		return c.Skip(extra)
	}
	return nil
}

// parseVorbisComment reads the vendor string length, skips the vendor
// string and assigns every recognized comment. Truncation stops the scan
// but keeps what was already assigned.
func parseVorbisComment(c *binary.Cursor, res *types.Result) error {
	vendorLength, err := binary.ReadLE[uint32](c, "vendor string length")
	if err != nil {
		return err
	}
	if err := c.Skip(int64(vendorLength)); err != nil {
		return fmt.Errorf("skip vendor string: %w", err)
	}

	numComments, err := binary.ReadLE[uint32](c, "number of comments")
	if err != nil {
		return err
	}

	for i := uint32(0); i < numComments; i++ {
		offset := c.Position()
		commentLength, err := binary.ReadLE[uint32](c, "comment length")
		if err != nil {
			return fmt.Errorf("read comment %d length: %w", i, err)
		}
		if int64(commentLength) > c.Remaining() {
			return &types.OversizedFieldError{
				Path: c.Path(), What: fmt.Sprintf("comment %d", i), Offset: offset,
				Size: int64(commentLength), Limit: c.Remaining(),
			}
		}

		readLength := min(commentLength, maxCommentBytes)
		data, err := c.Read(int(readLength), fmt.Sprintf("comment %d", i))
		if err != nil {
			return fmt.Errorf("read comment %d: %w", i, err)
		}
		if rest := int64(commentLength - readLength); rest > 0 {
			data = trimPartialRune(data)
			res.Warn("metadata", offset, "comment %d truncated to %d bytes", i, maxCommentBytes)
			if err := c.Skip(rest); err != nil {
				return err
			}
		}

		if err := vorbis.ParseComment(strings.ToValidUTF8(string(data), "\uFFFD"), &res.Metadata); err != nil {
			// Non-fatal - add warning and continue
			res.Warn("metadata", offset, "invalid Vorbis comment: %v", err)
		}
	}

	return nil
}

// trimPartialRune drops a UTF-8 sequence cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			return b
		}
	}
	return b
}

// init registers the FLAC parser
func init() {
	registry.Register(types.FormatFLAC, &parser{})
}
