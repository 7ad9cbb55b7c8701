package fixture

import (
	"github.com/simonhull/trackmeta/internal/binary"
)

// FLAC metadata block types.
const (
	BlockStreamInfo    = 0
	BlockPadding       = 1
	BlockApplication   = 2
	BlockSeekTable     = 3
	BlockVorbisComment = 4
	BlockPicture       = 6
)

// Block is one FLAC metadata block. Length overrides len(Data) in the
// header when non-zero, which lets tests declare lengths the file cannot
// satisfy.
type Block struct {
	Data   []byte
	Length uint32
	Type   uint8
}

// StreamInfo encodes a 34-byte STREAMINFO payload.
func StreamInfo(sampleRate uint32, channels, bitsPerSample uint8, totalSamples uint64) []byte {
	return build(func(sw *binary.SafeWriter) {
		binary.Write[uint16](sw, 4096) // min block size
		binary.Write[uint16](sw, 4096) // max block size
		sw.Write24(0)                  // min frame size
		sw.Write24(0)                  // max frame size

		packed := uint64(sampleRate&0xFFFFF)<<44 |
			uint64((channels-1)&0x7)<<41 |
			uint64((bitsPerSample-1)&0x1F)<<36 |
			totalSamples&0xFFFFFFFFF
		binary.Write(sw, packed)

		sw.WriteZeros(16) // MD5
	})
}

// VorbisComment encodes a VORBIS_COMMENT payload.
func VorbisComment(vendor string, comments ...string) []byte {
	return build(func(sw *binary.SafeWriter) {
		binary.WriteLE(sw, uint32(len(vendor)))
		sw.WriteString(vendor)
		binary.WriteLE(sw, uint32(len(comments)))
		for _, c := range comments {
			binary.WriteLE(sw, uint32(len(c)))
			sw.WriteString(c)
		}
	})
}

// FLAC assembles "fLaC" followed by blocks. The last block gets the
// last-metadata-block flag.
func FLAC(blocks ...Block) []byte {
	return build(func(sw *binary.SafeWriter) {
		sw.WriteString("fLaC")
		for i, b := range blocks {
			header := b.Type & 0x7F
			if i == len(blocks)-1 {
				header |= 0x80
			}
			length := b.Length
			if length == 0 {
				length = uint32(len(b.Data))
			}
			binary.Write(sw, header)
			sw.Write24(length)
			sw.WriteBytes(b.Data)
		}
	})
}

// TaggedFLAC builds a FLAC with STREAMINFO and a VORBIS_COMMENT carrying
// the given comments.
func TaggedFLAC(sampleRate uint32, totalSamples uint64, comments ...string) []byte {
	return FLAC(
		Block{Type: BlockStreamInfo, Data: StreamInfo(sampleRate, 2, 16, totalSamples)},
		Block{Type: BlockVorbisComment, Data: VorbisComment("trackmeta", comments...)},
	)
}
