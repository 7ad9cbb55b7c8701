package fixture

import (
	"github.com/simonhull/trackmeta/internal/binary"
)

// Chunk is a RIFF chunk. Size overrides len(Data) in the header when
// non-zero. Odd-sized data is followed by a pad byte.
type Chunk struct {
	ID   string
	Data []byte
	Size uint32
}

// WAV builds a RIFF/WAVE file with a 16-byte fmt chunk followed by chunks.
func WAV(audioFormat, channels uint16, sampleRate uint32, bitsPerSample uint16, chunks ...Chunk) []byte {
	blockAlign := channels * (bitsPerSample / 8)
	byteRate := sampleRate * uint32(blockAlign)

	body := build(func(sw *binary.SafeWriter) {
		sw.WriteString("WAVE")
		sw.WriteString("fmt ")
		binary.WriteLE[uint32](sw, 16)
		binary.WriteLE(sw, audioFormat)
		binary.WriteLE(sw, channels)
		binary.WriteLE(sw, sampleRate)
		binary.WriteLE(sw, byteRate)
		binary.WriteLE(sw, blockAlign)
		binary.WriteLE(sw, bitsPerSample)
		for _, c := range chunks {
			writeChunk(sw, c)
		}
	})

	return build(func(sw *binary.SafeWriter) {
		sw.WriteString("RIFF")
		binary.WriteLE(sw, uint32(len(body)))
		sw.WriteBytes(body)
	})
}

// InfoList builds a LIST chunk of type INFO holding items. Item values are
// written verbatim; callers add a trailing NUL when they want one.
func InfoList(items ...Chunk) Chunk {
	data := build(func(sw *binary.SafeWriter) {
		sw.WriteString("INFO")
		for _, it := range items {
			writeChunk(sw, it)
		}
	})
	return Chunk{ID: "LIST", Data: data}
}

// DataChunk declares a data chunk of size bytes, writing them as silence.
func DataChunk(size int) Chunk {
	return Chunk{ID: "data", Data: make([]byte, size)}
}

func writeChunk(sw *binary.SafeWriter, c Chunk) {
	size := c.Size
	if size == 0 {
		size = uint32(len(c.Data))
	}
	sw.WriteString(c.ID)
	binary.WriteLE(sw, size)
	sw.WriteBytes(c.Data)
	if len(c.Data)%2 == 1 {
		sw.WriteZeros(1)
	}
}
