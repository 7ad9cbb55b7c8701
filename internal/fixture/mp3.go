package fixture

import (
	"github.com/simonhull/trackmeta/internal/binary"
)

// ID3v2 text encodings.
const (
	EncLatin1  = 0
	EncUTF16   = 1
	EncUTF16BE = 2
	EncUTF8    = 3
)

// MPEG version bits as they appear in the frame header.
const (
	MPEG25 = 0b00
	MPEG2  = 0b10
	MPEG1  = 0b11
)

// Frame is one ID3v2 frame. Size overrides len(Data) when non-zero.
type Frame struct {
	ID   string
	Data []byte
	Size uint32
}

// TextFrame builds a text frame whose payload starts with the encoding byte.
func TextFrame(id string, encoding byte, text []byte) Frame {
	return Frame{ID: id, Data: append([]byte{encoding}, text...)}
}

// Synchsafe encodes n as four 7-bit bytes.
func Synchsafe(n uint32) []byte {
	return []byte{
		byte(n>>21) & 0x7F,
		byte(n>>14) & 0x7F,
		byte(n>>7) & 0x7F,
		byte(n) & 0x7F,
	}
}

// ID3v2 builds a tag of the given major version (3 or 4) followed by
// padding bytes of zeros. Version 4 frame sizes are written synchsafe.
func ID3v2(version byte, padding int, frames ...Frame) []byte {
	body := build(func(sw *binary.SafeWriter) {
		for _, f := range frames {
			size := f.Size
			if size == 0 {
				size = uint32(len(f.Data))
			}
			sw.WriteString(f.ID)
			if version == 4 {
				sw.WriteBytes(Synchsafe(size))
			} else {
				binary.Write(sw, size)
			}
			binary.Write[uint16](sw, 0) // flags
			sw.WriteBytes(f.Data)
		}
		sw.WriteZeros(padding)
	})

	return build(func(sw *binary.SafeWriter) {
		sw.WriteString("ID3")
		sw.WriteBytes([]byte{version, 0, 0})
		sw.WriteBytes(Synchsafe(uint32(len(body))))
		sw.WriteBytes(body)
	})
}

// MPEGHeader builds a 4-byte Layer III frame header.
func MPEGHeader(version, bitrateIndex, sampleRateIndex byte) []byte {
	return []byte{
		0xFF,
		0xE0 | (version&0x3)<<3 | 0b01<<1 | 1,
		(bitrateIndex&0xF)<<4 | (sampleRateIndex&0x3)<<2,
		0x00,
	}
}

// ID3v1 builds the 128-byte trailer tag.
func ID3v1(title, artist, album string) []byte {
	tag := make([]byte, 128)
	copy(tag, "TAG")
	copy(tag[3:33], title)
	copy(tag[33:63], artist)
	copy(tag[63:93], album)
	return tag
}

// MP3 concatenates parts and pads with zeros up to size (when larger).
func MP3(size int, parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	if len(out) < size {
		out = append(out, make([]byte, size-len(out))...)
	}
	return out
}

// UTF16LE encodes s with a little-endian BOM and no terminator.
func UTF16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, u := range utf16Units(s) {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

// UTF16BE encodes s big-endian without a BOM and no terminator.
func UTF16BE(s string) []byte {
	var out []byte
	for _, u := range utf16Units(s) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func utf16Units(s string) []uint16 {
	var units []uint16
	for _, r := range s {
		if r >= 0x10000 {
			r -= 0x10000
			units = append(units, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}
