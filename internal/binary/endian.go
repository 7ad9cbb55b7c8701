package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: FLAC block headers, ID3v2 frame headers, MPEG frame headers.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: FLAC Vorbis comments, RIFF/WAV.
	LittleEndian
)

// ReadLE reads a numeric value of type T at the cursor using little-endian byte order.
//
// Example:
//
//	length, err := binary.ReadLE[uint32](c, "vorbis comment length")
func ReadLE[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) (T, error) {
	return ReadEndian[T](c, LittleEndian, what)
}

// ReadBE reads a numeric value of type T at the cursor using big-endian byte order.
//
// Example:
//
//	frameSize, err := binary.ReadBE[uint32](c, "frame size")
func ReadBE[T uint8 | uint16 | uint32 | uint64](c *Cursor, what string) (T, error) {
	return ReadEndian[T](c, BigEndian, what)
}

// ReadEndian reads a numeric value of type T with the given byte order and
// advances the cursor past it.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](c *Cursor, endian Endianness, what string) (T, error) {
	var zero T
	buf, err := c.Read(sizeOf[T](), what)
	if err != nil {
		return zero, err
	}
	return Decode[T](buf, endian), nil
}

// Decode converts buf to a value of type T. buf must hold at least
// the size of T.
func Decode[T uint8 | uint16 | uint32 | uint64](buf []byte, endian Endianness) T {
	var order binary.ByteOrder = binary.BigEndian
	if endian == LittleEndian {
		order = binary.LittleEndian
	}

	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(order.Uint16(buf))
	case uint32:
		return T(order.Uint32(buf))
	default:
		return T(order.Uint64(buf))
	}
}

// Uint24BE decodes a 3-byte big-endian integer.
func Uint24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}
