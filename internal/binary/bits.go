package binary

// Field names a bit range inside a byte slice. Offset counts bits from the
// most significant bit of byte 0; Width is at most 64.
type Field struct {
	Offset uint
	Width  uint
}

// Extract returns the field's value from b, most significant bit first.
// Bits beyond the end of b read as zero.
func (f Field) Extract(b []byte) uint64 {
	var v uint64
	for i := uint(0); i < f.Width && i < 64; i++ {
		bit := f.Offset + i
		v <<= 1
		idx := bit / 8
		if idx < uint(len(b)) {
			v |= uint64(b[idx]>>(7-bit%8)) & 1
		}
	}
	return v
}

// End returns the bit offset just past the field.
func (f Field) End() uint {
	return f.Offset + f.Width
}
