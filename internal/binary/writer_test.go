package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigEndianOrder() binary.ByteOrder { return binary.BigEndian }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSafeWriter_Values(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	require.NoError(t, Write[uint8](sw, 0x84))
	require.NoError(t, sw.Write24(0x000022))
	require.NoError(t, WriteLE[uint32](sw, 0x01020304))
	require.NoError(t, Write[uint16](sw, 0xFFFB))
	require.NoError(t, Write[uint64](sw, 1))
	require.NoError(t, sw.WriteString("fLaC"))
	require.NoError(t, sw.WriteZeros(2))

	want := []byte{
		0x84, 0x00, 0x00, 0x22,
		0x04, 0x03, 0x02, 0x01,
		0xFF, 0xFB,
		0, 0, 0, 0, 0, 0, 0, 1,
		'f', 'L', 'a', 'C',
		0, 0,
	}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, int64(len(want)), sw.Offset())
}

func TestSafeWriter_StickyError(t *testing.T) {
	sw := NewSafeWriter(failingWriter{})

	assert.Error(t, sw.WriteString("RIFF"))
	assert.Error(t, WriteLE[uint32](sw, 36))
	assert.EqualError(t, sw.Err(), "disk full")
	assert.Equal(t, int64(0), sw.Offset())
}

func TestDecode(t *testing.T) {
	b := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}

	assert.Equal(t, uint8(0x12), Decode[uint8](b, BigEndian))
	assert.Equal(t, uint16(0x3412), Decode[uint16](b, LittleEndian))
	assert.Equal(t, uint32(0x12345678), Decode[uint32](b, BigEndian))
	assert.Equal(t, uint64(0xF0DEBC9A78563412), Decode[uint64](b, LittleEndian))
	assert.Equal(t, uint32(0x123456), Uint24BE(b))
}
