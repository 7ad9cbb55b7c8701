package mp3

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// TextEncoding is the selector byte at the start of ID3v2 text frames.
type TextEncoding byte

const (
	EncodingLatin1  TextEncoding = 0 // ISO-8859-1
	EncodingUTF16   TextEncoding = 1 // UTF-16 with byte-order mark
	EncodingUTF16BE TextEncoding = 2 // UTF-16BE without BOM (ID3v2.4)
	EncodingUTF8    TextEncoding = 3 // UTF-8 (ID3v2.4)
)

// Known reports whether e is one of the four defined encodings.
func (e TextEncoding) Known() bool {
	return e <= EncodingUTF8
}

// unitSize is the width of one code unit, which is also the width of the
// string terminator.
func (e TextEncoding) unitSize() int {
	if e == EncodingUTF16 || e == EncodingUTF16BE {
		return 2
	}
	return 1
}

var (
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// DecodeText converts an ID3v2 text payload (without the encoding byte) to
// UTF-8. The text ends at the first terminator of the encoding's unit size
// or at the end of data. Unknown encodings are read as Latin-1.
func DecodeText(data []byte, enc TextEncoding) (string, error) {
	var dec encoding.Encoding

	switch enc {
	case EncodingUTF8:
		data = terminate(data, 1)
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil

	case EncodingUTF16:
		dec = utf16BE // no BOM: big-endian
		if len(data) >= 2 {
			switch {
			case data[0] == 0xFF && data[1] == 0xFE:
				dec, data = utf16LE, data[2:]
			case data[0] == 0xFE && data[1] == 0xFF:
				data = data[2:]
			}
		}

	case EncodingUTF16BE:
		dec = utf16BE

	default:
		dec = charmap.ISO8859_1
	}

	data = terminate(data, enc.unitSize())
	if len(data) == 0 {
		return "", nil
	}
	out, err := dec.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeLatin1 converts ISO-8859-1 bytes to UTF-8.
func DecodeLatin1(data []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// ISO-8859-1 maps every byte, so this is unreachable in practice.
		return string(data)
	}
	return string(out)
}

// terminate cuts data at the first all-zero code unit of the given width.
// A trailing odd byte in a two-byte encoding is dropped.
func terminate(data []byte, unit int) []byte {
	if unit == 1 {
		if i := bytes.IndexByte(data, 0); i >= 0 {
			return data[:i]
		}
		return data
	}

	n := len(data) - len(data)%unit
	for i := 0; i < n; i += unit {
		if data[i] == 0 && data[i+1] == 0 {
			return data[:i]
		}
	}
	return data[:n]
}
