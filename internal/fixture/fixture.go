// Package fixture builds small, byte-exact FLAC, MP3 and WAV files for tests.
//
// Builders return raw bytes so tests can truncate or corrupt them before
// handing them to a parser.
package fixture

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/simonhull/trackmeta/internal/binary"
)

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// build runs fn against a fresh writer and returns the bytes. Writes to a
// bytes.Buffer cannot fail, so the sticky error is ignored.
func build(fn func(sw *binary.SafeWriter)) []byte {
	buf := &bytes.Buffer{}
	fn(binary.NewSafeWriter(buf))
	return buf.Bytes()
}
