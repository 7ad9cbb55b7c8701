// Package binary provides bounds-checked binary reading primitives for
// container parsers.
package binary

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/trackmeta/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total length of the underlying data.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt fills b from offset off. It never reads past Size.
//
// An offset outside the data returns *types.OutOfBoundsError. A read that
// would cross the end returns the number of bytes copied and a
// *types.TruncatedReadError.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) (int, error) {
	if off < 0 || off > sr.size {
		return 0, &types.OutOfBoundsError{
			Path: sr.path, What: what, Offset: off, Length: len(b), Size: sr.size,
		}
	}

	want := len(b)
	if avail := sr.size - off; int64(want) > avail {
		b = b[:avail]
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < want {
		return n, &types.TruncatedReadError{
			Path: sr.path, What: what, Offset: off, Want: want, Got: n,
		}
	}
	return n, nil
}

// Cursor reads sequentially from a SafeReader with an explicit position.
//
// All lengths passed to Read are clipped to the bytes remaining, so a
// length field taken from a corrupt file can never drive an allocation
// larger than the file itself.
type Cursor struct {
	sr  *SafeReader
	pos int64
}

// NewCursor creates a Cursor positioned at byte 0.
func NewCursor(r io.ReaderAt, size int64, path string) *Cursor {
	return &Cursor{sr: NewSafeReader(r, size, path)}
}

// NewCursorFromSeeker creates a Cursor over a seekable stream. The size is
// discovered by seeking to the end.
func NewCursorFromSeeker(rs io.ReadSeeker, path string) (*Cursor, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: determine size: %w", path, err)
	}
	if ra, ok := rs.(io.ReaderAt); ok {
		return NewCursor(ra, size, path), nil
	}
	return NewCursor(&seekReaderAt{rs: rs}, size, path), nil
}

// Path returns the file path associated with this cursor.
func (c *Cursor) Path() string {
	return c.sr.path
}

// Size returns the total length of the data.
func (c *Cursor) Size() int64 {
	return c.sr.size
}

// Position returns the current absolute offset.
func (c *Cursor) Position() int64 {
	return c.pos
}

// Remaining returns the number of bytes between Position and Size.
func (c *Cursor) Remaining() int64 {
	return c.sr.size - c.pos
}

// Seek moves to an absolute offset in [0, Size]. On failure the position
// is unchanged.
func (c *Cursor) Seek(off int64) error {
	if off < 0 || off > c.sr.size {
		return &types.OutOfBoundsError{
			Path: c.sr.path, What: "seek", Offset: off, Size: c.sr.size,
		}
	}
	c.pos = off
	return nil
}

// Skip moves forward (or backward) by n bytes relative to Position.
func (c *Cursor) Skip(n int64) error {
	return c.Seek(c.pos + n)
}

// Read reads up to n bytes and advances past them.
//
// When fewer than n bytes remain the bytes that were available are returned
// together with a *types.TruncatedReadError.
func (c *Cursor) Read(n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, &types.OutOfBoundsError{
			Path: c.sr.path, What: what, Offset: c.pos, Length: n, Size: c.sr.size,
		}
	}

	size := int64(n)
	if rem := c.Remaining(); size > rem {
		size = rem
	}

	buf := make([]byte, size)
	got, err := c.sr.ReadAt(buf, c.pos, what)
	c.pos += int64(got)
	buf = buf[:got]

	if err != nil {
		return buf, err
	}
	if got < n {
		return buf, &types.TruncatedReadError{
			Path: c.sr.path, What: what, Offset: c.pos - int64(got), Want: n, Got: got,
		}
	}
	return buf, nil
}

// ReadFull fills b completely or returns an error.
func (c *Cursor) ReadFull(b []byte, what string) error {
	got, err := c.sr.ReadAt(b, c.pos, what)
	c.pos += int64(got)
	return err
}

// Expect reads len(magic) bytes and compares them with magic.
func (c *Cursor) Expect(magic, what string) error {
	off := c.pos
	got, err := c.Read(len(magic), what)
	if err != nil {
		return err
	}
	if string(got) != magic {
		return &types.SignatureMismatchError{
			Path: c.sr.path, Want: magic, Got: got, Offset: off,
		}
	}
	return nil
}

// seekReaderAt adapts an io.ReadSeeker to io.ReaderAt. It is not safe for
// concurrent use.
type seekReaderAt struct {
	rs io.ReadSeeker
}

func (s *seekReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.rs, p)
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Cursor
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(c *Cursor) *ChainReader {
	return &ChainReader{Cursor: c}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, endian Endianness, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadEndian[T](cr.Cursor, endian, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Skip advances the cursor, accumulating any error.
func (cr *ChainReader) Skip(n int64) {
	if cr.err != nil {
		return
	}
	cr.err = cr.Cursor.Skip(n)
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
