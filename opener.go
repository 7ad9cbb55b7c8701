package trackmeta

import (
	"fmt"
	"io"
	"os"
)

// Opener opens read handles on track paths. A Session opens two handles per
// track: one for metadata parsing, closed before BeginTrack returns, and
// one handed to the playback engine.
type Opener interface {
	Open(path string) (io.ReadSeekCloser, int64, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) (io.ReadSeekCloser, int64, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (io.ReadSeekCloser, int64, error) {
	return f(path)
}

// FileOpener opens paths on the local filesystem.
type FileOpener struct{}

// Open opens path with os.Open and reports its size.
func (FileOpener) Open(path string) (io.ReadSeekCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open file: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat file: %w", err)
	}
	return f, stat.Size(), nil
}
