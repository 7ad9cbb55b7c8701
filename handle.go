package trackmeta

import (
	"io"
	"sync/atomic"
)

// Handle is the playback handle returned by Session.BeginTrack.
//
// The sentinel Skip tells the playback engine to advance past the entry.
// Reading from Skip returns io.EOF.
type Handle struct {
	rc     io.ReadSeekCloser
	path   string
	format Format
	size   int64
	closed atomic.Bool
}

// Skip is returned for unsupported files and playback open failures.
var Skip = &Handle{}

// IsSkip reports whether h is the skip sentinel.
func (h *Handle) IsSkip() bool {
	return h == nil || h.rc == nil
}

// Path returns the track path, or "" for Skip.
func (h *Handle) Path() string {
	if h.IsSkip() {
		return ""
	}
	return h.path
}

// Format returns the detected format.
func (h *Handle) Format() Format {
	if h.IsSkip() {
		return FormatUnsupported
	}
	return h.format
}

// Size returns the file size in bytes.
func (h *Handle) Size() int64 {
	if h.IsSkip() {
		return 0
	}
	return h.size
}

func (h *Handle) Read(p []byte) (int, error) {
	if h.IsSkip() {
		return 0, io.EOF
	}
	return h.rc.Read(p)
}

func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.IsSkip() {
		return 0, nil
	}
	return h.rc.Seek(offset, whence)
}

// Close releases the underlying reader. It is safe to call more than once.
func (h *Handle) Close() error {
	if h.IsSkip() || !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	return h.rc.Close()
}
