package types

import "fmt"

// OutOfBoundsError is returned when attempting to read or seek beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset < 0 || e.Offset > e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// SignatureMismatchError is returned when magic bytes do not match the expected format.
type SignatureMismatchError struct {
	Path   string
	Want   string
	Got    []byte
	Offset int64
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("%s: signature mismatch at offset %d: want %q, got %q",
		e.Path, e.Offset, e.Want, e.Got)
}

// TruncatedReadError is returned when fewer bytes were available than requested.
type TruncatedReadError struct {
	Path   string
	What   string
	Offset int64
	Want   int
	Got    int
}

func (e *TruncatedReadError) Error() string {
	return fmt.Sprintf("%s: short read for %s at offset %d: got %d bytes, expected %d",
		e.Path, e.What, e.Offset, e.Got, e.Want)
}

// OversizedFieldError is returned when a length field from the file exceeds a sanity cap.
type OversizedFieldError struct {
	Path   string
	What   string
	Offset int64
	Size   int64
	Limit  int64
}

func (e *OversizedFieldError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d declares %d bytes (limit %d)",
		e.Path, e.What, e.Offset, e.Size, e.Limit)
}

// UnsupportedFormatError is returned when the file extension is not recognized.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// OpenFailureError is returned when a metadata or playback handle could not be opened.
type OpenFailureError struct {
	Err     error
	Path    string
	Purpose string // "metadata" or "playback"
}

func (e *OpenFailureError) Error() string {
	return fmt.Sprintf("%s: open %s handle: %v", e.Path, e.Purpose, e.Err)
}

func (e *OpenFailureError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings are how parsers report malformed input: a truncated block,
// an oversized frame, a comment without '='. None of them stop playback.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "metadata", "technical", "id3v1"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
