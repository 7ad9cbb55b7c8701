package types

import (
	"fmt"
	"math"
	"strings"
)

// Fallback values applied when a parser finds no text for a field.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// TrackMetadata is the text describing the active track.
type TrackMetadata struct {
	Title  string `json:"title" yaml:"title"`
	Artist string `json:"artist" yaml:"artist"`
	Album  string `json:"album" yaml:"album"`
}

// IsComplete reports whether all three fields are populated.
func (m TrackMetadata) IsComplete() bool {
	return m.Title != "" && m.Artist != "" && m.Album != ""
}

// Merge fills empty fields of m from other. Non-empty fields are kept.
func (m *TrackMetadata) Merge(other TrackMetadata) {
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.Artist == "" {
		m.Artist = other.Artist
	}
	if m.Album == "" {
		m.Album = other.Album
	}
}

// ApplyFallbacks populates empty fields: title from the file stem of path,
// artist and album from the given literals.
func (m *TrackMetadata) ApplyFallbacks(path, artist, album string) {
	m.Merge(TrackMetadata{
		Title:  FileStem(path),
		Artist: artist,
		Album:  album,
	})
}

// FileStem returns the file name of path without directory and extension.
//
// A name whose only dot is the first character (".hidden") is returned whole.
func FileStem(path string) string {
	if path == "" {
		return ""
	}
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

// StreamInfo holds technical stream properties recovered from container headers.
type StreamInfo struct {
	SampleRate    int    `json:"sample_rate"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
	TotalSamples  uint64 `json:"total_samples,omitempty"`
	Bitrate       int    `json:"bitrate,omitempty"` // bits per second
}

// Result is what every format parser produces.
type Result struct {
	Metadata TrackMetadata
	Stream   StreamInfo
	Warnings []Warning

	// Duration in seconds. Never negative.
	Duration float64

	// OK is false when no structured metadata was found. It never signals a
	// crash; callers fall back to defaults.
	OK bool
}

// SetDuration stores seconds, discarding negative or non-finite values.
func (r *Result) SetDuration(seconds float64) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return
	}
	r.Duration = seconds
}

// Warn records a non-fatal issue.
func (r *Result) Warn(stage string, offset int64, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}

// FormatDuration renders seconds as "m:ss", or "h:mm:ss" past one hour.
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	total := uint64(seconds)
	hrs := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	if hrs > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
