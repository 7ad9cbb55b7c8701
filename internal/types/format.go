package types

import (
	"path/filepath"
	"strings"
)

// Format represents the detected audio format.
type Format int

const (
	// FormatUnsupported represents an unknown or unsupported format.
	FormatUnsupported Format = iota
	// FormatFLAC represents FLAC audio files.
	FormatFLAC
	// FormatMP3 represents MP3 audio files.
	FormatMP3
	// FormatWAV represents WAV audio files.
	FormatWAV
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	case FormatMP3:
		return "MP3"
	case FormatWAV:
		return "WAV"
	default:
		return "Unsupported"
	}
}

// Extensions returns the file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatFLAC:
		return []string{".flac"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatWAV:
		return []string{".wav"}
	default:
		return nil
	}
}

// Supported reports whether a parser exists for the format.
func (f Format) Supported() bool {
	return f == FormatFLAC || f == FormatMP3 || f == FormatWAV
}

// Description returns a short human-readable label, e.g. "FLAC (Lossless)".
func (f Format) Description() string {
	switch f {
	case FormatFLAC:
		return "FLAC (Lossless)"
	case FormatMP3:
		return "MP3"
	case FormatWAV:
		return "WAV (Uncompressed)"
	default:
		return "Unsupported"
	}
}

// SupportedExtensions returns every extension DetectFormat recognizes.
func SupportedExtensions() []string {
	return []string{".mp3", ".flac", ".wav"}
}

// DetectFormat maps a path's lower-cased extension to a Format.
//
// Detection is purely name based and performs no I/O.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return FormatFLAC
	case ".mp3":
		return FormatMP3
	case ".wav":
		return FormatWAV
	default:
		return FormatUnsupported
	}
}

// MarshalText encodes the format by name in JSON and YAML output.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
