package trackmeta

import (
	"github.com/simonhull/trackmeta/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnsupported = types.FormatUnsupported
	FormatFLAC        = types.FormatFLAC
	FormatMP3         = types.FormatMP3
	FormatWAV         = types.FormatWAV
)

// DetectFormat selects a format from the file extension, case-insensitively.
// Unrecognized extensions yield FormatUnsupported.
func DetectFormat(path string) Format {
	return types.DetectFormat(path)
}

// SupportedExtensions returns the lower-case extensions a Session will play.
func SupportedExtensions() []string {
	return types.SupportedExtensions()
}

// IsSupported reports whether path has a playable extension.
func IsSupported(path string) bool {
	return types.DetectFormat(path).Supported()
}
