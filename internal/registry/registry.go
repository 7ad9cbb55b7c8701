// Package registry manages format-specific parsers for audio file types.
package registry

import (
	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse extracts metadata and duration starting from byte 0 of c.
	// It never panics on malformed input; problems are reported through
	// Result.OK and Result.Warnings.
	Parse(c *binary.Cursor) types.Result
}

// ParserFunc adapts a function to FormatParser.
type ParserFunc func(c *binary.Cursor) types.Result

// Parse calls f(c).
func (f ParserFunc) Parse(c *binary.Cursor) types.Result {
	return f(c)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]FormatParser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	return parsers[format]
}
