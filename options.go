package trackmeta

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/simonhull/trackmeta/internal/decoder"
	"github.com/simonhull/trackmeta/internal/output"
)

// StreamParamsProvider reports the PCM parameters the playback engine's
// decoder will produce for a freshly opened track. The handle is positioned
// at the start of the file and must be left there.
type StreamParamsProvider func(h io.ReadSeeker, format Format, stream StreamInfo) (output.StreamParams, error)

// Option configures a Session, Read, or ReadMany.
//
// Example:
//
//	s := trackmeta.NewSession(
//	    trackmeta.WithLogger(slog.Default()),
//	    trackmeta.WithFallbacks("Various", "Singles"),
//	)
type Option func(*options)

// options holds configuration shared by sessions and one-shot reads.
type options struct {
	opener         Opener
	logger         *slog.Logger
	fallbackArtist string
	fallbackAlbum  string
	streamParams   StreamParamsProvider
	ignoreWarnings bool
	concurrency    int
	progress       func(path string, err error)
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		opener:         FileOpener{},
		logger:         slog.New(slog.DiscardHandler),
		fallbackArtist: UnknownArtist,
		fallbackAlbum:  UnknownAlbum,
		streamParams:   decoder.Probe,
		concurrency:    runtime.NumCPU(),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOpener replaces the filesystem opener, for example with an in-memory
// or network-backed store.
func WithOpener(op Opener) Option {
	return func(o *options) {
		if op != nil {
			o.opener = op
		}
	}
}

// WithLogger sets the structured logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFallbacks overrides the artist and album used when a tag is missing.
// Empty strings keep the defaults "Unknown Artist" and "Unknown Album".
func WithFallbacks(artist, album string) Option {
	return func(o *options) {
		if artist != "" {
			o.fallbackArtist = artist
		}
		if album != "" {
			o.fallbackAlbum = album
		}
	}
}

// WithStreamParamsProvider sets how a Session learns the decoder's output
// format when a track starts. The default probes WAV headers and uses the
// parsed stream info for FLAC and MP3.
func WithStreamParamsProvider(p StreamParamsProvider) Option {
	return func(o *options) {
		if p != nil {
			o.streamParams = p
		}
	}
}

// WithIgnoreWarnings discards parser warnings from Track results.
func WithIgnoreWarnings() Option {
	return func(o *options) {
		o.ignoreWarnings = true
	}
}

// WithConcurrency bounds the number of files ReadMany parses at once.
// Values below 1 are ignored. Default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithProgress registers a callback ReadMany invokes after each file, from
// the goroutine that parsed it.
func WithProgress(fn func(path string, err error)) Option {
	return func(o *options) {
		o.progress = fn
	}
}
