package trackmeta

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/registry"
	"github.com/simonhull/trackmeta/internal/types"
)

// Track is the result of reading one file's metadata.
//
// Metadata always carries display values: missing fields are filled with
// the file stem and the artist/album fallbacks.
type Track struct {
	// Path to the audio file
	Path string `json:"path"`

	// Detected format
	Format Format `json:"format"`

	// File size in bytes
	Size int64 `json:"size"`

	Metadata TrackMetadata `json:"metadata"`
	Stream   StreamInfo    `json:"stream"`

	// Duration in seconds, 0 when unknown
	Duration float64 `json:"duration"`

	// Tagged is true when structured metadata (Vorbis comments, an ID3
	// tag, or a valid RIFF/PCM header) was found.
	Tagged bool `json:"tagged"`

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning `json:"warnings,omitempty"`
}

// Read parses the metadata and duration of a single file.
//
// Read returns an *UnsupportedFormatError for unrecognized extensions and an
// *OpenFailureError when the file cannot be opened. Malformed content never
// fails: the Track comes back with fallback values and Warnings.
//
// Example:
//
//	t, err := trackmeta.Read("song.flac")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s (%s)\n", t.Metadata.Artist, t.Metadata.Title,
//	    trackmeta.FormatDuration(t.Duration))
func Read(path string, opts ...Option) (*Track, error) {
	return readTrack(path, buildOptions(opts))
}

// ReadContext is Read with a cancellation check before any I/O.
func ReadContext(ctx context.Context, path string, opts ...Option) (*Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(path, opts...)
}

// ReadMany reads multiple files concurrently.
//
// Files are parsed in parallel, bounded by WithConcurrency (default
// runtime.NumCPU()). Results are returned in the same order as paths.
// The first error cancels the remaining reads and is returned.
//
// Example:
//
//	tracks, err := trackmeta.ReadMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range tracks {
//		fmt.Printf("%s: %s\n", t.Format, t.Metadata.Title)
//	}
func ReadMany(ctx context.Context, paths []string, opts ...Option) ([]*Track, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	o := buildOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	results := make([]*Track, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			t, err := readTrack(path, o)
			if o.progress != nil {
				o.progress(path, err)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readTrack(path string, o *options) (*Track, error) {
	format := types.DetectFormat(path)
	if !format.Supported() {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: "extension not in " + fmt.Sprint(types.SupportedExtensions()),
		}
	}

	rc, size, err := o.opener.Open(path)
	if err != nil {
		return nil, &OpenFailureError{Err: err, Path: path, Purpose: "metadata"}
	}
	defer rc.Close()

	res, err := parse(rc, size, path, format)
	if err != nil {
		return nil, err
	}
	res.Metadata.ApplyFallbacks(path, o.fallbackArtist, o.fallbackAlbum)

	t := &Track{
		Path:     path,
		Format:   format,
		Size:     size,
		Metadata: res.Metadata,
		Stream:   res.Stream,
		Duration: res.Duration,
		Tagged:   res.OK,
		Warnings: res.Warnings,
	}
	if o.ignoreWarnings {
		t.Warnings = nil
	}
	return t, nil
}

// parse runs the registered parser for format over rs. Fallbacks are not
// applied.
func parse(rs io.ReadSeeker, size int64, path string, format Format) (types.Result, error) {
	p := registry.Get(format)
	if p == nil {
		return types.Result{}, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	var c *binary.Cursor
	if ra, ok := rs.(io.ReaderAt); ok && size >= 0 {
		c = binary.NewCursor(ra, size, path)
	} else {
		var err error
		if c, err = binary.NewCursorFromSeeker(rs, path); err != nil {
			return types.Result{}, fmt.Errorf("size %s: %w", path, err)
		}
	}

	return p.Parse(c), nil
}
