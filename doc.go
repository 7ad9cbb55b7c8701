// Package trackmeta reads the title, artist, album and duration of music
// files and tracks what is playing right now.
//
// It is built for players that need a "now playing" view: the playback
// engine tells a Session when a new track starts, writes its PCM through
// the Session's sink, and display code reads the current metadata and
// elapsed time from any goroutine.
//
// # Quick Start
//
// Reading one file:
//
//	t, err := trackmeta.Read("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s (%s)\n", t.Metadata.Artist, t.Metadata.Title,
//		trackmeta.FormatDuration(t.Duration))
//
// Driving a session from a playback loop:
//
//	s := trackmeta.NewSession(trackmeta.WithLogger(logger))
//	for _, path := range playlist {
//		h := s.BeginTrack(path)
//		if h.IsSkip() {
//			continue
//		}
//		decodeTo(s.Sink(device), h)
//		h.Close()
//	}
//
// # Supported Formats
//
//   - FLAC: STREAMINFO duration and Vorbis comments
//   - MP3: ID3v2.3 and ID3v2.4 text frames, ID3v1 fallback, CBR duration estimate
//   - WAV: PCM fmt chunk duration and LIST/INFO tags
//
// Other extensions are skipped by the Session and rejected by Read.
//
// # Fallbacks
//
// Metadata is never empty. A missing title becomes the file name without
// its extension; missing artist and album become UnknownArtist and
// UnknownAlbum, or the values given to WithFallbacks.
//
// # Error Handling
//
// trackmeta distinguishes between fatal errors and warnings:
//
//   - Fatal errors stop a Read (file not found, unsupported format)
//   - Warnings describe damaged content (truncated blocks, oversized fields)
//
// Parsers never fail on bad bytes. They return what they could recover
// along with Warnings:
//
//	for _, w := range t.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//
// # Elapsed Time
//
// Elapsed is derived from the bytes written through Session.Sink divided by
// the byte rate of the decoder's output format. Call UpdateStreamParams when
// the decoder reports a new format; until then Elapsed reads 0.
//
// # Concurrency
//
// BeginTrack calls are serialized. All getters are safe to call while a
// track change is in progress and observe either the old or the new track,
// never a mix. ReadMany parses files in parallel.
package trackmeta
