package trackmeta

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/simonhull/trackmeta/internal/output"
)

// Session holds the state of the track currently being played: its
// metadata, its duration, and how many PCM bytes have reached the output.
//
// The playback engine calls BeginTrack on every track change and writes
// decoded audio through Sink. Display code reads Metadata, Duration and
// Elapsed from any goroutine.
//
// BeginTrack is not reentrant: concurrent calls are serialized.
type Session struct {
	opts *options

	// begin serializes BeginTrack.
	begin sync.Mutex

	mu       sync.RWMutex
	state    trackState
	params   output.StreamParams
	handle   *Handle
	played   bool
	watchers []func(Snapshot)

	written output.Counter
}

// trackState is the per-track data guarded by Session.mu.
type trackState struct {
	id       string
	path     string
	format   Format
	metadata TrackMetadata
	stream   StreamInfo
	duration float64
	warnings []Warning
}

// Snapshot is a consistent view of the session for display.
type Snapshot struct {
	TrackID  string        `json:"track_id"`
	Path     string        `json:"path"`
	Format   Format        `json:"format"`
	Metadata TrackMetadata `json:"metadata"`
	Duration float64       `json:"duration"`
	Elapsed  float64       `json:"elapsed"`
}

// NewSession returns a Session with no active track.
func NewSession(opts ...Option) *Session {
	return &Session{opts: buildOptions(opts)}
}

// BeginTrack prepares path for playback and returns the handle the
// playback engine should decode from.
//
// Unsupported extensions return Skip and leave the current track state as
// it was. Otherwise the previous handle is closed, elapsed time, duration
// and metadata are reset, the file is parsed through a separate handle,
// fallbacks are applied, and a fresh playback handle is opened. If that
// open fails BeginTrack returns Skip.
func (s *Session) BeginTrack(path string) *Handle {
	s.begin.Lock()
	defer s.begin.Unlock()

	log := s.opts.logger.With(slog.String("path", path))

	format := DetectFormat(path)
	if !format.Supported() {
		log.Debug("skipping non-audio file")
		return Skip
	}

	id := uuid.NewString()
	log = log.With(slog.String("track_id", id), slog.String("format", format.String()))

	s.mu.Lock()
	prev := s.handle
	s.handle = nil
	s.state = trackState{id: id, path: path, format: format}
	s.params = output.StreamParams{}
	s.written.Reset()
	s.mu.Unlock()

	if prev != nil {
		if err := prev.Close(); err != nil {
			log.Warn("close previous playback handle", slog.Any("error", err))
		}
	}

	state := s.readMetadata(path, format, log)
	state.id = id

	rc, size, err := s.opts.opener.Open(path)
	if err != nil {
		log.Warn("open playback handle",
			slog.Any("error", &OpenFailureError{Err: err, Path: path, Purpose: "playback"}))
		s.publish(state, nil)
		return Skip
	}
	h := &Handle{rc: rc, path: path, format: format, size: size}

	params, err := s.opts.streamParams(h, format, state.stream)
	if err != nil {
		log.Warn("stream parameters unavailable, elapsed time will read 0", slog.Any("error", err))
	}

	s.mu.Lock()
	first := !s.played
	s.played = true
	if err == nil {
		s.params = params
	}
	s.mu.Unlock()

	s.publish(state, h)

	msg := "next track"
	if first {
		msg = "starting playback"
	}
	log.Info(msg,
		slog.String("title", state.metadata.Title),
		slog.String("artist", state.metadata.Artist),
		slog.String("album", state.metadata.Album),
		slog.String("duration", FormatDuration(state.duration)),
	)

	return h
}

// readMetadata parses path through its own handle, which is closed before
// returning. Open and parse failures leave the fallbacks in place.
func (s *Session) readMetadata(path string, format Format, log *slog.Logger) trackState {
	state := trackState{path: path, format: format}

	rc, size, err := s.opts.opener.Open(path)
	if err != nil {
		log.Warn("open metadata handle",
			slog.Any("error", &OpenFailureError{Err: err, Path: path, Purpose: "metadata"}))
	} else {
		res, err := parse(rc, size, path, format)
		if cerr := rc.Close(); cerr != nil {
			log.Debug("close metadata handle", slog.Any("error", cerr))
		}
		if err != nil {
			log.Warn("parse metadata", slog.Any("error", err))
		} else {
			state.metadata = res.Metadata
			state.stream = res.Stream
			state.duration = res.Duration
			state.warnings = res.Warnings
			if !res.OK {
				log.Debug("no structured metadata found")
			}
			for _, w := range res.Warnings {
				log.Debug("parse warning", slog.String("warning", w.String()))
			}
		}
	}

	state.metadata.ApplyFallbacks(path, s.opts.fallbackArtist, s.opts.fallbackAlbum)
	return state
}

// publish installs state as the current track and notifies watchers.
func (s *Session) publish(state trackState, h *Handle) {
	s.mu.Lock()
	s.state = state
	s.handle = h
	watchers := s.watchers
	s.mu.Unlock()

	snap := s.Snapshot()
	for _, fn := range watchers {
		fn(snap)
	}
}

// OnTrackChange registers fn to be called after every BeginTrack that
// parsed a file. fn runs on the goroutine that called BeginTrack.
func (s *Session) OnTrackChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

// Metadata returns the current track's title, artist and album.
func (s *Session) Metadata() TrackMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.metadata
}

// Duration returns the current track's duration in seconds, 0 if unknown.
func (s *Session) Duration() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.duration
}

// Elapsed returns seconds of audio written since the track began: bytes
// written over the current byte rate, or 0 when the byte rate is 0.
func (s *Session) Elapsed() float64 {
	s.mu.RLock()
	params := s.params
	s.mu.RUnlock()
	return params.Elapsed(s.written.Load())
}

// TrackID returns the id assigned to the current track, "" before the
// first track.
func (s *Session) TrackID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.id
}

// Path returns the current track's path.
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.path
}

// Stream returns the stream properties recovered from the container.
func (s *Session) Stream() StreamInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.stream
}

// Warnings returns the parser warnings for the current track.
func (s *Session) Warnings() []Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Warning(nil), s.state.warnings...)
}

// Snapshot returns the current track state in one consistent read.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	st := s.state
	params := s.params
	s.mu.RUnlock()

	return Snapshot{
		TrackID:  st.id,
		Path:     st.path,
		Format:   st.format,
		Metadata: st.metadata,
		Duration: st.duration,
		Elapsed:  params.Elapsed(s.written.Load()),
	}
}

// Sink wraps the audio device writer so every byte written advances
// Elapsed.
func (s *Session) Sink(w io.Writer) *output.Sink {
	return output.NewSink(w, &s.written)
}

// BytesWritten returns PCM bytes written through Sink since the current
// track began.
func (s *Session) BytesWritten() uint64 {
	return s.written.Load()
}

// StreamParams returns the decoder output format Elapsed is measured in.
func (s *Session) StreamParams() output.StreamParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// UpdateStreamParams is called by the playback engine when its decoder
// reports a new output format. Elapsed uses the new byte rate from then on.
func (s *Session) UpdateStreamParams(p output.StreamParams) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()
}

// Close closes the current playback handle.
func (s *Session) Close() error {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h == nil {
		return nil
	}
	return h.Close()
}
