// Package player is a headless playback engine. It walks a playlist through
// a trackmeta.Session and writes silence for each track's duration to an
// output device, so the session's elapsed time advances as it would with
// real audio.
package player

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/decoder"
	"github.com/simonhull/trackmeta/internal/output"
)

var (
	// ErrEmptyPlaylist is returned by Run when there is nothing to play.
	ErrEmptyPlaylist = errors.New("player: empty playlist")

	// ErrNothingPlayable is returned by a looping Run when a full pass
	// skipped every entry.
	ErrNothingPlayable = errors.New("player: no playable tracks in playlist")
)

// Player drives a Session through a playlist.
type Player struct {
	session  *trackmeta.Session
	playlist []string

	out      io.Writer
	realtime bool
	loop     bool
	tick     time.Duration
	logger   *slog.Logger
	onTrack  func(trackmeta.Snapshot)
	onTick   func(trackmeta.Snapshot)

	played  atomic.Int64
	skipped atomic.Int64
}

// Option configures a Player.
type Option func(*Player)

// WithOutput sets the device PCM is written to. The default discards it.
func WithOutput(w io.Writer) Option {
	return func(p *Player) {
		p.out = w
	}
}

// WithRealtime paces output at the stream's byte rate.
func WithRealtime(realtime bool) Option {
	return func(p *Player) {
		p.realtime = realtime
	}
}

// WithLoop restarts the playlist after the last entry.
func WithLoop(loop bool) Option {
	return func(p *Player) {
		p.loop = loop
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// OnTrack registers fn to run when a track starts playing.
func OnTrack(fn func(trackmeta.Snapshot)) Option {
	return func(p *Player) {
		p.onTrack = fn
	}
}

// OnTick registers fn to run every interval while a track plays.
func OnTick(interval time.Duration, fn func(trackmeta.Snapshot)) Option {
	return func(p *Player) {
		p.tick = interval
		p.onTick = fn
	}
}

// New returns a Player for playlist.
func New(session *trackmeta.Session, playlist []string, opts ...Option) *Player {
	p := &Player{
		session:  session,
		playlist: playlist,
		out:      output.Device{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Played returns the number of tracks played to completion.
func (p *Player) Played() int {
	return int(p.played.Load())
}

// Skipped returns the number of playlist entries the session skipped.
func (p *Player) Skipped() int {
	return int(p.skipped.Load())
}

// Run plays the playlist until it ends, or forever when looping. It
// returns ctx.Err() when cancelled.
func (p *Player) Run(ctx context.Context) error {
	if len(p.playlist) == 0 {
		return ErrEmptyPlaylist
	}
	defer p.session.Close()

	for {
		passPlayed := 0
		for _, path := range p.playlist {
			if err := ctx.Err(); err != nil {
				return err
			}

			h := p.session.BeginTrack(path)
			if h.IsSkip() {
				p.skipped.Add(1)
				continue
			}

			if err := p.play(ctx, h); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				p.logger.Warn("playback failed", slog.String("path", path), slog.Any("error", err))
				continue
			}
			passPlayed++
			p.played.Add(1)
		}

		if !p.loop {
			return nil
		}
		if passPlayed == 0 {
			return ErrNothingPlayable
		}
	}
}

// play probes h's output format, hands it to the session, and writes the
// track's duration of silence through the session sink.
func (p *Player) play(ctx context.Context, h *trackmeta.Handle) error {
	defer h.Close()

	params, err := decoder.Probe(h, h.Format(), p.session.Stream())
	if err != nil {
		return err
	}
	p.session.UpdateStreamParams(params)

	if p.onTrack != nil {
		p.onTrack(p.session.Snapshot())
	}

	playCtx, stop := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if p.onTick != nil && p.tick > 0 {
		wg.Go(func() {
			p.tickLoop(playCtx)
		})
	}

	err = output.Play(playCtx, p.session.Sink(p.out), params, p.session.Duration(), p.realtime)
	stop()
	wg.Wait()
	return err
}

func (p *Player) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.onTick(p.session.Snapshot())
		}
	}
}
