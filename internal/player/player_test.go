package player

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/fixture"
)

func write(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path, err := fixture.WriteFile(dir, name, data)
	require.NoError(t, err)
	return path
}

func audioOnly(path string) bool {
	return trackmeta.IsSupported(path)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.flac", fixture.TaggedFLAC(44100, 44100))
	write(t, dir, "a.mp3", fixture.MP3(4000, fixture.MPEGHeader(fixture.MPEG1, 4, 0)))
	write(t, dir, "cover.jpg", []byte{0xFF, 0xD8})
	write(t, dir, "disc2/c.wav", fixture.WAV(1, 2, 44100, 16, fixture.DataChunk(16)))

	t.Run("recursive", func(t *testing.T) {
		paths, err := ScanDir(dir, true, audioOnly)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.mp3"),
			filepath.Join(dir, "b.flac"),
			filepath.Join(dir, "disc2", "c.wav"),
		}, paths)
	})

	t.Run("flat", func(t *testing.T) {
		paths, err := ScanDir(dir, false, audioOnly)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.mp3"),
			filepath.Join(dir, "b.flac"),
		}, paths)
	})

	t.Run("no filter", func(t *testing.T) {
		paths, err := ScanDir(dir, false, nil)
		require.NoError(t, err)
		assert.Len(t, paths, 3)
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := ScanDir(filepath.Join(dir, "nope"), true, nil)
		assert.Error(t, err)
	})
}

func TestRun_PlaysAndSkips(t *testing.T) {
	dir := t.TempDir()
	mp3 := write(t, dir, "01.mp3", fixture.MP3(4000, fixture.MPEGHeader(fixture.MPEG1, 4, 0)))
	jpg := write(t, dir, "02.jpg", []byte{0xFF, 0xD8})
	flac := write(t, dir, "03.flac", fixture.TaggedFLAC(44100, 44100,
		"TITLE=Song", "ARTIST=Band", "ALBUM=Record"))

	session := trackmeta.NewSession()
	var titles []string
	p := New(session, []string{mp3, jpg, flac},
		OnTrack(func(s trackmeta.Snapshot) { titles = append(titles, s.Metadata.Title) }))

	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 2, p.Played())
	assert.Equal(t, 1, p.Skipped())
	assert.Equal(t, []string{"01", "Song"}, titles)

	// one second of 16-bit stereo at 44.1 kHz
	assert.Equal(t, uint64(176400), session.BytesWritten())
	assert.InDelta(t, 1.0, session.Elapsed(), 1e-9)
	assert.Equal(t, flac, session.Path())
}

func TestRun_WritesToOutput(t *testing.T) {
	dir := t.TempDir()
	flac := write(t, dir, "half.flac", fixture.TaggedFLAC(44100, 22050))

	var out countingWriter
	p := New(trackmeta.NewSession(), []string{flac}, WithOutput(&out))

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, int64(88200), out.n.Load())
}

func TestRun_EmptyPlaylist(t *testing.T) {
	p := New(trackmeta.NewSession(), nil)
	assert.ErrorIs(t, p.Run(context.Background()), ErrEmptyPlaylist)
}

func TestRun_LoopWithNothingPlayable(t *testing.T) {
	p := New(trackmeta.NewSession(), []string{"cover.jpg", "notes.txt"}, WithLoop(true))

	assert.ErrorIs(t, p.Run(context.Background()), ErrNothingPlayable)
	assert.Equal(t, 2, p.Skipped())
}

func TestRun_LoopUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	flac := write(t, dir, "loop.flac", fixture.TaggedFLAC(44100, 4410))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	starts := 0
	p := New(trackmeta.NewSession(), []string{flac}, WithLoop(true),
		OnTrack(func(trackmeta.Snapshot) {
			starts++
			if starts == 3 {
				cancel()
			}
		}))

	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Equal(t, 2, p.Played())
}

func TestRun_RealtimeCancel(t *testing.T) {
	dir := t.TempDir()
	flac := write(t, dir, "long.flac", fixture.TaggedFLAC(44100, 44100*60))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	session := trackmeta.NewSession()
	p := New(session, []string{flac}, WithRealtime(true))

	start := time.Now()
	err := p.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Less(t, session.Elapsed(), 5.0)
	assert.Equal(t, 0, p.Played())
}

func TestRun_Ticks(t *testing.T) {
	dir := t.TempDir()
	flac := write(t, dir, "short.flac", fixture.TaggedFLAC(44100, 8820))

	var mu sync.Mutex
	var elapsed []float64
	p := New(trackmeta.NewSession(), []string{flac}, WithRealtime(true),
		OnTick(10*time.Millisecond, func(s trackmeta.Snapshot) {
			mu.Lock()
			elapsed = append(elapsed, s.Elapsed)
			mu.Unlock()
		}))

	require.NoError(t, p.Run(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, elapsed)
	for i := 1; i < len(elapsed); i++ {
		assert.GreaterOrEqual(t, elapsed[i], elapsed[i-1])
	}
	assert.LessOrEqual(t, elapsed[len(elapsed)-1], 0.2+1e-9)
}

func TestRun_LogsPlaybackFailure(t *testing.T) {
	dir := t.TempDir()
	// zero sample rate leaves no usable output format
	bad := write(t, dir, "bad.flac", fixture.TaggedFLAC(0, 0))
	good := write(t, dir, "good.flac", fixture.TaggedFLAC(44100, 441))

	var logs strings.Builder
	p := New(trackmeta.NewSession(), []string{bad, good}, WithLogger(newTextLogger(&logs)))

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, 1, p.Played())
	assert.Contains(t, logs.String(), "playback failed")
}

type countingWriter struct {
	n atomic.Int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n.Add(int64(len(p)))
	return len(p), nil
}

func newTextLogger(b *strings.Builder) *slog.Logger {
	return slog.New(slog.NewTextHandler(b, nil))
}
