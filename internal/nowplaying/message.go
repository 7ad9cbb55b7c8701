// Package nowplaying serves the current track of a trackmeta.Session to
// display clients over HTTP and WebSocket.
package nowplaying

import (
	"time"

	"github.com/simonhull/trackmeta"
)

// Message types pushed over the WebSocket.
const (
	TypeTrack = "track"
	TypeTick  = "tick"
)

// Message is the now-playing payload shared by the REST and WebSocket
// endpoints.
type Message struct {
	Type         string           `json:"type,omitempty"`
	TrackID      string           `json:"track_id"`
	Path         string           `json:"path,omitempty"`
	Format       trackmeta.Format `json:"format"`
	Title        string           `json:"title"`
	Artist       string           `json:"artist"`
	Album        string           `json:"album"`
	Duration     float64          `json:"duration"`
	Elapsed      float64          `json:"elapsed"`
	DurationText string           `json:"duration_text"`
	ElapsedText  string           `json:"elapsed_text"`
	Timestamp    time.Time        `json:"timestamp"`
}

// NewMessage builds a Message of the given type from snap. Elapsed is
// clamped to the duration when the duration is known.
func NewMessage(typ string, snap trackmeta.Snapshot) Message {
	elapsed := snap.Elapsed
	if snap.Duration > 0 && elapsed > snap.Duration {
		elapsed = snap.Duration
	}
	return Message{
		Type:         typ,
		TrackID:      snap.TrackID,
		Path:         snap.Path,
		Format:       snap.Format,
		Title:        snap.Metadata.Title,
		Artist:       snap.Metadata.Artist,
		Album:        snap.Metadata.Album,
		Duration:     snap.Duration,
		Elapsed:      elapsed,
		DurationText: trackmeta.FormatDuration(snap.Duration),
		ElapsedText:  trackmeta.FormatDuration(elapsed),
		Timestamp:    time.Now(),
	}
}
