// Package output tracks how much PCM has reached the audio device and
// converts that into an elapsed playback position.
package output

import (
	"io"
	"sync/atomic"
)

// Counter is a byte counter shared between the playback engine, which
// adds to it, and readers of the playback position.
type Counter struct {
	n atomic.Uint64
}

// Add records n bytes written and returns the new total.
func (c *Counter) Add(n uint64) uint64 {
	return c.n.Add(n)
}

// Load returns the bytes written since the last Reset.
func (c *Counter) Load() uint64 {
	return c.n.Load()
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.n.Store(0)
}

// Sink wraps the device writer and counts every byte it accepts.
type Sink struct {
	w       io.Writer
	counter *Counter
}

// NewSink returns a Sink writing to w and adding to counter.
func NewSink(w io.Writer, counter *Counter) *Sink {
	return &Sink{w: w, counter: counter}
}

// Write forwards p to the device. Only bytes the device accepted are counted.
func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if n > 0 {
		s.counter.Add(uint64(n))
	}
	return n, err
}

// StreamParams describes the PCM stream currently being fed to the device.
type StreamParams struct {
	SampleRate    int `json:"sample_rate"`
	Channels      int `json:"channels"`
	BitsPerSample int `json:"bits_per_sample"`
}

// ByteRate returns bytes of PCM per second. Bit depths below 8 yield 0.
func (p StreamParams) ByteRate() int {
	return p.SampleRate * p.Channels * (p.BitsPerSample / 8)
}

// BlockAlign returns the size of one frame across all channels.
func (p StreamParams) BlockAlign() int {
	return p.Channels * (p.BitsPerSample / 8)
}

// Elapsed converts a byte count into seconds. It returns 0 when the byte
// rate is not positive.
func (p StreamParams) Elapsed(bytes uint64) float64 {
	rate := p.ByteRate()
	if rate <= 0 {
		return 0
	}
	return float64(bytes) / float64(rate)
}

// Valid reports whether the parameters describe a playable stream.
func (p StreamParams) Valid() bool {
	return p.ByteRate() > 0
}
