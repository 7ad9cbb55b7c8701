package output

import (
	"context"
	"errors"
	"io"
	"time"
)

// FrameDuration is the amount of audio written per device write.
const FrameDuration = 20 * time.Millisecond

// ErrInvalidParams is returned when the stream has no usable byte rate.
var ErrInvalidParams = errors.New("output: stream parameters have zero byte rate")

// Device is a null audio device. It accepts PCM and discards it.
type Device struct{}

// Write discards p.
func (Device) Write(p []byte) (int, error) {
	return len(p), nil
}

// Play writes seconds of silence to w in FrameDuration chunks. When
// realtime is set the writes are paced by a ticker so that the stream
// advances at its byte rate; otherwise they run as fast as w accepts them.
// Play returns ctx.Err() if ctx is cancelled first.
func Play(ctx context.Context, w io.Writer, params StreamParams, seconds float64, realtime bool) error {
	if !params.Valid() {
		return ErrInvalidParams
	}
	if seconds <= 0 {
		return nil
	}

	align := int64(params.BlockAlign())
	total := int64(seconds*float64(params.ByteRate())) / align * align

	frame := int64(float64(params.ByteRate())*FrameDuration.Seconds()) / align * align
	if frame <= 0 {
		frame = align
	}
	buf := make([]byte, frame)

	var tick <-chan time.Time
	if realtime {
		ticker := time.NewTicker(FrameDuration)
		defer ticker.Stop()
		tick = ticker.C
	}

	for written := int64(0); written < total; {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		n := min(frame, total-written)
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
		written += n
	}
	return nil
}
