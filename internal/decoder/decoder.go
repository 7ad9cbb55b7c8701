// Package decoder reports the PCM parameters a track decodes to, which is
// what the playback position is measured against.
package decoder

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/simonhull/trackmeta/internal/output"
	"github.com/simonhull/trackmeta/internal/types"
)

// MP3 frames decode to 16-bit PCM.
const mp3BitsPerSample = 16

// ErrNoStreamParams is returned when neither the container nor the parsed
// stream info yields a usable byte rate.
var ErrNoStreamParams = errors.New("decoder: no usable stream parameters")

// Probe returns the PCM parameters for the stream in r.
//
// WAV headers are read with a RIFF decoder; FLAC and MP3 use the stream
// info recovered by the metadata parser in fallback. r is rewound to the
// start before returning.
func Probe(r io.ReadSeeker, format types.Format, fallback types.StreamInfo) (output.StreamParams, error) {
	var params output.StreamParams

	switch format {
	case types.FormatWAV:
		p, err := probeWAV(r)
		if err != nil {
			// Fall back to the parser's view of the fmt chunk.
			p = fromStreamInfo(fallback)
			if !p.Valid() {
				return output.StreamParams{}, err
			}
		}
		params = p

	case types.FormatFLAC:
		params = fromStreamInfo(fallback)

	case types.FormatMP3:
		params = fromStreamInfo(fallback)
		params.BitsPerSample = mp3BitsPerSample
		if params.Channels == 0 {
			params.Channels = 2
		}

	default:
		return output.StreamParams{}, fmt.Errorf("decoder: %w", &types.UnsupportedFormatError{Reason: format.String()})
	}

	if !params.Valid() {
		return output.StreamParams{}, ErrNoStreamParams
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return output.StreamParams{}, fmt.Errorf("decoder: rewind: %w", err)
	}
	return params, nil
}

func probeWAV(r io.ReadSeeker) (output.StreamParams, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return output.StreamParams{}, err
	}

	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return output.StreamParams{}, fmt.Errorf("decoder: read WAV header: %w", err)
		}
		return output.StreamParams{}, errors.New("decoder: invalid WAV file")
	}

	return output.StreamParams{
		SampleRate:    int(d.SampleRate),
		Channels:      int(d.NumChans),
		BitsPerSample: int(d.BitDepth),
	}, nil
}

func fromStreamInfo(s types.StreamInfo) output.StreamParams {
	return output.StreamParams{
		SampleRate:    s.SampleRate,
		Channels:      s.Channels,
		BitsPerSample: s.BitsPerSample,
	}
}
