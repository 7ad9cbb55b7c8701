package flac

import "github.com/simonhull/trackmeta/internal/binary"

// StreamInfoSize is the fixed length of a STREAMINFO payload.
const StreamInfoSize = 34

// STREAMINFO bit fields, counted from the first payload bit.
//
//	min_block_size  16
//	max_block_size  16
//	min_frame_size  24
//	max_frame_size  24
//	sample_rate     20  byte 10 .. byte 12 high nibble
//	channels-1       3  byte 12 bits 3..1
//	bits_per_sample-1 5 byte 12 bit 0 + byte 13 high nibble
//	total_samples   36  byte 13 low nibble .. byte 17
//	md5            128
var (
	FieldSampleRate    = binary.Field{Offset: 80, Width: 20}
	FieldChannels      = binary.Field{Offset: 100, Width: 3}
	FieldBitsPerSample = binary.Field{Offset: 103, Width: 5}
	FieldTotalSamples  = binary.Field{Offset: 108, Width: 36}
)

// StreamInfo holds the STREAMINFO fields needed for playback bookkeeping.
type StreamInfo struct {
	TotalSamples  uint64
	SampleRate    uint32
	Channels      uint8
	BitsPerSample uint8
}

// DecodeStreamInfo extracts the packed fields from a STREAMINFO payload.
func DecodeStreamInfo(raw [StreamInfoSize]byte) StreamInfo {
	b := raw[:]
	return StreamInfo{
		SampleRate:    uint32(FieldSampleRate.Extract(b)),
		Channels:      uint8(FieldChannels.Extract(b)) + 1,
		BitsPerSample: uint8(FieldBitsPerSample.Extract(b)) + 1,
		TotalSamples:  FieldTotalSamples.Extract(b),
	}
}

// Duration returns total samples over sample rate in seconds, or 0 when
// the sample rate is unknown.
func (s StreamInfo) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.SampleRate)
}
