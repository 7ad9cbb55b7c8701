package mp3

import (
	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// syncScanBytes bounds how far into the file a frame sync is searched for.
const syncScanBytes = 1024

// Assumed stream when no frame sync is found.
const (
	defaultBitrate    = 128000
	defaultSampleRate = 44100
)

// MPEG audio version IDs (header bits 19-20).
const (
	versionMPEG25   = 0
	versionReserved = 1
	versionMPEG2    = 2
	versionMPEG1    = 3
)

// Sample rates in Hz, indexed by [row][sample rate index].
var sampleRateTable = [3][3]int{
	{44100, 48000, 32000}, // MPEG1
	{22050, 24000, 16000}, // MPEG2
	{11025, 12000, 8000},  // MPEG2.5
}

// Bitrates in kbps, indexed by [row][bitrate index]. Index 15 is invalid.
var bitrateTable = [2][15]int{
	{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}, // MPEG1
	{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256},    // MPEG2, MPEG2.5
}

// FrameHeader holds the fields decoded from an MPEG audio frame header.
type FrameHeader struct {
	Offset     int64
	Version    int // versionMPEG1, versionMPEG2 or versionMPEG25
	Bitrate    int // bits per second
	SampleRate int
	Channels   int
}

// findFrameHeader scans the first syncScanBytes of the file for a frame
// sync followed by valid version, bitrate and sample rate fields.
func findFrameHeader(c *binary.Cursor) (FrameHeader, bool) {
	n := min(c.Size(), syncScanBytes)
	if err := c.Seek(0); err != nil {
		return FrameHeader{}, false
	}
	buf, err := c.Read(int(n), "frame sync window")
	if err != nil {
		return FrameHeader{}, false
	}

	for i := 0; i+2 < len(buf); i++ {
		if buf[i] != 0xFF || buf[i+1]&0xE0 != 0xE0 {
			continue
		}
		var mode byte
		if i+3 < len(buf) {
			mode = buf[i+3] >> 6
		}
		if h, ok := decodeFrameHeader(buf[i+1], buf[i+2], mode); ok {
			h.Offset = int64(i)
			return h, true
		}
	}
	return FrameHeader{}, false
}

// decodeFrameHeader decodes the second and third header bytes plus the
// channel mode. ok is false for reserved or invalid index values.
func decodeFrameHeader(b1, b2, channelMode byte) (FrameHeader, bool) {
	version := int(b1>>3) & 0x3
	bitrateIdx := int(b2 >> 4)
	sampleRateIdx := int(b2>>2) & 0x3

	if version == versionReserved || bitrateIdx == 0 || bitrateIdx == 15 || sampleRateIdx == 3 {
		return FrameHeader{}, false
	}

	srRow, brRow := 0, 0
	switch version {
	case versionMPEG2:
		srRow, brRow = 1, 1
	case versionMPEG25:
		srRow, brRow = 2, 1
	}

	channels := 2
	if channelMode == 3 {
		channels = 1
	}

	return FrameHeader{
		Version:    version,
		Bitrate:    bitrateTable[brRow][bitrateIdx] * 1000,
		SampleRate: sampleRateTable[srRow][sampleRateIdx],
		Channels:   channels,
	}, true
}

// estimateDuration assumes a constant bitrate over the whole file.
func estimateDuration(size int64, bitrate int) float64 {
	if bitrate <= 0 || size <= 0 {
		return 0
	}
	return float64(size) * 8 / float64(bitrate)
}

// parseTechnicalInfo fills the stream info and the CBR duration estimate.
func parseTechnicalInfo(c *binary.Cursor, res *types.Result) {
	h, ok := findFrameHeader(c)
	if !ok {
		res.Warn("technical", 0, "no MPEG frame sync in first %d bytes, assuming %d kbps", syncScanBytes, defaultBitrate/1000)
		h = FrameHeader{Bitrate: defaultBitrate, SampleRate: defaultSampleRate, Channels: 2}
	}

	res.Stream.Bitrate = h.Bitrate
	res.Stream.SampleRate = h.SampleRate
	res.Stream.Channels = h.Channels
	res.Stream.BitsPerSample = 16 // decoded PCM width
	res.SetDuration(estimateDuration(c.Size(), h.Bitrate))
}
