package narration

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// Narration payloads are raw little-endian 16-bit PCM, mono, 24000 Hz.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Clip is a decoded narration clip ready for playback. Samples are
// normalized to [-1.0, 1.0].
type Clip struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Frames returns the number of playable frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the clip's playback length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// DecodePCM converts raw little-endian int16 PCM bytes into a clip. Each
// sample is divided by 32768.0; the conversion is exact and reproducible.
func DecodePCM(raw []byte) (*Clip, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("pcm payload has odd length %d", len(raw))
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(s) / 32768.0
	}

	return &Clip{
		Samples:    samples,
		SampleRate: SampleRate,
		Channels:   ChannelCount,
	}, nil
}

// Decode converts a base64-encoded PCM payload into a clip.
func Decode(encoded string) (*Clip, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 audio payload: %w", err)
	}
	return DecodePCM(raw)
}
