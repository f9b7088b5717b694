package narration

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Speaker plays clips on the system audio device. It owns the process-wide
// oto context; create it on first user interaction and reuse it.
type Speaker struct {
	ctx *oto.Context
}

func NewSpeaker() (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready
	return &Speaker{ctx: ctx}, nil
}

// Play starts the clip on the device and signals done from a watcher
// goroutine once playback drains.
func (s *Speaker) Play(clip *Clip, done func()) (Handle, error) {
	buf := make([]byte, 4*len(clip.Samples))
	for i, sample := range clip.Samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(sample))
	}

	player := s.ctx.NewPlayer(bytes.NewReader(buf))
	player.Play()

	go func() {
		for player.IsPlaying() {
			time.Sleep(20 * time.Millisecond)
		}
		player.Close()
		done()
	}()

	return &speakerHandle{player: player}, nil
}

type speakerHandle struct {
	player *oto.Player
}

// Stop pauses and releases the device player. The player may already have
// drained; closing it again is harmless.
func (h *speakerHandle) Stop() {
	h.player.Pause()
	_ = h.player.Close()
}
