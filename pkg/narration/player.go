package narration

import (
	"errors"
	"sync"
)

// Handle controls one in-flight playback. Stop must tolerate the underlying
// resource having already finished.
type Handle interface {
	Stop()
}

// Sink starts playback of a clip and invokes done when it finishes
// naturally. done must be called from a separate goroutine, never from
// within Play itself.
type Sink interface {
	Play(clip *Clip, done func()) (Handle, error)
}

type State int

const (
	Idle State = iota
	Playing
)

// Player enforces single-clip playback: starting a new clip stops the
// active one first, so at most one narration clip plays at any instant.
// Natural completion is an explicit transition back to Idle.
type Player struct {
	mu     sync.Mutex
	sink   Sink
	state  State
	active *Clip
	handle Handle
	gen    uint64
}

func NewPlayer(sink Sink) *Player {
	return &Player{sink: sink}
}

// Play starts the clip, stopping any active playback first. On sink error
// the player stays Idle.
func (p *Player) Play(clip *Clip) error {
	if clip == nil {
		return errors.New("cannot play a nil clip")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	gen := p.gen
	handle, err := p.sink.Play(clip, func() { p.finished(gen) })
	if err != nil {
		return err
	}

	p.state = Playing
	p.active = clip
	p.handle = handle
	return nil
}

// Stop halts playback if any. Stopping while Idle is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.state != Playing {
		return
	}
	p.handle.Stop()
	// Invalidate the completion callback of the clip being stopped.
	p.gen++
	p.state = Idle
	p.active = nil
	p.handle = nil
}

// finished is the natural-completion transition. A stale generation means
// the clip was already stopped or replaced; the callback is ignored.
func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.gen != gen {
		return
	}
	p.gen++
	p.state = Idle
	p.active = nil
	p.handle = nil
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ActiveClip returns the clip currently playing, or nil when Idle.
func (p *Player) ActiveClip() *Clip {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}
