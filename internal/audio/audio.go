// Package audio triggers the buzzer sound. Playback itself belongs to the
// presenter; the engine only signals when a cue is due.
package audio

import (
	"io"
	"sync"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_cue.go github.com/KirkDiggler/starterforten/internal/audio Cue

// Cue plays the buzz sound
type Cue interface {
	Play()
}

// Bell rings the terminal bell on the wrapped writer
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

// Nop discards every cue
type Nop struct{}

func (Nop) Play() {}
