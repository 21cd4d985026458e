//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player owns the output device and streams a Source into it.
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	source  *Source
	started bool
	mutex   sync.Mutex // setup and control only; Read never takes it
}

// NewPlayer opens the default output device at sampleRate.
func NewPlayer(sampleRate int, src *Source) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(src),
		source: src,
	}, nil
}

// Start begins streaming.
func (pl *Player) Start() {
	pl.mutex.Lock()
	defer pl.mutex.Unlock()

	if !pl.started && pl.player != nil {
		pl.player.Play()
		pl.started = true
	}
}

// Stop pauses streaming.
func (pl *Player) Stop() {
	pl.mutex.Lock()
	defer pl.mutex.Unlock()

	if pl.started && pl.player != nil {
		pl.player.Pause()
		pl.started = false
	}
}

// Close releases the device player.
func (pl *Player) Close() error {
	pl.Stop()
	pl.mutex.Lock()
	defer pl.mutex.Unlock()

	if pl.player == nil {
		return nil
	}
	err := pl.player.Close()
	pl.player = nil
	if err != nil {
		return fmt.Errorf("failed to close audio player: %w", err)
	}
	return nil
}

// IsStarted reports whether the device is streaming.
func (pl *Player) IsStarted() bool {
	pl.mutex.Lock()
	defer pl.mutex.Unlock()
	return pl.started
}
