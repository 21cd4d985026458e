//go:build headless

package audio

// Player is a no-op sink for builds without an audio device.
type Player struct {
	source  *Source
	started bool
}

// NewPlayer returns a player that never opens a device.
func NewPlayer(sampleRate int, src *Source) (*Player, error) {
	return &Player{source: src}, nil
}

// Start marks the player as running.
func (pl *Player) Start() {
	pl.started = true
}

// Stop marks the player as paused.
func (pl *Player) Stop() {
	pl.started = false
}

// Close stops the player.
func (pl *Player) Close() error {
	pl.started = false
	return nil
}

// IsStarted reports whether Start was called since the last Stop.
func (pl *Player) IsStarted() bool {
	return pl.started
}
