// Package scheduler paces sweep refreshes and audio pulses while the
// instrument is live. Closer to the ground means faster refresh.
package scheduler

import (
	"proximity.klederson.com/internal/config"
	"proximity.klederson.com/internal/gate"
	"proximity.klederson.com/internal/indicator"
	"proximity.klederson.com/internal/synth"
	"proximity.klederson.com/internal/vessel"
)

// Pulser arms one audio pulse of the given length in samples.
type Pulser interface {
	Play(samples int)
}

// Publisher receives the tone parameters for the audio goroutine.
type Publisher interface {
	Publish(p synth.Params)
}

// Input is one frame's worth of scheduler input.
type Input struct {
	Signal   vessel.Signal
	Altitude int
	Settings config.Settings
	Event    gate.Event
}

// Output reports what the tick produced.
type Output struct {
	Sweep     string
	Refreshed bool
	Pulsed    bool
	Crackled  bool
}

// Scheduler holds the refresh and pulse counters.
type Scheduler struct {
	indicator *indicator.Indicator
	publisher Publisher
	pulser    Pulser

	skip      int
	audioSkip int
	sweep     string
}

// New creates a scheduler. publisher and pulser may be nil when audio is off.
func New(ind *indicator.Indicator, publisher Publisher, pulser Pulser) *Scheduler {
	return &Scheduler{
		indicator: ind,
		publisher: publisher,
		pulser:    pulser,
	}
}

// Interval is the number of frames between refreshes at the given altitude.
func Interval(altitude, activationHeight int) int {
	if activationHeight <= 0 || altitude <= 0 {
		return 0
	}
	a, h := int64(altitude), int64(activationHeight)
	return int(a * h * config.BeepIntervalGain / (h * h))
}

// Sweep is the last rendered frame.
func (sc *Scheduler) Sweep() string {
	return sc.sweep
}

// Tick runs one live frame.
func (sc *Scheduler) Tick(in Input) Output {
	sc.publish(in, gate.ShouldBeep(in.Signal))

	if in.Event == gate.Activated {
		sc.skip = 0
	}

	var out Output
	sc.skip--
	if sc.skip <= 0 {
		sc.skip = Interval(in.Altitude, in.Settings.ActivationHeight)
		out.Refreshed = true

		if in.Signal.Powered && in.Settings.SystemOn {
			sweep := sc.indicator.Render(in.Altitude, in.Signal.VerticalSpeed, in.Settings)
			sc.sweep, out.Crackled = sc.indicator.Crackle(sweep, in.Signal.VerticalSpeed)
			out.Pulsed = sc.sound(in)
		} else {
			sc.sweep = indicator.Unpowered
		}
	}

	out.Sweep = sc.sweep
	return out
}

// Reset clears the refresh and pulse counters so the next live frame
// refreshes and pulses at once.
func (sc *Scheduler) Reset() {
	sc.skip, sc.audioSkip = 0, 0
	sc.sweep = ""
}

// Silence tells the audio side to stop emitting.
func (sc *Scheduler) Silence(s config.Settings) {
	sc.publish(Input{Settings: s}, false)
}

func (sc *Scheduler) sound(in Input) bool {
	if !gate.ShouldBeep(in.Signal) {
		return false
	}

	sc.audioSkip--
	if sc.audioSkip > 0 || in.Settings.Waveform == config.WaveSilent {
		return false
	}
	sc.audioSkip = config.AudioCadence
	if sc.pulser != nil {
		sc.pulser.Play(in.Settings.BeepSamples())
	}
	return true
}

func (sc *Scheduler) publish(in Input, emit bool) {
	if sc.publisher == nil {
		return
	}
	sc.publisher.Publish(synth.Params{
		Waveform:      in.Settings.Waveform,
		Pitch:         in.Settings.Pitch,
		BaseFrequency: config.BaseFrequency,
		VerticalSpeed: in.Signal.VerticalSpeed,
		Emit:          emit,
		Volume:        in.Settings.Volume,
		ReuseBuffer:   in.Settings.ReuseBuffer,
	})
}
