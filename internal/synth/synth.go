// Package synth generates the warning tone on demand for the audio sink.
//
// Parameters are published by the frame goroutine as immutable snapshots and
// read with a single atomic load, so Fill never blocks. Everything else on a
// Synthesizer belongs to the audio goroutine.
package synth

import (
	"math"
	"sync/atomic"

	"proximity.klederson.com/internal/config"
)

// Params is one published snapshot of what the tone should be.
type Params struct {
	Waveform      config.Waveform
	Pitch         config.Pitch
	BaseFrequency float64
	VerticalSpeed float64
	Emit          bool
	Volume        float64
	ReuseBuffer   bool
}

// Frequency is the tone frequency in Hz for the snapshot.
func (p Params) Frequency() float64 {
	switch p.Pitch {
	case config.Pitch440:
		return 440
	case config.Pitch880:
		return 880
	case config.Pitch1760:
		return 1760
	}
	descent := math.Min(math.Max(-p.VerticalSpeed, 0), config.TerminalSpeed)
	return p.BaseFrequency + descent*config.PitchPerSpeed
}

// Synthesizer is a pull-based sample generator.
type Synthesizer struct {
	params     atomic.Pointer[Params]
	sampleRate int

	position int64
	lastFreq float64
	lastWave config.Waveform
	cache    []float32
}

// New creates a silent synthesizer for the given output rate.
func New(sampleRate int) *Synthesizer {
	if sampleRate <= 0 {
		sampleRate = config.SampleRate
	}
	return &Synthesizer{sampleRate: sampleRate}
}

// Publish replaces the parameter snapshot seen by the next Fill.
func (s *Synthesizer) Publish(p Params) {
	s.params.Store(&p)
}

// Params returns the current snapshot, or nil before the first Publish.
func (s *Synthesizer) Params() *Params {
	return s.params.Load()
}

// SampleRate reports the output rate in Hz.
func (s *Synthesizer) SampleRate() int {
	return s.sampleRate
}

// Position is the absolute sample index of the next Fill.
func (s *Synthesizer) Position() int64 {
	return s.position
}

// Reset rewinds to the start of a pulse.
func (s *Synthesizer) Reset() {
	s.position = 0
}

// Fill writes len(buf) samples and advances the position by len(buf).
func (s *Synthesizer) Fill(buf []float32) {
	defer func() { s.position += int64(len(buf)) }()

	p := s.params.Load()
	if p == nil || !p.Emit || p.Waveform == config.WaveSilent {
		clear(buf)
		return
	}

	freq := p.Frequency()
	if p.ReuseBuffer && s.reusable(freq, p.Waveform, len(buf)) {
		copy(buf, s.cache)
		return
	}

	switch p.Waveform {
	case config.WaveSquare:
		for i := range buf {
			buf[i] = sign(lutSin(cycles(freq, s.position+int64(i), s.sampleRate)))
		}
	case config.WaveSaw:
		// Each pair of slots shares the value at its even position.
		for i := range buf {
			pos := (s.position + int64(i)) &^ 1
			buf[i] = float32(pingPong(cycles(freq, pos, s.sampleRate), 0.5))
		}
	case config.WaveSine:
		for i := range buf {
			buf[i] = lutSin(cycles(freq, s.position+int64(i), s.sampleRate))
		}
	}

	if p.ReuseBuffer {
		s.cache = append(s.cache[:0], buf...)
		s.lastFreq = freq
		s.lastWave = p.Waveform
	}
}

func (s *Synthesizer) reusable(freq float64, w config.Waveform, n int) bool {
	return len(s.cache) == n &&
		s.lastWave == w &&
		math.Abs(freq-s.lastFreq) < config.ReuseTolerance
}
