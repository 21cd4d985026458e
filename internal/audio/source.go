// Package audio streams synthesizer pulses to the sound device.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"proximity.klederson.com/internal/synth"
)

const bytesPerSample = 4 // mono float32 little endian

// Source is the pull side of the sink: an io.Reader producing one pulse of
// synthesized tone per Play call, silence otherwise.
type Source struct {
	synth   *synth.Synthesizer
	pending atomic.Int64 // samples requested by the last Play, consumed by Read
	pulses  atomic.Int64

	// Audio goroutine only.
	remaining int
	sampleBuf []float32
}

// NewSource wraps a synthesizer.
func NewSource(s *synth.Synthesizer) *Source {
	return &Source{
		synth:     s,
		sampleBuf: make([]float32, 1024),
	}
}

// Play arms a pulse of the given length in samples. It restarts the tone
// from position zero and never blocks.
func (src *Source) Play(samples int) {
	if samples <= 0 {
		return
	}
	src.pending.Store(int64(samples))
	src.pulses.Add(1)
}

// Pulses reports how many pulses have been armed.
func (src *Source) Pulses() int64 {
	return src.pulses.Load()
}

// Read fills p with float32 samples.
func (src *Source) Read(p []byte) (int, error) {
	if n := src.pending.Swap(0); n > 0 {
		src.synth.Reset()
		src.remaining = int(n)
	}

	numSamples := len(p) / bytesPerSample
	if len(src.sampleBuf) < numSamples {
		src.sampleBuf = make([]float32, numSamples)
	}
	samples := src.sampleBuf[:numSamples]
	clear(samples)

	if k := min(src.remaining, numSamples); k > 0 {
		src.synth.Fill(samples[:k])
		src.remaining -= k

		gain := float32(0)
		if params := src.synth.Params(); params != nil {
			gain = float32(params.Volume)
		}
		for i := range samples[:k] {
			samples[i] *= gain
		}
	}

	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	clear(p[numSamples*bytesPerSample:])
	return len(p), nil
}
