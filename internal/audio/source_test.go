package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity.klederson.com/internal/config"
	"proximity.klederson.com/internal/synth"
)

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func newSource(volume float64) (*Source, *synth.Synthesizer) {
	s := synth.New(44100)
	s.Publish(synth.Params{
		Waveform: config.WaveSquare,
		Pitch:    config.Pitch440,
		Emit:     true,
		Volume:   volume,
	})
	return NewSource(s), s
}

func TestSource_SilentUntilPlay(t *testing.T) {
	src, _ := newSource(1)

	p := make([]byte, 64)
	n, err := src.Read(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)
	for _, v := range decode(p) {
		assert.Zero(t, v)
	}
}

func TestSource_PulseLengthAndVolume(t *testing.T) {
	src, s := newSource(0.5)
	src.Play(100)
	assert.EqualValues(t, 1, src.Pulses())

	p := make([]byte, 64*bytesPerSample)
	_, err := src.Read(p)
	require.NoError(t, err)
	for _, v := range decode(p) {
		assert.Contains(t, []float32{-0.5, 0.5}, v)
	}

	_, err = src.Read(p)
	require.NoError(t, err)
	got := decode(p)
	for i := 0; i < 36; i++ {
		assert.NotZero(t, got[i], "sample %d", i)
	}
	for i := 36; i < 64; i++ {
		assert.Zero(t, got[i], "sample %d", i)
	}
	assert.EqualValues(t, 100, s.Position())
}

func TestSource_PlayRestartsTone(t *testing.T) {
	src, s := newSource(1)

	src.Play(10)
	first := make([]byte, 10*bytesPerSample)
	_, _ = src.Read(first)

	src.Play(10)
	second := make([]byte, 10*bytesPerSample)
	_, _ = src.Read(second)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 10, s.Position())
}

func TestSource_OddByteTail(t *testing.T) {
	src, _ := newSource(1)
	src.Play(50)

	p := []byte{1, 1, 1, 1, 1, 1, 1}
	n, err := src.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []byte{0, 0, 0}, p[4:])
}

func TestSource_IgnoresEmptyPulse(t *testing.T) {
	src, _ := newSource(1)
	src.Play(0)
	assert.Zero(t, src.Pulses())
}
