package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity.klederson.com/internal/config"
)

func tone(w config.Waveform, pitch config.Pitch) Params {
	return Params{
		Waveform:      w,
		Pitch:         pitch,
		BaseFrequency: config.BaseFrequency,
		VerticalSpeed: -30,
		Emit:          true,
		Volume:        1,
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want float64
	}{
		{"variable descending", Params{Pitch: config.PitchVariable, BaseFrequency: 280, VerticalSpeed: -10}, 430},
		{"variable capped at terminal speed", Params{Pitch: config.PitchVariable, BaseFrequency: 280, VerticalSpeed: -900}, 280 + 250*15},
		{"variable climbing stays at base", Params{Pitch: config.PitchVariable, BaseFrequency: 280, VerticalSpeed: 12}, 280},
		{"fixed 440", Params{Pitch: config.Pitch440, VerticalSpeed: -100}, 440},
		{"fixed 880", Params{Pitch: config.Pitch880}, 880},
		{"fixed 1760", Params{Pitch: config.Pitch1760}, 1760},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Frequency(), 1e-9)
		})
	}
}

func TestFill_SquareValues(t *testing.T) {
	s := New(44100)
	s.Publish(tone(config.WaveSquare, config.Pitch440))

	buf := make([]float32, 4410)
	s.Fill(buf)

	var pos, neg int
	for _, v := range buf {
		require.Contains(t, []float32{-1, 0, 1}, v)
		if v > 0 {
			pos++
		} else if v < 0 {
			neg++
		}
	}
	assert.InDelta(t, len(buf)/2, pos, 50)
	assert.InDelta(t, len(buf)/2, neg, 50)
}

func TestFill_PhaseContinuity(t *testing.T) {
	for _, w := range []config.Waveform{config.WaveSquare, config.WaveSaw, config.WaveSine} {
		t.Run(w.String(), func(t *testing.T) {
			whole := New(44100)
			whole.Publish(tone(w, config.PitchVariable))
			want := make([]float32, 1500)
			whole.Fill(want)

			split := New(44100)
			split.Publish(tone(w, config.PitchVariable))
			got := make([]float32, 0, 1500)
			for _, n := range []int{511, 1, 600, 388} {
				buf := make([]float32, n)
				split.Fill(buf)
				got = append(got, buf...)
			}

			assert.Equal(t, want, got)
		})
	}
}

func TestFill_SawPairs(t *testing.T) {
	s := New(44100)
	s.Publish(tone(config.WaveSaw, config.Pitch880))

	buf := make([]float32, 256)
	s.Fill(buf)
	for i := 0; i < len(buf); i += 2 {
		assert.Equal(t, buf[i], buf[i+1], "slot %d", i)
		assert.GreaterOrEqual(t, buf[i], float32(0))
		assert.LessOrEqual(t, buf[i], float32(0.5))
	}
}

func TestFill_SineMatchesTable(t *testing.T) {
	s := New(8192)
	s.Publish(tone(config.WaveSine, config.Pitch440))

	buf := make([]float32, 64)
	s.Fill(buf)
	for i, v := range buf {
		idx := (i * 440) & sinLUTMask
		assert.Equal(t, sinLUT[idx], v, "sample %d", i)
	}
}

func TestFill_SilenceAdvancesPosition(t *testing.T) {
	s := New(44100)

	buf := []float32{9, 9, 9, 9}
	s.Fill(buf)
	assert.Equal(t, []float32{0, 0, 0, 0}, buf)
	assert.EqualValues(t, 4, s.Position())

	p := tone(config.WaveSine, config.Pitch440)
	p.Emit = false
	s.Publish(p)
	buf = []float32{9, 9, 9}
	s.Fill(buf)
	assert.Equal(t, []float32{0, 0, 0}, buf)
	assert.EqualValues(t, 7, s.Position())

	s.Publish(tone(config.WaveSilent, config.Pitch440))
	s.Fill(make([]float32, 10))
	assert.EqualValues(t, 17, s.Position())

	s.Reset()
	assert.Zero(t, s.Position())
}

func TestFill_ReuseBuffer(t *testing.T) {
	s := New(44100)
	p := tone(config.WaveSine, config.PitchVariable)
	p.ReuseBuffer = true
	s.Publish(p)

	first := make([]float32, 300)
	s.Fill(first)

	// 0.2 m/s faster is 3 Hz higher: under tolerance, so the cached block repeats.
	p.VerticalSpeed -= 0.2
	s.Publish(p)
	second := make([]float32, 300)
	s.Fill(second)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 600, s.Position())

	// A different length regenerates.
	third := make([]float32, 200)
	s.Fill(third)
	fresh := New(44100)
	fresh.Publish(p)
	fresh.Fill(make([]float32, 600))
	want := make([]float32, 200)
	fresh.Fill(want)
	assert.Equal(t, want, third)

	// A waveform change regenerates too.
	p.Waveform = config.WaveSquare
	s.Publish(p)
	fourth := make([]float32, 200)
	s.Fill(fourth)
	assert.NotEqual(t, third, fourth)
}

func TestPingPong(t *testing.T) {
	assert.InDelta(t, 0.0, pingPong(0, 0.5), 1e-12)
	assert.InDelta(t, 0.25, pingPong(0.25, 0.5), 1e-12)
	assert.InDelta(t, 0.5, pingPong(0.5, 0.5), 1e-12)
	assert.InDelta(t, 0.25, pingPong(0.75, 0.5), 1e-12)
	assert.InDelta(t, 0.0, pingPong(1, 0.5), 1e-12)
	assert.InDelta(t, 0.1, pingPong(3.1, 0.5), 1e-9)
}
