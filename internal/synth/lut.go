package synth

import "math"

const (
	sinLUTSize = 8192           // one full waveform cycle
	sinLUTMask = sinLUTSize - 1 // fast modulo
)

// sinLUT holds sin over [0, 2π) sampled at sinLUTSize points.
var sinLUT [sinLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(sinLUTSize)
		sinLUT[i] = float32(math.Sin(phase))
	}
}

// cycles is the number of waveform cycles elapsed at sample position p.
func cycles(freq float64, p int64, sampleRate int) float64 {
	return freq * float64(p) / float64(sampleRate)
}

// lutSin returns the table entry floor(N × cycles) mod N.
func lutSin(c float64) float32 {
	frac := c - math.Floor(c)
	return sinLUT[int(frac*sinLUTSize)&sinLUTMask]
}

// sign maps zero to +1.
func sign(v float32) float32 {
	if v >= 0 {
		return 1
	}
	return -1
}

// pingPong bounces t between 0 and length.
func pingPong(t, length float64) float64 {
	r := t - math.Floor(t/(2*length))*2*length
	return length - math.Abs(r-length)
}
