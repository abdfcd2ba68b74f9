// Package wave holds the small signal-generation helpers behind the
// oscilloscope and spectrum demos: periodic waveform synthesis, pseudo
// noise, and a naive DFT magnitude for short buffers.
package wave

import (
	"math"
	"math/rand"

	"eecsim-go/x/mathx"
)

// Shape selects a waveform for Generate.
type Shape uint8

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeSawtooth
)

func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "Sine"
	case ShapeSquare:
		return "Square"
	case ShapeTriangle:
		return "Triangle"
	case ShapeSawtooth:
		return "Sawtooth"
	}
	return "?"
}

// Generate fills buf with cycles periods of the shape, amplitude amp,
// centred on zero. phase is in periods and lets callers scroll the trace.
func Generate(buf []float64, shape Shape, cycles, amp, phase float64) {
	n := len(buf)
	if n == 0 {
		return
	}
	for i := range buf {
		// Position within the waveform, in periods.
		p := float64(i)/float64(n)*cycles + phase
		frac := p - math.Floor(p)
		switch shape {
		case ShapeSine:
			buf[i] = amp * math.Sin(2*math.Pi*p)
		case ShapeSquare:
			if frac < 0.5 {
				buf[i] = amp
			} else {
				buf[i] = -amp
			}
		case ShapeTriangle:
			buf[i] = amp * (4*math.Abs(frac-0.5) - 1)
		case ShapeSawtooth:
			buf[i] = amp * (2*frac - 1)
		}
	}
}

// AddNoise mixes uniform noise of the given amplitude into buf. The seed
// keeps demo output reproducible across frames when callers want that.
func AddNoise(buf []float64, amp float64, seed int64) {
	r := rand.New(rand.NewSource(seed))
	for i := range buf {
		buf[i] += amp * (2*r.Float64() - 1)
	}
}

// SpectrumMag computes the DFT magnitude of samples for the first bins
// frequency bins (DC excluded). A naive O(n·bins) transform: the demo
// buffers are tiny and a radix-2 FFT would be noise here.
func SpectrumMag(samples []float64, bins int) []float64 {
	n := len(samples)
	if n == 0 || bins <= 0 {
		return nil
	}
	if bins > n/2 {
		bins = n / 2
	}
	out := make([]float64, bins)
	for k := 1; k <= bins; k++ {
		var re, im float64
		for i, s := range samples {
			a := 2 * math.Pi * float64(k) * float64(i) / float64(n)
			re += s * math.Cos(a)
			im -= s * math.Sin(a)
		}
		out[k-1] = 2 * math.Hypot(re, im) / float64(n)
	}
	return out
}

// Bars quantises samples into integer bar heights in [0, height], mapping
// the value range [-scale, +scale]. Used by the text-cell scope rendering.
func Bars(samples []float64, height int, scale float64) []int {
	if scale <= 0 {
		scale = 1
	}
	out := make([]int, len(samples))
	for i, s := range samples {
		lvl := (s/scale + 1) / 2 * float64(height)
		out[i] = mathx.Clamp(int(math.Round(lvl)), 0, height)
	}
	return out
}
