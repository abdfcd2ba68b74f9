package wave

import (
	"math"
	"testing"
)

func TestSineProperties(t *testing.T) {
	buf := make([]float64, 64)
	Generate(buf, ShapeSine, 1, 1, 0)
	if math.Abs(buf[0]) > 1e-9 {
		t.Errorf("sine[0] = %v, want 0", buf[0])
	}
	if got := buf[16]; math.Abs(got-1) > 1e-9 {
		t.Errorf("sine quarter period = %v, want 1", got)
	}
	var sum float64
	for _, s := range buf {
		sum += s
		if math.Abs(s) > 1.0+1e-9 {
			t.Fatalf("sample %v exceeds amplitude", s)
		}
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("sine mean = %v, want ~0", sum/64)
	}
}

func TestSquareLevels(t *testing.T) {
	buf := make([]float64, 32)
	Generate(buf, ShapeSquare, 1, 2, 0)
	for i, s := range buf {
		want := 2.0
		if i >= 16 {
			want = -2.0
		}
		if s != want {
			t.Fatalf("square[%d] = %v, want %v", i, s, want)
		}
	}
}

func TestTriangleExtremes(t *testing.T) {
	buf := make([]float64, 64)
	Generate(buf, ShapeTriangle, 1, 1, 0)
	if math.Abs(buf[0]-1) > 0.1 {
		t.Errorf("triangle start = %v, want ~1", buf[0])
	}
	if math.Abs(buf[32]+1) > 0.1 {
		t.Errorf("triangle midpoint = %v, want ~-1", buf[32])
	}
}

func TestPhaseScrolls(t *testing.T) {
	a := make([]float64, 32)
	b := make([]float64, 32)
	Generate(a, ShapeSine, 1, 1, 0)
	Generate(b, ShapeSine, 1, 1, 0.5)
	// Half a period of phase inverts the trace.
	for i := range a {
		if math.Abs(a[i]+b[i]) > 1e-9 {
			t.Fatalf("phase shift mismatch at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSpectrumPeaksAtFundamental(t *testing.T) {
	buf := make([]float64, 64)
	Generate(buf, ShapeSine, 4, 1, 0) // 4 cycles -> energy in bin 4
	mag := SpectrumMag(buf, 16)
	peak := 0
	for i, m := range mag {
		if m > mag[peak] {
			peak = i
		}
	}
	if peak != 3 { // bins start at k=1
		t.Errorf("spectrum peak at bin %d, want 3 (k=4)", peak+1)
	}
	if math.Abs(mag[peak]-1) > 0.01 {
		t.Errorf("fundamental magnitude = %v, want ~1", mag[peak])
	}
}

func TestAddNoiseReproducible(t *testing.T) {
	a := make([]float64, 16)
	b := make([]float64, 16)
	AddNoise(a, 0.5, 7)
	AddNoise(b, 0.5, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed produced different noise")
		}
		if math.Abs(a[i]) > 0.5 {
			t.Fatalf("noise sample %v exceeds amplitude", a[i])
		}
	}
}

func TestBarsClampAndScale(t *testing.T) {
	bars := Bars([]float64{-2, -1, 0, 1, 2}, 8, 1)
	want := []int{0, 0, 4, 8, 8}
	for i := range want {
		if bars[i] != want[i] {
			t.Errorf("bar %d = %d, want %d", i, bars[i], want[i])
		}
	}
}
