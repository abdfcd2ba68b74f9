package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"eecsim-go/wave"
)

const (
	scopeWidth  = 64
	scopeHeight = 12
)

// scopeScreen renders a scrolling oscilloscope trace.
type scopeScreen struct {
	shape wave.Shape
	amp   float64
	phase float64
	noise bool
	buf   []float64
}

func newScopeScreen() *scopeScreen {
	return &scopeScreen{amp: 1, buf: make([]float64, scopeWidth)}
}

func (s *scopeScreen) Name() string  { return "scope" }
func (s *scopeScreen) Title() string { return "Scope" }

func (s *scopeScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "s":
		s.shape = (s.shape + 1) % 4
	case "+", "=":
		if s.amp < 2 {
			s.amp += 0.1
		}
	case "-":
		if s.amp > 0.2 {
			s.amp -= 0.1
		}
	case "n":
		s.noise = !s.noise
	default:
		return false
	}
	return true
}

func (s *scopeScreen) Tick(*App) {
	s.phase += 0.08
	wave.Generate(s.buf, s.shape, 2, s.amp, s.phase)
	if s.noise {
		wave.AddNoise(s.buf, 0.1, int64(s.phase*1000))
	}
}

func (s *scopeScreen) View(*App) string {
	rows := renderTrace(s.buf, scopeHeight, 2.2)
	head := fmt.Sprintf("shape=%s amp=%.1f noise=%v\n", s.shape, s.amp, s.noise)
	return panelStyle.Render(head + rows + "\ns shape, +/- amplitude, n noise")
}

// renderTrace plots samples as one glyph per column.
func renderTrace(buf []float64, height int, span float64) string {
	levels := wave.Bars(buf, height-1, span)
	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", len(buf)))
	}
	for x, lv := range levels {
		y := height - 1 - lv
		grid[y][x] = '*'
	}
	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// spectrumScreen shows the magnitude spectrum of the generated signal.
type spectrumScreen struct {
	shape  wave.Shape
	cycles float64
	buf    []float64
}

func newSpectrumScreen() *spectrumScreen {
	return &spectrumScreen{cycles: 4, buf: make([]float64, scopeWidth)}
}

func (s *spectrumScreen) Name() string  { return "spectrum" }
func (s *spectrumScreen) Title() string { return "Spectrum" }

func (s *spectrumScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "s":
		s.shape = (s.shape + 1) % 4
	case "up", "k":
		if s.cycles < 16 {
			s.cycles++
		}
	case "down", "j":
		if s.cycles > 1 {
			s.cycles--
		}
	default:
		return false
	}
	return true
}

func (s *spectrumScreen) Tick(*App) {
	wave.Generate(s.buf, s.shape, s.cycles, 1, 0)
}

func (s *spectrumScreen) View(*App) string {
	mags := wave.SpectrumMag(s.buf, 16)
	// magnitudes are non-negative; recentre them so Bars spans the full
	// [0, max] range instead of parking everything in the upper half
	shifted := make([]float64, len(mags))
	for i, m := range mags {
		shifted[i] = 2*m - 1.2
	}
	heights := wave.Bars(shifted, 8, 1.2)
	var b strings.Builder
	fmt.Fprintf(&b, "shape=%s fundamental=bin %d\n\n", s.shape, int(s.cycles))
	for row := 7; row >= 0; row-- {
		for _, h := range heights {
			if h > row {
				b.WriteString("██ ")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteByte('\n')
	}
	for i := range heights {
		fmt.Fprintf(&b, "%2d ", i+1)
	}
	b.WriteString("\n\ns shape, up/down fundamental")
	return panelStyle.Render(b.String())
}
