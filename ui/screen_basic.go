package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"eecsim-go/event"
	"eecsim-go/hal/gpio"
	"eecsim-go/x/ramp"
)

// ---------------------------------------------------------------------------
// hello
// ---------------------------------------------------------------------------

type helloScreen struct {
	frames uint64
}

func newHelloScreen() *helloScreen { return &helloScreen{} }

func (s *helloScreen) Name() string  { return "hello" }
func (s *helloScreen) Title() string { return "Hello" }

func (s *helloScreen) Key(*App, tea.KeyMsg) bool { return false }
func (s *helloScreen) Tick(*App)                 { s.frames++ }

func (s *helloScreen) View(*App) string {
	spin := `|/-\`[s.frames/5%4]
	return panelStyle.Render(fmt.Sprintf(
		"Hello from the EEC simulator  %c\n\nframes: %d", spin, s.frames))
}

// ---------------------------------------------------------------------------
// counter
// ---------------------------------------------------------------------------

// counterScreen counts key and button presses. Button events arrive over
// the bus, so it doubles as a minimal subscriber example.
type counterScreen struct {
	count   int
	presses int
}

func newCounterScreen(app *App) *counterScreen {
	s := &counterScreen{}
	err := app.Bus.Subscribe(event.ButtonPress, "counter-screen",
		func(_ event.Kind, data *event.Payload, _ any) {
			if data != nil && data.Pressed {
				s.presses++
				s.count++
			}
		}, nil)
	if err != nil && app.Log != nil {
		app.Log.Warnf("counter screen: subscribe: %v", err)
	}
	return s
}

func (s *counterScreen) Name() string  { return "counter" }
func (s *counterScreen) Title() string { return "Counter" }

func (s *counterScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "+", "=", "k", "up":
		s.count++
	case "-", "j", "down":
		s.count--
	case "r":
		s.count = 0
	default:
		return false
	}
	return true
}

func (s *counterScreen) Tick(*App) {}

func (s *counterScreen) View(*App) string {
	return panelStyle.Render(fmt.Sprintf(
		"Count: %d\n\n+/- adjust, r reset\nbutton presses seen: %d",
		s.count, s.presses))
}

// ---------------------------------------------------------------------------
// led-control
// ---------------------------------------------------------------------------

type ledScreen struct {
	selected gpio.LED
	fade     ramp.Fader
	fadeLED  gpio.LED
}

func newLEDScreen() *ledScreen { return &ledScreen{} }

func (s *ledScreen) Name() string  { return "led-control" }
func (s *ledScreen) Title() string { return "LED Control" }

func (s *ledScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < gpio.LEDCount-1 {
			s.selected++
		}
	case " ", "enter":
		app.GPIO.ToggleLED(s.selected)
	case "r":
		app.GPIO.ToggleLED(gpio.LEDRed)
	case "g":
		app.GPIO.ToggleLED(gpio.LEDGreen)
	case "b":
		app.GPIO.ToggleLED(gpio.LEDBlue)
	case "f":
		// fade the selected LED to the opposite extreme
		cur := uint16(app.GPIO.Brightness(s.selected))
		target := uint16(0)
		if cur < 50 {
			target = 100
		}
		s.fadeLED = s.selected
		s.fade.Start(cur, target, 100, 20)
	case "+", "=":
		pct := app.GPIO.Brightness(s.selected)
		if pct <= 90 {
			app.GPIO.SetBrightness(s.selected, pct+10)
		}
	case "-":
		pct := app.GPIO.Brightness(s.selected)
		if pct >= 10 {
			app.GPIO.SetBrightness(s.selected, pct-10)
		}
	default:
		return false
	}
	return true
}

func (s *ledScreen) Tick(app *App) {
	if lvl, ok := s.fade.Tick(); ok {
		app.GPIO.SetBrightness(s.fadeLED, uint8(lvl))
	}
}

func (s *ledScreen) View(app *App) string {
	var b strings.Builder
	for led := gpio.LED(0); led < gpio.LEDCount; led++ {
		marker := "  "
		if led == s.selected {
			marker = selectedStyle.Render("> ")
		}
		dot := dimStyle.Render("○")
		if app.GPIO.LED(led) {
			dot = ledOnStyles[led.String()].Render("●")
		}
		pct := app.GPIO.Brightness(led)
		bar := strings.Repeat("█", int(pct)/10) + strings.Repeat("░", 10-int(pct)/10)
		fmt.Fprintf(&b, "%s%s %-5s  %s %3d%%\n", marker, dot, led, bar, pct)
	}
	b.WriteString("\nup/down select, space toggle, +/- brightness, f fade, r/g/b direct")
	return panelStyle.Render(b.String())
}

// ---------------------------------------------------------------------------
// gpio-dashboard
// ---------------------------------------------------------------------------

// gpioScreen shows live pin state and lets the keyboard emulate button
// pushes. A press is held for a few frames so the edge detector sees it.
type gpioScreen struct {
	holds [gpio.ButtonCount]int
}

func newGPIOScreen() *gpioScreen { return &gpioScreen{} }

func (s *gpioScreen) Name() string  { return "gpio-dashboard" }
func (s *gpioScreen) Title() string { return "GPIO Dashboard" }

func (s *gpioScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "b":
		app.GPIO.SimSetButton(gpio.ButtonUser, true)
		s.holds[gpio.ButtonUser] = 3
	case "n":
		app.GPIO.SimSetButton(gpio.ButtonUser2, true)
		s.holds[gpio.ButtonUser2] = 3
	default:
		return false
	}
	return true
}

func (s *gpioScreen) Tick(app *App) {
	for btn := gpio.Button(0); btn < gpio.ButtonCount; btn++ {
		if s.holds[btn] > 0 {
			s.holds[btn]--
			if s.holds[btn] == 0 {
				app.GPIO.SimSetButton(btn, false)
			}
		}
	}
}

func (s *gpioScreen) View(app *App) string {
	var b strings.Builder
	b.WriteString("LEDs\n")
	for led := gpio.LED(0); led < gpio.LEDCount; led++ {
		state := dimStyle.Render("off")
		if app.GPIO.LED(led) {
			state = ledOnStyles[led.String()].Render("ON")
		}
		fmt.Fprintf(&b, "  %-5s %s (%d%%)\n", led, state, app.GPIO.Brightness(led))
	}
	b.WriteString("\nButtons\n")
	for btn := gpio.Button(0); btn < gpio.ButtonCount; btn++ {
		state := "released"
		if app.GPIO.ReadButton(btn) {
			state = selectedStyle.Render("PRESSED")
		}
		fmt.Fprintf(&b, "  %-4s %s\n", btn, state)
	}
	b.WriteString("\nb press SW2, n press SW4")
	return panelStyle.Render(b.String())
}
