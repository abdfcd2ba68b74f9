// Package gpio is the PC-simulator mock of the board's LEDs, buttons and
// PWM channels. State lives in memory for the UI to display; out-of-range
// identifiers are silently ignored, matching the firmware API.
package gpio

import "sync"

type LED uint8

const (
	LEDRed LED = iota
	LEDGreen
	LEDBlue
	LEDCount
)

func (l LED) String() string {
	switch l {
	case LEDRed:
		return "RED"
	case LEDGreen:
		return "GREEN"
	case LEDBlue:
		return "BLUE"
	}
	return "?"
}

type Button uint8

const (
	ButtonUser Button = iota // SW2
	ButtonUser2              // SW4
	ButtonCount
)

func (b Button) String() string {
	switch b {
	case ButtonUser:
		return "SW2"
	case ButtonUser2:
		return "SW4"
	}
	return "?"
}

// Mock holds the simulated pin state. LED level and PWM brightness are
// coupled the way the firmware couples them: setting one updates the other.
type Mock struct {
	mu         sync.Mutex
	states     [LEDCount]bool
	brightness [LEDCount]uint8 // 0-100
	buttons    [ButtonCount]bool
}

func New() *Mock { return &Mock{} }

func (m *Mock) SetLED(led LED, on bool) {
	if led >= LEDCount {
		return
	}
	m.mu.Lock()
	m.states[led] = on
	if on {
		m.brightness[led] = 100
	} else {
		m.brightness[led] = 0
	}
	m.mu.Unlock()
}

func (m *Mock) ToggleLED(led LED) {
	if led >= LEDCount {
		return
	}
	m.mu.Lock()
	m.states[led] = !m.states[led]
	if m.states[led] {
		m.brightness[led] = 100
	} else {
		m.brightness[led] = 0
	}
	m.mu.Unlock()
}

func (m *Mock) LED(led LED) bool {
	if led >= LEDCount {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[led]
}

// SetBrightness sets PWM duty in percent, clamped to 100. Non-zero
// brightness turns the LED on.
func (m *Mock) SetBrightness(led LED, pct uint8) {
	if led >= LEDCount {
		return
	}
	if pct > 100 {
		pct = 100
	}
	m.mu.Lock()
	m.brightness[led] = pct
	m.states[led] = pct > 0
	m.mu.Unlock()
}

func (m *Mock) Brightness(led LED) uint8 {
	if led >= LEDCount {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brightness[led]
}

func (m *Mock) ReadButton(b Button) bool {
	if b >= ButtonCount {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons[b]
}

// SimSetButton drives the simulated button state from the UI.
func (m *Mock) SimSetButton(b Button, pressed bool) {
	if b >= ButtonCount {
		return
	}
	m.mu.Lock()
	m.buttons[b] = pressed
	m.mu.Unlock()
}
