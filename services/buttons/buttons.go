// Package buttons edge-detects the simulated user buttons and publishes
// press/release events.
package buttons

import (
	"eecsim-go/event"
	"eecsim-go/hal/gpio"
)

// Service samples both buttons each Tick and publishes a button-press
// event on every edge. Press events use PublishImmediate so a demo
// reacting to its own injected press sees the effect within the same
// frame, matching the firmware's ISR-like delivery.
type Service struct {
	gpio *gpio.Mock
	bus  *event.Bus
	last [gpio.ButtonCount]bool
}

func New(g *gpio.Mock, b *event.Bus) *Service {
	return &Service{gpio: g, bus: b}
}

func (s *Service) Tick() {
	for btn := gpio.ButtonUser; btn < gpio.ButtonCount; btn++ {
		cur := s.gpio.ReadButton(btn)
		if cur == s.last[btn] {
			continue
		}
		s.last[btn] = cur
		p := event.Payload{Button: uint8(btn), Pressed: cur}
		if cur {
			s.bus.PublishImmediate(event.ButtonPress, &p)
		} else {
			_ = s.bus.Publish(event.ButtonPress, &p)
		}
	}
}
