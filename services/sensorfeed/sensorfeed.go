// Package sensorfeed publishes the mock ADC channels onto the event bus
// once per frame tick, the way the firmware's sensor task feeds the UI.
package sensorfeed

import (
	"eecsim-go/event"
	"eecsim-go/hal/sensors"
)

// Service reads every ADC channel each Tick and publishes one
// sensor-update event per channel: raw counts plus the derived value
// (volts, or °C for the temperature proxy).
type Service struct {
	sensors *sensors.Mock
	bus     *event.Bus
}

func New(s *sensors.Mock, b *event.Bus) *Service {
	return &Service{sensors: s, bus: b}
}

// Tick publishes the current readings. Drops under queue pressure are the
// bus's business; the next tick supersedes them.
func (s *Service) Tick() {
	for ch := sensors.CH0; ch < sensors.ChannelCount; ch++ {
		p := event.Payload{
			Channel: uint8(ch),
			Raw:     s.sensors.ReadRaw(ch),
		}
		if ch == sensors.Temp {
			p.Value = s.sensors.Temperature()
		} else {
			p.Value = s.sensors.ReadVoltage(ch)
		}
		_ = s.bus.Publish(event.SensorUpdate, &p)
	}
}
