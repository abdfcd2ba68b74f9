package sensorfeed

import (
	"testing"

	"eecsim-go/event"
	"eecsim-go/hal/sensors"
)

func TestTickPublishesEveryChannel(t *testing.T) {
	mock := sensors.New()
	bus := event.New(event.Config{QueueSize: 16})

	var got []event.Payload
	err := bus.Subscribe(event.SensorUpdate, "test", func(_ event.Kind, p *event.Payload, _ any) {
		got = append(got, *p)
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(mock, bus)
	svc.Tick()
	bus.Process()

	if len(got) != int(sensors.ChannelCount) {
		t.Fatalf("delivered %d events, want %d", len(got), sensors.ChannelCount)
	}
	for i, p := range got {
		if p.Channel != uint8(i) {
			t.Errorf("event %d: channel = %d", i, p.Channel)
		}
	}
	// CH0 default is mid scale: ~1.65 V.
	if v := got[0].Value; v < 1.6 || v > 1.7 {
		t.Errorf("CH0 voltage = %v, want ~1.65", v)
	}
	// Temperature proxy carries °C, not volts.
	temp := got[sensors.Temp]
	if temp.Value < 24 || temp.Value > 26 {
		t.Errorf("temp value = %v, want ~25", temp.Value)
	}
}

func TestTickWithoutSubscribersIsCheap(t *testing.T) {
	mock := sensors.New()
	bus := event.New(event.Config{QueueSize: 2})
	svc := New(mock, bus)

	// Five channels into a queue of two: would drop if queued, but with no
	// subscribers publish takes the fast path.
	svc.Tick()
	if bus.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", bus.Dropped())
	}
	if bus.QueueLen() != 0 {
		t.Errorf("queue len = %d, want 0", bus.QueueLen())
	}
}
