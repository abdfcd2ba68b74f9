// Package event implements the simulator's publish-subscribe event bus:
// a fixed enumeration of event kinds, a bounded FIFO queue, and synchronous
// in-order dispatch driven by an explicit Process call from the frame loop.
//
// Delivery is best-effort: publishing onto a full queue drops the event and
// bumps a counter. Most payloads are latest-value style (sensor readings),
// so a dropped event is superseded by the next tick's publish.
package event

// Kind is the enumerated category of an event. Ordinal values index the
// subscriber registry, so the set is contiguous and bounded by KindCount.
type Kind uint8

const (
	SensorUpdate Kind = iota // ADC/IMU reading: Channel, Raw, Value
	ButtonPress              // user button edge: Button, Pressed
	SystemStatus             // host/system snapshot: Num, Str
	WiFiStatus               // simulated Wi-Fi state change: Num, Str
	LogMessage               // log line routed to UI consumers: Num (level), Str
	Custom0                  // free slot for demo-local signalling
	Custom1

	KindCount // bound, not a valid kind
)

// Valid reports whether k is inside the declared enumeration.
func (k Kind) Valid() bool { return k < KindCount }

func (k Kind) String() string {
	switch k {
	case SensorUpdate:
		return "sensor-update"
	case ButtonPress:
		return "button-press"
	case SystemStatus:
		return "system-status"
	case WiFiStatus:
		return "wifi-status"
	case LogMessage:
		return "log-message"
	case Custom0:
		return "custom-0"
	case Custom1:
		return "custom-1"
	}
	return "invalid"
}

// Payload is the fixed-shape container for all event varieties. Producers
// fill only the fields their kind defines; consumers know from the kind
// which fields are valid. Payloads are copied by value into the queue and
// never own out-of-line memory.
type Payload struct {
	// Sensor readings.
	Channel uint8   // ADC channel or IMU axis ordinal
	Raw     uint16  // raw converter counts
	Value   float32 // derived value (volts, °C, g, dps)

	// Button events.
	Button  uint8
	Pressed bool

	// Generic fields for status and custom kinds.
	Num int32
	Str string
}

// entry is one queued event. hasData distinguishes a published nil payload
// from a zero-valued one.
type entry struct {
	kind    Kind
	data    Payload
	hasData bool
}
