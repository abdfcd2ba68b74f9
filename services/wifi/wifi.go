// Package wifi simulates the Wi-Fi manager behind the part-5 demos: a
// fixed set of mock networks with wobbling signal strength and a small
// scan/connect state machine publishing wifi-status events.
package wifi

import (
	"math/rand"
	"sync"

	"eecsim-go/event"
	"eecsim-go/logx"
	"eecsim-go/x/mathx"
)

type Security uint8

const (
	SecurityOpen Security = iota
	SecurityWPA2
	SecurityWPA3
)

func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "Open"
	case SecurityWPA2:
		return "WPA2"
	case SecurityWPA3:
		return "WPA3"
	}
	return "?"
}

// Network is one scan result.
type Network struct {
	SSID     string
	RSSI     int8 // dBm
	Security Security
	Channel  uint8
	Band5GHz bool
}

// Bars maps RSSI to the 0-4 signal-bars scale used by the UI.
func (n Network) Bars() int {
	switch {
	case n.RSSI >= -50:
		return 4
	case n.RSSI >= -60:
		return 3
	case n.RSSI >= -70:
		return 2
	case n.RSSI >= -80:
		return 1
	}
	return 0
}

// State of the simulated station.
type State uint8

const (
	StateIdle State = iota
	StateScanning
	StateConnecting
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScanning:
		return "Scanning"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateDisconnected:
		return "Disconnected"
	}
	return "?"
}

// IPConfig is the address set handed out on connect.
type IPConfig struct {
	IP, Subnet, Gateway, DNS string
	MAC                      string
}

const (
	scanTicks    = 20 // ~1s at the default frame rate
	connectTicks = 30
)

// Service is the simulated Wi-Fi manager. Drive it with Tick from the
// frame loop; commands come from UI handlers.
type Service struct {
	mu        sync.Mutex
	bus       *event.Bus
	log       *logx.Logger
	rng       *rand.Rand
	networks  []Network
	state     State
	countdown int
	target    string // SSID being joined
	connected string
	ipcfg     IPConfig
}

func New(b *event.Bus, log *logx.Logger, seed int64) *Service {
	return &Service{
		bus: b,
		log: log,
		rng: rand.New(rand.NewSource(seed)),
		networks: []Network{
			{"BiiL-Office-5G", -45, SecurityWPA2, 36, true},
			{"HomeNetwork", -52, SecurityWPA2, 6, false},
			{"iPhone (Somchai)", -58, SecurityWPA2, 1, false},
			{"Starbucks_WiFi", -65, SecurityOpen, 11, false},
			{"AIS_Fibre_5G", -68, SecurityWPA3, 44, true},
			{"TRUE_WIFI_FREE", -72, SecurityOpen, 6, false},
			{"Guest_Network", -75, SecurityWPA2, 1, false},
			{"Hidden_5G", -78, SecurityWPA2, 149, true},
		},
		state: StateIdle,
	}
}

// Networks returns a copy of the current scan results.
func (s *Service) Networks() []Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Network, len(s.networks))
	copy(out, s.networks)
	return out
}

// State returns the station state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Connected returns the joined SSID, or "" when not connected.
func (s *Service) Connected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// IPInfo returns the address configuration of the active connection.
func (s *Service) IPInfo() IPConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ipcfg
}

// StartScan begins a scan unless one is already running.
func (s *Service) StartScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateScanning {
		return
	}
	s.state = StateScanning
	s.countdown = scanTicks
	s.publishLocked("scan started")
}

// Connect starts joining the named network. An unknown SSID is ignored.
func (s *Service) Connect(ssid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(ssid) < 0 {
		if s.log != nil {
			s.log.Warnf("wifi: connect to unknown ssid %q", ssid)
		}
		return
	}
	s.target = ssid
	s.connected = ""
	s.ipcfg = IPConfig{}
	s.state = StateConnecting
	s.countdown = connectTicks
	s.publishLocked("joining " + ssid)
}

// Disconnect drops the active connection.
func (s *Service) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected == "" && s.state != StateConnecting {
		return
	}
	s.connected = ""
	s.target = ""
	s.ipcfg = IPConfig{}
	s.state = StateDisconnected
	s.publishLocked("disconnected")
}

// Tick advances countdowns and wobbles RSSI values, clamped to the
// plausible -90..-30 dBm window.
func (s *Service) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.networks {
		delta := int8(s.rng.Intn(11) - 5)
		s.networks[i].RSSI = mathx.Clamp(s.networks[i].RSSI+delta, -90, -30)
	}

	if s.countdown > 0 {
		s.countdown--
		if s.countdown > 0 {
			return
		}
		switch s.state {
		case StateScanning:
			s.state = StateIdle
			s.publishLocked("scan complete")
		case StateConnecting:
			s.connected = s.target
			s.target = ""
			s.state = StateConnected
			s.ipcfg = IPConfig{
				IP:      "192.168.1.105",
				Subnet:  "255.255.255.0",
				Gateway: "192.168.1.1",
				DNS:     "8.8.8.8",
				MAC:     "A4:CF:12:5A:3B:7C",
			}
			s.publishLocked("connected to " + s.connected)
		}
	}
}

func (s *Service) find(ssid string) int {
	for i, n := range s.networks {
		if n.SSID == ssid {
			return i
		}
	}
	return -1
}

// publishLocked emits a wifi-status event; callers hold s.mu.
func (s *Service) publishLocked(detail string) {
	if s.log != nil {
		s.log.Infof("wifi: %s", detail)
	}
	_ = s.bus.Publish(event.WiFiStatus, &event.Payload{
		Num: int32(s.state),
		Str: detail,
	})
}
