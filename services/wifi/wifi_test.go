package wifi

import (
	"testing"

	"eecsim-go/event"
)

func collect(t *testing.T, bus *event.Bus) *[]event.Payload {
	t.Helper()
	var got []event.Payload
	err := bus.Subscribe(event.WiFiStatus, "test", func(_ event.Kind, p *event.Payload, _ any) {
		got = append(got, *p)
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &got
}

func TestScanCompletes(t *testing.T) {
	bus := event.New(event.Config{QueueSize: 16})
	got := collect(t, bus)
	svc := New(bus, nil, 1)

	svc.StartScan()
	if svc.State() != StateScanning {
		t.Fatalf("state = %v, want Scanning", svc.State())
	}
	for i := 0; i < scanTicks; i++ {
		svc.Tick()
	}
	bus.Process()

	if svc.State() != StateIdle {
		t.Fatalf("state after scan = %v, want Idle", svc.State())
	}
	if len(*got) != 2 {
		t.Fatalf("published %d events, want start+complete", len(*got))
	}
	if (*got)[1].Str != "scan complete" {
		t.Errorf("final event = %q", (*got)[1].Str)
	}
	if n := svc.Networks(); len(n) != 8 {
		t.Errorf("scan returned %d networks, want 8", len(n))
	}
}

func TestConnectAssignsAddress(t *testing.T) {
	bus := event.New(event.Config{QueueSize: 16})
	got := collect(t, bus)
	svc := New(bus, nil, 1)

	svc.Connect("HomeNetwork")
	for i := 0; i < connectTicks; i++ {
		svc.Tick()
	}
	bus.Process()

	if svc.State() != StateConnected || svc.Connected() != "HomeNetwork" {
		t.Fatalf("state = %v, connected = %q", svc.State(), svc.Connected())
	}
	ip := svc.IPInfo()
	if ip.IP == "" || ip.Gateway == "" || ip.MAC == "" {
		t.Errorf("incomplete IP config: %+v", ip)
	}
	last := (*got)[len(*got)-1]
	if last.Num != int32(StateConnected) {
		t.Errorf("last state num = %d, want %d", last.Num, StateConnected)
	}
}

func TestConnectUnknownSSIDIgnored(t *testing.T) {
	bus := event.New(event.Config{})
	svc := New(bus, nil, 1)
	svc.Connect("NoSuchNetwork")
	if svc.State() != StateIdle {
		t.Errorf("state = %v, want Idle", svc.State())
	}
}

func TestDisconnect(t *testing.T) {
	bus := event.New(event.Config{QueueSize: 16})
	svc := New(bus, nil, 1)
	svc.Connect("Guest_Network")
	for i := 0; i < connectTicks; i++ {
		svc.Tick()
	}
	svc.Disconnect()
	if svc.State() != StateDisconnected || svc.Connected() != "" {
		t.Errorf("state = %v, connected = %q", svc.State(), svc.Connected())
	}
	if svc.IPInfo().IP != "" {
		t.Error("IP config survives disconnect")
	}
}

func TestRSSIWobbleStaysInWindow(t *testing.T) {
	bus := event.New(event.Config{})
	svc := New(bus, nil, 42)
	for i := 0; i < 500; i++ {
		svc.Tick()
	}
	for _, n := range svc.Networks() {
		if n.RSSI > -30 || n.RSSI < -90 {
			t.Fatalf("%s RSSI = %d out of [-90,-30]", n.SSID, n.RSSI)
		}
	}
}

func TestBarsMapping(t *testing.T) {
	cases := map[int8]int{-45: 4, -55: 3, -65: 2, -75: 1, -85: 0}
	for rssi, want := range cases {
		n := Network{RSSI: rssi}
		if got := n.Bars(); got != want {
			t.Errorf("rssi %d: bars = %d, want %d", rssi, got, want)
		}
	}
}
