package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eecsim-go/drivers/aht20"
	"eecsim-go/event"
	"eecsim-go/hal/gpio"
	"eecsim-go/hal/sensors"
	"eecsim-go/hal/simi2c"
	"eecsim-go/logx"
	"eecsim-go/services/buttons"
	"eecsim-go/services/sensorfeed"
	"eecsim-go/services/sysinfo"
	"eecsim-go/services/wifi"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	bus := event.New(event.Config{})
	log := logx.New(logx.Config{RingSize: 16, Writer: io.Discard})
	g := gpio.New()
	sn := sensors.New()

	i2c := simi2c.NewBus()
	i2c.Attach(0x38, simi2c.NewAHT20Model(func() (float32, float32) {
		return sn.Temperature(), sn.Humidity()
	}, 0))
	aht := aht20.New(i2c)
	aht.Configure(aht20.Config{})

	return &App{
		Bus:     bus,
		Log:     log,
		GPIO:    g,
		Sensors: sn,
		Feed:    sensorfeed.New(sn, bus),
		Buttons: buttons.New(g, bus),
		SysInfo: sysinfo.New(bus, log, 1000),
		WiFi:    wifi.New(bus, log, 1),
		AHT:     aht,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(m *Model, n int) {
	for i := 0; i < n; i++ {
		m.Update(tickMsg{})
	}
}

func TestScreenRoster(t *testing.T) {
	m := NewModel(newTestApp(t), "hello", 0)
	want := []string{
		"hello", "counter", "led-control", "gpio-dashboard", "sensor-dashboard",
		"scope", "spectrum", "event-stream", "wifi-manager", "sysinfo",
	}
	got := m.ScreenNames()
	if len(got) != len(want) {
		t.Fatalf("got %d screens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("screen %d = %q, want %q", i, got[i], want[i])
		}
	}
	// The launcher's roster must agree with what each screen reports.
	names := DemoNames()
	for i := range got {
		if names[i] != got[i] {
			t.Errorf("DemoNames[%d] = %q, screen reports %q", i, names[i], got[i])
		}
	}
}

func TestStartDemoSelection(t *testing.T) {
	m := NewModel(newTestApp(t), "scope", 0)
	if m.Active().Name() != "scope" {
		t.Errorf("active = %q, want scope", m.Active().Name())
	}
	m = NewModel(newTestApp(t), "no-such-demo", 0)
	if m.Active().Name() != "hello" {
		t.Errorf("active = %q, want hello fallback", m.Active().Name())
	}
}

func TestDigitAndTabSwitching(t *testing.T) {
	m := NewModel(newTestApp(t), "hello", 0)
	m.Update(key("5"))
	if m.Active().Name() != "sensor-dashboard" {
		t.Errorf("after '5' active = %q", m.Active().Name())
	}
	m.Update(key("0"))
	if m.Active().Name() != "sysinfo" {
		t.Errorf("after '0' active = %q", m.Active().Name())
	}
	m.Update(key("tab"))
	if m.Active().Name() != "hello" {
		t.Errorf("tab should wrap to first screen, got %q", m.Active().Name())
	}
}

func TestAllScreensRender(t *testing.T) {
	m := NewModel(newTestApp(t), "hello", 0)
	for i := range m.screens {
		m.active = i
		tick(m, 3)
		out := m.View()
		if !strings.Contains(out, m.screens[i].Title()) {
			t.Errorf("screen %s view missing its title", m.screens[i].Name())
		}
	}
}

func TestLEDScreenToggles(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "led-control", 0)
	m.Update(key("r"))
	if !app.GPIO.LED(gpio.LEDRed) {
		t.Error("'r' should toggle the red LED on")
	}
	m.Update(key("down")) // select green
	m.Update(key(" "))
	if !app.GPIO.LED(gpio.LEDGreen) {
		t.Error("space should toggle the selected LED")
	}
	m.Update(key("-"))
	if got := app.GPIO.Brightness(gpio.LEDGreen); got != 90 {
		t.Errorf("brightness = %d, want 90", got)
	}
}

func TestLEDFadeRampsBrightness(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "led-control", 0)
	m.Update(key("f")) // red is selected, off, so fade up
	tick(m, 10)
	mid := app.GPIO.Brightness(gpio.LEDRed)
	if mid == 0 || mid == 100 {
		t.Errorf("mid-fade brightness = %d, want between extremes", mid)
	}
	tick(m, 15)
	if got := app.GPIO.Brightness(gpio.LEDRed); got != 100 {
		t.Errorf("post-fade brightness = %d, want 100", got)
	}
}

func TestButtonPressReachesCounter(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "gpio-dashboard", 0)
	m.Update(key("b"))
	tick(m, 5) // edge detect, dispatch, release
	if app.GPIO.ReadButton(gpio.ButtonUser) {
		t.Error("button should auto-release after the hold frames")
	}

	// the counter screen subscribed to button-press at construction
	m.Update(key("2"))
	out := m.View()
	if !strings.Contains(out, "button presses seen: 1") {
		t.Errorf("counter should have seen the press:\n%s", out)
	}
}

func TestPotKeysDriveADC(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "sensor-dashboard", 0)
	start := app.Sensors.ReadPercent(sensors.CH0)
	m.Update(key("right"))
	if got := app.Sensors.ReadPercent(sensors.CH0); got <= start {
		t.Errorf("right should raise the pot: %d -> %d", start, got)
	}
}

func TestSensorScreenGetsAHT20Sample(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "sensor-dashboard", 0)
	tick(m, 40) // past the poll interval plus conversion
	out := m.View()
	if !strings.Contains(out, "AHT20") || strings.Contains(out, "waiting for first sample") {
		t.Errorf("expected a real AHT20 sample:\n%s", out)
	}
}

func TestWiFiScreenScanAndConnect(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "wifi-manager", 0)
	m.Update(key("s"))
	tick(m, 25) // scan completes
	if len(app.WiFi.Networks()) == 0 {
		t.Fatal("scan produced no networks")
	}
	m.Update(key("enter"))
	tick(m, 35)
	if app.WiFi.State() != wifi.StateConnected {
		t.Errorf("state = %v, want connected", app.WiFi.State())
	}
	out := m.View()
	if !strings.Contains(out, "Connected") {
		t.Errorf("view should show the connected state:\n%s", out)
	}
}

func TestEventStreamTailsBus(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "event-stream", 0)
	tick(m, 2) // sensor feed publishes every tick
	out := m.View()
	if !strings.Contains(out, "sensor-update") {
		t.Errorf("event stream should show sensor updates:\n%s", out)
	}
}

func TestQuitClosesBus(t *testing.T) {
	app := newTestApp(t)
	m := NewModel(app, "hello", 0)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should produce the quit command")
	}
	if err := app.Bus.Publish(event.Custom0, nil); err == nil {
		t.Log("publish after close falls back to immediate dispatch")
	}
}

func TestScreensLogSubscribeFailures(t *testing.T) {
	bus := event.New(event.Config{MaxSubscribers: 1})
	for k := event.Kind(0); k < event.KindCount; k++ {
		err := bus.Subscribe(k, "holder", func(event.Kind, *event.Payload, any) {}, nil)
		if err != nil {
			t.Fatal(err)
		}
	}
	log := logx.New(logx.Config{RingSize: 32, Writer: io.Discard})
	app := &App{Bus: bus, Log: log}

	c := newCounterScreen(app)
	e := newEventScreen(app)
	if c == nil || e == nil {
		t.Fatal("constructors returned nil")
	}

	warned := 0
	for _, ent := range log.Recent(32) {
		if ent.Level == logx.LevelWarn && strings.Contains(ent.Msg, "subscribe") {
			warned++
		}
	}
	if warned == 0 {
		t.Error("failed subscriptions left no trace in the log")
	}
}
