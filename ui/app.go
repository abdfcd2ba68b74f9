// Package ui renders the simulator's demo screens in the terminal. The
// root model drives the cooperative frame loop: every tick it advances
// the mock hardware, runs the services, pumps the event bus, then lets
// the active screen update itself.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eecsim-go/drivers/aht20"
	"eecsim-go/event"
	"eecsim-go/hal/gpio"
	"eecsim-go/hal/sensors"
	"eecsim-go/logx"
	"eecsim-go/services/buttons"
	"eecsim-go/services/sensorfeed"
	"eecsim-go/services/sysinfo"
	"eecsim-go/services/wifi"
)

const defaultTick = 50 * time.Millisecond

type tickMsg struct{}

// App bundles the wired simulator components the screens act on.
type App struct {
	Bus     *event.Bus
	Log     *logx.Logger
	GPIO    *gpio.Mock
	Sensors *sensors.Mock
	Feed    *sensorfeed.Service
	Buttons *buttons.Service
	SysInfo *sysinfo.Service
	WiFi    *wifi.Service
	AHT     *aht20.Device
}

// Screen is one demo page. Key returns true when it consumed the event;
// unconsumed keys fall through to the global bindings.
type Screen interface {
	Name() string
	Title() string
	Key(app *App, msg tea.KeyMsg) bool
	Tick(app *App)
	View(app *App) string
}

// Model is the root bubbletea model.
type Model struct {
	app     *App
	screens []Screen
	active  int
	frame   uint64
	tick    time.Duration
	width   int
}

// demoRoster pairs every selectable demo with its constructor, in display
// order. NewModel and DemoNames both read it, so the launcher and the
// screen set cannot drift apart.
var demoRoster = []struct {
	name string
	ctor func(app *App) Screen
}{
	{"hello", func(_ *App) Screen { return newHelloScreen() }},
	{"counter", func(a *App) Screen { return newCounterScreen(a) }},
	{"led-control", func(_ *App) Screen { return newLEDScreen() }},
	{"gpio-dashboard", func(_ *App) Screen { return newGPIOScreen() }},
	{"sensor-dashboard", func(_ *App) Screen { return newSensorScreen() }},
	{"scope", func(_ *App) Screen { return newScopeScreen() }},
	{"spectrum", func(_ *App) Screen { return newSpectrumScreen() }},
	{"event-stream", func(a *App) Screen { return newEventScreen(a) }},
	{"wifi-manager", func(_ *App) Screen { return newWiFiScreen() }},
	{"sysinfo", func(_ *App) Screen { return newSysInfoScreen() }},
}

// DemoNames lists the selectable demos in display order without spinning
// up any hardware.
func DemoNames() []string {
	names := make([]string, len(demoRoster))
	for i, d := range demoRoster {
		names[i] = d.name
	}
	return names
}

// NewModel wires the standard screen set. startDemo selects the initial
// screen by name; unknown names fall back to the first screen.
func NewModel(app *App, startDemo string, tick time.Duration) *Model {
	if tick <= 0 {
		tick = defaultTick
	}
	m := &Model{
		app:     app,
		tick:    tick,
		screens: make([]Screen, len(demoRoster)),
	}
	for i, d := range demoRoster {
		m.screens[i] = d.ctor(app)
		if d.name == startDemo {
			m.active = i
		}
	}
	return m
}

// ScreenNames lists the selectable demos in display order.
func (m *Model) ScreenNames() []string {
	names := make([]string, len(m.screens))
	for i, s := range m.screens {
		names[i] = s.Name()
	}
	return names
}

// Active returns the current screen.
func (m *Model) Active() Screen { return m.screens[m.active] }

func (m *Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.screens[m.active].Key(m.app, msg) {
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.app.Bus.Close()
			return m, tea.Quit
		case "tab", "]":
			m.active = (m.active + 1) % len(m.screens)
		case "shift+tab", "[":
			m.active = (m.active - 1 + len(m.screens)) % len(m.screens)
		default:
			if n := digitKey(msg.String()); n >= 0 && n < len(m.screens) {
				m.active = n
			}
		}
		return m, nil

	case tickMsg:
		m.step()
		return m, tickCmd(m.tick)
	}
	return m, nil
}

// step is one frame of the cooperative loop.
func (m *Model) step() {
	m.frame++
	m.app.Sensors.Tick()
	m.app.Feed.Tick()
	m.app.Buttons.Tick()
	m.app.SysInfo.Tick()
	m.app.WiFi.Tick()
	m.app.Bus.Process()
	m.screens[m.active].Tick(m.app)
}

func (m *Model) View() string {
	s := m.screens[m.active]
	head := titleStyle.Render(fmt.Sprintf(" %d/%d  %s ", m.active+1, len(m.screens), s.Title()))
	st := m.app.Bus.Stats()
	foot := statusStyle.Render(fmt.Sprintf(
		" tab/[1-9,0] switch  q quit | evt pub=%d drop=%d q=%d ",
		st.Published, st.Dropped, st.QueueLen,
	))
	return head + "\n\n" + s.View(m.app) + "\n" + foot + "\n"
}

// digitKey maps "1".."9" to screens 0..8 and "0" to screen 9.
func digitKey(s string) int {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return -1
	}
	if s[0] == '0' {
		return 9
	}
	return int(s[0] - '1')
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{} })
}

// Run wires the model into a bubbletea program and blocks until quit.
func Run(app *App, startDemo string, tick time.Duration) error {
	p := tea.NewProgram(NewModel(app, startDemo, tick), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
