package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eecsim-go/event"
)

const eventLines = 14

// eventScreen tails the bus: it subscribes to every kind and keeps the
// most recent lines in a small scrollback.
type eventScreen struct {
	lines  []string
	paused bool
	seen   uint64
}

func newEventScreen(app *App) *eventScreen {
	s := &eventScreen{}
	for k := event.Kind(0); k < event.KindCount; k++ {
		if err := app.Bus.Subscribe(k, "event-screen", s.onEvent, nil); err != nil {
			if app.Log != nil {
				app.Log.Warnf("event screen: subscribe %v: %v", k, err)
			}
		}
	}
	return s
}

func (s *eventScreen) onEvent(kind event.Kind, data *event.Payload, _ any) {
	s.seen++
	if s.paused {
		return
	}
	line := time.Now().Format("15:04:05.000") + "  " + kind.String()
	if data != nil {
		switch kind {
		case event.SensorUpdate:
			line += fmt.Sprintf("  ch=%d raw=%d val=%.3f", data.Channel, data.Raw, data.Value)
		case event.ButtonPress:
			line += fmt.Sprintf("  btn=%d pressed=%v", data.Button, data.Pressed)
		default:
			if data.Str != "" {
				line += "  " + data.Str
			}
		}
	}
	s.lines = append(s.lines, line)
	if len(s.lines) > eventLines {
		s.lines = s.lines[len(s.lines)-eventLines:]
	}
}

func (s *eventScreen) Name() string  { return "event-stream" }
func (s *eventScreen) Title() string { return "Event Stream" }

func (s *eventScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "p", " ":
		s.paused = !s.paused
	case "c":
		s.lines = nil
	default:
		return false
	}
	return true
}

func (s *eventScreen) Tick(*App) {}

func (s *eventScreen) View(app *App) string {
	var b strings.Builder
	st := app.Bus.Stats()
	fmt.Fprintf(&b, "seen=%d published=%d dropped=%d", s.seen, st.Published, st.Dropped)
	if s.paused {
		b.WriteString("  " + selectedStyle.Render("[paused]"))
	}
	b.WriteString("\n\n")
	if len(s.lines) == 0 {
		b.WriteString(dimStyle.Render("(waiting for events)") + "\n")
	}
	for _, l := range s.lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\np pause, c clear")
	return panelStyle.Render(b.String())
}

// ---------------------------------------------------------------------------
// wifi-manager
// ---------------------------------------------------------------------------

type wifiScreen struct {
	cursor int
}

func newWiFiScreen() *wifiScreen { return &wifiScreen{} }

func (s *wifiScreen) Name() string  { return "wifi-manager" }
func (s *wifiScreen) Title() string { return "Wi-Fi Manager" }

func (s *wifiScreen) Key(app *App, msg tea.KeyMsg) bool {
	nets := app.WiFi.Networks()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(nets)-1 {
			s.cursor++
		}
	case "s":
		app.WiFi.StartScan()
	case "enter", "c":
		if s.cursor < len(nets) {
			app.WiFi.Connect(nets[s.cursor].SSID)
		}
	case "d":
		app.WiFi.Disconnect()
	default:
		return false
	}
	return true
}

func (s *wifiScreen) Tick(*App) {}

func (s *wifiScreen) View(app *App) string {
	var b strings.Builder
	fmt.Fprintf(&b, "State: %s", app.WiFi.State())
	if ssid := app.WiFi.Connected(); ssid != "" {
		ip := app.WiFi.IPInfo()
		fmt.Fprintf(&b, "  %s  %s  %s", ssid, ip.IP, ip.MAC)
	}
	b.WriteString("\n\n")

	nets := app.WiFi.Networks()
	if len(nets) == 0 {
		b.WriteString(dimStyle.Render("(no scan results, press s)") + "\n")
	}
	for i, n := range nets {
		marker := "  "
		if i == s.cursor {
			marker = selectedStyle.Render("> ")
		}
		bars := strings.Repeat("▂", n.Bars()) + dimStyle.Render(strings.Repeat("▂", 4-n.Bars()))
		band := "2.4G"
		if n.Band5GHz {
			band = "5G"
		}
		fmt.Fprintf(&b, "%s%-20s %s %4d dBm  %-4s ch%-3d %s\n",
			marker, n.SSID, bars, n.RSSI, band, n.Channel, n.Security)
	}
	b.WriteString("\ns scan, enter connect, d disconnect")
	return panelStyle.Render(b.String())
}

// ---------------------------------------------------------------------------
// sysinfo
// ---------------------------------------------------------------------------

type sysInfoScreen struct{}

func newSysInfoScreen() *sysInfoScreen { return &sysInfoScreen{} }

func (s *sysInfoScreen) Name() string  { return "sysinfo" }
func (s *sysInfoScreen) Title() string { return "System Info" }

func (s *sysInfoScreen) Key(*App, tea.KeyMsg) bool { return false }
func (s *sysInfoScreen) Tick(*App)                 {}

func (s *sysInfoScreen) View(app *App) string {
	snap := app.SysInfo.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Run ID   %s\n", snap.RunID)
	fmt.Fprintf(&b, "Host     %s (%s)\n", snap.Hostname, snap.Platform)
	fmt.Fprintf(&b, "Uptime   %s\n", (time.Duration(snap.UptimeSec) * time.Second).String())
	fmt.Fprintf(&b, "CPU      %5.1f%%\n", snap.CPUPercent)
	fmt.Fprintf(&b, "Memory   %5.1f%%  (%d/%d MB)\n", snap.MemPercent, snap.MemUsedMB, snap.MemTotalMB)
	fmt.Fprintf(&b, "Disk     %5.1f%%\n", snap.DiskPct)

	b.WriteString("\nRecent log\n")
	for _, e := range app.Log.Recent(6) {
		fmt.Fprintf(&b, "  %s %-5s %s\n", e.At.Format("15:04:05"), e.Level, e.Msg)
	}
	return panelStyle.Render(b.String())
}
