package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"eecsim-go/drivers/aht20"
	"eecsim-go/hal/sensors"
)

// sensorScreen shows the ADC channels, the IMU, and a humidity/temperature
// sample pulled through the real AHT20 driver over the simulated I2C bus.
type sensorScreen struct {
	sample    aht20.Sample
	haveAHT   bool
	inflight  bool
	nextPoll  int
	pollEvery int
	res       sensors.Resolution
}

func newSensorScreen() *sensorScreen {
	return &sensorScreen{pollEvery: 30, res: sensors.Res12Bit}
}

func (s *sensorScreen) Name() string  { return "sensor-dashboard" }
func (s *sensorScreen) Title() string { return "Sensor Dashboard" }

func (s *sensorScreen) Key(app *App, msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left", "h":
		pct := app.Sensors.ReadPercent(sensors.CH0)
		if pct >= 5 {
			app.Sensors.SimSetADCPercent(sensors.CH0, pct-5)
		} else {
			app.Sensors.SimSetADCPercent(sensors.CH0, 0)
		}
	case "right", "l":
		pct := app.Sensors.ReadPercent(sensors.CH0)
		if pct <= 95 {
			app.Sensors.SimSetADCPercent(sensors.CH0, pct+5)
		} else {
			app.Sensors.SimSetADCPercent(sensors.CH0, 100)
		}
	case "r":
		switch s.res {
		case sensors.Res12Bit:
			s.res = sensors.Res8Bit
		case sensors.Res8Bit:
			s.res = sensors.Res10Bit
		default:
			s.res = sensors.Res12Bit
		}
		app.Sensors.SetResolution(s.res)
	default:
		return false
	}
	return true
}

// Tick polls the AHT20 without blocking the frame loop: trigger one
// conversion, then try to collect on later frames until it lands.
func (s *sensorScreen) Tick(app *App) {
	if app.AHT == nil {
		return
	}
	if s.inflight {
		err := app.AHT.Collect(&s.sample)
		switch err {
		case nil:
			s.haveAHT = true
			s.inflight = false
		case aht20.ErrNotReady:
			// still converting
		default:
			s.inflight = false
		}
		return
	}
	s.nextPoll--
	if s.nextPoll <= 0 {
		s.nextPoll = s.pollEvery
		if err := app.AHT.Trigger(); err == nil {
			s.inflight = true
		}
	}
}

func (s *sensorScreen) View(app *App) string {
	var b strings.Builder
	b.WriteString("ADC\n")
	for ch := sensors.Channel(0); ch < sensors.ChannelCount; ch++ {
		raw := app.Sensors.ReadRaw(ch)
		pct := app.Sensors.ReadPercent(ch)
		bar := strings.Repeat("█", int(pct)/5)
		if ch == sensors.Temp {
			fmt.Fprintf(&b, "  %-10s raw=%4d  %5.1f °C\n", ch, raw, app.Sensors.Temperature())
			continue
		}
		fmt.Fprintf(&b, "  %-10s raw=%4d  %.3f V  %-20s %3d%%\n",
			ch, raw, app.Sensors.ReadVoltage(ch), bar, pct)
	}

	imu := app.Sensors.IMU()
	fmt.Fprintf(&b, "\nIMU  accel % .2f % .2f % .2f g   gyro % .1f % .1f % .1f dps\n",
		imu.AccelX, imu.AccelY, imu.AccelZ, imu.GyroX, imu.GyroY, imu.GyroZ)
	fmt.Fprintf(&b, "Orientation: %s\n", app.Sensors.Orientation())

	if s.haveAHT {
		fmt.Fprintf(&b, "\nAHT20  %.1f °C  %.1f %%RH\n",
			s.sample.Celsius(), s.sample.RelHumidity())
	} else {
		b.WriteString("\nAHT20  " + dimStyle.Render("waiting for first sample") + "\n")
	}

	fmt.Fprintf(&b, "\nleft/right drive the pot, r cycle resolution (%d-bit)", s.res)
	return panelStyle.Render(b.String())
}
