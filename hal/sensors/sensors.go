// Package sensors is the PC-simulator mock of the board's analog inputs and
// IMU. ADC channels hold externally settable 12-bit values; the IMU
// generates gentle sine waves on Tick so dashboards have something to show.
package sensors

import (
	"math"
	"sync"

	"eecsim-go/x/mathx"
)

type Channel uint8

const (
	CH0 Channel = iota // potentiometer
	CH1
	CH2
	CH3
	Temp // on-die temperature proxy
	ChannelCount
)

func (c Channel) String() string {
	switch c {
	case CH0:
		return "CH0 (Pot)"
	case CH1:
		return "CH1"
	case CH2:
		return "CH2"
	case CH3:
		return "CH3"
	case Temp:
		return "Temp"
	}
	return "Unknown"
}

// Resolution is the ADC width in bits.
type Resolution uint8

const (
	Res8Bit  Resolution = 8
	Res10Bit Resolution = 10
	Res12Bit Resolution = 12
)

func (r Resolution) maxVal() uint16 { return uint16((1 << r) - 1) }

// IMUData is one inertial snapshot. Raw fields are milli-units.
type IMUData struct {
	AccelX, AccelY, AccelZ float32 // g
	GyroX, GyroY, GyroZ    float32 // dps
	RawAccelX, RawAccelY, RawAccelZ int32
	RawGyroX, RawGyroY, RawGyroZ    int32
}

type Orientation uint8

const (
	OrientUnknown Orientation = iota
	OrientFlatUp
	OrientFlatDown
	OrientPortrait
	OrientPortraitInv
	OrientLandscape
	OrientLandscapeInv
)

func (o Orientation) String() string {
	switch o {
	case OrientFlatUp:
		return "Flat Up"
	case OrientFlatDown:
		return "Flat Down"
	case OrientPortrait:
		return "Portrait"
	case OrientPortraitInv:
		return "Portrait Inv"
	case OrientLandscape:
		return "Landscape"
	case OrientLandscapeInv:
		return "Landscape Inv"
	}
	return "Unknown"
}

// Mock holds all simulated sensor state. ADC values are stored on the
// 12-bit scale regardless of the configured read resolution.
type Mock struct {
	mu    sync.Mutex
	adc   [ChannelCount]uint16
	vref  uint16 // millivolts
	res   Resolution
	accel [3]float32
	gyro  [3]float32
	tick  uint32
}

// New returns a mock with the firmware's power-on defaults: pot at mid
// scale, temperature proxy at the 25 °C baseline, device flat on the table.
func New() *Mock {
	m := &Mock{vref: 3300, res: Res12Bit}
	m.adc = [ChannelCount]uint16{2048, 1024, 3072, 512, 1500}
	m.accel = [3]float32{0, 0, 1}
	return m
}

// ReadRaw returns the channel value scaled to the configured resolution.
func (m *Mock) ReadRaw(ch Channel) uint16 {
	if ch >= ChannelCount {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	raw12 := m.adc[ch]
	if m.res == Res12Bit {
		return raw12
	}
	return mathx.MapU16(raw12, 0, 4095, 0, m.res.maxVal())
}

// ReadPercent returns the channel value as 0-100.
func (m *Mock) ReadPercent(ch Channel) uint8 {
	raw := m.ReadRaw(ch)
	m.mu.Lock()
	maxV := m.res.maxVal()
	m.mu.Unlock()
	if maxV == 0 {
		return 0
	}
	return uint8(uint32(raw) * 100 / uint32(maxV))
}

// ReadMillivolts converts the channel value against vref.
func (m *Mock) ReadMillivolts(ch Channel) uint16 {
	raw := m.ReadRaw(ch)
	m.mu.Lock()
	maxV := m.res.maxVal()
	vref := m.vref
	m.mu.Unlock()
	if maxV == 0 {
		return 0
	}
	return uint16(mathx.RoundDiv(uint32(raw)*uint32(vref), uint32(maxV)))
}

// ReadVoltage converts the channel value to volts.
func (m *Mock) ReadVoltage(ch Channel) float32 {
	return float32(m.ReadMillivolts(ch)) / 1000
}

// Temperature derives °C from the temperature proxy channel:
// 25 °C baseline at raw 1500, 0.01 °C per count.
func (m *Mock) Temperature() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return 25.0 + float32(int(m.adc[Temp])-1500)*0.01
}

// Humidity derives a %RH figure from CH1 so humidity widgets have a
// plausible source; the board has no real hygrometer.
func (m *Mock) Humidity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float32(m.adc[CH1]) * 100 / 4095
}

// IMU returns the current inertial snapshot.
func (m *Mock) IMU() IMUData {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := IMUData{
		AccelX: m.accel[0], AccelY: m.accel[1], AccelZ: m.accel[2],
		GyroX: m.gyro[0], GyroY: m.gyro[1], GyroZ: m.gyro[2],
	}
	d.RawAccelX = int32(m.accel[0] * 1000)
	d.RawAccelY = int32(m.accel[1] * 1000)
	d.RawAccelZ = int32(m.accel[2] * 1000)
	d.RawGyroX = int32(m.gyro[0] * 1000)
	d.RawGyroY = int32(m.gyro[1] * 1000)
	d.RawGyroZ = int32(m.gyro[2] * 1000)
	return d
}

// Orientation picks the dominant gravity axis.
func (m *Mock) Orientation() Orientation {
	m.mu.Lock()
	ax, ay, az := m.accel[0], m.accel[1], m.accel[2]
	m.mu.Unlock()
	abs := func(v float32) float32 {
		if v < 0 {
			return -v
		}
		return v
	}
	switch {
	case abs(az) > 0.7:
		if az > 0 {
			return OrientFlatUp
		}
		return OrientFlatDown
	case abs(ax) > 0.7:
		if ax > 0 {
			return OrientLandscape
		}
		return OrientLandscapeInv
	case abs(ay) > 0.7:
		if ay > 0 {
			return OrientPortrait
		}
		return OrientPortraitInv
	}
	return OrientUnknown
}

// Tick advances the simulation one step: the IMU sways on slow sine waves
// and the temperature proxy wanders a little.
func (m *Mock) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tick++
	t := float64(m.tick) * 0.05
	m.accel[0] = float32(0.3 * math.Sin(t))
	m.accel[1] = float32(0.3 * math.Cos(t*0.7))
	m.accel[2] = float32(1.0 - 0.05*math.Sin(t*0.3))
	m.gyro[0] = float32(15 * math.Cos(t))
	m.gyro[1] = float32(10 * math.Sin(t*1.3))
	m.gyro[2] = float32(5 * math.Sin(t*0.4))

	drift := int(3 * math.Sin(t*0.11))
	m.adc[Temp] = uint16(mathx.Clamp(int(m.adc[Temp])+drift, 0, 4095))
}

// SimSetADC stores a raw 12-bit value for a channel.
func (m *Mock) SimSetADC(ch Channel, raw12 uint16) {
	if ch >= ChannelCount {
		return
	}
	m.mu.Lock()
	m.adc[ch] = mathx.Clamp(raw12, 0, 4095)
	m.mu.Unlock()
}

// SimSetADCPercent maps 0-100 onto the 12-bit scale.
func (m *Mock) SimSetADCPercent(ch Channel, pct uint8) {
	if pct > 100 {
		pct = 100
	}
	m.SimSetADC(ch, uint16(uint32(pct)*4095/100))
}

// SimSetAccel overrides the animated accelerometer until the next Tick.
func (m *Mock) SimSetAccel(ax, ay, az float32) {
	m.mu.Lock()
	m.accel = [3]float32{ax, ay, az}
	m.mu.Unlock()
}

// SimSetGyro overrides the animated gyroscope until the next Tick.
func (m *Mock) SimSetGyro(gx, gy, gz float32) {
	m.mu.Lock()
	m.gyro = [3]float32{gx, gy, gz}
	m.mu.Unlock()
}

// SetResolution switches the ADC read width.
func (m *Mock) SetResolution(r Resolution) {
	m.mu.Lock()
	m.res = r
	m.mu.Unlock()
}

// SetVref adjusts the reference voltage in millivolts.
func (m *Mock) SetVref(mv uint16) {
	m.mu.Lock()
	m.vref = mv
	m.mu.Unlock()
}

// Vref returns the reference voltage in millivolts.
func (m *Mock) Vref() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vref
}
