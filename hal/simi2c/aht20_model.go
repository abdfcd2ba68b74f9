package simi2c

import "sync"

// AHT20 command and status bytes, mirrored from the driver side.
const (
	aht20CmdTrigger = 0xAC
	aht20CmdInit    = 0xBE
	aht20CmdReset   = 0xBA
	aht20CmdStatus  = 0x71

	aht20StatusBusy       = 0x80
	aht20StatusCalibrated = 0x08
)

// AHT20Source supplies the environment the model converts into raw counts.
type AHT20Source func() (tempC, relHumidity float32)

// AHT20Model emulates the sensor's register interface: initialise, trigger,
// poll status, read a 7-byte measurement frame. A triggered conversion
// stays busy for a configurable number of reads so drivers exercise their
// not-ready retry path.
type AHT20Model struct {
	mu         sync.Mutex
	source     AHT20Source
	calibrated bool
	busyReads  int // remaining reads that still report busy
	latency    int // busy reads per conversion
	hraw, traw uint32
}

// NewAHT20Model attaches the given environment source. latency is how many
// measurement reads report busy before data is ready; 0 means immediately
// ready.
func NewAHT20Model(source AHT20Source, latency int) *AHT20Model {
	if latency < 0 {
		latency = 0
	}
	return &AHT20Model{source: source, latency: latency}
}

func (m *AHT20Model) Tx(w, r []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(w) > 0 {
		switch w[0] {
		case aht20CmdInit:
			m.calibrated = true
		case aht20CmdReset:
			m.calibrated = false
			m.busyReads = 0
		case aht20CmdTrigger:
			m.convert()
			m.busyReads = m.latency
		case aht20CmdStatus:
			if len(r) > 0 {
				r[0] = m.status()
			}
			return nil
		}
	}
	if len(w) == 0 && len(r) >= 7 {
		m.readFrame(r)
	}
	return nil
}

func (m *AHT20Model) convert() {
	t, rh := m.source()
	if rh < 0 {
		rh = 0
	}
	if rh > 100 {
		rh = 100
	}
	if t < -50 {
		t = -50
	}
	if t > 150 {
		t = 150
	}
	m.hraw = uint32(rh / 100 * 0x100000)
	m.traw = uint32((t + 50) / 200 * 0x100000)
}

func (m *AHT20Model) status() byte {
	var st byte
	if m.calibrated {
		st |= aht20StatusCalibrated
	}
	if m.busyReads > 0 {
		st |= aht20StatusBusy
	}
	return st
}

func (m *AHT20Model) readFrame(r []byte) {
	r[0] = m.status()
	if m.busyReads > 0 {
		m.busyReads--
		return
	}
	r[1] = byte(m.hraw >> 12)
	r[2] = byte(m.hraw >> 4)
	r[3] = byte(m.hraw&0x0F)<<4 | byte(m.traw>>16)&0x0F
	r[4] = byte(m.traw >> 8)
	r[5] = byte(m.traw)
	r[6] = 0 // CRC not modelled
}
