// Package aht20 drives an AHT20 temperature/humidity sensor over I²C with a
// two-phase API: Trigger starts a conversion, Collect fetches the result
// and returns ErrNotReady while the device is still busy. Read wraps both
// with bounded polling.
//
// I2C.Tx must perform the write followed by a repeated-start read when both
// w and r are provided, without releasing the bus. Converters are
// fixed-point (deci-°C, deci-%RH) to stay allocation- and float-free on the
// hot path.
package aht20

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Address is the sensor's fixed I²C address.
const Address = 0x38

const (
	cmdTrigger    = 0xAC
	cmdInitialize = 0xBE
	cmdSoftReset  = 0xBA
	cmdStatus     = 0x71

	statusBusy       = 0x80
	statusCalibrated = 0x08
)

var (
	ErrTimeout  = errors.New("aht20: timeout")
	ErrNotReady = errors.New("aht20: not ready")
)

// Config tunes the polling behaviour. Zero fields pick the defaults.
type Config struct {
	Address        uint16        // default 0x38
	PollInterval   time.Duration // Collect retry interval in Read (default 15ms)
	CollectTimeout time.Duration // total Read budget (default 250ms)
	TriggerHint    time.Duration // nominal conversion time (default 80ms)
}

// Device wraps one sensor on an I²C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16
	cfg  Config
	buf  [7]byte
}

// New creates the device handle without touching the hardware.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Configure applies cfg and initialises the sensor if it reports
// uncalibrated.
func (d *Device) Configure(cfg Config) {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Millisecond
	}
	if cfg.CollectTimeout <= 0 {
		cfg.CollectTimeout = 250 * time.Millisecond
	}
	if cfg.TriggerHint <= 0 {
		cfg.TriggerHint = 80 * time.Millisecond
	}
	d.cfg = cfg
	d.addr = cfg.Address

	if st, err := d.Status(); err == nil && st&statusCalibrated != 0 {
		return
	}
	_ = d.bus.Tx(d.addr, []byte{cmdInitialize, 0x08, 0x00}, nil)
}

// Reset issues a soft reset. Allow ~20ms before the next transaction.
func (d *Device) Reset() {
	_ = d.bus.Tx(d.addr, []byte{cmdSoftReset}, nil)
}

// Status reads the status byte.
func (d *Device) Status() (byte, error) {
	st := []byte{0}
	if err := d.bus.Tx(d.addr, []byte{cmdStatus}, st); err != nil {
		return 0, err
	}
	return st[0], nil
}

// Trigger starts a conversion. It does not block for the result.
func (d *Device) Trigger() error {
	return d.bus.Tx(d.addr, []byte{cmdTrigger, 0x33, 0x00}, nil)
}

// TriggerHint returns the nominal wait before Collect is worth attempting.
func (d *Device) TriggerHint() time.Duration {
	if d.cfg.TriggerHint > 0 {
		return d.cfg.TriggerHint
	}
	return 80 * time.Millisecond
}

// Collect reads one measurement frame. ErrNotReady means the conversion is
// still running; any bus error is returned as-is.
func (d *Device) Collect(out *Sample) error {
	data := d.buf[:]
	if err := d.bus.Tx(d.addr, nil, data); err != nil {
		return err
	}
	if data[0]&statusCalibrated == 0 || data[0]&statusBusy != 0 {
		return ErrNotReady
	}
	out.RawHumidity = uint32(data[1])<<12 | uint32(data[2])<<4 | uint32(data[3])>>4
	out.RawTemp = uint32(data[3]&0x0F)<<16 | uint32(data[4])<<8 | uint32(data[5])
	return nil
}

// Read performs Trigger followed by bounded polling until Collect succeeds
// or the configured timeout elapses.
func (d *Device) Read(out *Sample) error {
	if d.cfg.PollInterval == 0 {
		d.Configure(Config{})
	}
	if err := d.Trigger(); err != nil {
		return err
	}
	deadline := time.Now().Add(d.cfg.CollectTimeout)
	for {
		err := d.Collect(out)
		switch err {
		case nil:
			return nil
		case ErrNotReady:
			if time.Now().After(deadline) {
				return ErrTimeout
			}
			time.Sleep(d.cfg.PollInterval)
		default:
			return err
		}
	}
}

// Sample holds one raw measurement.
type Sample struct {
	RawHumidity uint32
	RawTemp     uint32
}

// DeciRelHumidity returns tenths of %RH.
func (s Sample) DeciRelHumidity() int32 {
	return int32(s.RawHumidity) * 1000 / 0x100000
}

// DeciCelsius returns tenths of °C.
func (s Sample) DeciCelsius() int32 {
	return int32(s.RawTemp)*2000/0x100000 - 500
}

// RelHumidity returns %RH as a float for display code.
func (s Sample) RelHumidity() float32 {
	return float32(s.RawHumidity) * 100 / 0x100000
}

// Celsius returns °C as a float for display code.
func (s Sample) Celsius() float32 {
	return float32(s.RawTemp)*200/0x100000 - 50
}
