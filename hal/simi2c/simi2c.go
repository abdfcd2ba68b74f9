// Package simi2c provides a simulated I²C bus for the PC simulator. The bus
// implements the tinygo drivers.I2C transaction shape, so real driver code
// runs unchanged against register models fed by the mock sensors.
package simi2c

import (
	"errors"
	"sync"
)

// ErrNoAck is returned for transactions addressed to an absent device.
var ErrNoAck = errors.New("simi2c: no ack from device")

// Device is a register-level model attached to the bus at one address.
type Device interface {
	// Tx handles one write-then-read transaction, as the drivers.I2C
	// contract defines: w is written first, then r is filled under a
	// repeated start, without releasing the bus.
	Tx(w, r []byte) error
}

// Bus routes transactions to attached device models by address. It
// satisfies drivers.I2C.
type Bus struct {
	mu      sync.Mutex
	devices map[uint16]Device
}

func NewBus() *Bus {
	return &Bus{devices: map[uint16]Device{}}
}

// Attach wires a device model to addr, replacing any previous occupant.
func (b *Bus) Attach(addr uint16, d Device) {
	b.mu.Lock()
	b.devices[addr] = d
	b.mu.Unlock()
}

// Tx implements drivers.I2C.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	d, ok := b.devices[addr]
	b.mu.Unlock()
	if !ok {
		return ErrNoAck
	}
	return d.Tx(w, r)
}
