//go:build rp2040

package main

import (
	"machine"

	"picowireless/esp32"
)

// outputPin adapts a machine.Pin to the driver's output contract.
type outputPin struct {
	pin machine.Pin
}

func newOutputPin(p machine.Pin) outputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return outputPin{pin: p}
}

func (o outputPin) Set(high bool) {
	o.pin.Set(high)
}

// inputPin adapts a machine.Pin to the driver's input contract. The
// handshake line is pulled down; the ESP32 drives it high while busy.
type inputPin struct {
	pin machine.Pin
}

func newInputPin(p machine.Pin) inputPin {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return inputPin{pin: p}
}

func (i inputPin) Get() bool {
	return i.pin.Get()
}

var (
	_ esp32.PinOutput = outputPin{}
	_ esp32.PinInput  = inputPin{}
)
