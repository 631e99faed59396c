//go:build rp2040

package main

import (
	"machine"

	"picowireless/protocol"
)

// Pico Wireless pack bus wiring: the ESP32 sits on SPI0 with GPIO18 as
// clock, GPIO19 out and GPIO16 in.
const (
	spiFrequency = 8_000_000

	pinSCK = machine.GPIO18
	pinSDO = machine.GPIO19
	pinSDI = machine.GPIO16
)

// initTransport configures SPI0 for the ESP32 and wraps it in the
// blocking byte transport the driver consumes.
func initTransport() (*protocol.SPITransport, error) {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: spiFrequency,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       pinSDI,
		Mode:      0,
	})
	if err != nil {
		return nil, err
	}
	return protocol.NewSPITransport(machine.SPI0), nil
}
