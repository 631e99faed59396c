package protocol

import "tinygo.org/x/drivers"

// SPITransport adapts a full-duplex SPI bus to the Transport contract.
// Reads shift out the configured dummy byte; writes drain and discard
// whatever the peer shifts back. Bus errors cannot be acted on
// mid-frame on a blocking link, so they are dropped here and a
// corrupted exchange is caught by the frame validation instead.
type SPITransport struct {
	bus   drivers.SPI
	dummy byte
}

// NewSPITransport wraps an SPI bus, typically machine.SPI0 configured
// by the target's bring-up code.
func NewSPITransport(bus drivers.SPI) *SPITransport {
	return &SPITransport{bus: bus, dummy: DummyData}
}

// SetDummyData sets the idle value clocked out while reading.
func (t *SPITransport) SetDummyData(b byte) {
	t.dummy = b
}

func (t *SPITransport) WriteByte(b byte) {
	t.bus.Transfer(b)
}

func (t *SPITransport) Write(p []byte) {
	t.bus.Tx(p, nil)
}

func (t *SPITransport) ReadByte() byte {
	b, _ := t.bus.Transfer(t.dummy)
	return b
}

func (t *SPITransport) ReadBytes(p []byte) {
	for i := range p {
		p[i] = t.ReadByte()
	}
}

func (t *SPITransport) SkipBytes(n int) {
	for i := 0; i < n; i++ {
		t.ReadByte()
	}
}
