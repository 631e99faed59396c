// Package esp32 drives the ESP32 wireless co-processor on the Pimoroni
// Pico Wireless pack: a command/response protocol over SPI, gated by a
// ready/ack handshake line. All calls block; the protocol is strictly
// synchronous and the driver has exclusive use of the bus and the
// control lines.
package esp32

import (
	"encoding/binary"
	"fmt"
	"time"

	"picowireless/protocol"
)

// Esp32 is the co-processor driver. Create one per chip with New and
// do not copy it.
type Esp32 struct {
	framer *protocol.Framer
	cs     PinOutput
	resetn PinOutput
	gpio2  PinOutput
	ack    PinInput
}

// New wires up the control lines and performs the hardware reset
// sequence. It returns once the co-processor has had time to boot,
// roughly 760 ms.
func New(tr protocol.Transport, cs, resetn, gpio2 PinOutput, ack PinInput) *Esp32 {
	tr.SetDummyData(protocol.DummyData)

	e := &Esp32{
		framer: protocol.NewFramer(tr),
		cs:     cs,
		resetn: resetn,
		gpio2:  gpio2,
		ack:    ack,
	}
	e.Reset()
	return e
}

// Reset holds the co-processor in reset for 10 ms and then waits for
// it to boot. Any error leaves the bus framing indeterminate, so an
// external watchdog policy may call this to recover a wedged peer.
func (e *Esp32) Reset() {
	debugPrintln("resetting ESP32")
	e.gpio2.Set(true)
	e.deselectChip()
	e.resetn.Set(false)
	time.Sleep(10 * time.Millisecond)
	e.resetn.Set(true)
	time.Sleep(750 * time.Millisecond)
}

// Chip select is active low on the Pico Wireless wiring. Earlier board
// revisions inverted this; it is peer-hardware-dependent.
func (e *Esp32) selectChip()   { e.cs.Set(false) }
func (e *Esp32) deselectChip() { e.cs.Set(true) }

// The ESP32 holds the handshake line high while busy and raises it
// again to acknowledge selection. Both waits are unbounded: a peer
// that never answers hangs the caller, and bounding that is left to an
// external watchdog.
func (e *Esp32) waitForReady() {
	for e.ack.Get() {
	}
}

func (e *Esp32) waitForAck() {
	for !e.ack.Get() {
	}
}

// waitForSelect runs the handshake gate that must precede every frame
// transfer, command and response alike.
func (e *Esp32) waitForSelect() {
	e.waitForReady()
	e.selectChip()
	e.waitForAck()
}

func (e *Esp32) startCmd(cmd protocol.Cmd, numParams byte) {
	e.waitForSelect()
	e.framer.StartCmd(cmd, numParams)
}

func (e *Esp32) endCmd() {
	e.framer.EndCmd()
	e.deselectChip()
}

// getResponse re-enters the handshake gate and reads one response
// frame. The chip is deselected afterwards whether or not the frame
// parsed.
func (e *Esp32) getResponse(cmd protocol.Cmd, buf *protocol.FieldBuffer, expectedParams int) error {
	e.waitForSelect()
	err := e.framer.ReadResponse(cmd, buf, expectedParams)
	e.deselectChip()
	return err
}

func (e *Esp32) getResponseU8(cmd protocol.Cmd) (byte, error) {
	buf := protocol.NewFieldBuffer(1, 1)
	if err := e.getResponse(cmd, buf, 1); err != nil {
		return 0, err
	}
	b, err := buf.FieldAsU8(0)
	if err != nil {
		return 0, fmt.Errorf("response buffer: %w", err)
	}
	return b, nil
}

func (e *Esp32) getResponseI32(cmd protocol.Cmd) (int32, error) {
	buf := protocol.NewFieldBuffer(4, 1)
	if err := e.getResponse(cmd, buf, 1); err != nil {
		return 0, err
	}
	v, err := buf.FieldAsI32(0)
	if err != nil {
		return 0, fmt.Errorf("response buffer: %w", err)
	}
	return v, nil
}

// checkResponseStatus reads a single status byte reply. 1 means
// success; anything else is surfaced as a StatusError.
func (e *Esp32) checkResponseStatus(cmd protocol.Cmd) error {
	status, err := e.getResponseU8(cmd)
	if err != nil {
		return err
	}
	if status != 1 {
		return StatusError{Code: status}
	}
	return nil
}

// SetPassphrase configures the SSID and WPA passphrase the
// co-processor should join.
func (e *Esp32) SetPassphrase(ssid, passphrase string) error {
	e.startCmd(protocol.CmdSetPassphrase, 2)
	e.framer.SendParam([]byte(ssid))
	e.framer.SendParam([]byte(passphrase))
	e.endCmd()

	return e.checkResponseStatus(protocol.CmdSetPassphrase)
}

// GetConnStatus reports the current Wi-Fi link state.
func (e *Esp32) GetConnStatus() (ConnectionStatus, error) {
	e.startCmd(protocol.CmdGetConnStatus, 0)
	e.endCmd()

	status, err := e.getResponseU8(protocol.CmdGetConnStatus)
	if err != nil {
		return 0, err
	}
	return connectionStatusFromByte(status)
}

// GetNetworkData returns the station's address, netmask and gateway.
func (e *Esp32) GetNetworkData() (ip, mask, gateway IPv4, err error) {
	e.startCmd(protocol.CmdGetIPAddr, 0)
	e.endCmd()

	buf := protocol.NewFieldBuffer(12, 3)
	if err = e.getResponse(protocol.CmdGetIPAddr, buf, 3); err != nil {
		return
	}

	for i, out := range []*IPv4{&ip, &mask, &gateway} {
		f, ferr := buf.FieldAsSliceFixed(i, 4)
		if ferr != nil {
			err = fmt.Errorf("response buffer: %w", ferr)
			return
		}
		*out = IPv4FromSlice(f)
	}
	return
}

// ScanNetworks asks the co-processor for the SSIDs it can currently
// see and decodes them into ssids, one field per network. When the
// buffer fills before the reply ends, the remaining networks are
// consumed from the bus and dropped so the frame stays aligned; the
// ones that fit remain valid.
func (e *Esp32) ScanNetworks(ssids *protocol.FieldBuffer) error {
	e.startCmd(protocol.CmdScanNetworks, 0)
	e.endCmd()

	return e.getResponse(protocol.CmdScanNetworks, ssids, protocol.AnyParams)
}

// GetChannel returns the channel of the idx-th scanned network.
func (e *Esp32) GetChannel(idx byte) (byte, error) {
	e.startCmd(protocol.CmdGetIdxChannel, 1)
	e.framer.SendParam([]byte{idx})
	e.endCmd()

	return e.getResponseU8(protocol.CmdGetIdxChannel)
}

// GetRSSI returns the signal strength of the idx-th scanned network in
// dBm.
func (e *Esp32) GetRSSI(idx byte) (int32, error) {
	e.startCmd(protocol.CmdGetIdxRSSI, 1)
	e.framer.SendParam([]byte{idx})
	e.endCmd()

	return e.getResponseI32(protocol.CmdGetIdxRSSI)
}

// GetEncryptionType returns the security mode of the idx-th scanned
// network. A byte outside the known set is an error, never a default.
func (e *Esp32) GetEncryptionType(idx byte) (EncryptionType, error) {
	e.startCmd(protocol.CmdGetIdxEncType, 1)
	e.framer.SendParam([]byte{idx})
	e.endCmd()

	b, err := e.getResponseU8(protocol.CmdGetIdxEncType)
	if err != nil {
		return 0, err
	}
	return encryptionTypeFromByte(b)
}

// GetBSSID returns the access point address of the idx-th scanned
// network.
func (e *Esp32) GetBSSID(idx byte) (MACAddress, error) {
	e.startCmd(protocol.CmdGetIdxBSSID, 1)
	e.framer.SendParam([]byte{idx})
	e.endCmd()

	buf := protocol.NewFieldBuffer(6, 1)
	if err := e.getResponse(protocol.CmdGetIdxBSSID, buf, 1); err != nil {
		return MACAddress{}, err
	}
	f, err := buf.FieldAsSliceFixed(0, 6)
	if err != nil {
		return MACAddress{}, fmt.Errorf("response buffer: %w", err)
	}

	var mac MACAddress
	copy(mac[:], f)
	return mac, nil
}

// GetSocket allocates a socket handle on the co-processor.
func (e *Esp32) GetSocket() (Socket, error) {
	e.startCmd(protocol.CmdGetSocket, 0)
	e.endCmd()

	id, err := e.getResponseU8(protocol.CmdGetSocket)
	if err != nil {
		return 0, err
	}
	return Socket(id), nil
}

// StartClient opens a client connection from sock to ip:port in the
// given mode. The port travels in the platform's byte order; both ends
// of the link share endianness.
func (e *Esp32) StartClient(ip IPv4, port uint16, sock Socket, mode ProtocolMode) error {
	var portBytes [2]byte
	binary.NativeEndian.PutUint16(portBytes[:], port)

	e.startCmd(protocol.CmdStartClientTCP, 4)
	e.framer.SendParam(ip.Bytes())
	e.framer.SendParam(portBytes[:])
	e.framer.SendParam([]byte{byte(sock)})
	e.framer.SendParam([]byte{byte(mode)})
	e.endCmd()

	return e.checkResponseStatus(protocol.CmdStartClientTCP)
}

// StopClient closes the client connection on sock.
func (e *Esp32) StopClient(sock Socket) error {
	e.startCmd(protocol.CmdStopClientTCP, 1)
	e.framer.SendParam([]byte{byte(sock)})
	e.endCmd()

	return e.checkResponseStatus(protocol.CmdStopClientTCP)
}

// InsertDataBuf appends payload to the co-processor's send buffer for
// sock. The payload travels as a bulk parameter, so it may exceed the
// 255-byte scalar limit.
func (e *Esp32) InsertDataBuf(sock Socket, payload []byte) error {
	e.startCmd(protocol.CmdInsertDataBuf, 2)
	e.framer.SendParam([]byte{byte(sock)})
	e.framer.SendBuffer(payload)
	e.endCmd()

	return e.checkResponseStatus(protocol.CmdInsertDataBuf)
}

// SendDataUDP flushes sock's send buffer as one datagram.
func (e *Esp32) SendDataUDP(sock Socket) error {
	e.startCmd(protocol.CmdSendDataUDP, 1)
	e.framer.SendParam([]byte{byte(sock)})
	e.endCmd()

	return e.checkResponseStatus(protocol.CmdSendDataUDP)
}

// AnalogWrite sets a PWM level on one of the co-processor's own pins,
// e.g. the RGB LED on the Pico Wireless pack.
func (e *Esp32) AnalogWrite(pin, value byte) error {
	e.startCmd(protocol.CmdSetAnalogWrite, 2)
	e.framer.SendParam([]byte{pin})
	e.framer.SendParam([]byte{value})
	e.endCmd()

	return e.checkResponseStatus(protocol.CmdSetAnalogWrite)
}
