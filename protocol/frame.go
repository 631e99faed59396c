// Package protocol implements the ESP32 co-processor wire protocol: a
// length-prefixed binary frame format exchanged over a full-duplex
// blocking byte transport.
//
// Command frame:
//
//	[START:0xE0][CMD][NPARAMS][len:1][payload]...[END:0xEE][pad]
//	- scalar params carry a 1-byte length prefix (payload < 256 bytes)
//	- bulk params carry a 2-byte length prefix (high byte, low byte)
//	- the whole transaction is padded with dummy reads to a multiple
//	  of 4 bytes; the peer's bus controller rejects anything else
//
// Response frames mirror the layout with the reply flag set on the
// command byte. Status-style responses carry a single byte where 1
// means success and anything else is an application error code.
package protocol

import (
	"errors"
	"fmt"
)

// Frame markers, bit-exact with the ESP32 peer firmware.
const (
	StartCmd  byte = 0xE0
	EndCmd    byte = 0xEE
	ErrCmd    byte = 0xEF
	ReplyFlag byte = 0x80

	// DummyData is the idle value clocked out while reading.
	DummyData byte = 0xFF
)

// byteTimeout bounds the scan for a frame start marker. It counts byte
// reads, not wall-clock time, so the real duration scales with the bus
// clock rate.
const byteTimeout = 5000

// AnyParams disables the response parameter count check in
// ReadResponse, for commands whose reply carries a variable number of
// fields.
const AnyParams = -1

// Cmd is an ESP32 command opcode. The values must match the peer
// firmware exactly.
type Cmd byte

const (
	CmdSetPassphrase  Cmd = 0x11
	CmdGetConnStatus  Cmd = 0x20
	CmdGetIPAddr      Cmd = 0x21
	CmdScanNetworks   Cmd = 0x27
	CmdStartClientTCP Cmd = 0x2D
	CmdStopClientTCP  Cmd = 0x2E
	CmdGetIdxRSSI     Cmd = 0x32
	CmdGetIdxEncType  Cmd = 0x33
	CmdSendDataUDP    Cmd = 0x39
	CmdGetIdxBSSID    Cmd = 0x3C
	CmdGetIdxChannel  Cmd = 0x3D
	CmdGetSocket      Cmd = 0x3F
	CmdInsertDataBuf  Cmd = 0x46
	CmdSetAnalogWrite Cmd = 0x52
)

var (
	// ErrUnexpectedByte means a framing byte did not match its
	// expected value. The exchange is unrecoverable mid-frame; callers
	// re-run the whole command.
	ErrUnexpectedByte = errors.New("unexpected byte in response frame")
	// ErrPeerError means the co-processor answered the frame scan with
	// its explicit error marker.
	ErrPeerError = errors.New("co-processor signalled an error")
	// ErrWaitForByteTimeout means no frame start was seen within the
	// poll budget.
	ErrWaitForByteTimeout          = errors.New("timed out waiting for frame start")
	ErrWrongNumberOfResponseParams = errors.New("wrong number of response parameters")
)

// Transport is the blocking byte contract the framer drives. The bus
// is full-duplex: every read clocks out the configured dummy byte.
// Implementations do not return errors; a corrupted exchange is caught
// by the frame validation downstream.
type Transport interface {
	WriteByte(b byte)
	Write(p []byte)
	ReadByte() byte
	ReadBytes(p []byte)
	SkipBytes(n int)
	SetDummyData(b byte)
}

// Framer builds command frames and parses response frames over a
// Transport. It tracks the byte count of the transaction in flight so
// EndCmd can pad to the 4-byte alignment the peer requires; the
// counter resets at the end of every command.
type Framer struct {
	tr     Transport
	cmdLen int
}

// NewFramer wraps a transport. The framer assumes exclusive use of the
// bus for the duration of each frame.
func NewFramer(tr Transport) *Framer {
	return &Framer{tr: tr}
}

// StartCmd writes the frame start marker, the opcode and the parameter
// count. The reply flag is always cleared on outgoing commands.
func (f *Framer) StartCmd(cmd Cmd, numParams byte) {
	f.tr.Write([]byte{StartCmd, byte(cmd) &^ ReplyFlag, numParams})
	f.cmdLen += 3
}

// SendParam writes one scalar parameter: a 1-byte length followed by
// the payload. Payloads of 256 bytes or more do not fit the scalar
// encoding and are a programming error.
func (f *Framer) SendParam(p []byte) {
	if len(p) > 255 {
		panic("protocol: scalar param longer than 255 bytes")
	}
	f.tr.WriteByte(byte(len(p)))
	f.tr.Write(p)
	f.cmdLen += len(p) + 1
}

// SendBuffer writes one bulk parameter: a 2-byte length (high byte
// first) followed by the payload. Only the buffered-send command uses
// this encoding.
func (f *Framer) SendBuffer(p []byte) {
	f.tr.WriteByte(byte(len(p) / 256))
	f.tr.WriteByte(byte(len(p) % 256))
	f.tr.Write(p)
	f.cmdLen += len(p) + 2
}

// EndCmd writes the end marker and clocks dummy reads until the
// transaction spans a multiple of 4 bytes, then resets the counter.
func (f *Framer) EndCmd() {
	f.tr.WriteByte(EndCmd)
	f.cmdLen++

	for f.cmdLen%4 != 0 {
		f.tr.ReadByte()
		f.cmdLen++
	}
	f.cmdLen = 0
}

// waitForByte polls the bus until want appears, the peer signals an
// error, or the poll budget runs out.
func (f *Framer) waitForByte(want byte) error {
	for i := 0; i < byteTimeout; i++ {
		b := f.tr.ReadByte()
		if b == want {
			return nil
		}
		if b == ErrCmd {
			return ErrPeerError
		}
	}
	return ErrWaitForByteTimeout
}

func (f *Framer) readAndCheckByte(want byte) error {
	if b := f.tr.ReadByte(); b != want {
		return fmt.Errorf("%w: got %#02x, want %#02x", ErrUnexpectedByte, b, want)
	}
	return nil
}

// ReadResponse parses one response frame for cmd into buf. Pass
// AnyParams as expectedParams for variable-count replies; any other
// value is enforced against the count byte the peer sends.
//
// In AnyParams mode a field that no longer fits the buffer is drained
// from the bus and dropped, keeping the frame aligned for the next
// exchange; the fields that did fit remain valid. With a fixed
// expectation an overflow is surfaced as an error instead.
func (f *Framer) ReadResponse(cmd Cmd, buf *FieldBuffer, expectedParams int) error {
	if err := f.waitForByte(StartCmd); err != nil {
		return err
	}
	if err := f.readAndCheckByte(byte(cmd) | ReplyFlag); err != nil {
		return err
	}

	numParams := int(f.tr.ReadByte())
	if expectedParams != AnyParams && numParams != expectedParams {
		return ErrWrongNumberOfResponseParams
	}

	for i := 0; i < numParams; i++ {
		size := int(f.tr.ReadByte())
		field, err := buf.AddField(size)
		if err != nil {
			if expectedParams == AnyParams &&
				(errors.Is(err, ErrLenOverflow) || errors.Is(err, ErrSizeOverflow)) {
				f.tr.SkipBytes(size)
				continue
			}
			return fmt.Errorf("response buffer: %w", err)
		}
		f.tr.ReadBytes(field)
	}

	return f.readAndCheckByte(EndCmd)
}
