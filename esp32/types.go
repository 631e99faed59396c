package esp32

import "fmt"

// IPv4 is an IPv4 address as carried on the wire: four bytes, network
// order.
type IPv4 [4]byte

// IPv4FromSlice copies the first four bytes of p into an address.
func IPv4FromSlice(p []byte) IPv4 {
	var ip IPv4
	copy(ip[:], p)
	return ip
}

// Bytes returns the wire form of the address.
func (ip IPv4) Bytes() []byte {
	return ip[:]
}

func (ip IPv4) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
}

// MACAddress is a BSSID as reported by a network scan.
type MACAddress [6]byte

func (m MACAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Socket is an opaque connection handle allocated by the co-processor.
type Socket byte

// ConnectionStatus reports the Wi-Fi link state. The values are fixed
// by the peer firmware, including the NoShield sentinel.
type ConnectionStatus byte

const (
	StatusIdle           ConnectionStatus = 0
	StatusNoSSIDAvail    ConnectionStatus = 1
	StatusScanCompleted  ConnectionStatus = 2
	StatusConnected      ConnectionStatus = 3
	StatusConnectFailed  ConnectionStatus = 4
	StatusConnectionLost ConnectionStatus = 5
	StatusDisconnected   ConnectionStatus = 6
	StatusAPListening    ConnectionStatus = 7
	StatusAPConnected    ConnectionStatus = 8
	StatusAPFailed       ConnectionStatus = 9
	StatusNoShield       ConnectionStatus = 255
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusNoSSIDAvail:
		return "no SSID available"
	case StatusScanCompleted:
		return "scan completed"
	case StatusConnected:
		return "connected"
	case StatusConnectFailed:
		return "connect failed"
	case StatusConnectionLost:
		return "connection lost"
	case StatusDisconnected:
		return "disconnected"
	case StatusAPListening:
		return "AP listening"
	case StatusAPConnected:
		return "AP connected"
	case StatusAPFailed:
		return "AP failed"
	case StatusNoShield:
		return "no shield"
	}
	return "unknown"
}

// connectionStatusFromByte decodes a status byte, rejecting anything
// outside the closed set rather than defaulting.
func connectionStatusFromByte(b byte) (ConnectionStatus, error) {
	switch b {
	case 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 255:
		return ConnectionStatus(b), nil
	}
	return 0, UnexpectedStatusError{Status: b}
}

// EncryptionType identifies a scanned network's security mode. The
// values are fixed by the peer firmware, including the Unknown
// sentinel.
type EncryptionType byte

const (
	EncTypeTKIP    EncryptionType = 2
	EncTypeCCMP    EncryptionType = 4
	EncTypeWEP     EncryptionType = 5
	EncTypeNone    EncryptionType = 7
	EncTypeAuto    EncryptionType = 8
	EncTypeUnknown EncryptionType = 255
)

func (e EncryptionType) String() string {
	switch e {
	case EncTypeTKIP:
		return "TKIP"
	case EncTypeCCMP:
		return "CCMP"
	case EncTypeWEP:
		return "WEP"
	case EncTypeNone:
		return "open"
	case EncTypeAuto:
		return "auto"
	case EncTypeUnknown:
		return "unknown"
	}
	return "invalid"
}

func encryptionTypeFromByte(b byte) (EncryptionType, error) {
	switch b {
	case 2, 4, 5, 7, 8, 255:
		return EncryptionType(b), nil
	}
	return 0, UnexpectedEncryptionTypeError{Value: b}
}

// ProtocolMode selects the transport for a client connection.
type ProtocolMode byte

const (
	ProtoTCP          ProtocolMode = 0
	ProtoUDP          ProtocolMode = 1
	ProtoTLS          ProtocolMode = 2
	ProtoUDPMulticast ProtocolMode = 3
	ProtoTLSBearSSL   ProtocolMode = 4
)
