package esp32

import "testing"

func TestIPv4String(t *testing.T) {
	ip := IPv4FromSlice([]byte{10, 0, 0, 254})
	if ip.String() != "10.0.0.254" {
		t.Errorf("Expected 10.0.0.254, got %s", ip)
	}
}

func TestConnectionStatusString(t *testing.T) {
	cases := map[ConnectionStatus]string{
		StatusIdle:      "idle",
		StatusConnected: "connected",
		StatusNoShield:  "no shield",
	}
	for status, want := range cases {
		if status.String() != want {
			t.Errorf("Status %d: expected %q, got %q", byte(status), want, status.String())
		}
	}
}

func TestEncryptionTypeString(t *testing.T) {
	if EncTypeNone.String() != "open" {
		t.Errorf("Expected open, got %s", EncTypeNone)
	}
	if EncryptionType(3).String() != "invalid" {
		t.Errorf("Expected invalid for out-of-set value, got %s", EncryptionType(3))
	}
}
