package esp32

// PinOutput is a push-pull digital output line. Target code wraps its
// machine pins in this interface so the driver stays testable off
// hardware.
type PinOutput interface {
	Set(high bool)
}

// PinInput is a digital input line.
type PinInput interface {
	Get() bool
}
