package esp32

import "fmt"

// StatusError is an application-level failure: the co-processor
// accepted the frame but answered with a status byte other than 1. The
// code is whatever the peer put on the wire.
type StatusError struct {
	Code byte
}

func (e StatusError) Error() string {
	return fmt.Sprintf("command failed with status code %d", e.Code)
}

// UnexpectedStatusError means the connection status byte was outside
// the known set.
type UnexpectedStatusError struct {
	Status byte
}

func (e UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unknown connection status byte %d", e.Status)
}

// UnexpectedEncryptionTypeError means the encryption type byte was
// outside the known set.
type UnexpectedEncryptionTypeError struct {
	Value byte
}

func (e UnexpectedEncryptionTypeError) Error() string {
	return fmt.Sprintf("unknown encryption type byte %d", e.Value)
}
