package protocol

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

var (
	// ErrLenOverflow means the buffer already holds its maximum number of fields.
	ErrLenOverflow = errors.New("field count limit reached")
	// ErrSizeOverflow means the backing store cannot hold the requested bytes.
	ErrSizeOverflow    = errors.New("buffer capacity exceeded")
	ErrWrongFieldIndex = errors.New("no field at index")
	ErrWrongFieldSize  = errors.New("unexpected field size")
	ErrInvalidUTF8     = errors.New("field is not valid UTF-8")
)

// FieldBuffer stores an ordered list of variable-length byte fields in
// a single fixed backing array. Response frames are decoded into one
// buffer per exchange; it is populated once and then read any number of
// times through the typed accessors. A full buffer rejects further
// fields instead of truncating.
type FieldBuffer struct {
	data    []byte
	offsets []int
	count   int
}

// NewFieldBuffer creates a buffer holding up to capacity bytes of field
// data spread across at most maxFields fields. Both limits are fixed
// for the life of the buffer.
func NewFieldBuffer(capacity, maxFields int) *FieldBuffer {
	return &FieldBuffer{
		data:    make([]byte, capacity),
		offsets: make([]int, maxFields+1),
	}
}

// AddField reserves exactly size bytes at the end of the buffer and
// returns the writable window, typically filled by a bus read. On
// overflow it fails without mutating the buffer.
func (b *FieldBuffer) AddField(size int) ([]byte, error) {
	if b.count >= len(b.offsets)-1 {
		return nil, ErrLenOverflow
	}
	start := b.offsets[b.count]
	if start+size > len(b.data) {
		return nil, ErrSizeOverflow
	}
	b.offsets[b.count+1] = start + size
	b.count++
	return b.data[start : start+size], nil
}

func (b *FieldBuffer) field(index int) ([]byte, error) {
	if index < 0 || index >= b.count {
		return nil, ErrWrongFieldIndex
	}
	return b.data[b.offsets[index]:b.offsets[index+1]], nil
}

// FieldAsU8 returns the field at index, which must be exactly one byte.
func (b *FieldBuffer) FieldAsU8(index int) (byte, error) {
	f, err := b.field(index)
	if err != nil {
		return 0, err
	}
	if len(f) != 1 {
		return 0, ErrWrongFieldSize
	}
	return f[0], nil
}

// FieldAsI32 decodes a 4-byte field in the platform's byte order. Both
// ends of the link are assumed to share endianness.
func (b *FieldBuffer) FieldAsI32(index int) (int32, error) {
	f, err := b.field(index)
	if err != nil {
		return 0, err
	}
	if len(f) != 4 {
		return 0, ErrWrongFieldSize
	}
	return int32(binary.NativeEndian.Uint32(f)), nil
}

// FieldAsString returns the field at index as a string, rejecting
// anything that is not valid UTF-8.
func (b *FieldBuffer) FieldAsString(index int) (string, error) {
	f, err := b.field(index)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(f) {
		return "", ErrInvalidUTF8
	}
	return string(f), nil
}

// FieldAsSliceFixed returns the field at index, which must be exactly
// expectedSize bytes long. The returned slice aliases the buffer.
func (b *FieldBuffer) FieldAsSliceFixed(index, expectedSize int) ([]byte, error) {
	f, err := b.field(index)
	if err != nil {
		return nil, err
	}
	if len(f) != expectedSize {
		return nil, ErrWrongFieldSize
	}
	return f, nil
}

// Len returns the number of fields currently stored.
func (b *FieldBuffer) Len() int {
	return b.count
}
