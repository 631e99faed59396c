package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func addField(t *testing.T, b *FieldBuffer, data []byte) {
	t.Helper()
	f, err := b.AddField(len(data))
	if err != nil {
		t.Fatalf("AddField(%d) failed: %v", len(data), err)
	}
	copy(f, data)
}

func TestFieldBufferAddAndRetrieve(t *testing.T) {
	buf := NewFieldBuffer(16, 4)

	addField(t, buf, []byte("abc"))
	addField(t, buf, []byte{})
	addField(t, buf, []byte{0xDE, 0xAD})

	if buf.Len() != 3 {
		t.Errorf("Expected 3 fields, got %d", buf.Len())
	}

	s, err := buf.FieldAsString(0)
	if err != nil || s != "abc" {
		t.Errorf("Field 0: expected \"abc\", got %q (err %v)", s, err)
	}

	f, err := buf.FieldAsSliceFixed(1, 0)
	if err != nil || len(f) != 0 {
		t.Errorf("Field 1: expected empty slice, got %v (err %v)", f, err)
	}

	f, err = buf.FieldAsSliceFixed(2, 2)
	if err != nil || !bytes.Equal(f, []byte{0xDE, 0xAD}) {
		t.Errorf("Field 2: expected DE AD, got %v (err %v)", f, err)
	}
}

func TestFieldBufferLenOverflow(t *testing.T) {
	buf := NewFieldBuffer(16, 2)
	addField(t, buf, []byte{1})
	addField(t, buf, []byte{2})

	if _, err := buf.AddField(1); !errors.Is(err, ErrLenOverflow) {
		t.Errorf("Expected ErrLenOverflow, got %v", err)
	}

	// A failed add must not disturb what is already stored.
	if buf.Len() != 2 {
		t.Errorf("Len changed after failed add: %d", buf.Len())
	}
	if b, err := buf.FieldAsU8(1); err != nil || b != 2 {
		t.Errorf("Field 1 corrupted after failed add: %d (err %v)", b, err)
	}
}

func TestFieldBufferSizeOverflow(t *testing.T) {
	buf := NewFieldBuffer(4, 4)
	addField(t, buf, []byte{1, 2, 3})

	if _, err := buf.AddField(2); !errors.Is(err, ErrSizeOverflow) {
		t.Errorf("Expected ErrSizeOverflow, got %v", err)
	}
	if buf.Len() != 1 {
		t.Errorf("Len changed after failed add: %d", buf.Len())
	}

	// The remaining byte is still usable.
	addField(t, buf, []byte{4})
	if b, err := buf.FieldAsU8(1); err != nil || b != 4 {
		t.Errorf("Field 1: expected 4, got %d (err %v)", b, err)
	}
}

func TestFieldBufferFieldAsU8(t *testing.T) {
	buf := NewFieldBuffer(8, 4)
	addField(t, buf, []byte{42})
	addField(t, buf, []byte{1, 2})

	b, err := buf.FieldAsU8(0)
	if err != nil || b != 42 {
		t.Errorf("Expected 42, got %d (err %v)", b, err)
	}

	if _, err := buf.FieldAsU8(1); !errors.Is(err, ErrWrongFieldSize) {
		t.Errorf("Expected ErrWrongFieldSize for 2-byte field, got %v", err)
	}
	if _, err := buf.FieldAsU8(2); !errors.Is(err, ErrWrongFieldIndex) {
		t.Errorf("Expected ErrWrongFieldIndex, got %v", err)
	}
	if _, err := buf.FieldAsU8(-1); !errors.Is(err, ErrWrongFieldIndex) {
		t.Errorf("Expected ErrWrongFieldIndex for negative index, got %v", err)
	}
}

func TestFieldBufferFieldAsI32(t *testing.T) {
	buf := NewFieldBuffer(8, 4)

	var raw [4]byte
	rssi := int32(-55)
	binary.NativeEndian.PutUint32(raw[:], uint32(rssi))
	addField(t, buf, raw[:])
	addField(t, buf, []byte{1, 2, 3})

	v, err := buf.FieldAsI32(0)
	if err != nil || v != -55 {
		t.Errorf("Expected -55, got %d (err %v)", v, err)
	}

	if _, err := buf.FieldAsI32(1); !errors.Is(err, ErrWrongFieldSize) {
		t.Errorf("Expected ErrWrongFieldSize for 3-byte field, got %v", err)
	}
}

func TestFieldBufferFieldAsString(t *testing.T) {
	buf := NewFieldBuffer(16, 4)
	addField(t, buf, []byte("caf\xc3\xa9"))
	addField(t, buf, []byte{0xFF, 0xFE})

	s, err := buf.FieldAsString(0)
	if err != nil || s != "café" {
		t.Errorf("Expected café, got %q (err %v)", s, err)
	}

	if _, err := buf.FieldAsString(1); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
	if _, err := buf.FieldAsString(5); !errors.Is(err, ErrWrongFieldIndex) {
		t.Errorf("Expected ErrWrongFieldIndex, got %v", err)
	}
}

func TestFieldBufferSliceFixed(t *testing.T) {
	buf := NewFieldBuffer(16, 4)
	addField(t, buf, []byte{10, 20, 30, 40})

	f, err := buf.FieldAsSliceFixed(0, 4)
	if err != nil || !bytes.Equal(f, []byte{10, 20, 30, 40}) {
		t.Errorf("Expected 10 20 30 40, got %v (err %v)", f, err)
	}

	if _, err := buf.FieldAsSliceFixed(0, 3); !errors.Is(err, ErrWrongFieldSize) {
		t.Errorf("Expected ErrWrongFieldSize, got %v", err)
	}
}

func TestFieldBufferExactFill(t *testing.T) {
	buf := NewFieldBuffer(6, 3)
	addField(t, buf, []byte{1, 2})
	addField(t, buf, []byte{3, 4})
	addField(t, buf, []byte{5, 6})

	if buf.Len() != 3 {
		t.Fatalf("Expected 3 fields, got %d", buf.Len())
	}
	for i := 0; i < 3; i++ {
		f, err := buf.FieldAsSliceFixed(i, 2)
		if err != nil {
			t.Fatalf("Field %d: %v", i, err)
		}
		want := []byte{byte(2*i + 1), byte(2*i + 2)}
		if !bytes.Equal(f, want) {
			t.Errorf("Field %d: expected %v, got %v", i, want, f)
		}
	}
}
