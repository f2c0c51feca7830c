package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestReads(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34, 0x56, 0x78, 0xFF, 0xFF, 0x80})

	if v, err := r.ReadU16(); err != nil || v != 0x1234 {
		t.Fatalf("ReadU16 = %#x, %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 0x5678 {
		t.Fatalf("ReadU16 = %#x, %v", v, err)
	}
	if v, err := r.ReadS16(); err != nil || v != -1 {
		t.Fatalf("ReadS16 = %d, %v", v, err)
	}
	if v, err := r.ReadS8(); err != nil || v != -128 {
		t.Fatalf("ReadS8 = %d, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReadU32(t *testing.T) {
	tests := []struct {
		encoded []byte
		value   uint32
	}{
		{[]byte{0x00, 0x00, 0x00, 0x00}, 0},
		{[]byte{0x00, 0x00, 0x00, 0x01}, 1},
		{[]byte{0x38, 0x42, 0x50, 0x53}, 0x38425053},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		r := NewReader(tt.encoded)
		got, err := r.ReadU32()
		if err != nil {
			t.Fatalf("decode %v: %v", tt.encoded, err)
		}
		if got != tt.value {
			t.Errorf("decode %v: got %#x, want %#x", tt.encoded, got, tt.value)
		}
	}
}

func TestShortRead(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.ReadU32(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("ReadU32 on 2 bytes: got %v, want ErrUnexpectedEOF", err)
	}
	// A failed read does not advance the cursor.
	if r.Position() != 0 {
		t.Errorf("position after failed read = %d, want 0", r.Position())
	}
}

func TestSeek(t *testing.T) {
	r := NewReader(make([]byte, 16))
	if err := r.Reset(12); err != nil {
		t.Fatal(err)
	}
	if err := r.Skip(-8); err != nil {
		t.Fatal(err)
	}
	if r.Position() != 4 {
		t.Fatalf("position = %d, want 4", r.Position())
	}
	if err := r.Reset(17); err == nil {
		t.Error("Reset past end should fail")
	}
	if err := r.Skip(-5); err == nil {
		t.Error("Skip before start should fail")
	}
}

func TestReadPascalString(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		want     string
		consumed int
	}{
		// 1 length byte + 3 content bytes is already a multiple of 4.
		{"no padding", []byte{3, 'a', 'b', 'c'}, "abc", 4},
		// 1 + 1 bytes padded up to 4.
		{"padded", []byte{1, 'x', 0, 0}, "x", 4},
		// empty string occupies 4 bytes total
		{"empty", []byte{0, 0, 0, 0}, "", 4},
		{"longer", []byte{5, 'h', 'e', 'l', 'l', 'o', 0, 0}, "hello", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.input)
			got, err := r.ReadPascalString()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, []byte(tt.want)) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if r.Position() != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", r.Position(), tt.consumed)
			}
		})
	}
}

func TestReadPascalStringTruncated(t *testing.T) {
	r := NewReader([]byte{5, 'h', 'i'})
	if _, err := r.ReadPascalString(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("got %v, want ErrUnexpectedEOF", err)
	}
}
