package format_test

import (
	"bytes"
	"testing"

	"github.com/layerkit/psd/format"
)

func TestDecodeRLE(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want []byte
	}{
		{"empty", nil, []byte{}},
		{"single literal", []byte{0, 'a'}, []byte("a")},
		{"literal run", []byte{2, 'a', 'b', 'c'}, []byte("abc")},
		{"replicate", []byte{0xFE, 'x'}, []byte("xxx")},
		{"replicate max", []byte{0x81, 'y'}, bytes.Repeat([]byte("y"), 128)},
		{"noop byte", []byte{0x80, 0, 'z'}, []byte("z")},
		{"mixed", []byte{1, 'a', 'b', 0xFD, 'c', 0, 'd'}, []byte("abccccd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := format.DecodeRLE(tt.src)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("decode %v: got %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

// A truncated stream yields the fully formed runs and silently drops the
// partial tail.
func TestDecodeRLETruncated(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want []byte
	}{
		{"missing replicate byte", []byte{1, 'a', 'b', 0xFE}, []byte("ab")},
		{"short literal", []byte{1, 'a', 'b', 3, 'c'}, []byte("ab")},
		{"lone control byte", []byte{5}, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := format.DecodeRLE(tt.src)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRLERoundTrip(t *testing.T) {
	// Every literal run length from 1 to 128 survives a round trip.
	for n := 1; n <= 128; n++ {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i * 7)
		}
		got := format.DecodeRLE(format.EncodeRLE(src))
		if !bytes.Equal(got, src) {
			t.Fatalf("length %d: round trip mismatch", n)
		}
	}

	others := [][]byte{
		bytes.Repeat([]byte{0}, 300),
		append(bytes.Repeat([]byte{7}, 130), 1, 2, 3),
		[]byte("aabbccddeeff"),
		append([]byte("literal"), bytes.Repeat([]byte{9}, 64)...),
	}
	for _, src := range others {
		got := format.DecodeRLE(format.EncodeRLE(src))
		if !bytes.Equal(got, src) {
			t.Errorf("round trip mismatch for %v", src[:min(16, len(src))])
		}
	}
}
