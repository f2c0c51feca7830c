package format

import (
	"testing"

	"github.com/layerkit/psd/format/internal/binary"
)

func TestParseColorModeDataIndexed(t *testing.T) {
	// Two palette entries stored as planar blocks: reds, greens, blues.
	data := []byte{
		0, 0, 0, 6, // section length
		10, 11, // R plane
		20, 21, // G plane
		30, 31, // B plane
	}
	palette, err := parseColorModeData(binary.NewReader(data), ColorModeIndexed)
	if err != nil {
		t.Fatal(err)
	}

	want := Palette{
		{R: 10, G: 20, B: 30},
		{R: 11, G: 21, B: 31},
	}
	if len(palette) != len(want) {
		t.Fatalf("palette size = %d, want %d", len(palette), len(want))
	}
	for i := range want {
		if palette[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, palette[i], want[i])
		}
	}
}

func TestParseColorModeDataSkipsOtherModes(t *testing.T) {
	data := []byte{
		0, 0, 0, 4,
		1, 2, 3, 4,
		0xAA, // next section byte
	}
	r := binary.NewReader(data)
	palette, err := parseColorModeData(r, ColorModeRGB)
	if err != nil {
		t.Fatal(err)
	}
	if palette != nil {
		t.Errorf("palette = %v, want nil for RGB", palette)
	}
	if r.Position() != 8 {
		t.Errorf("cursor at %d, want 8", r.Position())
	}
}

func TestParseColorModeDataRaggedPalette(t *testing.T) {
	// 7 bytes does not divide into three planes; the remainder is dropped.
	data := []byte{
		0, 0, 0, 7,
		1, 2, 3, 4, 5, 6, 7,
	}
	palette, err := parseColorModeData(binary.NewReader(data), ColorModeIndexed)
	if err != nil {
		t.Fatal(err)
	}
	if len(palette) != 2 {
		t.Fatalf("palette size = %d, want 2", len(palette))
	}
	if (palette[0] != RGB{R: 1, G: 3, B: 5}) {
		t.Errorf("entry 0 = %+v", palette[0])
	}
}

func TestParseColorModeDataTruncated(t *testing.T) {
	data := []byte{0, 0, 0, 9, 1, 2}
	if _, err := parseColorModeData(binary.NewReader(data), ColorModeIndexed); err == nil {
		t.Fatal("want truncation error")
	}
}
