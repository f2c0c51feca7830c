package document_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/layerkit/psd/document"
	psderr "github.com/layerkit/psd/errors"
)

// buildDocument assembles a synthetic 2x2 RGBA document with one raster
// layer covering the canvas and raw channel data.
func buildDocument(planes [4][]byte) []byte {
	var w bytes.Buffer
	be := func(v any) { binary.Write(&w, binary.BigEndian, v) }

	w.WriteString("8BPS")
	be(uint16(1))           // version
	w.Write(make([]byte, 6)) // reserved
	be(uint16(4))           // channels
	be(uint32(2))           // height
	be(uint32(2))           // width
	be(uint16(8))           // depth
	be(uint16(3))           // RGB
	be(uint32(0))           // color mode data
	be(uint32(0))           // image resources

	var rec bytes.Buffer
	rbe := func(v any) { binary.Write(&rec, binary.BigEndian, v) }
	rbe(int16(1)) // layer count
	rbe(int32(0)) // top
	rbe(int32(0)) // left
	rbe(int32(2)) // bottom
	rbe(int32(2)) // right
	rbe(uint16(4))
	for _, id := range []int16{0, 1, 2, -1} {
		rbe(id)
		rbe(uint32(2 + 4)) // compression tag + 4 pixels
	}
	rec.WriteString("8BIM")
	rec.WriteString("norm")
	rec.WriteByte(255) // opacity
	rec.WriteByte(0)   // clipping
	rec.WriteByte(0)   // flags: visible
	rec.WriteByte(0)   // filler
	rbe(uint32(16))    // extra data length
	rbe(uint32(0))     // mask data
	rbe(uint32(0))     // blending ranges
	rec.Write([]byte{4, 'b', 'a', 's', 'e', 0, 0, 0}) // Pascal "base" padded

	for _, plane := range planes {
		rbe(uint16(0)) // raw
		rec.Write(plane)
	}

	be(uint32(rec.Len()))
	w.Write(rec.Bytes())
	return w.Bytes()
}

func TestDecodeEndToEnd(t *testing.T) {
	planes := [4][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{255, 255, 255, 255},
	}
	doc, err := document.Decode(buildDocument(planes), document.Options{})
	if err != nil {
		t.Fatal(err)
	}

	if doc.Width != 2 || doc.Height != 2 {
		t.Errorf("canvas = %dx%d, want 2x2", doc.Width, doc.Height)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(doc.Root.Children))
	}

	n := doc.Root.Children[0]
	if n.Kind != document.KindRaster || n.Name != "base" {
		t.Fatalf("node = %v %q, want raster base", n.Kind, n.Name)
	}
	if n.Image == nil {
		t.Fatal("no pixel content")
	}
	want := []byte{
		1, 5, 9, 255, 2, 6, 10, 255,
		3, 7, 11, 255, 4, 8, 12, 255,
	}
	if !bytes.Equal(n.Image.RGBA, want) {
		t.Errorf("rgba = %v, want %v", n.Image.RGBA, want)
	}
	if n.Image.X != 0 || n.Image.Y != 0 {
		t.Errorf("origin = (%d,%d), want (0,0)", n.Image.X, n.Image.Y)
	}
}

// TrimEdges on a fully opaque layer is a no-op: the opaque box covers the
// whole buffer.
func TestDecodeEndToEndTrimNoop(t *testing.T) {
	planes := [4][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{255, 255, 255, 255},
	}
	doc, err := document.Decode(buildDocument(planes), document.Options{TrimEdges: true})
	if err != nil {
		t.Fatal(err)
	}

	img := doc.Root.Children[0].Image
	if img.Width != 2 || img.Height != 2 || img.X != 0 || img.Y != 0 {
		t.Errorf("trim changed a fully opaque layer: %dx%d at (%d,%d)",
			img.Width, img.Height, img.X, img.Y)
	}
}

func TestDecodeEndToEndTrim(t *testing.T) {
	// Only pixel (1,1) is opaque.
	planes := [4][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{0, 0, 0, 255},
	}
	doc, err := document.Decode(buildDocument(planes), document.Options{TrimEdges: true})
	if err != nil {
		t.Fatal(err)
	}

	img := doc.Root.Children[0].Image
	if img.Width != 1 || img.Height != 1 {
		t.Fatalf("trimmed size = %dx%d, want 1x1", img.Width, img.Height)
	}
	if img.X != 1 || img.Y != 1 {
		t.Errorf("trimmed origin = (%d,%d), want (1,1)", img.X, img.Y)
	}
	if !bytes.Equal(img.RGBA, []byte{4, 8, 12, 255}) {
		t.Errorf("trimmed pixels = %v", img.RGBA)
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.psd")
	planes := [4][]byte{
		{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {255, 255, 255, 255},
	}
	if err := os.WriteFile(path, buildDocument(planes), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := document.DecodeFile(path, document.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(doc.Root.Children))
	}
}

// A missing file is a resource error, not a format error.
func TestDecodeFileMissing(t *testing.T) {
	_, err := document.DecodeFile(filepath.Join(t.TempDir(), "absent.psd"), document.Options{})
	want := &psderr.Error{Phase: psderr.PhaseIO, Kind: psderr.KindResource}
	if !errors.Is(err, want) {
		t.Errorf("got %v, want resource error", err)
	}
}
