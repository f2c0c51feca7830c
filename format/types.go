package format

import "github.com/layerkit/psd"

// Header holds the fixed fields at the start of a document.
type Header struct {
	Version   uint16
	Channels  uint16
	Height    uint32
	Width     uint32
	Depth     uint16
	ColorMode uint16
}

// Bounds is a layer's rectangle in document space. Right and Bottom are
// exclusive. Width and height at or below zero mean "no pixel content";
// such layers stay in the tree without a buffer.
type Bounds struct {
	Top    int32
	Left   int32
	Bottom int32
	Right  int32
}

// Width returns Right - Left. May be <= 0.
func (b Bounds) Width() int {
	return int(b.Right) - int(b.Left)
}

// Height returns Bottom - Top. May be <= 0.
func (b Bounds) Height() int {
	return int(b.Bottom) - int(b.Top)
}

// Empty reports whether the bounds enclose no pixels.
func (b Bounds) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// ChannelSpec declares one channel of a layer record: its format-native ID
// and the exact number of bytes its payload occupies in the second pass.
type ChannelSpec struct {
	ID       int16
	ByteSize uint32
}

// DividerKind tags a layer record as a group boundary or a plain layer.
type DividerKind int

const (
	DividerNone  DividerKind = iota // paintable layer
	DividerOpen                     // starts a group
	DividerClose                    // closes the innermost group
)

// Divider is the section-divider marker of a layer record. For DividerOpen
// the Type field carries the stored group-type code (DividerTypeAny,
// DividerTypeOpen or DividerTypeCollapsed).
type Divider struct {
	Kind DividerKind
	Type int
}

// Collapsed reports whether an opening divider describes a group that was
// stored collapsed.
func (d Divider) Collapsed() bool {
	return d.Kind == DividerOpen && d.Type == DividerTypeCollapsed
}

// LayerRecord is the parse-time representation of one entry in the layer
// table, before tree reconstruction. Records appear in file order, which is
// top-of-stack first.
type LayerRecord struct {
	Name     string
	LayerID  int32
	Bounds   Bounds
	Channels []ChannelSpec
	BlendKey string
	Blend    psd.BlendMode
	Opacity  uint8
	Visible  bool
	Divider  Divider
	// Planes holds the decoded channel bytes in canonical R,G,B,A order
	// after the second pass. Missing channels are nil entries.
	Planes [4][]byte
}

// Palette is the RGB swatch table read from an indexed document's
// color-mode-data section. Empty for RGB documents.
type Palette []RGB

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// File is the fully parsed document: header, palette, the flat layer record
// table with decoded channel planes, and the merged composite image when
// one is present.
type File struct {
	Header  Header
	Palette Palette
	Records []LayerRecord
	// Merged holds the full-canvas composite planes in canonical order,
	// or all-nil when the image-data section is absent or empty.
	Merged [4][]byte
}
