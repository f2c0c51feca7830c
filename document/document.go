package document

import (
	"os"

	"github.com/layerkit/psd"
	"github.com/layerkit/psd/errors"
	"github.com/layerkit/psd/format"
)

// Options configures decoding.
type Options struct {
	// TrimEdges crops each layer's pixel buffer to its opaque bounding
	// box, shifting the layer origin accordingly.
	TrimEdges bool
}

// NodeKind distinguishes the two layer tree node variants.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindRaster
)

// Node is one element of the reconstructed layer tree: either a group with
// children or a raster layer, possibly carrying pixel content. The tree
// owns its children; nodes hold no parent pointer.
type Node struct {
	Kind    NodeKind
	Name    string
	Visible bool

	// Group fields.
	Expanded bool
	Children []*Node

	// Raster fields.
	Opacity uint8
	Blend   psd.BlendMode
	Image   *Image
}

// Image is a decoded pixel buffer: tightly packed interleaved RGBA of
// exactly 4*Width*Height bytes, placed at (X, Y) in document space.
type Image struct {
	Width  int
	Height int
	X      int
	Y      int
	RGBA   []byte
}

// Document is the in-memory result of a decode. Root is a synthetic group
// holding the top-level forest; Preview is the merged composite image when
// the file carries one.
type Document struct {
	Width   int
	Height  int
	Root    *Node
	Preview *Image
}

// New creates an empty document with the given canvas size.
func New(width, height int) *Document {
	return &Document{
		Width:  width,
		Height: height,
		Root:   &Node{Kind: KindGroup, Name: "", Visible: true, Expanded: true},
	}
}

// Document implements psd.DocumentBuilder by growing its own tree.
var _ psd.DocumentBuilder = (*Document)(nil)

func (d *Document) parentOf(h psd.Handle) *Node {
	if h == nil {
		return d.Root
	}
	return h.(*Node)
}

// CreateGroup adds a group as the first child of parent.
func (d *Document) CreateGroup(name string, parent psd.Handle, visible, expanded bool) psd.Handle {
	n := &Node{Kind: KindGroup, Name: name, Visible: visible, Expanded: expanded}
	p := d.parentOf(parent)
	p.Children = append([]*Node{n}, p.Children...)
	return n
}

// CreateLayer adds a raster layer as the first child of parent.
func (d *Document) CreateLayer(name string, parent psd.Handle, visible bool, opacity uint8, blend psd.BlendMode) psd.Handle {
	n := &Node{Kind: KindRaster, Name: name, Visible: visible, Opacity: opacity, Blend: blend}
	p := d.parentOf(parent)
	p.Children = append([]*Node{n}, p.Children...)
	return n
}

// SetLayerContent attaches pixel data to a raster node.
func (d *Document) SetLayerContent(layer psd.Handle, rgba []byte, width, height, originX, originY int) {
	n := layer.(*Node)
	n.Image = &Image{Width: width, Height: height, X: originX, Y: originY, RGBA: rgba}
}

// Decode parses a document byte stream and reconstructs the layer tree
// into an in-memory Document. The whole decode is one blocking call; for
// cancellation, wrap it at a coarser boundary such as a worker goroutine.
func Decode(data []byte, opts Options) (*Document, error) {
	f, err := format.Parse(data)
	if err != nil {
		return nil, err
	}

	doc := New(int(f.Header.Width), int(f.Header.Height))
	BuildTree(f, doc, opts)

	if validArea(doc.Width, doc.Height) && f.Merged[0] != nil {
		doc.Preview = &Image{
			Width:  doc.Width,
			Height: doc.Height,
			RGBA:   interleave(f.Merged, doc.Width, doc.Height),
		}
	}
	return doc, nil
}

// DecodeFile reads and decodes the document at path. Failures to read the
// file surface as resource errors, distinct from format errors.
func DecodeFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Resource("read "+path, err)
	}
	return Decode(data, opts)
}
