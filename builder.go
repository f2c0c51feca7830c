package psd

// Handle identifies a group or layer created through a DocumentBuilder.
// Handles are opaque to this library; builders choose their own values.
type Handle interface{}

// DocumentBuilder receives the reconstructed layer tree. The decoder calls
// it bottom-to-top in canonical order: a node is always created before any
// of its siblings above it, and a group before any of its children.
//
// A nil parent handle means the node sits at the document root.
//
// Calls are never rolled back: if decoding fails partway, whatever has
// already reached the builder stays as-is and the caller must discard the
// destination document.
type DocumentBuilder interface {
	// CreateGroup adds a layer group. expanded reports whether the group
	// was stored open in the source document.
	CreateGroup(name string, parent Handle, visible, expanded bool) Handle

	// CreateLayer adds a raster layer. opacity is 0-255.
	CreateLayer(name string, parent Handle, visible bool, opacity uint8, blend BlendMode) Handle

	// SetLayerContent attaches pixel data to a layer previously returned by
	// CreateLayer. rgba is tightly packed interleaved RGBA, 4*width*height
	// bytes. originX/originY place the buffer in document space. Layers
	// without pixel content never receive this call.
	SetLayerContent(layer Handle, rgba []byte, width, height, originX, originY int)
}

// BlendMode enumerates the layer blend modes representable in the subset.
// Unrecognized codes in the file map to BlendNormal.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendAddition
	BlendSubtract
	BlendDivide
)

var blendModeNames = [...]string{
	BlendNormal:     "normal",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
	BlendHue:        "hue",
	BlendSaturation: "saturation",
	BlendColor:      "color",
	BlendLuminosity: "luminosity",
	BlendAddition:   "addition",
	BlendSubtract:   "subtract",
	BlendDivide:     "divide",
}

func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(blendModeNames) {
		return "normal"
	}
	return blendModeNames[m]
}
