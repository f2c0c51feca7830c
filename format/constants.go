package format

// File-level signatures and the fixed header constraints of the subset.
const (
	// FileSignature is the 4-byte magic at the start of every document ("8BPS").
	FileSignature = "8BPS"

	// BlockSignature introduces each layer record's blend-mode field and
	// each additional-information block ("8BIM").
	BlockSignature = "8BIM"

	// SupportedVersion is the only file version the subset accepts.
	SupportedVersion = 1

	// SupportedDepth is the only bit depth the subset accepts.
	SupportedDepth = 8
)

// Color modes stored in the header. Only ColorModeRGB decodes; the indexed
// constant exists because its palette layout is still recognized.
const (
	ColorModeBitmap    uint16 = 0
	ColorModeGrayscale uint16 = 1
	ColorModeIndexed   uint16 = 2
	ColorModeRGB       uint16 = 3
	ColorModeCMYK      uint16 = 4
)

// Channel compression tags. Each channel's payload starts with one.
const (
	CompressionRaw     uint16 = 0 // planar bytes, no transform
	CompressionRLE     uint16 = 1 // PackBits, preceded by a scanline byte-count table
	CompressionZip     uint16 = 2 // zlib stream
	CompressionZipPred uint16 = 3 // zlib stream with per-row delta prediction
)

// Channel IDs as declared in layer records. IDs map into the canonical
// R,G,B,A plane order; any other ID is retained on the record but unmapped.
// Some producers write the alpha ID unsigned (0xFFFF); reading the field as
// a signed 16-bit value folds that alias back onto ChannelAlpha.
const (
	ChannelRed   = 0
	ChannelGreen = 1
	ChannelBlue  = 2
	ChannelAlpha = -1

	// ChannelAlphaAlias is the unsigned reading of ChannelAlpha, kept for
	// callers that carry IDs in a wider integer type.
	ChannelAlphaAlias = 0xFFFF
)

// Additional-information block keys recognized inside a layer record's
// extra-data region. Unknown keys are skipped by their padded length.
const (
	KeySectionDivider = "lsct" // group open/close marker
	KeyUnicodeName    = "luni" // UTF-16 layer name, overrides the Pascal name
	KeyLayerID        = "lyid" // numeric layer id
)

// Section-divider type codes carried by KeySectionDivider payloads.
const (
	DividerTypeAny       = 0 // group of unspecified kind, stored open
	DividerTypeOpen      = 1 // group stored open
	DividerTypeCollapsed = 2 // group stored collapsed
	DividerTypeClose     = 3 // closes the innermost open group
)

// RLEStopByte is the PackBits no-op control byte. RLE channel payloads are
// sometimes padded to even length with one trailing copy of it.
const RLEStopByte = 0x80
