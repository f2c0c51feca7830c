// Package psd provides a decoder for a constrained subset of the Photoshop
// document format: 8-bit RGB/RGBA documents with plain raster layers and
// layer groups.
//
// The library reconstructs the layer tree and per-layer pixel data from the
// flat, length-framed record stream stored in the file, and hands the result
// to a DocumentBuilder supplied by the caller.
//
// # Supported
//
//	8-bit depth, RGB color mode, 3 or 4 channels
//	Raw and RLE (PackBits) channel compression, plus ZIP variants
//	Layer groups via section-divider records, including nesting
//	Legacy (Pascal string) and Unicode layer names
//	Merged composite preview image
//
// # Not supported
//
//	Layer masks, adjustment and text layers
//	Indexed, grayscale and CMYK documents
//	Bit depths other than 8, multi-frame data
//	Surrogate-pair combining in Unicode names (each lone surrogate code
//	unit decodes to "?")
//
// # Usage
//
// Decode a file into the in-memory document model:
//
//	doc, err := document.DecodeFile("artwork.psd", document.Options{TrimEdges: true})
//	if err != nil { ... }
//	for _, node := range doc.Root.Children { ... }
//
// Or drive a custom DocumentBuilder to target another canvas model:
//
//	file, err := format.Parse(data)
//	if err != nil { ... }
//	document.BuildTree(file, myBuilder, document.Options{})
//
// See the format package for the low-level record representation and the
// document package for tree reconstruction and pixel compositing.
package psd
