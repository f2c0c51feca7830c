// Package format parses the binary layout of the supported document
// subset: the fixed big-endian header, the skippable color-mode and
// image-resources sections, the layer-and-mask section with its flat
// record table and per-channel byte spans, and the trailing merged
// composite image.
//
// # Structure
//
// A document is a sequence of length-framed sections:
//
//	Header          fixed 26 bytes: signature, version, channels,
//	                height, width, depth, color mode
//	Color mode data palette planes for indexed documents, else skipped
//	Image resources skipped wholesale
//	Layer section   layer count, N layer records, then N channel
//	                data spans in declaration order
//	Image data      merged composite, planar, raw or RLE
//
// Parse returns a File: the flat, file-ordered record list with channel
// planes already decompressed and remapped to canonical R,G,B,A order.
// Turning that flat list into a nested layer tree is the document
// package's job.
//
// # Error policy
//
// Structural violations of the subset (bad signature, unsupported
// version, depth, channel count or color mode, missing per-layer blend
// signature) abort with a structured error. Everything else - unknown
// auxiliary blocks, truncated compressed tails, undersized planes - is
// defaulted, skipped or truncated, reported only through the package
// logger, and never fails the decode.
package format
