// Package document reconstructs a layered document from the flat record
// table produced by the format package.
//
// Reconstruction has two halves. BuildTree runs a stack machine over the
// record table in reverse, turning the implicit group-open/close markers
// into a nested tree, delivered through any psd.DocumentBuilder. The
// compositor interleaves each raster record's canonical channel planes
// into one RGBA buffer, filling defaults for missing or undersized planes,
// and optionally trims the buffer to its opaque bounding box.
//
// Document is the package's own builder: an in-memory tree of Node values
// plus the merged composite preview, suitable for inspection, export, or
// forwarding into a host canvas model.
//
//	doc, err := document.DecodeFile("artwork.psd", document.Options{})
package document
