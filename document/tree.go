package document

import (
	"go.uber.org/zap"

	"github.com/layerkit/psd"
	"github.com/layerkit/psd/format"
)

// BuildTree reconstructs the nested layer tree from the flat record table
// and feeds it to the builder.
//
// The file stores records top-to-bottom while the canonical tree order is
// bottom-to-top, so the table is traversed in reverse. Group nesting is
// carried by the records' divider markers alone: an opening divider pushes
// a new group onto the stack, a closing divider pops it, and every other
// record becomes a raster layer under the current stack top. The builder
// contract inserts each node as the first child of its parent, so children
// come out ordered top-to-bottom, matching the file.
//
// Unbalanced markers are tolerated: a closer on an empty stack is a no-op
// and groups left open at the end of the table stay open.
func BuildTree(f *format.File, b psd.DocumentBuilder, opts Options) {
	var stack []psd.Handle

	top := func() psd.Handle {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for i := len(f.Records) - 1; i >= 0; i-- {
		rec := &f.Records[i]

		// Divider records never fall through to raster handling.
		switch rec.Divider.Kind {
		case format.DividerOpen:
			h := b.CreateGroup(rec.Name, top(), rec.Visible, !rec.Divider.Collapsed())
			stack = append(stack, h)
			continue
		case format.DividerClose:
			if len(stack) == 0 {
				Logger().Debug("ignoring group closer with no open group")
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}

		h := b.CreateLayer(rec.Name, top(), rec.Visible, rec.Opacity, rec.Blend)
		setContent(b, h, rec, opts)
	}

	if len(stack) > 0 {
		Logger().Debug("groups left open at end of layer table",
			zap.Int("count", len(stack)))
	}
}

// setContent composites a record's planes and hands the buffer to the
// builder. Records with empty bounds stay in the tree without content.
func setContent(b psd.DocumentBuilder, h psd.Handle, rec *format.LayerRecord, opts Options) {
	width := rec.Bounds.Width()
	height := rec.Bounds.Height()
	if width <= 0 || height <= 0 {
		return
	}
	if !validArea(width, height) {
		Logger().Warn("layer bounds exceed the supported pixel area",
			zap.String("layer", rec.Name),
			zap.Int("width", width), zap.Int("height", height))
		return
	}

	rgba := interleave(rec.Planes, width, height)
	x := int(rec.Bounds.Left)
	y := int(rec.Bounds.Top)

	if opts.TrimEdges {
		var dx, dy int
		rgba, width, height, dx, dy = trimOpaque(rgba, width, height)
		x += dx
		y += dy
	}

	b.SetLayerContent(h, rgba, width, height, x, y)
}
