package document

// maxPixelArea bounds a single composite buffer, comfortably above the
// format's 30000x30000 canvas ceiling. Declared bounds are checked against
// it before allocation, so 4*width*height never overflows int.
const maxPixelArea = 1 << 30

// validArea reports whether a width x height buffer is composable: both
// dimensions positive and the pixel count within maxPixelArea. The
// division keeps the check itself overflow-free.
func validArea(width, height int) bool {
	return width > 0 && height > 0 && width <= maxPixelArea/height
}

// interleave packs canonical R,G,B,A planes into one tightly packed RGBA
// buffer of 4*width*height bytes, row-major. Planes shorter than the pixel
// count are padded per pixel: R,G,B default to 0 and A to 255. A
// zero-length alpha plane means the layer has no alpha channel at all, so
// every pixel is fully opaque; that is its own branch even though the
// per-pixel default would produce the same bytes.
func interleave(planes [4][]byte, width, height int) []byte {
	n := width * height
	buf := make([]byte, 4*n)
	r, g, b, a := planes[0], planes[1], planes[2], planes[3]
	opaque := len(a) == 0

	for k := 0; k < n; k++ {
		o := k * 4
		if k < len(r) {
			buf[o] = r[k]
		}
		if k < len(g) {
			buf[o+1] = g[k]
		}
		if k < len(b) {
			buf[o+2] = b[k]
		}
		switch {
		case opaque:
			buf[o+3] = 255
		case k < len(a):
			buf[o+3] = a[k]
		default:
			buf[o+3] = 255
		}
	}
	return buf
}

// trimOpaque crops buf to the smallest box containing any pixel with
// non-zero alpha. It returns the cropped buffer, its dimensions, and the
// box's offset from the original origin. A fully transparent layer keeps
// the untrimmed buffer; so does a box covering the whole buffer.
func trimOpaque(buf []byte, width, height int) ([]byte, int, int, int, int) {
	minX, minY := width, height
	maxX, maxY := -1, -1

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if buf[(y*width+x)*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		// Fully transparent: nothing to anchor a crop on.
		return buf, width, height, 0, 0
	}

	w := maxX - minX + 1
	h := maxY - minY + 1
	if w == width && h == height {
		return buf, width, height, 0, 0
	}

	out := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		srcOff := ((y+minY)*width + minX) * 4
		copy(out[y*w*4:(y+1)*w*4], buf[srcOff:srcOff+w*4])
	}
	return out, w, h, minX, minY
}
