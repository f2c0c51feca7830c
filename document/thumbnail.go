package document

import (
	"image"

	"golang.org/x/image/draw"
)

// ToRGBA wraps the decoded buffer as a standard library image. The pixel
// data is shared, not copied.
func (img *Image) ToRGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.RGBA,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Thumbnail scales the image down to fit within maxWidth x maxHeight,
// preserving aspect ratio. Images already within the box are returned at
// their original size.
func (img *Image) Thumbnail(maxWidth, maxHeight int) *image.RGBA {
	src := img.ToRGBA()
	if img.Width <= maxWidth && img.Height <= maxHeight {
		return src
	}

	w, h := img.Width, img.Height
	if w > maxWidth {
		h = h * maxWidth / w
		w = maxWidth
	}
	if h > maxHeight {
		w = w * maxHeight / h
		h = maxHeight
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
