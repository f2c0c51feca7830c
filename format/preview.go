package format

import (
	"go.uber.org/zap"

	"github.com/layerkit/psd/format/internal/binary"
)

// parseMergedImage reads the image-data section at the end of the file:
// the flattened composite every writer appends after the layer section.
// The section is planar - one full-canvas plane per header channel, in
// R,G,B,A order - behind a single compression tag. An absent or broken
// section leaves File.Merged empty; the layer data already parsed stands.
func parseMergedImage(r *binary.Reader, f *File) {
	if r.Remaining() < 2 {
		return
	}
	tag, err := r.ReadU16()
	if err != nil {
		return
	}

	width := int(f.Header.Width)
	height := int(f.Header.Height)
	channels := int(f.Header.Channels)
	planeSize := width * height
	if planeSize <= 0 || channels > 4 {
		return
	}

	switch tag {
	case CompressionRaw:
		for i := 0; i < channels; i++ {
			plane, err := r.ReadBytes(planeSize)
			if err != nil {
				// Keep the planes read so far; a short composite is
				// preview-only data, never worth failing the decode.
				Logger().Warn("merged image truncated",
					zap.Int("plane", i), zap.Int("have", r.Remaining()))
				return
			}
			f.Merged[i] = plane
		}

	case CompressionRLE:
		// One byte-count entry per scanline per channel precedes the row
		// data. The rows then decode as a single contiguous stream.
		if err := r.Skip(2 * height * channels); err != nil {
			Logger().Warn("merged image scanline table truncated")
			return
		}
		rows, err := r.ReadBytes(r.Remaining())
		if err != nil {
			return
		}
		decoded := DecodeRLE(rows)
		for i := 0; i < channels; i++ {
			start := i * planeSize
			end := start + planeSize
			if start >= len(decoded) {
				break
			}
			if end > len(decoded) {
				end = len(decoded)
			}
			f.Merged[i] = decoded[start:end]
		}

	default:
		Logger().Warn("unsupported merged image compression", zap.Uint16("tag", tag))
	}
}
