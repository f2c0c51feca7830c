package format

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"

	"github.com/layerkit/psd/format/internal/binary"
)

// channelIndex maps a format-native channel ID to its slot in the
// canonical R,G,B,A plane array, or -1 for IDs outside the subset
// (layer masks and friends). Reading the ID as a signed 16-bit value
// already folds the unsigned 0xFFFF alpha alias onto ChannelAlpha.
func channelIndex(id int16) int {
	switch int(id) {
	case ChannelRed:
		return 0
	case ChannelGreen:
		return 1
	case ChannelBlue:
		return 2
	case ChannelAlpha:
		return 3
	default:
		return -1
	}
}

// readChannelData runs the second pass for one record: each declared
// channel consumes exactly its ByteSize bytes from r, is decompressed, and
// lands in the record's canonical plane array. Channels with unmapped IDs
// are decoded and dropped.
func readChannelData(r *binary.Reader, rec *LayerRecord) error {
	for _, spec := range rec.Channels {
		payload, err := r.ReadBytes(int(spec.ByteSize))
		if err != nil {
			return err
		}
		plane := decodeChannelPayload(payload, rec.Bounds.Width(), rec.Bounds.Height())
		if slot := channelIndex(spec.ID); slot >= 0 {
			rec.Planes[slot] = plane
		} else {
			Logger().Debug("dropping unmapped channel",
				zap.String("layer", rec.Name),
				zap.Int16("id", spec.ID))
		}
	}
	return nil
}

// decodeChannelPayload decompresses one channel's byte span. The payload
// starts with a 16-bit compression tag; whatever follows is interpreted
// per tag. All anomalies degrade to a shorter (possibly empty) plane.
func decodeChannelPayload(payload []byte, width, height int) []byte {
	if len(payload) < 2 {
		if len(payload) > 0 {
			Logger().Warn("channel payload shorter than its compression tag",
				zap.Int("bytes", len(payload)))
		}
		return nil
	}
	tag := uint16(payload[0])<<8 | uint16(payload[1])
	data := payload[2:]
	if height < 0 {
		height = 0
	}

	switch tag {
	case CompressionRaw:
		return data

	case CompressionRLE:
		// A per-scanline byte-count table precedes the row data. Its
		// contents are unused - the rows decode as one contiguous
		// stream - but its length still has to come off the front.
		table := 2 * height
		if table > len(data) {
			Logger().Warn("RLE scanline table truncated",
				zap.Int("want", table), zap.Int("have", len(data)))
			return nil
		}
		rows := data[table:]
		// Producers pad RLE spans to even length with one stop byte.
		if len(rows) > 0 && len(rows)%2 == 0 && rows[len(rows)-1] == RLEStopByte {
			rows = rows[:len(rows)-1]
		}
		return DecodeRLE(rows)

	case CompressionZip, CompressionZipPred:
		plane := inflate(data)
		if tag == CompressionZipPred {
			unpredict(plane, width)
		}
		return plane

	default:
		Logger().Warn("unknown channel compression", zap.Uint16("tag", tag))
		return nil
	}
}

// inflate decompresses a zlib stream, keeping whatever decoded before any
// error. Matches the RLE policy: truncation shortens, never fails.
func inflate(data []byte) []byte {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		Logger().Warn("zip channel has no valid zlib header", zap.Error(err))
		return nil
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		Logger().Warn("zip channel truncated", zap.Int("decoded", len(out)), zap.Error(err))
	}
	return out
}

// unpredict reverses per-row delta prediction in place.
func unpredict(plane []byte, width int) {
	if width <= 0 {
		return
	}
	for row := 0; row < len(plane); row += width {
		end := row + width
		if end > len(plane) {
			end = len(plane)
		}
		for i := row + 1; i < end; i++ {
			plane[i] += plane[i-1]
		}
	}
}
