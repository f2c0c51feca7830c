package format

import (
	"go.uber.org/zap"

	"github.com/layerkit/psd/errors"
	"github.com/layerkit/psd/format/internal/binary"
)

// Parse decodes an in-memory document byte stream into a File: the fixed
// header, the palette (indexed documents only), the flat layer record table
// with decoded channel planes, and the merged composite image.
//
// Parse is synchronous and single-pass over the input; it returns either a
// fully parsed File or a structured error from the errors package. Memory
// use is proportional to the total decompressed channel volume, since
// every layer's planes are held until the caller consumes the File.
func Parse(data []byte) (*File, error) {
	r := binary.NewReader(data)
	f := &File{}

	if err := parseHeader(r, &f.Header); err != nil {
		return nil, err
	}

	palette, err := parseColorModeData(r, f.Header.ColorMode)
	if err != nil {
		return nil, err
	}
	f.Palette = palette

	// The image-resources section is opaque to this decoder.
	if err := skipLengthFramed(r, errors.PhaseResources); err != nil {
		return nil, err
	}

	if err := parseLayerSection(r, f); err != nil {
		return nil, err
	}

	parseMergedImage(r, f)
	return f, nil
}

func parseHeader(r *binary.Reader, h *Header) error {
	magic, err := r.ReadBytes(4)
	if err != nil {
		return eof(errors.PhaseHeader, r)
	}
	if string(magic) != FileSignature {
		return errors.BadMagic(errors.PhaseHeader, magic, FileSignature)
	}

	if h.Version, err = r.ReadU16(); err != nil {
		return eof(errors.PhaseHeader, r)
	}
	if h.Version != SupportedVersion {
		return errors.New(errors.PhaseHeader, errors.KindUnsupported).
			Detail("file version %d", h.Version).
			Build()
	}

	// 6 reserved bytes, always zero in conforming input.
	if err = r.Skip(6); err != nil {
		return eof(errors.PhaseHeader, r)
	}

	if h.Channels, err = r.ReadU16(); err != nil {
		return eof(errors.PhaseHeader, r)
	}
	if h.Height, err = r.ReadU32(); err != nil {
		return eof(errors.PhaseHeader, r)
	}
	if h.Width, err = r.ReadU32(); err != nil {
		return eof(errors.PhaseHeader, r)
	}
	if h.Depth, err = r.ReadU16(); err != nil {
		return eof(errors.PhaseHeader, r)
	}
	if h.ColorMode, err = r.ReadU16(); err != nil {
		return eof(errors.PhaseHeader, r)
	}

	if h.Channels != 3 && h.Channels != 4 {
		return errors.New(errors.PhaseHeader, errors.KindUnsupported).
			Detail("channel count %d, want 3 or 4", h.Channels).
			Build()
	}
	if h.Depth != SupportedDepth {
		return errors.New(errors.PhaseHeader, errors.KindUnsupported).
			Detail("bit depth %d, want %d", h.Depth, SupportedDepth).
			Build()
	}
	if h.ColorMode != ColorModeRGB {
		return errors.New(errors.PhaseHeader, errors.KindUnsupported).
			Detail("color mode %d, want RGB (%d)", h.ColorMode, ColorModeRGB).
			Build()
	}
	return nil
}

// parseColorModeData consumes the color-mode-data section. For indexed
// documents it zips the three equal-length planar blocks (R, G, B) into a
// palette; for every other mode the section is skipped and the palette is
// empty. The RGB-only header check means Parse never reaches the indexed
// branch, but the layout is still honored for callers probing raw sections.
func parseColorModeData(r *binary.Reader, mode uint16) (Palette, error) {
	length, err := r.ReadU32()
	if err != nil {
		return nil, eof(errors.PhaseColorMode, r)
	}
	if mode != ColorModeIndexed {
		if err := r.Skip(int(length)); err != nil {
			return nil, eof(errors.PhaseColorMode, r)
		}
		return nil, nil
	}

	block, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, eof(errors.PhaseColorMode, r)
	}
	n := len(block) / 3
	if len(block)%3 != 0 {
		Logger().Warn("indexed palette not divisible into three planes",
			zap.Int("bytes", len(block)))
	}
	palette := make(Palette, n)
	for i := 0; i < n; i++ {
		palette[i] = RGB{R: block[i], G: block[n+i], B: block[2*n+i]}
	}
	return palette, nil
}

func skipLengthFramed(r *binary.Reader, phase errors.Phase) error {
	length, err := r.ReadU32()
	if err != nil {
		return eof(phase, r)
	}
	if err := r.Skip(int(length)); err != nil {
		return eof(phase, r)
	}
	return nil
}

// parseLayerSection reads the layer-and-mask section: the record table in
// file order (top-of-stack first), then every record's channel data in a
// second pass. Trailing section content (global mask info) is skipped by
// the section length.
func parseLayerSection(r *binary.Reader, f *File) error {
	length, err := r.ReadU32()
	if err != nil {
		return eof(errors.PhaseLayers, r)
	}
	if length == 0 {
		return nil
	}
	sectionEnd := r.Position() + int(length)

	rawCount, err := r.ReadS16()
	if err != nil {
		return eof(errors.PhaseLayers, r)
	}
	// A negative count flags a merged-alpha channel in the full format.
	// The subset takes the absolute value and discards the flag.
	count := int(rawCount)
	if count < 0 {
		count = -count
	}

	f.Records = make([]LayerRecord, 0, count)
	for i := 0; i < count; i++ {
		rec, err := parseLayerRecord(r)
		if err != nil {
			return err
		}
		f.Records = append(f.Records, rec)
	}

	for i := range f.Records {
		if err := readChannelData(r, &f.Records[i]); err != nil {
			return errors.New(errors.PhaseChannels, errors.KindTruncated).
				Offset(int64(r.Position())).
				Detail("channel data for layer %q", f.Records[i].Name).
				Build()
		}
	}

	if err := r.Reset(sectionEnd); err != nil {
		Logger().Warn("layer section length overruns input",
			zap.Int("end", sectionEnd))
		r.Skip(r.Remaining())
	}
	return nil
}

func parseLayerRecord(r *binary.Reader) (LayerRecord, error) {
	var rec LayerRecord
	var err error

	if rec.Bounds.Top, err = r.ReadS32(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	if rec.Bounds.Left, err = r.ReadS32(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	if rec.Bounds.Bottom, err = r.ReadS32(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	if rec.Bounds.Right, err = r.ReadS32(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}

	channelCount, err := r.ReadU16()
	if err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	rec.Channels = make([]ChannelSpec, 0, channelCount)
	for i := 0; i < int(channelCount); i++ {
		id, err := r.ReadS16()
		if err != nil {
			return rec, eof(errors.PhaseLayers, r)
		}
		size, err := r.ReadU32()
		if err != nil {
			return rec, eof(errors.PhaseLayers, r)
		}
		rec.Channels = append(rec.Channels, ChannelSpec{ID: id, ByteSize: size})
	}

	sig, err := r.ReadBytes(4)
	if err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	if string(sig) != BlockSignature {
		return rec, errors.New(errors.PhaseLayers, errors.KindInvalidData).
			Offset(int64(r.Position() - 4)).
			Detail("blend signature %q, want %q", sig, BlockSignature).
			Build()
	}

	key, err := r.ReadBytes(4)
	if err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	rec.BlendKey = string(key)
	rec.Blend = BlendModeForKey(rec.BlendKey)

	if rec.Opacity, err = r.ReadU8(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	// Clipping byte, unused by the subset.
	if _, err = r.ReadU8(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	flags, err := r.ReadU8()
	if err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	rec.Visible = flags&0x02 == 0
	// Filler byte.
	if _, err = r.ReadU8(); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}

	extraLen, err := r.ReadU32()
	if err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	extraEnd := r.Position() + int(extraLen)

	// Mask data, always zero-length in conforming input but tolerated.
	if err := skipLengthFramed(r, errors.PhaseLayers); err != nil {
		return rec, err
	}
	// Blending ranges.
	if err := skipLengthFramed(r, errors.PhaseLayers); err != nil {
		return rec, err
	}

	rawName, err := r.ReadPascalString()
	if err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	rec.Name = SanitizeUTF8(string(rawName))

	if err := scanExtraBlocks(r, &rec, extraEnd); err != nil {
		return rec, err
	}
	if err := r.Reset(extraEnd); err != nil {
		return rec, eof(errors.PhaseLayers, r)
	}
	return rec, nil
}

// scanExtraBlocks walks the additional-information blocks in the remainder
// of a record's extra-data sub-region. Each block is signature, key, 32-bit
// length, then a payload padded to even length. An unrecognized signature
// abandons scanning for the record; unrecognized keys are skipped.
func scanExtraBlocks(r *binary.Reader, rec *LayerRecord, extraEnd int) error {
	for extraEnd-r.Position() >= 12 {
		sig, err := r.ReadBytes(4)
		if err != nil {
			return eof(errors.PhaseLayers, r)
		}
		key, err := r.ReadBytes(4)
		if err != nil {
			return eof(errors.PhaseLayers, r)
		}
		if string(sig) != BlockSignature {
			Logger().Debug("unrecognized block signature, abandoning scan",
				zap.String("layer", rec.Name),
				zap.ByteString("signature", sig))
			return r.Skip(-8)
		}

		length, err := r.ReadU32()
		if err != nil {
			return eof(errors.PhaseLayers, r)
		}
		padded := int(length) + int(length)%2
		blockEnd := r.Position() + padded
		if blockEnd > extraEnd {
			Logger().Warn("block payload overruns extra data region",
				zap.String("key", string(key)))
			return nil
		}

		switch string(key) {
		case KeySectionDivider:
			if length >= 4 {
				dividerType, err := r.ReadU32()
				if err != nil {
					return eof(errors.PhaseLayers, r)
				}
				switch dividerType {
				case DividerTypeAny, DividerTypeOpen, DividerTypeCollapsed:
					rec.Divider = Divider{Kind: DividerOpen, Type: int(dividerType)}
				case DividerTypeClose:
					rec.Divider = Divider{Kind: DividerClose}
				default:
					Logger().Debug("unknown section divider type",
						zap.Uint32("type", dividerType))
				}
			}

		case KeyUnicodeName:
			if length >= 4 {
				units, err := r.ReadU32()
				if err != nil {
					return eof(errors.PhaseLayers, r)
				}
				byteLen := int(units) * 2
				if byteLen > blockEnd-r.Position() {
					byteLen = blockEnd - r.Position()
				}
				utf16be, err := r.ReadBytes(byteLen)
				if err != nil {
					return eof(errors.PhaseLayers, r)
				}
				rec.Name = SanitizeUTF8(DecodeUTF16BE(utf16be))
			}

		case KeyLayerID:
			if length >= 4 {
				id, err := r.ReadS32()
				if err != nil {
					return eof(errors.PhaseLayers, r)
				}
				rec.LayerID = id
			}

		default:
			Logger().Debug("skipping unrecognized block",
				zap.String("key", string(key)),
				zap.Uint32("length", length))
		}

		if err := r.Reset(blockEnd); err != nil {
			return eof(errors.PhaseLayers, r)
		}
	}
	return nil
}

func eof(phase errors.Phase, r *binary.Reader) *errors.Error {
	return errors.Truncated(phase, int64(r.Position()))
}
