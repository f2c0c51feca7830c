package format

// DecodeRLE decodes a PackBits-compressed byte stream.
//
// Each run starts with a control byte n: 0-127 copies the next n+1 bytes
// verbatim, 128 is a no-op, and 129-255 replicates the following byte
// 257-n times. There is no terminator; the whole input is consumed
// linearly. A run whose data would extend past the end of the input is
// silently dropped, so a truncated stream yields a shorter output rather
// than an error.
func DecodeRLE(src []byte) []byte {
	dst := make([]byte, 0, len(src)*2)
	i := 0
	for i < len(src) {
		n := int(src[i])
		i++
		switch {
		case n < 128:
			count := n + 1
			if i+count > len(src) {
				return dst
			}
			dst = append(dst, src[i:i+count]...)
			i += count
		case n == 128:
			// no-op, also used as trailing pad
		default:
			if i >= len(src) {
				return dst
			}
			count := 257 - n
			b := src[i]
			i++
			for j := 0; j < count; j++ {
				dst = append(dst, b)
			}
		}
	}
	return dst
}

// EncodeRLE compresses src with PackBits. Replicate runs cover 3-128 equal
// bytes; everything else is emitted as literal runs of up to 128 bytes.
// DecodeRLE(EncodeRLE(b)) reproduces b exactly.
func EncodeRLE(src []byte) []byte {
	var dst []byte
	i := 0
	for i < len(src) {
		// Measure the run of equal bytes starting here.
		run := 1
		for i+run < len(src) && src[i+run] == src[i] && run < 128 {
			run++
		}
		if run >= 3 {
			dst = append(dst, byte(257-run), src[i])
			i += run
			continue
		}
		// Literal run: extend until the next replicate run of 3+ or the cap.
		start := i
		i += run
		for i < len(src) && i-start < 128 {
			run = 1
			for i+run < len(src) && src[i+run] == src[i] && run < 3 {
				run++
			}
			if run >= 3 {
				break
			}
			i += run
		}
		if i-start > 128 {
			i = start + 128
		}
		dst = append(dst, byte(i-start-1))
		dst = append(dst, src[start:i]...)
	}
	return dst
}
