package format

// DecodeUTF16BE converts big-endian UTF-16 code units to UTF-8.
//
// Code units in the surrogate range (0xD800-0xDFFF) each become a single
// "?" placeholder; surrogate pairs are never combined, so this path never
// produces a code point above U+FFFF. A dangling odd trailing byte is
// dropped.
func DecodeUTF16BE(src []byte) string {
	dst := make([]byte, 0, len(src)/2)
	for i := 0; i+1 < len(src); i += 2 {
		u := uint16(src[i])<<8 | uint16(src[i+1])
		switch {
		case u >= 0xD800 && u <= 0xDFFF:
			dst = append(dst, '?')
		case u < 0x80:
			dst = append(dst, byte(u))
		case u < 0x800:
			dst = append(dst, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			dst = append(dst, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return string(dst)
}

// SanitizeUTF8 validates s against UTF-8 grammar and returns it unchanged
// when fully valid. When invalid anywhere, it returns a copy with every
// byte >= 0x80 replaced by "_" - a global fallback, not a localized fix-up,
// so a single bad byte degrades the whole string to its ASCII skeleton.
// Applied defensively to every layer name regardless of origin.
func SanitizeUTF8(s string) string {
	if validUTF8(s) {
		return s
	}
	out := []byte(s)
	for i := range out {
		if out[i] >= 0x80 {
			out[i] = '_'
		}
	}
	return string(out)
}

func validUTF8(s string) bool {
	for i := 0; i < len(s); {
		c := s[i]
		var size int
		switch {
		case c < 0x80:
			i++
			continue
		case c >= 0xC2 && c <= 0xDF:
			size = 2
		case c >= 0xE0 && c <= 0xEF:
			size = 3
		case c >= 0xF0 && c <= 0xF4:
			size = 4
		default:
			return false
		}
		if i+size > len(s) {
			return false
		}
		for j := 1; j < size; j++ {
			if s[i+j] < 0x80 || s[i+j] > 0xBF {
				return false
			}
		}
		i += size
	}
	return true
}
