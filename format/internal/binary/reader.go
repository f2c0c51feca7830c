package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a read would exceed the remaining input.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Reader is a sequential big-endian cursor over an in-memory byte slice.
// It tracks its position so callers can account for length-framed regions.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Reset seeks to an absolute position.
func (r *Reader) Reset(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return r.wrapError(ErrUnexpectedEOF)
	}
	r.pos = pos
	return nil
}

// Skip advances the cursor by n bytes. Negative n rewinds.
func (r *Reader) Skip(n int) error {
	return r.Reset(r.pos + n)
}

// ReadU8 reads an unsigned 8-bit integer.
func (r *Reader) ReadU8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, r.wrapError(ErrUnexpectedEOF)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadS8 reads a signed 8-bit integer.
func (r *Reader) ReadS8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

// ReadU16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, r.wrapError(ErrUnexpectedEOF)
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadS16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadS16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, r.wrapError(ErrUnexpectedEOF)
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadS32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadS32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadBytes reads exactly n bytes. The returned slice aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, r.wrapError(ErrUnexpectedEOF)
	}
	buf := r.data[r.pos : r.pos+n]
	r.pos += n
	return buf, nil
}

// ReadPascalString reads a length-prefixed byte string padded so that the
// whole field (length byte + bytes + padding) occupies a multiple of 4
// bytes, and returns the raw string bytes without the padding.
func (r *Reader) ReadPascalString() ([]byte, error) {
	length, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	if pad := (4 - (1+int(length))%4) % 4; pad > 0 {
		if err := r.Skip(pad); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// ParseError represents an error during binary parsing with position information.
type ParseError struct {
	Err      error
	Section  string
	Position int
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("psd: %s at position %d: %v", e.Section, e.Position, e.Err)
	}
	return fmt.Sprintf("psd: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position.
func (r *Reader) WrapError(section string, err error) error {
	return &ParseError{
		Position: r.pos,
		Section:  section,
		Err:      err,
	}
}
