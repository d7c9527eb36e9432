package spec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrTruncatedInput = errors.New("truncated input")
var ErrInvalidOffset = errors.New("invalid offset")

// Cursor is a little-endian reader over a fixed byte source with an
// explicit read position. All multi-byte integers in both lot formats
// are 32-bit signed little-endian values.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadInt32 reads a little-endian int32 and advances four bytes.
func (c *Cursor) ReadInt32() (int32, error) {
	if c.Remaining() < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d, have %d", ErrTruncatedInput, c.pos, c.Remaining())
	}
	value := int32(binary.LittleEndian.Uint32(c.data[c.pos:]))
	c.pos += 4
	return value, nil
}

// ReadByte reads a single byte and advances past it.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrTruncatedInput, c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Seek moves the read position to an absolute offset within the source.
func (c *Cursor) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(c.data)) {
		return fmt.Errorf("%w: %d (source is %d bytes)", ErrInvalidOffset, offset, len(c.data))
	}
	c.pos = int(offset)
	return nil
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}
