package codec

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

// Cursor is a bounded read position over an immutable byte slice.
//
// A Cursor belongs to exactly one decode. It only moves forward, and it
// never reads at or past End, even when the underlying slice is longer.
type Cursor struct {
	buf []byte
	it  *astikit.BytesIterator
	end int
}

// NewCursor returns a cursor at offset, bounded by the end of b.
func NewCursor(b []byte, offset int) *Cursor {
	c := &Cursor{buf: b, end: len(b)}
	c.it = astikit.NewBytesIterator(b)
	c.it.Seek(offset)
	return c
}

// Offset is the absolute position of the next byte to be read.
func (c *Cursor) Offset() int { return c.it.Offset() }

// End is the exclusive upper bound of readable bytes.
func (c *Cursor) End() int { return c.end }

// Remaining is the number of readable bytes left before End.
func (c *Cursor) Remaining() int {
	off := c.Offset()
	if off < 0 || off >= c.end {
		return 0
	}
	return c.end - off
}

// Bound narrows the cursor to the next n bytes. It fails with ErrTruncated
// when fewer than n bytes are readable under the current bound.
func (c *Cursor) Bound(n int) error {
	if n < 0 {
		return Malformed(c.Offset(), "negative bound %d", n)
	}
	if err := c.Need(n); err != nil {
		return err
	}
	off := c.Offset()
	c.end = off + n
	c.it = astikit.NewBytesIterator(c.buf[:c.end])
	c.it.Seek(off)
	return nil
}

// Need reports ErrTruncated unless n more bytes are readable.
func (c *Cursor) Need(n int) error {
	off := c.Offset()
	if off < 0 {
		return Malformed(off, "negative offset")
	}
	if have := c.Remaining(); have < n {
		return Truncated(off, n, have)
	}
	return nil
}

// PeekByte returns the next byte without consuming it.
func (c *Cursor) PeekByte() (byte, error) {
	if err := c.Need(1); err != nil {
		return 0, err
	}
	return c.buf[c.Offset()], nil
}

// ReadByte consumes one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.Need(1); err != nil {
		return 0, err
	}
	b, err := c.it.NextByte()
	if err != nil {
		return 0, fmt.Errorf("codec: fetching next byte failed: %w", err)
	}
	return b, nil
}

// ReadBytes consumes n bytes and returns a copy of them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, Malformed(c.Offset(), "negative length %d", n)
	}
	if err := c.Need(n); err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	bs, err := c.it.NextBytes(n)
	if err != nil {
		return nil, fmt.Errorf("codec: fetching next bytes failed: %w", err)
	}
	return bs, nil
}

// Skip consumes n bytes without returning them.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return Malformed(c.Offset(), "negative skip %d", n)
	}
	if err := c.Need(n); err != nil {
		return err
	}
	c.it.Skip(n)
	return nil
}

// Bits extracts a masked field from the byte at the cursor without
// consuming it.
func (c *Cursor) Bits(mask uint8) (uint8, error) {
	if err := c.Need(1); err != nil {
		return 0, err
	}
	return Bits(c.buf, c.Offset(), mask)
}

// reset moves the cursor back to off. Only used to undo a failed read.
func (c *Cursor) reset(off int) {
	c.it.Seek(off)
}
