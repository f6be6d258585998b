package codec

import "errors"

// EscapeByte is the continuation byte of an escape-coded integer.
const EscapeByte = 0xFF

// EscapeIncrement is the value each continuation byte contributes.
const EscapeIncrement = 255

// DecodeEscaped reads an ff_byte escape-coded integer: every 0xFF byte adds
// 255, and the first byte that is not 0xFF adds its own value and ends the
// field. It returns the value and the terminal byte.
//
// Running into the cursor bound before the terminal byte fails with
// ErrTruncated and leaves the cursor where it was.
func DecodeEscaped(c *Cursor) (uint64, uint8, error) {
	start := c.Offset()
	var value uint64
	for {
		b, err := c.ReadByte()
		if err != nil {
			read := c.Offset() - start
			c.reset(start)
			var de *DecodeError
			if errors.As(err, &de) && de.Kind == KindTruncated {
				return 0, 0, Truncated(start, read+1, read)
			}
			return 0, 0, err
		}
		if b != EscapeByte {
			return value + uint64(b), b, nil
		}
		value += EscapeIncrement
	}
}

// DecodeEscapedAt decodes an escape-coded integer starting at offset in b
// and returns the value and the number of bytes consumed.
func DecodeEscapedAt(b []byte, offset int) (uint64, int, error) {
	c := NewCursor(b, offset)
	v, _, err := DecodeEscaped(c)
	if err != nil {
		return 0, 0, err
	}
	return v, c.Offset() - offset, nil
}
