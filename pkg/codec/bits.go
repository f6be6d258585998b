package codec

import "math/bits"

// Common field masks.
const (
	Mask3Bits uint8 = 0b0000_0111
	Mask6Bits uint8 = 0b0011_1111
)

// Bits returns (b[offset] & mask) >> trailing zeros of mask.
// An offset outside b fails with ErrTruncated. A zero mask yields 0.
func Bits(b []byte, offset int, mask uint8) (uint8, error) {
	if offset < 0 || offset >= len(b) {
		return 0, Truncated(offset, 1, 0)
	}
	if mask == 0 {
		return 0, nil
	}
	return (b[offset] & mask) >> bits.TrailingZeros8(mask), nil
}

// Flag reports whether any bit of mask is set in b[offset].
func Flag(b []byte, offset int, mask uint8) (bool, error) {
	v, err := Bits(b, offset, mask)
	return v != 0, err
}
