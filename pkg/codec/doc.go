// Package codec provides the low-level field readers used by bitspect's
// record decoders.
//
// Broadcast descriptors and video SEI messages pack their fields into single
// bytes at fixed bit positions, repeat fixed-size units a counted number of
// times, and, for SEI, encode integers as a run of escape bytes. This package
// holds the three pieces every decoder shares: a bounded Cursor, the masked
// bit-field reader and the escape-coded integer decoder.
//
// # Bit Fields
//
// A field inside one byte is described by its mask:
//
//	value = (b[offset] & mask) >> trailingZeros(mask)
//
// For example the 6-bit count in the low bits of a flags byte uses
// Mask6Bits, and a flag in bit 7 uses 0b1000_0000. Fields wider than a byte
// are read as whole bytes through the Cursor.
//
// # Escape-Coded Integers
//
// The ff_byte scheme of H.264/H.265/H.266 SEI headers:
//
//	[0xFF]* [terminal]
//	value = 255 * count(0xFF) + terminal
//
// so [FF FF 10] decodes to 526 and consumes 3 bytes, and [05] decodes to 5.
// The run may be arbitrarily long; it ends only at a byte other than 0xFF or
// at the cursor bound, which is reported as ErrTruncated.
//
// # Bounds
//
// A Cursor is created over a whole buffer and narrowed with Bound to the
// length declared by the enclosing record. Reads past the bound fail even
// when the underlying slice holds more bytes, so a corrupt count or size
// never lets a decoder run into a neighbouring record.
//
// # Error Handling
//
// Failures are *DecodeError values carrying the absolute buffer offset of
// the failing read. Use errors.Is with ErrTruncated or ErrMalformed to
// classify them, and OffsetOf to recover the position for diagnostics.
//
// # Thread Safety
//
// Bits and DecodeEscapedAt are pure functions. A Cursor is mutable and must
// be owned by a single decode; the buffer under it is never written.
package codec
