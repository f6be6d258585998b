package descriptor

import "github.com/ssargent/bitspect/pkg/codec"

// fieldReader reads consecutive byte-aligned fields. After the first failed
// read every later read returns zero and err holds that first failure.
type fieldReader struct {
	c   *codec.Cursor
	err error
}

// bits extracts a masked field from the current byte without consuming it.
func (r *fieldReader) bits(mask uint8) uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.Bits(mask)
	r.err = err
	return v
}

// next moves past the current byte.
func (r *fieldReader) next() {
	if r.err == nil {
		r.err = r.c.Skip(1)
	}
}

// readByte consumes the current byte.
func (r *fieldReader) readByte() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadByte()
	r.err = err
	return v
}
