package codec

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decode failures.
type ErrorKind int

const (
	// KindTruncated means fewer bytes remain than a field, count or size requires.
	KindTruncated ErrorKind = iota + 1
	// KindMalformed means the bytes are present but cannot be the expected record.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTruncated:
		return "truncated input"
	case KindMalformed:
		return "malformed record"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is checks against a *DecodeError.
var (
	ErrTruncated = errors.New("truncated input")
	ErrMalformed = errors.New("malformed record")
)

// DecodeError carries the buffer offset and classification of a failed decode.
type DecodeError struct {
	Offset int
	Kind   ErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("codec: %v at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Unwrap maps the kind onto its sentinel.
func (e *DecodeError) Unwrap() error {
	switch e.Kind {
	case KindTruncated:
		return ErrTruncated
	case KindMalformed:
		return ErrMalformed
	}
	return nil
}

// Truncated builds a KindTruncated error for a read of need bytes at offset
// when only have bytes remain.
func Truncated(offset, need, have int) *DecodeError {
	return &DecodeError{
		Offset: offset,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// Malformed builds a KindMalformed error.
func Malformed(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{
		Offset: offset,
		Kind:   KindMalformed,
		Detail: fmt.Sprintf(format, args...),
	}
}

// OffsetOf returns the offset carried by the first *DecodeError in err's chain.
func OffsetOf(err error) (int, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset, true
	}
	return 0, false
}
