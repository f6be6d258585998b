// Package input loads capture bytes for the decoders: hex text typed on a
// command line or posted to the API, and capture files that hold raw bytes,
// hex dumps or zstd-compressed data.
package input

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// DefaultMaxBytes bounds inputs when the caller passes no limit.
const DefaultMaxBytes = 16 << 20

// ErrTooLarge is returned when an input exceeds the configured limit.
var ErrTooLarge = errors.New("input: exceeds size limit")

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// zstdOptions keep decoding synchronous so a frame is only inflated as far
// as the caller reads it.
var zstdOptions = []zstd.DOption{
	zstd.WithDecoderConcurrency(1),
	zstd.WithDecoderLowmem(true),
}

// ParseHex decodes hex text. Whitespace, ':' '-' ',' separators and 0x
// prefixes are ignored so dumps from most tools can be pasted as is.
func ParseHex(s string) ([]byte, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, field := range strings.FieldsFunc(s, isSeparator) {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
		sb.WriteString(field)
	}
	clean := sb.String()
	if clean == "" {
		return nil, errors.New("input: no hex digits")
	}
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("input: invalid hex: %w", err)
	}
	return b, nil
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ':', '-', ',':
		return true
	}
	return false
}

// LoadFile reads a capture file. maxBytes <= 0 means DefaultMaxBytes.
func LoadFile(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: failed to open %s: %w", path, err)
	}
	defer f.Close()

	b, err := Read(f, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("input: %s: %w", path, err)
	}
	return b, nil
}

// Read reads at most maxBytes from r and returns the decoded capture.
func Read(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	b, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("input: read failed: %w", err)
	}
	if int64(len(b)) > maxBytes {
		return nil, ErrTooLarge
	}
	return Detect(b, maxBytes)
}

// Detect turns file contents into capture bytes: zstd frames are
// decompressed, hex text is parsed and anything else is returned as is.
func Detect(b []byte, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if bytes.HasPrefix(b, zstdMagic) {
		return decompress(b, maxBytes)
	}
	if looksHex(b) {
		return ParseHex(string(b))
	}
	return b, nil
}

// decompress stops reading once the output passes maxBytes, so a small
// frame that expands far beyond the limit is never fully inflated.
func decompress(b []byte, maxBytes int64) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(b), zstdOptions...)
	if err != nil {
		return nil, fmt.Errorf("input: zstd decompress: %w", err)
	}
	defer dec.Close()

	d, err := io.ReadAll(io.LimitReader(dec, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("input: zstd decompress: %w", err)
	}
	if int64(len(d)) > maxBytes {
		return nil, ErrTooLarge
	}
	return d, nil
}

func looksHex(b []byte) bool {
	digits := 0
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			digits++
		case c == 'x' || c == 'X':
			if i == 0 || b[i-1] != '0' {
				return false
			}
		case isSeparator(rune(c)):
		default:
			return false
		}
	}
	return digits > 0
}
