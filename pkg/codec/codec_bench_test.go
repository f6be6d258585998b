package codec

import (
	"bytes"
	"fmt"
	"testing"
)

func BenchmarkDecodeEscapedAt(b *testing.B) {
	for _, run := range []int{0, 1, 16, 256} {
		data := append(bytes.Repeat([]byte{0xFF}, run), 0x10)
		b.Run(fmt.Sprintf("escapes_%d", run), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := DecodeEscapedAt(data, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBits(b *testing.B) {
	data := []byte{0b1100_0010}
	for i := 0; i < b.N; i++ {
		_, _ = Bits(data, 0, Mask6Bits)
	}
}
