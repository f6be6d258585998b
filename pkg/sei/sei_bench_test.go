package sei

import (
	"bytes"
	"testing"
)

func BenchmarkDecode(b *testing.B) {
	data := append([]byte{0x05, 0xFF, 0xFF, 0x02}, bytes.Repeat([]byte{0x11}, 512)...)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(data, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeMessages(b *testing.B) {
	var rbsp []byte
	for i := 0; i < 32; i++ {
		rbsp = append(rbsp, 0x06, 0x04, 0x01, 0x02, 0x03, 0x04)
	}
	rbsp = append(rbsp, 0x80)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeMessages(rbsp); err != nil {
			b.Fatal(err)
		}
	}
}
