package sei_test

import (
	"fmt"

	"github.com/ssargent/bitspect/pkg/sei"
)

func ExampleDecode() {
	m, err := sei.Decode([]byte{0x06, 0x03, 0x01, 0x02, 0x03}, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println(m.Name(), m.PayloadSize, m.Payload)
	// Output: recovery_point 3 [1 2 3]
}

func ExampleDecodeMessages() {
	msgs, err := sei.DecodeMessages([]byte{0x89, 0x00, 0xFF, 0x01, 0x00, 0x80})
	if err != nil {
		panic(err)
	}
	for _, m := range msgs {
		fmt.Println(m.PayloadType, m.Name())
	}
	// Output:
	// 137 mastering_display_colour_volume
	// 256 reserved_sei_message
}
