// Package sei decodes supplemental enhancement information messages of
// H.264, H.265 and H.266 video streams.
//
// Both payloadType and payloadSize are ff_byte escape coded: a run of 0xFF
// bytes worth 255 each, closed by one byte holding the remainder. The
// payload itself is kept as raw bytes.
package sei

import (
	"fmt"

	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/tree"
)

// rbspStopByte is rbsp_stop_one_bit followed by alignment zero bits.
const rbspStopByte = 0x80

// Message is one decoded sei_message().
type Message struct {
	Offset              int // position of the first payloadType byte
	Length              int // bytes consumed, header and payload
	PayloadType         uint64
	LastPayloadTypeByte uint8
	PayloadSize         uint64
	LastPayloadSizeByte uint8
	Payload             []byte
}

// Decode decodes one SEI message starting at offset in b.
func Decode(b []byte, offset int) (*Message, error) {
	return DecodeFrom(codec.NewCursor(b, offset))
}

// DecodeFrom decodes one SEI message at the cursor. The payload must fit
// before the cursor bound.
func DecodeFrom(c *codec.Cursor) (*Message, error) {
	start := c.Offset()

	payloadType, lastType, err := codec.DecodeEscaped(c)
	if err != nil {
		return nil, fmt.Errorf("sei: payloadType: %w", err)
	}
	payloadSize, lastSize, err := codec.DecodeEscaped(c)
	if err != nil {
		return nil, fmt.Errorf("sei: payloadSize: %w", err)
	}

	if have := uint64(c.Remaining()); payloadSize > have {
		return nil, fmt.Errorf("sei: %s payload: %w",
			PayloadTypeName(payloadType), codec.Truncated(c.Offset(), clampInt(payloadSize), int(have)))
	}
	payload, err := c.ReadBytes(int(payloadSize))
	if err != nil {
		return nil, fmt.Errorf("sei: %s payload: %w", PayloadTypeName(payloadType), err)
	}

	return &Message{
		Offset:              start,
		Length:              c.Offset() - start,
		PayloadType:         payloadType,
		LastPayloadTypeByte: lastType,
		PayloadSize:         payloadSize,
		LastPayloadSizeByte: lastSize,
		Payload:             payload,
	}, nil
}

// DecodeMessages decodes the sei_message() loop of an sei_rbsp(): messages
// follow each other until the buffer ends or only the rbsp trailing bits
// byte remains.
func DecodeMessages(rbsp []byte) ([]*Message, error) {
	c := codec.NewCursor(rbsp, 0)
	var msgs []*Message
	for moreRBSPData(c) {
		m, err := DecodeFrom(c)
		if err != nil {
			return nil, fmt.Errorf("sei: message %d: %w", len(msgs), err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func moreRBSPData(c *codec.Cursor) bool {
	switch c.Remaining() {
	case 0:
		return false
	case 1:
		b, err := c.PeekByte()
		return err == nil && b != rbspStopByte
	}
	return true
}

func clampInt(v uint64) int {
	const maxInt = int(^uint(0) >> 1)
	if v > uint64(maxInt) {
		return maxInt
	}
	return int(v)
}

// Name is the payloadType label.
func (m *Message) Name() string {
	return PayloadTypeName(m.PayloadType)
}

// Fields implements tree.Node.
func (m *Message) Fields() []tree.Field {
	return []tree.Field{
		tree.Described("payloadType", m.PayloadType, m.Name()),
		tree.Value("last_payload_type_byte", m.LastPayloadTypeByte),
		tree.Value("payloadSize", m.PayloadSize),
		tree.Value("last_payload_size_byte", m.LastPayloadSizeByte),
		tree.Value("sei_payload", m.Payload),
	}
}

// Messages is a decoded sei_rbsp().
type Messages []*Message

// Fields implements tree.Node.
func (ms Messages) Fields() []tree.Field {
	fields := make([]tree.Field, 0, len(ms))
	for _, m := range ms {
		fields = append(fields, tree.Field{
			Label:       "sei_message",
			Value:       m.PayloadType,
			Description: m.Name(),
			Children:    m.Fields(),
		})
	}
	return fields
}
