package sei

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bitspect/pkg/codec"
)

func TestDecode_RecoveryPoint(t *testing.T) {
	m, err := Decode([]byte{0x06, 0x03, 0x01, 0x02, 0x03}, 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(PayloadTypeRecoveryPoint), m.PayloadType)
	assert.Equal(t, "recovery_point", m.Name())
	assert.Equal(t, uint64(3), m.PayloadSize)
	assert.Equal(t, uint8(0x06), m.LastPayloadTypeByte)
	assert.Equal(t, uint8(0x03), m.LastPayloadSizeByte)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, m.Payload)
	assert.Equal(t, 0, m.Offset)
	assert.Equal(t, 5, m.Length)
}

func TestDecode_EscapedHeader(t *testing.T) {
	testCases := []struct {
		name     string
		header   []byte
		typ      uint64
		size     uint64
		lastType uint8
		lastSize uint8
	}{
		{name: "type 255", header: []byte{0xFF, 0x00, 0x00}, typ: 255, size: 0, lastType: 0x00, lastSize: 0x00},
		{name: "type 256", header: []byte{0xFF, 0x01, 0x02}, typ: 256, size: 2, lastType: 0x01, lastSize: 0x02},
		{name: "size 300", header: []byte{0x05, 0xFF, 0x2D}, typ: 5, size: 300, lastType: 0x05, lastSize: 0x2D},
		{name: "both escaped", header: []byte{0xFF, 0xFF, 0x10, 0xFF, 0x00}, typ: 526, size: 255, lastType: 0x10, lastSize: 0x00},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := bytes.Repeat([]byte{0xAB}, int(tc.size))
			b := append(append([]byte{}, tc.header...), payload...)

			m, err := Decode(b, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, m.PayloadType)
			assert.Equal(t, tc.size, m.PayloadSize)
			assert.Equal(t, tc.lastType, m.LastPayloadTypeByte)
			assert.Equal(t, tc.lastSize, m.LastPayloadSizeByte)
			assert.Equal(t, payload, m.Payload)
			assert.Equal(t, len(b), m.Length)
		})
	}
}

func TestDecode_AtOffset(t *testing.T) {
	b := []byte{0x99, 0x99, 0x05, 0x01, 0x42, 0x99}

	m, err := Decode(b, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Offset)
	assert.Equal(t, 3, m.Length)
	assert.Equal(t, "user_data_unregistered", m.Name())
	assert.Equal(t, []byte{0x42}, m.Payload)
}

func TestDecode_Truncated(t *testing.T) {
	testCases := []struct {
		name   string
		data   []byte
		offset int
	}{
		{name: "empty", data: []byte{}, offset: 0},
		{name: "type escape only", data: []byte{0xFF}, offset: 0},
		{name: "size missing", data: []byte{0x06}, offset: 1},
		{name: "size escape only", data: []byte{0x06, 0xFF}, offset: 1},
		{name: "payload short", data: []byte{0x06, 0x03, 0x01, 0x02}, offset: 2},
		{name: "huge size", data: []byte{0x06, 0xFF, 0xFF, 0xFF, 0x00}, offset: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Decode(tc.data, 0)
			assert.Nil(t, m)
			require.ErrorIs(t, err, codec.ErrTruncated)

			off, ok := codec.OffsetOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.offset, off)
		})
	}
}

func TestDecode_PayloadCopied(t *testing.T) {
	b := []byte{0x04, 0x02, 0x10, 0x20}
	m, err := Decode(b, 0)
	require.NoError(t, err)

	b[2] = 0x00
	assert.Equal(t, []byte{0x10, 0x20}, m.Payload)
}

func TestDecode_Idempotent(t *testing.T) {
	b := []byte{0xFF, 0x01, 0x02, 0xAA, 0xBB}
	first, err := Decode(b, 0)
	require.NoError(t, err)
	second, err := Decode(b, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeFrom_RespectsBound(t *testing.T) {
	c := codec.NewCursor([]byte{0x06, 0x03, 0x01, 0x02, 0x03}, 0)
	require.NoError(t, c.Bound(4))

	_, err := DecodeFrom(c)
	assert.ErrorIs(t, err, codec.ErrTruncated)
}

func TestDecodeMessages(t *testing.T) {
	rbsp := []byte{
		0x06, 0x01, 0x84, // recovery_point
		0x05, 0x02, 0xDE, 0xAD, // user_data_unregistered
		0x80, // rbsp_trailing_bits
	}

	msgs, err := DecodeMessages(rbsp)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "recovery_point", msgs[0].Name())
	assert.Equal(t, 3, msgs[1].Offset)
	assert.Equal(t, []byte{0xDE, 0xAD}, msgs[1].Payload)
}

func TestDecodeMessages_NoTrailingBits(t *testing.T) {
	msgs, err := DecodeMessages([]byte{0x01, 0x00, 0x01, 0x00})
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	msgs, err = DecodeMessages(nil)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestDecodeMessages_Truncated(t *testing.T) {
	_, err := DecodeMessages([]byte{0x06, 0x01, 0x84, 0x05, 0x09, 0x80})
	require.ErrorIs(t, err, codec.ErrTruncated)
	assert.Contains(t, err.Error(), "message 1")
}

func TestPayloadTypeName(t *testing.T) {
	testCases := []struct {
		payloadType uint64
		want        string
	}{
		{PayloadTypeBufferingPeriod, "buffering_period"},
		{PayloadTypePicTiming, "pic_timing"},
		{PayloadTypeUserDataRegistered, "user_data_registered_itu_t_t35"},
		{PayloadTypeUserDataUnregistered, "user_data_unregistered"},
		{PayloadTypeRecoveryPoint, "recovery_point"},
		{PayloadTypeFilmGrainCharacteristics, "film_grain_characteristics"},
		{137, "mastering_display_colour_volume"},
		{207, "constrained_rasl_encoding_indication"},
		{55, ReservedPayloadType},
		{1 << 40, ReservedPayloadType},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, PayloadTypeName(tc.payloadType), "payloadType %d", tc.payloadType)
	}

	tables := Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, "sei_payload_type", tables[0].Name())
	assert.Equal(t, 109, tables[0].Len())
}

func TestMessages_Fields(t *testing.T) {
	msgs, err := DecodeMessages([]byte{0x06, 0x01, 0x84, 0x80})
	require.NoError(t, err)

	fields := Messages(msgs).Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "sei_message", fields[0].Label)
	assert.Equal(t, "recovery_point", fields[0].Description)
	require.Len(t, fields[0].Children, 5)
	assert.Equal(t, "payloadType", fields[0].Children[0].Label)
	assert.Equal(t, []byte{0x84}, fields[0].Children[4].Value)
}
