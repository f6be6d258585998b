package descriptor

import (
	"fmt"

	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/tree"
)

// Header holds the three bytes shared by every extension descriptor.
type Header struct {
	Tag          uint8
	Length       uint8
	TagExtension uint8
}

// Payload is the tag-specific part of an extension descriptor.
type Payload interface {
	tree.Node
	ExtensionTag() uint8
}

// Extension is a decoded extension descriptor (descriptor_tag 0x7F).
type Extension struct {
	Offset  int
	Header  Header
	Payload Payload
}

type payloadParser func(c *codec.Cursor) (Payload, error)

var payloadParsers = map[uint8]payloadParser{
	ExtensionTagVVCSubpictures: func(c *codec.Cursor) (Payload, error) {
		d, err := DecodeVVCSubpictures(c)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
}

// Decode decodes the extension descriptor starting at offset in b.
//
// Reads are bounded by descriptor_length: the payload decoder never sees
// bytes after offset+2+descriptor_length even when b continues.
func Decode(b []byte, offset int) (*Extension, error) {
	c := codec.NewCursor(b, offset)
	if err := c.Need(2); err != nil {
		return nil, fmt.Errorf("descriptor: reading header: %w", err)
	}
	r := &fieldReader{c: c}
	tag := r.readByte()
	length := r.readByte()
	if r.err != nil {
		return nil, fmt.Errorf("descriptor: reading header: %w", r.err)
	}

	if tag != TagExtension {
		return nil, codec.Malformed(offset, "descriptor_tag 0x%02x is not an extension descriptor", tag)
	}
	if length == 0 {
		return nil, codec.Malformed(offset+1, "descriptor_length 0 leaves no room for descriptor_tag_extension")
	}
	if err := c.Bound(int(length)); err != nil {
		return nil, fmt.Errorf("descriptor: descriptor_length %d: %w", length, err)
	}

	ext := r.readByte()
	if r.err != nil {
		return nil, fmt.Errorf("descriptor: descriptor_tag_extension: %w", r.err)
	}
	parse, ok := payloadParsers[ext]
	if !ok {
		parse = decodeUnknown(ext)
	}
	payload, err := parse(c)
	if err != nil {
		return nil, fmt.Errorf("descriptor: decoding %s: %w", ExtensionTagName(ext), err)
	}

	return &Extension{
		Offset:  offset,
		Header:  Header{Tag: tag, Length: length, TagExtension: ext},
		Payload: payload,
	}, nil
}

// Name is the descriptor_tag_extension label.
func (e *Extension) Name() string {
	return ExtensionTagName(e.Header.TagExtension)
}

// Fields implements tree.Node.
func (e *Extension) Fields() []tree.Field {
	fields := []tree.Field{
		tree.Described("descriptor_tag", e.Header.Tag, "extension_descriptor"),
		tree.Value("descriptor_length", e.Header.Length),
		tree.Described("descriptor_tag_extension", e.Header.TagExtension, e.Name()),
	}
	return append(fields, e.Payload.Fields()...)
}

// UnknownPayload keeps the selector bytes of extension descriptors this
// package does not interpret.
type UnknownPayload struct {
	Tag  uint8
	Data []byte
}

func decodeUnknown(tag uint8) payloadParser {
	return func(c *codec.Cursor) (Payload, error) {
		data, err := c.ReadBytes(c.Remaining())
		if err != nil {
			return nil, err
		}
		return &UnknownPayload{Tag: tag, Data: data}, nil
	}
}

// ExtensionTag implements Payload.
func (u *UnknownPayload) ExtensionTag() uint8 { return u.Tag }

// Fields implements tree.Node.
func (u *UnknownPayload) Fields() []tree.Field {
	return []tree.Field{tree.Value("selector_byte", u.Data)}
}
