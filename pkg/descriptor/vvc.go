package descriptor

import (
	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/tree"
)

const (
	maskDefaultServiceMode        uint8 = 0b1000_0000
	maskServiceDescriptionPresent uint8 = 0b0100_0000
	maskReservedZeroFutureUse     uint8 = 0b1111_1000
)

// SubPicture is one (component_tag, vvc_subpicture_id) pair. Each field is a
// whole byte of which only the low 6 bits are kept.
type SubPicture struct {
	ComponentTag    uint8
	VVCSubpictureID uint8
}

// Fields implements tree.Node.
func (s SubPicture) Fields() []tree.Field {
	return []tree.Field{
		tree.Value("component_tag", s.ComponentTag),
		tree.Value("vvc_subpicture_id", s.VVCSubpictureID),
	}
}

// VVCSubpictures is the VVC subpictures descriptor payload
// (DVB BlueBook A038r16, 6.4.17).
type VVCSubpictures struct {
	DefaultServiceMode        bool
	ServiceDescriptionPresent bool
	NumberOfSubpictures       uint8
	Subpictures               []SubPicture
	Reserved                  uint8
	ProcessingMode            uint8
	ServiceDescription        *Text // nil unless ServiceDescriptionPresent
}

// DecodeVVCSubpictures decodes the payload that follows
// descriptor_tag_extension. The cursor must already be bounded by the
// descriptor length.
func DecodeVVCSubpictures(c *codec.Cursor) (*VVCSubpictures, error) {
	r := &fieldReader{c: c}
	mode := r.bits(maskDefaultServiceMode)
	present := r.bits(maskServiceDescriptionPresent)
	count := r.bits(codec.Mask6Bits)
	r.next()
	if r.err != nil {
		return nil, r.err
	}

	d := &VVCSubpictures{
		DefaultServiceMode:        mode == 1,
		ServiceDescriptionPresent: present == 1,
		NumberOfSubpictures:       count,
		Subpictures:               make([]SubPicture, 0, count),
	}

	// count pairs plus the reserved/processing_mode byte
	if err := c.Need(2*int(count) + 1); err != nil {
		return nil, err
	}
	for i := 0; i < int(count); i++ {
		tag := r.bits(codec.Mask6Bits)
		r.next()
		id := r.bits(codec.Mask6Bits)
		r.next()
		d.Subpictures = append(d.Subpictures, SubPicture{ComponentTag: tag, VVCSubpictureID: id})
	}

	d.Reserved = r.bits(maskReservedZeroFutureUse)
	d.ProcessingMode = r.bits(codec.Mask3Bits)
	r.next()
	if r.err != nil {
		return nil, r.err
	}

	if d.ServiceDescriptionPresent {
		text, err := DecodeText(c)
		if err != nil {
			return nil, err
		}
		d.ServiceDescription = text
	}
	return d, nil
}

// ExtensionTag implements Payload.
func (d *VVCSubpictures) ExtensionTag() uint8 { return ExtensionTagVVCSubpictures }

// ProcessingModeName is the label of the processing_mode code.
func (d *VVCSubpictures) ProcessingModeName() string {
	return ProcessingModeName(d.ProcessingMode)
}

// Fields implements tree.Node.
func (d *VVCSubpictures) Fields() []tree.Field {
	fields := []tree.Field{
		tree.Value("default_service_mode", b2u(d.DefaultServiceMode)),
		tree.Value("service_description_present", b2u(d.ServiceDescriptionPresent)),
		tree.Value("number_of_vvc_subpictures", d.NumberOfSubpictures),
		tree.List("subpictures", "sub_picture", d.Subpictures),
		tree.Value("reserved_zero_future_use", d.Reserved),
		tree.Described("processing_mode", d.ProcessingMode, d.ProcessingModeName()),
	}
	if d.ServiceDescription != nil {
		fields = append(fields, tree.Described("service_description", d.ServiceDescription.Value, d.ServiceDescription.Charset))
	}
	return fields
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
