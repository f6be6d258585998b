// Package descriptor decodes DVB extension descriptors.
//
// An extension descriptor starts with descriptor_tag 0x7F, descriptor_length
// and descriptor_tag_extension. The tag extension selects the payload
// decoder; payloads this package does not know are kept as raw bytes.
//
// The VVC subpictures descriptor (tag extension 0x23) is decoded in full:
//
//	default_service_mode          1 bit
//	service_description_present   1 bit
//	number_of_vvc_subpictures     6 bits
//	for i < number_of_vvc_subpictures {
//	    component_tag             8 bits, low 6 kept
//	    vvc_subpicture_id         8 bits, low 6 kept
//	}
//	reserved_zero_future_use      5 bits
//	processing_mode               3 bits
//	if service_description_present {
//	    service_description       DVB string
//	}
package descriptor
