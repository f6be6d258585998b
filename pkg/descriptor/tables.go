package descriptor

import "github.com/ssargent/bitspect/pkg/lookup"

// Descriptor tags handled by this package.
const (
	TagExtension = 0x7F
)

// Extension descriptor tags
// Table 109 of ETSI EN 300 468 and DVB BlueBook A038r16
const (
	ExtensionTagSupplementaryAudio uint8 = 0x06
	ExtensionTagVVCSubpictures     uint8 = 0x23
)

const reservedForFutureUse = "reserved for future use"

var extensionTags = lookup.New[uint8]("extension_descriptor_tag", reservedForFutureUse, map[uint8]string{
	0x00: "image_icon_descriptor",
	0x01: "cpcm_delivery_signalling_descriptor",
	0x02: "CP_descriptor",
	0x03: "CP_identifier_descriptor",
	0x04: "T2_delivery_system_descriptor",
	0x05: "SH_delivery_system_descriptor",
	0x06: "supplementary_audio_descriptor",
	0x07: "network_change_notify_descriptor",
	0x08: "message_descriptor",
	0x09: "target_region_descriptor",
	0x0A: "target_region_name_descriptor",
	0x0B: "service_relocated_descriptor",
	0x0C: "XAIT_PID_descriptor",
	0x0D: "C2_delivery_system_descriptor",
	0x0E: "DTS-HD_audio_stream_descriptor",
	0x0F: "DTS_Neural_descriptor",
	0x10: "video_depth_range_descriptor",
	0x11: "T2MI_descriptor",
	0x13: "URI_linkage_descriptor",
	0x14: "CI_ancillary_data_descriptor",
	0x15: "AC-4_descriptor",
	0x16: "C2_bundle_delivery_system_descriptor",
	0x17: "S2X_satellite_delivery_system_descriptor",
	0x18: "protection_message_descriptor",
	0x19: "audio_preselection_descriptor",
	0x20: "TTML_subtitling_descriptor",
	0x21: "DTS-UHD_descriptor",
	0x22: "service_prominence_descriptor",
	0x23: "vvc_subpictures_descriptor",
	0x24: "S2Xv2_satellite_delivery_system_descriptor",
})

// 6.4.17 VVC subpictures descriptor, processing_mode
var processingModes = lookup.New[uint8]("vvc_processing_mode", reservedForFutureUse, map[uint8]string{
	0b000: "processing mode undefined",
	0b001: "no bitstream processing necessary",
	0b010: "merging of VVC subpictures into one bitstream necessary",
	0b011: reservedForFutureUse,
	0b100: "extraction of VVC subpictures from a bitstream necessary",
	0b101: reservedForFutureUse,
	0b110: "extraction and merging (replacement) of VVC subpictures necessary",
	0b111: reservedForFutureUse,
})

// ExtensionTagName returns the name of a descriptor_tag_extension value.
func ExtensionTagName(tag uint8) string {
	return extensionTags.Get(tag)
}

// ProcessingModeName returns the label of a 3-bit processing_mode code.
func ProcessingModeName(mode uint8) string {
	return processingModes.Get(mode)
}

// Tables lists the lookup tables of this package.
func Tables() []lookup.Lister {
	return []lookup.Lister{extensionTags, processingModes}
}
