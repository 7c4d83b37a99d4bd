// Package vulkan provides the Vulkan-like numeric mapping for the render
// graph's backend-agnostic hal types.
//
// Mirrors the lookup-table idiom of wgpu's hal/vulkan/convert.go
// (textureFormatMap): formats, image layouts, access flags and shader
// stages are translated through maps, matching how that package's table
// grows as formats are added; the small LoadOp, StoreOp and PipelineStage
// enums use switches.
// No Vulkan headers or cgo bindings are imported — these are the
// documented numeric codes from the external contract (spec §6), not a
// working Vulkan binding.
package vulkan

import "github.com/gogpu/rendergraph/hal"

// Format maps a hal.TextureFormat to its Vulkan VkFormat numeric code.
// Unrecognized formats map to 0 (VK_FORMAT_UNDEFINED).
func Format(f hal.TextureFormat) int {
	return formatCodes[f]
}

var formatCodes = map[hal.TextureFormat]int{
	hal.FormatRGBA8Unorm:      37,
	hal.FormatRGBA8Srgb:       43,
	hal.FormatBGRA8Unorm:      44,
	hal.FormatBGRA8Srgb:       50,
	hal.FormatRGBA16Float:     97,
	hal.FormatRGBA32Float:     109,
	hal.FormatRG16Float:       83,
	hal.FormatRG32Float:       103,
	hal.FormatR16Float:        76,
	hal.FormatR32Float:        100,
	hal.FormatR8Unorm:         9,
	hal.FormatDepth32Float:    126,
	hal.FormatDepth24Stencil8: 129,
	hal.FormatDepth16Unorm:    124,
}

// LoadOp maps a hal.LoadOp to its VkAttachmentLoadOp numeric code.
func LoadOp(op hal.LoadOp) int {
	switch op {
	case hal.LoadOpLoad:
		return 0
	case hal.LoadOpClear:
		return 1
	case hal.LoadOpDontCare:
		return 2
	default:
		return 2
	}
}

// StoreOp maps a hal.StoreOp to its VkAttachmentStoreOp numeric code.
func StoreOp(op hal.StoreOp) int {
	switch op {
	case hal.StoreOpStore:
		return 0
	case hal.StoreOpDontCare:
		return 1
	default:
		return 1
	}
}

// imageLayoutCodes maps hal.ImageLayout to VkImageLayout numeric codes.
var imageLayoutCodes = map[hal.ImageLayout]int{
	hal.LayoutUndefined:              0,
	hal.LayoutGeneral:                1,
	hal.LayoutColorAttachment:        2,
	hal.LayoutDepthStencilAttachment: 3,
	hal.LayoutDepthStencilReadOnly:   4,
	hal.LayoutShaderReadOnly:         5,
	hal.LayoutTransferSrc:            6,
	hal.LayoutTransferDst:            7,
	hal.LayoutPresentSrc:             1000001002,
}

// ImageLayout maps a hal.ImageLayout to its VkImageLayout numeric code.
func ImageLayout(l hal.ImageLayout) int {
	return imageLayoutCodes[l]
}

// accessFlagBits maps each individual hal.AccessFlags bit to its
// VkAccessFlagBits numeric value.
var accessFlagBits = map[hal.AccessFlags]int{
	hal.AccessVertexRead:           0x00000001,
	hal.AccessIndexRead:            0x00000002,
	hal.AccessUniformRead:          0x00000008,
	hal.AccessShaderRead:           0x00000020,
	hal.AccessShaderWrite:          0x00000040,
	hal.AccessColorAttachmentRead:  0x00000080,
	hal.AccessColorAttachmentWrite: 0x00000100,
	hal.AccessDepthRead:            0x00000200,
	hal.AccessDepthWrite:           0x00000400,
	hal.AccessTransferRead:         0x00000800,
	hal.AccessTransferWrite:        0x00001000,
}

// AccessFlags translates a hal.AccessFlags bitset into the equivalent
// VkAccessFlags bitmask, OR-ing together the code for every bit set.
func AccessFlags(flags hal.AccessFlags) int {
	var out int
	for bit, code := range accessFlagBits {
		if flags&bit != 0 {
			out |= code
		}
	}
	return out
}

// shaderStageBits maps each hal.ShaderStageFlags bit to its
// VkShaderStageFlagBits numeric value.
var shaderStageBits = map[hal.ShaderStageFlags]int{
	hal.ShaderStageVertex:      0x00000001,
	hal.ShaderStageFragment:    0x00000010,
	hal.ShaderStageCompute:     0x00000020,
	hal.ShaderStageGeometry:    0x00000008,
	hal.ShaderStageTessControl: 0x00000002,
	hal.ShaderStageTessEval:    0x00000004,
}

// ShaderStage translates a hal.ShaderStageFlags bitset into the
// equivalent VkShaderStageFlags bitmask.
func ShaderStage(flags hal.ShaderStageFlags) int {
	var out int
	for bit, code := range shaderStageBits {
		if flags&bit != 0 {
			out |= code
		}
	}
	return out
}

// PipelineStage maps a hal.PipelineStage to its VkPipelineStageFlagBits
// numeric code.
func PipelineStage(s hal.PipelineStage) int {
	switch s {
	case hal.StageTopOfPipe:
		return 0x00000001
	case hal.StageTransfer:
		return 0x00001000
	case hal.StageEarlyFragmentTests:
		return 0x00000100
	case hal.StageColorAttachmentOutput:
		return 0x00000400
	case hal.StageFragmentShader:
		return 0x00000080
	default:
		return 0x00000001
	}
}
