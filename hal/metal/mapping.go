// Package metal provides the Metal-like numeric mapping for the render
// graph's backend-agnostic hal types.
//
// Mirrors the switch-statement idiom of wgpu's hal/metal/conv.go
// (textureFormatToMTL): unlike the Vulkan mapping, Metal pixel formats are
// translated with an exhaustive switch rather than a table, matching that
// package's style. No Metal/Cocoa bindings are imported — these are the
// documented numeric codes from the external contract (spec §6).
package metal

import "github.com/gogpu/rendergraph/hal"

// Format maps a hal.TextureFormat to its MTLPixelFormat numeric code.
// Unrecognized formats map to 0 (MTLPixelFormatInvalid).
func Format(f hal.TextureFormat) int {
	switch f {
	case hal.FormatRGBA8Unorm:
		return 70
	case hal.FormatRGBA8Srgb:
		return 71
	case hal.FormatBGRA8Unorm:
		return 80
	case hal.FormatBGRA8Srgb:
		return 81
	case hal.FormatRGBA16Float:
		return 115
	case hal.FormatRGBA32Float:
		return 125
	case hal.FormatRG16Float:
		return 105
	case hal.FormatRG32Float:
		return 112
	case hal.FormatR16Float:
		return 98
	case hal.FormatR32Float:
		return 55
	case hal.FormatR8Unorm:
		return 10
	case hal.FormatDepth32Float:
		return 252
	case hal.FormatDepth24Stencil8:
		return 255
	case hal.FormatDepth16Unorm:
		return 250
	default:
		return 0
	}
}

// LoadOp maps a hal.LoadOp to its MTLLoadAction numeric code.
func LoadOp(op hal.LoadOp) int {
	switch op {
	case hal.LoadOpLoad:
		return 2
	case hal.LoadOpClear:
		return 1
	case hal.LoadOpDontCare:
		return 0
	default:
		return 0
	}
}

// StoreOp maps a hal.StoreOp to its MTLStoreAction numeric code.
func StoreOp(op hal.StoreOp) int {
	switch op {
	case hal.StoreOpStore:
		return 1
	case hal.StoreOpDontCare:
		return 0
	default:
		return 0
	}
}

// ImageLayout has no Metal equivalent: Metal drives attachment state
// through load/store actions rather than explicit layout transitions.
// The compiler still emits the barrier (§4.2.5, §6) so that a Vulkan
// backend sees a complete transition sequence; a Metal backend consumes
// this mapping only to discover that the resulting transition is a
// no-op and may skip emitting any command for it.
func ImageLayout(hal.ImageLayout) (code int, applicable bool) {
	return 0, false
}

// AccessFlags has no direct Metal equivalent — Metal resource hazards are
// tracked automatically by MTLCommandBuffer/MTLHeap. The mapping always
// reports not-applicable, mirroring ImageLayout above.
func AccessFlags(hal.AccessFlags) (code int, applicable bool) {
	return 0, false
}

// ShaderStage maps a hal.ShaderStageFlags bitset to the equivalent
// MTLRenderStages-style bitmask. Metal has no geometry or tessellation
// stages; those bits are dropped.
func ShaderStage(flags hal.ShaderStageFlags) int {
	var out int
	if flags&hal.ShaderStageVertex != 0 {
		out |= 1 << 0
	}
	if flags&hal.ShaderStageFragment != 0 {
		out |= 1 << 1
	}
	if flags&hal.ShaderStageCompute != 0 {
		out |= 1 << 2
	}
	return out
}
