// Package hal defines the backend-agnostic resource, barrier, and
// pass-attachment contract shared by every render-graph backend, plus the
// numeric codes each enum maps to on Vulkan-like and Metal-like APIs
// (subpackages hal/vulkan and hal/metal). It binds to no concrete
// graphics API: it only produces integer codes and the barrier data a
// backend translates through them.
package hal

// TextureFormat is a closed enumeration of the pixel formats the render
// graph understands. Each variant carries bytes-per-pixel and depth/
// stencil flags, queried via Info.
type TextureFormat int

const (
	FormatInvalid TextureFormat = iota
	FormatRGBA8Unorm
	FormatRGBA8Srgb
	FormatBGRA8Unorm
	FormatBGRA8Srgb
	FormatRGBA16Float
	FormatRGBA32Float
	FormatRG16Float
	FormatRG32Float
	FormatR16Float
	FormatR32Float
	FormatR8Unorm
	FormatDepth32Float
	FormatDepth24Stencil8
	FormatDepth16Unorm
)

// FormatDesc describes the fixed properties of a TextureFormat.
type FormatDesc struct {
	BytesPerPixel int
	IsDepth       bool
	HasStencil    bool
}

var formatDescs = map[TextureFormat]FormatDesc{
	FormatRGBA8Unorm:      {BytesPerPixel: 4},
	FormatRGBA8Srgb:       {BytesPerPixel: 4},
	FormatBGRA8Unorm:      {BytesPerPixel: 4},
	FormatBGRA8Srgb:       {BytesPerPixel: 4},
	FormatRGBA16Float:     {BytesPerPixel: 8},
	FormatRGBA32Float:     {BytesPerPixel: 16},
	FormatRG16Float:       {BytesPerPixel: 4},
	FormatRG32Float:       {BytesPerPixel: 8},
	FormatR16Float:        {BytesPerPixel: 2},
	FormatR32Float:        {BytesPerPixel: 4},
	FormatR8Unorm:         {BytesPerPixel: 1},
	FormatDepth32Float:    {BytesPerPixel: 4, IsDepth: true},
	FormatDepth24Stencil8: {BytesPerPixel: 4, IsDepth: true, HasStencil: true},
	FormatDepth16Unorm:    {BytesPerPixel: 2, IsDepth: true},
}

// Info returns the fixed properties of f. The zero value is returned for
// an unrecognized format.
func (f TextureFormat) Info() FormatDesc {
	return formatDescs[f]
}

// IsDepthFormat reports whether f is a depth (or depth/stencil) format.
func (f TextureFormat) IsDepthFormat() bool {
	return formatDescs[f].IsDepth
}

// String implements fmt.Stringer for debug output.
func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8Unorm:
		return "rgba8_unorm"
	case FormatRGBA8Srgb:
		return "rgba8_srgb"
	case FormatBGRA8Unorm:
		return "bgra8_unorm"
	case FormatBGRA8Srgb:
		return "bgra8_srgb"
	case FormatRGBA16Float:
		return "rgba16_float"
	case FormatRGBA32Float:
		return "rgba32_float"
	case FormatRG16Float:
		return "rg16_float"
	case FormatRG32Float:
		return "rg32_float"
	case FormatR16Float:
		return "r16_float"
	case FormatR32Float:
		return "r32_float"
	case FormatR8Unorm:
		return "r8_unorm"
	case FormatDepth32Float:
		return "depth32_float"
	case FormatDepth24Stencil8:
		return "depth24_stencil8"
	case FormatDepth16Unorm:
		return "depth16_unorm"
	default:
		return "invalid"
	}
}
