package rendergraph

import "github.com/gogpu/rendergraph/hal"

// maxResourceNameLen is the fixed capacity for a resource's name, mirroring
// the spec's "fixed-capacity, null-terminated, <= 63 bytes" requirement.
const maxResourceNameLen = 63

// ResourceKind identifies which of the seven resource shapes a slot holds.
type ResourceKind int

const (
	ResourceTexture2D ResourceKind = iota
	ResourceTextureCube
	ResourceDepthBuffer
	ResourceUniformBuffer
	ResourceStorageBuffer
	ResourceVertexBuffer
	ResourceIndexBuffer
)

// ResourceUsage is a bitset of the ways a resource may be bound.
type ResourceUsage uint32

const (
	UsageColorAttachment ResourceUsage = 1 << iota
	UsageDepthAttachment
	UsageSampled
	UsageStorage
	UsageTransferSrc
	UsageTransferDst

	// UsageRenderTarget is the preset for a color attachment that is also
	// sampled by a later pass (e.g. main_color feeding post_process).
	UsageRenderTarget = UsageColorAttachment | UsageSampled
	// UsageDepthTargetSampled is the preset for a depth attachment that is
	// also sampled (e.g. a shadow map).
	UsageDepthTargetSampled = UsageDepthAttachment | UsageSampled
)

// Has reports whether every bit in want is set in u.
func (u ResourceUsage) Has(want ResourceUsage) bool {
	return u&want == want
}

// ResourceDescriptor fully describes a resource at creation time.
type ResourceDescriptor struct {
	Kind          ResourceKind
	Width         uint32
	Height        uint32
	Depth         uint32 // array layers for textures, 1 for buffers
	Format        hal.TextureFormat
	Usage         ResourceUsage
	MipLevels     uint32
	SampleCount   uint32
	Size          uint64 // byte size, buffers only
	IsTransient   bool
}

// backendPayload is the sum-type slot for realized GPU state. Exactly one
// of the two union members is populated once the backend realizes the
// resource; the core never inspects either. See design notes §9 "Union
// resource payload."
type backendPayload struct {
	vulkan *vulkanPayload
	metal  *metalPayload
}

// vulkanPayload holds whatever a Vulkan-like backend needs to remember
// about a realized resource (opaque to the core).
type vulkanPayload struct {
	Image  uint64
	View   uint64
	Memory uint64
}

// metalPayload holds whatever a Metal-like backend needs to remember
// about a realized resource (opaque to the core).
type metalPayload struct {
	Texture uint64
	Buffer  uint64
}

// SetVulkanPayload stores backend-realized Vulkan state for this resource.
// Calling this clears any previously-set Metal payload: a single build
// never mixes backends (design notes §9).
func (r *Resource) SetVulkanPayload(image, view, memory uint64) {
	r.payload = backendPayload{vulkan: &vulkanPayload{Image: image, View: view, Memory: memory}}
}

// SetMetalPayload stores backend-realized Metal state for this resource.
func (r *Resource) SetMetalPayload(texture, buffer uint64) {
	r.payload = backendPayload{metal: &metalPayload{Texture: texture, Buffer: buffer}}
}

// VulkanPayload returns the stored Vulkan payload, if any.
func (r *Resource) VulkanPayload() (image, view, memory uint64, ok bool) {
	if r.payload.vulkan == nil {
		return 0, 0, 0, false
	}
	p := r.payload.vulkan
	return p.Image, p.View, p.Memory, true
}

// MetalPayload returns the stored Metal payload, if any.
func (r *Resource) MetalPayload() (texture, buffer uint64, ok bool) {
	if r.payload.metal == nil {
		return 0, 0, false
	}
	p := r.payload.metal
	return p.Texture, p.Buffer, true
}

// Resource is one slot in the graph's resource table.
type Resource struct {
	name       string
	desc       ResourceDescriptor
	generation uint16
	isValid    bool
	isImported bool
	isExported bool

	firstUsePass int // filled by the compiler; -1 until set
	lastUsePass  int

	payload backendPayload
}

// Name returns the resource's declared name.
func (r *Resource) Name() string { return r.name }

// Descriptor returns the resource's descriptor.
func (r *Resource) Descriptor() ResourceDescriptor { return r.desc }

// IsImported reports whether the resource is externally owned (e.g. the
// swapchain backbuffer): never aliased, never destroyed by the graph.
func (r *Resource) IsImported() bool { return r.isImported }

// IsExported reports whether the resource must outlive graph execution.
func (r *Resource) IsExported() bool { return r.isExported }

// IsTransient reports whether the resource is eligible for memory
// aliasing. Imported resources are never transient regardless of their
// descriptor (§4.2.4).
func (r *Resource) IsTransient() bool {
	return r.desc.IsTransient && !r.isImported
}

// Lifetime returns the resource's [firstUsePass, lastUsePass] interval, as
// computed by the most recent successful compile. Before any compile both
// values are -1.
func (r *Resource) Lifetime() (first, last int) {
	return r.firstUsePass, r.lastUsePass
}
