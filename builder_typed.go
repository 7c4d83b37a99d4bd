package rendergraph

import (
	"context"

	"github.com/gogpu/rendergraph/hal"
)

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// CreateTexture2D creates a 2D texture resource.
func (g *Graph) CreateTexture2D(name string, width, height uint32, format hal.TextureFormat, usage ResourceUsage, mipLevels uint32) ResourceHandle {
	return g.CreateResource(name, ResourceDescriptor{
		Kind:      ResourceTexture2D,
		Width:     width,
		Height:    height,
		Depth:     1,
		Format:    format,
		Usage:     usage,
		MipLevels: maxU32(mipLevels, 1),
	})
}

// CreateTextureCube creates a cube texture resource (6 array layers).
func (g *Graph) CreateTextureCube(name string, size uint32, format hal.TextureFormat, usage ResourceUsage, mipLevels uint32) ResourceHandle {
	return g.CreateResource(name, ResourceDescriptor{
		Kind:      ResourceTextureCube,
		Width:     size,
		Height:    size,
		Depth:     6,
		Format:    format,
		Usage:     usage,
		MipLevels: maxU32(mipLevels, 1),
	})
}

// CreateDepthBuffer creates a depth (or depth/stencil) attachment
// resource. The format must be one of the hal depth formats; usage
// always includes UsageDepthAttachment.
func (g *Graph) CreateDepthBuffer(name string, width, height uint32, format hal.TextureFormat, sampled bool) ResourceHandle {
	usage := ResourceUsage(UsageDepthAttachment)
	if sampled {
		usage = UsageDepthTargetSampled
	}
	return g.CreateResource(name, ResourceDescriptor{
		Kind:        ResourceDepthBuffer,
		Width:       width,
		Height:      height,
		Depth:       1,
		Format:      format,
		Usage:       usage,
		MipLevels:   1,
		SampleCount: 1,
	})
}

func (g *Graph) createBuffer(name string, kind ResourceKind, size uint64, usage ResourceUsage, transient bool) ResourceHandle {
	return g.CreateResource(name, ResourceDescriptor{
		Kind:        kind,
		Depth:       1,
		Size:        size,
		Usage:       usage,
		IsTransient: transient,
	})
}

// CreateBufferUniform creates a uniform-buffer resource.
func (g *Graph) CreateBufferUniform(name string, size uint64, transient bool) ResourceHandle {
	return g.createBuffer(name, ResourceUniformBuffer, size, 0, transient)
}

// CreateBufferStorage creates a storage-buffer resource.
func (g *Graph) CreateBufferStorage(name string, size uint64, transient bool) ResourceHandle {
	return g.createBuffer(name, ResourceStorageBuffer, size, UsageStorage, transient)
}

// CreateBufferVertex creates a vertex-buffer resource.
func (g *Graph) CreateBufferVertex(name string, size uint64, transient bool) ResourceHandle {
	return g.createBuffer(name, ResourceVertexBuffer, size, 0, transient)
}

// CreateBufferIndex creates an index-buffer resource.
func (g *Graph) CreateBufferIndex(name string, size uint64, transient bool) ResourceHandle {
	return g.createBuffer(name, ResourceIndexBuffer, size, 0, transient)
}

// AddPass appends a pass to the graph and returns its handle. Returns
// InvalidPassHandle without modifying the graph if the pass table (64
// slots) is already full. Adding a pass invalidates any prior compile.
func (g *Graph) AddPass(name string, kind PassKind) PassHandle {
	if len(g.passes) >= maxPasses {
		g.logger.Log(context.Background(), hal.LevelCapacity,
			"rendergraph: pass table full", "name", name, "capacity", maxPasses)
		return InvalidPassHandle
	}
	idx := uint16(len(g.passes))
	g.passes = append(g.passes, Pass{
		name:  name,
		kind:  kind,
		order: -1,
		owner: g,
	})
	h := PassHandle{index: idx, valid: true}
	g.passNames[name] = h
	g.Invalidate()
	return h
}
