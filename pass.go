package rendergraph

import "github.com/gogpu/rendergraph/hal"

const (
	maxPasses             = 64
	maxResources          = 256
	maxColorAttachments   = 8
	maxReadBindings       = 16
	maxWriteBindings      = 8
	maxPredecessors       = 16
	maxBarriersPerPass    = 32
)

// PassKind selects the kind of GPU work a pass performs.
type PassKind int

const (
	PassGraphics PassKind = iota
	PassCompute
	PassTransfer
)

// ColorAttachment binds a resource as a pass's color output.
type ColorAttachment struct {
	Resource   ResourceHandle
	LoadOp     hal.LoadOp
	StoreOp    hal.StoreOp
	ClearColor [4]float32
}

// DepthAttachment binds a resource as a pass's depth/stencil output.
type DepthAttachment struct {
	Resource     ResourceHandle
	DepthLoadOp  hal.LoadOp
	DepthStoreOp hal.StoreOp
	ClearDepth   float32
	ClearStencil uint32
	ReadOnly     bool
}

// ResourceBinding describes one shader-visible read or write binding.
type ResourceBinding struct {
	Resource ResourceHandle
	Set      uint32
	Binding  uint32
	Stages   hal.ShaderStageFlags
}

// ExecuteFunc is a pass's execute callback. It is invoked synchronously
// during Graph.Execute and must not retain ctx beyond the call — the
// callback is the only place where backend-specific command recording
// happens (design notes §9).
type ExecuteFunc func(ctx *PassContext)

// Pass is one node in the render graph.
type Pass struct {
	name string
	kind PassKind

	colorAttachments []ColorAttachment
	depthAttachment  *DepthAttachment

	reads  []ResourceBinding
	writes []ResourceBinding

	execute  ExecuteFunc
	userData any

	order  int // filled by the compiler; -1 until compiled
	culled bool

	owner *Graph // set by Graph.AddPass; used to invalidate on mutation
}

// invalidateOwner clears the owning graph's compiled flag, if attached.
// Every mutator of the pass's attachments or bindings calls this: "any
// builder mutation clears that flag" (§4.2.6). SetExecuteCallback and
// SetUserData do not, since they change nothing the compiler derives.
func (p *Pass) invalidateOwner() {
	if p.owner != nil {
		p.owner.Invalidate()
	}
}

// Name returns the pass's declared name.
func (p *Pass) Name() string { return p.name }

// Kind returns the pass's kind.
func (p *Pass) Kind() PassKind { return p.kind }

// Order returns the pass's execution order index after a successful
// compile, or -1 if the graph has not been compiled.
func (p *Pass) Order() int { return p.order }

// Culled reports whether the compiler marked this pass as not
// contributing to any exported resource (§4.2.6). The baseline compiler
// never sets this; it is a well-defined extension point.
func (p *Pass) Culled() bool { return p.culled }

// AddColorAttachment appends a color attachment to the pass. Returns
// false without modifying the pass if the attachment capacity (8) is
// already reached — a capacity overflow the caller should treat as a
// program bug, not a runtime condition (§4.1, §7 CapacityExceeded).
func (p *Pass) AddColorAttachment(a ColorAttachment) bool {
	if len(p.colorAttachments) >= maxColorAttachments {
		return false
	}
	p.colorAttachments = append(p.colorAttachments, a)
	p.invalidateOwner()
	return true
}

// SetDepthAttachment sets the pass's single depth attachment, replacing
// any previous one.
func (p *Pass) SetDepthAttachment(a DepthAttachment) {
	d := a
	p.depthAttachment = &d
	p.invalidateOwner()
}

// AddResourceRead appends a read binding. Returns false without
// modifying the pass if the read capacity (16) is already reached.
func (p *Pass) AddResourceRead(b ResourceBinding) bool {
	if len(p.reads) >= maxReadBindings {
		return false
	}
	p.reads = append(p.reads, b)
	p.invalidateOwner()
	return true
}

// AddResourceWrite appends a write binding (e.g. a storage-buffer write
// outside of attachments). Returns false without modifying the pass if
// the write capacity (8) is already reached.
func (p *Pass) AddResourceWrite(b ResourceBinding) bool {
	if len(p.writes) >= maxWriteBindings {
		return false
	}
	p.writes = append(p.writes, b)
	p.invalidateOwner()
	return true
}

// SetExecuteCallback sets the pass's execute callback.
func (p *Pass) SetExecuteCallback(fn ExecuteFunc) {
	p.execute = fn
}

// SetUserData attaches an opaque value retrievable from the PassContext
// passed to the execute callback.
func (p *Pass) SetUserData(data any) {
	p.userData = data
}

// ColorAttachments returns the pass's color attachments.
func (p *Pass) ColorAttachments() []ColorAttachment { return p.colorAttachments }

// DepthAttachmentRef returns the pass's depth attachment, or nil if none
// is set.
func (p *Pass) DepthAttachmentRef() *DepthAttachment { return p.depthAttachment }

// Reads returns the pass's read bindings.
func (p *Pass) Reads() []ResourceBinding { return p.reads }

// Writes returns the pass's write bindings.
func (p *Pass) Writes() []ResourceBinding { return p.writes }

// writtenHandles returns every resource this pass writes: color
// attachments, a non-read-only depth attachment, and storage writes.
func (p *Pass) writtenHandles() []ResourceHandle {
	out := make([]ResourceHandle, 0, len(p.colorAttachments)+1+len(p.writes))
	for _, c := range p.colorAttachments {
		out = append(out, c.Resource)
	}
	if p.depthAttachment != nil && !p.depthAttachment.ReadOnly {
		out = append(out, p.depthAttachment.Resource)
	}
	for _, w := range p.writes {
		out = append(out, w.Resource)
	}
	return out
}

// readHandles returns every resource this pass reads: sampled reads and a
// read-only depth attachment.
func (p *Pass) readHandles() []ResourceHandle {
	out := make([]ResourceHandle, 0, len(p.reads)+1)
	out = append(out, func() []ResourceHandle {
		rs := make([]ResourceHandle, len(p.reads))
		for i, r := range p.reads {
			rs[i] = r.Resource
		}
		return rs
	}()...)
	if p.depthAttachment != nil && p.depthAttachment.ReadOnly {
		out = append(out, p.depthAttachment.Resource)
	}
	return out
}

// allTouchedHandles returns every resource this pass reads or writes,
// including color/depth attachments regardless of read/write role —
// used by lifetime analysis (§4.2.4), which must expand a resource's
// interval for any appearance in a pass's input or output set.
func (p *Pass) allTouchedHandles() []ResourceHandle {
	var out []ResourceHandle
	for _, c := range p.colorAttachments {
		out = append(out, c.Resource)
	}
	if p.depthAttachment != nil {
		out = append(out, p.depthAttachment.Resource)
	}
	for _, r := range p.reads {
		out = append(out, r.Resource)
	}
	for _, w := range p.writes {
		out = append(out, w.Resource)
	}
	return out
}

// CompiledPass augments a Pass with the data the compiler derives for it.
type CompiledPass struct {
	PassIndex    uint16
	Order        int
	Predecessors []uint16 // earlier compiled-pass indices this pass depends on
	Barriers     []hal.Barrier
}
