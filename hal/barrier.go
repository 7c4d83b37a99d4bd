package hal

// LoadOp selects what happens to an attachment's contents at the start of
// a pass.
type LoadOp int

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp selects what happens to an attachment's contents at the end of
// a pass.
type StoreOp int

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// ShaderStageFlags is a bitset of shader stages a binding is visible to.
type ShaderStageFlags uint32

const (
	ShaderStageVertex ShaderStageFlags = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
	ShaderStageGeometry
	ShaderStageTessControl
	ShaderStageTessEval
)

// ImageLayout is the abstract state a GPU image is in, determining which
// operations may act on it. Metal has no first-class layout concept — its
// backend mapping is documented as a no-op translation (see hal/metal).
type ImageLayout int

const (
	LayoutUndefined ImageLayout = iota
	LayoutGeneral
	LayoutColorAttachment
	LayoutDepthStencilAttachment
	LayoutDepthStencilReadOnly
	LayoutShaderReadOnly
	LayoutTransferSrc
	LayoutTransferDst
	LayoutPresentSrc
)

// AccessFlags is a bitset of the memory-access kinds a pass performs
// against a resource, used to compute barrier src/dst access masks.
type AccessFlags uint32

const (
	AccessVertexRead AccessFlags = 1 << iota
	AccessIndexRead
	AccessUniformRead
	AccessShaderRead
	AccessShaderWrite
	AccessColorAttachmentRead
	AccessColorAttachmentWrite
	AccessDepthRead
	AccessDepthWrite
	AccessTransferRead
	AccessTransferWrite
	AccessNone AccessFlags = 0
)

// PipelineStage is the coarse pipeline stage a given AccessFlags set maps
// to, used to build stage masks for barrier commands.
type PipelineStage int

const (
	StageTopOfPipe PipelineStage = iota
	StageTransfer
	StageEarlyFragmentTests
	StageColorAttachmentOutput
	StageFragmentShader
)

// StageFor derives the pipeline stage a set of access flags belongs to,
// following the §4.2.5 precedence: shader reads map to the fragment
// stage, color access to color-attachment-output, depth access to
// early-fragment-tests, transfer access to the transfer stage, and an
// empty mask to top-of-pipe.
func StageFor(access AccessFlags) PipelineStage {
	switch {
	case access&(AccessShaderRead|AccessUniformRead) != 0:
		return StageFragmentShader
	case access&(AccessColorAttachmentRead|AccessColorAttachmentWrite) != 0:
		return StageColorAttachmentOutput
	case access&(AccessDepthRead|AccessDepthWrite) != 0:
		return StageEarlyFragmentTests
	case access&(AccessTransferRead|AccessTransferWrite) != 0:
		return StageTransfer
	default:
		return StageTopOfPipe
	}
}

// Barrier is a declarative synchronization step transitioning a resource
// from one (layout, access) state to another between two passes.
// ResourceIndex is the owning graph's resource slot index, not a full
// generation-checked handle — barriers are transient, compiler-internal
// data recomputed on every Compile.
type Barrier struct {
	ResourceIndex uint16
	SrcAccess     AccessFlags
	DstAccess     AccessFlags
	SrcLayout     ImageLayout
	DstLayout     ImageLayout
}

// SrcStage and DstStage return the pipeline stages a backend should wait
// on / signal for this barrier.
func (b Barrier) SrcStage() PipelineStage { return StageFor(b.SrcAccess) }
func (b Barrier) DstStage() PipelineStage { return StageFor(b.DstAccess) }
