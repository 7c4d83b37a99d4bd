package rendergraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/internal/core"
)

// defaultLogger returns hal.Logger(), the package-level atomic logger
// shared by the render graph and its backend mapping packages. It is
// silent (nopHandler, Enabled() always false) until the application calls
// hal.SetLogger — genuinely zero-cost, not merely discarded output.
func defaultLogger() *slog.Logger {
	return hal.Logger()
}

// Graph owns the fixed-capacity pass and resource tables and exposes the
// declarative building API (§4.1). A Graph is built once (or after a
// change), compiled once (or after invalidation), and executed every
// frame; see Compile and Execute.
//
// Graph is not safe for concurrent use: the render graph's main state is
// single-threaded by contract (§5) — exactly one frame thread builds,
// compiles, and executes it.
type Graph struct {
	resources *core.Storage[Resource]
	passes    []Pass

	resourceNames map[string]ResourceHandle
	passNames     map[string]PassHandle

	backbuffer    ResourceHandle
	hasBackbuffer bool

	compiled       bool
	compiledPasses []CompiledPass
	order          []uint16 // execution order -> declaration index, filled by Compile
	frameIndex     uint32

	logger *slog.Logger
}

// GraphConfig configures a new Graph. The zero value is valid and uses
// hal.Logger(), the package's shared (silent-by-default) logger.
type GraphConfig struct {
	// Logger, if non-nil, receives structured diagnostics for barrier
	// generation and capacity-exceeded conditions, overriding
	// hal.Logger() for this graph only. Most callers should configure
	// logging once via hal.SetLogger instead of setting this per graph.
	Logger *slog.Logger
}

// NewGraph creates an empty Graph ready for building.
func NewGraph(cfg GraphConfig) *Graph {
	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	return &Graph{
		resources:     core.NewStorage[Resource](maxResources),
		passes:        make([]Pass, 0, maxPasses),
		resourceNames: make(map[string]ResourceHandle),
		passNames:     make(map[string]PassHandle),
		logger:        logger,
	}
}

func toResourceHandle(raw core.RawHandle, ok bool) ResourceHandle {
	if !ok {
		return InvalidResourceHandle
	}
	idx, gen := raw.Unzip()
	return ResourceHandle{index: idx, generation: gen}
}

func (h ResourceHandle) raw() core.RawHandle {
	return core.Zip(h.index, h.generation)
}

// CreateResource allocates a resource slot, records its descriptor under
// name (case-sensitive), and returns its handle. Returns
// InvalidResourceHandle if the resource table (256 slots) is full.
// Creating a resource invalidates any prior compile.
func (g *Graph) CreateResource(name string, desc ResourceDescriptor) ResourceHandle {
	if len(name) > maxResourceNameLen {
		name = name[:maxResourceNameLen]
	}
	r := Resource{
		name:         name,
		desc:         desc,
		isValid:      true,
		firstUsePass: -1,
		lastUsePass:  -1,
	}
	raw, ok := g.resources.Alloc(r)
	if !ok {
		g.logger.Log(context.Background(), hal.LevelCapacity,
			"rendergraph: resource table full", "name", name, "capacity", maxResources)
		return InvalidResourceHandle
	}
	h := toResourceHandle(raw, true)
	if res, ok := g.resources.Get(raw); ok {
		res.generation = h.generation
	}
	g.resourceNames[name] = h
	g.Invalidate()
	return h
}

// ImportBackbuffer creates a single distinguished resource marked
// imported AND exported, with IsTransient always false. The graph stores
// its handle for later lookup via Backbuffer.
func (g *Graph) ImportBackbuffer(name string, width, height uint32, format hal.TextureFormat) ResourceHandle {
	h := g.CreateResource(name, ResourceDescriptor{
		Kind:   ResourceTexture2D,
		Width:  width,
		Height: height,
		Depth:  1,
		Format: format,
		Usage:  UsageColorAttachment,
	})
	if !h.IsValid() {
		return h
	}
	if res, ok := g.resources.Get(h.raw()); ok {
		res.isImported = true
		res.isExported = true
		res.desc.IsTransient = false
	}
	g.backbuffer = h
	g.hasBackbuffer = true
	return h
}

// Backbuffer returns the handle registered by ImportBackbuffer, if any.
func (g *Graph) Backbuffer() (ResourceHandle, bool) {
	return g.backbuffer, g.hasBackbuffer
}

// GetResourceByName looks up a resource's handle by its declared name.
// An unknown name yields InvalidResourceHandle and ok=false.
func (g *Graph) GetResourceByName(name string) (ResourceHandle, bool) {
	h, ok := g.resourceNames[name]
	if !ok {
		return InvalidResourceHandle, false
	}
	return h, true
}

// GetPassByName looks up a pass's handle by its declared name.
func (g *Graph) GetPassByName(name string) (PassHandle, bool) {
	h, ok := g.passNames[name]
	return h, ok
}

// GetResourceEntry returns the resource slot for h, following the
// handle-validation contract (§4.1): the slot must exist, be valid, and
// its generation must match h's. Any other case returns ok=false —
// never a panic.
func (g *Graph) GetResourceEntry(h ResourceHandle) (*Resource, bool) {
	if !h.IsValid() {
		return nil, false
	}
	return g.resources.Get(h.raw())
}

// PassByHandle returns the pass for h, or nil if h does not refer to a
// declared pass in this graph. The pass table is allocated at its full
// 64-slot capacity, so AddPass never moves it; after Reset, the pointer
// refers to whichever pass is later declared at the same index.
func (g *Graph) PassByHandle(h PassHandle) *Pass {
	if !h.IsValid() || int(h.index) >= len(g.passes) {
		return nil
	}
	return &g.passes[h.index]
}

// Invalidate clears the compiled flag without touching any pass or
// resource data. Any builder mutation (CreateResource, AddPass, and the
// Pass-level attachment and binding mutators) calls this implicitly;
// SetExecuteCallback and SetUserData do not.
func (g *Graph) Invalidate() {
	g.compiled = false
	g.compiledPasses = nil
	g.order = nil
}

// IsCompiled reports whether the graph currently holds a valid compiled
// order.
func (g *Graph) IsCompiled() bool {
	return g.compiled
}

// Reset marks every resource slot invalid (preserving generation
// counters, so any still-held handle fails validation) and clears the
// pass table and compiled state. The graph can be rebuilt from scratch
// after Reset.
func (g *Graph) Reset() {
	g.resources.Reset()
	g.passes = g.passes[:0]
	g.resourceNames = make(map[string]ResourceHandle)
	g.passNames = make(map[string]PassHandle)
	g.hasBackbuffer = false
	g.backbuffer = InvalidResourceHandle
	g.Invalidate()
}

// DebugPrint writes a human-readable dump of the graph's passes and
// resources to w: each pass's compiled order (-1 before any compile),
// each resource's lifetime, and, when the graph is compiled, the number
// of compiled passes. Barrier lists are not printed.
func (g *Graph) DebugPrint(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "pass\tkind\torder\tculled\tcolor\tdepth\treads\twrites\n")
	for i := range g.passes {
		p := &g.passes[i]
		depth := "-"
		if p.depthAttachment != nil {
			depth = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%d\t%s\t%d\t%d\n",
			p.name, p.kind, p.order, p.culled, len(p.colorAttachments), depth, len(p.reads), len(p.writes))
	}
	fmt.Fprintf(tw, "\nresource\tkind\tformat\tw\th\timported\texported\ttransient\tfirst\tlast\n")
	g.resources.ForEach(func(_ core.Index, _ core.Generation, r *Resource) bool {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%v\t%v\t%v\t%d\t%d\n",
			r.name, r.desc.Kind, r.desc.Format, r.desc.Width, r.desc.Height,
			r.isImported, r.isExported, r.IsTransient(), r.firstUsePass, r.lastUsePass)
		return true
	})
	if g.compiled {
		fmt.Fprintf(tw, "\ncompiled: true, passes=%d\n", len(g.compiledPasses))
	} else {
		fmt.Fprintf(tw, "\ncompiled: false\n")
	}
}
