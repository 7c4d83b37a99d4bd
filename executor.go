package rendergraph

// PassContext is threaded through a pass's execute callback (§4.3). It
// carries everything the callback needs to record backend commands: the
// owning graph and pass (for resource lookups), frame bookkeeping, the
// pass's user data, and the two opaque backend contexts the executor
// itself never inspects.
type PassContext struct {
	Graph     *Graph
	Pass      *Pass
	FrameIndex uint32
	DeltaTime float64

	UserData any

	// CmdContext is the backend's command-recording handle (e.g. a
	// command buffer or encoder). Opaque to the core.
	CmdContext any
	// RendererContext is whatever else the caller's renderer threads
	// through every pass (camera data, global bind groups, ...). Opaque
	// to the core.
	RendererContext any
}

// ExecStats accumulates per-frame bookkeeping reset at the start of every
// Execute call.
type ExecStats struct {
	PassesExecuted  int
	PassesCulled    int
	BarriersInserted int
}

// Execute drives one frame of a compiled graph (§4.3). It fails with
// ErrNotCompiled if the graph has no successful compile. On success it
// invokes each non-culled pass's execute callback, in compiled order,
// and advances the internal frame counter (wrapping at 32 bits).
//
// Execute issues no barriers and binds no attachments itself — it only
// threads the compiled barrier list and the two opaque contexts through
// to each pass callback, which is the sole place backend command
// recording happens (§4.3).
func (g *Graph) Execute(deltaTime float64, cmdContext, rendererContext any) (ExecStats, error) {
	if !g.compiled {
		return ExecStats{}, ErrNotCompiled
	}

	var stats ExecStats
	for _, cp := range g.compiledPasses {
		pass := &g.passes[cp.PassIndex]
		if pass.culled {
			stats.PassesCulled++
			continue
		}

		stats.BarriersInserted += len(cp.Barriers)
		stats.PassesExecuted++

		if pass.execute == nil {
			continue
		}
		pass.execute(&PassContext{
			Graph:           g,
			Pass:            pass,
			FrameIndex:      g.frameIndex,
			DeltaTime:       deltaTime,
			UserData:        pass.userData,
			CmdContext:      cmdContext,
			RendererContext: rendererContext,
		})
	}

	g.frameIndex++
	return stats, nil
}

// FrameIndex returns the frame counter Execute will use on its next call.
func (g *Graph) FrameIndex() uint32 {
	return g.frameIndex
}

// CompiledPassAt returns the compiled pass at execution-order position
// order, or nil if order is out of range or the graph is not compiled.
// Intended for backends that want to issue barriers themselves rather
// than rely on Execute's accounting alone.
func (g *Graph) CompiledPassAt(order int) *CompiledPass {
	if order < 0 || order >= len(g.compiledPasses) {
		return nil
	}
	return &g.compiledPasses[order]
}
