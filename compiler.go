package rendergraph

import (
	"context"
	"math"

	"github.com/gogpu/rendergraph/hal"
	"github.com/gogpu/rendergraph/internal/core"
)

// Compile transforms the declarative graph into an executable order with
// synchronization, running the phases of §4.2 in order and aborting on
// the first error. A failing Compile changes no compiled state. Every
// builder mutation already clears the compiled state (see Invalidate), so
// a graph whose edit introduced a cycle stays uncompiled, and Execute
// returns ErrNotCompiled until a later Compile succeeds.
func (g *Graph) Compile() error {
	n := len(g.passes)
	if n == 0 {
		g.compiled = true
		g.compiledPasses = nil
		g.order = nil
		return nil
	}

	writersOf := g.writersByResource()

	adjacency, dependents, inDegree, err := g.buildDependencyGraph(writersOf)
	if err != nil {
		return err
	}

	if err := detectCycles(adjacency, n); err != nil {
		return err
	}

	order, passOrder, err := topoSort(dependents, inDegree, n)
	if err != nil {
		return err
	}

	g.runLifetimeAnalysis(order)

	compiled := g.generateBarriers(order, passOrder, adjacency)

	g.logger.Log(context.Background(), hal.LevelBarrier, "rendergraph: compiled",
		"passes", n, "order", order)

	// Only now, after every phase has succeeded, mutate the graph's
	// public compiled state (§7: "not mutating the compiled state until
	// every phase of compile succeeds").
	for i, declIdx := range order {
		g.passes[declIdx].order = i
	}
	g.compiledPasses = compiled
	g.order = toUint16Slice(order)
	g.compiled = true
	return nil
}

// writersByResource maps each resource slot index to the declaration-order
// list of passes that write it — an "ordered equivalence class," per
// §4.2.1, so that no writer is silently dropped when a resource has more
// than one.
func (g *Graph) writersByResource() map[uint16][]int {
	writers := make(map[uint16][]int)
	for i := range g.passes {
		for _, h := range g.passes[i].writtenHandles() {
			if !h.IsValid() {
				continue
			}
			writers[h.index] = append(writers[h.index], i)
		}
	}
	return writers
}

// buildDependencyGraph implements §4.2.1. adjacency[p][w] is true iff
// pass p depends on pass w; dependents[w] lists, in ascending pass-index
// order, every pass that depends on w.
func (g *Graph) buildDependencyGraph(writersOf map[uint16][]int) (adjacency [][]bool, dependents [][]int, inDegree []int, err error) {
	n := len(g.passes)
	adjacency = make([][]bool, n)
	for i := range adjacency {
		adjacency[i] = make([]bool, n)
	}
	dependents = make([][]int, n)
	inDegree = make([]int, n)

	for p := range g.passes {
		for _, h := range g.passes[p].readHandles() {
			if !h.IsValid() {
				continue
			}
			for _, w := range writersOf[h.index] {
				if w == p || adjacency[p][w] {
					continue
				}
				adjacency[p][w] = true
				dependents[w] = append(dependents[w], p)
				inDegree[p]++
			}
		}
	}
	return adjacency, dependents, inDegree, nil
}

// visitState is a DFS tri-state mark for cycle detection.
type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

// detectCycles runs a DFS with tri-state marks over the dependency
// adjacency matrix (§4.2.2). adjacency[p][w] true means "p depends on w",
// i.e. descent follows p -> w.
func detectCycles(adjacency [][]bool, n int) error {
	state := make([]visitState, n)

	var visit func(p int) error
	visit = func(p int) error {
		state[p] = visiting
		for w := 0; w < n; w++ {
			if !adjacency[p][w] {
				continue
			}
			switch state[w] {
			case visiting:
				return &CompileError{Phase: "cycle", Err: ErrCycleDetected}
			case unvisited:
				if err := visit(w); err != nil {
					return err
				}
			}
		}
		state[p] = done
		return nil
	}

	for p := 0; p < n; p++ {
		if state[p] == unvisited {
			if err := visit(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// topoSort runs Kahn's algorithm (§4.2.3). Ties are broken by declaration
// order: the initial queue and every later enqueue of newly-zero passes
// are both built by scanning pass indices in ascending order.
//
// Returns order (execution index -> declaration index) and passOrder
// (declaration index -> execution index).
func topoSort(dependents [][]int, inDegree []int, n int) (order []int, passOrder []int, err error) {
	degree := make([]int, n)
	copy(degree, inDegree)

	queue := make([]int, 0, n)
	for p := 0; p < n; p++ {
		if degree[p] == 0 {
			queue = append(queue, p)
		}
	}

	order = make([]int, 0, n)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		order = append(order, p)

		for _, dep := range dependents[p] {
			degree[dep]--
			if degree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != n {
		// Defensive: detectCycles should already have caught this.
		return nil, nil, &CompileError{Phase: "topological-sort", Err: ErrCycleDetected}
	}

	passOrder = make([]int, n)
	for execIdx, declIdx := range order {
		passOrder[declIdx] = execIdx
	}
	return order, passOrder, nil
}

// runLifetimeAnalysis implements §4.2.4: reset every resource's interval
// to the empty state, then expand it across every pass touching the
// resource, walked in execution order.
func (g *Graph) runLifetimeAnalysis(order []int) {
	n := g.resources.Len()
	first := make([]int, n)
	last := make([]int, n)
	for i := range first {
		first[i] = math.MaxInt32
		last[i] = 0
	}

	for execIdx, declIdx := range order {
		for _, h := range g.passes[declIdx].allTouchedHandles() {
			if !h.IsValid() || int(h.index) >= n {
				continue
			}
			if execIdx < first[h.index] {
				first[h.index] = execIdx
			}
			if execIdx > last[h.index] {
				last[h.index] = execIdx
			}
		}
	}

	for idx := 0; idx < n; idx++ {
		r, ok := g.resources.GetByIndex(core.Index(idx))
		if !ok {
			continue
		}
		if first[idx] == math.MaxInt32 {
			r.firstUsePass = -1
			r.lastUsePass = -1
			continue
		}
		r.firstUsePass = first[idx]
		r.lastUsePass = last[idx]
	}
}

// roleTransition is one row of the §4.2.5 role table.
type roleTransition struct {
	resourceIndex uint16
	dstLayout     hal.ImageLayout
	dstAccess     hal.AccessFlags
}

// generateBarriers implements §4.2.5: per-resource (layout, access) state
// is tracked across the whole compile; a barrier is emitted on a pass
// whenever that pass requires a different layout than the resource is
// currently in.
func (g *Graph) generateBarriers(order []int, passOrder []int, adjacency [][]bool) []CompiledPass {
	n := g.resources.Len()
	curLayout := make([]hal.ImageLayout, n)
	curAccess := make([]hal.AccessFlags, n)
	for i := range curLayout {
		curLayout[i] = hal.LayoutUndefined
		curAccess[i] = hal.AccessNone
	}

	compiled := make([]CompiledPass, len(order))
	for execIdx, declIdx := range order {
		pass := &g.passes[declIdx]

		transitions := passRoleTransitions(pass)

		var barriers []hal.Barrier
		for _, t := range transitions {
			if int(t.resourceIndex) >= n {
				continue
			}
			if t.dstLayout == curLayout[t.resourceIndex] {
				continue
			}
			if len(barriers) >= maxBarriersPerPass {
				g.logger.Log(context.Background(), hal.LevelCapacity,
					"rendergraph: barrier cap exceeded, truncating",
					"pass", pass.name, "cap", maxBarriersPerPass)
				break
			}
			barriers = append(barriers, hal.Barrier{
				ResourceIndex: t.resourceIndex,
				SrcAccess:     curAccess[t.resourceIndex],
				DstAccess:     t.dstAccess,
				SrcLayout:     curLayout[t.resourceIndex],
				DstLayout:     t.dstLayout,
			})
			g.logger.Log(context.Background(), hal.LevelBarrier, "rendergraph: barrier emitted",
				"pass", pass.name, "resource", t.resourceIndex,
				"srcLayout", curLayout[t.resourceIndex], "dstLayout", t.dstLayout)
			curLayout[t.resourceIndex] = t.dstLayout
			curAccess[t.resourceIndex] = t.dstAccess
		}

		preds := predecessorsOf(declIdx, adjacency, passOrder)

		compiled[execIdx] = CompiledPass{
			PassIndex:    uint16(declIdx),
			Order:        execIdx,
			Predecessors: preds,
			Barriers:     barriers,
		}
	}
	return compiled
}

// passRoleTransitions enumerates the (resource, role) pairs a pass
// touches, in a fixed order (color attachments, depth, reads, writes) so
// that barrier emission is deterministic.
func passRoleTransitions(p *Pass) []roleTransition {
	var out []roleTransition
	for _, c := range p.colorAttachments {
		if !c.Resource.IsValid() {
			continue
		}
		out = append(out, roleTransition{c.Resource.index, hal.LayoutColorAttachment, hal.AccessColorAttachmentWrite})
	}
	if p.depthAttachment != nil && p.depthAttachment.Resource.IsValid() {
		if p.depthAttachment.ReadOnly {
			out = append(out, roleTransition{p.depthAttachment.Resource.index, hal.LayoutDepthStencilReadOnly, hal.AccessDepthRead})
		} else {
			out = append(out, roleTransition{p.depthAttachment.Resource.index, hal.LayoutDepthStencilAttachment, hal.AccessDepthWrite})
		}
	}
	for _, r := range p.reads {
		if !r.Resource.IsValid() {
			continue
		}
		if p.kind == PassTransfer {
			out = append(out, roleTransition{r.Resource.index, hal.LayoutTransferSrc, hal.AccessTransferRead})
		} else {
			out = append(out, roleTransition{r.Resource.index, hal.LayoutShaderReadOnly, hal.AccessShaderRead})
		}
	}
	for _, w := range p.writes {
		if !w.Resource.IsValid() {
			continue
		}
		if p.kind == PassTransfer {
			out = append(out, roleTransition{w.Resource.index, hal.LayoutTransferDst, hal.AccessTransferWrite})
		} else {
			out = append(out, roleTransition{w.Resource.index, hal.LayoutGeneral, hal.AccessShaderWrite})
		}
	}
	return out
}

// predecessorsOf returns, capped at maxPredecessors, the execution-order
// indices of the passes declIdx directly depends on.
func predecessorsOf(declIdx int, adjacency [][]bool, passOrder []int) []uint16 {
	var preds []uint16
	for w := range adjacency[declIdx] {
		if !adjacency[declIdx][w] {
			continue
		}
		if len(preds) >= maxPredecessors {
			break
		}
		preds = append(preds, uint16(passOrder[w]))
	}
	return preds
}

func toUint16Slice(order []int) []uint16 {
	out := make([]uint16, len(order))
	for i, v := range order {
		out[i] = uint16(v)
	}
	return out
}
