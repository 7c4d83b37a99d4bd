package rendergraph

import (
	"testing"

	"github.com/gogpu/rendergraph/hal"
)

// buildShadowMainPost wires up the S1 scenario from §8: shadow_pass
// writes shadow_map, main_pass writes main_color+main_depth and samples
// shadow_map, post_process writes the backbuffer and samples main_color.
func buildShadowMainPost(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph(GraphConfig{})

	shadowMap := g.CreateDepthBuffer("shadow_map", 2048, 2048, hal.FormatDepth32Float, true)
	mainColor := g.CreateTexture2D("main_color", 1920, 1080, hal.FormatRGBA16Float, UsageRenderTarget, 1)
	mainDepth := g.CreateDepthBuffer("main_depth", 1920, 1080, hal.FormatDepth32Float, false)
	backbuffer := g.ImportBackbuffer("backbuffer", 1920, 1080, hal.FormatBGRA8Unorm)

	shadowPass := g.AddPass("shadow_pass", PassGraphics)
	sp := g.PassByHandle(shadowPass)
	sp.SetDepthAttachment(DepthAttachment{Resource: shadowMap, DepthLoadOp: hal.LoadOpClear, DepthStoreOp: hal.StoreOpStore})

	mainPass := g.AddPass("main_pass", PassGraphics)
	mp := g.PassByHandle(mainPass)
	mp.AddColorAttachment(ColorAttachment{Resource: mainColor, LoadOp: hal.LoadOpClear, StoreOp: hal.StoreOpStore})
	mp.SetDepthAttachment(DepthAttachment{Resource: mainDepth, DepthLoadOp: hal.LoadOpClear, DepthStoreOp: hal.StoreOpStore})
	mp.AddResourceRead(ResourceBinding{Resource: shadowMap, Set: 0, Binding: 0, Stages: hal.ShaderStageFragment})

	postPass := g.AddPass("post_process", PassGraphics)
	pp := g.PassByHandle(postPass)
	pp.AddColorAttachment(ColorAttachment{Resource: backbuffer, LoadOp: hal.LoadOpDontCare, StoreOp: hal.StoreOpStore})
	pp.AddResourceRead(ResourceBinding{Resource: mainColor, Set: 0, Binding: 0, Stages: hal.ShaderStageFragment})

	return g
}

func TestCompileShadowMainPostOrderAndBarriers(t *testing.T) {
	g := buildShadowMainPost(t)

	if err := g.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !g.IsCompiled() {
		t.Fatalf("IsCompiled() = false after successful compile")
	}

	shadowHandle, _ := g.GetPassByName("shadow_pass")
	mainHandle, _ := g.GetPassByName("main_pass")
	postHandle, _ := g.GetPassByName("post_process")

	shadowOrder := g.PassByHandle(shadowHandle).Order()
	mainOrder := g.PassByHandle(mainHandle).Order()
	postOrder := g.PassByHandle(postHandle).Order()

	if shadowOrder != 0 || mainOrder != 1 || postOrder != 2 {
		t.Fatalf("execution order = (%d,%d,%d), want (0,1,2)", shadowOrder, mainOrder, postOrder)
	}

	total := 0
	for _, cp := range g.compiledPasses {
		total += len(cp.Barriers)
	}
	if total < 3 {
		t.Fatalf("total barrier count = %d, want >= 3", total)
	}
}

func TestCompileCycleLeavesPreviousStateIntact(t *testing.T) {
	g := NewGraph(GraphConfig{})
	colorA := g.CreateTexture2D("a", 64, 64, hal.FormatRGBA8Unorm, UsageRenderTarget, 1)
	colorB := g.CreateTexture2D("b", 64, 64, hal.FormatRGBA8Unorm, UsageRenderTarget, 1)

	passA := g.AddPass("pass_a", PassGraphics)
	pa := g.PassByHandle(passA)
	pa.AddColorAttachment(ColorAttachment{Resource: colorA})
	pa.AddResourceRead(ResourceBinding{Resource: colorB, Stages: hal.ShaderStageFragment})

	passB := g.AddPass("pass_b", PassGraphics)
	pb := g.PassByHandle(passB)
	pb.AddColorAttachment(ColorAttachment{Resource: colorB})
	pb.AddResourceRead(ResourceBinding{Resource: colorA, Stages: hal.ShaderStageFragment})

	err := g.Compile()
	if err == nil {
		t.Fatalf("Compile should fail on a two-pass cycle")
	}
	var compileErr *CompileError
	if !asCompileError(err, &compileErr) {
		t.Fatalf("error is not a *CompileError: %v", err)
	}
	if g.IsCompiled() {
		t.Fatalf("IsCompiled() should remain false after a failed compile")
	}
}

func asCompileError(err error, target **CompileError) bool {
	ce, ok := err.(*CompileError)
	if !ok {
		return false
	}
	*target = ce
	return true
}

func TestHandleGenerationInvalidatedByReset(t *testing.T) {
	g := NewGraph(GraphConfig{})
	h := g.CreateTexture2D("tex", 32, 32, hal.FormatRGBA8Unorm, UsageSampled, 1)

	if _, ok := g.GetResourceEntry(h); !ok {
		t.Fatalf("expected resource entry to resolve before Reset")
	}

	g.Reset()

	if _, ok := g.GetResourceEntry(h); ok {
		t.Fatalf("expected resource entry lookup to fail after Reset")
	}

	h2 := g.CreateTexture2D("tex", 32, 32, hal.FormatRGBA8Unorm, UsageSampled, 1)
	if h2.Generation() == h.Generation() {
		t.Fatalf("reallocated slot should carry a bumped generation: old=%d new=%d", h.Generation(), h2.Generation())
	}
	if _, ok := g.GetResourceEntry(h); ok {
		t.Fatalf("stale pre-Reset handle must not resolve even after the slot is reused")
	}
}

func TestResourceLifetimeAnalysis(t *testing.T) {
	g := buildShadowMainPost(t)
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	shadowHandle, _ := g.GetResourceByName("shadow_map")
	mainColorHandle, _ := g.GetResourceByName("main_color")

	shadowRes, _ := g.GetResourceEntry(shadowHandle)
	first, last := shadowRes.Lifetime()
	if first != 0 || last != 1 {
		t.Errorf("shadow_map lifetime = [%d,%d], want [0,1] (written in shadow_pass, read in main_pass)", first, last)
	}

	mainColorRes, _ := g.GetResourceEntry(mainColorHandle)
	first, last = mainColorRes.Lifetime()
	if first != 1 || last != 2 {
		t.Errorf("main_color lifetime = [%d,%d], want [1,2]", first, last)
	}
}

func TestNoWriterCompilesCleanly(t *testing.T) {
	g := NewGraph(GraphConfig{})
	imported := g.CreateTexture2D("external_lut", 16, 16, hal.FormatRGBA8Unorm, UsageSampled, 1)
	target := g.CreateTexture2D("out", 64, 64, hal.FormatRGBA8Unorm, UsageRenderTarget, 1)

	p := g.AddPass("lut_pass", PassGraphics)
	pp := g.PassByHandle(p)
	pp.AddColorAttachment(ColorAttachment{Resource: target})
	pp.AddResourceRead(ResourceBinding{Resource: imported, Stages: hal.ShaderStageFragment})

	if err := g.Compile(); err != nil {
		t.Fatalf("a resource with no writer must compile cleanly, got: %v", err)
	}

	barriers := g.compiledPasses[0].Barriers
	found := false
	for _, b := range barriers {
		if b.ResourceIndex == imported.Index() {
			if b.SrcLayout != hal.LayoutUndefined {
				t.Errorf("no-writer resource's barrier should start from undefined, got %v", b.SrcLayout)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a barrier transitioning the no-writer resource into shader_read_only")
	}
}

func TestExecuteFailsWhenNotCompiled(t *testing.T) {
	g := NewGraph(GraphConfig{})
	g.AddPass("p", PassGraphics)

	_, err := g.Execute(1.0/60.0, nil, nil)
	if err != ErrNotCompiled {
		t.Fatalf("Execute before compile: err = %v, want ErrNotCompiled", err)
	}
}

func TestExecuteInvokesCallbacksInOrder(t *testing.T) {
	g := buildShadowMainPost(t)
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	var invoked []string
	for _, name := range []string{"shadow_pass", "main_pass", "post_process"} {
		h, _ := g.GetPassByName(name)
		p := g.PassByHandle(h)
		name := name
		p.SetExecuteCallback(func(ctx *PassContext) {
			invoked = append(invoked, name)
		})
	}

	stats, err := g.Execute(1.0/60.0, "cmd", "renderer")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if stats.PassesExecuted != 3 {
		t.Errorf("PassesExecuted = %d, want 3", stats.PassesExecuted)
	}
	want := []string{"shadow_pass", "main_pass", "post_process"}
	for i, name := range want {
		if invoked[i] != name {
			t.Errorf("invocation order[%d] = %q, want %q", i, invoked[i], name)
		}
	}

	if g.FrameIndex() != 1 {
		t.Errorf("FrameIndex() = %d, want 1 after one Execute", g.FrameIndex())
	}
}

func TestRepeatedCompileIsIdempotent(t *testing.T) {
	g := buildShadowMainPost(t)
	if err := g.Compile(); err != nil {
		t.Fatalf("first Compile failed: %v", err)
	}
	firstOrder := append([]uint16(nil), g.order...)

	if err := g.Compile(); err != nil {
		t.Fatalf("second Compile failed: %v", err)
	}
	for i, v := range g.order {
		if firstOrder[i] != v {
			t.Fatalf("repeated compile produced a different order at %d: %d vs %d", i, firstOrder[i], v)
		}
	}
}

func TestBuildCompileResetBuildCompileIdentical(t *testing.T) {
	g1 := buildShadowMainPost(t)
	if err := g1.Compile(); err != nil {
		t.Fatalf("g1 Compile failed: %v", err)
	}

	g1.Reset()
	g2 := buildShadowMainPost(t)
	_ = g2

	// Replay the same building operations against g1 after Reset.
	shadowMap := g1.CreateDepthBuffer("shadow_map", 2048, 2048, hal.FormatDepth32Float, true)
	mainColor := g1.CreateTexture2D("main_color", 1920, 1080, hal.FormatRGBA16Float, UsageRenderTarget, 1)
	mainDepth := g1.CreateDepthBuffer("main_depth", 1920, 1080, hal.FormatDepth32Float, false)
	backbuffer := g1.ImportBackbuffer("backbuffer", 1920, 1080, hal.FormatBGRA8Unorm)

	shadowPass := g1.AddPass("shadow_pass", PassGraphics)
	g1.PassByHandle(shadowPass).SetDepthAttachment(DepthAttachment{Resource: shadowMap})

	mainPass := g1.AddPass("main_pass", PassGraphics)
	mp := g1.PassByHandle(mainPass)
	mp.AddColorAttachment(ColorAttachment{Resource: mainColor})
	mp.SetDepthAttachment(DepthAttachment{Resource: mainDepth})
	mp.AddResourceRead(ResourceBinding{Resource: shadowMap, Stages: hal.ShaderStageFragment})

	postPass := g1.AddPass("post_process", PassGraphics)
	pp := g1.PassByHandle(postPass)
	pp.AddColorAttachment(ColorAttachment{Resource: backbuffer})
	pp.AddResourceRead(ResourceBinding{Resource: mainColor, Stages: hal.ShaderStageFragment})

	if err := g1.Compile(); err != nil {
		t.Fatalf("rebuild Compile failed: %v", err)
	}

	if err := g2.Compile(); err != nil {
		t.Fatalf("g2 Compile failed: %v", err)
	}

	if len(g1.order) != len(g2.order) {
		t.Fatalf("rebuilt graph order length = %d, want %d", len(g1.order), len(g2.order))
	}
	for i := range g1.order {
		p1 := g1.passes[g1.order[i]]
		p2 := g2.passes[g2.order[i]]
		if p1.Name() != p2.Name() {
			t.Fatalf("order[%d]: %q vs %q", i, p1.Name(), p2.Name())
		}
	}
}

func TestCapacityExceededDoesNotCorruptState(t *testing.T) {
	g := NewGraph(GraphConfig{})
	for i := 0; i < maxPasses; i++ {
		if h := g.AddPass("p", PassGraphics); !h.IsValid() {
			t.Fatalf("AddPass %d should have succeeded", i)
		}
	}
	before := len(g.passes)

	if h := g.AddPass("overflow", PassGraphics); h.IsValid() {
		t.Fatalf("AddPass at capacity should return an invalid handle")
	}
	if len(g.passes) != before {
		t.Fatalf("pass table length changed after a rejected AddPass: %d vs %d", len(g.passes), before)
	}
}
