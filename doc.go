// Package rendergraph implements the render-graph core of a real-time 3D
// renderer: a declarative subsystem where callers describe a frame as a
// set of named passes reading and writing named GPU resources, and the
// graph resolves dependencies, orders passes, generates synchronization
// barriers, tracks resource lifetimes, and drives draw-call sorting.
//
// A frame's usage is: build the graph once (or after a change), compile
// it once (or after an invalidation), then for every frame populate the
// draw list (see the drawlist package) and call Execute.
//
// The package owns no GPU state itself — it produces an execution order,
// a barrier list per pass, and invokes pass callbacks with a backend
// command context supplied by the caller. Concrete Vulkan/Metal command
// recording lives outside this package; see the hal package for the
// numeric-mapping contract a backend must honor.
package rendergraph
