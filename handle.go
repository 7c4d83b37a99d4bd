package rendergraph

import "fmt"

// ResourceHandle is a cheap-to-copy, cheap-to-compare identifier for a
// resource slot. It never owns the underlying resource. index ==
// InvalidIndex denotes the invalid handle.
//
// Adapted from the index/epoch scheme in internal/core, narrowed to the
// 16-bit index / 16-bit generation pair the spec requires.
type ResourceHandle struct {
	index      uint16
	generation uint16
}

// InvalidResourceHandle is returned by every builder operation that
// fails (capacity exceeded, no such name, ...).
var InvalidResourceHandle = ResourceHandle{index: 0xFFFF, generation: 0}

// IsValid reports whether h is not the invalid handle. It does not by
// itself mean the handle resolves to a live resource — use
// Graph.GetResourceEntry for that.
func (h ResourceHandle) IsValid() bool {
	return h.index != 0xFFFF
}

// Index returns the handle's slot index.
func (h ResourceHandle) Index() uint16 { return h.index }

// Generation returns the handle's generation.
func (h ResourceHandle) Generation() uint16 { return h.generation }

// String renders the handle for debug output.
func (h ResourceHandle) String() string {
	if !h.IsValid() {
		return "ResourceHandle(invalid)"
	}
	return fmt.Sprintf("ResourceHandle(%d,%d)", h.index, h.generation)
}

// PassHandle identifies a pass by its declaration index. Passes are never
// individually recreated within a graph's lifetime — only a full Reset
// invalidates them — so, unlike ResourceHandle, no generation counter is
// needed.
type PassHandle struct {
	index uint16
	valid bool
}

// InvalidPassHandle is returned when a pass lookup or addition fails.
var InvalidPassHandle = PassHandle{}

// IsValid reports whether h refers to a declared pass.
func (h PassHandle) IsValid() bool { return h.valid }

// Index returns the handle's declaration index.
func (h PassHandle) Index() uint16 { return h.index }
