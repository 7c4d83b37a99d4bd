// Package drawlist collects per-frame draw calls and sorts them cheaply
// (§4.4). A DrawList is independent of any Graph: a renderer populates
// one per frame and hands per-pass filtered views to pass execute
// callbacks.
package drawlist

import (
	"math"
	"sort"
)

// maxDrawCalls is the per-frame cap; appends beyond it are silently
// dropped (§4.4, §7 CapacityExceeded).
const maxDrawCalls = 8192

// parallelSortThreshold is the item count a list must exceed before
// SortBySortKeyParallel bothers forking work out to a worker pool.
const parallelSortThreshold = 512

// DrawCall is one draw submitted for a frame.
type DrawCall struct {
	GeometryRef any
	MaterialID  uint32
	ModelMatrix [4][4]float32
	SortKey     uint64
	UserData    any
}

// DrawList accumulates DrawCalls for a frame and exposes the sort and
// filter operations of §4.4.
type DrawList struct {
	calls []DrawCall
}

// New creates an empty DrawList pre-sized to the per-frame cap.
func New() *DrawList {
	return &DrawList{calls: make([]DrawCall, 0, maxDrawCalls)}
}

// Clear empties the list without releasing its backing array.
func (dl *DrawList) Clear() {
	dl.calls = dl.calls[:0]
}

// Len returns the number of draw calls currently held.
func (dl *DrawList) Len() int {
	return len(dl.calls)
}

// At returns the draw call at index i.
func (dl *DrawList) At(i int) DrawCall {
	return dl.calls[i]
}

// AddDrawCall appends a draw call with no distance component; its sort
// key carries only the material in the upper 32 bits. Returns false
// without modifying the list if the per-frame cap (8192) is reached.
func (dl *DrawList) AddDrawCall(geometryRef any, materialID uint32, model [4][4]float32) bool {
	return dl.AddDrawCallWithDistance(geometryRef, materialID, model, 0)
}

// AddDrawCallWithDistance appends a draw call whose sort key packs
// materialID into the upper 32 bits and the raw bit pattern of
// distanceSq (a non-negative float, typically squared camera distance)
// into the lower 32 bits (§4.4 "Sort-key encoding"). Returns false
// without modifying the list if the per-frame cap is reached.
func (dl *DrawList) AddDrawCallWithDistance(geometryRef any, materialID uint32, model [4][4]float32, distanceSq float32) bool {
	if len(dl.calls) >= maxDrawCalls {
		return false
	}
	dl.calls = append(dl.calls, DrawCall{
		GeometryRef: geometryRef,
		MaterialID:  materialID,
		ModelMatrix: model,
		SortKey:     sortKey(materialID, distanceSq),
		UserData:    nil,
	})
	return true
}

func sortKey(materialID uint32, distanceSq float32) uint64 {
	return uint64(materialID)<<32 | uint64(math.Float32bits(distanceSq))
}

// SortByMaterial sorts the list by MaterialID alone, ties broken by
// insertion order (stable).
func (dl *DrawList) SortByMaterial() {
	sort.SliceStable(dl.calls, func(i, j int) bool {
		return dl.calls[i].MaterialID < dl.calls[j].MaterialID
	})
}

// SortBySortKey sorts ascending on the full 64-bit sort key, producing
// material batching with distance as the secondary key. Stable.
func (dl *DrawList) SortBySortKey() {
	sort.SliceStable(dl.calls, func(i, j int) bool {
		return dl.calls[i].SortKey < dl.calls[j].SortKey
	})
}

// SortFrontToBack sorts ascending on the sort key's distance component
// alone, ignoring material. Stable.
func (dl *DrawList) SortFrontToBack() {
	sort.SliceStable(dl.calls, func(i, j int) bool {
		return uint32(dl.calls[i].SortKey) < uint32(dl.calls[j].SortKey)
	})
}

// SortBackToFront sorts descending on the sort key's distance component
// alone. Stable.
func (dl *DrawList) SortBackToFront() {
	sort.SliceStable(dl.calls, func(i, j int) bool {
		return uint32(dl.calls[i].SortKey) > uint32(dl.calls[j].SortKey)
	})
}

// MaterialPassPredicate decides whether a material participates in a
// named pass. The scene-facing contract (§6) fixes this exact shape: the
// external material system owns the decision, the draw list only calls
// it.
type MaterialPassPredicate func(materialID uint32, passName string) bool

// FilterBy returns the indices of every draw call for which predicate
// returns true, in list order. Used by PassDrawList.BuildForPass; exposed
// directly for callers that want a one-off filtered view.
func (dl *DrawList) FilterBy(passName string, predicate MaterialPassPredicate) []int {
	var out []int
	for i, c := range dl.calls {
		if predicate(c.MaterialID, passName) {
			out = append(out, i)
		}
	}
	return out
}
