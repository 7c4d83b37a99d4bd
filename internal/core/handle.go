// Package core provides the generation-counted slot storage backing the
// render graph's resource table.
//
// It adapts the index/epoch handle scheme used throughout the wgpu core
// registries (32-bit index, 32-bit epoch, zipped into a 64-bit ID) down to
// the render graph's narrower 16-bit index / 16-bit generation pair.
package core

import "fmt"

// Index identifies a slot in a Storage's backing array.
type Index = uint16

// Generation is bumped every time a slot is reused, invalidating any
// previously issued handle for that slot.
type Generation = uint16

// InvalidIndex is the reserved index denoting an invalid handle.
const InvalidIndex Index = 0xFFFF

// RawHandle is the zipped 32-bit representation of a handle: the low 16
// bits hold the index, the high 16 bits hold the generation.
type RawHandle uint32

// Zip combines an index and generation into a RawHandle.
func Zip(index Index, gen Generation) RawHandle {
	return RawHandle(index) | RawHandle(gen)<<16
}

// Unzip splits a RawHandle back into its index and generation.
func (h RawHandle) Unzip() (Index, Generation) {
	return Index(h & 0xFFFF), Generation(h >> 16)
}

// String renders the handle as "Handle(index,generation)".
func (h RawHandle) String() string {
	index, gen := h.Unzip()
	return fmt.Sprintf("Handle(%d,%d)", index, gen)
}

// slot holds one stored item plus the bookkeeping needed to validate
// handles issued against it.
type slot[T any] struct {
	item  T
	gen   Generation
	valid bool
}

// Storage is a fixed-capacity, generation-validated slot array. It never
// grows past capacity: Alloc returns ok=false once full, matching the
// render graph's "silently rejected at the slot level" capacity policy.
//
// Not safe for concurrent use — the render graph is single-threaded by
// contract (see the package-level concurrency note in the root package).
type Storage[T any] struct {
	slots []slot[T]
	free  []Index // invalid slots available for reuse, oldest first
	cap   int
}

// NewStorage creates a Storage with the given fixed capacity.
func NewStorage[T any](capacity int) *Storage[T] {
	return &Storage[T]{
		slots: make([]slot[T], 0, capacity),
		cap:   capacity,
	}
}

// Alloc returns a handle for item, reusing the oldest freed slot (bumping
// its generation) if one exists, or else appending a new slot. ok is
// false if the storage is already at capacity with no freed slots, in
// which case the zero RawHandle is returned and the caller must treat
// this as CapacityExceeded.
func (s *Storage[T]) Alloc(item T) (RawHandle, bool) {
	if n := len(s.free); n > 0 {
		idx := s.free[0]
		s.free = s.free[1:]
		return s.Bump(idx, item), true
	}
	if len(s.slots) >= s.cap {
		return 0, false
	}
	s.slots = append(s.slots, slot[T]{item: item, gen: 1, valid: true})
	idx := Index(len(s.slots) - 1)
	return Zip(idx, 1), true
}

// Get retrieves the item for h. ok is false if the index is out of
// range, the slot is invalid, or the generation does not match — the
// three conditions the render graph's handle-validation contract requires.
func (s *Storage[T]) Get(h RawHandle) (*T, bool) {
	index, gen := h.Unzip()
	if int(index) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[index]
	if !sl.valid || sl.gen != gen {
		return nil, false
	}
	return &sl.item, true
}

// GetByIndex retrieves a slot's item directly by index, bypassing
// generation validation. Used internally where the index is already
// known-good (e.g. iterating execution order).
func (s *Storage[T]) GetByIndex(index Index) (*T, bool) {
	if int(index) >= len(s.slots) || !s.slots[index].valid {
		return nil, false
	}
	return &s.slots[index].item, true
}

// Len returns the number of allocated slots, valid or not.
func (s *Storage[T]) Len() int {
	return len(s.slots)
}

// Cap returns the fixed capacity.
func (s *Storage[T]) Cap() int {
	return s.cap
}

// ForEach iterates every valid slot in index order, stopping early if fn
// returns false.
func (s *Storage[T]) ForEach(fn func(index Index, gen Generation, item *T) bool) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.valid {
			continue
		}
		if !fn(Index(i), sl.gen, &sl.item) {
			return
		}
	}
}

// Reset marks every slot invalid without clearing the generation counters
// or shrinking the backing array, so that any handle issued before Reset
// fails validation forever — until its slot is handed out again by
// Alloc, which bumps the generation once more. All slots become
// available for reuse, oldest index first.
func (s *Storage[T]) Reset() {
	s.free = s.free[:0]
	for i := range s.slots {
		var zero T
		s.slots[i].item = zero
		s.slots[i].valid = false
		s.free = append(s.free, Index(i))
	}
}

// Bump increments the generation of an existing slot and replaces its
// item, invalidating any handle issued against the slot's previous
// generation. Alloc uses it to hand out a slot freed by Reset.
func (s *Storage[T]) Bump(index Index, item T) RawHandle {
	sl := &s.slots[index]
	sl.gen++
	sl.item = item
	sl.valid = true
	return Zip(index, sl.gen)
}
