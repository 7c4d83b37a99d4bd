package core

import "testing"

func TestStorageAllocGet(t *testing.T) {
	s := NewStorage[string](4)

	h, ok := s.Alloc("a")
	if !ok {
		t.Fatalf("Alloc failed unexpectedly")
	}
	got, ok := s.Get(h)
	if !ok || *got != "a" {
		t.Fatalf("Get(%v) = (%v, %v), want (\"a\", true)", h, got, ok)
	}
}

func TestStorageCapacityExceeded(t *testing.T) {
	s := NewStorage[int](2)
	if _, ok := s.Alloc(1); !ok {
		t.Fatalf("first Alloc should succeed")
	}
	if _, ok := s.Alloc(2); !ok {
		t.Fatalf("second Alloc should succeed")
	}
	if _, ok := s.Alloc(3); ok {
		t.Fatalf("third Alloc should fail, capacity is 2")
	}
}

func TestStorageGenerationInvalidation(t *testing.T) {
	s := NewStorage[int](4)
	h, _ := s.Alloc(1)

	s.Reset()

	if _, ok := s.Get(h); ok {
		t.Fatalf("Get should fail for a handle issued before Reset")
	}
}

func TestStorageResetPreservesGenerationAcrossRealloc(t *testing.T) {
	s := NewStorage[int](1)

	first, ok := s.Alloc(10)
	if !ok {
		t.Fatalf("Alloc failed")
	}
	s.Reset()

	second, ok := s.Alloc(20)
	if !ok {
		t.Fatalf("Alloc after Reset failed")
	}

	firstIdx, firstGen := first.Unzip()
	secondIdx, secondGen := second.Unzip()
	if firstIdx != secondIdx {
		t.Fatalf("expected the single freed slot to be reused, got indices %d and %d", firstIdx, secondIdx)
	}
	if secondGen <= firstGen {
		t.Fatalf("generation must strictly increase on reuse: first=%d second=%d", firstGen, secondGen)
	}

	if _, ok := s.Get(first); ok {
		t.Fatalf("the pre-Reset handle must still fail validation after reallocation")
	}
	got, ok := s.Get(second)
	if !ok || *got != 20 {
		t.Fatalf("Get(second) = (%v, %v), want (20, true)", got, ok)
	}
}

func TestStorageForEachSkipsInvalid(t *testing.T) {
	s := NewStorage[int](4)
	s.Alloc(1)
	s.Alloc(2)
	s.Alloc(3)

	// Reset invalidates all three slots; only slot 0 is handed out again.
	s.Reset()
	s.Alloc(4)

	var seen []int
	s.ForEach(func(_ Index, _ Generation, item *int) bool {
		seen = append(seen, *item)
		return true
	})
	if len(seen) != 1 || seen[0] != 4 {
		t.Fatalf("ForEach visited %v, want [4] (invalid slots skipped)", seen)
	}
}

func TestRawHandleZipUnzip(t *testing.T) {
	tests := []struct {
		index Index
		gen   Generation
	}{
		{0, 1},
		{0xFFFE, 0xFFFF},
		{42, 7},
	}
	for _, tt := range tests {
		h := Zip(tt.index, tt.gen)
		idx, gen := h.Unzip()
		if idx != tt.index || gen != tt.gen {
			t.Errorf("Zip(%d,%d).Unzip() = (%d,%d)", tt.index, tt.gen, idx, gen)
		}
	}
}
