package drawlist

import "github.com/gogpu/rendergraph/internal/workerpool"

const (
	radixPasses  = 8 // one per byte of the 64-bit sort key
	radixBits    = 8
	radixBuckets = 1 << radixBits
)

// cacheLineSize is the assumed cache line width used to pad per-worker
// histogram tables; see DESIGN NOTES §9: "worker histograms must be
// padded to avoid false sharing on cache-line boundaries."
const cacheLineSize = 64

const histogramPad = (cacheLineSize - (radixBuckets*8)%cacheLineSize) % cacheLineSize

// histogram is one worker's bucket-count table for a single radix pass.
// The trailing pad guarantees sizeof(histogram) is a whole multiple of
// cacheLineSize, so histogram[i] and histogram[i+1] in a slice never
// share a cache line — without it, two workers incrementing adjacent
// buckets during the parallel counting phase would invalidate each
// other's cache lines on every write.
type histogram struct {
	counts [radixBuckets]int
	_      [histogramPad]byte
}

// SortBySortKeyParallel sorts ascending on the full sort key using an
// 8-bit-radix, 8-pass parallel LSD sort when the list exceeds
// parallelSortThreshold and pool is non-nil; otherwise it falls back to
// the serial stable sort, producing an identical result either way
// (§4.4, §8 "falls back ... produces the identical result").
func (dl *DrawList) SortBySortKeyParallel(pool *workerpool.Pool) {
	if pool == nil || len(dl.calls) <= parallelSortThreshold {
		dl.SortBySortKey()
		return
	}
	radixSortParallel(dl.calls, pool)
}

// radixSortParallel implements the five-phase pass described in §4.4:
// parallel histogram, serial prefix-sum, serial per-worker offset
// computation, parallel scatter, buffer swap. Because radixPasses is
// even, the fully-sorted result ends up back in the caller's slice.
func radixSortParallel(calls []DrawCall, pool *workerpool.Pool) {
	n := len(calls)
	if n == 0 {
		return
	}
	pool.Start()

	w := pool.Workers()
	if w < 1 {
		w = 1
	}
	if w > n {
		w = n
	}
	chunkSize := (n + w - 1) / w

	buf := make([]DrawCall, n)
	src, dst := calls, buf

	privateHist := make([]histogram, w)
	localOffsets := make([]histogram, w)

	for pass := 0; pass < radixPasses; pass++ {
		shift := uint(pass * radixBits)

		for wi := range privateHist {
			privateHist[wi].counts = [radixBuckets]int{}
		}
		pool.ForEachWorker(w, func(wi int) {
			start, end := chunkBounds(wi, chunkSize, n)
			hist := &privateHist[wi].counts
			for i := start; i < end; i++ {
				b := byte(src[i].SortKey >> shift)
				hist[b]++
			}
		})

		var globalHist [radixBuckets]int
		for wi := range privateHist {
			for b := 0; b < radixBuckets; b++ {
				globalHist[b] += privateHist[wi].counts[b]
			}
		}
		var globalOffset [radixBuckets]int
		sum := 0
		for b := 0; b < radixBuckets; b++ {
			globalOffset[b] = sum
			sum += globalHist[b]
		}

		for b := 0; b < radixBuckets; b++ {
			running := globalOffset[b]
			for wi := 0; wi < w; wi++ {
				localOffsets[wi].counts[b] = running
				running += privateHist[wi].counts[b]
			}
		}

		pool.ForEachWorker(w, func(wi int) {
			start, end := chunkBounds(wi, chunkSize, n)
			offsets := &localOffsets[wi].counts
			for i := start; i < end; i++ {
				b := byte(src[i].SortKey >> shift)
				dst[offsets[b]] = src[i]
				offsets[b]++
			}
		})

		src, dst = dst, src
	}
}

func chunkBounds(worker, chunkSize, n int) (start, end int) {
	start = worker * chunkSize
	end = start + chunkSize
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	return start, end
}
