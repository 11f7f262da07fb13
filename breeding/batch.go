package breeding

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/pthm-cable/studbook/genetics"
)

// parallelThreshold is the minimum batch size worth fanning out.
const parallelThreshold = 8

// Pairing is one candidate pair for batch analysis.
type Pairing struct {
	A, B           genetics.Profile
	AttrsA, AttrsB Attributes
}

// AnalyzeBatch analyzes every pairing, in parallel for larger batches.
// Pairing i draws from its own PCG stream (seed, i), so results do not
// depend on the worker count. The first error by pairing index is returned.
func (an *Analyzer) AnalyzeBatch(seed uint64, pairs []Pairing) ([]Report, error) {
	n := len(pairs)
	reports := make([]Report, n)
	errs := make([]error, n)

	run := func(start, end int) {
		for i := start; i < end; i++ {
			p := &pairs[i]
			rng := genetics.NewRand(seed, uint64(i))
			reports[i], errs[i] = an.Analyze(rng, p.A, p.B, p.AttrsA, p.AttrsB)
		}
	}

	if n < parallelThreshold {
		run(0, n)
	} else {
		numWorkers := runtime.GOMAXPROCS(0)
		chunkSize := (n + numWorkers - 1) / numWorkers
		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			start := w * chunkSize
			end := min(start+chunkSize, n)
			if start >= end {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				run(start, end)
			}()
		}
		wg.Wait()
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("pairing %d: %w", i, err)
		}
	}
	return reports, nil
}
