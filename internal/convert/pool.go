// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"sync"

	"github.com/jzbor/raw-to-img/internal/scan"
	"github.com/jzbor/raw-to-img/internal/stats"
	"github.com/jzbor/raw-to-img/pkg/types"
)

// runPool fans entries out to a bounded set of workers. Each worker keeps
// its own statistics, merged once all workers drain; the claims table in
// Batch is the only state shared during the run.
func (b *Batch) runPool(entries []scan.Entry, jobs int) (*stats.Stats, []types.FileRecord) {
	work := make(chan int)
	records := make([]types.FileRecord, len(entries))
	workerStats := make([]stats.Stats, jobs)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		st := &workerStats[w]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				records[i] = b.process(entries[i], st)
			}
		}()
	}

	for i := range entries {
		work <- i
	}
	close(work)
	wg.Wait()

	merged := &stats.Stats{}
	for i := range workerStats {
		merged.Merge(&workerStats[i])
	}
	return merged, records
}
