package sim

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Blackdeer1524/FrameCache/src"
	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/replacer"
)

// Stats accumulates what a run did to the replacer.
type Stats struct {
	Accesses        uint64
	AccessesByType  map[replacer.AccessType]uint64
	Pins            uint64
	Unpins          uint64
	Evictions       uint64
	FailedEvictions uint64
	Removals        uint64
}

// Runner drives a replacer with a workload.
type Runner struct {
	log src.Logger
	r   replacer.Replacer
}

func NewRunner(log src.Logger, r replacer.Replacer) *Runner {
	return &Runner{
		log: log,
		r:   r,
	}
}

// Replay applies the trace sequentially and tallies the outcome.
func (run *Runner) Replay(ops []Op) Stats {
	stats := Stats{
		AccessesByType: make(map[replacer.AccessType]uint64),
	}

	for _, op := range ops {
		switch op.Kind {
		case OpAccess:
			run.r.RecordAccess(op.Frame, op.Type)
			stats.Accesses++
			stats.AccessesByType[op.Type]++
		case OpPin:
			run.r.SetEvictable(op.Frame, false)
			stats.Pins++
		case OpUnpin:
			run.r.SetEvictable(op.Frame, true)
			stats.Unpins++
		case OpEvict:
			victim := run.r.Evict()
			if victim.IsSome() {
				stats.Evictions++
				run.log.Debugf("evicted frame %d", victim.Unwrap())
			} else {
				stats.FailedEvictions++
				run.log.Debugf("no evictable frame")
			}
		case OpRemove:
			run.r.Remove(op.Frame)
			stats.Removals++
		}
	}

	return stats
}

// Stress hammers the replacer from `workers` goroutines. Each worker
// owns a disjoint range of framesPerWorker ids and repeatedly records
// accesses over its range, marks it evictable and issues evictions.
// Evictions are global, so a worker may reclaim a neighbour's frames;
// failed evictions are counted, not treated as errors.
func (run *Runner) Stress(
	ctx context.Context,
	workers int,
	framesPerWorker uint64,
	rounds int,
) (Stats, error) {
	var (
		accesses  atomic.Uint64
		evictions atomic.Uint64
		failed    atomic.Uint64
	)

	eg, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		base := uint64(w) * framesPerWorker

		eg.Go(func() error {
			for round := 0; round < rounds; round++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				for i := uint64(0); i < framesPerWorker; i++ {
					frameID := common.FrameID(base + i)
					run.r.RecordAccess(frameID, replacer.AccessScan)
					run.r.SetEvictable(frameID, true)
					accesses.Add(1)
				}

				for j := uint64(0); j < framesPerWorker; j++ {
					if run.r.Evict().IsSome() {
						evictions.Add(1)
					} else {
						failed.Add(1)
					}
				}
			}

			return nil
		})
	}

	err := eg.Wait()

	stats := Stats{
		Accesses:        accesses.Load(),
		Evictions:       evictions.Load(),
		FailedEvictions: failed.Load(),
	}

	run.log.Infof(
		"stress finished: %d accesses, %d evictions, %d failed evictions",
		stats.Accesses,
		stats.Evictions,
		stats.FailedEvictions,
	)

	return stats, err
}

// Drain evicts until nothing is evictable and returns the victim count.
func (run *Runner) Drain() uint64 {
	drained := uint64(0)
	for run.r.Evict().IsSome() {
		drained++
	}

	return drained
}
