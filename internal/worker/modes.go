package worker

import (
	"context"
	"sort"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/stats"
)

// Aggregator computes the statistics tree for one mode over a fixed record
// set. The pipeline's runner satisfies this.
type Aggregator interface {
	Run(ctx context.Context, mode stats.Mode) (*model.StatsResult, error)
}

// ModeJob computes one mode's statistics.
type ModeJob struct {
	Mode       stats.Mode
	Aggregator Aggregator
}

// Execute runs the aggregation for the job's mode.
func (j *ModeJob) Execute(ctx context.Context) Result {
	result, err := j.Aggregator.Run(ctx, j.Mode)
	return &ModeResult{Mode: j.Mode, Stats: result, Error: err}
}

// ModeResult is the outcome of one mode's aggregation.
type ModeResult struct {
	Mode  stats.Mode
	Stats *model.StatsResult
	Error error
}

// GetError returns the aggregation error, if any.
func (r *ModeResult) GetError() error {
	return r.Error
}

// ModeRunner computes several modes concurrently over the same record set.
// Each mode is an independent pure fold, so they parallelize trivially.
type ModeRunner struct {
	aggregator  Aggregator
	concurrency int
}

// NewModeRunner creates a runner with the given concurrency.
func NewModeRunner(aggregator Aggregator, concurrency int) *ModeRunner {
	return &ModeRunner{aggregator: aggregator, concurrency: concurrency}
}

// Run computes all requested modes and returns the results sorted by mode
// name, so callers see a deterministic order regardless of completion order.
func (r *ModeRunner) Run(ctx context.Context, modes []stats.Mode) []*ModeResult {
	if len(modes) == 0 {
		return []*ModeResult{}
	}

	pool := NewPool(r.concurrency)
	pool.Start()

	for _, mode := range modes {
		pool.Submit(&ModeJob{Mode: mode, Aggregator: r.aggregator})
	}

	results := pool.Wait()

	modeResults := make([]*ModeResult, len(results))
	for i, result := range results {
		modeResults[i] = result.(*ModeResult)
	}
	sort.Slice(modeResults, func(i, j int) bool {
		return modeResults[i].Mode < modeResults[j].Mode
	})

	return modeResults
}
