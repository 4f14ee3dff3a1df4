package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/stats"
)

// fakeAggregator returns canned results per mode.
type fakeAggregator struct {
	mu    sync.Mutex
	calls []stats.Mode
	fail  map[stats.Mode]bool
}

func (f *fakeAggregator) Run(ctx context.Context, mode stats.Mode) (*model.StatsResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, mode)
	f.mu.Unlock()

	if f.fail[mode] {
		return nil, errors.New("aggregation failed")
	}
	return &model.StatsResult{Mode: string(mode)}, nil
}

func TestModeRunner_AllModes(t *testing.T) {
	agg := &fakeAggregator{}
	runner := NewModeRunner(agg, 3)

	modes := []stats.Mode{stats.ModeQuality, stats.ModeActions, stats.ModeAutomation}
	results := runner.Run(context.Background(), modes)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Results are sorted by mode name regardless of completion order.
	for i := 1; i < len(results); i++ {
		if results[i-1].Mode >= results[i].Mode {
			t.Errorf("results not sorted: %s before %s", results[i-1].Mode, results[i].Mode)
		}
	}

	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("mode %s failed: %v", r.Mode, r.Error)
		}
		if r.Stats == nil || r.Stats.Mode != string(r.Mode) {
			t.Errorf("mode %s: unexpected stats %+v", r.Mode, r.Stats)
		}
	}

	agg.mu.Lock()
	defer agg.mu.Unlock()
	if len(agg.calls) != 3 {
		t.Errorf("expected 3 aggregator calls, got %d", len(agg.calls))
	}
}

func TestModeRunner_PartialFailure(t *testing.T) {
	agg := &fakeAggregator{fail: map[stats.Mode]bool{stats.ModeActions: true}}
	runner := NewModeRunner(agg, 2)

	results := runner.Run(context.Background(),
		[]stats.Mode{stats.ModeQuality, stats.ModeActions})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	var failed, succeeded int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.Mode != stats.ModeActions {
				t.Errorf("unexpected failing mode %s", r.Mode)
			}
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("failed = %d, succeeded = %d", failed, succeeded)
	}
}

func TestModeRunner_EmptyInput(t *testing.T) {
	runner := NewModeRunner(&fakeAggregator{}, 2)
	results := runner.Run(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
