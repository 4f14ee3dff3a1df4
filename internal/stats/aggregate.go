// Package stats implements the hierarchical classification aggregation
// engine: a single-pass fold of reviewed-record classifications into global,
// per-category, and per-sub-category statistics plus a per-type distribution,
// with derived accuracy, quality, and automation scores.
//
// The computation is a pure function of its input list: identical input, in
// any order, produces an identical result tree. Each invocation owns its
// accumulators, so concurrent aggregations need no locking.
package stats

import (
	"errors"
	"fmt"

	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// ErrInvalidInput marks an invalid invocation shape. Record-level
// irregularities never trigger it; those are absorbed by normalization.
var ErrInvalidInput = errors.New("invalid input")

// Aggregate folds the record list once and assembles the statistics tree.
// An empty or nil record list yields a fully zeroed result, never an error.
func Aggregate(records []model.ClassificationRecord, tax taxonomy.Taxonomy, pol Policy) (*model.StatsResult, error) {
	if tax == nil {
		return nil, fmt.Errorf("%w: nil taxonomy", ErrInvalidInput)
	}
	if err := pol.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	acc := fold(records, tax, pol)
	return assemble(acc, pol), nil
}
