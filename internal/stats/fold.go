package stats

import (
	"github.com/oldg9516/ai-agents-stats/internal/model"
	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// node accumulates counts for one level of the breakdown: global, one
// category, or one sub-category. Nodes are created lazily on the first record
// seen for their key, mutated in place during the fold, and read-only after
// it completes. Nothing retains them once the result is assembled.
type node struct {
	totalRecords  int
	totalVerified int

	groupCounts map[taxonomy.ScoreGroup]int

	primaryCorrect   int
	primaryIncorrect int

	classificationCorrect   int
	classificationIncorrect int
}

func newNode() *node {
	return &node{groupCounts: make(map[taxonomy.ScoreGroup]int)}
}

// categoryNode is a category-level accumulator with its sub-category tree.
type categoryNode struct {
	node
	subs map[string]*node
}

// distEntry accumulates the per-type distribution counters.
type distEntry struct {
	aiPredicted      int
	verifiedAccepted int
	verifiedRejected int
}

// accumulators is the full fold state: one global node, the lazily built
// category tree, and the classification-type distribution.
type accumulators struct {
	global       node
	categories   map[string]*categoryNode
	distribution map[taxonomy.ClassificationType]*distEntry
}

// fold walks the record list once, updating every accumulator level. The
// per-record update is commutative, so any permutation of the input produces
// identical accumulators.
func fold(records []model.ClassificationRecord, tax taxonomy.Taxonomy, pol Policy) *accumulators {
	acc := &accumulators{
		global:       *newNode(),
		categories:   make(map[string]*categoryNode),
		distribution: make(map[taxonomy.ClassificationType]*distEntry),
	}

	for _, r := range records {
		if pol.VerifiedOnly && r.Verification == nil {
			continue
		}
		acc.foldRecord(r, tax, pol)
	}
	return acc
}

func (acc *accumulators) foldRecord(r model.ClassificationRecord, tax taxonomy.Taxonomy, pol Policy) {
	categoryKey, subCategoryKey := Normalize(r)

	cat, ok := acc.categories[categoryKey]
	if !ok {
		cat = &categoryNode{node: *newNode(), subs: make(map[string]*node)}
		acc.categories[categoryKey] = cat
	}
	sub, ok := cat.subs[subCategoryKey]
	if !ok {
		sub = newNode()
		cat.subs[subCategoryKey] = sub
	}

	levels := [3]*node{&acc.global, &cat.node, sub}

	for _, n := range levels {
		n.totalRecords++
	}

	for _, ct := range r.AIPredictedTypes {
		acc.entry(ct).aiPredicted++
	}

	if v := r.Verification; v != nil {
		for _, n := range levels {
			n.totalVerified++
			if v.PrimaryJudgmentCorrect {
				n.primaryCorrect++
			} else {
				n.primaryIncorrect++
			}
			// A nil correction means the reviewer accepted the AI's label
			// set; any non-nil correction, even an empty or coinciding one,
			// counts as incorrect.
			if v.Corrected() {
				n.classificationIncorrect++
			} else {
				n.classificationCorrect++
			}
		}

		acc.foldVerifiedTypes(r.AIPredictedTypes, v)
	}

	if pol.ScoreClassifications && r.Classification != "" {
		group := tax.Group(r.Classification)
		for _, n := range levels {
			n.groupCounts[group]++
		}
	}
}

// foldVerifiedTypes attributes per-type verification outcomes. A type the AI
// predicted is accepted when the reviewer agreed outright or kept it in the
// correction, rejected otherwise. Types that appear only in the correction
// were missed by the AI entirely: they count as accepted without touching
// aiPredicted, even when the AI predicted nothing at all.
func (acc *accumulators) foldVerifiedTypes(predicted []taxonomy.ClassificationType, v *model.Verification) {
	if !v.Corrected() {
		for _, ct := range predicted {
			acc.entry(ct).verifiedAccepted++
		}
		return
	}

	kept := make(map[taxonomy.ClassificationType]bool, len(v.Correction))
	for _, ct := range v.Correction {
		kept[ct] = true
	}

	predictedSet := make(map[taxonomy.ClassificationType]bool, len(predicted))
	for _, ct := range predicted {
		predictedSet[ct] = true
		if kept[ct] {
			acc.entry(ct).verifiedAccepted++
		} else {
			acc.entry(ct).verifiedRejected++
		}
	}

	for _, ct := range v.Correction {
		if !predictedSet[ct] {
			acc.entry(ct).verifiedAccepted++
		}
	}
}

func (acc *accumulators) entry(ct taxonomy.ClassificationType) *distEntry {
	e, ok := acc.distribution[ct]
	if !ok {
		e = &distEntry{}
		acc.distribution[ct] = e
	}
	return e
}

// evaluable is the rate denominator for quality percentages: verified records
// minus the excluded-group count. Never exposed directly.
func (n *node) evaluable() int {
	return n.totalVerified - n.groupCounts[taxonomy.GroupExcluded]
}
