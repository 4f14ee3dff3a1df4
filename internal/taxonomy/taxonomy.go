// Package taxonomy defines the closed set of classification types the review
// pipeline can assign to an AI support response, the numeric score each type
// implies, and the score group each type belongs to. The taxonomy is loaded
// once at process start and treated as immutable afterwards.
package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClassificationType is a label assigned to a support response, either by the
// AI itself (predicted handling types) or by a human reviewer (quality label).
type ClassificationType string

const (
	TypeResolved   ClassificationType = "resolved"
	TypeApproved   ClassificationType = "approved"
	TypeMinorEdits ClassificationType = "minor_edits"
	TypeMajorEdits ClassificationType = "major_edits"
	TypeEscalate   ClassificationType = "escalate"
	TypeIncorrect  ClassificationType = "incorrect"
	TypeHarmful    ClassificationType = "harmful"
	TypeOutOfScope ClassificationType = "out_of_scope"
	TypeDuplicate  ClassificationType = "duplicate"

	// TypeNone is the no-op sentinel. It participates in fold counts but is
	// filtered from assembled type distributions.
	TypeNone ClassificationType = "none"
)

// ScoreGroup buckets classification types for rate-style percentages.
// Excluded-group records are removed from both numerator and denominator when
// computing quality percentages; they are out of scope, not failures.
type ScoreGroup string

const (
	GroupGood      ScoreGroup = "good"
	GroupNeedsWork ScoreGroup = "needs_work"
	GroupCritical  ScoreGroup = "critical"
	GroupExcluded  ScoreGroup = "excluded"

	// GroupUnmapped absorbs types that appear in records but not in the
	// taxonomy, so data-quality issues in the source stay visible.
	GroupUnmapped ScoreGroup = "unmapped"
)

// AllGroups returns every score group in a stable order.
func AllGroups() []ScoreGroup {
	return []ScoreGroup{GroupGood, GroupNeedsWork, GroupCritical, GroupExcluded, GroupUnmapped}
}

// Entry maps one classification type to its implied score and group.
// Score is nil for types that carry no quality score (excluded-like groups).
type Entry struct {
	Score *float64   `yaml:"score"`
	Group ScoreGroup `yaml:"group"`
}

// Taxonomy is the full type-to-entry mapping. It must be total over every
// type that can legitimately appear in a record; anything else resolves to
// the unmapped group.
type Taxonomy map[ClassificationType]Entry

func score(v float64) *float64 { return &v }

// Default returns the built-in taxonomy.
func Default() Taxonomy {
	return Taxonomy{
		TypeResolved:   {Score: score(100), Group: GroupGood},
		TypeApproved:   {Score: score(90), Group: GroupGood},
		TypeMinorEdits: {Score: score(70), Group: GroupNeedsWork},
		TypeEscalate:   {Score: score(50), Group: GroupNeedsWork},
		TypeMajorEdits: {Score: score(40), Group: GroupNeedsWork},
		TypeIncorrect:  {Score: score(10), Group: GroupCritical},
		TypeHarmful:    {Score: score(0), Group: GroupCritical},
		TypeOutOfScope: {Group: GroupExcluded},
		TypeDuplicate:  {Group: GroupExcluded},
		TypeNone:       {Group: GroupExcluded},
	}
}

// Lookup resolves a type to its entry. Unknown types resolve to the unmapped
// group rather than being dropped or causing a fault.
func (t Taxonomy) Lookup(ct ClassificationType) Entry {
	if e, ok := t[ct]; ok {
		return e
	}
	return Entry{Group: GroupUnmapped}
}

// Group is a convenience wrapper around Lookup for the score group only.
func (t Taxonomy) Group(ct ClassificationType) ScoreGroup {
	return t.Lookup(ct).Group
}

// Validate checks that every entry belongs to a known, non-unmapped group and
// that the sentinel type is present.
func (t Taxonomy) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("taxonomy is empty")
	}
	known := map[ScoreGroup]bool{
		GroupGood:      true,
		GroupNeedsWork: true,
		GroupCritical:  true,
		GroupExcluded:  true,
	}
	for ct, e := range t {
		if !known[e.Group] {
			return fmt.Errorf("type %q maps to unknown score group %q", ct, e.Group)
		}
	}
	if _, ok := t[TypeNone]; !ok {
		return fmt.Errorf("taxonomy is missing the %q sentinel type", TypeNone)
	}
	return nil
}

// LoadFile reads a taxonomy override from a YAML file and validates it.
func LoadFile(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid taxonomy %s: %w", path, err)
	}
	return t, nil
}
