// Package model defines the domain types shared across the aggregation
// engine: the reviewed-record input shape, the assembled statistics output
// tree, and process configuration.
package model

import (
	"time"

	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// ClassificationRecord is one previously reviewed AI support response as it
// arrives from the record source. The upstream store is loosely typed, so
// optional fields are pointers and are normalized, never rejected.
type ClassificationRecord struct {
	ID string `json:"id,omitempty" db:"id"`

	// Category is the primary grouping key (request type). Absent means the
	// source never categorized the record; an empty string is a real,
	// distinct key and is not coalesced with absence.
	Category *string `json:"category" db:"category"`

	// SubCategory is the secondary grouping key within a category.
	SubCategory *string `json:"sub_category" db:"sub_category"`

	// AIPredictedTypes are the handling labels the AI assigned. May be empty.
	AIPredictedTypes []taxonomy.ClassificationType `json:"ai_predicted_types"`

	// Verification is present only when a human reviewed the record. Absent
	// means the record counts toward volume but not toward accuracy.
	Verification *Verification `json:"verification,omitempty"`

	// Classification is the optional single quality label used by the
	// quality-scoring mode. Empty means no quality label was supplied.
	Classification taxonomy.ClassificationType `json:"classification,omitempty" db:"classification"`

	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Verification is a human review of one record.
//
// The nil-vs-empty distinction on Correction is load-bearing: a nil slice
// means the reviewer accepted the AI's label set as-is; a non-nil slice
// (possibly empty) is a correction record that replaces the AI set for
// accuracy purposes, even if it happens to match it. JSON null decodes to
// nil and [] decodes to an empty non-nil slice, which preserves exactly
// this distinction across the wire.
type Verification struct {
	PrimaryJudgmentCorrect bool                          `json:"primary_judgment_correct"`
	Correction             []taxonomy.ClassificationType `json:"correction"`
}

// Corrected reports whether the reviewer overrode the AI's label set.
func (v *Verification) Corrected() bool {
	return v.Correction != nil
}
