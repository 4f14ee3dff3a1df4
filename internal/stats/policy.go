package stats

import (
	"fmt"

	"github.com/oldg9516/ai-agents-stats/internal/taxonomy"
)

// Mode names one of the dashboard aggregation modes. The original dashboard
// computed each mode with its own reducer; here they are all policies over a
// single fold.
type Mode string

const (
	// ModeQuality folds every record and scores quality labels into groups.
	ModeQuality Mode = "quality"

	// ModeActions folds only verified records, for action-level review.
	ModeActions Mode = "actions"

	// ModeAutomation folds every record and ranks categories by their
	// automation score; quality labels are ignored.
	ModeAutomation Mode = "automation"
)

// Policy parameterizes the aggregation fold: which records participate,
// which counters accumulate, which sentinel types are excluded from the
// assembled distribution, and how the automation score is weighted.
type Policy struct {
	Mode Mode

	// VerifiedOnly skips records without a verification entirely.
	VerifiedOnly bool

	// ScoreClassifications folds quality labels into score-group counts.
	ScoreClassifications bool

	// DistributionExcludes are filtered from the assembled type
	// distribution. They still participate in the fold's internal counts.
	DistributionExcludes map[taxonomy.ClassificationType]bool

	// AccuracyWeight and VolumeWeight blend verified accuracy with
	// normalized volume into the automation score. Business-tunable, no
	// documented derivation; defaults preserved from the original.
	AccuracyWeight float64
	VolumeWeight   float64
}

// DefaultPolicy returns the quality-mode policy.
func DefaultPolicy() Policy {
	return PolicyFor(ModeQuality)
}

// PolicyFor returns the canned policy for a mode. Unknown modes fall back to
// quality; use ParseMode first when the mode comes from user input.
func PolicyFor(mode Mode) Policy {
	p := Policy{
		Mode:                 mode,
		ScoreClassifications: true,
		DistributionExcludes: map[taxonomy.ClassificationType]bool{
			taxonomy.TypeNone: true,
		},
		AccuracyWeight: DefaultAccuracyWeight,
		VolumeWeight:   DefaultVolumeWeight,
	}
	switch mode {
	case ModeActions:
		p.VerifiedOnly = true
	case ModeAutomation:
		p.ScoreClassifications = false
	case ModeQuality:
	default:
		p.Mode = ModeQuality
	}
	return p
}

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQuality, ModeActions, ModeAutomation:
		return Mode(s), nil
	case "":
		return ModeQuality, nil
	default:
		return "", fmt.Errorf("unknown mode %q (supported: quality, actions, automation)", s)
	}
}

func (p Policy) validate() error {
	if p.AccuracyWeight < 0 || p.VolumeWeight < 0 {
		return fmt.Errorf("automation weights must be non-negative, got accuracy=%v volume=%v",
			p.AccuracyWeight, p.VolumeWeight)
	}
	if p.AccuracyWeight+p.VolumeWeight == 0 {
		return fmt.Errorf("automation weights must not both be zero")
	}
	return nil
}
