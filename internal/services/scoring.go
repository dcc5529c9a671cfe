package services

import (
	"github.com/teamtempo/engage-backend/internal/types"
)

// RelativeValue converts a selected answer option into its normalized
// position score on the 0-100 scale.
//
// The [0,100] range is split into n equal buckets, one per option in the
// snapshot, and the selected option scores the cumulative upper bound of its
// bucket: ceil((100/n) * p) where p is its 1-based position. The lowest
// option therefore never scores 0 and the highest always scores exactly 100.
//
// valid is the snapshot of non-retired options taken at the start of the
// scoring call. A selected option missing from that snapshot (retired in the
// window between selection and scoring) is still scored: it is merged into
// the snapshot at its own rank. An empty snapshot is a catalog
// misconfiguration and fails with ErrNoValidOptions.
func RelativeValue(valid []*types.AnswerOption, selected *types.AnswerOption) (float64, error) {
	if selected == nil {
		return 0, ErrOptionNotApplicable
	}
	if len(valid) == 0 {
		return 0, ErrNoValidOptions
	}

	n := len(valid)
	p := 0
	inSnapshot := false
	for _, option := range valid {
		if option.ID == selected.ID {
			inSnapshot = true
		}
		if option.Rank <= selected.Rank {
			p++
		}
	}
	if !inSnapshot {
		n++
		p++
	}

	// Integer ceil; float division of 100/n would accumulate error and can
	// push the top bucket past 100.
	raw := (100*p + n - 1) / n
	return float64(raw), nil
}

// ResolveWeight blends the user's meta tag weights with the question's own
// weight: the question weight joins the tag weights as one extra sample and
// the result is the arithmetic mean. With no linked tags the mean
// degenerates to exactly the question weight.
//
// The result is a plain multiplier; the final value is deliberately not
// clamped back into [0,100].
func ResolveWeight(tagWeights []float64, questionWeight float64) float64 {
	sum := questionWeight
	for _, w := range tagWeights {
		sum += w
	}
	return sum / float64(len(tagWeights)+1)
}
