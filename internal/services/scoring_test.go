package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/types"
)

func rankedOptions(n int) []*types.AnswerOption {
	options := make([]*types.AnswerOption, 0, n)
	for i := 1; i <= n; i++ {
		options = append(options, &types.AnswerOption{
			ID:   uuid.New(),
			Rank: i,
		})
	}
	return options
}

func TestRelativeValue(t *testing.T) {
	cases := []struct {
		name     string
		n        int
		selected int // 1-based position into the snapshot
		want     float64
	}{
		{name: "four_options_third", n: 4, selected: 3, want: 75},
		{name: "three_options_first", n: 3, selected: 1, want: 34},
		{name: "three_options_second", n: 3, selected: 2, want: 67},
		{name: "highest_is_always_100", n: 3, selected: 3, want: 100},
		{name: "single_option", n: 1, selected: 1, want: 100},
		{name: "lowest_never_zero", n: 100, selected: 1, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid := rankedOptions(tc.n)
			got, err := RelativeValue(valid, valid[tc.selected-1])
			if err != nil {
				t.Fatalf("RelativeValue: %v", err)
			}
			if got != tc.want {
				t.Fatalf("RelativeValue(n=%d, p=%d)=%v, want %v", tc.n, tc.selected, got, tc.want)
			}
		})
	}
}

func TestRelativeValueMonotonic(t *testing.T) {
	for _, n := range []int{2, 3, 5, 7, 10} {
		valid := rankedOptions(n)
		prev := 0.0
		for p := 0; p < n; p++ {
			got, err := RelativeValue(valid, valid[p])
			if err != nil {
				t.Fatalf("RelativeValue(n=%d, p=%d): %v", n, p+1, err)
			}
			if got <= prev {
				t.Fatalf("n=%d: value at position %d (%v) not above position %d (%v)", n, p+1, got, p, prev)
			}
			if got > 100 {
				t.Fatalf("n=%d, p=%d: value %v above 100", n, p+1, got)
			}
			prev = got
		}
		if prev != 100 {
			t.Fatalf("n=%d: top position scored %v, want 100", n, prev)
		}
	}
}

func TestRelativeValueRetiredSelectionMergesIntoSnapshot(t *testing.T) {
	// The selected option was retired between selection and scoring: it is
	// no longer in the snapshot but still gets a position among survivors.
	valid := rankedOptions(3)
	retired := &types.AnswerOption{ID: uuid.New(), Rank: 2}

	got, err := RelativeValue([]*types.AnswerOption{valid[0], valid[2]}, retired)
	if err != nil {
		t.Fatalf("RelativeValue: %v", err)
	}
	// Merged snapshot has 3 options and the retired one sits second:
	// ceil((100/3)*2) = 67.
	if got != 67 {
		t.Fatalf("RelativeValue(retired mid-rank)=%v, want 67", got)
	}
}

func TestRelativeValueEmptySnapshot(t *testing.T) {
	_, err := RelativeValue(nil, &types.AnswerOption{ID: uuid.New(), Rank: 1})
	if !errors.Is(err, ErrNoValidOptions) {
		t.Fatalf("expected ErrNoValidOptions, got %v", err)
	}
}

func TestRelativeValueNilSelection(t *testing.T) {
	_, err := RelativeValue(rankedOptions(3), nil)
	if !errors.Is(err, ErrOptionNotApplicable) {
		t.Fatalf("expected ErrOptionNotApplicable, got %v", err)
	}
}

func TestResolveWeight(t *testing.T) {
	cases := []struct {
		name           string
		tagWeights     []float64
		questionWeight float64
		want           float64
	}{
		{name: "no_tags_is_question_weight", tagWeights: nil, questionWeight: 1.5, want: 1.5},
		{name: "single_tag", tagWeights: []float64{2}, questionWeight: 1, want: 1.5},
		{name: "several_tags", tagWeights: []float64{1, 2, 3}, questionWeight: 2, want: 2},
		{name: "all_ones_stay_one", tagWeights: []float64{1, 1, 1}, questionWeight: 1, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveWeight(tc.tagWeights, tc.questionWeight)
			if got != tc.want {
				t.Fatalf("ResolveWeight(%v, %v)=%v, want %v", tc.tagWeights, tc.questionWeight, got, tc.want)
			}
		})
	}
}
