package training_test

import (
	"testing"

	"github.com/warp/training-engine/training"
)

// =============================================================================
// COST CURVE TESTS
// =============================================================================

func TestSPForLevel_Rank1_MatchesKnownCurve(t *testing.T) {
	// Known SP costs for a rank-1 skill (250 * sqrt(32)^(L-1), truncated).
	expected := map[int]int64{
		1: 250,
		2: 1414,
		3: 8000,
		4: 45254,
		5: 256000,
	}
	for level, want := range expected {
		if got := training.SPForLevel(1, level); got != want {
			t.Errorf("SPForLevel(1, %d) = %d, want %d", level, got, want)
		}
	}
}

func TestSPForLevel_ScalesLinearlyWithRank(t *testing.T) {
	for _, rank := range []int{2, 5, 16} {
		for level := 1; level <= 5; level++ {
			got := training.SPForLevel(rank, level)
			base := training.SPForLevel(1, level)
			// Truncation happens after the multiply, so the ranked cost can
			// exceed rank*base by at most rank-1 points.
			if got < int64(rank)*base || got >= int64(rank)*(base+1) {
				t.Errorf("SPForLevel(%d, %d) = %d, outside [%d, %d)",
					rank, level, got, int64(rank)*base, int64(rank)*(base+1))
			}
		}
	}
}

func TestSPForLevel_OutsideRange_Zero(t *testing.T) {
	for _, level := range []int{-1, 0, 6, 100} {
		if got := training.SPForLevel(3, level); got != 0 {
			t.Errorf("SPForLevel(3, %d) = %d, want 0", level, got)
		}
	}
}

func TestSPForLevel_StrictlyIncreasing(t *testing.T) {
	// Monotonicity: each level costs strictly more than the previous.
	for _, rank := range []int{1, 2, 8, 16} {
		for level := 1; level < 5; level++ {
			lo := training.SPForLevel(rank, level)
			hi := training.SPForLevel(rank, level+1)
			if hi <= lo {
				t.Errorf("rank %d: SPForLevel(%d)=%d not < SPForLevel(%d)=%d",
					rank, level, lo, level+1, hi)
			}
		}
	}
}

func TestTotalSPAtLevel_CumulativeSum(t *testing.T) {
	if got := training.TotalSPAtLevel(1, 0); got != 0 {
		t.Errorf("TotalSPAtLevel(1, 0) = %d, want 0", got)
	}
	if got := training.TotalSPAtLevel(1, 5); got != 310918 {
		t.Errorf("TotalSPAtLevel(1, 5) = %d, want 310918", got)
	}
	if got := training.TotalSPAtLevel(1, 2); got != 1664 {
		t.Errorf("TotalSPAtLevel(1, 2) = %d, want 1664", got)
	}
}

// =============================================================================
// SP TO TRAIN TESTS
// =============================================================================

func TestSPToTrain_FromScratch(t *testing.T) {
	skill := &training.Skill{Name: "Gunnery", Rank: 1, Primary: training.Perception, Secondary: training.Willpower}
	if got := skill.SPToTrain(5); got != 310918 {
		t.Errorf("SPToTrain(5) = %d, want 310918", got)
	}
}

func TestSPToTrain_PartialProgressCounts(t *testing.T) {
	// GIVEN: Level 2 with 1000 SP toward level 3
	// WHEN: Training to level 3
	// THEN: Only the remaining SP of level 3 is needed

	skill := &training.Skill{Name: "Rapid Firing", Rank: 2, Primary: training.Perception, Secondary: training.Willpower, Level: 2, SP: 1000}
	want := training.TotalSPAtLevel(2, 3) - training.TotalSPAtLevel(2, 2) - 1000
	if got := skill.SPToTrain(3); got != want {
		t.Errorf("SPToTrain(3) = %d, want %d", got, want)
	}
}

func TestSPToTrain_TargetAtOrBelowCurrent_Zero(t *testing.T) {
	skill := &training.Skill{Name: "Gunnery", Rank: 1, Primary: training.Perception, Secondary: training.Willpower, Level: 4}
	for _, target := range []int{0, 3, 4} {
		if got := skill.SPToTrain(target); got != 0 {
			t.Errorf("SPToTrain(%d) = %d, want 0", target, got)
		}
	}
}

func TestSnapshot_Independent(t *testing.T) {
	skill := &training.Skill{Name: "Gunnery", Rank: 1, Primary: training.Perception, Secondary: training.Willpower, Level: 1, SP: 100}
	snap := skill.Snapshot()
	skill.Level = 5
	skill.SP = 0
	if snap.Level != 1 || snap.SP != 100 {
		t.Errorf("snapshot mutated alongside original: %+v", snap)
	}
}
