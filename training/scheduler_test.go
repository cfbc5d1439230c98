package training_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/training-engine/training"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func combatAttrs() training.AttributeSet {
	// Remapped combat character: Per 27, Wil 21, rest at floor.
	return training.NewAttributeSet(17).
		Set(training.Perception, 27, 0).
		Set(training.Willpower, 21, 0)
}

func gunnery() *training.Skill {
	return &training.Skill{
		Name:      "Gunnery",
		Rank:      1,
		Primary:   training.Perception,
		Secondary: training.Willpower,
	}
}

func planOf(items ...training.PlanItem) []training.PlanItem { return items }

// =============================================================================
// BASELINE (NO BOOSTER)
// =============================================================================

func TestSimulate_NoBooster_BaselineExact(t *testing.T) {
	// GIVEN: Rank-1 skill, Per 27 / Wil 21, Omega, no booster
	// WHEN: Training level 0 -> 5
	// THEN: base duration is exactly total SP / 2250

	s := training.NewScheduler(combatAttrs(), training.CloneOmega)
	skill := gunnery()

	ledger, err := s.Simulate(planOf(training.PlanItem{Skill: skill, TargetLevel: 5}), nil)
	require.NoError(t, err)
	require.Len(t, ledger.Entries, 1)

	entry := ledger.Entries[0]
	assert.Equal(t, int64(310918), entry.SP)
	assert.Equal(t, 310918.0/2250.0, entry.BaseHours)
	assert.Equal(t, entry.BaseHours, entry.ActualHours, "no booster: actual == base")
	assert.Zero(t, entry.SavedHours)
	assert.Equal(t, training.CoverageNone, entry.Coverage)

	// Queue consumption: the skill was advanced in place.
	assert.Equal(t, 5, skill.Level)
	assert.Zero(t, skill.SP)
}

// =============================================================================
// BOOSTER COVERAGE ACROSS A PLAN
// =============================================================================

func TestSimulate_BoosterExpiresMidSkill_Split(t *testing.T) {
	// GIVEN: All attributes 10 (base rate 900/h), +10 booster (1800/h) for 3h
	// WHEN: Training a rank-1 skill 0 -> 3 (9664 SP)
	// THEN: 3h boosted covers 5400 SP, 4264 SP at 900/h, saved exactly 3h

	attrs := training.NewAttributeSet(10)
	s := training.NewScheduler(attrs, training.CloneOmega)
	skill := gunnery()

	ledger, err := s.Simulate(
		planOf(training.PlanItem{Skill: skill, TargetLevel: 3}),
		&training.Booster{Bonus: 10, Hours: 3},
	)
	require.NoError(t, err)

	entry := ledger.Entries[0]
	assert.Equal(t, int64(9664), entry.SP)
	assert.Equal(t, training.CoveragePartial, entry.Coverage)
	assert.InDelta(t, 9664.0/900.0, entry.BaseHours, 1e-9)
	assert.InDelta(t, 3+4264.0/900.0, entry.ActualHours, 1e-9)
	assert.InDelta(t, 3.0, entry.SavedHours, 1e-9)
	assert.Zero(t, entry.BoosterHoursLeft)
}

func TestSimulate_BoosterCarriesAcrossSkills(t *testing.T) {
	// GIVEN: Two skills; the booster fully covers the first and expires
	//        during the second
	// THEN: Remaining hours after skill one equal exactly what skill two
	//       starts with, and the depletion sequence never increases

	attrs := training.NewAttributeSet(10) // base 900/h, boosted 1800/h
	s := training.NewScheduler(attrs, training.CloneOmega)

	first := gunnery()  // 0 -> 2: 1664 SP
	second := gunnery() // 0 -> 3: 9664 SP
	second.Name = "Small Hybrid Turret"

	ledger, err := s.Simulate(planOf(
		training.PlanItem{Skill: first, TargetLevel: 2},
		training.PlanItem{Skill: second, TargetLevel: 3},
	), &training.Booster{Bonus: 10, Hours: 3})
	require.NoError(t, err)
	require.Len(t, ledger.Entries, 2)

	e1, e2 := ledger.Entries[0], ledger.Entries[1]
	assert.Equal(t, training.CoverageFull, e1.Coverage)
	assert.InDelta(t, 1664.0/1800.0, e1.ActualHours, 1e-9)
	assert.InDelta(t, 3-1664.0/1800.0, e1.BoosterHoursLeft, 1e-9)

	assert.Equal(t, training.CoveragePartial, e2.Coverage)
	assert.InDelta(t, e1.BoosterHoursLeft, e2.ActualHours-((9664.0-e1.BoosterHoursLeft*1800)/900), 1e-9,
		"second skill spends the leftover booster hours boosted, rest at base rate")
	assert.Zero(t, e2.BoosterHoursLeft)

	// Depletion invariant: non-increasing, never negative.
	prev := math.Inf(1)
	for _, e := range ledger.Entries {
		assert.GreaterOrEqual(t, prev, e.BoosterHoursLeft)
		assert.GreaterOrEqual(t, e.BoosterHoursLeft, 0.0)
		prev = e.BoosterHoursLeft
	}
}

func TestSimulate_ExactBoundary_FullCoverage(t *testing.T) {
	// GIVEN: Booster hours sized so coverable SP equals the block exactly
	// THEN: Full-coverage branch, zero remaining, not a split

	attrs := training.NewAttributeSet(10) // boosted 1800/h
	s := training.NewScheduler(attrs, training.CloneOmega)
	skill := gunnery()

	sp := skill.SPToTrain(2) // 1664
	hours := float64(sp) / 1800.0

	ledger, err := s.Simulate(
		planOf(training.PlanItem{Skill: skill, TargetLevel: 2}),
		&training.Booster{Bonus: 10, Hours: hours},
	)
	require.NoError(t, err)

	entry := ledger.Entries[0]
	assert.Equal(t, training.CoverageFull, entry.Coverage)
	assert.InDelta(t, hours, entry.ActualHours, 1e-12)
	assert.Zero(t, entry.BoosterHoursLeft)
}

func TestSimulate_CallerBoosterNotMutated(t *testing.T) {
	attrs := training.NewAttributeSet(10)
	s := training.NewScheduler(attrs, training.CloneOmega)
	booster := &training.Booster{Bonus: 10, Hours: 3}

	_, err := s.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 3}), booster)
	require.NoError(t, err)
	assert.Equal(t, 3.0, booster.Hours, "scheduler works on a snapshot")
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestSimulate_AlreadyTrained_ZeroCostAndNoBoosterUse(t *testing.T) {
	// GIVEN: A skill already at the target level
	// THEN: Zero SP, zero durations, booster untouched for later items

	attrs := training.NewAttributeSet(10)
	s := training.NewScheduler(attrs, training.CloneOmega)
	done := gunnery()
	done.Level = 5
	next := gunnery()
	next.Name = "Motion Prediction"

	ledger, err := s.Simulate(planOf(
		training.PlanItem{Skill: done, TargetLevel: 3},
		training.PlanItem{Skill: next, TargetLevel: 1},
	), &training.Booster{Bonus: 10, Hours: 3})
	require.NoError(t, err)

	e1 := ledger.Entries[0]
	assert.Zero(t, e1.SP)
	assert.Zero(t, e1.BaseHours)
	assert.Zero(t, e1.ActualHours)
	assert.Zero(t, e1.SavedHours)
	assert.Equal(t, 3.0, e1.BoosterHoursLeft, "zero-SP entry must not consume booster time")
	assert.Equal(t, 5, done.Level, "already-trained level is never lowered")

	assert.Equal(t, training.CoverageFull, ledger.Entries[1].Coverage)
}

func TestSimulate_ZeroRate_InfiniteSentinelAndZeroSaved(t *testing.T) {
	// GIVEN: All attributes zero, no booster
	// THEN: Base and actual are the infinite sentinel, saved is exactly 0

	attrs := training.NewAttributeSet(0)
	s := training.NewScheduler(attrs, training.CloneOmega)

	ledger, err := s.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 1}), nil)
	require.NoError(t, err)

	entry := ledger.Entries[0]
	assert.True(t, training.IsInfinite(entry.BaseHours))
	assert.True(t, training.IsInfinite(entry.ActualHours))
	assert.Zero(t, entry.SavedHours, "untrainable either way saves exactly 0, not Inf-Inf")

	assert.True(t, training.IsInfinite(ledger.TotalBaseHours))
	assert.True(t, training.IsInfinite(ledger.TotalActualHours))
	assert.Zero(t, ledger.TotalSavedHours)

	_, ok := ledger.PercentSaved()
	assert.False(t, ok, "percent saved undefined for an infinite baseline")
}

func TestSimulate_ZeroDurationBooster_NeverBoosts(t *testing.T) {
	attrs := training.NewAttributeSet(10)
	s := training.NewScheduler(attrs, training.CloneOmega)

	ledger, err := s.Simulate(
		planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 2}),
		&training.Booster{Bonus: 10, Hours: 0},
	)
	require.NoError(t, err)

	entry := ledger.Entries[0]
	assert.Equal(t, training.CoverageNone, entry.Coverage)
	assert.Equal(t, entry.BaseHours, entry.ActualHours)
	assert.Zero(t, entry.SavedHours)
}

// =============================================================================
// AGGREGATES AND PROPERTIES
// =============================================================================

func TestSimulate_AggregatesMatchEntrySums(t *testing.T) {
	attrs := combatAttrs()
	s := training.NewScheduler(attrs, training.CloneOmega)

	skills := []*training.Skill{gunnery(), gunnery(), gunnery()}
	skills[1].Name, skills[1].Rank = "Motion Prediction", 2
	skills[2].Name, skills[2].Rank = "Sharpshooter", 2

	ledger, err := s.Simulate(planOf(
		training.PlanItem{Skill: skills[0], TargetLevel: 5},
		training.PlanItem{Skill: skills[1], TargetLevel: 4},
		training.PlanItem{Skill: skills[2], TargetLevel: 4},
	), &training.Booster{Bonus: 10, Hours: 24})
	require.NoError(t, err)

	var base, actual float64
	for _, e := range ledger.Entries {
		base += e.BaseHours
		actual += e.ActualHours
		assert.GreaterOrEqual(t, e.SavedHours, -1e-9, "a booster must never slow training down")
	}
	assert.InDelta(t, base, ledger.TotalBaseHours, 1e-9)
	assert.InDelta(t, actual, ledger.TotalActualHours, 1e-9)
	assert.InDelta(t, base-actual, ledger.TotalSavedHours, 1e-9)

	pct, ok := ledger.PercentSaved()
	require.True(t, ok)
	assert.InDelta(t, ledger.TotalSavedHours/ledger.TotalBaseHours*100, pct, 1e-9)
}

func TestSimulate_AlphaHalvesOmegaRate(t *testing.T) {
	omega := training.NewScheduler(combatAttrs(), training.CloneOmega)
	alpha := training.NewScheduler(combatAttrs(), training.CloneAlpha)

	lo, err := omega.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 5}), nil)
	require.NoError(t, err)
	la, err := alpha.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 5}), nil)
	require.NoError(t, err)

	assert.InDelta(t, lo.TotalBaseHours*2, la.TotalBaseHours, 1e-9)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestSimulate_InvalidConfiguration_NoPartialLedger(t *testing.T) {
	attrs := combatAttrs()
	s := training.NewScheduler(attrs, training.CloneOmega)

	cases := []struct {
		name string
		item training.PlanItem
	}{
		{"zero rank", training.PlanItem{Skill: &training.Skill{Name: "Bad", Rank: 0, Primary: training.Perception, Secondary: training.Willpower}, TargetLevel: 1}},
		{"unknown attribute", training.PlanItem{Skill: &training.Skill{Name: "Bad", Rank: 1, Primary: "luck", Secondary: training.Willpower}, TargetLevel: 1}},
		{"target above max", training.PlanItem{Skill: gunnery(), TargetLevel: 6}},
		{"negative partial SP", training.PlanItem{Skill: &training.Skill{Name: "Bad", Rank: 1, Primary: training.Perception, Secondary: training.Willpower, SP: -1}, TargetLevel: 1}},
		{"partial SP past next level", training.PlanItem{Skill: &training.Skill{Name: "Bad", Rank: 1, Primary: training.Perception, Secondary: training.Willpower, SP: 250}, TargetLevel: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// A valid leading item must not produce a partial ledger.
			ledger, err := s.Simulate(planOf(
				training.PlanItem{Skill: gunnery(), TargetLevel: 1},
				tc.item,
			), nil)

			require.Error(t, err)
			assert.Nil(t, ledger, "invalid configuration must abort before simulation")
			assert.ErrorIs(t, err, training.ErrInvalidSkill)

			var cfgErr *training.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, 1, cfgErr.Index, "error must identify the offending item")
		})
	}
}

func TestSimulate_InvalidBooster_Rejected(t *testing.T) {
	s := training.NewScheduler(combatAttrs(), training.CloneOmega)

	_, err := s.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 1}),
		&training.Booster{Bonus: -5, Hours: 24})
	assert.ErrorIs(t, err, training.ErrInvalidBooster)

	_, err = s.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 1}),
		&training.Booster{Bonus: 10, Hours: -1})
	assert.ErrorIs(t, err, training.ErrInvalidBooster)
	assert.True(t, training.IsConfigError(err))
}

func TestSimulate_UnknownCloneState_Rejected(t *testing.T) {
	s := training.NewScheduler(combatAttrs(), "delta")
	_, err := s.Simulate(planOf(training.PlanItem{Skill: gunnery(), TargetLevel: 1}), nil)
	assert.ErrorIs(t, err, training.ErrInvalidCloneState)
}

func TestSimulateSkill_SingleItemDegenerateCall(t *testing.T) {
	s := training.NewScheduler(combatAttrs(), training.CloneOmega)
	entry, err := s.SimulateSkill(gunnery(), 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 310918.0/2250.0, entry.BaseHours)
}
