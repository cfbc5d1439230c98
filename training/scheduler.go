/*
scheduler.go - Booster-aware plan simulation

PURPOSE:
  Simulates an ordered plan of (skill, target level) pairs against a
  single depleting booster, producing a per-skill and aggregate ledger.
  This is where booster time carries over across skill boundaries.

KEY INSIGHT:
  Later items' booster availability depends on exactly how much booster
  time earlier items consumed, so a run is inherently sequential. The
  booster's remaining hours are the only carried state and they are local
  to one Simulate call.

PER-ITEM ALGORITHM:
  1. SP to train; zero-SP items emit a zero-cost entry and never touch
     the booster or divide by a rate
  2. Base rate (attributes without booster) and boosted rate (with the
     booster's bonus on all attributes)
  3. Baseline duration, always computed as if no booster existed
  4. Booster.Apply yields the coverage window (none / full / partial)
  5. Saved = baseline - actual; when both are infinite the item cannot be
     trained under either rate and saved is defined as exactly 0
  6. The skill is mutated to (target level, 0 partial SP), modeling how a
     real training queue consumes skills

MUTATION:
  Skills are advanced in place. Callers reusing a skill set across runs
  must snapshot first; the scheduler provides no isolation.

SEE ALSO:
  - booster.go: Coverage window semantics
  - ledger.go: Output types
*/
package training

import "fmt"

// PlanItem is one step of a training plan.
type PlanItem struct {
	Skill       *Skill
	TargetLevel int
}

// Scheduler simulates training plans for one character configuration.
// Attributes must not already carry a booster bonus; the booster passed to
// Simulate supplies it.
type Scheduler struct {
	Attributes AttributeSet
	Clone      CloneState
}

// NewScheduler creates a scheduler for the given character.
func NewScheduler(attrs AttributeSet, clone CloneState) *Scheduler {
	return &Scheduler{Attributes: attrs, Clone: clone}
}

// Simulate runs the plan against one booster and returns the ledger.
// The plan is validated up front: any malformed item aborts the call with
// a ConfigError and no ledger. booster may be nil for an unboosted run.
//
// Skills are mutated to their target levels as a side effect.
func (s *Scheduler) Simulate(plan []PlanItem, booster *Booster) (*PlanLedger, error) {
	if err := s.validate(plan, booster); err != nil {
		return nil, err
	}

	base := s.Attributes.WithBooster(0)
	var boosted AttributeSet
	run := Booster{}
	if booster != nil {
		run = *booster // snapshot: the caller's booster is never depleted
		boosted = s.Attributes.WithBooster(booster.Bonus)
	} else {
		boosted = base
	}

	ledger := &PlanLedger{Entries: make([]LedgerEntry, 0, len(plan))}
	for _, item := range plan {
		entry := s.simulateItem(item, base, boosted, &run)
		ledger.Entries = append(ledger.Entries, entry)
		ledger.TotalBaseHours += entry.BaseHours
		ledger.TotalActualHours += entry.ActualHours

		// Queue consumption: the skill is now at the target level.
		if item.TargetLevel > item.Skill.Level {
			item.Skill.Level = item.TargetLevel
			item.Skill.SP = 0
		}
	}

	if IsInfinite(ledger.TotalBaseHours) && IsInfinite(ledger.TotalActualHours) {
		ledger.TotalSavedHours = 0
	} else {
		ledger.TotalSavedHours = ledger.TotalBaseHours - ledger.TotalActualHours
	}
	return ledger, nil
}

// SimulateSkill is the single-item validation mode: a degenerate call to
// the same scheduler with a one-element plan.
func (s *Scheduler) SimulateSkill(skill *Skill, targetLevel int, booster *Booster) (LedgerEntry, error) {
	ledger, err := s.Simulate([]PlanItem{{Skill: skill, TargetLevel: targetLevel}}, booster)
	if err != nil {
		return LedgerEntry{}, err
	}
	return ledger.Entries[0], nil
}

func (s *Scheduler) simulateItem(item PlanItem, base, boosted AttributeSet, run *Booster) LedgerEntry {
	sp := item.Skill.SPToTrain(item.TargetLevel)
	entry := LedgerEntry{
		Skill:       item.Skill.Name,
		FromLevel:   item.Skill.Level,
		TargetLevel: item.TargetLevel,
		SP:          sp,
	}

	baseRate := SkillRate(base, item.Skill, s.Clone)
	boostedRate := SkillRate(boosted, item.Skill, s.Clone)

	// Baseline is always the no-booster projection for the whole block.
	entry.BaseHours = TrainingTime(float64(sp), baseRate)

	window := run.Apply(sp, baseRate, boostedRate)
	entry.Coverage = window.Coverage
	entry.ActualHours = window.Hours()
	entry.BoosterHoursLeft = run.Hours

	if IsInfinite(entry.BaseHours) && IsInfinite(entry.ActualHours) {
		// Untrainable under either rate: no progress is possible in
		// either world, so the saving is 0 by definition, not Inf-Inf.
		entry.SavedHours = 0
	} else {
		entry.SavedHours = entry.BaseHours - entry.ActualHours
	}
	return entry
}

// validate checks the whole plan before any simulation work. All-or-nothing:
// the first malformed item aborts with a ConfigError.
func (s *Scheduler) validate(plan []PlanItem, booster *Booster) error {
	if !s.Clone.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCloneState, s.Clone)
	}
	if booster != nil && (booster.Bonus < 0 || booster.Hours < 0) {
		return fmt.Errorf("%w: bonus=%d hours=%g", ErrInvalidBooster, booster.Bonus, booster.Hours)
	}
	for i, item := range plan {
		if err := validateItem(i, item); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(index int, item PlanItem) error {
	name := ""
	if item.Skill != nil {
		name = item.Skill.Name
	}
	fail := func(reason string) error {
		return &ConfigError{Index: index, Skill: name, Reason: reason}
	}

	switch {
	case item.Skill == nil:
		return fail("nil skill")
	case item.Skill.Rank <= 0:
		return fail(fmt.Sprintf("rank must be positive, got %d", item.Skill.Rank))
	case !item.Skill.Primary.Valid():
		return fail(fmt.Sprintf("unknown primary attribute %q", item.Skill.Primary))
	case !item.Skill.Secondary.Valid():
		return fail(fmt.Sprintf("unknown secondary attribute %q", item.Skill.Secondary))
	case item.Skill.Level < 0 || item.Skill.Level > MaxLevel:
		return fail(fmt.Sprintf("current level %d outside [0,%d]", item.Skill.Level, MaxLevel))
	case item.TargetLevel < 0 || item.TargetLevel > MaxLevel:
		return fail(fmt.Sprintf("target level %d outside [0,%d]", item.TargetLevel, MaxLevel))
	case item.Skill.SP < 0:
		return fail(fmt.Sprintf("partial SP must be >= 0, got %d", item.Skill.SP))
	case item.Skill.Level < MaxLevel && item.Skill.SP >= SPForLevel(item.Skill.Rank, item.Skill.Level+1):
		return fail(fmt.Sprintf("partial SP %d exceeds cost of level %d (%d)",
			item.Skill.SP, item.Skill.Level+1, SPForLevel(item.Skill.Rank, item.Skill.Level+1)))
	case item.Skill.Level == MaxLevel && item.Skill.SP > 0:
		return fail("partial SP past maximum level")
	}
	return nil
}
