/*
booster.go - The depleting attribute booster and its coverage outcomes

PURPOSE:
  Models a cerebral-accelerator style booster: a flat bonus to all five
  attributes that lasts a fixed number of hours. As the scheduler advances
  through a plan the booster's remaining hours deplete monotonically; once
  they hit zero the booster contributes nothing for the rest of the run.

COVERAGE:
  Applying the booster to one block of SP has exactly three outcomes,
  modeled as an explicit tagged result rather than nested arithmetic so
  the tie-break at exact equality is testable in isolation:

    CoverageNone    - booster inactive or already depleted
    CoverageFull    - remaining hours cover the whole block at the
                      boosted rate (includes the exact-boundary case)
    CoveragePartial - booster expires mid-block: remaining hours at the
                      boosted rate, the rest at the base rate

SEE ALSO:
  - scheduler.go: Drives Apply across an ordered plan
*/
package training

// =============================================================================
// BOOSTER
// =============================================================================

// Booster is the ephemeral, depleting attribute bonus for one simulation
// run. It has no existence outside a run; snapshot per invocation.
type Booster struct {
	// Bonus is the additive bonus applied uniformly to all attributes.
	Bonus int
	// Hours is the remaining duration. Depletes to 0, never below.
	Hours float64
}

// Active reports whether the booster still contributes a bonus. A
// zero-strength booster is inert even with hours remaining: it neither
// boosts nor depletes.
func (b *Booster) Active() bool {
	return b != nil && b.Bonus > 0 && b.Hours > 0
}

// =============================================================================
// COVERAGE
// =============================================================================

// Coverage tags how much of one SP block the booster covered.
type Coverage string

const (
	CoverageNone    Coverage = "none"
	CoverageFull    Coverage = "full"
	CoveragePartial Coverage = "partial"
)

// Window is the outcome of applying the booster to one SP block.
type Window struct {
	Coverage Coverage

	// BoostedHours is time spent training at the boosted rate.
	// BaseHours is time spent at the base rate after the booster expired.
	// Either may be InfiniteHours when the corresponding rate is <= 0.
	BoostedHours float64
	BaseHours    float64

	// BoostedSP is the (continuous) SP trained while boosted.
	BoostedSP float64
}

// Hours returns the total wall-clock duration of the window.
func (w Window) Hours() float64 {
	return w.BoostedHours + w.BaseHours
}

// Apply consumes booster time for a block of sp points and returns the
// coverage window. The booster's remaining hours are depleted as a side
// effect: fully covered blocks subtract their boosted duration, partially
// covered blocks drain the booster to exactly 0.
//
// The exact boundary where the coverable SP equals the block is treated as
// full coverage, exiting with zero remaining hours rather than a
// zero-length split.
func (b *Booster) Apply(sp int64, baseRate, boostedRate float64) Window {
	if sp <= 0 {
		return Window{Coverage: CoverageNone}
	}
	if !b.Active() || boostedRate <= 0 {
		// A non-positive boosted rate cannot train anything; the block
		// runs entirely at the base rate (possibly forever) and the
		// booster is left untouched.
		return Window{
			Coverage:  CoverageNone,
			BaseHours: TrainingTime(float64(sp), baseRate),
		}
	}

	coverable := b.Hours * boostedRate
	if coverable >= float64(sp) {
		hours := TrainingTime(float64(sp), boostedRate)
		b.Hours -= hours
		if b.Hours < 0 {
			b.Hours = 0
		}
		return Window{
			Coverage:     CoverageFull,
			BoostedHours: hours,
			BoostedSP:    float64(sp),
		}
	}

	// Booster expires mid-block: it contributes exactly its remaining
	// hours at the boosted rate, the remainder trains at the base rate.
	boostedHours := b.Hours
	boostedSP := coverable
	remaining := float64(sp) - boostedSP
	b.Hours = 0
	return Window{
		Coverage:     CoveragePartial,
		BoostedHours: boostedHours,
		BaseHours:    TrainingTime(remaining, baseRate),
		BoostedSP:    boostedSP,
	}
}
