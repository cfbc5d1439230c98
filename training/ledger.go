/*
ledger.go - Simulation output types

PURPOSE:
  The scheduler's output: one LedgerEntry per plan item plus aggregate
  totals. Durations are always hours; human formatting lives in format.go
  and is a pure presentation concern.
*/
package training

// LedgerEntry is the per-skill simulation result.
type LedgerEntry struct {
	Skill       string
	FromLevel   int
	TargetLevel int
	SP          int64

	// BaseHours is the informational baseline: duration at the base rate
	// as if no booster existed. ActualHours accounts for booster coverage.
	// Saved = base - actual and is never negative beyond floating-point
	// noise (the boosted rate is always >= the base rate).
	BaseHours   float64
	ActualHours float64
	SavedHours  float64

	// BoosterHoursLeft is the booster's remaining duration after this
	// entry. Non-increasing across a ledger, never negative.
	BoosterHoursLeft float64

	Coverage Coverage
}

// PlanLedger is the ordered simulation result for a whole plan.
type PlanLedger struct {
	Entries []LedgerEntry

	TotalBaseHours   float64
	TotalActualHours float64
	TotalSavedHours  float64
}

// PercentSaved returns total saved as a percentage of the baseline. The
// second return is false when the baseline is zero or infinite, in which
// case the percentage is undefined and should be omitted from reports.
func (l *PlanLedger) PercentSaved() (float64, bool) {
	if l.TotalBaseHours <= 0 || IsInfinite(l.TotalBaseHours) {
		return 0, false
	}
	return l.TotalSavedHours / l.TotalBaseHours * 100, true
}
