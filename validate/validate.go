/*
Package validate checks externally produced training-time exports against
the engine's formulas.

PURPOSE:
  Plan exports (one row per queued skill) carry the exporting tool's own
  SP/hour, duration and time-saved figures. This package recomputes each
  figure from the core formulas and reports any discrepancy beyond a
  tolerance as an arithmetic mismatch.

MISMATCHES ARE NOT FATAL:
  A bad row never halts processing. Mismatches are collected per entry and
  aggregated as a count, so one corrupt line still yields a full report
  for the rest of the export.

PRECISION:
  Tolerance comparisons use decimal arithmetic rather than raw float
  subtraction, so the tolerance itself is exact and rows close to the
  boundary classify deterministically.

SEE ALSO:
  - csv.go: Export file parsing
  - training: The formulas being validated against
*/
package validate

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/training-engine/training"
)

// =============================================================================
// EXPORT ENTRIES
// =============================================================================

// Entry is one exported plan row: the exporting tool's inputs and its
// claimed results.
type Entry struct {
	SkillName     string
	Level         int
	Rank          int
	PrimaryAttr   string
	SecondaryAttr string

	// Effective attribute values the exporter used (implants included).
	PrimaryValue   float64
	SecondaryValue float64
	BoosterBonus   int

	SPToTrain      int64
	SPPerHourOmega float64

	// TrainingRate scales the Omega rate for the clone state:
	// 1.0 for Omega, 0.5 for Alpha.
	TrainingRate float64

	TrainingTimeHours     float64
	TrainingTimeFormatted string

	// Baseline and derived savings as claimed by the exporter.
	OldTrainingTimeHours  float64
	TimeSavedHours        float64
	BoosterRemainingHours float64
}

// Mismatch is one arithmetic discrepancy between the export and the
// engine's own computation.
type Mismatch struct {
	Field    string
	Expected decimal.Decimal
	Got      decimal.Decimal
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s mismatch: export=%s, expected=%s", m.Field, m.Got, m.Expected)
}

// =============================================================================
// ENTRY VALIDATION
// =============================================================================

// DefaultTolerance is the per-field tolerance in the field's own unit
// (SP/hour for rates, hours for durations).
var DefaultTolerance = decimal.RequireFromString("0.01")

// spHourTolerance allows for the exporter rounding SP/hour to whole points.
var spHourTolerance = decimal.NewFromInt(1)

// CheckEntry recomputes an entry's figures and returns every field that
// disagrees beyond the tolerance. An empty slice means the row is clean.
func CheckEntry(e Entry, tolerance decimal.Decimal) []Mismatch {
	var mismatches []Mismatch

	// SP/hour from the raw attribute values (always the Omega rate; the
	// clone state is applied separately through TrainingRate).
	expectedRate := training.SPPerHour(e.PrimaryValue, e.SecondaryValue, training.CloneOmega)
	if exceeds(e.SPPerHourOmega, expectedRate, spHourTolerance) {
		mismatches = append(mismatches, mismatch("sp_per_hour", expectedRate, e.SPPerHourOmega))
	}

	// Training time from the exporter's own SP/hour, scaled by clone state.
	expectedTime := training.TrainingTime(float64(e.SPToTrain), e.SPPerHourOmega*e.TrainingRate)
	if !bothInfinite(e.TrainingTimeHours, expectedTime) && exceeds(e.TrainingTimeHours, expectedTime, tolerance) {
		mismatches = append(mismatches, mismatch("training_time", expectedTime, e.TrainingTimeHours))
	}

	// Time saved must equal baseline minus actual. A negative saving means
	// the export claims a booster slowed training down; that is a defect to
	// surface, never to clamp away.
	if e.OldTrainingTimeHours > 0 {
		expectedSaved := e.OldTrainingTimeHours - e.TrainingTimeHours
		if exceeds(e.TimeSavedHours, expectedSaved, tolerance) {
			mismatches = append(mismatches, mismatch("time_saved", expectedSaved, e.TimeSavedHours))
		}
		if decimal.NewFromFloat(e.TimeSavedHours).LessThan(tolerance.Neg()) {
			mismatches = append(mismatches, mismatch("negative_saving", 0, e.TimeSavedHours))
		}
	}

	// The formatted duration must round-trip to the hour figure.
	if e.TrainingTimeFormatted != "" {
		parsed, err := training.ParseHours(e.TrainingTimeFormatted)
		if err != nil {
			mismatches = append(mismatches, Mismatch{
				Field:    "formatted_time",
				Expected: dec(e.TrainingTimeHours),
			})
		} else if !bothInfinite(parsed, e.TrainingTimeHours) && exceeds(parsed, e.TrainingTimeHours, tolerance) {
			mismatches = append(mismatches, mismatch("formatted_time", e.TrainingTimeHours, parsed))
		}
	}

	return mismatches
}

func mismatch(field string, expected, got float64) Mismatch {
	return Mismatch{Field: field, Expected: dec(expected), Got: dec(got)}
}

// dec converts an hour/rate figure to decimal. decimal has no infinity, so
// the sentinel is capped at 1e99, far past any real duration.
func dec(v float64) decimal.Decimal {
	if training.IsInfinite(v) {
		return decimal.New(1, 99)
	}
	return decimal.NewFromFloat(v)
}

func exceeds(got, expected float64, tolerance decimal.Decimal) bool {
	if training.IsInfinite(got) || training.IsInfinite(expected) {
		return !bothInfinite(got, expected)
	}
	diff := decimal.NewFromFloat(got).Sub(decimal.NewFromFloat(expected)).Abs()
	return diff.GreaterThan(tolerance)
}

func bothInfinite(a, b float64) bool {
	return training.IsInfinite(a) && training.IsInfinite(b)
}

// =============================================================================
// EXPORT-LEVEL REPORT
// =============================================================================

// EntryResult pairs an entry with its mismatches.
type EntryResult struct {
	Entry      Entry
	Mismatches []Mismatch
}

// Report aggregates a whole export check.
type Report struct {
	Results []EntryResult

	Entries        int
	MismatchCount  int
	HasBooster     bool
	TotalHours     float64
	TotalOldHours  float64
	TotalSavedHrs  float64 // sum of positive per-entry savings only
	PercentSaved   float64
	HasPercentSave bool
}

// Clean reports whether the export passed with no mismatches.
func (r *Report) Clean() bool { return r.MismatchCount == 0 }

// CheckExport validates every entry with the default tolerance and
// aggregates totals the way the original reporting did: the saved column
// sums only positive per-entry savings, while percent saved is relative to
// the baseline total.
func CheckExport(entries []Entry) *Report {
	report := &Report{Entries: len(entries)}
	for _, e := range entries {
		mismatches := CheckEntry(e, DefaultTolerance)
		report.Results = append(report.Results, EntryResult{Entry: e, Mismatches: mismatches})
		report.MismatchCount += len(mismatches)

		report.TotalHours += e.TrainingTimeHours
		report.TotalOldHours += e.OldTrainingTimeHours
		if e.TimeSavedHours > 0 {
			report.TotalSavedHrs += e.TimeSavedHours
		}
		if e.BoosterBonus > 0 {
			report.HasBooster = true
		}
	}
	if report.TotalOldHours > 0 && !training.IsInfinite(report.TotalOldHours) {
		report.PercentSaved = report.TotalSavedHrs / report.TotalOldHours * 100
		report.HasPercentSave = true
	}
	return report
}
