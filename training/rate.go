/*
rate.go - SP/hour rates and training durations

PURPOSE:
  Pure functions mapping effective attribute values to an SP/hour
  production rate, and (SP, rate) to a duration in hours.

FORMULAS:
  SP/hour (Omega) = Primary x 60 + Secondary x 30
  SP/hour (Alpha) = Primary x 30 + Secondary x 15
  Training time   = SP to train / SP per hour

DEGENERATE RATES:
  Attributes can legitimately be zero or negative in pathological inputs.
  A rate <= 0 is not an error: TrainingTime returns the +Inf sentinel and
  every aggregation downstream lets infinity propagate (Inf + finite = Inf)
  instead of failing.

SEE ALSO:
  - attributes.go: Effective attribute values
  - scheduler.go: Combines base and boosted rates per plan item
*/
package training

import "math"

// =============================================================================
// CLONE STATE
// =============================================================================

// CloneState selects the rate coefficients applied to the primary and
// secondary attributes. Omega trains at full speed, Alpha at half.
type CloneState string

const (
	CloneOmega CloneState = "omega"
	CloneAlpha CloneState = "alpha"
)

// Valid reports whether c is a known clone state.
func (c CloneState) Valid() bool {
	return c == CloneOmega || c == CloneAlpha
}

// =============================================================================
// RATES AND DURATIONS
// =============================================================================

// InfiniteHours is the sentinel duration for SP that can never be trained
// because the production rate is zero or negative.
var InfiniteHours = math.Inf(1)

// IsInfinite reports whether an hour value is the infinite sentinel.
func IsInfinite(hours float64) bool {
	return math.IsInf(hours, 1)
}

// SPPerHour computes the production rate from the effective primary and
// secondary attribute values. Total function: defined for any inputs,
// including zero and negative values.
func SPPerHour(primary, secondary float64, clone CloneState) float64 {
	if clone == CloneAlpha {
		return primary*30 + secondary*15
	}
	return primary*60 + secondary*30
}

// SkillRate computes the SP/hour rate for one skill against an attribute set.
func SkillRate(attrs AttributeSet, skill *Skill, clone CloneState) float64 {
	return SPPerHour(attrs.Effective(skill.Primary), attrs.Effective(skill.Secondary), clone)
}

// TrainingTime returns the hours needed to train sp points at the given
// rate. Zero SP takes zero time regardless of rate; a non-positive rate
// with positive SP yields InfiniteHours.
func TrainingTime(sp float64, rate float64) float64 {
	if sp <= 0 {
		return 0
	}
	if rate <= 0 {
		return InfiniteHours
	}
	return sp / rate
}
