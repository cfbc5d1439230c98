/*
errors.go - Centralized error types for the training engine

PURPOSE:
  All configuration error types in one place. Degenerate rates are NOT
  errors: a rate <= 0 is answered with the infinite-duration sentinel and
  never surfaces here. Only malformed input aborts a simulation.

USAGE:
  Callers can test categories with errors.Is:

    if errors.Is(err, training.ErrInvalidSkill) { ... }

  and recover the offending plan item with errors.As:

    var cfgErr *training.ConfigError
    if errors.As(err, &cfgErr) { use cfgErr.Index, cfgErr.Skill }
*/
package training

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidSkill is returned when a plan item is malformed: rank <= 0,
	// an unresolvable attribute name, a level outside [0,5], or partial SP
	// inconsistent with the cost curve.
	ErrInvalidSkill = errors.New("invalid skill configuration")

	// ErrInvalidBooster is returned for a negative booster bonus or duration.
	ErrInvalidBooster = errors.New("invalid booster configuration")

	// ErrInvalidCloneState is returned for an unknown clone state.
	ErrInvalidCloneState = errors.New("invalid clone state")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError identifies the plan item that failed validation. It is
// returned before any simulation work happens; no partial ledger exists
// alongside it.
type ConfigError struct {
	Index  int    // position in the plan, 0-based
	Skill  string // skill name, may be empty for unnamed items
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Skill == "" {
		return fmt.Sprintf("plan item %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("plan item %d (%s): %s", e.Index, e.Skill, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidSkill }

// IsConfigError reports whether err is any pre-simulation validation failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidSkill) ||
		errors.Is(err, ErrInvalidBooster) ||
		errors.Is(err, ErrInvalidCloneState)
}
