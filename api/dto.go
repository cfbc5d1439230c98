/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the API contract, decoupled from the engine types.

DURATION ENCODING:
  encoding/json cannot represent +Inf, so every hour figure is a *float64
  that is null for the infinite sentinel, always accompanied by a
  formatted string ("inf" for never-trainable items). The formatted form
  round-trips to the same hour value, so clients may consume either.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/plan.go: The request document schema (reused verbatim)
*/
package api

import (
	"github.com/warp/training-engine/factory"
	"github.com/warp/training-engine/training"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SimulateRequest is the plan-simulation request body: the factory's plan
// document plus API-only options.
type SimulateRequest struct {
	factory.PlanDoc

	// Persist controls whether the run is stored; defaults to true.
	Persist *bool `json:"persist,omitempty"`
}

// SimulateSkillRequest is the single-skill validation request: the same
// scheduler with a one-element plan and no booster carry-over.
type SimulateSkillRequest struct {
	Clone      string                          `json:"clone"`
	Attributes map[string]factory.AttributeDoc `json:"attributes"`
	Booster    *factory.BoosterDoc             `json:"booster,omitempty"`
	Skill      factory.SkillDoc                `json:"skill"`
}

// HoursDTO is one duration figure: hours (null when infinite) plus the
// invertible formatted rendering.
type HoursDTO struct {
	Hours     *float64 `json:"hours"`
	Formatted string   `json:"formatted"`
}

// LedgerEntryDTO is one simulated plan item.
type LedgerEntryDTO struct {
	Skill            string   `json:"skill"`
	FromLevel        int      `json:"from_level"`
	TargetLevel      int      `json:"target_level"`
	SP               int64    `json:"sp"`
	Base             HoursDTO `json:"base"`
	Actual           HoursDTO `json:"actual"`
	Saved            HoursDTO `json:"saved"`
	BoosterHoursLeft float64  `json:"booster_hours_left"`
	Coverage         string   `json:"coverage"`
}

// LedgerDTO is the full simulation response.
type LedgerDTO struct {
	RunID        string           `json:"run_id,omitempty"`
	Entries      []LedgerEntryDTO `json:"entries"`
	TotalBase    HoursDTO         `json:"total_base"`
	TotalActual  HoursDTO         `json:"total_actual"`
	TotalSaved   HoursDTO         `json:"total_saved"`
	PercentSaved *float64         `json:"percent_saved,omitempty"`
}

// RunSummaryDTO is one stored run in list responses.
type RunSummaryDTO struct {
	ID               string  `json:"id"`
	CreatedAt        string  `json:"created_at"`
	PlanName         string  `json:"plan_name,omitempty"`
	CloneState       string  `json:"clone_state"`
	SkillCount       int     `json:"skill_count"`
	TotalActualHours float64 `json:"total_actual_hours"`
	TotalSavedHours  float64 `json:"total_saved_hours"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toHoursDTO(hours float64) HoursDTO {
	dto := HoursDTO{Formatted: training.FormatHours(hours)}
	if !training.IsInfinite(hours) {
		h := hours
		dto.Hours = &h
	}
	return dto
}

func toLedgerDTO(ledger *training.PlanLedger) LedgerDTO {
	dto := LedgerDTO{
		Entries:     make([]LedgerEntryDTO, len(ledger.Entries)),
		TotalBase:   toHoursDTO(ledger.TotalBaseHours),
		TotalActual: toHoursDTO(ledger.TotalActualHours),
		TotalSaved:  toHoursDTO(ledger.TotalSavedHours),
	}
	for i, e := range ledger.Entries {
		dto.Entries[i] = toEntryDTO(e)
	}
	if pct, ok := ledger.PercentSaved(); ok {
		dto.PercentSaved = &pct
	}
	return dto
}

func toEntryDTO(e training.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		Skill:            e.Skill,
		FromLevel:        e.FromLevel,
		TargetLevel:      e.TargetLevel,
		SP:               e.SP,
		Base:             toHoursDTO(e.BaseHours),
		Actual:           toHoursDTO(e.ActualHours),
		Saved:            toHoursDTO(e.SavedHours),
		BoosterHoursLeft: e.BoosterHoursLeft,
		Coverage:         string(e.Coverage),
	}
}
