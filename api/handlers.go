/*
handlers.go - HTTP handlers for the training time engine

PURPOSE:
  Exposes plan simulation over REST. Handles HTTP request/response and
  JSON serialization, delegates all math to the training package.

ENDPOINTS:
  POST /api/simulate        Simulate a full plan, persist the run
  POST /api/simulate/skill  Single-skill validation (one-element plan)
  GET  /api/runs            List stored runs
  GET  /api/runs/{id}       One stored run with its full ledger
  GET  /api/example         The canonical example plan document
  GET  /api/health          Liveness probe

ERROR HANDLING:
  Errors are returned as JSON with the appropriate HTTP status:
  - 400: Malformed body, invalid plan configuration
  - 404: Run not found
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/training-engine/factory"
	"github.com/warp/training-engine/store/sqlite"
	"github.com/warp/training-engine/training"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// SIMULATION HANDLERS
// =============================================================================

// Simulate runs a full plan simulation.
// POST /api/simulate
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	scheduler, plan, booster, err := req.PlanDoc.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan document", err)
		return
	}

	ledger, err := scheduler.Simulate(plan, booster)
	if err != nil {
		// All Simulate failures are configuration errors; nothing here
		// can fail at runtime.
		writeError(w, http.StatusBadRequest, "Invalid plan configuration", err)
		return
	}

	dto := toLedgerDTO(ledger)
	if req.Persist == nil || *req.Persist {
		runID, err := h.persistRun(r, &req, ledger, dto)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store run", err)
			return
		}
		dto.RunID = runID
	}
	writeJSON(w, http.StatusOK, dto)
}

// SimulateSkill validates a single skill: a degenerate call to the same
// scheduler with a one-element plan. Never persisted.
// POST /api/simulate/skill
func (h *Handler) SimulateSkill(w http.ResponseWriter, r *http.Request) {
	var req SimulateSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	doc := factory.PlanDoc{
		Clone:      req.Clone,
		Attributes: req.Attributes,
		Booster:    req.Booster,
		Skills:     []factory.SkillDoc{req.Skill},
	}
	scheduler, plan, booster, err := doc.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill document", err)
		return
	}

	ledger, err := scheduler.Simulate(plan, booster)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill configuration", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(ledger.Entries[0]))
}

func (h *Handler) persistRun(r *http.Request, req *SimulateRequest, ledger *training.PlanLedger, dto LedgerDTO) (string, error) {
	requestJSON, err := json.Marshal(req.PlanDoc)
	if err != nil {
		return "", err
	}
	ledgerJSON, err := json.Marshal(dto)
	if err != nil {
		return "", err
	}

	clone := req.Clone
	if clone == "" {
		clone = string(training.CloneOmega)
	}
	run := sqlite.RunRecord{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		PlanName:    req.Name,
		CloneState:  clone,
		SkillCount:  len(ledger.Entries),
		RequestJSON: string(requestJSON),
		LedgerJSON:  string(ledgerJSON),
	}
	// Totals are denormalized for listing. SQLite REAL has no Inf and the
	// summary DTO carries these as raw floats; an infinite total stays 0
	// here and the authoritative figure lives in the ledger JSON as
	// null-plus-"inf". Saved needs the same guard: an infinite baseline
	// with a finite boosted duration makes saved itself infinite.
	if !training.IsInfinite(ledger.TotalBaseHours) {
		run.TotalBaseHours = ledger.TotalBaseHours
	}
	if !training.IsInfinite(ledger.TotalActualHours) {
		run.TotalActualHours = ledger.TotalActualHours
	}
	if !training.IsInfinite(ledger.TotalSavedHours) {
		run.TotalSavedHours = ledger.TotalSavedHours
	}

	return run.ID, h.Store.SaveRun(r.Context(), run)
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ListRuns returns recent stored runs.
// GET /api/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunSummaryDTO, len(runs))
	for i, run := range runs {
		dtos[i] = RunSummaryDTO{
			ID:               run.ID,
			CreatedAt:        run.CreatedAt.Format(time.RFC3339),
			PlanName:         run.PlanName,
			CloneState:       run.CloneState,
			SkillCount:       run.SkillCount,
			TotalActualHours: run.TotalActualHours,
			TotalSavedHours:  run.TotalSavedHours,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one stored run with its full ledger.
// GET /api/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}

	// The stored ledger JSON is returned verbatim.
	var ledger json.RawMessage = []byte(run.LedgerJSON)
	var request json.RawMessage = []byte(run.RequestJSON)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":         run.ID,
		"created_at": run.CreatedAt.Format(time.RFC3339),
		"plan_name":  run.PlanName,
		"request":    request,
		"ledger":     ledger,
	})
}

// =============================================================================
// MISC HANDLERS
// =============================================================================

// Example returns the canonical example plan document.
// GET /api/example
func (h *Handler) Example(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.ExamplePlan())
}

// Health is the liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already out; all we can do is log.
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
