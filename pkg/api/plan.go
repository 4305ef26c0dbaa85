package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	batcherrors "github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/optimizer"
	"github.com/bakeryops/batchplan/pkg/planner"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
	"github.com/bakeryops/batchplan/pkg/serializer"
	"github.com/bakeryops/batchplan/pkg/server"
)

// maxPlanBodyBytes bounds the request body; a full catalog with hundreds of
// recipes stays well under this.
const maxPlanBodyBytes = 4 << 20

// PlanRequest is the JSON body of POST /v1/plan.
type PlanRequest struct {
	Inventory []resource.Pool      `json:"inventory"`
	Recipes   []recipe.Recipe      `json:"recipes"`
	Instances []optimizer.Instance `json:"instances"`
	Objective string               `json:"objective,omitempty"`
	Horizon   time.Duration        `json:"horizon,omitempty"`
	Tuning    *optimizer.Config    `json:"tuning,omitempty"`
}

// Handler serves planning requests.
type Handler struct {
	planner *planner.Planner
}

// NewHandler creates a Handler whose results carry the given version.
func NewHandler(version string) *Handler {
	return &Handler{
		planner: planner.New(planner.WithVersion(version)),
	}
}

// HandlePlan handles POST /v1/plan.
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	var req PlanRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	if err := dec.Decode(&req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	prodReq := planner.ProductionRequest{
		Instances: req.Instances,
		Horizon:   req.Horizon,
	}
	if req.Tuning != nil {
		prodReq.Tuning = *req.Tuning
	}
	// An absent top-level objective defers to the tuning config's choice;
	// ParseObjective would otherwise map "" to the profit default and
	// clobber it.
	if req.Objective != "" {
		objective, err := optimizer.ParseObjective(req.Objective)
		if err != nil {
			server.WriteError(w, r, http.StatusBadRequest, server.ErrCodeInvalidRequest,
				"Invalid objective", false, map[string]any{"error": err.Error()})
			return
		}
		prodReq.Objective = objective
	}

	inv := resource.NewInventory(req.Inventory...)

	result, err := h.planner.Plan(r.Context(), prodReq, req.Recipes, inv)
	if err != nil {
		status, retryable := statusForError(err)
		if status == http.StatusInternalServerError {
			slog.Error("plan failed",
				"requestID", server.RequestID(r.Context()),
				"error", err,
			)
		}
		server.WriteError(w, r, status, string(batcherrors.CodeOf(err)),
			err.Error(), retryable, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// statusForError maps planning error codes to HTTP statuses.
func statusForError(err error) (status int, retryable bool) {
	var se *batcherrors.StructuredError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError, true
	}
	switch se.Code {
	case batcherrors.ErrCodeEmptyRequest,
		batcherrors.ErrCodeInvalidRequest,
		batcherrors.ErrCodeInvalidStageWindow,
		batcherrors.ErrCodeUnknownResourceType:
		return http.StatusBadRequest, false
	case batcherrors.ErrCodeStructuralInfeasibility:
		// The request can never fit the inventory as stated; retrying the
		// same payload is pointless.
		return http.StatusUnprocessableEntity, false
	default:
		return http.StatusInternalServerError, true
	}
}
