package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/reprocess"
)

// ReprocessHandler proxies API calls to the reprocess service.
type ReprocessHandler struct {
	service *reprocess.Service
}

// NewReprocessHandler wires the REST layer to the reprocess service.
func NewReprocessHandler(service *reprocess.Service) *ReprocessHandler {
	return &ReprocessHandler{service: service}
}

type apiReprocessRequest struct {
	Kind   string   `json:"kind"`
	Kinds  []string `json:"kinds"`
	DryRun bool     `json:"dry_run"`
}

// HandleReprocessRequest handles POST /api/v1/reprocess. An empty body
// reprocesses every kind.
func (h *ReprocessHandler) HandleReprocessRequest(w http.ResponseWriter, r *http.Request) {
	var req apiReprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reprocessReq := reprocess.Request{DryRun: req.DryRun}
	for _, k := range req.Kinds {
		reprocessReq.Kinds = append(reprocessReq.Kinds, league.Kind(k))
	}
	if req.Kind != "" {
		reprocessReq.Kinds = append(reprocessReq.Kinds, league.Kind(req.Kind))
	}

	job, err := h.service.Enqueue(r.Context(), reprocessReq)
	if err != nil {
		respondError(w, statusFor(err), "Failed to enqueue reprocess job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": job,
	})
}

// HandleReprocessStatus handles GET /api/v1/reprocess/status
func (h *ReprocessHandler) HandleReprocessStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch status", err)
		return
	}

	respondJSON(w, http.StatusOK, buildStatusPayload(summary))
}

func buildStatusPayload(summary *reprocess.StatusSummary) map[string]interface{} {
	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"history": summary.History,
	}

	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		if summary.ActiveJob.StatusMessage != "" {
			response["message"] = summary.ActiveJob.StatusMessage
		}
		response["active_job"] = summary.ActiveJob
	}
	if summary.History == nil {
		response["history"] = []*reprocess.Job{}
	}
	return response
}
