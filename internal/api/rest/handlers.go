package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/league"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
)

// HealthChecker reports whether the persistence backend is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var (
	textFormats   = []document.Format{document.FormatPDF, document.FormatHTML}
	scorerFormats = []document.Format{document.FormatXLSX, document.FormatPDF, document.FormatHTML}
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	services  *service.Services
	health    HealthChecker
	version   string
	prefix    string
	maxUpload int64
}

// NewHandler creates a new handler
func NewHandler(services *service.Services, health HealthChecker, opts Options) *Handler {
	return &Handler{
		services:  services,
		health:    health,
		version:   opts.Version,
		prefix:    opts.APIPrefix,
		maxUpload: opts.MaxUploadBytes,
	}
}

// Root answers the liveness probe of the hosting platform
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "RUNNING REAL TAJO BACK"})
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.HealthCheck(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "realtajo",
		"version": h.version,
	})
}

// Status returns the operational status and version
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// upload reads a validated upload or writes the rejection.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request, formats []document.Format) (service.Upload, bool) {
	u, uerr := readUpload(w, r, h.maxUpload, formats...)
	if uerr != nil {
		respondError(w, uerr.status, uerr.message, uerr.err)
		return service.Upload{}, false
	}
	return u, true
}

func createdOrOK(r *http.Request) int {
	if r.Method == http.MethodPost {
		return http.StatusCreated
	}
	return http.StatusOK
}

// UploadClassification parses and stores a classification document
func (h *Handler) UploadClassification(w http.ResponseWriter, r *http.Request) {
	u, ok := h.upload(w, r, textFormats)
	if !ok {
		return
	}
	table, err := h.services.Classification.Process(r.Context(), u)
	if err != nil {
		respondServiceError(w, "Failed to process classification", err)
		return
	}
	respondJSON(w, createdOrOK(r), table.View())
}

// GetClassification returns the stored classification
func (h *Handler) GetClassification(w http.ResponseWriter, r *http.Request) {
	table, err := h.services.Classification.Get(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch classification", err)
		return
	}
	respondJSON(w, http.StatusOK, table.View())
}

// UploadSchedule stores a schedule document as parsed pages
func (h *Handler) UploadSchedule(w http.ResponseWriter, r *http.Request) {
	u, ok := h.upload(w, r, textFormats)
	if !ok {
		return
	}
	doc, err := h.services.Schedule.Process(r.Context(), u)
	if err != nil {
		respondServiceError(w, "Failed to process schedule", err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// GetSchedule returns the stored schedule document
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.Schedule.Get(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch schedule", err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func matchdayNumber(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["number"])
}

func (h *Handler) projected(m *league.Matchday) league.Matchday {
	return m.ForTeam(h.services.Matchdays.Team())
}

// UploadMatchday parses and stores a matchday sheet
func (h *Handler) UploadMatchday(w http.ResponseWriter, r *http.Request) {
	u, ok := h.upload(w, r, textFormats)
	if !ok {
		return
	}
	round, err := h.services.Matchdays.Process(r.Context(), u)
	if err != nil {
		respondServiceError(w, "Failed to process matchday", err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("%s/matchdays/%d", h.prefix, round.Number))
	respondJSON(w, http.StatusOK, h.projected(round))
}

// GetMatchday returns a matchday by number
func (h *Handler) GetMatchday(w http.ResponseWriter, r *http.Request) {
	n, err := matchdayNumber(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid matchday number", err)
		return
	}
	round, err := h.services.Matchdays.Get(r.Context(), n)
	if err != nil {
		respondServiceError(w, "Failed to fetch matchday", err)
		return
	}
	respondJSON(w, http.StatusOK, h.projected(round))
}

// GetLastMatchday returns the highest numbered matchday
func (h *Handler) GetLastMatchday(w http.ResponseWriter, r *http.Request) {
	round, err := h.services.Matchdays.Latest(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch matchday", err)
		return
	}
	respondJSON(w, http.StatusOK, h.projected(round))
}

// UpdateLastMatchday replaces the latest matchday with the JSON body
func (h *Handler) UpdateLastMatchday(w http.ResponseWriter, r *http.Request) {
	var round league.Matchday
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(&round); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	updated, err := h.services.Matchdays.UpdateLatest(r.Context(), &round)
	if err != nil {
		respondServiceError(w, "Failed to update matchday", err)
		return
	}
	respondJSON(w, http.StatusOK, h.projected(updated))
}

// DeleteLastMatchday removes the highest numbered matchday
func (h *Handler) DeleteLastMatchday(w http.ResponseWriter, r *http.Request) {
	n, err := h.services.Matchdays.DeleteLatest(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to delete matchday", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Matchday deleted",
		"matchday": n,
	})
}

// DeleteMatchday removes a matchday by number
func (h *Handler) DeleteMatchday(w http.ResponseWriter, r *http.Request) {
	n, err := matchdayNumber(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid matchday number", err)
		return
	}
	if err := h.services.Matchdays.Delete(r.Context(), n); err != nil {
		respondServiceError(w, "Failed to delete matchday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadResults parses and stores a results bulletin
func (h *Handler) UploadResults(w http.ResponseWriter, r *http.Request) {
	u, ok := h.upload(w, r, textFormats)
	if !ok {
		return
	}
	results, err := h.services.Results.Process(r.Context(), u)
	if err != nil {
		respondServiceError(w, "Failed to process results", err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("%s/results/%d", h.prefix, results.Matchday))
	respondJSON(w, http.StatusOK, results)
}

// GetResults returns the results of a matchday
func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	n, err := matchdayNumber(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid matchday number", err)
		return
	}
	results, err := h.services.Results.Get(r.Context(), n)
	if err != nil {
		respondServiceError(w, "Failed to fetch results", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// GetLastResults returns the results of the highest numbered matchday
func (h *Handler) GetLastResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.services.Results.Latest(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch results", err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// UploadCalendar parses and stores the tracked team's calendar
func (h *Handler) UploadCalendar(w http.ResponseWriter, r *http.Request) {
	u, ok := h.upload(w, r, textFormats)
	if !ok {
		return
	}
	cal, err := h.services.Calendar.Process(r.Context(), u)
	if err != nil {
		respondServiceError(w, "Failed to process calendar", err)
		return
	}
	respondJSON(w, createdOrOK(r), cal)
}

// GetCalendar returns the stored calendar
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	cal, err := h.services.Calendar.Get(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch calendar", err)
		return
	}
	respondJSON(w, http.StatusOK, cal)
}

// UploadTopScorers parses and stores a scorer table
func (h *Handler) UploadTopScorers(w http.ResponseWriter, r *http.Request) {
	u, ok := h.upload(w, r, scorerFormats)
	if !ok {
		return
	}
	table, err := h.services.TopScorers.Process(r.Context(), u)
	if err != nil {
		respondServiceError(w, "Failed to process top scorers", err)
		return
	}
	w.Header().Set("Location", h.prefix+"/top-scorers")
	respondJSON(w, http.StatusOK, table.View())
}

// GetTopScorers returns the stored scorer table
func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	table, err := h.services.TopScorers.Get(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to fetch top scorers", err)
		return
	}
	respondJSON(w, http.StatusOK, table.View())
}
