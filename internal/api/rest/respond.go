package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JaviLianes8/RealTajoFCBack/internal/document"
	"github.com/JaviLianes8/RealTajoFCBack/internal/extract"
	"github.com/JaviLianes8/RealTajoFCBack/internal/reprocess"
	"github.com/JaviLianes8/RealTajoFCBack/internal/service"
	"github.com/JaviLianes8/RealTajoFCBack/internal/store"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrLatestMatchdayNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyUpload),
		errors.Is(err, service.ErrMatchdayNumberMismatch),
		errors.Is(err, document.ErrUnsupportedType),
		errors.Is(err, reprocess.ErrInvalidKind):
		return http.StatusBadRequest
	case extract.IsUnprocessable(err), errors.Is(err, document.ErrUnreadable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with the status it maps to. message is
// used for failures not caused by the request.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusUnprocessableEntity:
		message = "The document could not be processed"
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusRequestEntityTooLarge:
		message = "The uploaded file exceeds the allowed size"
	}
	respondError(w, status, message, err)
}
