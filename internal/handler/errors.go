package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tkarls/biztime/internal/domain"
)

// errorDetail is the body of the error envelope: a human-readable message
// plus the HTTP status repeated in the body, so clients parsing JSON alone
// still see it.
type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// errorEnvelope is the uniform failure shape: {"error":{"message","status"}}.
type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. An encode failure is logged;
// by then the status line is already on the wire and nothing can be salvaged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes the error envelope with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorDetail{Message: message, Status: status}})
}

// respondError funnels every service failure through the central taxonomy —
// one sentinel, one status, for both resources. notFoundMessage is supplied
// by the caller because the handler is the layer that knows what was being
// looked up (e.g. "company not found"). Anything outside the taxonomy is an
// internal error: logged with its full chain, reported generically.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrInvalid):
		writeError(w, http.StatusBadRequest, clientMessage(err, domain.ErrInvalid))
	case errors.Is(err, domain.ErrDuplicate):
		writeError(w, http.StatusBadRequest, clientMessage(err, domain.ErrDuplicate))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		slog.ErrorContext(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// clientMessage extracts the human-readable tail of a wrapped sentinel error.
// "service.CompanyService.Create: invalid request: name is required" becomes
// "name is required". Falls back to the full message when the sentinel text
// is absent (errors.Is matched through a custom wrapper).
func clientMessage(err error, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
