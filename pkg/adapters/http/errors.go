package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/reel/pkg/domain"
)

// errBadRequest marks malformed bodies and undecodable options.
var errBadRequest = errors.New("bad request")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCounterNotFound),
		errors.Is(err, domain.ErrTimelineNotFound),
		errors.Is(err, domain.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidValueShape),
		errors.Is(err, domain.ErrConfigurationOutOfRange),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" failed", "err", err)
	} else {
		logger.Debug(op+" rejected", "status", status, "err", err)
	}
	writeJSON(w, logger, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
