// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gigpay/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 30 * time.Second

// respondWithJSON sends a JSON response with the given status code.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors onto the HTTP error taxonomy:
// authorization errors (400/401), state errors (422 with explanatory payload),
// infrastructure errors (500 without store internals).
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var depositLimitErr *util.DepositLimitError
	if errors.As(err, &depositLimitErr) {
		respondWithJSON(logger, w, http.StatusUnprocessableEntity, map[string]string{
			"error":         depositLimitErr.Error(),
			"suggested_max": depositLimitErr.MaxDeposit.StringFixed(2),
		})
		return
	}

	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrForbiddenRole):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrUnauthenticated), util.IsError(err, util.ErrNotOwner):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrAlreadyPaid),
		util.IsError(err, util.ErrInsufficientFunds),
		util.IsError(err, util.ErrForbiddenTarget):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()
	case util.IsError(err, util.ErrTransactionFailed):
		logger.Error("Transaction failed", "error", err)
		message = util.ErrTransactionFailed.Error()
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}
