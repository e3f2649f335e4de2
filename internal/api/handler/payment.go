// internal/api/handler/payment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gigpay/internal/api/middleware"
	"gigpay/internal/service"
	"gigpay/internal/util"
)

// PaymentHandler handles HTTP requests for the payment and deposit engines.
type PaymentHandler struct {
	service service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: svc,
		logger:  logger,
	}
}

// PayJob handles the job payment request.
// POST /jobs/{jobID}/pay
func (h *PaymentHandler) PayJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthenticated)
		return
	}

	jobIDStr := chi.URLParam(r, "jobID")
	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if _, err := h.service.PayJob(r.Context(), actor, jobID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"status": "paid"})
}

// DepositRequest represents the request body for deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit handles the client self-deposit request.
// POST /balances/deposit/{profileID}
func (h *PaymentHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthenticated)
		return
	}

	profileIDStr := chi.URLParam(r, "profileID")
	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	profile, err := h.service.Deposit(r.Context(), actor, profileID, req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"payload": map[string]interface{}{
			"balance": profile.Balance,
		},
	})
}
