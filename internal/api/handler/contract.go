// internal/api/handler/contract.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gigpay/internal/api/middleware"
	"gigpay/internal/service"
	"gigpay/internal/util"
)

// ContractHandler handles HTTP requests for contract and job listings.
type ContractHandler struct {
	service service.ContractService
	logger  *slog.Logger
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(svc service.ContractService, logger *slog.Logger) *ContractHandler {
	return &ContractHandler{
		service: svc,
		logger:  logger,
	}
}

// GetContract handles the contract-by-id request. Only a party to the
// contract may fetch it.
// GET /contracts/{contractID}
func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthenticated)
		return
	}

	contractIDStr := chi.URLParam(r, "contractID")
	contractID, err := strconv.ParseInt(contractIDStr, 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	contract, err := h.service.GetContract(r.Context(), actor, contractID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, contract)
}

// ListContracts handles the contract listing request.
// GET /contracts
func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthenticated)
		return
	}

	contracts, err := h.service.ListContracts(r.Context(), actor)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, contracts)
}

// ListUnpaidJobs handles the unpaid job listing request.
// GET /jobs/unpaid
func (h *ContractHandler) ListUnpaidJobs(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		respondWithError(h.logger, w, util.ErrUnauthenticated)
		return
	}

	jobs, err := h.service.ListUnpaidJobs(r.Context(), actor)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, jobs)
}
