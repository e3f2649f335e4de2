// internal/api/handler/admin.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gigpay/internal/service"
	"gigpay/internal/util"
)

const reportDateLayout = "2006-01-02"

// AdminHandler handles HTTP requests for the analytic reporting queries.
type AdminHandler struct {
	service service.ReportService
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc service.ReportService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		logger:  logger,
	}
}

func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := time.Parse(reportDateLayout, r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, util.ErrInvalidInput
	}
	end, err := time.Parse(reportDateLayout, r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, util.ErrInvalidInput
	}
	// Make the end date inclusive of the whole day.
	return start, end.Add(24*time.Hour - time.Nanosecond), nil
}

// BestProfession handles the best-profession report request.
// GET /admin/best-profession?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *AdminHandler) BestProfession(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	row, err := h.service.BestProfession(r.Context(), start, end)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, row)
}

// BestClients handles the best-clients report request.
// GET /admin/best-clients?start=YYYY-MM-DD&end=YYYY-MM-DD&limit=N
func (h *AdminHandler) BestClients(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 2 // Default limit
	}

	clients, err := h.service.BestClients(r.Context(), start, end, limit)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, clients)
}
