// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gigpay/internal/api/handler"
	"gigpay/internal/api/middleware"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	paymentHandler *handler.PaymentHandler,
	contractHandler *handler.ContractHandler,
	adminHandler *handler.AdminHandler,
	profileResolver *middleware.ProfileResolver,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// All marketplace routes require a resolved profile.
	r.Group(func(r chi.Router) {
		r.Use(profileResolver.Resolve)

		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", contractHandler.ListContracts)
			r.Get("/{contractID}", contractHandler.GetContract)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/unpaid", contractHandler.ListUnpaidJobs)
			r.Post("/{jobID}/pay", paymentHandler.PayJob)
		})

		r.Post("/balances/deposit/{profileID}", paymentHandler.Deposit)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/best-profession", adminHandler.BestProfession)
			r.Get("/best-clients", adminHandler.BestClients)
		})
	})

	return r
}
