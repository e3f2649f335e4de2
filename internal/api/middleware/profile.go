// internal/api/middleware/profile.go
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"gigpay/internal/domain"
	"gigpay/internal/repository"
	"gigpay/internal/util"
)

type contextKey string

const profileContextKey contextKey = "profile"

// ProfileResolver maps the profile_id request header to a Profile record and
// places it in the request context. Requests without a resolvable profile are
// rejected as unauthenticated before reaching any handler.
type ProfileResolver struct {
	dbExecutor  repository.DBExecutor
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// NewProfileResolver creates a new ProfileResolver.
func NewProfileResolver(dbExecutor repository.DBExecutor, profileRepo repository.ProfileRepository, logger *slog.Logger) *ProfileResolver {
	return &ProfileResolver{
		dbExecutor:  dbExecutor,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Resolve is the middleware entry point.
func (m *ProfileResolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profileIDStr := r.Header.Get("profile_id")
		if profileIDStr == "" {
			m.unauthenticated(w)
			return
		}

		profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
		if err != nil {
			m.unauthenticated(w)
			return
		}

		profile, err := m.profileRepo.GetProfileByID(r.Context(), m.dbExecutor, profileID)
		if err != nil {
			if !util.IsError(err, util.ErrNotFound) {
				m.logger.Error("Failed to resolve profile", "profile_id", profileID, "error", err)
			}
			m.unauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
	})
}

func (m *ProfileResolver) unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": util.ErrUnauthenticated.Error()})
}

// WithProfile returns a context carrying the resolved profile.
func WithProfile(ctx context.Context, profile *domain.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, profile)
}

// ProfileFromContext extracts the resolved profile from the request context.
func ProfileFromContext(ctx context.Context) (*domain.Profile, bool) {
	profile, ok := ctx.Value(profileContextKey).(*domain.Profile)
	return profile, ok
}
