package admins

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
)

type contextKey struct{}

// WithAdmin returns a context carrying the authenticated administrator
func WithAdmin(ctx context.Context, admin *models.Administrator) context.Context {
	return context.WithValue(ctx, contextKey{}, admin)
}

// FromContext returns the administrator authenticated for this request, if any
func FromContext(ctx context.Context) (*models.Administrator, bool) {
	admin, ok := ctx.Value(contextKey{}).(*models.Administrator)
	return admin, ok && admin != nil
}

// RequireAdmin returns the request's administrator or models.ErrUnauthenticated
func RequireAdmin(ctx context.Context) (*models.Administrator, error) {
	admin, ok := FromContext(ctx)
	if !ok {
		return nil, models.ErrUnauthenticated
	}
	return admin, nil
}

// Middleware authenticates HTTP basic credentials when the request carries
// them. Requests without credentials pass through anonymously; handlers
// that need an administrator call RequireAdmin.
func (a *App) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, password, ok := r.BasicAuth()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		admin, err := a.Authenticate(r.Context(), login, password)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrInvalidCredentials) {
				status = http.StatusUnauthorized
				w.Header().Set("WWW-Authenticate", `Basic realm="weblurk"`)
			}
			log.Warn().Err(err).Str("login", login).Str("path", r.URL.Path).Msg("admin authentication failed")
			http.Error(w, http.StatusText(status), status)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
	})
}

// RequireAdminHandler rejects requests without an authenticated administrator
func RequireAdminHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="weblurk"`)
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
