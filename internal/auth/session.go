package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shubham2799/BlogApp/internal/models"
	"github.com/shubham2799/BlogApp/internal/services"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "blog_session"

type contextKey string

// IdentityKey is the context key for the request's identity.
const IdentityKey = contextKey("identity")

// SessionMiddleware resolves the session cookie into an Identity and stores
// it on the request context. Requests without a live session pass through
// as anonymous; route-level gates decide what anonymity means.
func SessionMiddleware(sessionSvc services.SessionServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessionSvc.ResolveSession(cookie.Value)
			if err != nil {
				if !errors.Is(err, models.ErrNotAuthenticated) {
					log.Error().Err(err).Msg("Failed to resolve session")
				}
				next.ServeHTTP(w, r)
				return
			}

			identity := &models.Identity{UserID: sess.UserID, Username: sess.Username}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentIdentity returns the request's identity, or nil for anonymous.
func CurrentIdentity(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(IdentityKey).(*models.Identity)
	return identity
}
