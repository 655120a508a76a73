package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shubham2799/BlogApp/internal/auth"
	"github.com/shubham2799/BlogApp/internal/models"
	"github.com/shubham2799/BlogApp/internal/services"
)

// Gate applies the authorization decisions in front of the blog routes and
// translates each denial to its redirect plus flash.
type Gate struct {
	blogs  services.BlogServiceProvider
	events services.EventServiceProvider
	flash  *Flash
}

// NewGate creates a new Gate.
func NewGate(blogs services.BlogServiceProvider, events services.EventServiceProvider, flash *Flash) *Gate {
	return &Gate{blogs: blogs, events: events, flash: flash}
}

// RequireLogin guards routes that only need an authenticated user.
func (g *Gate) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := auth.CurrentIdentity(r.Context())
		if err := auth.RequireAuthenticated(identity); err != nil {
			g.flash.Error(w, r, "Login to continue!!")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwnership guards mutating routes on a single post. The decision is
// taken fresh on every request: the post is looked up here and handed to
// the pure gate, nothing is cached between requests.
//
// Denials keep their distinct redirect targets: not-found goes back to the
// listing, permission-denied to the post itself.
func (g *Gate) RequireOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		identity := auth.CurrentIdentity(r.Context())

		var blog models.Blog
		var lookupErr error
		if identity != nil {
			// The anonymous case is decided without touching the store.
			blog, lookupErr = g.blogs.GetBlogByID(id)
		}

		switch err := auth.Authorize(identity, blog, lookupErr); {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, models.ErrNotAuthenticated):
			g.flash.Error(w, r, "Login to continue!!")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, models.ErrNotFound):
			g.flash.Error(w, r, "Blog not found!!")
			http.Redirect(w, r, "/blogs", http.StatusSeeOther)
		default:
			g.events.CreateEvent("auth.denied", "warn",
				fmt.Sprintf("User %s denied access to post %s", identity.Username, id), &identity.Username)
			g.flash.Error(w, r, "Permission Denied!!")
			http.Redirect(w, r, "/blogs/"+id, http.StatusSeeOther)
		}
	})
}
