package auth

import "github.com/shubham2799/BlogApp/internal/models"

// RequireAuthenticated is the simple gate for operations that only need a
// logged-in user, such as viewing the new-post form or creating a post.
func RequireAuthenticated(identity *models.Identity) error {
	if identity == nil {
		return models.ErrNotAuthenticated
	}
	return nil
}

// Authorize decides whether identity may mutate the post produced by a
// lookup. It is a pure decision over (identity, lookup result): no I/O, no
// side effects, and it is re-evaluated on every mutating request — never
// cached, since ownership can change between requests.
//
// The anonymous check comes first, so an anonymous request is always denied
// ErrNotAuthenticated regardless of whether the post exists. Any lookup
// failure — missing row or malformed identifier — is reported as
// ErrNotFound, never escalated to a different kind.
func Authorize(identity *models.Identity, blog models.Blog, lookupErr error) error {
	if identity == nil {
		return models.ErrNotAuthenticated
	}
	if lookupErr != nil {
		return models.ErrNotFound
	}
	if blog.Author != identity.Username {
		return models.ErrPermissionDenied
	}
	return nil
}
