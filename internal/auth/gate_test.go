package auth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shubham2799/BlogApp/internal/models"
)

func TestRequireAuthenticated(t *testing.T) {
	if err := RequireAuthenticated(nil); !errors.Is(err, models.ErrNotAuthenticated) {
		t.Fatalf("anonymous: got %v, want ErrNotAuthenticated", err)
	}
	if err := RequireAuthenticated(&models.Identity{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("authenticated: got %v, want nil", err)
	}
}

func TestAuthorize(t *testing.T) {
	alice := &models.Identity{UserID: "u1", Username: "alice"}
	bob := &models.Identity{UserID: "u2", Username: "bob"}
	post := models.Blog{ID: "p1", Title: "Hi", Author: "alice"}

	tests := []struct {
		name      string
		identity  *models.Identity
		blog      models.Blog
		lookupErr error
		want      error
	}{
		{"owner allowed", alice, post, nil, nil},
		{"non-owner denied", bob, post, nil, models.ErrPermissionDenied},
		{"anonymous denied", nil, post, nil, models.ErrNotAuthenticated},
		{"anonymous denied even when post missing", nil, models.Blog{}, models.ErrNotFound, models.ErrNotAuthenticated},
		{"missing post", alice, models.Blog{}, models.ErrNotFound, models.ErrNotFound},
		{"malformed id treated as not found", alice, models.Blog{}, fmt.Errorf("parse error"), models.ErrNotFound},
		{"store failure treated as not found", alice, models.Blog{}, models.ErrStoreFailure, models.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.identity, tt.blog, tt.lookupErr)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// The gate must allow exactly the authenticated owner, for every
// combination of identity and post author.
func TestAuthorizeAllowIffOwner(t *testing.T) {
	identities := []*models.Identity{
		nil,
		{UserID: "u1", Username: "alice"},
		{UserID: "u2", Username: "bob"},
	}
	authors := []string{"alice", "bob", "carol"}

	for _, id := range identities {
		for _, author := range authors {
			post := models.Blog{ID: "p", Author: author}
			err := Authorize(id, post, nil)
			shouldAllow := id != nil && id.Username == author
			if shouldAllow && err != nil {
				t.Errorf("identity %+v author %s: got %v, want allow", id, author, err)
			}
			if !shouldAllow && err == nil {
				t.Errorf("identity %+v author %s: got allow, want deny", id, author)
			}
		}
	}
}
