package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

const flashSessionName = "blog_flash"

const (
	flashError   = "error"
	flashSuccess = "success"
)

// Flash carries one-shot status messages across a redirect. Messages live
// in a dedicated cookie session and are cleared as soon as they are read.
type Flash struct {
	store *sessions.CookieStore
}

// NewFlash creates a flash store signed with the given secret.
func NewFlash(secret string) *Flash {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flash{store: store}
}

// Error queues an error message for the next rendered page.
func (f *Flash) Error(w http.ResponseWriter, r *http.Request, msg string) {
	f.add(w, r, flashError, msg)
}

// Success queues a success message for the next rendered page.
func (f *Flash) Success(w http.ResponseWriter, r *http.Request, msg string) {
	f.add(w, r, flashSuccess, msg)
}

func (f *Flash) add(w http.ResponseWriter, r *http.Request, key, msg string) {
	sess, _ := f.store.Get(r, flashSessionName)
	sess.AddFlash(msg, key)
	if err := sess.Save(r, w); err != nil {
		log.Error().Err(err).Msg("Failed to save flash session")
	}
}

// Pop returns and clears the queued messages.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) (errs, successes []string) {
	sess, _ := f.store.Get(r, flashSessionName)
	for _, v := range sess.Flashes(flashError) {
		if s, ok := v.(string); ok {
			errs = append(errs, s)
		}
	}
	for _, v := range sess.Flashes(flashSuccess) {
		if s, ok := v.(string); ok {
			successes = append(successes, s)
		}
	}
	if err := sess.Save(r, w); err != nil {
		log.Error().Err(err).Msg("Failed to clear flash session")
	}
	return errs, successes
}
