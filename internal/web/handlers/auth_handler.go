package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shubham2799/BlogApp/internal/auth"
	"github.com/shubham2799/BlogApp/internal/models"
	"github.com/shubham2799/BlogApp/internal/services"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions services.SessionServiceProvider
	events   services.EventServiceProvider
	flash    *Flash
	render   *Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions services.SessionServiceProvider, events services.EventServiceProvider, flash *Flash, render *Renderer) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, events: events, flash: flash, render: render}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "register", h.render.newBasePage(w, r))
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flash.Error(w, r, "Something went wrong!!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.Register(username, password)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Registration rejected")
		h.flash.Error(w, r, err.Error())
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if err := h.establishSession(w, user.ID, user.Username); err != nil {
		h.flash.Error(w, r, "Something went wrong!!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.events.CreateEvent("auth.register", "info", fmt.Sprintf("User %s registered", user.Username), &user.Username)
	h.flash.Success(w, r, fmt.Sprintf("Hi %s, Welcome to The BlogApp!", user.Username))
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "login", h.render.newBasePage(w, r))
}

// Login authenticates credentials and establishes a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flash.Error(w, r, "Something went wrong!!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(username, password)
	if err != nil {
		log.Warn().Str("username", username).Msg("Failed authentication attempt")
		h.flash.Error(w, r, "Unknown username or wrong password!!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.establishSession(w, user.ID, user.Username); err != nil {
		h.flash.Error(w, r, "Something went wrong!!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.events.CreateEvent("auth.login", "info", fmt.Sprintf("User %s logged in", user.Username), &user.Username)
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

// Logout terminates the server-side session and drops the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := auth.CurrentIdentity(r.Context())
	if identity == nil {
		http.Redirect(w, r, "/blogs", http.StatusSeeOther)
		return
	}

	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if err := h.sessions.TerminateSession(cookie.Value); err != nil {
			log.Error().Err(err).Msg("Failed to terminate session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	h.events.CreateEvent("auth.logout", "info", fmt.Sprintf("User %s logged out", identity.Username), &identity.Username)
	h.flash.Success(w, r, "Logged you out!!")
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, userID, username string) error {
	sess, err := h.sessions.CreateSession(models.User{ID: userID, Username: username})
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to create session")
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
