package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shubham2799/BlogApp/internal/auth"
	"github.com/shubham2799/BlogApp/internal/models"
	"github.com/shubham2799/BlogApp/internal/services"
)

// BlogHandler handles the blog pages and their mutations.
type BlogHandler struct {
	service services.BlogServiceProvider
	events  services.EventServiceProvider
	flash   *Flash
	render  *Renderer
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service services.BlogServiceProvider, events services.EventServiceProvider, flash *Flash, render *Renderer) *BlogHandler {
	return &BlogHandler{service: service, events: events, flash: flash, render: render}
}

type indexPage struct {
	basePage
	Blogs []models.Blog
}

type blogPage struct {
	basePage
	Blog models.Blog
}

type activityPage struct {
	basePage
	Events []models.Event
}

// List renders every post. A store failure renders the page anyway with a
// transient error and an empty list.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := indexPage{basePage: h.render.newBasePage(w, r)}
	blogs, err := h.service.GetAllBlogs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list blogs")
		page.Errors = append(page.Errors, "Something went wrong!!")
	}
	page.Blogs = blogs
	h.render.Render(w, "index", page)
}

// Show renders a single post.
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.service.GetBlogByID(id)
	if err != nil {
		h.flash.Error(w, r, "Blog not found!!")
		http.Redirect(w, r, "/blogs", http.StatusSeeOther)
		return
	}
	h.render.Render(w, "show", blogPage{basePage: h.render.newBasePage(w, r), Blog: blog})
}

// New renders the creation form. The RequireLogin middleware guards it.
func (h *BlogHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "new", h.render.newBasePage(w, r))
}

// Create persists a new post authored by the session identity.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := auth.CurrentIdentity(r.Context())

	input, err := blogInputFromForm(r)
	if err != nil {
		h.flash.Error(w, r, err.Error())
		http.Redirect(w, r, "/blogs/new", http.StatusSeeOther)
		return
	}

	blog, err := h.service.CreateBlog(identity.Username, input)
	if err != nil {
		log.Error().Err(err).Str("username", identity.Username).Msg("Failed to create blog")
		h.flash.Error(w, r, "Something went wrong!!")
		http.Redirect(w, r, "/blogs/new", http.StatusSeeOther)
		return
	}

	h.events.CreateEvent("blog.create", "info", fmt.Sprintf("Post %q created", blog.Title), &identity.Username)
	h.flash.Success(w, r, "Blog created!!")
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

// Edit renders the edit form pre-filled. The RequireOwnership middleware
// has already decided access; the lookup here is only for the form values.
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.service.GetBlogByID(id)
	if err != nil {
		h.flash.Error(w, r, "Blog not found!!")
		http.Redirect(w, r, "/blogs", http.StatusSeeOther)
		return
	}
	h.render.Render(w, "edit", blogPage{basePage: h.render.newBasePage(w, r), Blog: blog})
}

// Update overwrites a post. The author is re-stamped from the session
// identity, never taken from the form.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := auth.CurrentIdentity(r.Context())

	input, err := blogInputFromForm(r)
	if err != nil {
		h.flash.Error(w, r, err.Error())
		http.Redirect(w, r, "/blogs/"+id+"/edit", http.StatusSeeOther)
		return
	}

	if _, err := h.service.UpdateBlog(id, identity.Username, input); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.flash.Error(w, r, "Blog not found!!")
		} else {
			log.Error().Err(err).Str("blog_id", id).Msg("Failed to update blog")
			h.flash.Error(w, r, "Something went wrong!!")
		}
		http.Redirect(w, r, "/blogs", http.StatusSeeOther)
		return
	}

	h.events.CreateEvent("blog.update", "info", fmt.Sprintf("Post %s edited", id), &identity.Username)
	h.flash.Success(w, r, "Blog edited!!")
	http.Redirect(w, r, "/blogs/"+id, http.StatusSeeOther)
}

// Delete removes a post.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := auth.CurrentIdentity(r.Context())

	if err := h.service.DeleteBlog(id, identity.Username); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.flash.Error(w, r, "Blog not found!!")
		} else {
			log.Error().Err(err).Str("blog_id", id).Msg("Failed to delete blog")
			h.flash.Error(w, r, "Something went wrong!!")
		}
		http.Redirect(w, r, "/blogs", http.StatusSeeOther)
		return
	}

	h.events.CreateEvent("blog.delete", "info", fmt.Sprintf("Post %s deleted", id), &identity.Username)
	h.flash.Success(w, r, "Blog deleted!!")
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

// Activity renders the recent audit trail.
func (h *BlogHandler) Activity(w http.ResponseWriter, r *http.Request) {
	page := activityPage{basePage: h.render.newBasePage(w, r)}
	events, err := h.events.GetRecentEvents(50)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load recent events")
		page.Errors = append(page.Errors, "Something went wrong!!")
	}
	page.Events = events
	h.render.Render(w, "activity", page)
}

// blogInputFromForm validates the form body into the typed DTO before
// anything reaches the gate or the store.
func blogInputFromForm(r *http.Request) (services.BlogInput, error) {
	if err := r.ParseForm(); err != nil {
		return services.BlogInput{}, fmt.Errorf("invalid form data")
	}
	input := services.BlogInput{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Body:     r.PostFormValue("body"),
		ImageURL: strings.TrimSpace(r.PostFormValue("image")),
	}
	if input.Title == "" {
		return services.BlogInput{}, fmt.Errorf("title is required")
	}
	return input, nil
}
