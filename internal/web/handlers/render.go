package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shubham2799/BlogApp/internal/auth"
	"github.com/shubham2799/BlogApp/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer executes the embedded HTML views. Fields that do not pass
// through the sanitizer (title, image URL) rely on html/template's
// contextual escaping here.
type Renderer struct {
	tmpl  *template.Template
	flash *Flash
}

// NewRenderer parses the embedded templates.
func NewRenderer(flash *Flash) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, flash: flash}, nil
}

// basePage holds what every view needs: the current identity and the
// flashes queued by the previous request.
type basePage struct {
	CurrentUser *models.Identity
	Errors      []string
	Successes   []string
}

// newBasePage consumes the pending flashes for this response.
func (rd *Renderer) newBasePage(w http.ResponseWriter, r *http.Request) basePage {
	errs, successes := rd.flash.Pop(w, r)
	return basePage{
		CurrentUser: auth.CurrentIdentity(r.Context()),
		Errors:      errs,
		Successes:   successes,
	}
}

// Render executes the named view. A template failure is a server bug, not
// a user error; it logs and answers 500.
func (rd *Renderer) Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
