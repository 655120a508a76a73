package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shubham2799/BlogApp/internal/auth"
	"github.com/shubham2799/BlogApp/internal/services"
	"github.com/shubham2799/BlogApp/internal/web/handlers"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	blogSvc services.BlogServiceProvider,
	userSvc services.UserServiceProvider,
	sessionSvc services.SessionServiceProvider,
	eventSvc services.EventServiceProvider,
	sessionSecret string,
) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(MethodOverride)
	r.Use(auth.SessionMiddleware(sessionSvc))

	flash := handlers.NewFlash(sessionSecret)
	render, err := handlers.NewRenderer(flash)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(userSvc, sessionSvc, eventSvc, flash, render)
	blogHandler := handlers.NewBlogHandler(blogSvc, eventSvc, flash, render)
	gate := handlers.NewGate(blogSvc, eventSvc, flash)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/blogs", http.StatusFound)
	})

	r.Get("/register", authHandler.ShowRegister)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	r.Get("/activity", blogHandler.Activity)

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", blogHandler.List)
		r.With(gate.RequireLogin).Get("/new", blogHandler.New)
		r.With(gate.RequireLogin).Post("/", blogHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", blogHandler.Show)
			r.With(gate.RequireOwnership).Get("/edit", blogHandler.Edit)
			r.With(gate.RequireOwnership).Put("/", blogHandler.Update)
			r.With(gate.RequireOwnership).Delete("/", blogHandler.Delete)
		})
	})

	return r, nil
}
