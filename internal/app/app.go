package app

import (
	"fmt"
	"net/http"

	"waitlist/internal/app/deps"
	"waitlist/internal/app/services"
	"waitlist/internal/http/handlers/health"
	"waitlist/internal/http/handlers/recoverer"
	"waitlist/internal/http/handlers/response"
	"waitlist/internal/http/handlers/subscribe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    address,
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(recoverer.Recover(deps.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.MethodNotAllowed(func(rw http.ResponseWriter, r *http.Request) {
		response.RenderMethodNotAllowed(rw)
	})
	router.NotFound(func(rw http.ResponseWriter, r *http.Request) {
		response.RenderNotFound(rw)
	})

	router.Method(
		http.MethodPost,
		"/api/subscribe",
		subscribe.New(s.JoinWaitlist, deps.Config.HideStoreErrors),
	)
	router.Method(http.MethodGet, "/healthz", health.New())
	router.Method(
		http.MethodGet,
		"/metrics",
		promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}),
	)

	return router
}
