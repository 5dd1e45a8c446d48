// Package router собирает chi-маршрутизатор релея вместе с цепочкой middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/issafronov/playlistrelay/internal/app/handlers"
	"github.com/issafronov/playlistrelay/internal/middleware/compress"
	"github.com/issafronov/playlistrelay/internal/middleware/logger"
)

// corsOptions разрешают любые источники, методы и заголовки
var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	},
	AllowedHeaders: []string{"*"},
	ExposedHeaders: []string{handlers.ResponseTimeHeader},
	MaxAge:         300,
}

// New возвращает маршрутизатор с маршрутами /get/{id}, /get/{id}/ и /ping
func New(h *handlers.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(corsOptions))
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(compress.GzipMiddleware)

	r.Get("/get/{id}", h.GetVideosHandle)
	r.Get("/get/{id}/", h.GetVideosHandle)
	r.Get("/ping", h.Ping)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	return r
}
