package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/httpserver/handlers"
)

func init() { Register(registerBackup, middleware.Timeout(10*time.Second)) }

func registerBackup(r chi.Router, d deps.Deps) {
	r.Get("/export", handlers.Export(d))
	r.Post("/import", handlers.Import(d))
}
