package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/httpserver/handlers"
)

// No timeout middleware here: the event feed is a long-lived connection.
func init() { Register(registerEvents) }

func registerEvents(r chi.Router, d deps.Deps) {
	r.Get("/events", handlers.Events(d))
}
