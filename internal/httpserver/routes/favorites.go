package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/httpserver/handlers"
)

func init() { Register(registerFavorites, middleware.Timeout(2*time.Second)) }

func registerFavorites(r chi.Router, d deps.Deps) {
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", handlers.ListFavorites(d))
		r.Put("/", handlers.AddFavorite(d))
		r.Get("/tags", handlers.FavoriteTags(d))
		r.Get("/{itemID}", handlers.GetFavorite(d))
		r.Patch("/{itemID}", handlers.UpdateFavorite(d))
		r.Delete("/{itemID}", handlers.RemoveFavorite(d))
		r.Post("/toggle", handlers.ToggleFavorite(d))
	})
}
