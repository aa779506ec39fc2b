package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/httpserver/handlers"
)

func init() { Register(registerGalleries, middleware.Timeout(2*time.Second)) }

func registerGalleries(r chi.Router, d deps.Deps) {
	r.Route("/galleries", func(r chi.Router) {
		r.Get("/", handlers.ListGalleries(d))
		r.Post("/", handlers.CreateGallery(d))
		r.Get("/containing/{itemID}", handlers.GalleriesContaining(d))
		r.Route("/{galleryID}", func(r chi.Router) {
			r.Get("/", handlers.GetGallery(d))
			r.Patch("/", handlers.UpdateGallery(d))
			r.Delete("/", handlers.DeleteGallery(d))
			r.Post("/items", handlers.AddGalleryItem(d))
			r.Delete("/items/{itemID}", handlers.RemoveGalleryItem(d))
			r.Put("/order", handlers.ReorderGallery(d))
		})
	})
}
