package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/httpserver/deps"
)

func ListGalleries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.Galleries.List(r.Context()))
	}
}

func GetGallery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gal, ok := d.Store.Galleries.Get(r.Context(), chi.URLParam(r, "galleryID"))
		if !ok {
			writeError(w, http.StatusNotFound, "gallery not found")
			return
		}
		writeJSON(w, http.StatusOK, gal)
	}
}

// CreateGallery makes a new empty gallery. The non-empty-name rule lives
// here on purpose: the repository stores whatever it is handed, and this
// boundary is where untrusted input gets rejected.
func CreateGallery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.GalleryInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		if in.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		writeJSON(w, http.StatusCreated, d.Store.Galleries.Create(r.Context(), in))
	}
}

func UpdateGallery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd domain.GalleryUpdate
		if err := decodeJSON(r, &upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		if upd.Name != nil && *upd.Name == "" {
			writeError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		gal, ok := d.Store.Galleries.Update(r.Context(), chi.URLParam(r, "galleryID"), upd)
		if !ok {
			writeError(w, http.StatusNotFound, "gallery not found")
			return
		}
		writeJSON(w, http.StatusOK, gal)
	}
}

func DeleteGallery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed := d.Store.Galleries.Delete(r.Context(), chi.URLParam(r, "galleryID"))
		writeJSON(w, http.StatusOK, removedResponse{Removed: removed})
	}
}

func AddGalleryItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.GalleryItemInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		if in.ItemID == 0 {
			writeError(w, http.StatusBadRequest, "item_id is required")
			return
		}
		gal, ok := d.Store.Galleries.AddItem(r.Context(), chi.URLParam(r, "galleryID"), in)
		if !ok {
			writeError(w, http.StatusNotFound, "gallery not found")
			return
		}
		writeJSON(w, http.StatusOK, gal)
	}
}

func RemoveGalleryItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		gal, ok := d.Store.Galleries.RemoveItem(r.Context(), chi.URLParam(r, "galleryID"), itemID)
		if !ok {
			writeError(w, http.StatusNotFound, "gallery not found")
			return
		}
		writeJSON(w, http.StatusOK, gal)
	}
}

type reorderRequest struct {
	ItemIDs []int64 `json:"item_ids"`
}

// ReorderGallery applies a full or partial ordering. Items not mentioned
// keep their relative order after the mentioned ones, so a reorder
// computed against a stale view never drops items.
func ReorderGallery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		gal, ok := d.Store.Galleries.ReorderItems(r.Context(), chi.URLParam(r, "galleryID"), req.ItemIDs)
		if !ok {
			writeError(w, http.StatusNotFound, "gallery not found")
			return
		}
		writeJSON(w, http.StatusOK, gal)
	}
}

func GalleriesContaining(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		writeJSON(w, http.StatusOK, d.Store.Galleries.GalleriesContaining(r.Context(), itemID))
	}
}
