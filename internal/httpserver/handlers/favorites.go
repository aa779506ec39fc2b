package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/curiohq/curio/internal/domain"
	"github.com/curiohq/curio/internal/httpserver/deps"
)

// itemIDParam parses the {itemID} URL parameter.
func itemIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	return id, err == nil
}

// ListFavorites returns the full mapping, or the favorites carrying a
// given tag when ?tag= is present.
func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tag := r.URL.Query().Get("tag"); tag != "" {
			writeJSON(w, http.StatusOK, d.Store.Favorites.ByTag(r.Context(), tag))
			return
		}
		writeJSON(w, http.StatusOK, d.Store.Favorites.List(r.Context()))
	}
}

func GetFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		fav, ok := d.Store.Favorites.Get(r.Context(), itemID)
		if !ok {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		writeJSON(w, http.StatusOK, fav)
	}
}

// AddFavorite upserts a favorite. Item ID and title are required at this
// boundary; notes and tags omitted from the payload preserve whatever is
// already stored.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.FavoriteInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		if in.ItemID == 0 {
			writeError(w, http.StatusBadRequest, "item_id is required")
			return
		}
		if in.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		writeJSON(w, http.StatusOK, d.Store.Favorites.Add(r.Context(), in))
	}
}

func UpdateFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		var upd domain.FavoriteUpdate
		if err := decodeJSON(r, &upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		fav, ok := d.Store.Favorites.Update(r.Context(), itemID, upd)
		if !ok {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		writeJSON(w, http.StatusOK, fav)
	}
}

type removedResponse struct {
	Removed bool `json:"removed"`
}

func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := itemIDParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid item id")
			return
		}
		removed := d.Store.Favorites.Remove(r.Context(), itemID)
		writeJSON(w, http.StatusOK, removedResponse{Removed: removed})
	}
}

type toggleResponse struct {
	Favorited bool `json:"favorited"`
}

func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.FavoriteInput
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		if in.ItemID == 0 {
			writeError(w, http.StatusBadRequest, "item_id is required")
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{
			Favorited: d.Store.Favorites.Toggle(r.Context(), in),
		})
	}
}

func FavoriteTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.Favorites.AllTags(r.Context()))
	}
}
