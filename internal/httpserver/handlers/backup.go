package handlers

import (
	"net/http"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/store"
)

// Export dumps both envelopes for external backup or a future
// cross-device sync.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.Export(r.Context()))
	}
}

type importResponse struct {
	Favorites int `json:"favorites"`
	Galleries int `json:"galleries"`
}

// Import merges a backup into the store; imported entries win on key
// conflicts.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b store.Backup
		if err := decodeJSON(r, &b); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}
		d.Store.Import(r.Context(), b)
		writeJSON(w, http.StatusOK, importResponse{
			Favorites: len(b.Favorites),
			Galleries: len(b.Galleries),
		})
	}
}
