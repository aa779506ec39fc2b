package handlers

import (
	"net/http"

	"github.com/curiohq/curio/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool `json:"ready"`
	Persistent bool `json:"persistent"`
}

// Readyz reports readiness. A missing backing store is still ready:
// curio degrades to non-persistent operation rather than failing.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:      true,
			Persistent: d.Persistent,
		})
	}
}
