package handlers

import (
	"net/http"

	"github.com/curiohq/curio/internal/httpserver/deps"
	"github.com/curiohq/curio/internal/logger"
)

// Reload triggers a manual re-import of the seed file.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.SeedReloadTrigger == nil {
			writeError(w, http.StatusNotFound, "seeding is not configured")
			return
		}

		select {
		case d.SeedReloadTrigger <- struct{}{}:
			d.Logger.Info("manual seed reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("reload triggered\n"))
		default:
			d.Logger.Warn("seed reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("reload already in progress, please wait\n"))
		}
	}
}
