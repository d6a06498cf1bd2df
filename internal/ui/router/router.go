// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	chartviewFeature "github.com/leapstack-labs/samplechart/internal/ui/features/chartview"
	"github.com/leapstack-labs/samplechart/internal/ui/notifier"
	"github.com/leapstack-labs/samplechart/internal/ui/resources"
	"github.com/leapstack-labs/samplechart/internal/widget"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	w *widget.Widget,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	if isDev {
		setupReload(router)
	}

	router.Handle("/static/*", resources.Handler())
	router.Get("/healthz", handleHealth)

	return chartviewFeature.SetupRoutes(router, w, notify, logger, isDev)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// setupReload reloads open pages once after a restart and again whenever
// /hotreload is hit.
func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
