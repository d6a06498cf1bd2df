// Package chartview serves the chart widget page, its live updates and the
// chart image and JSON endpoints.
package chartview

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/samplechart/internal/ui/notifier"
	"github.com/leapstack-labs/samplechart/internal/widget"
)

// SetupRoutes configures routes for the chart widget.
func SetupRoutes(
	router chi.Router,
	w *widget.Widget,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(w, notify, logger, isDev)

	router.Get("/", handlers.Page)
	router.Get("/updates", handlers.Updates)
	router.Get("/chart.svg", handlers.ChartImage)
	router.Get("/chart.png", handlers.ChartImage)

	router.Route("/api", func(r chi.Router) {
		r.Post("/sample-size", handlers.SelectSampleSize)
		r.Post("/submit", handlers.Submit)
		r.Get("/points", handlers.Points)
		r.Get("/chart", handlers.ChartConfig)
	})

	return nil
}
