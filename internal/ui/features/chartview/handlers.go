package chartview

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/samplechart/internal/chart"
	"github.com/leapstack-labs/samplechart/internal/ui/features/chartview/components"
	"github.com/leapstack-labs/samplechart/internal/ui/features/common"
	"github.com/leapstack-labs/samplechart/internal/ui/notifier"
	"github.com/leapstack-labs/samplechart/internal/widget"
	"github.com/leapstack-labs/samplechart/pkg/core"
)

// Handlers provides HTTP handlers for the chart widget.
type Handlers struct {
	widget   *widget.Widget
	notifier *notifier.Notifier
	logger   *slog.Logger
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(w *widget.Widget, notify *notifier.Notifier, logger *slog.Logger, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		widget:   w,
		notifier: notify,
		logger:   logger,
		isDev:    isDev,
	}
}

// Page renders the full widget page with the current state.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	view, err := h.buildView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Page(view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Updates is the long-lived SSE endpoint. It sends nothing up front (the page
// is already server-rendered) and patches #widget after every change.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.sendWidget(sse); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// SelectSampleSize stores the selection from the posted signals.
// It does not fetch.
func (h *Handlers) SelectSampleSize(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.widget.SelectSampleSize(signals.SampleSize)
	w.WriteHeader(http.StatusNoContent)
}

// Submit fetches the dataset for the posted selection. Failures are shown in
// the widget's error banner rather than failing the request. Plain form
// posts are redirected back to the page.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	datastarRequest := r.Header.Get("Datastar-Request") == "true"

	size, ok := h.readSelection(w, r, datastarRequest)
	if !ok {
		return
	}
	if size != "" {
		h.widget.SelectSampleSize(size)
	}

	err := h.widget.Submit(r.Context())
	switch {
	case widget.IsStale(err):
		h.logger.Debug("submission superseded")
	case err != nil:
		h.logger.Warn("submit failed", "error", err)
	}

	if !datastarRequest {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := h.sendWidget(sse); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) readSelection(w http.ResponseWriter, r *http.Request, datastarRequest bool) (string, bool) {
	if datastarRequest {
		var signals Signals
		if err := datastar.ReadSignals(r, &signals); err != nil {
			sse := datastar.NewSSE(w, r)
			_ = sse.PatchElementTempl(components.ErrorBanner("Failed to read signals: " + err.Error()))
			return "", false
		}
		return strings.TrimSpace(signals.SampleSize), true
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return strings.TrimSpace(r.PostForm.Get("sampleSize")), true
}

// ChartImage renders the chart as SVG or PNG depending on the path extension.
func (h *Handlers) ChartImage(w http.ResponseWriter, r *http.Request) {
	format, err := chart.ParseFormat(strings.TrimPrefix(path.Ext(r.URL.Path), "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := h.widget.Chart().Render(&buf, format); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format == chart.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// Points returns the current points and bounds as JSON.
func (h *Handlers) Points(w http.ResponseWriter, _ *http.Request) {
	st := h.widget.State()
	points := st.Points
	if points == nil {
		points = []core.Point{}
	}
	writeJSON(w, PointsResponse{
		SampleSize: st.SampleSize,
		HasData:    st.HasData,
		Points:     points,
		Bounds:     st.Bounds,
		Error:      st.ErrMessage(),
		FetchID:    st.FetchID,
	})
}

// ChartConfig returns the chart configuration as JSON.
func (h *Handlers) ChartConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.widget.Chart().Config())
}

func (h *Handlers) sendWidget(sse *datastar.ServerSentEventGenerator) error {
	view, err := h.buildView()
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(components.Widget(view))
}

// buildView snapshots the widget and renders the chart canvas.
func (h *Handlers) buildView() (components.View, error) {
	view := components.View{
		Meta:  common.PageMeta{Title: "Chart", IsDev: h.isDev},
		State: h.widget.State(),
	}

	var svg bytes.Buffer
	if err := h.widget.Chart().Render(&svg, chart.FormatSVG); err != nil {
		return view, err
	}
	view.SVG = svg.String()
	return view, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
