package chartview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/samplechart/internal/testutil"
	"github.com/leapstack-labs/samplechart/internal/ui/features"
	"github.com/leapstack-labs/samplechart/pkg/core"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(fixture.Widget, fixture.Notifier, testutil.NewTestLogger(t), false)
	return handlers, fixture
}

func datastarPost(t *testing.T, target string, signals map[string]any) *http.Request {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// tableRows parses the points table out of an HTML fragment.
// It returns nil when the document has no table.
func tableRows(t *testing.T, body string) [][]string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)

	var table *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if table != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "table" {
			table = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if table == nil {
		return nil
	}

	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") && c.FirstChild != nil {
					cells = append(cells, c.FirstChild.Data)
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

// =============================================================================
// Page Tests
// =============================================================================

func TestPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Page(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>Chart - samplechart</title>",
		`data-signals="{&#34;sampleSize&#34;:&#34;small&#34;}"`,
		`<option value="small" selected>Small</option>`,
		`<option value="medium">Medium</option>`,
		`<option value="large">Large</option>`,
		`<button type="submit">load data</button>`,
		`@get('/updates')`,
		`id="widget"`,
		`<div id="canvas" class="canvas"><svg`,
	} {
		assert.Contains(t, body, want)
	}
}

func TestPage_NoTableBeforeSubmit(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Nil(t, tableRows(t, rec.Body.String()))
}

func TestPage_TableAfterSubmit(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	require.NoError(t, fixture.Widget.Submit(context.Background()))

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	rows := tableRows(t, rec.Body.String())
	assert.Equal(t, [][]string{
		{"X", "Y"},
		{"0", "5"},
		{"1", "3"},
		{"2", "9"},
	}, rows)
}

// =============================================================================
// Action Tests
// =============================================================================

func TestSelectSampleSize_DoesNotFetch(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.SelectSampleSize(rec, datastarPost(t, "/api/sample-size", map[string]any{"sampleSize": "medium"}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "medium", fixture.Widget.SampleSize())
	assert.Empty(t, fixture.Service.Calls())
}

func TestSubmit_Datastar(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Submit(rec, datastarPost(t, "/api/submit", map[string]any{"sampleSize": "medium"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"medium"}, fixture.Service.Calls())

	body := rec.Body.String()
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, `id="widget"`)
	assert.Contains(t, body, "<th>X</th><th>Y</th>")
	assert.Equal(t, 5, strings.Count(body, "<tr>"), "header plus four points")

	st := fixture.Widget.State()
	assert.Equal(t, core.Bounds{MinX: 10, MaxX: 40, MinY: 1, MaxY: 4}, st.Bounds)
}

func TestSubmit_FormPostRedirects(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	form := url.Values{"sampleSize": {"large"}}
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"large"}, fixture.Service.Calls())
}

func TestSubmit_FailureShowsBanner(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	require.NoError(t, fixture.Widget.Submit(context.Background()))

	fixture.Service.SetErr(errors.New("service unavailable"))
	rec := httptest.NewRecorder()
	h.Submit(rec, datastarPost(t, "/api/submit", map[string]any{"sampleSize": "small"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="error" role="alert"`)
	assert.Contains(t, body, "service unavailable")
	assert.Contains(t, body, "<td>9</td>", "previous points stay visible")
}

func TestSubmit_BadSignals(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader("{not json"))
	req.Header.Set("Datastar-Request", "true")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Contains(t, rec.Body.String(), "Failed to read signals")
	assert.Empty(t, fixture.Service.Calls())
}

// =============================================================================
// Updates Tests - SSE endpoint for live updates only
// =============================================================================

func TestUpdates_SendsWidgetOnChange(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, fixture.Widget.Submit(context.Background()))

	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
	assert.Contains(t, body, "<td>9</td>")
}

func TestUpdates_NoInitialState(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 50*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	h.Updates(rec, req)

	assert.Equal(t, 0, strings.Count(rec.Body.String(), "event:"))
}

// =============================================================================
// Image and JSON Tests
// =============================================================================

func TestChartImage(t *testing.T) {
	tests := []struct {
		path        string
		wantStatus  int
		contentType string
		prefix      string
	}{
		{path: "/chart.svg", wantStatus: http.StatusOK, contentType: "image/svg+xml", prefix: "<svg"},
		{path: "/chart.png", wantStatus: http.StatusOK, contentType: "image/png", prefix: "\x89PNG"},
		{path: "/chart.gif", wantStatus: http.StatusNotFound},
	}

	h, fixture := setupTestHandlers(t)
	require.NoError(t, fixture.Widget.Submit(context.Background()))

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ChartImage(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), tt.prefix))
		})
	}
}

func TestPoints(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Points(rec, httptest.NewRequest(http.MethodGet, "/api/points", nil))

	var before PointsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))
	assert.False(t, before.HasData)
	assert.Empty(t, before.Points)
	assert.Equal(t, core.DefaultBounds(), before.Bounds)

	require.NoError(t, fixture.Widget.Submit(context.Background()))

	rec = httptest.NewRecorder()
	h.Points(rec, httptest.NewRequest(http.MethodGet, "/api/points", nil))

	var after PointsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.True(t, after.HasData)
	assert.Equal(t, "small", after.SampleSize)
	assert.Equal(t, []core.Point{{X: 0, Y: 5}, {X: 1, Y: 3}, {X: 2, Y: 9}}, after.Points)
	assert.Equal(t, core.Bounds{MinX: 0, MaxX: 2, MinY: 3, MaxY: 9}, after.Bounds)
	assert.NotEmpty(t, after.FetchID)
}

func TestChartConfig(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	require.NoError(t, fixture.Widget.Submit(context.Background()))

	rec := httptest.NewRecorder()
	h.ChartConfig(rec, httptest.NewRequest(http.MethodGet, "/api/chart", nil))

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, "line", cfg["type"])

	scales := cfg["options"].(map[string]any)["scales"].(map[string]any)
	x := scales["x"].(map[string]any)
	y := scales["y"].(map[string]any)
	assert.Equal(t, 0.0, x["min"])
	assert.Equal(t, 2.0, x["max"])
	assert.Equal(t, 3.0, y["min"])
	assert.Equal(t, 9.0, y["max"])
}
