package ui

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopower/app"
	"gopower/domain/sweep"
	"gopower/internal/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := NewApp(app.NewSweepService(sweep.Defaults()), logging.New(logging.LevelError))
	require.NoError(t, err)
	return a
}

func TestSampleSizeEndpoint_DirectRates(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sample-size?p1=0.5&p2=0.55&alpha=0.05&power=0.8", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sampleSizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1565, resp.RequiredN)
	assert.InDelta(t, 1564.672, resp.RawN, 0.01)
}

func TestSampleSizeEndpoint_BaselineAndMDE(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sample-size?baseline=0.5&mde=0.05", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sampleSizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6275, resp.RequiredN)
	assert.InDelta(t, 0.525, resp.Query.P2, 1e-9)
}

func TestSampleSizeEndpoint_InvalidParameter(t *testing.T) {
	a := newTestApp(t)

	for _, url := range []string{
		"/api/sample-size?p1=0&p2=0.5",
		"/api/sample-size?p1=0.5&p2=0.5",
		"/api/sample-size?p1=0.5&p2=0.55&alpha=1.5",
		"/api/sample-size?p1=abc&p2=0.5",
	} {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "url %s", url)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_INPUT", resp.Code)
	}
}

func TestSweepEndpoint_ReturnsOrderedEvaluations(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sweeps/mde", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result app.SweepResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, sweep.AxisMDE, result.Axis)
	require.NotEmpty(t, result.Evaluations)

	prev := result.Evaluations[0].Point.Value
	for _, ev := range result.Evaluations[1:] {
		assert.Greater(t, ev.Point.Value, prev)
		prev = ev.Point.Value
	}
}

func TestSweepEndpoint_UnknownAxis(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sweeps/variance", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChartEndpoint_ServesPNG(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/charts/baseline.png", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Greater(t, rec.Body.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, rec.Body.Bytes()[:4])
}

type failingRenderer struct{}

func (failingRenderer) RenderPNG(_ *app.SweepResult, _ io.Writer) error {
	return stderrors.New("canvas unavailable")
}

func TestChartEndpoint_RenderFailureReturnsErrorResponse(t *testing.T) {
	a := newTestApp(t)
	a.renderer = failingRenderer{}

	req := httptest.NewRequest(http.MethodGet, "/charts/mde.png", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RENDER_ERROR", resp.Code)
}

func TestIndexPage_RendersAllSections(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/charts/mde.png")
	assert.Contains(t, body, "/charts/alpha.png")
	assert.Contains(t, body, "/charts/baseline.png")
	assert.Contains(t, body, "minimum detectable effect")
}
