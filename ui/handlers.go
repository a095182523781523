package ui

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"

	"gopower/app"
	"gopower/domain/power"
	"gopower/domain/sweep"
	"gopower/internal/errors"
)

type sampleSizeResponse struct {
	Query     power.Query `json:"query"`
	RawN      float64     `json:"raw_n"`
	RequiredN int         `json:"required_n"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleSampleSize computes a single sample size. Callers supply either
// p1/p2 directly or baseline/mde; alpha and power fall back to the service
// defaults.
func (a *App) handleSampleSize(w http.ResponseWriter, r *http.Request) {
	q, err := a.queryFromRequest(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	raw, err := power.SampleSize(q)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	n, err := power.RequiredSampleSize(q)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	a.writeJSON(w, http.StatusOK, sampleSizeResponse{Query: q, RawN: raw, RequiredN: n})
}

func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	axis, err := sweep.ParseAxis(chi.URLParam(r, "axis"))
	if err != nil {
		a.writeError(w, http.StatusNotFound, errors.WithCode(errors.CodeNotFound, err))
		return
	}

	result, err := a.sweeps.RunAxis(r.Context(), axis)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	axis, err := sweep.ParseAxis(chi.URLParam(r, "axis"))
	if err != nil {
		a.writeError(w, http.StatusNotFound, errors.WithCode(errors.CodeNotFound, err))
		return
	}

	result, err := a.sweeps.RunAxis(r.Context(), axis)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}

	// Render to a buffer first so a failed render still produces a proper
	// error response instead of a truncated 200 PNG body.
	var buf bytes.Buffer
	if err := a.renderer.RenderPNG(result, &buf); err != nil {
		a.logger.Error("chart render failed for axis %s: %v", axis, err)
		a.writeError(w, http.StatusInternalServerError, errors.WithCode(errors.CodeRenderError, err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Error("failed to write chart response: %v", err)
	}
}

type indexSection struct {
	Axis      sweep.Axis
	Narrative template.HTML
	Summary   app.Summary
}

type indexData struct {
	Fixed    sweep.Fixed
	Sections []indexSection
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{Fixed: a.sweeps.Fixed()}

	for _, axis := range []sweep.Axis{sweep.AxisMDE, sweep.AxisAlpha, sweep.AxisBaseline} {
		result, err := a.sweeps.RunAxis(r.Context(), axis)
		if err != nil {
			a.writeError(w, http.StatusInternalServerError, err)
			return
		}
		html := markdown.ToHTML([]byte(app.Narrative(result)), nil, nil)
		data.Sections = append(data.Sections, indexSection{
			Axis:      axis,
			Narrative: template.HTML(html),
			Summary:   result.Summary,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Error("failed to render index: %v", err)
	}
}

func (a *App) queryFromRequest(r *http.Request) (power.Query, error) {
	fixed := a.sweeps.Fixed()
	values := r.URL.Query()

	alpha, err := floatParam(values.Get("alpha"), fixed.Alpha)
	if err != nil {
		return power.Query{}, err
	}
	pw, err := floatParam(values.Get("power"), fixed.Power)
	if err != nil {
		return power.Query{}, err
	}

	if values.Has("p1") || values.Has("p2") {
		p1, err := floatParam(values.Get("p1"), fixed.Baseline)
		if err != nil {
			return power.Query{}, err
		}
		p2, err := floatParam(values.Get("p2"), 0)
		if err != nil {
			return power.Query{}, err
		}
		return power.Query{P1: p1, P2: p2, Alpha: alpha, Power: pw}, nil
	}

	baseline, err := floatParam(values.Get("baseline"), fixed.Baseline)
	if err != nil {
		return power.Query{}, err
	}
	mde, err := floatParam(values.Get("mde"), fixed.MDE)
	if err != nil {
		return power.Query{}, err
	}
	return power.FromRelativeMDE(baseline, mde, alpha, pw), nil
}

func floatParam(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.InvalidInput("query parameter is not a number: " + raw)
	}
	return v, nil
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.writeJSON(w, status, errorResponse{
		Code:    errors.GetCode(err),
		Message: err.Error(),
	})
}
