package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gopower/adapters/chart"
	"gopower/app"
	"gopower/internal/logging"
)

//go:embed templates/*
var embeddedFiles embed.FS

// ChartRenderer draws a sweep result as a PNG stream.
type ChartRenderer interface {
	RenderPNG(result *app.SweepResult, w io.Writer) error
}

// App represents the planning dashboard application
type App struct {
	router    *chi.Mux
	sweeps    *app.SweepService
	renderer  ChartRenderer
	templates *template.Template
	logger    *logging.Logger
}

// NewApp creates a new dashboard application
func NewApp(sweeps *app.SweepService, logger *logging.Logger) (*App, error) {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
		// Format sample sizes as e.g. "6.3k" for 6275.
		"kfmt": func(v float64) string { return chart.KiloLabel(v) },
		"pct":  func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		sweeps:    sweeps,
		renderer:  chart.NewRenderer(),
		templates: templates,
		logger:    logger,
	}
	a.setupRoutes()
	return a, nil
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Get("/api/sample-size", a.handleSampleSize)
	a.router.Get("/api/sweeps/{axis}", a.handleSweep)
	a.router.Get("/charts/{axis}.png", a.handleChart)
}

// Router exposes the chi mux for mounting and tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port.
func (a *App) Serve(port string) error {
	addr := ":" + port
	a.logger.Info("planning dashboard listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
