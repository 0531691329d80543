package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scadaval/app"
	"scadaval/internal"
	"scadaval/ui/services"
)

//go:embed templates/*.html templates/fragments/*.html
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	config    Config
	service   *app.ComparisonService
	datasets  *services.DataService
	render    *services.RenderService
	templates *template.Template
	logger    *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	MaxUploadBytes int64
	DatasetTTL     time.Duration
	// Sheet is read from uploaded workbooks when the form leaves it blank
	Sheet string
}

// NewApp creates a new UI application
func NewApp(config Config, service *app.ComparisonService, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		config:    config,
		service:   service,
		datasets:  services.NewDataService(config.DatasetTTL, logger),
		render:    services.NewRenderService(templates, logger),
		templates: templates,
		logger:    logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Post("/datasets", a.handleUpload)
	a.router.Route("/datasets/{id}", func(r chi.Router) {
		r.Get("/", a.handleDataset)
		r.Get("/compare", a.handleCompare)
		r.Get("/export", a.handleExport)
	})
}

// Mount attaches another handler, such as the JSON API, under pattern
func (a *App) Mount(pattern string, h http.Handler) {
	a.router.Mount(pattern, h)
}

// Datasets exposes the in-memory dataset cache
func (a *App) Datasets() *services.DataService {
	return a.datasets
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.router
}
