package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/export"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// Deps are the collaborators the HTTP API is built on.
type Deps struct {
	DB             *repository.DB
	Cards          *cards.Service
	Export         *export.Service
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

type Router struct {
	mux  *chi.Mux
	deps Deps
}

func NewRouter(deps Deps) *Router {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if len(deps.AllowedOrigins) == 0 {
		deps.AllowedOrigins = []string{"*"}
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 20 << 20
	}
	return &Router{mux: chi.NewRouter(), deps: deps}
}

func (rt *Router) Setup() (http.Handler, error) {
	r := rt.mux
	logger := rt.deps.Logger

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(rt.deps.AllowedOrigins))

	healthH := NewHealthHandler(rt.deps.DB, rt.deps.Cards, logger)
	r.Get("/", healthH.Home)
	r.Get("/healthz", healthH.Healthz)
	r.Get("/readyz", healthH.Readyz)
	r.Get("/api/debug/count", healthH.Count)

	cardH, err := NewCardHandler(rt.deps.Cards, rt.deps.MaxUploadBytes, logger)
	if err != nil {
		return nil, err
	}
	r.Post("/scan", cardH.Scan)
	r.Post("/extract", cardH.Extract)
	r.Post("/cards", cardH.Save)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardH.List)
			r.Get("/deleted", cardH.ListDeleted)
			r.Put("/{id}", cardH.Update)
			r.Delete("/{id}", cardH.Delete)
			r.Post("/restore/{id}", cardH.Restore)
		})
		r.Get("/deleted", cardH.ListDeleted)
		r.Post("/deleted/restore/{id}", cardH.Restore)

		exportH := NewExportHandler(rt.deps.Export, logger)
		r.Get("/export/excel", exportH.Excel)
	})

	return r, nil
}
