package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkcast/internal/adapter/artifact"
	"linkcast/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds a CampaignUseCase to execute business logic, the artifact
// store to serve generated landing pages and a logger for structured
// logging. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	svc    port.CampaignUseCase
	store  *artifact.Store
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. The CRUD surface
// lives under /api/v1, generated scripts are fetchable at
// /scripts/{slug}.js and landing pages at /pages/{slug}.html.
func NewHandler(svc port.CampaignUseCase, store *artifact.Store, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, store: store, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/campaigns", h.handleListCampaigns)
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Put("/campaigns/{id}", h.handleUpdateCampaign)
		r.Patch("/campaigns/{id}/active", h.handleSetActive)
		r.Delete("/campaigns/{id}", h.handleDeleteCampaign)
	})
	r.Get("/scripts/{slug}.js", h.handleScript)
	r.Get("/pages/{slug}.html", h.handlePage)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// writeError maps domain errors onto HTTP status codes. Validation failures
// carry their message to the client; storage and artifact failures are
// logged with detail but answered with a generic body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *port.ValidationError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrConflict):
		http.Error(w, "campaign name already exists", http.StatusConflict)
	case errors.Is(err, port.ErrNotFound):
		http.NotFound(w, r)
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
