package order

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srana86/frameX-sub009/core"
	"github.com/srana86/frameX-sub009/pkg/binder"
	"github.com/srana86/frameX-sub009/pkg/query"
	"github.com/srana86/frameX-sub009/pkg/tenant"
)

// Handler exposes the order service over HTTP. Mount behind the tenant
// middleware; every route requires a tenant on the context.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the HTTP handler for orders.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if svc == nil {
		panic("order: service is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// Routes mounts the order endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	result, err := h.svc.List(r.Context(), current.ID, query.ParamsFromRequest(r))
	if err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	core.Render(w, r, core.JSONWithMeta(result.Data, result.Meta))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	id, err := binder.PathString(r, "id")
	if err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	found, err := h.svc.Get(r.Context(), current.ID, id)
	if err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	core.Render(w, r, core.JSON(found))
}

func (h *Handler) errorResponse(r *http.Request, err error) core.Response {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return core.JSONError(core.ErrNotFound)
	case query.IsValidationError(err):
		return core.JSONError(core.ErrBadRequest)
	default:
		h.log.ErrorContext(r.Context(), "order request failed", "error", err)
		return core.JSONError(core.ErrInternalServerError)
	}
}
