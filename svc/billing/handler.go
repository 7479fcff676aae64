// Package billing exposes the subscription lifecycle over HTTP: plan
// listing, purchase, renewal payment, cancellation and status.
package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srana86/frameX-sub009/core"
	"github.com/srana86/frameX-sub009/pkg/binder"
	"github.com/srana86/frameX-sub009/pkg/subscription"
	"github.com/srana86/frameX-sub009/pkg/tenant"
)

// Handler exposes billing endpoints. Mount behind the tenant middleware;
// the plan catalog is the only route that works without a tenant.
type Handler struct {
	subs subscription.Service
	log  *slog.Logger
}

// NewHandler creates the billing HTTP handler.
func NewHandler(subs subscription.Service, log *slog.Logger) *Handler {
	if subs == nil {
		panic("billing: subscription service is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{subs: subs, log: log}
}

// Routes mounts the billing endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/plans", h.listPlans)
	r.Get("/subscription", h.status)
	r.Post("/subscription", h.purchase)
	r.Post("/subscription/cancel", h.cancel)
	r.Get("/invoices", h.listInvoices)
	r.Post("/invoices/{id}/pay", h.payInvoice)
	return r
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	var public []subscription.Plan
	for _, plan := range h.subs.Plans() {
		if plan.Public {
			public = append(public, plan)
		}
	}
	core.Render(w, r, core.JSON(public))
}

type purchaseRequest struct {
	PlanID string `json:"plan_id"`
}

type purchaseResponse struct {
	Subscription *subscription.Subscription `json:"subscription"`
	Invoice      *subscription.Invoice      `json:"invoice"`
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	var req purchaseRequest
	if err := binder.JSON(r, &req); err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}
	if req.PlanID == "" {
		valErr := core.ValidationError{}
		valErr.Add("plan_id", "is required")
		core.Render(w, r, core.JSONError(valErr))
		return
	}

	sub, inv, err := h.subs.Purchase(r.Context(), current.ID, req.PlanID)
	if err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	core.Render(w, r, core.JSONStatus(http.StatusCreated, purchaseResponse{
		Subscription: sub,
		Invoice:      inv,
	}))
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	details, err := h.subs.Status(r.Context(), current.ID)
	if err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	core.Render(w, r, core.JSON(details))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	if err := h.subs.Cancel(r.Context(), current.ID); err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	core.Render(w, r, nil)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	invoices, err := h.subs.Invoices(r.Context(), current.ID)
	if err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	if invoices == nil {
		invoices = []*subscription.Invoice{}
	}
	core.Render(w, r, core.JSON(invoices))
}

func (h *Handler) payInvoice(w http.ResponseWriter, r *http.Request) {
	current := tenant.MustFromContext(r.Context())

	invoiceID, err := binder.PathUUID(r, "id")
	if err != nil {
		core.Render(w, r, core.JSONError(core.ErrBadRequest))
		return
	}

	sub, err := h.subs.ApplyPayment(r.Context(), current.ID, invoiceID)
	if err != nil {
		core.Render(w, r, h.errorResponse(r, err))
		return
	}
	core.Render(w, r, core.JSON(sub))
}

func (h *Handler) errorResponse(r *http.Request, err error) core.Response {
	switch {
	case errors.Is(err, subscription.ErrPlanNotFound),
		errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, subscription.ErrInvoiceNotFound):
		return core.JSONError(core.ErrNotFound)
	case errors.Is(err, subscription.ErrSubscriptionAlreadyExists),
		errors.Is(err, subscription.ErrSubscriptionNotRenewable),
		errors.Is(err, subscription.ErrInvalidInvoiceTransition),
		errors.Is(err, subscription.ErrInvoicePeriodMismatch):
		return core.JSONError(core.ErrConflict)
	case errors.Is(err, subscription.ErrInvalidBillingCycle):
		return core.JSONError(core.ErrUnprocessableEntity)
	default:
		h.log.ErrorContext(r.Context(), "billing request failed", "error", err)
		return core.JSONError(core.ErrInternalServerError)
	}
}
