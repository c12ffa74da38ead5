package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/application"
	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/models"
)

// CheckoutHandlers contains checkout HTTP handlers
type CheckoutHandlers struct {
	startCheckout  *application.StartCheckout
	resumeCheckout *application.ResumeCheckout
	goBack         *application.GoBack
	getCheckout    *application.GetCheckout
	creditRequests *application.CreditRequests
	balances       *application.BalanceRefresher
}

// NewCheckoutHandlers creates new checkout handlers
func NewCheckoutHandlers(
	startCheckout *application.StartCheckout,
	resumeCheckout *application.ResumeCheckout,
	goBack *application.GoBack,
	getCheckout *application.GetCheckout,
	creditRequests *application.CreditRequests,
	balances *application.BalanceRefresher,
) *CheckoutHandlers {
	return &CheckoutHandlers{
		startCheckout:  startCheckout,
		resumeCheckout: resumeCheckout,
		goBack:         goBack,
		getCheckout:    getCheckout,
		creditRequests: creditRequests,
		balances:       balances,
	}
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error     string         `json:"error"`
	Channel   domain.Channel `json:"channel,omitempty"`
	Shortfall *models.Money  `json:"shortfall,omitempty"`
}

// balancesResponse carries what could be read even when a balance failed
type balancesResponse struct {
	RetailerID string          `json:"retailer_id"`
	Balances   domain.Balances `json:"balances"`
	Error      string          `json:"error,omitempty"`
}

// StartCheckout handles checkout creation requests
func (h *CheckoutHandlers) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var cmd application.StartCheckoutCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	response, err := h.startCheckout.Execute(r.Context(), &cmd)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, response)
}

// GetCheckout handles checkpoint retrieval requests
func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	view, err := h.getCheckout.Execute(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetHistory handles checkpoint journal requests. limit keeps the most recent entries.
func (h *CheckoutHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	views, err := h.getCheckout.History(r.Context(), chi.URLParam(r, "key"), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// ResumeCheckout handles resume requests
func (h *CheckoutHandlers) ResumeCheckout(w http.ResponseWriter, r *http.Request) {
	cmd := &application.ResumeCheckoutCommand{SessionKey: chi.URLParam(r, "key")}

	view, err := h.resumeCheckout.Execute(r.Context(), cmd)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GoBack handles the caller leaving the checkout
func (h *CheckoutHandlers) GoBack(w http.ResponseWriter, r *http.Request) {
	cmd := &application.GoBackCommand{SessionKey: chi.URLParam(r, "key")}

	if err := h.goBack.Execute(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RaiseCreditRequest handles credit request submissions
func (h *CheckoutHandlers) RaiseCreditRequest(w http.ResponseWriter, r *http.Request) {
	var cmd application.RaiseCreditRequestCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.creditRequests.Raise(r.Context(), &cmd)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, result)
}

// GetBalances handles balance refresh requests
func (h *CheckoutHandlers) GetBalances(w http.ResponseWriter, r *http.Request) {
	retailerID := chi.URLParam(r, "id")

	balances, err := h.balances.Refresh(r.Context(), retailerID)
	if err != nil && balances.Wallet == nil && balances.Credit == nil {
		logging.SW("retailer_id", retailerID, "error", err).Warnw("balances_unavailable")
		writeError(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	response := balancesResponse{RetailerID: retailerID, Balances: balances}
	if err != nil {
		response.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/checkouts", func(r chi.Router) {
			r.Post("/", h.StartCheckout)
			r.Get("/{key}", h.GetCheckout)
			r.Get("/{key}/history", h.GetHistory)
			r.Post("/{key}/resume", h.ResumeCheckout)
			r.Post("/{key}/back", h.GoBack)
		})
		r.Post("/credit-requests", h.RaiseCreditRequest)
		r.Get("/retailers/{id}/balances", h.GetBalances)
	})
}

func (h *CheckoutHandlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		shortfall := insufficient.Shortfall
		writeError(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     err.Error(),
			Channel:   insufficient.Channel,
			Shortfall: &shortfall,
		})
		return
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.SW("path", r.URL.Path, "error", err).Errorw("checkout_request_failed")
	}
	writeError(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCheckpointNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCheckpointExists),
		errors.Is(err, domain.ErrGoBackDenied),
		errors.Is(err, domain.ErrSessionBusy),
		errors.Is(err, domain.ErrCheckpointConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoChannelPermitted),
		errors.Is(err, domain.ErrChannelNotPermitted),
		errors.Is(err, domain.ErrInvalidCreditAmount),
		errors.Is(err, domain.ErrCreditRequestNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrInvalidCommand):
		return http.StatusBadRequest
	}

	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, body errorResponse) {
	writeJSON(w, status, body)
}
