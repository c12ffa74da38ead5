package application

import (
	"time"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/models"
)

// CheckoutView is the caller-facing state of a session
type CheckoutView struct {
	SessionKey     string               `json:"session_key"`
	Channel        domain.Channel       `json:"channel"`
	Stage          domain.ActionStage   `json:"stage"`
	Terminal       bool                 `json:"terminal"`
	Retryable      bool                 `json:"retryable"`
	OrderInitiated bool                 `json:"order_initiated"`
	OrderID        string               `json:"order_id,omitempty"`
	ShortURL       string               `json:"short_url,omitempty"`
	Amount         models.Money         `json:"amount"`
	TrialsCount    int                  `json:"trials_count"`
	BackTrialCount int                  `json:"back_trial_count"`
	LastError      *domain.ErrorPayload `json:"last_error,omitempty"`
	SavedAt        time.Time            `json:"saved_at"`
	Version        int                  `json:"version"`
}

func NewCheckoutView(cp *domain.Checkpoint) *CheckoutView {
	if cp == nil {
		return nil
	}
	state := cp.RetryState
	view := &CheckoutView{
		SessionKey:     cp.SessionKey,
		Channel:        cp.Channel,
		Stage:          state.Stage,
		Terminal:       state.Stage.IsTerminal(),
		Retryable:      state.Stage.IsRetryableError(),
		OrderInitiated: state.OrderInitiated,
		OrderID:        state.OrderID(),
		Amount:         cp.Cart.Total,
		TrialsCount:    state.TrialsCount,
		BackTrialCount: state.BackTrialCount,
		LastError:      state.LastError,
		SavedAt:        cp.SavedAt,
		Version:        cp.Version,
	}
	if rd := state.RequestData(); rd.HasLink() {
		view.ShortURL = rd.ShortURL
	}
	return view
}
