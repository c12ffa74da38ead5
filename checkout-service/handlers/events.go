package handlers

import (
	"context"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/application"
	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/events"
	"github.com/draftea/checkout-system/shared/logging"
)

// CheckoutEventHandlers handles the commands the checkout service receives as events
type CheckoutEventHandlers struct {
	resumeCheckout *application.ResumeCheckout
	creditRequests *application.CreditRequests
}

// NewCheckoutEventHandlers creates new checkout event handlers
func NewCheckoutEventHandlers(
	resumeCheckout *application.ResumeCheckout,
	creditRequests *application.CreditRequests,
) *CheckoutEventHandlers {
	return &CheckoutEventHandlers{
		resumeCheckout: resumeCheckout,
		creditRequests: creditRequests,
	}
}

// Handle implements the events.EventHandler interface
func (h *CheckoutEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.CheckoutResumeRequestedEvent:
		return h.HandleResumeRequested(ctx, event)
	case events.CreditRequestObserveRequestedEvent:
		return h.HandleObserveRequested(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *CheckoutEventHandlers) HandlerID() string {
	return "checkout-service-event-handler"
}

// HandleResumeRequested resumes the session named by the event. Sessions that
// are gone or already being driven are acknowledged; other failures are
// returned so the message is redelivered.
func (h *CheckoutEventHandlers) HandleResumeRequested(ctx context.Context, event *events.Event) error {
	var data ResumeRequestedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to parse resume requested data")
	}
	if data.SessionKey == "" {
		data.SessionKey = event.AggregateID
	}

	view, err := h.resumeCheckout.Execute(ctx, &application.ResumeCheckoutCommand{SessionKey: data.SessionKey})
	if err != nil {
		if errors.Is(err, domain.ErrCheckpointNotFound) ||
			errors.Is(err, domain.ErrSessionBusy) ||
			errors.Is(err, application.ErrInvalidCommand) {
			logging.SW("session_key", data.SessionKey, "error", err).Infow("checkout_resume_event_skipped")
			return nil
		}
		return errors.Wrapf(err, "failed to resume session %s", data.SessionKey)
	}

	logging.SW("session_key", data.SessionKey, "stage", view.Stage).Infow("checkout_resume_event_handled")
	return nil
}

// HandleObserveRequested picks up the observation of a credit request raised
// before a restart
func (h *CheckoutEventHandlers) HandleObserveRequested(ctx context.Context, event *events.Event) error {
	var data ObserveRequestedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to parse observe requested data")
	}
	if data.RetailerID == "" || data.RequestID == "" {
		logging.SW("event_id", event.ID).Warnw("credit_observe_event_incomplete")
		return nil
	}

	h.creditRequests.Observe(data.RetailerID, data.RequestID)
	return nil
}

type ResumeRequestedData struct {
	SessionKey string `json:"session_key"`
}

type ObserveRequestedData struct {
	RetailerID string `json:"retailer_id"`
	RequestID  string `json:"request_id"`
}
