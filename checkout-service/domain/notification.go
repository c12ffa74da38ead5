package domain

import (
	"github.com/draftea/checkout-system/shared/events"
	"github.com/draftea/checkout-system/shared/models"
)

// RouteOrders sends the caller to the orders screen
const RouteOrders = "orders"

// Notification is emitted when a session reaches an outcome the caller has to
// know about
type Notification struct {
	Type       string            `json:"type"`
	SessionKey string            `json:"session_key,omitempty"`
	RetailerID string            `json:"retailer_id,omitempty"`
	Channel    Channel           `json:"channel,omitempty"`
	Stage      ActionStage       `json:"stage,omitempty"`
	OrderID    string            `json:"order_id,omitempty"`
	Amount     *models.Money     `json:"amount,omitempty"`
	Route      string            `json:"route,omitempty"`
	Error      *ErrorPayload     `json:"error,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// AggregateID is the key notifications are published under
func (n *Notification) AggregateID() string {
	if n.SessionKey != "" {
		return n.SessionKey
	}
	return n.RetailerID
}

func newSessionNotification(eventType string, s *CheckoutSession) *Notification {
	total := s.Cart.Total
	return &Notification{
		Type:       eventType,
		SessionKey: s.Key,
		RetailerID: s.Retailer.RetailerID,
		Channel:    s.Channel,
		Stage:      s.State.Stage,
		OrderID:    s.State.OrderID(),
		Amount:     &total,
		Error:      s.State.LastError,
	}
}

func SucceededNotification(s *CheckoutSession) *Notification {
	n := newSessionNotification(events.CheckoutSucceededEvent, s)
	if rd := s.State.RequestData(); rd.HasLink() {
		n.Details = map[string]string{"short_url": rd.ShortURL}
	}
	return n
}

func FailedNotification(s *CheckoutSession) *Notification {
	n := newSessionNotification(events.CheckoutFailedEvent, s)
	n.Route = RouteOrders
	return n
}

func AbandonedNotification(s *CheckoutSession) *Notification {
	n := newSessionNotification(events.CheckoutAbandonedEvent, s)
	n.Route = RouteOrders
	return n
}

func RetryRequiredNotification(s *CheckoutSession) *Notification {
	return newSessionNotification(events.CheckoutRetryRequiredEvent, s)
}

func TransferQueuedNotification(s *CheckoutSession) *Notification {
	return newSessionNotification(events.CheckoutTransferQueuedEvent, s)
}

func LinkSentNotification(s *CheckoutSession) *Notification {
	n := newSessionNotification(events.CheckoutLinkSentEvent, s)
	if rd := s.State.RequestData(); rd.HasLink() {
		n.Details = map[string]string{"short_url": rd.ShortURL, "link_id": rd.LinkID}
	}
	return n
}
