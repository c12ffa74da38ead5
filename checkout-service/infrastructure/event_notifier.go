package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/events"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/telemetry"
)

const defaultPublishTimeout = 5 * time.Second

var _ domain.Notifier = (*EventNotifier)(nil)

// EventNotifier publishes checkout notifications as events. Publishing is
// detached from the caller's cancellation and failures are only logged.
type EventNotifier struct {
	publisher events.Publisher
	timeout   time.Duration
}

func NewEventNotifier(publisher events.Publisher, timeout time.Duration) *EventNotifier {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &EventNotifier{publisher: publisher, timeout: timeout}
}

func (n *EventNotifier) Emit(ctx context.Context, notification *domain.Notification) {
	if notification == nil {
		return
	}

	event := events.NewEvent(notification.AggregateID(), notification.Type, notification)
	if notification.SessionKey != "" {
		event.WithMetadata("session_key", notification.SessionKey)
	}
	if notification.RetailerID != "" {
		event.WithMetadata("retailer_id", notification.RetailerID)
	}
	if notification.Channel != "" {
		event.WithMetadata("channel", notification.Channel.String())
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	status := "sent"
	if err := n.publisher.Publish(ctx, event); err != nil {
		status = "failed"
		logging.SW("event_type", notification.Type, "aggregate_id", event.AggregateID, "error", err).
			Errorw("notification_publish_failed")
	}

	telemetry.RecordCounter(ctx, "checkout_notifications_total", "Checkout notifications emitted", 1,
		attribute.String("type", notification.Type),
		attribute.String("status", status),
	)
}
