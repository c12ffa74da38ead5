package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/checkout-service/mocks"
	"github.com/draftea/checkout-system/shared/models"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

const testSessionKey = "cart-token-1"

func testRetailer() domain.RetailerProfile {
	return domain.RetailerProfile{
		RetailerID:      "ret-42",
		OutletName:      "Sharma Mobiles",
		RegisteredPhone: "9800000001",
		WalletID:        "wal-42",
	}
}

func testCart(total models.Money) domain.CartSnapshot {
	return domain.CartSnapshot{
		Token: testSessionKey,
		Items: []domain.CartItem{
			{SKU: "EXT-WARRANTY-1Y", Name: "Extended warranty", Quantity: 1, Price: total},
		},
		Total:    total,
		Customer: domain.Customer{Name: "Asha", Phone: "9811111111", Email: "asha@example.com"},
	}
}

// harness wires an orchestrator to an in-memory store, a fake clock and mocked
// gateways
type harness struct {
	store     *mocks.MemoryCheckpointStore
	gateway   *mocks.MockOrderGateway
	notifier  *mocks.MockNotifier
	clock     *mocks.FakeClock
	scheduler *PollScheduler
	orch      *Orchestrator

	mu       sync.Mutex
	notified []*domain.Notification
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		store:    mocks.NewMemoryCheckpointStore(),
		gateway:  mocks.NewMockOrderGateway(t),
		notifier: mocks.NewMockNotifier(t),
		clock:    mocks.NewFakeClock(t0),
	}
	h.notifier.EXPECT().Emit(mock.Anything, mock.Anything).Run(func(_ context.Context, n *domain.Notification) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.notified = append(h.notified, n)
	}).Maybe()

	h.scheduler = NewPollScheduler(h.clock, DefaultPollInterval)
	h.orch = NewOrchestrator(context.Background(), h.store, h.notifier, nil, h.scheduler, h.clock, DefaultAbandonAfter,
		NewWalletTransfer(h.gateway),
		NewCreditTransfer(h.gateway),
		NewPaymentLink(h.gateway),
	)
	t.Cleanup(h.orch.Close)
	return h
}

func (h *harness) session(channel domain.Channel, total models.Money) *domain.CheckoutSession {
	return domain.NewCheckoutSession(testSessionKey, channel, testCart(total), testRetailer())
}

// seed stores a checkpoint saved age ago
func (h *harness) seed(channel domain.Channel, state domain.RetryState, age time.Duration) *domain.Checkpoint {
	sess := h.session(channel, models.Rupees(150))
	sess.State = state
	sess.SavedAt = h.clock.Now().Add(-age)
	sess.Version = 4
	cp := sess.Snapshot()
	h.store.Put(cp)
	return cp
}

func (h *harness) notificationTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	types := make([]string, 0, len(h.notified))
	for _, n := range h.notified {
		types = append(types, n.Type)
	}
	return types
}

func (h *harness) lastNotification() *domain.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.notified) == 0 {
		return nil
	}
	return h.notified[len(h.notified)-1]
}

// initiatedWallet is a wallet session whose order ORD-1 exists and whose
// transfer txn-1 was prepared
func initiatedWallet(stage domain.ActionStage) domain.RetryState {
	return domain.NewRetryState().
		WithStage(stage).
		WithOrderInitiated(true).
		WithRequestData(&domain.RequestData{OrderID: "ORD-1", RegisteredPhone: "9800000001"}).
		WithTransfer(&domain.TransferRequest{
			Gateway:       domain.GatewayRazorpay,
			Type:          domain.TransferOrderCreate,
			TransferType:  domain.TransferTypeOrderCreate,
			RetailerID:    "ret-42",
			OrderID:       "ORD-1",
			TransactionID: "txn-1",
			Amount:        models.Rupees(150),
		})
}
