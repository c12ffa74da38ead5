package application

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/events"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/models"
)

// DefaultCreditObserveInterval is the delay between two credit request lookups
const DefaultCreditObserveInterval = 8 * time.Second

// RaiseCreditRequestCommand represents a retailer asking for more credit
type RaiseCreditRequestCommand struct {
	Retailer domain.RetailerProfile `json:"retailer"`
	Amount   models.Money           `json:"amount"`
}

// CreditRequestResult is the outcome of raising a credit request
type CreditRequestResult struct {
	RequestID string `json:"request_id,omitempty"`
	Status    string `json:"status"`
	Observing bool   `json:"observing"`
}

// CreditRequests raises credit requests and observes them until they settle.
// A retailer has at most one request raised at a time.
type CreditRequests struct {
	gateway   domain.CreditRequestGateway
	balances  domain.BalanceProvider
	refresher *BalanceRefresher
	notifier  domain.Notifier
	clock     domain.Clock
	interval  time.Duration

	mu     sync.Mutex
	raised map[string]string
	timers map[string]domain.Timer

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCreditRequests creates the credit request use case. ctx is the parent of
// the context observations run with.
func NewCreditRequests(
	ctx context.Context,
	gateway domain.CreditRequestGateway,
	balances domain.BalanceProvider,
	refresher *BalanceRefresher,
	notifier domain.Notifier,
	clock domain.Clock,
	interval time.Duration,
) *CreditRequests {
	if interval <= 0 {
		interval = DefaultCreditObserveInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	return &CreditRequests{
		gateway:   gateway,
		balances:  balances,
		refresher: refresher,
		notifier:  notifier,
		clock:     clock,
		interval:  interval,
		raised:    make(map[string]string),
		timers:    make(map[string]domain.Timer),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Raise validates the amount against the credit headroom and submits the
// request. An accepted or already pending request is observed until it settles.
func (uc *CreditRequests) Raise(ctx context.Context, cmd *RaiseCreditRequestCommand) (*CreditRequestResult, error) {
	if err := cmd.Retailer.Validate(); err != nil {
		return nil, invalidCommand(err)
	}
	retailerID := cmd.Retailer.RetailerID

	if requestID, ok := uc.Raised(retailerID); ok {
		return &CreditRequestResult{RequestID: requestID, Status: string(domain.CreditRequestPending), Observing: true}, nil
	}

	info, err := uc.balances.GetCreditWalletBalance(ctx, retailerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read credit wallet balance")
	}
	if err := domain.ValidateCreditRequest(cmd.Amount, *info); err != nil {
		return nil, err
	}

	receipt, err := uc.gateway.SubmitCreditRequest(ctx, &domain.TransferRequest{
		Gateway:         domain.GatewayOnsitego,
		Type:            domain.TransferCreditPointRequest,
		TransferType:    domain.TransferTypeCreditPointRequest,
		RetailerID:      retailerID,
		RegisteredPhone: cmd.Retailer.RegisteredPhone,
		TransactionID:   models.GenerateUUID().String(),
		Amount:          cmd.Amount,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit credit request")
	}

	if !receipt.Observable() {
		logging.SW("retailer_id", retailerID, "status", receipt.Status, "error_code", receipt.ErrorCode).
			Warnw("credit_request_not_accepted")
		uc.refresh(ctx, retailerID)
		return &CreditRequestResult{Status: receipt.Status}, nil
	}

	requestID := receipt.RequestIDs[0]
	uc.notifier.Emit(ctx, &domain.Notification{
		Type:       events.CreditRequestRaisedEvent,
		RetailerID: retailerID,
		Amount:     &cmd.Amount,
		Details:    map[string]string{"request_id": requestID},
	})
	uc.Observe(retailerID, requestID)

	return &CreditRequestResult{RequestID: requestID, Status: receipt.Status, Observing: true}, nil
}

// Observe marks the request as raised and checks it on the clock right away,
// then every interval until it settles. The caller never waits on a lookup.
func (uc *CreditRequests) Observe(retailerID, requestID string) {
	uc.mu.Lock()
	if t, ok := uc.timers[retailerID]; ok {
		t.Stop()
		delete(uc.timers, retailerID)
	}
	uc.raised[retailerID] = requestID
	uc.mu.Unlock()

	uc.schedule(retailerID, requestID, 0)
}

// Raised returns the request being observed for the retailer
func (uc *CreditRequests) Raised(retailerID string) (string, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	id, ok := uc.raised[retailerID]
	return id, ok
}

// Stop cancels every observation
func (uc *CreditRequests) Stop() {
	uc.cancel()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for id, t := range uc.timers {
		t.Stop()
		delete(uc.timers, id)
	}
}

func (uc *CreditRequests) check(retailerID, requestID string) {
	ctx := uc.ctx
	if ctx.Err() != nil {
		return
	}
	if current, ok := uc.Raised(retailerID); !ok || current != requestID {
		return
	}

	record, err := uc.gateway.GetCreditRequest(ctx, retailerID, requestID)
	log := logging.SW("retailer_id", retailerID, "request_id", requestID)

	switch {
	case err != nil:
		log.With("error", err).Warnw("credit_request_lookup_failed")
		uc.settle(ctx, retailerID, requestID, events.CreditRequestRejectedEvent, err.Error())
	case record == nil:
		log.Warnw("credit_request_not_found")
		uc.settle(ctx, retailerID, requestID, events.CreditRequestRejectedEvent, "not found")
	case record.Status.IsApproved():
		log.Infow("credit_request_approved")
		uc.settle(ctx, retailerID, requestID, events.CreditRequestSettledEvent, string(record.Status))
	case record.Status.IsPending():
		uc.schedule(retailerID, requestID, uc.interval)
	default:
		log.With("status", record.Status).Infow("credit_request_rejected")
		uc.settle(ctx, retailerID, requestID, events.CreditRequestRejectedEvent, string(record.Status))
	}
}

func (uc *CreditRequests) schedule(retailerID, requestID string, delay time.Duration) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.raised[retailerID] != requestID {
		return
	}
	uc.timers[retailerID] = uc.clock.AfterFunc(delay, func() {
		uc.mu.Lock()
		delete(uc.timers, retailerID)
		uc.mu.Unlock()
		uc.check(retailerID, requestID)
	})
}

// settle drops the raised flag, notifies and refreshes balances
func (uc *CreditRequests) settle(ctx context.Context, retailerID, requestID, eventType, status string) {
	uc.mu.Lock()
	if uc.raised[retailerID] == requestID {
		delete(uc.raised, retailerID)
	}
	uc.mu.Unlock()

	uc.notifier.Emit(ctx, &domain.Notification{
		Type:       eventType,
		RetailerID: retailerID,
		Details:    map[string]string{"request_id": requestID, "status": status},
	})
	uc.refresh(ctx, retailerID)
}

func (uc *CreditRequests) refresh(ctx context.Context, retailerID string) {
	if uc.refresher == nil {
		return
	}
	if _, err := uc.refresher.Refresh(ctx, retailerID); err != nil {
		logging.SW("retailer_id", retailerID, "error", err).Warnw("balance_refresh_failed")
	}
}
