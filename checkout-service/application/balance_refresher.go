package application

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/events"
	"github.com/draftea/checkout-system/shared/logging"
)

// BalanceRefresher re-reads retailer balances after a checkout or credit
// request settles. Concurrent refreshes of one retailer share a single read.
type BalanceRefresher struct {
	provider domain.BalanceProvider
	notifier domain.Notifier
	group    singleflight.Group
}

func NewBalanceRefresher(provider domain.BalanceProvider, notifier domain.Notifier) *BalanceRefresher {
	return &BalanceRefresher{provider: provider, notifier: notifier}
}

// Refresh reads both balances. A balance that cannot be read is left nil and
// the first error is returned alongside what was read.
func (r *BalanceRefresher) Refresh(ctx context.Context, retailerID string) (domain.Balances, error) {
	v, err, _ := r.group.Do(retailerID, func() (interface{}, error) {
		return r.read(ctx, retailerID)
	})
	balances, _ := v.(domain.Balances)
	return balances, err
}

func (r *BalanceRefresher) read(ctx context.Context, retailerID string) (domain.Balances, error) {
	var (
		balances domain.Balances
		firstErr error
	)

	wallet, err := r.provider.GetWalletBalance(ctx, retailerID)
	if err != nil {
		firstErr = errors.Wrap(err, "failed to read wallet balance")
	} else {
		balances.Wallet = wallet
	}

	credit, err := r.provider.GetCreditWalletBalance(ctx, retailerID)
	if err != nil {
		if firstErr == nil {
			firstErr = errors.Wrap(err, "failed to read credit wallet balance")
		}
	} else {
		balances.Credit = credit
	}

	if firstErr != nil {
		logging.SW("retailer_id", retailerID, "error", firstErr).Warnw("balance_refresh_partial")
	}

	r.notifier.Emit(ctx, balanceNotification(retailerID, balances))
	return balances, firstErr
}

// RefreshAsync refreshes in the background, detached from ctx cancellation
func (r *BalanceRefresher) RefreshAsync(ctx context.Context, retailerID string) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		_, _ = r.Refresh(ctx, retailerID)
	}()
}

func balanceNotification(retailerID string, b domain.Balances) *domain.Notification {
	details := map[string]string{}
	if b.Wallet != nil {
		details["wallet_balance"] = b.Wallet.Balance.String()
	}
	if b.Credit != nil {
		details["credit_balance"] = b.Credit.Balance.String()
		details["credit_limit"] = b.Credit.CreditLimit.String()
	}
	return &domain.Notification{
		Type:       events.BalanceRefreshedEvent,
		RetailerID: retailerID,
		Details:    details,
	}
}
