package application

import (
	"context"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/models"
)

// ChannelOption is one channel as offered to the retailer
type ChannelOption struct {
	Channel   domain.Channel `json:"channel"`
	Permitted bool           `json:"permitted"`
	Qualified bool           `json:"qualified"`
	Available *models.Money  `json:"available,omitempty"`
	Shortfall *models.Money  `json:"shortfall,omitempty"`

	// TopUpAllowed is set on the credit channel when the retailer may raise a
	// credit request for its own wallet
	TopUpAllowed bool `json:"top_up_allowed,omitempty"`
}

// Selection is the outcome of channel selection
type Selection struct {
	Channel  domain.Channel  `json:"channel,omitempty"`
	Options  []ChannelOption `json:"options"`
	Balances domain.Balances `json:"balances"`
}

// Option returns the option for channel
func (s Selection) Option(channel domain.Channel) (ChannelOption, bool) {
	for _, o := range s.Options {
		if o.Channel == channel {
			return o, true
		}
	}
	return ChannelOption{}, false
}

// SelectChannel picks the first permitted channel, in priority order, that can
// pay total. A balance channel qualifies when its balance covers the total; a
// payment link always qualifies. The shortfall of a balance channel is rounded
// up to a whole rupee.
func SelectChannel(perms domain.Permissions, balances domain.Balances, total models.Money) Selection {
	selection := Selection{Balances: balances}
	total = total.Normalize()

	for _, channel := range domain.ChannelPriority {
		option := ChannelOption{Channel: channel, Permitted: perms.Allows(channel)}

		if channel.NeedsBalance() {
			available, known := balances.Available(channel)
			if known {
				a := available.Normalize()
				option.Available = &a
			}
			if channel == domain.ChannelCreditTransfer && balances.Credit != nil {
				option.TopUpAllowed = balances.Credit.Enabled && balances.Credit.IsOwnWallet
			}
			if option.Permitted {
				option.Qualified, option.Shortfall = qualify(channel, total, option.Available)
			}
		} else {
			option.Qualified = option.Permitted
		}

		if option.Qualified && selection.Channel == "" {
			selection.Channel = channel
		}
		selection.Options = append(selection.Options, option)
	}

	return selection
}

// qualify reports whether available pays total, and otherwise the missing
// amount. A balance in another currency counts for nothing.
func qualify(channel domain.Channel, total models.Money, available *models.Money) (bool, *models.Money) {
	missing := total
	if available != nil {
		diff, err := total.Subtract(*available)
		switch {
		case err != nil:
			logging.SW("channel", channel, "total", total, "available", *available, "error", err).
				Warnw("channel_balance_currency_mismatch")
		case diff.Amount <= 0:
			return true, nil
		default:
			missing = diff
		}
	}
	shortfall := models.Rupees(missing.WholeRupees())
	return false, &shortfall
}

// ChannelSelector reads the balances of the permitted channels and selects one
type ChannelSelector struct {
	balances domain.BalanceProvider
}

func NewChannelSelector(balances domain.BalanceProvider) *ChannelSelector {
	return &ChannelSelector{balances: balances}
}

// Balances reads only the balances the retailer is permitted to use. A balance
// that cannot be read leaves its channel unqualified.
func (s *ChannelSelector) Balances(ctx context.Context, retailerID string, perms domain.Permissions) domain.Balances {
	var balances domain.Balances

	if perms.Wallet {
		wallet, err := s.balances.GetWalletBalance(ctx, retailerID)
		if err != nil {
			logging.SW("retailer_id", retailerID, "error", err).Warnw("wallet_balance_unavailable")
		} else {
			balances.Wallet = wallet
		}
	}

	if perms.CreditWallet {
		credit, err := s.balances.GetCreditWalletBalance(ctx, retailerID)
		if err != nil {
			logging.SW("retailer_id", retailerID, "error", err).Warnw("credit_balance_unavailable")
		} else {
			balances.Credit = credit
		}
	}

	return balances
}

func (s *ChannelSelector) Select(ctx context.Context, retailerID string, perms domain.Permissions, total models.Money) Selection {
	return SelectChannel(perms, s.Balances(ctx, retailerID, perms), total)
}
