package domain

import "github.com/pkg/errors"

// Channel is the payment channel a checkout completes through
type Channel string

const (
	ChannelWalletTransfer Channel = "wallet_transfer"
	ChannelCreditTransfer Channel = "credit_transfer"
	ChannelPaymentLink    Channel = "payment_link"
)

// ChannelPriority is the order in which channels are offered by default
var ChannelPriority = []Channel{
	ChannelWalletTransfer,
	ChannelCreditTransfer,
	ChannelPaymentLink,
}

// ParseChannel validates a channel name
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.IsValid() {
		return "", errors.Errorf("invalid payment channel %q", s)
	}
	return c, nil
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelWalletTransfer, ChannelCreditTransfer, ChannelPaymentLink:
		return true
	}
	return false
}

// PaymentMode is the payment mode the order backend knows the channel by
func (c Channel) PaymentMode() string {
	switch c {
	case ChannelWalletTransfer:
		return "seller wallet"
	case ChannelCreditTransfer:
		return "cp wallet"
	case ChannelPaymentLink:
		return "ecod"
	}
	return ""
}

// NeedsBalance reports whether the channel debits a retailer balance
func (c Channel) NeedsBalance() bool {
	return c == ChannelWalletTransfer || c == ChannelCreditTransfer
}

func (c Channel) String() string {
	return string(c)
}

// Permissions lists the channels a retailer may use
type Permissions struct {
	Wallet       bool `json:"wallet"`
	CreditWallet bool `json:"credit_wallet"`
	PaymentLink  bool `json:"payment_link"`
}

// Allows reports whether the channel is permitted
func (p Permissions) Allows(c Channel) bool {
	switch c {
	case ChannelWalletTransfer:
		return p.Wallet
	case ChannelCreditTransfer:
		return p.CreditWallet
	case ChannelPaymentLink:
		return p.PaymentLink
	}
	return false
}

// Any reports whether at least one channel is permitted
func (p Permissions) Any() bool {
	return p.Wallet || p.CreditWallet || p.PaymentLink
}
