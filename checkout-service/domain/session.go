package domain

import (
	"time"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/shared/models"
)

// CartItem is a line of the cart being checked out
type CartItem struct {
	SKU      string       `json:"sku"`
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
}

// Customer is the end customer the order is placed for
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CartSnapshot is the cart as it was when checkout began
type CartSnapshot struct {
	Token    string       `json:"token"`
	Items    []CartItem   `json:"items"`
	Total    models.Money `json:"total"`
	Customer Customer     `json:"customer"`
}

// Normalized returns the cart with amounts that carry no currency set to the
// default currency
func (c CartSnapshot) Normalized() CartSnapshot {
	c.Total = c.Total.Normalize()
	if len(c.Items) > 0 {
		items := make([]CartItem, len(c.Items))
		for i, item := range c.Items {
			item.Price = item.Price.Normalize()
			items[i] = item
		}
		c.Items = items
	}
	return c
}

// Validate expects a normalized cart. Every amount must be in the default
// currency, the one retailer wallets are held in.
func (c CartSnapshot) Validate() error {
	if c.Token == "" {
		return errors.New("cart token is required")
	}
	if len(c.Items) == 0 {
		return errors.New("cart has no items")
	}
	if !c.Total.IsPositive() {
		return errors.New("cart total must be positive")
	}
	if c.Total.Currency != models.DefaultCurrency {
		return errors.Wrapf(models.ErrCurrencyMismatch, "cart total in %q", c.Total.Currency)
	}
	for _, item := range c.Items {
		if item.Price.Currency != models.DefaultCurrency {
			return errors.Wrapf(models.ErrCurrencyMismatch, "item %s priced in %q", item.SKU, item.Price.Currency)
		}
	}
	if c.Customer.Phone == "" {
		return errors.New("customer phone is required")
	}
	return nil
}

// RetailerProfile describes the retailer paying for the order
type RetailerProfile struct {
	RetailerID          string `json:"retailer_id"`
	OutletName          string `json:"outlet_name,omitempty"`
	RegisteredPhone     string `json:"registered_phone"`
	WalletID            string `json:"wallet_id"`
	SuperWalletID       string `json:"super_wallet_id,omitempty"`
	ParentWalletEnabled bool   `json:"parent_wallet_enabled"`
}

func (r RetailerProfile) Validate() error {
	if r.RetailerID == "" {
		return errors.New("retailer id is required")
	}
	if r.RegisteredPhone == "" {
		return errors.New("retailer registered phone is required")
	}
	return nil
}

// SourceWallet is the wallet a wallet transfer debits
func (r RetailerProfile) SourceWallet() string {
	if r.ParentWalletEnabled && r.SuperWalletID != "" {
		return r.SuperWalletID
	}
	return r.WalletID
}

// CheckoutSession is one retailer's attempt to pay for one cart
type CheckoutSession struct {
	Key      string
	Channel  Channel
	Cart     CartSnapshot
	Retailer RetailerProfile
	State    RetryState
	SavedAt  time.Time
	Version  int
}

func NewCheckoutSession(key string, channel Channel, cart CartSnapshot, retailer RetailerProfile) *CheckoutSession {
	return &CheckoutSession{
		Key:      key,
		Channel:  channel,
		Cart:     cart,
		Retailer: retailer,
		State:    NewRetryState(),
	}
}

// OrderRef returns the reference used to look the session's order up
func (s *CheckoutSession) OrderRef() OrderRef {
	return OrderRef{OrderID: s.State.OrderID(), CartToken: s.Cart.Token}
}

// Snapshot returns the checkpoint for the session's current state
func (s *CheckoutSession) Snapshot() *Checkpoint {
	return &Checkpoint{
		SessionKey: s.Key,
		Channel:    s.Channel,
		Cart:       s.Cart,
		Retailer:   s.Retailer,
		RetryState: s.State,
		SavedAt:    s.SavedAt,
		Version:    s.Version,
	}
}

// Checkpoint is the durable record a session is resumed from
type Checkpoint struct {
	SessionKey string          `json:"session_key"`
	Channel    Channel         `json:"selected_channel"`
	Cart       CartSnapshot    `json:"cart"`
	Retailer   RetailerProfile `json:"retailer"`
	RetryState RetryState      `json:"retry_state"`
	SavedAt    time.Time       `json:"saved_at"`
	Version    int             `json:"version"`
}

// Session restores the in-memory session
func (c *Checkpoint) Session() *CheckoutSession {
	return &CheckoutSession{
		Key:      c.SessionKey,
		Channel:  c.Channel,
		Cart:     c.Cart,
		Retailer: c.Retailer,
		State:    c.RetryState,
		SavedAt:  c.SavedAt,
		Version:  c.Version,
	}
}

func (c *Checkpoint) Validate() error {
	if c.SessionKey == "" {
		return errors.New("checkpoint session key is required")
	}
	if !c.Channel.IsValid() {
		return errors.Errorf("checkpoint has invalid channel %q", c.Channel)
	}
	if !c.RetryState.Stage.IsValid() {
		return errors.Errorf("checkpoint has unknown stage %q", c.RetryState.Stage)
	}
	return nil
}
