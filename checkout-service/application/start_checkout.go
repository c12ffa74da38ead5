package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// StartCheckoutCommand represents the command to start a checkout
type StartCheckoutCommand struct {
	SessionKey  string                 `json:"session_key"`
	Retailer    domain.RetailerProfile `json:"retailer"`
	Cart        domain.CartSnapshot    `json:"cart"`
	Permissions domain.Permissions     `json:"permissions"`
	// Channel overrides the selected channel when set
	Channel domain.Channel `json:"channel,omitempty"`
}

// StartCheckoutResponse is the session after its first run
type StartCheckoutResponse struct {
	Checkout  *CheckoutView `json:"checkout"`
	Selection Selection     `json:"selection"`
}

// StartCheckout use case selects a channel and begins a session on it
type StartCheckout struct {
	selector     *ChannelSelector
	orchestrator *Orchestrator
}

// NewStartCheckout creates a new StartCheckout use case
func NewStartCheckout(selector *ChannelSelector, orchestrator *Orchestrator) *StartCheckout {
	return &StartCheckout{
		selector:     selector,
		orchestrator: orchestrator,
	}
}

// Execute starts the checkout
func (uc *StartCheckout) Execute(ctx context.Context, cmd *StartCheckoutCommand) (*StartCheckoutResponse, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, invalidCommand(err)
	}

	// Select the channel from the permitted balances
	selection := uc.selector.Select(ctx, cmd.Retailer.RetailerID, cmd.Permissions, cmd.Cart.Total)

	channel := selection.Channel
	if cmd.Channel != "" {
		option, _ := selection.Option(cmd.Channel)
		if !option.Permitted {
			return nil, errors.Wrapf(domain.ErrChannelNotPermitted, "channel %s", cmd.Channel)
		}
		if !option.Qualified {
			return nil, insufficientBalance(option)
		}
		channel = cmd.Channel
	}

	if channel == "" {
		// Nothing qualifies: report the shortfall of the preferred balance channel
		for _, option := range selection.Options {
			if option.Permitted && option.Shortfall != nil {
				return nil, insufficientBalance(option)
			}
		}
		return nil, domain.ErrNoChannelPermitted
	}

	// Begin the session on the chosen channel
	sess := domain.NewCheckoutSession(cmd.SessionKey, channel, cmd.Cart, cmd.Retailer)
	checkpoint, err := uc.orchestrator.Begin(ctx, sess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin checkout")
	}

	return &StartCheckoutResponse{
		Checkout:  NewCheckoutView(checkpoint),
		Selection: selection,
	}, nil
}

func insufficientBalance(option ChannelOption) error {
	err := &domain.InsufficientBalanceError{Channel: option.Channel}
	if option.Shortfall != nil {
		err.Shortfall = *option.Shortfall
	}
	return err
}

// validateCommand validates the start checkout command
func (uc *StartCheckout) validateCommand(cmd *StartCheckoutCommand) error {
	if cmd.SessionKey == "" {
		return errors.New("session key is required")
	}

	if err := cmd.Retailer.Validate(); err != nil {
		return err
	}

	cmd.Cart = cmd.Cart.Normalized()
	if err := cmd.Cart.Validate(); err != nil {
		return err
	}

	if cmd.Channel != "" && !cmd.Channel.IsValid() {
		return errors.Errorf("invalid payment channel %q", cmd.Channel)
	}

	if !cmd.Permissions.Any() {
		return domain.ErrNoChannelPermitted
	}

	return nil
}
