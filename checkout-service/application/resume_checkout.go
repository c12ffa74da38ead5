package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// ResumeCheckoutCommand represents the command to resume a checkout
type ResumeCheckoutCommand struct {
	SessionKey string `json:"session_key"`
}

// ResumeCheckout use case continues a session from its checkpoint
type ResumeCheckout struct {
	orchestrator *Orchestrator
}

// NewResumeCheckout creates a new ResumeCheckout use case
func NewResumeCheckout(orchestrator *Orchestrator) *ResumeCheckout {
	return &ResumeCheckout{orchestrator: orchestrator}
}

// Execute resumes the checkout
func (uc *ResumeCheckout) Execute(ctx context.Context, cmd *ResumeCheckoutCommand) (*CheckoutView, error) {
	if cmd.SessionKey == "" {
		return nil, invalidCommand(errors.New("session key is required"))
	}

	checkpoint, err := uc.orchestrator.Resume(ctx, cmd.SessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resume checkout")
	}

	return NewCheckoutView(checkpoint), nil
}

// GoBackCommand represents the caller leaving the checkout
type GoBackCommand struct {
	SessionKey string `json:"session_key"`
}

// GoBack use case cancels a session that has not initiated an order
type GoBack struct {
	orchestrator *Orchestrator
}

// NewGoBack creates a new GoBack use case
func NewGoBack(orchestrator *Orchestrator) *GoBack {
	return &GoBack{orchestrator: orchestrator}
}

// Execute returns ErrGoBackDenied when the session may not be left
func (uc *GoBack) Execute(ctx context.Context, cmd *GoBackCommand) error {
	if cmd.SessionKey == "" {
		return invalidCommand(errors.New("session key is required"))
	}
	return uc.orchestrator.GoBack(ctx, cmd.SessionKey)
}

// GetCheckout use case reads the checkpoint of a session
type GetCheckout struct {
	store domain.CheckpointStore
}

// NewGetCheckout creates a new GetCheckout use case
func NewGetCheckout(store domain.CheckpointStore) *GetCheckout {
	return &GetCheckout{store: store}
}

// Execute returns ErrCheckpointNotFound when the session has no checkpoint
func (uc *GetCheckout) Execute(ctx context.Context, sessionKey string) (*CheckoutView, error) {
	if sessionKey == "" {
		return nil, invalidCommand(errors.New("session key is required"))
	}

	checkpoint, err := uc.store.Load(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load checkpoint")
	}
	if checkpoint == nil {
		return nil, domain.ErrCheckpointNotFound
	}

	return NewCheckoutView(checkpoint), nil
}

// History returns the checkpoints written for a session, oldest first. Stores
// that keep only the latest checkpoint return it alone.
func (uc *GetCheckout) History(ctx context.Context, sessionKey string, limit int) ([]*CheckoutView, error) {
	if sessionKey == "" {
		return nil, invalidCommand(errors.New("session key is required"))
	}

	journal, ok := uc.store.(domain.CheckpointJournal)
	if !ok {
		view, err := uc.Execute(ctx, sessionKey)
		if err != nil {
			return nil, err
		}
		return []*CheckoutView{view}, nil
	}

	checkpoints, err := journal.History(ctx, sessionKey, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read checkpoint history")
	}
	if len(checkpoints) == 0 {
		return nil, domain.ErrCheckpointNotFound
	}

	views := make([]*CheckoutView, 0, len(checkpoints))
	for _, cp := range checkpoints {
		views = append(views, NewCheckoutView(cp))
	}
	return views, nil
}
