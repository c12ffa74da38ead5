package domain

import (
	"context"
	"time"
)

// CheckpointStore persists the last checkpoint of each session
type CheckpointStore interface {
	Save(ctx context.Context, checkpoint *Checkpoint) error
	// Load returns nil, nil when the session has no checkpoint
	Load(ctx context.Context, sessionKey string) (*Checkpoint, error)
	Clear(ctx context.Context, sessionKey string) error
}

// CheckpointJournal is implemented by stores that keep every checkpoint written.
// History covers the latest run of the key only: a version 1 checkpoint starts
// a new run.
type CheckpointJournal interface {
	History(ctx context.Context, sessionKey string, limit int) ([]*Checkpoint, error)
}

// OrderGateway is the order, payment and history backend
type OrderGateway interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderReceipt, error)
	SubmitTransfer(ctx context.Context, req *TransferRequest) (*TransferReceipt, error)
	PollStatus(ctx context.Context, req *PollRequest) (PaymentRequestStatus, error)
	FinalizeOrder(ctx context.Context, orderID string, req *OrderRequest) error
	CreateLink(ctx context.Context, req *OrderRequest) (*LinkReceipt, error)
	SendLink(ctx context.Context, req *LinkDispatch) error
	// History lookups return nil, nil when nothing matches
	QueryTransactionHistory(ctx context.Context, ref OrderRef) (*TransactionRecord, error)
	QueryOrderHistory(ctx context.Context, ref OrderRef) (*OrderRecord, error)
}

// BalanceProvider reads retailer balances
type BalanceProvider interface {
	GetWalletBalance(ctx context.Context, retailerID string) (*WalletInfo, error)
	GetCreditWalletBalance(ctx context.Context, retailerID string) (*CreditWalletInfo, error)
}

// CreditRequestGateway raises and looks up credit requests
type CreditRequestGateway interface {
	SubmitCreditRequest(ctx context.Context, req *TransferRequest) (*CreditRequestReceipt, error)
	// GetCreditRequest returns nil, nil when the request is unknown
	GetCreditRequest(ctx context.Context, retailerID, requestID string) (*CreditRequestRecord, error)
}

// Notifier delivers session notifications. Delivery failures are not reported
// back to the caller.
type Notifier interface {
	Emit(ctx context.Context, n *Notification)
}

// Clock is the time source for polling, abandonment and checkpoint stamps
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc callback
type Timer interface {
	Stop() bool
}
