package domain

import (
	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/shared/models"
)

// WalletInfo is the retailer's prepaid wallet
type WalletInfo struct {
	WalletID string       `json:"wallet_id"`
	Balance  models.Money `json:"balance"`
}

// CreditWalletInfo is the retailer's credit line. A wallet the retailer does
// not own is funded by its parent and cannot be topped up by the retailer.
type CreditWalletInfo struct {
	Enabled     bool         `json:"enabled"`
	Balance     models.Money `json:"balance"`
	CreditLimit models.Money `json:"credit_limit"`
	IsOwnWallet bool         `json:"is_own_wallet"`
}

// Balances is a snapshot of both retailer balances. A nil entry means the
// balance was not permitted or could not be read.
type Balances struct {
	Wallet *WalletInfo       `json:"wallet,omitempty"`
	Credit *CreditWalletInfo `json:"credit_wallet,omitempty"`
}

// Available returns the balance a channel can debit
func (b Balances) Available(c Channel) (models.Money, bool) {
	switch c {
	case ChannelWalletTransfer:
		if b.Wallet != nil {
			return b.Wallet.Balance, true
		}
	case ChannelCreditTransfer:
		if b.Credit != nil && b.Credit.Enabled {
			return b.Credit.Balance, true
		}
	}
	return models.Money{}, false
}

// CreditRequestStatus is the state of a credit request raised by a retailer
type CreditRequestStatus string

const (
	CreditRequestPending  CreditRequestStatus = "pending"
	CreditRequestSuccess  CreditRequestStatus = "success"
	CreditRequestApproved CreditRequestStatus = "approved"
	CreditRequestRejected CreditRequestStatus = "rejected"
	CreditRequestFailed   CreditRequestStatus = "failed"
)

// CreditRequestAmountTransferred is the submission status of an accepted request
const CreditRequestAmountTransferred = "AMOUNT_TRANSFERRED"

func (s CreditRequestStatus) IsApproved() bool {
	return s == CreditRequestSuccess || s == CreditRequestApproved
}

func (s CreditRequestStatus) IsPending() bool {
	return s == CreditRequestPending
}

// CreditRequestReceipt is the backend's answer to a credit request
type CreditRequestReceipt struct {
	Status     string   `json:"status"`
	RequestIDs []string `json:"request_ids,omitempty"`
	ErrorCode  string   `json:"error_code,omitempty"`
}

// Observable reports whether the request should be observed until it settles
func (r *CreditRequestReceipt) Observable() bool {
	if r == nil || len(r.RequestIDs) == 0 {
		return false
	}
	return r.Status == CreditRequestAmountTransferred || r.ErrorCode == CodeRequestPending
}

// CreditRequestRecord is a credit request looked up by id
type CreditRequestRecord struct {
	ID     string              `json:"id"`
	Status CreditRequestStatus `json:"status"`
}

// MaxCreditRequest is the most a retailer may ask for: the unused part of the
// credit limit, never negative
func MaxCreditRequest(info CreditWalletInfo) models.Money {
	headroom := info.CreditLimit.Amount - info.Balance.Amount
	if headroom < 0 {
		headroom = 0
	}
	return models.Paise(headroom)
}

// ValidateCreditRequest checks a requested credit amount in whole rupees
func ValidateCreditRequest(amount models.Money, info CreditWalletInfo) error {
	if !info.Enabled {
		return errors.Wrap(ErrInvalidCreditAmount, "credit wallet is not enabled")
	}
	if !info.IsOwnWallet {
		return errors.Wrap(ErrCreditRequestNotAllowed, "credit wallet is managed by a parent account")
	}
	if !amount.IsPositive() {
		return errors.Wrap(ErrInvalidCreditAmount, "amount must be positive")
	}
	if amount.Amount%100 != 0 {
		return errors.Wrap(ErrInvalidCreditAmount, "amount must be whole rupees")
	}
	if limit := MaxCreditRequest(info); !limit.Covers(amount) {
		return errors.Wrapf(ErrInvalidCreditAmount, "amount exceeds available credit of %s", limit)
	}
	return nil
}
