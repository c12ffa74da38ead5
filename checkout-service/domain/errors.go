package domain

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/shared/models"
)

var (
	ErrCheckpointExists      = errors.New("checkout already in progress for session")
	ErrCheckpointNotFound    = errors.New("checkpoint not found")
	ErrCheckpointConflict    = errors.New("checkpoint was overwritten by a newer version")
	ErrGoBackDenied          = errors.New("cannot go back once the order is initiated")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrNoChannelPermitted    = errors.New("no payment channel permitted")
	ErrChannelNotPermitted   = errors.New("payment channel not permitted")
	ErrSessionBusy           = errors.New("session has a call in flight")
	ErrOrderAlreadyInitiated = errors.New("order already initiated for session")
	ErrDuplicateSubmission   = errors.New("submission already issued in this run")
	ErrInvalidCreditAmount   = errors.New("invalid credit request amount")

	ErrCreditRequestNotAllowed = errors.New("credit request not allowed for this wallet")
)

const (
	// CodePendingTransactionQueued is returned when the wallet already has a
	// transfer queued for the retailer
	CodePendingTransactionQueued = "WAT_PENDING_TXN_IN_QUEUE"
	// CodeRequestPending is returned when a credit request is already open
	CodeRequestPending = "Request pending"
)

// ErrorKind classifies a failed gateway call
type ErrorKind string

const (
	// ErrorKindTransient means the request never reached the backend
	ErrorKindTransient ErrorKind = "transient"
	// ErrorKindRejected means the backend answered with a definite failure
	ErrorKindRejected ErrorKind = "rejected"
	// ErrorKindIndeterminate means the request may or may not have landed
	ErrorKindIndeterminate ErrorKind = "indeterminate"
	ErrorKindFatal         ErrorKind = "fatal"
)

// GatewayError is returned by every backend call
type GatewayError struct {
	Op         string
	Kind       ErrorKind
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s): %s", e.Op, e.Kind, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func NewRejectedError(op, code, message string) *GatewayError {
	return &GatewayError{Op: op, Kind: ErrorKindRejected, Code: code, Message: message}
}

func NewTransientError(op string, err error) *GatewayError {
	return &GatewayError{Op: op, Kind: ErrorKindTransient, Err: err}
}

func NewIndeterminateError(op string, err error) *GatewayError {
	return &GatewayError{Op: op, Kind: ErrorKindIndeterminate, Err: err}
}

// KindOf classifies err. Errors that carry no classification are treated as
// indeterminate since the call may have landed.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return ErrorKindIndeterminate
}

// CodeOf returns the backend error code carried by err
func CodeOf(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Code
	}
	return ""
}

// ErrorPayload is the opaque error forwarded to notifications and checkpoints
type ErrorPayload struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
}

func PayloadOf(err error) *ErrorPayload {
	if err == nil {
		return nil
	}
	return &ErrorPayload{
		Kind:    KindOf(err),
		Code:    CodeOf(err),
		Message: err.Error(),
	}
}

// InsufficientBalanceError reports how much is missing to pay with a channel
type InsufficientBalanceError struct {
	Channel   Channel
	Shortfall models.Money
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: %s short on %s", ErrInsufficientBalance, e.Shortfall, e.Channel)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
