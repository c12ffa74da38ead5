package application

import (
	"context"

	"github.com/pkg/errors"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/models"
)

// ChannelExecutor performs the backend calls of one payment channel
type ChannelExecutor interface {
	Channel() domain.Channel
	// Prepare returns the session state with the payload effect needs. Payloads
	// already present are reused so a retried call carries the same identifiers.
	Prepare(sess *domain.CheckoutSession, effect domain.Effect) domain.RetryState
	// Perform issues the call and classifies its result
	Perform(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) domain.Outcome
}

// PaymentStatusSuccess marks an order as paid when it is finalized
const PaymentStatusSuccess = "SUCCESS"

var errUnsupportedEffect = errors.New("effect not supported by channel")

func unsupported(channel domain.Channel, effect domain.Effect) domain.Outcome {
	return domain.Outcome{
		Kind: domain.OutcomeIndeterminate,
		Err: &domain.ErrorPayload{
			Kind:    domain.ErrorKindFatal,
			Message: errors.Wrapf(errUnsupportedEffect, "%s on %s", effect, channel).Error(),
		},
	}
}

// withOrderData makes sure the session carries the order payload
func withOrderData(sess *domain.CheckoutSession) domain.RetryState {
	if sess.State.OrderData() != nil {
		return sess.State
	}
	return sess.State.WithOrderData(&domain.OrderRequest{
		CartToken:       sess.Cart.Token,
		ClientReference: models.GenerateUUID().String(),
		PaymentMode:     sess.Channel.PaymentMode(),
		RetailerID:      sess.Retailer.RetailerID,
		Amount:          sess.Cart.Total,
		Items:           sess.Cart.Items,
		Customer:        sess.Cart.Customer,
	})
}

// transactionID reuses the id of a previous transfer attempt
func transactionID(state domain.RetryState) string {
	if state.ResumedTransferData != nil && state.ResumedTransferData.TransactionID != "" {
		return state.ResumedTransferData.TransactionID
	}
	return models.GenerateUUID().String()
}

func createOrder(ctx context.Context, gateway domain.OrderGateway, sess *domain.CheckoutSession) domain.Outcome {
	receipt, err := gateway.CreateOrder(ctx, sess.State.OrderData())
	if err != nil {
		return domain.OutcomeOf(err)
	}
	if receipt == nil || receipt.OrderID == "" {
		return domain.OutcomeOf(domain.NewRejectedError("create_order", "", "order id missing from response"))
	}
	return domain.Accepted(&domain.RequestData{OrderID: receipt.OrderID})
}

// reconcileOrder looks the session's order up in order history. With
// linkMode an unpaid order carrying a payment link is reported as such.
func reconcileOrder(ctx context.Context, gateway domain.OrderGateway, sess *domain.CheckoutSession, linkMode bool) domain.Outcome {
	record, err := gateway.QueryOrderHistory(ctx, sess.OrderRef())
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, Err: domain.PayloadOf(err)}
	}
	if record == nil {
		return domain.Found(domain.OutcomeNotFound, nil)
	}

	data := &domain.RequestData{OrderID: record.OrderID, LinkID: record.LinkID, ShortURL: record.ShortURL}
	switch {
	case record.Status == domain.OrderPaymentSuccess:
		return domain.Found(domain.OutcomeSettled, data)
	case linkMode && record.Status == domain.OrderPaymentPending && record.ShortURL != "":
		return domain.Found(domain.OutcomeLinkPending, data)
	}
	return domain.Found(domain.OutcomePending, data)
}

// reconcileTransaction looks the session's payment up in transaction history
func reconcileTransaction(ctx context.Context, gateway domain.OrderGateway, sess *domain.CheckoutSession) domain.Outcome {
	record, err := gateway.QueryTransactionHistory(ctx, sess.OrderRef())
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, Err: domain.PayloadOf(err)}
	}
	if record == nil {
		return domain.Found(domain.OutcomeNotFound, nil)
	}

	data := &domain.RequestData{OrderID: record.OrderID, RequestIDs: record.RequestIDs}
	switch record.Status {
	case domain.PaymentRequestSuccess:
		return domain.Found(domain.OutcomeSettled, data)
	case domain.PaymentRequestFailed:
		outcome := domain.Found(domain.OutcomeDeclined, data)
		outcome.Err = &domain.ErrorPayload{Kind: domain.ErrorKindRejected, Message: "payment failed"}
		return outcome
	case domain.PaymentRequestPending:
		return domain.Found(domain.OutcomePending, data)
	}
	return domain.Outcome{
		Kind: domain.OutcomeIndeterminate,
		Err:  &domain.ErrorPayload{Kind: domain.ErrorKindIndeterminate, Message: "unknown payment status " + string(record.Status)},
	}
}
