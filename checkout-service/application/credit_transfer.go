package application

import (
	"context"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// CreditTransfer pays an order from the retailer's credit line. The transfer
// settles synchronously.
type CreditTransfer struct {
	gateway domain.OrderGateway
}

func NewCreditTransfer(gateway domain.OrderGateway) *CreditTransfer {
	return &CreditTransfer{gateway: gateway}
}

func (c *CreditTransfer) Channel() domain.Channel {
	return domain.ChannelCreditTransfer
}

func (c *CreditTransfer) Prepare(sess *domain.CheckoutSession, effect domain.Effect) domain.RetryState {
	switch effect {
	case domain.EffectCreateOrder:
		return withOrderData(sess)
	case domain.EffectSubmitTransfer:
		orderID := sess.State.OrderID()
		return sess.State.WithTransfer(&domain.TransferRequest{
			Gateway:         domain.GatewayOnsitego,
			Type:            domain.TransferOrderCreditPoints,
			TransferType:    domain.TransferTypeOrderCreditPoints,
			RetailerID:      sess.Retailer.RetailerID,
			RegisteredPhone: sess.Retailer.RegisteredPhone,
			OrderID:         orderID,
			CartToken:       sess.Cart.Token,
			TransactionID:   transactionID(sess.State),
			Amount:          sess.Cart.Total,
			Notes:           map[string]string{"order_id": orderID},
		})
	}
	return sess.State
}

func (c *CreditTransfer) Perform(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) domain.Outcome {
	switch effect {
	case domain.EffectCreateOrder:
		return createOrder(ctx, c.gateway, sess)
	case domain.EffectSubmitTransfer:
		return c.submitTransfer(ctx, sess)
	case domain.EffectReconcileOrder:
		return reconcileOrder(ctx, c.gateway, sess, false)
	case domain.EffectReconcileTransaction:
		return reconcileTransaction(ctx, c.gateway, sess)
	}
	return unsupported(c.Channel(), effect)
}

func (c *CreditTransfer) submitTransfer(ctx context.Context, sess *domain.CheckoutSession) domain.Outcome {
	receipt, err := c.gateway.SubmitTransfer(ctx, sess.State.ResumedTransferData)
	if err != nil {
		return domain.OutcomeOf(err)
	}
	if receipt == nil || len(receipt.TransferIDs) == 0 {
		return domain.Outcome{
			Kind: domain.OutcomeIndeterminate,
			Err:  &domain.ErrorPayload{Kind: domain.ErrorKindIndeterminate, Message: "transfer ids missing from response"},
		}
	}
	return domain.Accepted(&domain.RequestData{TransferIDs: receipt.TransferIDs})
}
