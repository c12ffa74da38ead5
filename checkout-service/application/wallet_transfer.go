package application

import (
	"context"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

const (
	deductedFromSellerWallet = "seller_wallet"
	deductedFromSuperWallet  = "super_wallet"
)

// WalletTransfer pays an order from the retailer's prepaid wallet. The
// transfer is asynchronous and its payment requests are polled until settled.
type WalletTransfer struct {
	gateway domain.OrderGateway
}

func NewWalletTransfer(gateway domain.OrderGateway) *WalletTransfer {
	return &WalletTransfer{gateway: gateway}
}

func (w *WalletTransfer) Channel() domain.Channel {
	return domain.ChannelWalletTransfer
}

func (w *WalletTransfer) Prepare(sess *domain.CheckoutSession, effect domain.Effect) domain.RetryState {
	switch effect {
	case domain.EffectCreateOrder:
		return withOrderData(sess)
	case domain.EffectSubmitTransfer:
		return sess.State.WithTransfer(w.transfer(sess))
	}
	return sess.State
}

func (w *WalletTransfer) transfer(sess *domain.CheckoutSession) *domain.TransferRequest {
	deductedFrom := deductedFromSellerWallet
	if sess.Retailer.ParentWalletEnabled && sess.Retailer.SuperWalletID != "" {
		deductedFrom = deductedFromSuperWallet
	}
	orderID := sess.State.OrderID()

	return &domain.TransferRequest{
		Gateway:         domain.GatewayRazorpay,
		Type:            domain.TransferOrderCreate,
		TransferType:    domain.TransferTypeOrderCreate,
		RetailerID:      sess.Retailer.RetailerID,
		FromWallet:      sess.Retailer.SourceWallet(),
		RegisteredPhone: sess.Retailer.RegisteredPhone,
		OrderID:         orderID,
		CartToken:       sess.Cart.Token,
		TransactionID:   transactionID(sess.State),
		Amount:          sess.Cart.Total,
		Notes: map[string]string{
			"deducted_from": deductedFrom,
			"order_id":      orderID,
		},
	}
}

func (w *WalletTransfer) Perform(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) domain.Outcome {
	switch effect {
	case domain.EffectCreateOrder:
		return createOrder(ctx, w.gateway, sess)
	case domain.EffectSubmitTransfer:
		return w.submitTransfer(ctx, sess)
	case domain.EffectPollStatus:
		return w.pollStatus(ctx, sess)
	case domain.EffectFinalizeOrder:
		return w.finalizeOrder(ctx, sess)
	case domain.EffectReconcileOrder:
		return reconcileOrder(ctx, w.gateway, sess, false)
	case domain.EffectReconcileTransaction:
		return reconcileTransaction(ctx, w.gateway, sess)
	}
	return unsupported(w.Channel(), effect)
}

func (w *WalletTransfer) submitTransfer(ctx context.Context, sess *domain.CheckoutSession) domain.Outcome {
	receipt, err := w.gateway.SubmitTransfer(ctx, sess.State.ResumedTransferData)
	if err != nil {
		return domain.OutcomeOf(err)
	}
	if receipt == nil || len(receipt.RequestIDs) == 0 {
		// accepted without payment request ids, only history can tell what happened
		return domain.Outcome{
			Kind: domain.OutcomeIndeterminate,
			Err:  &domain.ErrorPayload{Kind: domain.ErrorKindIndeterminate, Message: "payment request ids missing from response"},
		}
	}

	phone := receipt.RegisteredPhone
	if phone == "" {
		phone = sess.Retailer.RegisteredPhone
	}
	return domain.Accepted(&domain.RequestData{RequestIDs: receipt.RequestIDs, RegisteredPhone: phone})
}

func (w *WalletTransfer) pollStatus(ctx context.Context, sess *domain.CheckoutSession) domain.Outcome {
	phone := sess.Retailer.RegisteredPhone
	if rd := sess.State.RequestData(); rd != nil && rd.RegisteredPhone != "" {
		phone = rd.RegisteredPhone
	}

	status, err := w.gateway.PollStatus(ctx, &domain.PollRequest{
		RequestIDs:      sess.State.RequestIDs(),
		RegisteredPhone: phone,
		OrderID:         sess.State.OrderID(),
	})
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, Err: domain.PayloadOf(err)}
	}

	switch status {
	case domain.PaymentRequestPending:
		return domain.Found(domain.OutcomePending, nil)
	case domain.PaymentRequestSuccess:
		return domain.Found(domain.OutcomeSettled, nil)
	case domain.PaymentRequestFailed:
		outcome := domain.Found(domain.OutcomeDeclined, nil)
		outcome.Err = &domain.ErrorPayload{Kind: domain.ErrorKindRejected, Message: "wallet payment request failed"}
		return outcome
	}
	return domain.Outcome{
		Kind: domain.OutcomeIndeterminate,
		Err:  &domain.ErrorPayload{Kind: domain.ErrorKindIndeterminate, Message: "unknown payment request status " + string(status)},
	}
}

func (w *WalletTransfer) finalizeOrder(ctx context.Context, sess *domain.CheckoutSession) domain.Outcome {
	data := sess.State.OrderData().Clone()
	if data == nil {
		data = withOrderData(sess).OrderData()
	}
	data.PaymentStatus = PaymentStatusSuccess

	if err := w.gateway.FinalizeOrder(ctx, sess.State.OrderID(), data); err != nil {
		return domain.OutcomeOf(err)
	}
	return domain.Accepted(nil)
}
