package application

import (
	"context"

	"github.com/draftea/checkout-system/checkout-service/domain"
)

// PaymentLink creates an order paid by the customer through a payment link
// and delivers the link to them
type PaymentLink struct {
	gateway domain.OrderGateway
}

func NewPaymentLink(gateway domain.OrderGateway) *PaymentLink {
	return &PaymentLink{gateway: gateway}
}

func (p *PaymentLink) Channel() domain.Channel {
	return domain.ChannelPaymentLink
}

func (p *PaymentLink) Prepare(sess *domain.CheckoutSession, effect domain.Effect) domain.RetryState {
	if effect == domain.EffectCreateLink {
		return withOrderData(sess)
	}
	return sess.State
}

func (p *PaymentLink) Perform(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) domain.Outcome {
	switch effect {
	case domain.EffectCreateLink:
		return p.createLink(ctx, sess)
	case domain.EffectSendLink:
		return p.sendLink(ctx, sess)
	case domain.EffectReconcileOrder:
		return reconcileOrder(ctx, p.gateway, sess, true)
	}
	return unsupported(p.Channel(), effect)
}

func (p *PaymentLink) createLink(ctx context.Context, sess *domain.CheckoutSession) domain.Outcome {
	receipt, err := p.gateway.CreateLink(ctx, sess.State.OrderData())
	if err != nil {
		return domain.OutcomeOf(err)
	}
	if receipt == nil || receipt.ShortURL == "" {
		return domain.OutcomeOf(domain.NewRejectedError("create_link", "", "payment link missing from response"))
	}
	return domain.Accepted(&domain.RequestData{
		OrderID:  receipt.OrderID,
		LinkID:   receipt.LinkID,
		ShortURL: receipt.ShortURL,
	})
}

func (p *PaymentLink) sendLink(ctx context.Context, sess *domain.CheckoutSession) domain.Outcome {
	rd := sess.State.RequestData()
	if !rd.HasLink() {
		return domain.OutcomeOf(domain.NewRejectedError("send_link", "", "no payment link to send"))
	}

	err := p.gateway.SendLink(ctx, &domain.LinkDispatch{
		OrderID:       rd.OrderID,
		LinkID:        rd.LinkID,
		ShortURL:      rd.ShortURL,
		CustomerPhone: sess.Cart.Customer.Phone,
		CustomerEmail: sess.Cart.Customer.Email,
	})
	if err != nil {
		return domain.OutcomeOf(err)
	}
	return domain.Accepted(nil)
}
