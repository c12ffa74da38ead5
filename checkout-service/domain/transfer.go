package domain

import (
	"github.com/draftea/checkout-system/shared/models"
)

// TransferType identifies the kind of balance transfer submitted to the gateway
type TransferType string

const (
	TransferTypeOrderCreate        TransferType = "OCT"
	TransferTypeOrderCreditPoints  TransferType = "OCPT"
	TransferTypeCreditPointRequest TransferType = "CPR"
)

const (
	GatewayRazorpay = "razorpay"
	GatewayOnsitego = "onsitego"

	TransferOrderCreate        = "order_create_transfer"
	TransferOrderCreditPoints  = "order_credit_point_transfer"
	TransferCreditPointRequest = "credit_point_request"
)

// TransferRequest is the payload of a wallet, credit or credit request transfer.
// TransactionID is generated once and kept so a resubmission is recognisable.
type TransferRequest struct {
	Gateway         string            `json:"gateway"`
	Type            string            `json:"type"`
	TransferType    TransferType      `json:"transfer_type"`
	RetailerID      string            `json:"retailer_id"`
	FromWallet      string            `json:"from_wallet,omitempty"`
	RegisteredPhone string            `json:"registered_phone,omitempty"`
	OrderID         string            `json:"order_id,omitempty"`
	CartToken       string            `json:"token_id,omitempty"`
	TransactionID   string            `json:"txnid"`
	Amount          models.Money      `json:"transfer_amount"`
	Notes           map[string]string `json:"notes,omitempty"`
}

func (t *TransferRequest) Clone() *TransferRequest {
	if t == nil {
		return nil
	}
	c := *t
	if t.Notes != nil {
		c.Notes = make(map[string]string, len(t.Notes))
		for k, v := range t.Notes {
			c.Notes[k] = v
		}
	}
	return &c
}

// OrderRequest is the order the backend is asked to create or finalise
type OrderRequest struct {
	CartToken       string       `json:"token_id"`
	ClientReference string       `json:"client_reference"`
	PaymentMode     string       `json:"payment_mode"`
	PaymentStatus   string       `json:"payment_status,omitempty"`
	RetailerID      string       `json:"retailer_id"`
	Amount          models.Money `json:"amount"`
	Items           []CartItem   `json:"items"`
	Customer        Customer     `json:"customer"`
}

func (o *OrderRequest) Clone() *OrderRequest {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]CartItem(nil), o.Items...)
	return &c
}

// RequestData collects the identifiers the backend handed out during a checkout
type RequestData struct {
	OrderID         string   `json:"order_id,omitempty"`
	RegisteredPhone string   `json:"registered_phone,omitempty"`
	RequestIDs      []string `json:"retailer_payment_ids,omitempty"`
	TransferIDs     []string `json:"retailer_payment_transfer_ids,omitempty"`
	LinkID          string   `json:"link_id,omitempty"`
	ShortURL        string   `json:"short_url,omitempty"`
}

func (r *RequestData) Clone() *RequestData {
	if r == nil {
		return nil
	}
	c := *r
	c.RequestIDs = append([]string(nil), r.RequestIDs...)
	c.TransferIDs = append([]string(nil), r.TransferIDs...)
	return &c
}

// Merge overlays the non-empty fields of other
func (r *RequestData) Merge(other *RequestData) *RequestData {
	merged := r.Clone()
	if merged == nil {
		merged = &RequestData{}
	}
	if other == nil {
		return merged
	}
	if other.OrderID != "" {
		merged.OrderID = other.OrderID
	}
	if other.RegisteredPhone != "" {
		merged.RegisteredPhone = other.RegisteredPhone
	}
	if len(other.RequestIDs) > 0 {
		merged.RequestIDs = append([]string(nil), other.RequestIDs...)
	}
	if len(other.TransferIDs) > 0 {
		merged.TransferIDs = append([]string(nil), other.TransferIDs...)
	}
	if other.LinkID != "" {
		merged.LinkID = other.LinkID
	}
	if other.ShortURL != "" {
		merged.ShortURL = other.ShortURL
	}
	return merged
}

// HasLink reports whether a payment link was handed out
func (r *RequestData) HasLink() bool {
	return r != nil && r.ShortURL != ""
}

// PollRequest asks for the status of wallet payment requests
type PollRequest struct {
	RequestIDs      []string `json:"retailer_payment_ids"`
	RegisteredPhone string   `json:"registered_phone"`
	OrderID         string   `json:"order_id,omitempty"`
}

// LinkDispatch asks the backend to deliver a payment link to the customer
type LinkDispatch struct {
	OrderID       string `json:"order_id"`
	LinkID        string `json:"link_id"`
	ShortURL      string `json:"short_url"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// OrderReceipt is returned by order creation
type OrderReceipt struct {
	OrderID string `json:"order_id"`
}

// TransferReceipt is returned by a transfer submission
type TransferReceipt struct {
	RegisteredPhone string   `json:"registered_phone,omitempty"`
	RequestIDs      []string `json:"retailer_payment_ids,omitempty"`
	TransferIDs     []string `json:"retailer_payment_transfer_ids,omitempty"`
}

// LinkReceipt is returned by payment link creation
type LinkReceipt struct {
	OrderID  string `json:"order_id"`
	LinkID   string `json:"link_id"`
	ShortURL string `json:"short_url"`
}

// PaymentRequestStatus is the status of a wallet payment request
type PaymentRequestStatus string

const (
	PaymentRequestPending PaymentRequestStatus = "pending"
	PaymentRequestSuccess PaymentRequestStatus = "success"
	PaymentRequestFailed  PaymentRequestStatus = "failed"
)

// OrderRef identifies an order for history lookups. CartToken is used when
// the order id was never received.
type OrderRef struct {
	OrderID   string `json:"order_id,omitempty"`
	CartToken string `json:"token_id,omitempty"`
}

// Key returns the identifier used for the lookup
func (r OrderRef) Key() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	return r.CartToken
}

// TransactionRecord is a payment found in transaction history
type TransactionRecord struct {
	OrderID    string               `json:"order_id"`
	Status     PaymentRequestStatus `json:"status"`
	RequestIDs []string             `json:"retailer_payment_ids,omitempty"`
	Amount     models.Money         `json:"amount"`
}

// OrderStatus is the payment status of an order in order history
type OrderStatus string

const (
	OrderPaymentSuccess OrderStatus = "PAYMENT_SUCCESS"
	OrderPaymentPending OrderStatus = "PAYMENT_PENDING"
	OrderPaymentFailed  OrderStatus = "PAYMENT_FAILED"
)

// OrderRecord is an order found in order history
type OrderRecord struct {
	OrderID  string      `json:"order_id"`
	Status   OrderStatus `json:"status"`
	LinkID   string      `json:"link_id,omitempty"`
	ShortURL string      `json:"short_url,omitempty"`
}
