package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/models"
	"github.com/draftea/checkout-system/shared/telemetry"
)

const (
	DefaultGatewayTimeout      = 10 * time.Second
	defaultBreakerFailures     = 5
	defaultBreakerOpenDuration = 30 * time.Second
	maxErrorBody               = 4 << 10
)

// GatewayOptions configures HTTPGatewayClient
type GatewayOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// BreakerFailures consecutive transport or 5xx failures open the breaker
	BreakerFailures     uint32
	BreakerOpenDuration time.Duration
	// Transport is wrapped with otelhttp; nil means http.DefaultTransport
	Transport http.RoundTripper
}

// HTTPGatewayClient talks to the order, wallet and distributor backends. It
// implements domain.OrderGateway, domain.BalanceProvider and
// domain.CreditRequestGateway.
type HTTPGatewayClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*gatewayResponse]
}

type gatewayResponse struct {
	status int
	body   []byte
}

func NewHTTPGatewayClient(opts GatewayOptions) (*HTTPGatewayClient, error) {
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, errors.Wrap(err, "invalid gateway base url")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultGatewayTimeout
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = defaultBreakerFailures
	}
	if opts.BreakerOpenDuration <= 0 {
		opts.BreakerOpenDuration = defaultBreakerOpenDuration
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	failures := opts.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[*gatewayResponse](gobreaker.Settings{
		Name:    "checkout-gateway",
		Timeout: opts.BreakerOpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.SW("breaker", name, "from", from.String(), "to", to.String()).Warnw("gateway_breaker_state_changed")
		},
	})

	return &HTTPGatewayClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		breaker: breaker,
	}, nil
}

// Wire payloads. Amounts travel as decimal rupees.

type orderPayload struct {
	TokenID         string          `json:"token_id"`
	ClientReference string          `json:"client_reference"`
	PaymentMode     string          `json:"payment_mode"`
	PaymentStatus   string          `json:"payment_status,omitempty"`
	RetailerID      string          `json:"retailer_id"`
	Amount          decimal.Decimal `json:"amount"`
	Items           []itemPayload   `json:"items"`
	Customer        domain.Customer `json:"customer"`
}

type itemPayload struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type transferPayload struct {
	Gateway         string            `json:"gateway"`
	Type            string            `json:"type"`
	TransferType    string            `json:"transfer_type"`
	RetailerID      string            `json:"retailer_id"`
	FromWallet      string            `json:"from_wallet,omitempty"`
	RegisteredPhone string            `json:"registered_phone,omitempty"`
	OrderID         string            `json:"order_id,omitempty"`
	TokenID         string            `json:"token_id,omitempty"`
	TxnID           string            `json:"txnid"`
	TransferAmount  decimal.Decimal   `json:"transfer_amount"`
	Notes           map[string]string `json:"notes,omitempty"`
}

type errorPayload struct {
	ErrorCode string `json:"error_code"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type statusPayload struct {
	Status string `json:"status"`
}

type transactionPayload struct {
	OrderID    string          `json:"order_id"`
	Status     string          `json:"status"`
	RequestIDs []string        `json:"retailer_payment_ids"`
	Amount     decimal.Decimal `json:"amount"`
}

type walletPayload struct {
	WalletID string          `json:"wallet_id"`
	Balance  decimal.Decimal `json:"balance"`
}

type creditWalletPayload struct {
	Enabled     bool            `json:"enabled"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	IsOwnWallet bool            `json:"is_own_wallet"`
}

func toOrderPayload(req *domain.OrderRequest) *orderPayload {
	items := make([]itemPayload, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, itemPayload{SKU: it.SKU, Name: it.Name, Quantity: it.Quantity, Price: it.Price.Decimal()})
	}
	return &orderPayload{
		TokenID:         req.CartToken,
		ClientReference: req.ClientReference,
		PaymentMode:     req.PaymentMode,
		PaymentStatus:   req.PaymentStatus,
		RetailerID:      req.RetailerID,
		Amount:          req.Amount.Decimal(),
		Items:           items,
		Customer:        req.Customer,
	}
}

func toTransferPayload(req *domain.TransferRequest) *transferPayload {
	return &transferPayload{
		Gateway:         req.Gateway,
		Type:            req.Type,
		TransferType:    string(req.TransferType),
		RetailerID:      req.RetailerID,
		FromWallet:      req.FromWallet,
		RegisteredPhone: req.RegisteredPhone,
		OrderID:         req.OrderID,
		TokenID:         req.CartToken,
		TxnID:           req.TransactionID,
		TransferAmount:  req.Amount.Decimal(),
		Notes:           req.Notes,
	}
}

// CreateOrder places the order for the cart
func (c *HTTPGatewayClient) CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderReceipt, error) {
	var receipt domain.OrderReceipt
	if err := c.do(ctx, "create_order", http.MethodPost, "/v3/orders/checkout", toOrderPayload(req), &receipt); err != nil {
		return nil, err
	}
	if receipt.OrderID == "" {
		return nil, domain.NewIndeterminateError("create_order", errors.New("response carried no order id"))
	}
	return &receipt, nil
}

// SubmitTransfer submits a wallet or credit transfer for an order
func (c *HTTPGatewayClient) SubmitTransfer(ctx context.Context, req *domain.TransferRequest) (*domain.TransferReceipt, error) {
	var receipt domain.TransferReceipt
	if err := c.do(ctx, "submit_transfer", http.MethodPost, "/wallet/payment-requests", toTransferPayload(req), &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// PollStatus reads the status of wallet payment requests
func (c *HTTPGatewayClient) PollStatus(ctx context.Context, req *domain.PollRequest) (domain.PaymentRequestStatus, error) {
	var status statusPayload
	if err := c.do(ctx, "poll_status", http.MethodPost, "/wallet/payment-requests/status", req, &status); err != nil {
		return "", err
	}
	return domain.PaymentRequestStatus(strings.ToLower(status.Status)), nil
}

// FinalizeOrder marks a paid order as successful
func (c *HTTPGatewayClient) FinalizeOrder(ctx context.Context, orderID string, req *domain.OrderRequest) error {
	path := fmt.Sprintf("/v3/orders/%s/success", url.PathEscape(orderID))
	return c.do(ctx, "finalize_order", http.MethodPost, path, toOrderPayload(req), nil)
}

// CreateLink creates the order together with its payment link
func (c *HTTPGatewayClient) CreateLink(ctx context.Context, req *domain.OrderRequest) (*domain.LinkReceipt, error) {
	var receipt domain.LinkReceipt
	if err := c.do(ctx, "create_link", http.MethodPost, "/v3/orders/link", toOrderPayload(req), &receipt); err != nil {
		return nil, err
	}
	if receipt.ShortURL == "" {
		return nil, domain.NewIndeterminateError("create_link", errors.New("response carried no short url"))
	}
	return &receipt, nil
}

// SendLink delivers the payment link to the customer
func (c *HTTPGatewayClient) SendLink(ctx context.Context, req *domain.LinkDispatch) error {
	path := fmt.Sprintf("/v3/orders/%s/payment-link/send", url.PathEscape(req.OrderID))
	return c.do(ctx, "send_link", http.MethodPost, path, req, nil)
}

// QueryTransactionHistory returns nil, nil when no payment matches the order
func (c *HTTPGatewayClient) QueryTransactionHistory(ctx context.Context, ref domain.OrderRef) (*domain.TransactionRecord, error) {
	var tx transactionPayload
	found, err := c.lookup(ctx, "transaction_history", "/orders/transactions?"+refQuery(ref), &tx)
	if err != nil || !found {
		return nil, err
	}
	return &domain.TransactionRecord{
		OrderID:    tx.OrderID,
		Status:     domain.PaymentRequestStatus(strings.ToLower(tx.Status)),
		RequestIDs: tx.RequestIDs,
		Amount:     models.FromDecimalRupees(tx.Amount),
	}, nil
}

// QueryOrderHistory returns nil, nil when the order is unknown
func (c *HTTPGatewayClient) QueryOrderHistory(ctx context.Context, ref domain.OrderRef) (*domain.OrderRecord, error) {
	var record domain.OrderRecord
	found, err := c.lookup(ctx, "order_history", "/orders/history?"+refQuery(ref), &record)
	if err != nil || !found {
		return nil, err
	}
	record.Status = domain.OrderStatus(strings.ToUpper(string(record.Status)))
	return &record, nil
}

func (c *HTTPGatewayClient) GetWalletBalance(ctx context.Context, retailerID string) (*domain.WalletInfo, error) {
	var wallet walletPayload
	path := fmt.Sprintf("/wallet/retailers/%s/balance", url.PathEscape(retailerID))
	if err := c.do(ctx, "wallet_balance", http.MethodGet, path, nil, &wallet); err != nil {
		return nil, err
	}
	return &domain.WalletInfo{WalletID: wallet.WalletID, Balance: models.FromDecimalRupees(wallet.Balance)}, nil
}

func (c *HTTPGatewayClient) GetCreditWalletBalance(ctx context.Context, retailerID string) (*domain.CreditWalletInfo, error) {
	var credit creditWalletPayload
	path := fmt.Sprintf("/misc/retailers/%s/credit-balance", url.PathEscape(retailerID))
	if err := c.do(ctx, "credit_wallet_balance", http.MethodGet, path, nil, &credit); err != nil {
		return nil, err
	}
	return &domain.CreditWalletInfo{
		Enabled:     credit.Enabled,
		Balance:     models.FromDecimalRupees(credit.Balance),
		CreditLimit: models.FromDecimalRupees(credit.CreditLimit),
		IsOwnWallet: credit.IsOwnWallet,
	}, nil
}

// SubmitCreditRequest asks the distributor for credit points
func (c *HTTPGatewayClient) SubmitCreditRequest(ctx context.Context, req *domain.TransferRequest) (*domain.CreditRequestReceipt, error) {
	var receipt domain.CreditRequestReceipt
	err := c.do(ctx, "credit_request", http.MethodPost, "/distributor/credit-requests", toTransferPayload(req), &receipt)
	if err != nil {
		// an open request is reported as a rejection carrying its ids
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) && gwErr.Kind == domain.ErrorKindRejected {
			return &domain.CreditRequestReceipt{Status: "FAILED", ErrorCode: gwErr.Code}, nil
		}
		return nil, err
	}
	return &receipt, nil
}

// GetCreditRequest returns nil, nil when the request is unknown
func (c *HTTPGatewayClient) GetCreditRequest(ctx context.Context, retailerID, requestID string) (*domain.CreditRequestRecord, error) {
	var record domain.CreditRequestRecord
	path := fmt.Sprintf("/distributor/retailers/%s/credit-requests/%s", url.PathEscape(retailerID), url.PathEscape(requestID))
	found, err := c.lookup(ctx, "credit_request_status", path, &record)
	if err != nil || !found {
		return nil, err
	}
	record.Status = domain.CreditRequestStatus(strings.ToLower(string(record.Status)))
	return &record, nil
}

func refQuery(ref domain.OrderRef) string {
	q := url.Values{}
	if ref.OrderID != "" {
		q.Set("order_id", ref.OrderID)
	}
	if ref.CartToken != "" {
		q.Set("token_id", ref.CartToken)
	}
	return q.Encode()
}

// lookup is a GET that reports a 404 as not found
func (c *HTTPGatewayClient) lookup(ctx context.Context, op, path string, out interface{}) (bool, error) {
	err := c.do(ctx, op, http.MethodGet, path, nil, out)
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// do sends the request through the breaker and classifies the failure
func (c *HTTPGatewayClient) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &domain.GatewayError{Op: op, Kind: domain.ErrorKindFatal, Err: errors.Wrap(err, "failed to marshal request")}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.GatewayError{Op: op, Kind: domain.ErrorKindFatal, Err: errors.Wrap(err, "failed to build request")}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.breaker.Execute(func() (*gatewayResponse, error) {
		httpResp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		data, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, err
		}
		res := &gatewayResponse{status: httpResp.StatusCode, body: data}
		if res.status >= http.StatusInternalServerError {
			return res, errors.Errorf("gateway answered %d", res.status)
		}
		return res, nil
	})

	telemetry.RecordCounter(ctx, "gateway_requests_total", "Checkout backend HTTP requests", 1,
		attribute.String("op", op), attribute.String("outcome", requestOutcome(resp, err)))

	if err != nil {
		return classify(op, method, resp, err)
	}
	if resp.status >= http.StatusBadRequest {
		return rejection(op, resp)
	}
	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &domain.GatewayError{Op: op, Kind: domain.ErrorKindIndeterminate, StatusCode: resp.status, Err: errors.Wrap(err, "failed to decode response")}
	}
	return nil
}

func requestOutcome(resp *gatewayResponse, err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case resp != nil:
		return fmt.Sprintf("%dxx", resp.status/100)
	case err != nil:
		return "transport_error"
	}
	return "unknown"
}

// classify maps transport failures and 5xx answers onto the error taxonomy.
// A request that never left the process is transient; anything after that is
// indeterminate for writes since it may have landed.
func classify(op, method string, resp *gatewayResponse, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.NewTransientError(op, err)
	}

	if resp != nil {
		gwErr := domain.NewIndeterminateError(op, err)
		gwErr.StatusCode = resp.status
		if resp.status == http.StatusServiceUnavailable || method == http.MethodGet {
			gwErr.Kind = domain.ErrorKindTransient
		}
		return gwErr
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return domain.NewTransientError(op, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.NewTransientError(op, err)
	}
	if method == http.MethodGet {
		return domain.NewTransientError(op, err)
	}
	return domain.NewIndeterminateError(op, err)
}

func rejection(op string, resp *gatewayResponse) error {
	var payload errorPayload
	_ = json.Unmarshal(resp.body, &payload)

	code := payload.ErrorCode
	if code == "" {
		code = payload.Code
	}
	msg := payload.Message
	if msg == "" {
		msg = strings.TrimSpace(string(truncate(resp.body, maxErrorBody)))
	}
	if msg == "" {
		msg = http.StatusText(resp.status)
	}

	gwErr := domain.NewRejectedError(op, code, msg)
	gwErr.StatusCode = resp.status
	return gwErr
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
