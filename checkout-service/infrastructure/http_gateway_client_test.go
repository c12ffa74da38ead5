package infrastructure

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/models"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc, opts ...func(*GatewayOptions)) (*HTTPGatewayClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o := GatewayOptions{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	client, err := NewHTTPGatewayClient(o)
	require.NoError(t, err)
	return client, srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func testOrderRequest() *domain.OrderRequest {
	return &domain.OrderRequest{
		CartToken:       "cart-token-1",
		ClientReference: "ref-1",
		PaymentMode:     domain.ChannelWalletTransfer.PaymentMode(),
		RetailerID:      "ret-42",
		Amount:          models.Paise(15040),
		Items:           []domain.CartItem{{SKU: "EXT-WARRANTY-1Y", Quantity: 1, Price: models.Paise(15040)}},
		Customer:        domain.Customer{Name: "Asha", Phone: "9811111111"},
	}
}

func TestHTTPGatewayClient_CreateOrder(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/orders/checkout", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "150.4", body["amount"])
		assert.Equal(t, "cart-token-1", body["token_id"])
		assert.Equal(t, "seller wallet", body["payment_mode"])

		writeJSON(w, http.StatusOK, `{"order_id":"ORD-1"}`)
	})

	receipt, err := client.CreateOrder(context.Background(), testOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", receipt.OrderID)
}

func TestHTTPGatewayClient_SubmitTransfer(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/payment-requests", r.URL.Path)

		var body transferPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "txn-1", body.TxnID)
		assert.Equal(t, "OCT", body.TransferType)
		assert.True(t, body.TransferAmount.Equal(models.Rupees(150).Decimal()))

		writeJSON(w, http.StatusOK, `{"registered_phone":"9800000001","retailer_payment_ids":["req-1"],"retailer_payment_transfer_ids":["tr-1"]}`)
	})

	receipt, err := client.SubmitTransfer(context.Background(), &domain.TransferRequest{
		Gateway:       domain.GatewayRazorpay,
		Type:          domain.TransferOrderCreate,
		TransferType:  domain.TransferTypeOrderCreate,
		RetailerID:    "ret-42",
		OrderID:       "ORD-1",
		TransactionID: "txn-1",
		Amount:        models.Rupees(150),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"req-1"}, receipt.RequestIDs)
	assert.Equal(t, []string{"tr-1"}, receipt.TransferIDs)
}

func TestHTTPGatewayClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		call         func(*HTTPGatewayClient) error
		expectedKind domain.ErrorKind
		expectedCode string
	}{
		{
			name:   "declined transfer carries the backend code",
			status: http.StatusUnprocessableEntity,
			body:   `{"error_code":"WAT_PENDING_TXN_IN_QUEUE","message":"transfer queued"}`,
			call: func(c *HTTPGatewayClient) error {
				_, err := c.SubmitTransfer(context.Background(), &domain.TransferRequest{TransactionID: "txn-1"})
				return err
			},
			expectedKind: domain.ErrorKindRejected,
			expectedCode: domain.CodePendingTransactionQueued,
		},
		{
			name:   "server error on a write is indeterminate",
			status: http.StatusInternalServerError,
			call: func(c *HTTPGatewayClient) error {
				_, err := c.CreateOrder(context.Background(), testOrderRequest())
				return err
			},
			expectedKind: domain.ErrorKindIndeterminate,
		},
		{
			name:   "unavailable is transient",
			status: http.StatusServiceUnavailable,
			call: func(c *HTTPGatewayClient) error {
				_, err := c.CreateOrder(context.Background(), testOrderRequest())
				return err
			},
			expectedKind: domain.ErrorKindTransient,
		},
		{
			name:   "server error on a read is transient",
			status: http.StatusBadGateway,
			call: func(c *HTTPGatewayClient) error {
				_, err := c.GetWalletBalance(context.Background(), "ret-42")
				return err
			},
			expectedKind: domain.ErrorKindTransient,
		},
		{
			name:   "order response without id is indeterminate",
			status: http.StatusOK,
			body:   `{}`,
			call: func(c *HTTPGatewayClient) error {
				_, err := c.CreateOrder(context.Background(), testOrderRequest())
				return err
			},
			expectedKind: domain.ErrorKindIndeterminate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			err := tt.call(client)
			require.Error(t, err)
			assert.Equal(t, tt.expectedKind, domain.KindOf(err))
			assert.Equal(t, tt.expectedCode, domain.CodeOf(err))
		})
	}
}

func TestHTTPGatewayClient_TimeoutAfterSubmitIsIndeterminate(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, func(o *GatewayOptions) { o.Timeout = 50 * time.Millisecond })
	defer close(release)

	_, err := client.SubmitTransfer(context.Background(), &domain.TransferRequest{TransactionID: "txn-1"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindIndeterminate, domain.KindOf(err))
}

func TestHTTPGatewayClient_UnreachableIsTransient(t *testing.T) {
	client, srv := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.SubmitTransfer(context.Background(), &domain.TransferRequest{TransactionID: "txn-1"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindTransient, domain.KindOf(err))
}

func TestHTTPGatewayClient_BreakerOpens(t *testing.T) {
	var hits int32
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusInternalServerError, `{}`)
	}, func(o *GatewayOptions) {
		o.BreakerFailures = 2
		o.BreakerOpenDuration = time.Minute
	})

	for i := 0; i < 2; i++ {
		_, err := client.GetWalletBalance(context.Background(), "ret-42")
		require.Error(t, err)
	}

	_, err := client.CreateOrder(context.Background(), testOrderRequest())
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindTransient, domain.KindOf(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestHTTPGatewayClient_RejectionsDoNotTripBreaker(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"code":"CART_EXPIRED"}`)
	}, func(o *GatewayOptions) { o.BreakerFailures = 1 })

	for i := 0; i < 3; i++ {
		_, err := client.CreateOrder(context.Background(), testOrderRequest())
		assert.Equal(t, domain.ErrorKindRejected, domain.KindOf(err))
		assert.Equal(t, "CART_EXPIRED", domain.CodeOf(err))
	}
}

func TestHTTPGatewayClient_HistoryLookups(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/orders/transactions" && r.URL.Query().Get("order_id") == "ORD-1":
			writeJSON(w, http.StatusOK, `{"order_id":"ORD-1","status":"SUCCESS","retailer_payment_ids":["req-1"],"amount":"150.00"}`)
		case r.URL.Path == "/orders/history" && r.URL.Query().Get("token_id") == "cart-token-1":
			writeJSON(w, http.StatusOK, `{"order_id":"ORD-2","status":"payment_pending"}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"message":"not found"}`)
		}
	})
	ctx := context.Background()

	tx, err := client.QueryTransactionHistory(ctx, domain.OrderRef{OrderID: "ORD-1"})
	require.NoError(t, err)
	assert.Equal(t, &domain.TransactionRecord{
		OrderID:    "ORD-1",
		Status:     domain.PaymentRequestSuccess,
		RequestIDs: []string{"req-1"},
		Amount:     models.Rupees(150),
	}, tx)

	tx, err = client.QueryTransactionHistory(ctx, domain.OrderRef{OrderID: "ORD-9"})
	require.NoError(t, err)
	assert.Nil(t, tx)

	order, err := client.QueryOrderHistory(ctx, domain.OrderRef{CartToken: "cart-token-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaymentPending, order.Status)
	assert.Equal(t, "ORD-2", order.OrderID)

	order, err = client.QueryOrderHistory(ctx, domain.OrderRef{CartToken: "cart-token-9"})
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestHTTPGatewayClient_Balances(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wallet/retailers/ret-42/balance":
			writeJSON(w, http.StatusOK, `{"wallet_id":"wal-42","balance":"150.40"}`)
		case "/misc/retailers/ret-42/credit-balance":
			writeJSON(w, http.StatusOK, `{"enabled":true,"balance":200,"credit_limit":"1000","is_own_wallet":true}`)
		default:
			writeJSON(w, http.StatusNotFound, `{}`)
		}
	})
	ctx := context.Background()

	wallet, err := client.GetWalletBalance(ctx, "ret-42")
	require.NoError(t, err)
	assert.Equal(t, &domain.WalletInfo{WalletID: "wal-42", Balance: models.Paise(15040)}, wallet)

	credit, err := client.GetCreditWalletBalance(ctx, "ret-42")
	require.NoError(t, err)
	assert.Equal(t, &domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(200), CreditLimit: models.Rupees(1000), IsOwnWallet: true}, credit)
}

func TestHTTPGatewayClient_CreditRequests(t *testing.T) {
	client, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/distributor/credit-requests":
			var body transferPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.TransferAmount.GreaterThan(models.Rupees(500).Decimal()) {
				writeJSON(w, http.StatusBadRequest, `{"error_code":"CP_LIMIT","message":"limit exceeded"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"status":"AMOUNT_TRANSFERRED","request_ids":["cr-1"]}`)
		case "/distributor/retailers/ret-42/credit-requests/cr-1":
			writeJSON(w, http.StatusOK, `{"id":"cr-1","status":"APPROVED"}`)
		default:
			writeJSON(w, http.StatusNotFound, `{}`)
		}
	})
	ctx := context.Background()

	receipt, err := client.SubmitCreditRequest(ctx, &domain.TransferRequest{RetailerID: "ret-42", Amount: models.Rupees(300)})
	require.NoError(t, err)
	assert.True(t, receipt.Observable())
	assert.Equal(t, []string{"cr-1"}, receipt.RequestIDs)

	receipt, err = client.SubmitCreditRequest(ctx, &domain.TransferRequest{RetailerID: "ret-42", Amount: models.Rupees(900)})
	require.NoError(t, err)
	assert.Equal(t, &domain.CreditRequestReceipt{Status: "FAILED", ErrorCode: "CP_LIMIT"}, receipt)

	record, err := client.GetCreditRequest(ctx, "ret-42", "cr-1")
	require.NoError(t, err)
	assert.True(t, record.Status.IsApproved())

	record, err = client.GetCreditRequest(ctx, "ret-42", "cr-404")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestNewHTTPGatewayClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPGatewayClient(GatewayOptions{BaseURL: "not a url"})
	assert.Error(t, err)
}
