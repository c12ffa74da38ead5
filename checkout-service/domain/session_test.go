package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftea/checkout-system/shared/models"
)

func testCart() CartSnapshot {
	return CartSnapshot{
		Token:    "cart-token-1",
		Items:    []CartItem{{SKU: "sku-1", Name: "Phone case", Quantity: 1, Price: models.Rupees(150)}},
		Total:    models.Rupees(150),
		Customer: Customer{Name: "Asha", Phone: "9800000002"},
	}
}

func TestCartSnapshot_Normalized(t *testing.T) {
	cart := testCart()
	cart.Total = models.Money{Amount: 15000}
	cart.Items[0].Price = models.Money{Amount: 15000}

	normalized := cart.Normalized()
	assert.Equal(t, models.Rupees(150), normalized.Total)
	assert.Equal(t, models.Rupees(150), normalized.Items[0].Price)
	assert.Empty(t, cart.Items[0].Price.Currency, "items are copied")
	require.NoError(t, normalized.Validate())
}

func TestCartSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CartSnapshot)
		wantErr error
	}{
		{name: "valid cart", mutate: func(*CartSnapshot) {}},
		{
			name:    "missing token",
			mutate:  func(c *CartSnapshot) { c.Token = "" },
			wantErr: errors.New("cart token is required"),
		},
		{
			name:    "zero total",
			mutate:  func(c *CartSnapshot) { c.Total = models.Rupees(0) },
			wantErr: errors.New("cart total must be positive"),
		},
		{
			name:    "total without a currency",
			mutate:  func(c *CartSnapshot) { c.Total = models.Money{Amount: 15000} },
			wantErr: models.ErrCurrencyMismatch,
		},
		{
			name:    "total in another currency",
			mutate:  func(c *CartSnapshot) { c.Total = models.NewMoney(15000, "USD") },
			wantErr: models.ErrCurrencyMismatch,
		},
		{
			name:    "item in another currency",
			mutate:  func(c *CartSnapshot) { c.Items[0].Price = models.NewMoney(15000, "USD") },
			wantErr: models.ErrCurrencyMismatch,
		},
		{
			name:    "missing customer phone",
			mutate:  func(c *CartSnapshot) { c.Customer.Phone = "" },
			wantErr: errors.New("customer phone is required"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := testCart()
			tt.mutate(&cart)

			err := cart.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if errors.Is(tt.wantErr, models.ErrCurrencyMismatch) {
				assert.ErrorIs(t, err, models.ErrCurrencyMismatch)
			} else {
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
		})
	}
}
