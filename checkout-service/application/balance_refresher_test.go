package application

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/checkout-service/mocks"
	"github.com/draftea/checkout-system/shared/events"
	"github.com/draftea/checkout-system/shared/models"
)

func TestBalanceRefresher_Refresh(t *testing.T) {
	tests := []struct {
		name            string
		setupMocks      func(*mocks.MockBalanceProvider)
		expectedError   string
		expectedDetails map[string]string
	}{
		{
			name: "both balances read",
			setupMocks: func(p *mocks.MockBalanceProvider) {
				p.EXPECT().GetWalletBalance(mock.Anything, "ret-42").
					Return(&domain.WalletInfo{WalletID: "wal-42", Balance: models.Rupees(40)}, nil).Once()
				p.EXPECT().GetCreditWalletBalance(mock.Anything, "ret-42").
					Return(&domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(200), CreditLimit: models.Rupees(1000), IsOwnWallet: true}, nil).Once()
			},
			expectedDetails: map[string]string{
				"wallet_balance": "40.00 INR",
				"credit_balance": "200.00 INR",
				"credit_limit":   "1000.00 INR",
			},
		},
		{
			name: "wallet unreadable",
			setupMocks: func(p *mocks.MockBalanceProvider) {
				p.EXPECT().GetWalletBalance(mock.Anything, "ret-42").Return(nil, errors.New("timeout")).Once()
				p.EXPECT().GetCreditWalletBalance(mock.Anything, "ret-42").
					Return(&domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(200), CreditLimit: models.Rupees(1000), IsOwnWallet: true}, nil).Once()
			},
			expectedError: "failed to read wallet balance: timeout",
			expectedDetails: map[string]string{
				"credit_balance": "200.00 INR",
				"credit_limit":   "1000.00 INR",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mocks.NewMockBalanceProvider(t)
			notifier := mocks.NewMockNotifier(t)
			tt.setupMocks(provider)

			var emitted *domain.Notification
			notifier.EXPECT().Emit(mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
				return n.Type == events.BalanceRefreshedEvent && n.RetailerID == "ret-42"
			})).Run(func(_ context.Context, n *domain.Notification) { emitted = n }).Once()

			balances, err := NewBalanceRefresher(provider, notifier).Refresh(context.Background(), "ret-42")
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				assert.Nil(t, balances.Wallet)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, balances.Wallet)
			}
			assert.NotNil(t, balances.Credit)
			require.NotNil(t, emitted)
			assert.Equal(t, tt.expectedDetails, emitted.Details)
		})
	}
}
