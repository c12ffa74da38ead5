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
	"github.com/draftea/checkout-system/shared/models"
)

func TestStartCheckout_Execute(t *testing.T) {
	validCommand := func() *StartCheckoutCommand {
		return &StartCheckoutCommand{
			SessionKey:  testSessionKey,
			Retailer:    testRetailer(),
			Cart:        testCart(models.Rupees(150)),
			Permissions: allChannels,
		}
	}
	walletBalances := func(wallet, credit int64) func(*mocks.MockBalanceProvider) {
		return func(p *mocks.MockBalanceProvider) {
			p.EXPECT().GetWalletBalance(mock.Anything, "ret-42").
				Return(&domain.WalletInfo{WalletID: "wal-42", Balance: models.Rupees(wallet)}, nil).Maybe()
			p.EXPECT().GetCreditWalletBalance(mock.Anything, "ret-42").
				Return(&domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(credit), CreditLimit: models.Rupees(1000), IsOwnWallet: true}, nil).Maybe()
		}
	}

	tests := []struct {
		name            string
		command         func() *StartCheckoutCommand
		setupBalances   func(*mocks.MockBalanceProvider)
		setupGateway    func(*mocks.MockOrderGateway)
		expectedError   string
		expectedIs      error
		expectedChannel domain.Channel
		expectedStage   domain.ActionStage
	}{
		{
			name:          "wallet selected from balances",
			command:       validCommand,
			setupBalances: walletBalances(200, 0),
			setupGateway: func(gw *mocks.MockOrderGateway) {
				gw.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(nil, domain.NewRejectedError("create_order", "CART_EXPIRED", "cart expired")).Once()
			},
			expectedChannel: domain.ChannelWalletTransfer,
			expectedStage:   domain.StageErrorCreatingOrder,
		},
		{
			name: "explicit payment link overrides a qualifying wallet",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Channel = domain.ChannelPaymentLink
				return cmd
			},
			setupBalances: walletBalances(200, 0),
			setupGateway: func(gw *mocks.MockOrderGateway) {
				gw.EXPECT().CreateLink(mock.Anything, mock.Anything).
					Return(nil, domain.NewRejectedError("create_link", "", "link service unavailable")).Once()
			},
			expectedChannel: domain.ChannelPaymentLink,
			expectedStage:   domain.StageErrorCreatingECODPaymentRequest,
		},
		{
			name: "explicit channel not permitted",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Permissions = domain.Permissions{Wallet: true}
				cmd.Channel = domain.ChannelCreditTransfer
				return cmd
			},
			setupBalances: walletBalances(200, 0),
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedIs:    domain.ErrChannelNotPermitted,
		},
		{
			name: "explicit channel without enough balance",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Channel = domain.ChannelCreditTransfer
				return cmd
			},
			setupBalances: walletBalances(200, 20),
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedIs:    domain.ErrInsufficientBalance,
		},
		{
			name: "nothing qualifies",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Permissions = domain.Permissions{Wallet: true, CreditWallet: true}
				return cmd
			},
			setupBalances: walletBalances(10, 20),
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedIs:    domain.ErrInsufficientBalance,
		},
		{
			name: "missing session key",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.SessionKey = ""
				return cmd
			},
			setupBalances: func(*mocks.MockBalanceProvider) {},
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedError: "session key is required",
		},
		{
			name: "empty cart",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Cart.Items = nil
				return cmd
			},
			setupBalances: func(*mocks.MockBalanceProvider) {},
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedError: "cart has no items",
		},
		{
			name: "cart priced in another currency",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Cart.Total = models.NewMoney(cmd.Cart.Total.Amount, "USD")
				return cmd
			},
			setupBalances: func(*mocks.MockBalanceProvider) {},
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedIs:    models.ErrCurrencyMismatch,
		},
		{
			name: "no channel permitted",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Permissions = domain.Permissions{}
				return cmd
			},
			setupBalances: func(*mocks.MockBalanceProvider) {},
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedIs:    domain.ErrNoChannelPermitted,
		},
		{
			name: "unknown channel",
			command: func() *StartCheckoutCommand {
				cmd := validCommand()
				cmd.Channel = domain.Channel("upi")
				return cmd
			},
			setupBalances: func(*mocks.MockBalanceProvider) {},
			setupGateway:  func(*mocks.MockOrderGateway) {},
			expectedError: "invalid payment channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			provider := mocks.NewMockBalanceProvider(t)
			tt.setupBalances(provider)
			tt.setupGateway(h.gateway)

			uc := NewStartCheckout(NewChannelSelector(provider), h.orch)
			resp, err := uc.Execute(context.Background(), tt.command())

			if tt.expectedError != "" || tt.expectedIs != nil {
				require.Error(t, err)
				if tt.expectedError != "" {
					assert.Contains(t, err.Error(), tt.expectedError)
				}
				if tt.expectedIs != nil {
					assert.True(t, errors.Is(err, tt.expectedIs), "got %v", err)
				}
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedChannel, resp.Checkout.Channel)
			assert.Equal(t, tt.expectedStage, resp.Checkout.Stage)
			assert.True(t, resp.Checkout.Retryable)
			assert.NotEmpty(t, resp.Selection.Options)
		})
	}
}

func TestStartCheckout_ReportsShortfall(t *testing.T) {
	h := newHarness(t)
	provider := mocks.NewMockBalanceProvider(t)
	provider.EXPECT().GetWalletBalance(mock.Anything, "ret-42").
		Return(&domain.WalletInfo{Balance: models.Paise(4960)}, nil).Once()

	cmd := &StartCheckoutCommand{
		SessionKey:  testSessionKey,
		Retailer:    testRetailer(),
		Cart:        testCart(models.Rupees(150)),
		Permissions: domain.Permissions{Wallet: true},
	}
	_, err := NewStartCheckout(NewChannelSelector(provider), h.orch).Execute(context.Background(), cmd)

	var shortfall *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &shortfall))
	assert.Equal(t, domain.ChannelWalletTransfer, shortfall.Channel)
	assert.Equal(t, models.Rupees(101), shortfall.Shortfall)
}
