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

var allChannels = domain.Permissions{Wallet: true, CreditWallet: true, PaymentLink: true}

func balances(wallet, credit int64) domain.Balances {
	return domain.Balances{
		Wallet: &domain.WalletInfo{WalletID: "wal-42", Balance: models.Rupees(wallet)},
		Credit: &domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(credit), CreditLimit: models.Rupees(1000), IsOwnWallet: true},
	}
}

func TestSelectChannel(t *testing.T) {
	tests := []struct {
		name              string
		perms             domain.Permissions
		balances          domain.Balances
		total             models.Money
		expectedChannel   domain.Channel
		expectedShortfall map[domain.Channel]models.Money
	}{
		{
			name:            "wallet covers the cart",
			perms:           allChannels,
			balances:        balances(200, 0),
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelWalletTransfer,
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelCreditTransfer: models.Rupees(150),
			},
		},
		{
			name:            "credit covers what the wallet cannot",
			perms:           allChannels,
			balances:        balances(50, 500),
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelCreditTransfer,
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(100),
			},
		},
		{
			name:            "payment link when no balance covers the cart",
			perms:           allChannels,
			balances:        balances(50, 50),
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelPaymentLink,
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(100),
				domain.ChannelCreditTransfer: models.Rupees(100),
			},
		},
		{
			name:            "shortfall is rounded up to a whole rupee",
			perms:           domain.Permissions{Wallet: true},
			balances:        balances(100, 0),
			total:           models.Paise(15040),
			expectedChannel: "",
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(51),
			},
		},
		{
			name:            "wallet not permitted is skipped",
			perms:           domain.Permissions{CreditWallet: true, PaymentLink: true},
			balances:        balances(1000, 500),
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelCreditTransfer,
		},
		{
			name:  "disabled credit wallet never qualifies",
			perms: allChannels,
			balances: domain.Balances{
				Wallet: &domain.WalletInfo{Balance: models.Rupees(10)},
				Credit: &domain.CreditWalletInfo{Enabled: false, Balance: models.Rupees(500)},
			},
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelPaymentLink,
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(140),
				domain.ChannelCreditTransfer: models.Rupees(150),
			},
		},
		{
			name:            "total without a currency is read as rupees",
			perms:           domain.Permissions{Wallet: true},
			balances:        balances(50, 0),
			total:           models.Money{Amount: 15000},
			expectedChannel: "",
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(100),
			},
		},
		{
			name:  "balance in another currency never qualifies",
			perms: domain.Permissions{Wallet: true, PaymentLink: true},
			balances: domain.Balances{
				Wallet: &domain.WalletInfo{Balance: models.NewMoney(100000, "USD")},
			},
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelPaymentLink,
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(150),
			},
		},
		{
			name:            "unknown balance is short by the whole total",
			perms:           domain.Permissions{Wallet: true, PaymentLink: true},
			balances:        domain.Balances{},
			total:           models.Rupees(150),
			expectedChannel: domain.ChannelPaymentLink,
			expectedShortfall: map[domain.Channel]models.Money{
				domain.ChannelWalletTransfer: models.Rupees(150),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := SelectChannel(tt.perms, tt.balances, tt.total)

			assert.Equal(t, tt.expectedChannel, selection.Channel)
			require.Len(t, selection.Options, len(domain.ChannelPriority))
			for _, option := range selection.Options {
				want, short := tt.expectedShortfall[option.Channel]
				if !short {
					assert.Nil(t, option.Shortfall, "channel %s", option.Channel)
					continue
				}
				require.NotNil(t, option.Shortfall, "channel %s", option.Channel)
				assert.Equal(t, want, *option.Shortfall, "channel %s", option.Channel)
				assert.False(t, option.Qualified)
			}
		})
	}
}

func TestSelectChannel_PriorityOrder(t *testing.T) {
	selection := SelectChannel(allChannels, balances(1000, 1000), models.Rupees(150))

	assert.Equal(t, domain.ChannelWalletTransfer, selection.Channel)
	for i, option := range selection.Options {
		assert.Equal(t, domain.ChannelPriority[i], option.Channel)
		assert.True(t, option.Qualified)
	}
}

func TestSelectChannel_TopUpAllowed(t *testing.T) {
	tests := []struct {
		name   string
		credit *domain.CreditWalletInfo
		want   bool
	}{
		{
			name:   "own credit wallet",
			credit: &domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(0), CreditLimit: models.Rupees(1000), IsOwnWallet: true},
			want:   true,
		},
		{
			name:   "wallet managed by a parent account",
			credit: &domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(0), CreditLimit: models.Rupees(1000)},
		},
		{
			name:   "disabled credit wallet",
			credit: &domain.CreditWalletInfo{CreditLimit: models.Rupees(1000), IsOwnWallet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := SelectChannel(allChannels, domain.Balances{Credit: tt.credit}, models.Rupees(150))

			option, ok := selection.Option(domain.ChannelCreditTransfer)
			require.True(t, ok)
			assert.Equal(t, tt.want, option.TopUpAllowed)
		})
	}
}

func TestChannelSelector_Balances(t *testing.T) {
	tests := []struct {
		name       string
		perms      domain.Permissions
		setupMocks func(*mocks.MockBalanceProvider)
		wantWallet bool
		wantCredit bool
	}{
		{
			name:  "reads only permitted balances",
			perms: domain.Permissions{Wallet: true, PaymentLink: true},
			setupMocks: func(p *mocks.MockBalanceProvider) {
				p.EXPECT().GetWalletBalance(mock.Anything, "ret-42").
					Return(&domain.WalletInfo{WalletID: "wal-42", Balance: models.Rupees(10)}, nil).Once()
			},
			wantWallet: true,
		},
		{
			name:  "unreadable balance is left out",
			perms: allChannels,
			setupMocks: func(p *mocks.MockBalanceProvider) {
				p.EXPECT().GetWalletBalance(mock.Anything, "ret-42").Return(nil, errors.New("wallet service down")).Once()
				p.EXPECT().GetCreditWalletBalance(mock.Anything, "ret-42").
					Return(&domain.CreditWalletInfo{Enabled: true, Balance: models.Rupees(500)}, nil).Once()
			},
			wantCredit: true,
		},
		{
			name:       "payment link needs no balance",
			perms:      domain.Permissions{PaymentLink: true},
			setupMocks: func(p *mocks.MockBalanceProvider) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mocks.NewMockBalanceProvider(t)
			tt.setupMocks(provider)

			got := NewChannelSelector(provider).Balances(context.Background(), "ret-42", tt.perms)
			assert.Equal(t, tt.wantWallet, got.Wallet != nil)
			assert.Equal(t, tt.wantCredit, got.Credit != nil)
		})
	}
}
