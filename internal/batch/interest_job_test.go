package batch_test

import (
	"banking-engine/internal/batch"
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/domain/interest"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockInterestApplier struct {
	mock.Mock
}

func (m *MockInterestApplier) Accounts() []*bank.Account {
	args := m.Called()
	if accounts, ok := args.Get(0).([]*bank.Account); ok {
		return accounts
	}
	return nil
}

func (m *MockInterestApplier) ApplyInterest(ctx context.Context, account *bank.Account, strategy interest.Strategy) (float64, error) {
	args := m.Called(ctx, account, strategy)
	return args.Get(0).(float64), args.Error(1)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(context.Context, string) {}

func openAccounts(t *testing.T, n int) []*bank.Account {
	t.Helper()
	client := bank.NewClient("Ivanov", "Ivan", "", "")
	accounts := make([]*bank.Account, 0, n)
	for i := 0; i < n; i++ {
		acc, err := bank.NewAccount(client, bank.Savings, "Savings", nopBroadcaster{})
		require.NoError(t, err)
		accounts = append(accounts, acc)
	}
	return accounts
}

func TestInterestAccrualJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("applies interest to every account", func(t *testing.T) {
		accounts := openAccounts(t, 3)
		applier := new(MockInterestApplier)
		applier.On("Accounts").Return(accounts).Once()
		for _, acc := range accounts {
			applier.On("ApplyInterest", ctx, acc, interest.Savings).Return(30.0, nil).Once()
		}

		err := batch.NewInterestAccrualJob(applier, interest.Savings, logger).Run(ctx)

		assert.NoError(t, err)
		applier.AssertExpectations(t)
	})

	t.Run("no accounts", func(t *testing.T) {
		applier := new(MockInterestApplier)
		applier.On("Accounts").Return([]*bank.Account{}).Once()

		err := batch.NewInterestAccrualJob(applier, interest.VIP, logger).Run(ctx)

		assert.NoError(t, err)
		applier.AssertNotCalled(t, "ApplyInterest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("continues after a failure and reports it", func(t *testing.T) {
		accounts := openAccounts(t, 2)
		applier := new(MockInterestApplier)
		applier.On("Accounts").Return(accounts).Once()
		applier.On("ApplyInterest", ctx, accounts[0], interest.Loan).Return(0.0, errors.New("boom")).Once()
		applier.On("ApplyInterest", ctx, accounts[1], interest.Loan).Return(7.0, nil).Once()

		err := batch.NewInterestAccrualJob(applier, interest.Loan, logger).Run(ctx)

		assert.ErrorContains(t, err, "1 errors")
		applier.AssertExpectations(t)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		accounts := openAccounts(t, 2)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		applier := new(MockInterestApplier)
		applier.On("Accounts").Return(accounts).Once()

		err := batch.NewInterestAccrualJob(applier, interest.Savings, logger).Run(cancelled)

		assert.True(t, errors.Is(err, context.Canceled))
		applier.AssertNotCalled(t, "ApplyInterest", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNewInterestAccrualJob_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { batch.NewInterestAccrualJob(nil, interest.Savings, logger) })
}
