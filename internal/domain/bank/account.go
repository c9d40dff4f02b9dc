// Package bank holds clients and their accounts. Every balance change is
// reported to a Broadcaster as a human-readable transaction summary.
package bank

import (
	"banking-engine/internal/infrastructure/monitoring"
	"banking-engine/internal/notification"
	"banking-engine/internal/pkg/apperrors"
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	OperationDeposit  = "deposit"
	OperationWithdraw = "withdraw"
	OperationPayment  = "payment"
)

type Broadcaster interface {
	Broadcast(ctx context.Context, message string)
}

var lastAccountID atomic.Int64

type Account struct {
	id          int64
	client      *Client
	accountType AccountType
	name        string
	notifier    Broadcaster

	mu      sync.Mutex
	balance float64
	bonus   float64
}

// NewAccount opens an empty account. The bonus chain for the account type is
// evaluated once here, against the zero opening balance, and the bonus
// percentage never changes afterwards.
func NewAccount(client *Client, accountType AccountType, name string, notifier Broadcaster) (*Account, error) {
	if client == nil {
		return nil, apperrors.NewValidationError("client", "Client cannot be nil")
	}
	if !accountType.Valid() {
		return nil, apperrors.NewValidationError("accountType", fmt.Sprintf("unknown account type %q", accountType))
	}
	if notifier == nil {
		panic("account notifier cannot be nil")
	}

	a := &Account{
		id:          lastAccountID.Add(1),
		client:      client,
		accountType: accountType,
		name:        name,
		notifier:    notifier,
		balance:     0,
		bonus:       BaseBonusPercentage,
	}
	a.bonus += float64(BonusChainFor(accountType).Additional(a.Snapshot()))
	return a, nil
}

func (a *Account) ID() int64         { return a.id }
func (a *Account) Client() *Client   { return a.client }
func (a *Account) Type() AccountType { return a.accountType }
func (a *Account) Name() string      { return a.name }

func (a *Account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func (a *Account) BonusPercentage() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bonus
}

func (a *Account) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{Type: a.accountType, Balance: a.balance}
}

// validAmount reports whether amount is positive and finite.
func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}

// Deposit ignores non-positive and non-finite amounts.
func (a *Account) Deposit(ctx context.Context, amount float64) {
	if !validAmount(amount) {
		monitoring.RecordTransaction(OperationDeposit, "ignored")
		return
	}

	a.mu.Lock()
	a.balance += amount
	tx := a.transaction(OperationDeposit, amount)
	a.mu.Unlock()

	monitoring.RecordTransaction(OperationDeposit, "success")
	a.notifier.Broadcast(ctx, tx.Message())
}

// Withdraw ignores non-positive and non-finite amounts and returns a *apperrors.RefusalError
// when the balance does not cover amount.
func (a *Account) Withdraw(ctx context.Context, amount float64) error {
	if !validAmount(amount) {
		monitoring.RecordTransaction(OperationWithdraw, "ignored")
		return nil
	}

	a.mu.Lock()
	if a.balance < amount {
		balance := a.balance
		a.mu.Unlock()
		monitoring.RecordTransaction(OperationWithdraw, "refused")
		return apperrors.NewRefusal("withdrawal", amount, balance)
	}
	a.balance -= amount
	tx := a.transaction(OperationWithdraw, amount)
	a.mu.Unlock()

	monitoring.RecordTransaction(OperationWithdraw, "success")
	a.notifier.Broadcast(ctx, tx.Message())
	return nil
}

// Pay debits amount and credits back amount*bonus/100.
func (a *Account) Pay(ctx context.Context, amount float64) error {
	if !validAmount(amount) {
		monitoring.RecordTransaction(OperationPayment, "ignored")
		return nil
	}

	a.mu.Lock()
	if a.balance < amount {
		balance := a.balance
		a.mu.Unlock()
		monitoring.RecordTransaction(OperationPayment, "refused")
		return apperrors.NewRefusal("payment", amount, balance)
	}
	bonusAmount := amount * a.bonus / 100
	a.balance = a.balance - amount + bonusAmount
	tx := a.transaction(OperationPayment, amount)
	tx.Bonus = &bonusAmount
	a.mu.Unlock()

	monitoring.RecordTransaction(OperationPayment, "success")
	a.notifier.Broadcast(ctx, tx.Message())
	return nil
}

// caller holds a.mu
func (a *Account) transaction(operation string, amount float64) notification.Transaction {
	return notification.Transaction{
		Client:    a.client.Name(),
		Account:   a.name,
		Operation: operation,
		Amount:    amount,
		Balance:   a.balance,
	}
}

func (a *Account) Info() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s\n", a.client.Name())
	fmt.Fprintf(&b, "ID: %d\n", a.id)
	fmt.Fprintf(&b, "Type: %s\n", a.accountType.Description())
	fmt.Fprintf(&b, "Name: %s\n", a.name)
	fmt.Fprintf(&b, "Balance: %.2f\n", a.balance)
	fmt.Fprintf(&b, "Bonus: %.1f%%\n", a.bonus)
	return b.String()
}
