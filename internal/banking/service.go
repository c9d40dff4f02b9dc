package banking

import (
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/domain/interest"
	"banking-engine/internal/domain/loan"
	"banking-engine/internal/infrastructure/monitoring"
	"banking-engine/internal/notification"
	"banking-engine/internal/pkg/apperrors"
	"banking-engine/internal/report"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

const presetPersonal = "personal"

type Hub interface {
	bank.Broadcaster
	Register(s notification.Sink)
	Unregister(s notification.Sink) bool
	List() []notification.Entry
}

// Service sequences calls into the account, interest, loan and notification
// components. It adds no rules of its own.
type Service interface {
	RegisterClient(ctx context.Context, surname, givenName, email, phone string) *bank.Client
	Clients() []*bank.Client
	Accounts() []*bank.Account
	OpenAccount(ctx context.Context, client *bank.Client, accountType bank.AccountType, name string) (*bank.Account, error)
	CloseAccount(ctx context.Context, client *bank.Client, account *bank.Account) bool
	Transfer(ctx context.Context, from, to *bank.Account, amount float64) error
	ApplyInterest(ctx context.Context, account *bank.Account, strategy interest.Strategy) (float64, error)
	CreateLoan(ctx context.Context, client *bank.Client, amount float64) (*loan.Agreement, error)
	NotifyClients(ctx context.Context, message string)
	GenerateReport(ctx context.Context, w io.Writer, role string) error
	AddDevice(ctx context.Context, sink notification.Sink)
	RemoveDevice(ctx context.Context, sink notification.Sink) bool
	Devices() []notification.Entry
}

var _ Service = (*service)(nil)

type service struct {
	hub    Hub
	logger *slog.Logger

	mu      sync.Mutex
	clients []*bank.Client
}

func NewService(hub Hub, logger *slog.Logger) Service {
	if hub == nil {
		panic("notification hub cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}
	return &service{
		hub:    hub,
		logger: logger.With(slog.String("component", "bankingService")),
	}
}

func (s *service) RegisterClient(ctx context.Context, surname, givenName, email, phone string) *bank.Client {
	client := bank.NewClient(surname, givenName, email, phone)

	s.mu.Lock()
	s.clients = append(s.clients, client)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Client registered", slog.Int64("clientID", client.ID()))
	return client
}

func (s *service) Clients() []*bank.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*bank.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *service) Accounts() []*bank.Account {
	var accounts []*bank.Account
	for _, c := range s.Clients() {
		accounts = append(accounts, c.Accounts()...)
	}
	return accounts
}

func (s *service) OpenAccount(ctx context.Context, client *bank.Client, accountType bank.AccountType, name string) (*bank.Account, error) {
	account, err := bank.NewAccount(client, accountType, name, s.hub)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to open account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to open account: %w", err)
	}
	client.AddAccount(account)

	s.logger.InfoContext(ctx, "Account opened",
		slog.Int64("clientID", client.ID()),
		slog.Int64("accountID", account.ID()),
		slog.String("type", string(accountType)),
		slog.Float64("bonus", account.BonusPercentage()),
	)
	return account, nil
}

func (s *service) CloseAccount(ctx context.Context, client *bank.Client, account *bank.Account) bool {
	removed := client.RemoveAccount(account)
	if !removed {
		s.logger.WarnContext(ctx, "No account to delete", slog.Int64("clientID", client.ID()))
		return false
	}
	s.logger.InfoContext(ctx, "Account closed", slog.Int64("clientID", client.ID()), slog.Int64("accountID", account.ID()))
	return true
}

// Transfer withdraws from one account and deposits into the other. A refused
// withdrawal leaves both accounts untouched.
func (s *service) Transfer(ctx context.Context, from, to *bank.Account, amount float64) error {
	logCtx := s.logger.With(slog.Int64("fromAccountID", from.ID()), slog.Int64("toAccountID", to.ID()), slog.Float64("amount", amount))
	logCtx.InfoContext(ctx, "Initiating transfer")

	if err := from.Withdraw(ctx, amount); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logCtx.WarnContext(ctx, "Transfer refused", slog.Any("error", err))
		} else {
			logCtx.ErrorContext(ctx, "Transfer failed", slog.Any("error", err))
		}
		return fmt.Errorf("transfer aborted: %w", err)
	}
	to.Deposit(ctx, amount)

	logCtx.InfoContext(ctx, "Transfer completed successfully")
	return nil
}

func (s *service) ApplyInterest(ctx context.Context, account *bank.Account, strategy interest.Strategy) (float64, error) {
	calculator := interest.NewCalculator()
	if err := calculator.SetStrategy(strategy); err != nil {
		s.logger.WarnContext(ctx, "Rejected interest strategy", slog.Any("error", err))
		return 0, err
	}

	amount, err := calculator.Execute(account)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to calculate interest", slog.Any("error", err))
		return 0, err
	}
	account.Deposit(ctx, amount)

	s.logger.InfoContext(ctx, "Interest added to account",
		slog.Int64("accountID", account.ID()),
		slog.String("type", account.Type().Description()),
		slog.String("strategy", string(strategy.Kind())),
		slog.Float64("interest", amount),
	)
	return amount, nil
}

func (s *service) CreateLoan(ctx context.Context, client *bank.Client, amount float64) (*loan.Agreement, error) {
	builder := loan.NewBuilder()
	err := builder.Apply(
		loan.WithClient(client),
		loan.WithAmount(amount),
		loan.WithInterestRate(7.5),
		loan.WithTermMonths(60),
		loan.WithPurpose("Personal Loan"),
	)
	if err != nil {
		s.logger.WarnContext(ctx, "Invalid loan parameters", slog.Any("error", err))
		return nil, err
	}

	agreement, err := builder.Build()
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build loan agreement", slog.Any("error", err))
		return nil, err
	}
	monitoring.RecordLoanBuilt(presetPersonal)

	s.logger.InfoContext(ctx, "Loan agreement created",
		slog.String("agreementNumber", agreement.Number()),
		slog.Int64("clientID", client.ID()),
		slog.Float64("monthlyPayment", agreement.MonthlyPayment()),
	)
	return agreement, nil
}

func (s *service) NotifyClients(ctx context.Context, message string) {
	s.hub.Broadcast(ctx, notification.BankNotice(message))
}

func (s *service) GenerateReport(ctx context.Context, w io.Writer, role string) error {
	r, err := report.NewReport(role)
	if err != nil {
		s.logger.WarnContext(ctx, "Unknown report role", slog.String("role", role), slog.Any("error", err))
		return err
	}
	s.logger.InfoContext(ctx, "Generating report", slog.String("reportType", r.Type()))
	return r.Generate(w)
}

func (s *service) AddDevice(ctx context.Context, sink notification.Sink) {
	s.hub.Register(sink)
	s.logger.InfoContext(ctx, "Device added", slog.String("device", sink.Name()))
}

func (s *service) RemoveDevice(ctx context.Context, sink notification.Sink) bool {
	removed := s.hub.Unregister(sink)
	s.logger.InfoContext(ctx, "Device removal requested", slog.String("device", sink.Name()), slog.Bool("removed", removed))
	return removed
}

func (s *service) Devices() []notification.Entry {
	return s.hub.List()
}
