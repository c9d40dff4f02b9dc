package loan

import (
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/pkg/apperrors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const DefaultPurpose = "General purpose"

// Builder collects loan parameters. Required fields are validated as they are
// set; Build checks that every one of them was set.
type Builder struct {
	client             *bank.Client
	amount             float64
	annualInterestRate float64
	termMonths         int

	agreementNumber   string
	startDate         time.Time
	purpose           string
	insuranceRequired bool
}

type Option func(*Builder) error

func NewBuilder() *Builder {
	return newBuilderAt(time.Now(), rand.Intn)
}

func newBuilderAt(now time.Time, intn func(int) int) *Builder {
	return &Builder{
		agreementNumber:   generateAgreementNumber(now, intn),
		startDate:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		purpose:           DefaultPurpose,
		insuranceRequired: false,
	}
}

// LOAN-<YYYYMMDD>-<1000..9999>
func generateAgreementNumber(now time.Time, intn func(int) int) string {
	return fmt.Sprintf("LOAN-%s-%d", now.Format("20060102"), 1000+intn(9000))
}

func (b *Builder) SetClient(client *bank.Client) error {
	if client == nil {
		return apperrors.NewValidationError("client", "Client cannot be nil")
	}
	b.client = client
	return nil
}

func (b *Builder) SetAmount(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return apperrors.NewValidationError("amount", "Loan amount must be a positive finite number")
	}
	b.amount = amount
	return nil
}

func (b *Builder) SetInterestRate(rate float64) error {
	if !(rate >= 0 && rate <= 100) {
		return apperrors.NewValidationError("annualInterestRate", "Interest rate must be between 0 and 100")
	}
	b.annualInterestRate = rate
	return nil
}

func (b *Builder) SetTermMonths(months int) error {
	if months <= 0 {
		return apperrors.NewValidationError("termMonths", "Term must be positive")
	}
	b.termMonths = months
	return nil
}

func (b *Builder) SetAgreementNumber(number string) {
	b.agreementNumber = number
}

func (b *Builder) SetStartDate(date time.Time) {
	b.startDate = date
}

func (b *Builder) SetPurpose(purpose string) {
	b.purpose = purpose
}

func (b *Builder) SetInsuranceRequired(required bool) {
	b.insuranceRequired = required
}

// Apply runs opts in order and stops at the first failure.
func (b *Builder) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) Build() (*Agreement, error) {
	if err := b.validateRequiredFields(); err != nil {
		return nil, err
	}
	return &Agreement{
		client:             b.client,
		amount:             b.amount,
		annualInterestRate: b.annualInterestRate,
		termMonths:         b.termMonths,
		number:             b.agreementNumber,
		startDate:          b.startDate,
		purpose:            b.purpose,
		insuranceRequired:  b.insuranceRequired,
	}, nil
}

func (b *Builder) validateRequiredFields() error {
	if b.client == nil {
		return apperrors.NewInvalidStateError("Client must be set before building")
	}
	if b.amount <= 0 {
		return apperrors.NewInvalidStateError("Loan amount must be set before building")
	}
	if b.annualInterestRate < 0 {
		return apperrors.NewInvalidStateError("Interest rate must be set before building")
	}
	if b.termMonths <= 0 {
		return apperrors.NewInvalidStateError("Term months must be set before building")
	}
	return nil
}

func WithClient(client *bank.Client) Option {
	return func(b *Builder) error { return b.SetClient(client) }
}

func WithAmount(amount float64) Option {
	return func(b *Builder) error { return b.SetAmount(amount) }
}

func WithInterestRate(rate float64) Option {
	return func(b *Builder) error { return b.SetInterestRate(rate) }
}

func WithTermMonths(months int) Option {
	return func(b *Builder) error { return b.SetTermMonths(months) }
}

func WithAgreementNumber(number string) Option {
	return func(b *Builder) error {
		b.SetAgreementNumber(number)
		return nil
	}
}

func WithStartDate(date time.Time) Option {
	return func(b *Builder) error {
		b.SetStartDate(date)
		return nil
	}
}

func WithPurpose(purpose string) Option {
	return func(b *Builder) error {
		b.SetPurpose(purpose)
		return nil
	}
}

func WithInsurance(required bool) Option {
	return func(b *Builder) error {
		b.SetInsuranceRequired(required)
		return nil
	}
}
