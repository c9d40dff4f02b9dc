package loan

import (
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/pkg/apperrors"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient() *bank.Client {
	return bank.NewClient("Nurlanov", "Aidos", "aidos@example.com", "+7 705 123 4567")
}

func TestNewBuilder_Defaults(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	b := newBuilderAt(now, func(n int) int {
		assert.Equal(t, 9000, n)
		return 234
	})

	assert.Equal(t, "LOAN-20260314-1234", b.agreementNumber)
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), b.startDate)
	assert.Equal(t, DefaultPurpose, b.purpose)
	assert.False(t, b.insuranceRequired)
}

func TestNewBuilder_AgreementNumberFormat(t *testing.T) {
	b := NewBuilder()
	assert.Regexp(t, regexp.MustCompile(`^LOAN-\d{8}-[1-9]\d{3}$`), b.agreementNumber)
}

func TestBuilder_SetterValidation(t *testing.T) {
	tests := []struct {
		name  string
		apply func(b *Builder) error
		field string
	}{
		{"nil client", func(b *Builder) error { return b.SetClient(nil) }, "client"},
		{"negative amount", func(b *Builder) error { return b.SetAmount(-1) }, "amount"},
		{"zero amount", func(b *Builder) error { return b.SetAmount(0) }, "amount"},
		{"NaN amount", func(b *Builder) error { return b.SetAmount(math.NaN()) }, "amount"},
		{"infinite amount", func(b *Builder) error { return b.SetAmount(math.Inf(1)) }, "amount"},
		{"rate above 100", func(b *Builder) error { return b.SetInterestRate(150) }, "annualInterestRate"},
		{"negative rate", func(b *Builder) error { return b.SetInterestRate(-0.1) }, "annualInterestRate"},
		{"NaN rate", func(b *Builder) error { return b.SetInterestRate(math.NaN()) }, "annualInterestRate"},
		{"infinite rate", func(b *Builder) error { return b.SetInterestRate(math.Inf(1)) }, "annualInterestRate"},
		{"zero term", func(b *Builder) error { return b.SetTermMonths(0) }, "termMonths"},
		{"negative term", func(b *Builder) error { return b.SetTermMonths(-12) }, "termMonths"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.apply(NewBuilder())

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.False(t, errors.Is(err, apperrors.ErrInvalidState))
			var vErr *apperrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestBuilder_NonFiniteInputsNeverReachAgreement(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetClient(newClient()))
	require.NoError(t, b.SetTermMonths(12))

	assert.Error(t, b.SetAmount(math.NaN()))
	assert.Error(t, b.SetInterestRate(math.NaN()))

	_, err := b.Build()
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))

	require.NoError(t, b.SetAmount(12_000))
	require.NoError(t, b.SetInterestRate(12))
	agreement, err := b.Build()
	require.NoError(t, err)
	assert.NotPanics(t, func() { _ = agreement.Details() })
	_, err = agreement.Schedule()
	assert.NoError(t, err)
}

func TestBuilder_RateBoundsAreInclusive(t *testing.T) {
	b := NewBuilder()
	assert.NoError(t, b.SetInterestRate(0))
	assert.NoError(t, b.SetInterestRate(100))
}

func TestBuilder_FailedSetterKeepsPreviousValue(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetAmount(1000))
	require.Error(t, b.SetAmount(-5))
	assert.Equal(t, 1000.0, b.amount)
}

func TestBuilder_BuildRequiresFields(t *testing.T) {
	client := newClient()
	tests := []struct {
		name    string
		opts    []Option
		message string
	}{
		{"nothing set", nil, "Client must be set before building"},
		{"missing amount", []Option{WithClient(client)}, "Loan amount must be set before building"},
		{"missing term", []Option{WithClient(client), WithAmount(1000), WithInterestRate(5)}, "Term months must be set before building"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, b.Apply(tt.opts...))

			agreement, err := b.Build()

			assert.Nil(t, agreement)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
			assert.False(t, errors.Is(err, apperrors.ErrValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuilder_BuildWithUnsetRateUsesZero(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Apply(WithClient(newClient()), WithAmount(1200), WithTermMonths(12)))

	agreement, err := b.Build()

	require.NoError(t, err)
	assert.Equal(t, 0.0, agreement.AnnualInterestRate())
	assert.InDelta(t, 100.0, agreement.MonthlyPayment(), 1e-9)
}

func TestBuilder_Build(t *testing.T) {
	client := newClient()
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	b := NewBuilder()

	err := b.Apply(
		WithClient(client),
		WithAmount(500_000),
		WithInterestRate(7.5),
		WithTermMonths(60),
		WithAgreementNumber("LOAN-CUSTOM-1"),
		WithStartDate(start),
		WithPurpose("Home renovation"),
		WithInsurance(true),
	)
	require.NoError(t, err)

	agreement, err := b.Build()
	require.NoError(t, err)

	assert.Same(t, client, agreement.Client())
	assert.Equal(t, 500_000.0, agreement.Amount())
	assert.Equal(t, 7.5, agreement.AnnualInterestRate())
	assert.Equal(t, 60, agreement.TermMonths())
	assert.Equal(t, "LOAN-CUSTOM-1", agreement.Number())
	assert.Equal(t, start, agreement.StartDate())
	assert.Equal(t, "Home renovation", agreement.Purpose())
	assert.True(t, agreement.InsuranceRequired())

	// Standard amortization over r = 7.5/12/100 and n = 60.
	assert.InDelta(t, 10_018.97, agreement.MonthlyPayment(), 0.01)
	assert.InDelta(t, agreement.MonthlyPayment()*60, agreement.TotalPayment(), 1e-6)
	assert.InDelta(t, agreement.TotalPayment()-500_000, agreement.TotalInterest(), 1e-6)
}

func TestBuilder_AgreementIsDetachedFromBuilder(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Apply(WithClient(newClient()), WithAmount(1000), WithInterestRate(5), WithTermMonths(10)))
	agreement, err := b.Build()
	require.NoError(t, err)

	require.NoError(t, b.SetAmount(9999))
	b.SetPurpose("changed")

	assert.Equal(t, 1000.0, agreement.Amount())
	assert.Equal(t, DefaultPurpose, agreement.Purpose())
}

func TestBuilder_ApplyStopsAtFirstError(t *testing.T) {
	b := NewBuilder()
	err := b.Apply(WithAmount(100), WithTermMonths(0), WithInterestRate(5))

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, 100.0, b.amount)
	assert.Equal(t, 0.0, b.annualInterestRate, "options after the failure are not applied")
}
