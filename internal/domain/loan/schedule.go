package loan

import (
	"banking-engine/internal/pkg/apperrors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Installment struct {
	Month     int
	DueDate   time.Time
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Remaining decimal.Decimal
}

// Schedule splits the agreement into monthly installments rounded to cents.
// The last installment absorbs rounding so the remaining principal ends at zero.
func (a *Agreement) Schedule() ([]Installment, error) {
	if a.termMonths <= 0 || a.amount <= 0 {
		return nil, fmt.Errorf("%w: invalid loan terms for schedule generation", apperrors.ErrInvalidArgument)
	}

	rate := decimal.NewFromFloat(a.monthlyRate())
	payment := decimal.NewFromFloat(a.MonthlyPayment()).Round(2)
	remaining := decimal.NewFromFloat(a.amount).Round(2)

	schedule := make([]Installment, 0, a.termMonths)
	for month := 1; month <= a.termMonths; month++ {
		interest := remaining.Mul(rate).Round(2)
		principal := payment.Sub(interest)
		if month == a.termMonths || principal.GreaterThan(remaining) {
			principal = remaining
		}
		remaining = remaining.Sub(principal)

		schedule = append(schedule, Installment{
			Month:     month,
			DueDate:   a.startDate.AddDate(0, month, 0),
			Payment:   principal.Add(interest),
			Principal: principal,
			Interest:  interest,
			Remaining: remaining,
		})
	}

	if !remaining.IsZero() {
		return nil, fmt.Errorf("%w: schedule generation failed sanity check - remaining principal %s",
			apperrors.ErrInternalServer, remaining.StringFixed(2))
	}
	return schedule, nil
}
