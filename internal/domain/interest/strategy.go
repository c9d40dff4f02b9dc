package interest

import (
	"banking-engine/internal/pkg/apperrors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindSavings Kind = "savings"
	KindVIP     Kind = "vip"
	KindLoan    Kind = "loan"
)

type Balancer interface {
	Balance() float64
}

// Strategy applies a fixed annual rate to the current balance.
type Strategy struct {
	kind Kind
	rate float64
}

var (
	Savings = Strategy{kind: KindSavings, rate: 0.03}
	VIP     = Strategy{kind: KindVIP, rate: 0.05}
	Loan    = Strategy{kind: KindLoan, rate: 0.07}
)

func (s Strategy) Kind() Kind {
	return s.kind
}

func (s Strategy) Rate() float64 {
	return s.rate
}

func (s Strategy) Calculate(account Balancer) float64 {
	return account.Balance() * s.rate
}

func (s Strategy) String() string {
	return fmt.Sprintf("%s (%.0f%%)", s.kind, s.rate*100)
}

func ParseStrategy(name string) (Strategy, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case KindSavings:
		return Savings, nil
	case KindVIP:
		return VIP, nil
	case KindLoan:
		return Loan, nil
	default:
		return Strategy{}, fmt.Errorf("%w: unknown interest strategy %q, supported: %s, %s, %s",
			apperrors.ErrInvalidArgument, name, KindSavings, KindVIP, KindLoan)
	}
}
