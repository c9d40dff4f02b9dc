package bank

import (
	"banking-engine/internal/pkg/apperrors"
	"fmt"
	"strings"
)

type AccountType string

const (
	Savings AccountType = "SAVINGS"
	Deposit AccountType = "DEPOSIT"
	Credit  AccountType = "CREDIT"
)

func (t AccountType) Description() string {
	switch t {
	case Savings:
		return "Savings"
	case Deposit:
		return "Deposit"
	case Credit:
		return "Credit"
	default:
		return string(t)
	}
}

func (t AccountType) Valid() bool {
	return t == Savings || t == Deposit || t == Credit
}

func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrInvalidArgument, s)
	}
	return t, nil
}
