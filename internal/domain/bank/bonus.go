package bank

// BaseBonusPercentage is the bonus every account starts with before the
// bonus chain adds its contribution.
const BaseBonusPercentage = 1.0

type Snapshot struct {
	Type    AccountType
	Balance float64
}

// BonusRule returns an additional bonus percentage for an account snapshot.
type BonusRule func(Snapshot) int

// BonusChain sums the contributions of its rules in order.
type BonusChain []BonusRule

func (c BonusChain) Additional(s Snapshot) int {
	total := 0
	for _, rule := range c {
		total += rule(s)
	}
	return total
}

func BaseBonus(Snapshot) int {
	return 0
}

func SavingsBalanceBonus(s Snapshot) int {
	if s.Type != Savings {
		return 0
	}
	switch {
	case s.Balance > 100_000:
		return 2
	case s.Balance > 50_000:
		return 1
	default:
		return 0
	}
}

func DepositBalanceBonus(s Snapshot) int {
	if s.Type != Deposit {
		return 0
	}
	switch {
	case s.Balance > 500_000:
		return 2
	case s.Balance > 250_000:
		return 1
	default:
		return 0
	}
}

// BonusChainFor wraps the base rule with the one rule matching t. Credit
// accounts get the base rule alone.
func BonusChainFor(t AccountType) BonusChain {
	chain := BonusChain{BaseBonus}
	switch t {
	case Savings:
		chain = append(chain, SavingsBalanceBonus)
	case Deposit:
		chain = append(chain, DepositBalanceBonus)
	}
	return chain
}
