package interest

import (
	"banking-engine/internal/infrastructure/monitoring"
	"banking-engine/internal/pkg/apperrors"
	"fmt"
)

// Calculator runs the active strategy. It never changes the account; crediting
// the result is up to the caller.
type Calculator struct {
	strategy *Strategy
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// SetStrategy replaces the active strategy. The zero Strategy is rejected and
// leaves the current one in place.
func (c *Calculator) SetStrategy(s Strategy) error {
	if s.kind == "" {
		return fmt.Errorf("%w: interest strategy is not configured", apperrors.ErrInvalidArgument)
	}
	c.strategy = &s
	return nil
}

func (c *Calculator) Strategy() (Strategy, bool) {
	if c.strategy == nil {
		return Strategy{}, false
	}
	return *c.strategy, true
}

func (c *Calculator) Execute(account Balancer) (float64, error) {
	if c.strategy == nil {
		return 0, apperrors.NewInvalidStateError("Interest strategy is not set")
	}
	monitoring.RecordInterestCalculation(string(c.strategy.kind))
	return c.strategy.Calculate(account), nil
}
