package batch

import (
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/domain/interest"
	"banking-engine/internal/infrastructure/monitoring"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type InterestApplier interface {
	Accounts() []*bank.Account
	ApplyInterest(ctx context.Context, account *bank.Account, strategy interest.Strategy) (float64, error)
}

type InterestAccrualJob struct {
	applier  InterestApplier
	strategy interest.Strategy
	logger   *slog.Logger
}

func NewInterestAccrualJob(applier InterestApplier, strategy interest.Strategy, logger *slog.Logger) *InterestAccrualJob {
	if applier == nil || logger == nil {
		panic("InterestAccrualJob dependencies cannot be nil")
	}
	return &InterestAccrualJob{
		applier:  applier,
		strategy: strategy,
		logger:   logger.With("job", "InterestAccrual", "strategy", string(strategy.Kind())),
	}
}

// Run credits interest to every registered account, one at a time. It stops
// early when ctx is done.
func (j *InterestAccrualJob) Run(ctx context.Context) error {
	startTime := time.Now()
	defer func() { monitoring.RecordInterestAccrual(time.Since(startTime)) }()
	j.logger.InfoContext(ctx, "Starting interest accrual job.")

	accounts := j.applier.Accounts()
	if len(accounts) == 0 {
		j.logger.InfoContext(ctx, "No accounts found to process.")
		return nil
	}

	var processed, errorCount int
	var credited float64
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			j.logger.WarnContext(ctx, "Interest accrual job interrupted", slog.Int("processed", processed), slog.Any("error", err))
			return fmt.Errorf("interest accrual interrupted after %d accounts: %w", processed, err)
		}

		amount, err := j.applier.ApplyInterest(ctx, account, j.strategy)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to apply interest", slog.Int64("accountID", account.ID()), slog.Any("error", err))
			errorCount++
			continue
		}
		processed++
		credited += amount
	}

	j.logger.InfoContext(ctx, "Interest accrual job finished.",
		slog.Int("processed", processed),
		slog.Int("errors", errorCount),
		slog.Float64("credited", credited),
		slog.Duration("duration", time.Since(startTime)),
	)
	if errorCount > 0 {
		return fmt.Errorf("interest accrual finished with %d errors", errorCount)
	}
	return nil
}
