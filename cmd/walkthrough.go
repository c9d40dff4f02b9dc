package main

import (
	"banking-engine/internal/banking"
	"banking-engine/internal/domain/bank"
	"banking-engine/internal/domain/interest"
	"banking-engine/internal/domain/loan"
	"context"
	"fmt"
	"io"
	"log/slog"
)

// runWalkthrough drives every account, interest, loan and report operation
// once against the live hub so a fresh deployment shows its wiring on start.
func runWalkthrough(ctx context.Context, svc banking.Service, out io.Writer, logger *slog.Logger) {
	logger = logger.With("component", "walkthrough")

	client := svc.RegisterClient(ctx, "Tulegenov", "Arman", "arman@example.com", "+7 701 000 0000")
	fmt.Fprintln(out, client.Info())

	savings, err := svc.OpenAccount(ctx, client, bank.Savings, "Main savings")
	if err != nil {
		logger.Error("Failed to open savings account", "error", err)
		return
	}
	credit, err := svc.OpenAccount(ctx, client, bank.Credit, "Everyday card")
	if err != nil {
		logger.Error("Failed to open credit account", "error", err)
		return
	}

	savings.Deposit(ctx, 150000)
	if err := savings.Withdraw(ctx, 20000); err != nil {
		logger.Warn("Withdrawal refused", "error", err)
	}
	if err := savings.Withdraw(ctx, 1000000); err != nil {
		logger.Warn("Withdrawal refused", "error", err)
	}
	if err := svc.Transfer(ctx, savings, credit, 30000); err != nil {
		logger.Warn("Transfer refused", "error", err)
	}
	if err := credit.Pay(ctx, 10000); err != nil {
		logger.Warn("Payment refused", "error", err)
	}

	for _, strategy := range []interest.Strategy{interest.Savings, interest.VIP} {
		if _, err := svc.ApplyInterest(ctx, savings, strategy); err != nil {
			logger.Error("Failed to apply interest", "strategy", strategy.String(), "error", err)
		}
	}
	fmt.Fprintln(out, savings.Info())
	fmt.Fprintln(out, credit.Info())

	if agreement, err := svc.CreateLoan(ctx, client, 500000); err != nil {
		logger.Error("Failed to create personal loan", "error", err)
	} else {
		fmt.Fprintln(out, agreement.Details())
	}

	director := loan.NewDirector()
	presets := []func() (*loan.Agreement, error){
		func() (*loan.Agreement, error) { return director.ConstructStandardLoan(client, 500000) },
		func() (*loan.Agreement, error) { return director.ConstructMortgageLoan(client, 25000000) },
		func() (*loan.Agreement, error) { return director.ConstructCarLoan(client, 8000000) },
		func() (*loan.Agreement, error) { return director.ConstructBusinessLoan(client, 50000000) },
		func() (*loan.Agreement, error) {
			return director.ConstructCustomLoan(client, 1200000, 11.5, 24, "Home renovation")
		},
	}
	for _, construct := range presets {
		agreement, err := construct()
		if err != nil {
			logger.Error("Failed to construct loan", "error", err)
			continue
		}
		fmt.Fprintln(out, agreement.String())
	}

	for _, role := range []string{"client", "bank", "audit"} {
		if err := svc.GenerateReport(ctx, out, role); err != nil {
			logger.Error("Failed to generate report", "role", role, "error", err)
		}
	}

	svc.NotifyClients(ctx, "Scheduled maintenance tonight from 02:00 to 03:00.")

	for _, device := range svc.Devices() {
		fmt.Fprintln(out, device.String())
	}
}
