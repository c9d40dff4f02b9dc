// Package report renders the fixed-text reports available to each user role.
package report

import (
	"banking-engine/internal/pkg/apperrors"
	"fmt"
	"io"
	"strings"
)

const (
	RoleClient = "client"
	RoleBank   = "bank"
	RoleAudit  = "audit"
)

type Report interface {
	Type() string
	Generate(w io.Writer) error
}

type fixedReport struct {
	reportType string
	title      string
	lines      []string
}

func (r *fixedReport) Type() string {
	return r.reportType
}

func (r *fixedReport) Generate(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", r.title)
	for _, line := range r.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// NewReport picks the report for role, ignoring case and surrounding spaces.
func NewReport(role string) (Report, error) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		return nil, fmt.Errorf("%w: user role cannot be empty", apperrors.ErrInvalidArgument)
	}

	switch normalized {
	case RoleClient:
		return &fixedReport{
			reportType: "Client Report",
			title:      "CLIENT ACCOUNT REPORT",
			lines: []string{
				"Account Balance: 10,500.00",
				"Recent Transactions:",
				"  - Deposit: +5,000.00",
				"  - Withdrawal: -1,500.00",
				"  - Payment: -200.00",
				"Bonus Balance: 125.50",
			},
		}, nil
	case RoleBank:
		return &fixedReport{
			reportType: "Bank Operations Report",
			title:      "BANK MANAGEMENT REPORT",
			lines: []string{
				"Total Accounts: 1,547",
				"Total Deposits: 45,780,250.00",
				"Total Withdrawals: 12,340,150.00",
				"Active Clients: 892",
				"Loan Portfolio: 23,500,000.00",
			},
		}, nil
	case RoleAudit:
		return &fixedReport{
			reportType: "Audit & Compliance Report",
			title:      "AUDIT & COMPLIANCE REPORT",
			lines: []string{
				"Compliance Status: PASSED",
				"Flagged Transactions: 3",
				"Security Incidents: 0",
				"Reviewed Accounts: 245",
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown user role: %s. Supported roles: %s, %s, %s",
			apperrors.ErrInvalidArgument, role, RoleClient, RoleBank, RoleAudit)
	}
}
