package loan

import (
	"banking-engine/internal/domain/bank"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Agreement is immutable once built. Payments are derived on demand.
type Agreement struct {
	client             *bank.Client
	amount             float64
	annualInterestRate float64
	termMonths         int
	number             string
	startDate          time.Time
	purpose            string
	insuranceRequired  bool
}

func (a *Agreement) Client() *bank.Client        { return a.client }
func (a *Agreement) Amount() float64             { return a.amount }
func (a *Agreement) AnnualInterestRate() float64 { return a.annualInterestRate }
func (a *Agreement) TermMonths() int             { return a.termMonths }
func (a *Agreement) Number() string              { return a.number }
func (a *Agreement) StartDate() time.Time        { return a.startDate }
func (a *Agreement) Purpose() string             { return a.purpose }
func (a *Agreement) InsuranceRequired() bool     { return a.insuranceRequired }

func (a *Agreement) monthlyRate() float64 {
	return a.annualInterestRate / 100 / 12
}

// MonthlyPayment uses the standard amortizing-loan formula. An interest-free
// loan is repaid in equal parts of the principal.
func (a *Agreement) MonthlyPayment() float64 {
	n := float64(a.termMonths)
	r := a.monthlyRate()
	if r == 0 {
		return a.amount / n
	}
	growth := math.Pow(1+r, n)
	return a.amount * r * growth / (growth - 1)
}

func (a *Agreement) TotalPayment() float64 {
	return a.MonthlyPayment() * float64(a.termMonths)
}

func (a *Agreement) TotalInterest() float64 {
	return a.TotalPayment() - a.amount
}

func (a *Agreement) String() string {
	return fmt.Sprintf("LoanAgreement{agreementNumber='%s', client=%s, amount=%v, interestRate=%v, termMonths=%d}",
		a.number, a.client.Name(), a.amount, a.annualInterestRate, a.termMonths)
}

func (a *Agreement) Details() string {
	insurance := "Not Required"
	if a.insuranceRequired {
		insurance = "Required"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Agreement Number: %s\n", a.number)
	fmt.Fprintf(&b, "Client: %s\n", a.client.Name())
	fmt.Fprintf(&b, "Loan Amount: %s\n", formatMoney(a.amount))
	fmt.Fprintf(&b, "Interest Rate: %s%%\n", decimal.NewFromFloat(a.annualInterestRate).String())
	fmt.Fprintf(&b, "Term: %d months (%d years)\n", a.termMonths, a.termMonths/12)
	fmt.Fprintf(&b, "Start Date: %s\n", a.startDate.Format("02.01.2006"))
	fmt.Fprintf(&b, "Purpose: %s\n", a.purpose)
	fmt.Fprintf(&b, "Insurance: %s\n", insurance)
	fmt.Fprintf(&b, "Monthly Payment: %s\n", formatMoney(a.MonthlyPayment()))
	fmt.Fprintf(&b, "Total Payment: %s\n", formatMoney(a.TotalPayment()))
	fmt.Fprintf(&b, "Total Interest: %s\n", formatMoney(a.TotalInterest()))
	return b.String()
}

// formatMoney renders v with two decimals and comma thousands separators.
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return sign + grouped.String() + "." + frac
}
