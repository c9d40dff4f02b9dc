package notification

import "fmt"

const bankNotificationPrefix = "[BANK NOTIFICATION]: "

type Transaction struct {
	Client    string
	Account   string
	Operation string
	Amount    float64
	Balance   float64
	Bonus     *float64
}

func (t Transaction) Message() string {
	if t.Bonus != nil {
		return fmt.Sprintf("Client: %s | Account: %s | Operation: %s | Amount: %.2f | Bonus: +%.2f | Balance left: %.2f",
			t.Client, t.Account, t.Operation, t.Amount, *t.Bonus, t.Balance)
	}
	return fmt.Sprintf("Client: %s | Account: %s | Operation: %s | Amount: %.2f | Balance left: %.2f",
		t.Client, t.Account, t.Operation, t.Amount, t.Balance)
}

func BankNotice(message string) string {
	return bankNotificationPrefix + message
}
