package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionMessage(t *testing.T) {
	t.Run("five field summary", func(t *testing.T) {
		msg := Transaction{
			Client:    "Ivanov Ivan",
			Account:   "Main",
			Operation: "deposit",
			Amount:    1500,
			Balance:   2500.5,
		}.Message()

		assert.Equal(t, "Client: Ivanov Ivan | Account: Main | Operation: deposit | Amount: 1500.00 | Balance left: 2500.50", msg)
	})

	t.Run("payment summary carries bonus", func(t *testing.T) {
		bonus := 10.0
		msg := Transaction{
			Client:    "Ivanov Ivan",
			Account:   "Main",
			Operation: "payment",
			Amount:    1000,
			Balance:   9010,
			Bonus:     &bonus,
		}.Message()

		assert.Equal(t, "Client: Ivanov Ivan | Account: Main | Operation: payment | Amount: 1000.00 | Bonus: +10.00 | Balance left: 9010.00", msg)
	})
}

func TestBankNotice(t *testing.T) {
	assert.Equal(t, "[BANK NOTIFICATION]: maintenance tonight", BankNotice("maintenance tonight"))
}
