package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatured(t *testing.T) {
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.Local)

	t.Run("no maturity date is always matured", func(t *testing.T) {
		a := Account{AccountType: Saving}
		assert.True(t, a.Matured(now))
	})

	t.Run("future maturity is not matured", func(t *testing.T) {
		maturity := now.AddDate(0, 0, 1)
		a := Account{AccountType: Fixed, MaturityDate: &maturity}
		assert.False(t, a.Matured(now))
	})

	t.Run("maturity today counts as matured", func(t *testing.T) {
		maturity := time.Date(2026, time.March, 15, 23, 59, 0, 0, time.Local)
		a := Account{AccountType: Fixed, MaturityDate: &maturity}
		assert.True(t, a.Matured(now))
	})

	t.Run("past maturity is matured", func(t *testing.T) {
		maturity := now.AddDate(-1, 0, 0)
		a := Account{AccountType: Fixed, MaturityDate: &maturity}
		assert.True(t, a.Matured(now))
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "Active", (&Account{}).Status())
	assert.Equal(t, "Frozen", (&Account{IsFrozen: true}).Status())
	assert.Equal(t, "Deleted", (&Account{IsDeleted: true}).Status())
	assert.Equal(t, "Deleted", (&Account{IsFrozen: true, IsDeleted: true}).Status())
}

func TestFormattedAccountNo(t *testing.T) {
	a := Account{AccountNo: "123456789"}
	assert.Equal(t, "123 456 789", a.FormattedAccountNo())

	malformed := Account{AccountNo: "12345"}
	assert.Equal(t, "12345", malformed.FormattedAccountNo())
}

func TestPossessiveName(t *testing.T) {
	assert.Equal(t, "Chantha's", Customer{FullName: "Chantha"}.PossessiveName())
	assert.Equal(t, "James'", Customer{FullName: "James"}.PossessiveName())
	assert.Equal(t, "NIKLAS'", Customer{FullName: "NIKLAS"}.PossessiveName())
}

func TestCurrencyMinorScale(t *testing.T) {
	assert.Equal(t, int32(2), USD.MinorScale())
	assert.Equal(t, int32(0), KHR.MinorScale())
}

func TestTransactionOutgoing(t *testing.T) {
	deposit := Transaction{SenderID: 7, Type: Deposit}
	assert.False(t, deposit.Outgoing(7))

	withdraw := Transaction{SenderID: 7, Type: Withdraw}
	assert.True(t, withdraw.Outgoing(7))

	transfer := Transaction{SenderID: 7, Type: Transfer}
	assert.True(t, transfer.Outgoing(7))
	assert.False(t, transfer.Outgoing(8))
}
