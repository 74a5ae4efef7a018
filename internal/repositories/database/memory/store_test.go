package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	"github.com/meypanhawath/corebank/internal/repositories/database/memory"
)

func seedAccount(t *testing.T, store *memory.Store, accountNo string, balance string) *domain.Account {
	t.Helper()
	account, err := store.SaveAccount(context.Background(), domain.Account{
		CustomerID:  1,
		AccountNo:   accountNo,
		Name:        "Test Account",
		Currency:    domain.USD,
		Balance:     decimal.RequireFromString(balance),
		OverLimit:   decimal.Zero,
		AccountType: domain.Checking,
	}, nil)
	require.NoError(t, err)
	return account
}

func TestConcurrentDeposits_NoLostUpdates(t *testing.T) {
	store := memory.NewStore()
	account := seedAccount(t, store, "100000001", "100.00")

	const n = 100
	one := decimal.RequireFromString("1.00")

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := store.SaveTransaction(context.Background(), domain.Transaction{
				SenderID:  account.AccountID,
				Type:      domain.Deposit,
				Amount:    one,
				Status:    domain.Success,
				CreatedAt: time.Now(),
			}, map[int64]decimal.Decimal{account.AccountID: one}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := store.FindAccountByID(context.Background(), account.AccountID)
	require.NoError(t, err)
	assert.True(t, final.Balance.Equal(decimal.RequireFromString("200.00")), "got %s", final.Balance)

	txns, err := store.ListTransactionsByAccount(context.Background(), account.AccountID, n+1, 0)
	require.NoError(t, err)
	assert.Len(t, txns, n)
}

func TestConcurrentOpposingTransfers_NoDeadlock(t *testing.T) {
	store := memory.NewStore()
	a := seedAccount(t, store, "100000001", "1000.00")
	b := seedAccount(t, store, "100000002", "1000.00")

	const rounds = 200
	one := decimal.RequireFromString("1.00")

	transfer := func(from, to int64) {
		_, err := store.SaveTransaction(context.Background(), domain.Transaction{
			SenderID:   from,
			ReceiverID: &to,
			Type:       domain.Transfer,
			Amount:     one,
			Status:     domain.Success,
			CreatedAt:  time.Now(),
		}, map[int64]decimal.Decimal{from: one.Neg(), to: one}, []portsrepo.MovementGuard{
			{AccountID: from, Floor: decimal.Zero},
		})
		assert.NoError(t, err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			transfer(a.AccountID, b.AccountID)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			transfer(b.AccountID, a.AccountID)
		}
	}()
	wg.Wait()

	finalA, err := store.FindAccountByID(context.Background(), a.AccountID)
	require.NoError(t, err)
	finalB, err := store.FindAccountByID(context.Background(), b.AccountID)
	require.NoError(t, err)

	// Equal opposing volumes cancel out and no money is created or lost.
	assert.True(t, finalA.Balance.Equal(decimal.RequireFromString("1000.00")), "got %s", finalA.Balance)
	assert.True(t, finalB.Balance.Equal(decimal.RequireFromString("1000.00")), "got %s", finalB.Balance)
}

func TestSaveTransaction_GuardsHoldUnderConcurrency(t *testing.T) {
	store := memory.NewStore()
	account := seedAccount(t, store, "100000001", "10.00")

	// 20 concurrent withdrawals of 1.00 against a floor of zero: exactly 10
	// can settle.
	const attempts = 20
	one := decimal.RequireFromString("1.00")

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := store.SaveTransaction(context.Background(), domain.Transaction{
				SenderID:  account.AccountID,
				Type:      domain.Withdraw,
				Amount:    one,
				Status:    domain.Success,
				CreatedAt: time.Now(),
			}, map[int64]decimal.Decimal{account.AccountID: one.Neg()}, []portsrepo.MovementGuard{
				{AccountID: account.AccountID, Floor: decimal.Zero},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	final, err := store.FindAccountByID(context.Background(), account.AccountID)
	require.NoError(t, err)
	assert.True(t, final.Balance.IsZero(), "got %s", final.Balance)
}

func TestSaveTransaction_DailyCapGuard(t *testing.T) {
	store := memory.NewStore()
	account := seedAccount(t, store, "100000001", "10000.00")

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	cap := decimal.RequireFromString("5000.00")

	withdraw := func(amount string) error {
		amt := decimal.RequireFromString(amount)
		_, err := store.SaveTransaction(context.Background(), domain.Transaction{
			SenderID:  account.AccountID,
			Type:      domain.Withdraw,
			Amount:    amt,
			Status:    domain.Success,
			CreatedAt: now,
		}, map[int64]decimal.Decimal{account.AccountID: amt.Neg()}, []portsrepo.MovementGuard{
			{AccountID: account.AccountID, Floor: decimal.Zero, DailyCap: &cap, DayStart: dayStart, DayEnd: dayEnd},
		})
		return err
	}

	require.NoError(t, withdraw("4990.00"))
	err := withdraw("5000.00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10")
	require.NoError(t, withdraw("10.00"))
}
