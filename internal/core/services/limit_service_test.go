package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/core/services"
	"github.com/meypanhawath/corebank/internal/repositories/database/memory"
)

func seedLimitAccount(t *testing.T, store *memory.Store, accountType domain.AccountType, accountNo string) *domain.Account {
	t.Helper()
	account, err := store.SaveAccount(context.Background(), domain.Account{
		CustomerID:  1,
		AccountNo:   accountNo,
		Name:        "Test Account",
		Currency:    domain.USD,
		Balance:     decimal.RequireFromString("10000.00"),
		OverLimit:   decimal.Zero,
		AccountType: accountType,
	}, nil)
	require.NoError(t, err)
	return account
}

func TestDailyRemaining_SavingTracksOutgoing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	account := seedLimitAccount(t, store, domain.Saving, "100000001")
	svc := services.NewLimitService(store.Accounts(), store.Transactions(), testPolicy())

	limit, err := svc.DailyRemaining(ctx, 1, account.AccountID)
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.True(t, limit.Remaining.Equal(decimal.RequireFromString("5000")))

	amount := decimal.RequireFromString("1200.00")
	_, err = store.SaveTransaction(ctx, domain.Transaction{
		SenderID:  account.AccountID,
		Type:      domain.Withdraw,
		Amount:    amount,
		Status:    domain.Success,
		CreatedAt: time.Now(),
	}, map[int64]decimal.Decimal{account.AccountID: amount.Neg()}, nil)
	require.NoError(t, err)

	limit, err = svc.DailyRemaining(ctx, 1, account.AccountID)
	require.NoError(t, err)
	assert.True(t, limit.Used.Equal(amount))
	assert.True(t, limit.Remaining.Equal(decimal.RequireFromString("3800")))
}

func TestDailyRemaining_YesterdayDoesNotCount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	account := seedLimitAccount(t, store, domain.Saving, "100000001")
	svc := services.NewLimitService(store.Accounts(), store.Transactions(), testPolicy())

	amount := decimal.RequireFromString("4000.00")
	_, err := store.SaveTransaction(ctx, domain.Transaction{
		SenderID:  account.AccountID,
		Type:      domain.Withdraw,
		Amount:    amount,
		Status:    domain.Success,
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}, map[int64]decimal.Decimal{account.AccountID: amount.Neg()}, nil)
	require.NoError(t, err)

	limit, err := svc.DailyRemaining(ctx, 1, account.AccountID)
	require.NoError(t, err)
	assert.True(t, limit.Used.IsZero(), "yesterday's movements are outside today's window")
	assert.True(t, limit.Remaining.Equal(decimal.RequireFromString("5000")))
}

func TestDailyRemaining_NoCapForChecking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	account := seedLimitAccount(t, store, domain.Checking, "100000001")
	svc := services.NewLimitService(store.Accounts(), store.Transactions(), testPolicy())

	limit, err := svc.DailyRemaining(ctx, 1, account.AccountID)
	require.NoError(t, err)
	assert.Nil(t, limit)
}

func TestLimitsSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	saving := seedLimitAccount(t, store, domain.Saving, "100000001")
	checking := seedLimitAccount(t, store, domain.Checking, "100000002")
	svc := services.NewLimitService(store.Accounts(), store.Transactions(), testPolicy())

	entries, err := svc.LimitsSummary(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := make(map[int64]int)
	for i, e := range entries {
		byID[e.AccountID] = i
	}
	assert.NotNil(t, entries[byID[saving.AccountID]].Limit)
	assert.Nil(t, entries[byID[checking.AccountID]].Limit)
}
