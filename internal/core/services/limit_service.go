package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
)

// LimitService is the read side of daily limit enforcement: it aggregates
// today's successful outgoing movements over the journal and subtracts them
// from the per-currency cap. Only Saving accounts carry a cap.
type LimitService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	policy      Policy
	now         func() time.Time
}

var _ portssvc.LimitService = (*LimitService)(nil)

// NewLimitService creates a new LimitService.
func NewLimitService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository, policy Policy) *LimitService {
	return &LimitService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		policy:      policy,
		now:         time.Now,
	}
}

// dailyWindow returns the local calendar day containing now as a
// [start, end) interval.
func dailyWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// DailyRemaining reports today's remaining outgoing allowance for one of the
// customer's accounts, or nil for account types without a cap.
func (s *LimitService) DailyRemaining(ctx context.Context, customerID int64, accountID int64) (*portssvc.DailyLimit, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(customerID, account); err != nil {
		return nil, err
	}
	return s.limitFor(ctx, account)
}

// LimitsSummary reports the daily allowance of every account the customer owns.
func (s *LimitService) LimitsSummary(ctx context.Context, customerID int64) ([]portssvc.AccountLimit, error) {
	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]portssvc.AccountLimit, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		entry := portssvc.AccountLimit{
			AccountID:   account.AccountID,
			AccountNo:   account.AccountNo,
			AccountType: account.AccountType,
		}
		if !account.IsDeleted {
			limit, err := s.limitFor(ctx, account)
			if err != nil {
				return nil, err
			}
			entry.Limit = limit
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *LimitService) limitFor(ctx context.Context, account *domain.Account) (*portssvc.DailyLimit, error) {
	if account.AccountType != domain.Saving {
		return nil, nil
	}
	cap := s.policy.SavingDailyLimit[account.Currency]
	from, to := dailyWindow(s.now())
	used, err := s.txnRepo.SumOutgoing(ctx, account.AccountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to aggregate daily outgoing total", "account_id", account.AccountID)
		return nil, err
	}
	remaining := cap.Sub(used)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &portssvc.DailyLimit{
		Currency:  account.Currency,
		Limit:     cap,
		Used:      used,
		Remaining: remaining,
	}, nil
}
