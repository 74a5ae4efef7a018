package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/utils/accountnum"
)

// AccountService implements account lifecycle operations: opening with quota
// and minimum-deposit enforcement, freeze/unfreeze, soft closure and the
// read-side queries.
type AccountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepository
	customerRepo portsrepo.CustomerRepository
	gate         portssvc.ConfirmationGate
	generator    *accountnum.Generator
	policy       Policy
	now          func() time.Time
}

var _ portssvc.AccountService = (*AccountService)(nil)

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, customerRepo portsrepo.CustomerRepository, gate portssvc.ConfirmationGate, generator *accountnum.Generator, policy Policy) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		gate:         gate,
		generator:    generator,
		policy:       policy,
		now:          time.Now,
	}
}

// OpenAccount opens a new account for the customer. The opening deposit is
// journaled in the same unit of work as the account row, so the account never
// exists with an unexplained balance.
func (s *AccountService) OpenAccount(ctx context.Context, params portssvc.OpenAccountParams) (*domain.Account, error) {
	if !params.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, params.AccountType)
	}
	if err := validateAmount(params.InitialDeposit, params.Currency); err != nil {
		return nil, err
	}
	minDeposit := s.policy.MinInitialDeposit[params.Currency]
	if params.InitialDeposit.LessThan(minDeposit) {
		return nil, fmt.Errorf("%w: initial deposit %s %s is below the minimum of %s %s",
			apperrors.ErrValidation, params.InitialDeposit, params.Currency, minDeposit, params.Currency)
	}

	now := s.now()
	if err := s.validateMaturity(params.AccountType, params.MaturityDate, now); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, params.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "failed to load customer for account opening", "customer_id", params.CustomerID)
		return nil, err
	}

	if err := s.checkQuota(ctx, params.CustomerID, params.AccountType, params.Currency); err != nil {
		return nil, err
	}

	accountNo, err := s.generator.Unique(ctx, s.accountRepo.AccountNoExists)
	if err != nil {
		s.LogError(ctx, err, "account number allocation failed", "customer_id", params.CustomerID)
		return nil, err
	}

	name := params.Name
	if name == "" {
		name = fmt.Sprintf("%s %s Account (%s)", customer.PossessiveName(), params.AccountType, params.Currency)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     strconv.FormatInt(params.CustomerID, 10),
		LastUpdatedAt: now,
		LastUpdatedBy: strconv.FormatInt(params.CustomerID, 10),
	}
	account := domain.Account{
		CustomerID:   params.CustomerID,
		AccountNo:    accountNo,
		Name:         name,
		Currency:     params.Currency,
		Balance:      params.InitialDeposit,
		OverLimit:    decimal.Zero,
		AccountType:  params.AccountType,
		MaturityDate: params.MaturityDate,
		AuditFields:  audit,
	}
	opening := domain.Transaction{
		Type:      domain.Deposit,
		Amount:    params.InitialDeposit,
		Status:    domain.Success,
		Remark:    "Opening deposit",
		CreatedAt: now,
	}

	created, err := s.accountRepo.SaveAccount(ctx, account, &opening)
	if err != nil {
		s.LogError(ctx, err, "failed to persist new account", "customer_id", params.CustomerID)
		return nil, err
	}

	s.LogInfo(ctx, "account opened",
		"customer_id", params.CustomerID,
		"account_id", created.AccountID,
		"account_type", string(created.AccountType),
		"currency", string(created.Currency))
	return created, nil
}

func (s *AccountService) validateMaturity(accountType domain.AccountType, maturity *time.Time, now time.Time) error {
	if accountType != domain.Fixed {
		if maturity != nil {
			return fmt.Errorf("%w: maturity date applies to Fixed accounts only", apperrors.ErrValidation)
		}
		return nil
	}
	if maturity == nil {
		return fmt.Errorf("%w: Fixed accounts require a maturity date", apperrors.ErrValidation)
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	my, mm, md := maturity.Date()
	maturityDay := time.Date(my, mm, md, 0, 0, 0, 0, now.Location())
	if !maturityDay.After(today) {
		return fmt.Errorf("%w: maturity date must be in the future", apperrors.ErrValidation)
	}
	if maturityDay.After(today.AddDate(s.policy.MaxMaturityYears, 0, 0)) {
		return fmt.Errorf("%w: maturity date may be at most %d years out", apperrors.ErrValidation, s.policy.MaxMaturityYears)
	}
	return nil
}

// checkQuota enforces the per-customer creation quotas. Saving accounts are
// counted per currency; Checking and Fixed across currencies. Closed accounts
// free their slot.
func (s *AccountService) checkQuota(ctx context.Context, customerID int64, accountType domain.AccountType, currency domain.Currency) error {
	existing, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	count := 0
	for i := range existing {
		a := &existing[i]
		if a.IsDeleted || a.AccountType != accountType {
			continue
		}
		if accountType == domain.Saving && a.Currency != currency {
			continue
		}
		count++
	}
	quota := s.policy.quotaFor(accountType)
	if count >= quota {
		if accountType == domain.Saving {
			return fmt.Errorf("%w: at most %d %s account(s) per currency allowed, %s quota already in use",
				apperrors.ErrLimitExceeded, quota, accountType, currency)
		}
		return fmt.Errorf("%w: at most %d %s account(s) allowed", apperrors.ErrLimitExceeded, quota, accountType)
	}
	return nil
}

// GetAccountByID retrieves one of the customer's accounts by identifier.
func (s *AccountService) GetAccountByID(ctx context.Context, customerID int64, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(customerID, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountByNo retrieves one of the customer's accounts by account number.
func (s *AccountService) GetAccountByNo(ctx context.Context, customerID int64, accountNo string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNo(ctx, domain.NormalizeAccountNo(accountNo))
	if err != nil {
		return nil, err
	}
	if err := requireOwner(customerID, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves every account owned by the customer.
func (s *AccountService) ListAccounts(ctx context.Context, customerID int64) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByCustomer(ctx, customerID)
}

// ListActiveAccounts retrieves the customer's accounts that are neither
// frozen nor closed.
func (s *AccountService) ListActiveAccounts(ctx context.Context, customerID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Account, 0, len(accounts))
	for i := range accounts {
		if accounts[i].Active() {
			active = append(active, accounts[i])
		}
	}
	return active, nil
}

// SetFrozen freezes or unfreezes an account addressed by account number.
// Setting the state it already has is allowed; closed accounts are rejected.
func (s *AccountService) SetFrozen(ctx context.Context, customerID int64, accountNo string, frozen bool) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNo(ctx, domain.NormalizeAccountNo(accountNo))
	if err != nil {
		return nil, err
	}
	if err := requireOwner(customerID, account); err != nil {
		return nil, err
	}
	if account.IsDeleted {
		return nil, fmt.Errorf("%w: account is closed", apperrors.ErrAccountState)
	}

	account.IsFrozen = frozen
	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = strconv.FormatInt(customerID, 10)
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update freeze state", "account_id", account.AccountID)
		return nil, err
	}

	s.LogInfo(ctx, "account freeze state changed", "account_id", account.AccountID, "frozen", frozen)
	return account, nil
}

// CloseAccount soft-deletes an account after PIN confirmation. The balance
// must be zero; money is withdrawn or transferred out first.
func (s *AccountService) CloseAccount(ctx context.Context, customerID int64, accountID int64, pin string) error {
	if err := s.gate.Confirm(ctx, customerID, pin); err != nil {
		return err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := requireOwner(customerID, account); err != nil {
		return err
	}
	if account.IsDeleted {
		return fmt.Errorf("%w: account is already closed", apperrors.ErrAccountState)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account balance must be zero before closing, current balance is %s %s",
			apperrors.ErrAccountState, account.Balance, account.Currency)
	}

	account.IsDeleted = true
	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = strconv.FormatInt(customerID, 10)
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to close account", "account_id", accountID)
		return err
	}

	s.LogInfo(ctx, "account closed", "account_id", accountID, "customer_id", customerID)
	return nil
}

// AvailableAccountTypes reports which type and currency combinations the
// customer can still open under the creation quotas.
func (s *AccountService) AvailableAccountTypes(ctx context.Context, customerID int64) ([]portssvc.AccountTypeAvailability, error) {
	existing, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	countFor := func(accountType domain.AccountType, currency domain.Currency) int {
		n := 0
		for i := range existing {
			a := &existing[i]
			if a.IsDeleted || a.AccountType != accountType {
				continue
			}
			if accountType == domain.Saving && a.Currency != currency {
				continue
			}
			n++
		}
		return n
	}

	var out []portssvc.AccountTypeAvailability
	for _, accountType := range []domain.AccountType{domain.Saving, domain.Checking, domain.Fixed} {
		for _, currency := range []domain.Currency{domain.USD, domain.KHR} {
			quota := s.policy.quotaFor(accountType)
			used := countFor(accountType, currency)
			entry := portssvc.AccountTypeAvailability{
				AccountType: accountType,
				Currency:    currency,
				Available:   used < quota,
			}
			if !entry.Available {
				entry.Reason = fmt.Sprintf("quota reached (%d of %d in use)", used, quota)
			}
			out = append(out, entry)
		}
	}
	return out, nil
}

// requireOwner rejects access to an account the customer does not own.
func requireOwner(customerID int64, account *domain.Account) error {
	if account.CustomerID != customerID {
		return fmt.Errorf("%w: account does not belong to the customer", apperrors.ErrForbidden)
	}
	return nil
}
