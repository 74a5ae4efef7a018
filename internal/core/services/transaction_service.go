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
)

const defaultHistoryLimit = 50

// TransactionService orchestrates money movements. Every movement runs the
// same pipeline: validate inputs, confirm the PIN where required, convert
// currencies, pre-check balances and caps, then hand the whole delta set to
// the store which commits it atomically and re-validates under lock.
type TransactionService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
	exchange    portssvc.ExchangeService
	gate        portssvc.ConfirmationGate
	policy      Policy
	now         func() time.Time
}

var _ portssvc.TransactionService = (*TransactionService)(nil)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository, exchange portssvc.ExchangeService, gate portssvc.ConfirmationGate, policy Policy) *TransactionService {
	return &TransactionService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		exchange:    exchange,
		gate:        gate,
		policy:      policy,
		now:         time.Now,
	}
}

// Deposit credits one of the customer's accounts. Amounts in a different
// currency are converted at the fixed rate; deposits into an unmatured Fixed
// account are allowed.
func (s *TransactionService) Deposit(ctx context.Context, customerID int64, params portssvc.DepositParams) (*domain.Transaction, error) {
	if err := validateAmount(params.Amount, params.Currency); err != nil {
		return nil, err
	}
	account, err := s.ownedAccount(ctx, customerID, params.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.Active() {
		return nil, accountStateError(account)
	}

	credited, remark, err := s.convertWithRemark(params.Amount, params.Currency, account.Currency, params.Remark)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		SenderID:  account.AccountID,
		Type:      domain.Deposit,
		Amount:    credited,
		Status:    domain.Success,
		Remark:    remark,
		CreatedAt: s.now(),
	}
	changes := map[int64]decimal.Decimal{account.AccountID: credited}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn, changes, nil)
	if err != nil {
		s.LogError(ctx, err, "deposit failed", "account_id", account.AccountID)
		return nil, err
	}
	s.LogInfo(ctx, "deposit settled", "account_id", account.AccountID, "transaction_id", saved.TransactionID)
	return saved, nil
}

// Withdraw debits one of the customer's accounts after PIN confirmation.
func (s *TransactionService) Withdraw(ctx context.Context, customerID int64, params portssvc.WithdrawParams) (*domain.Transaction, error) {
	if err := validateAmount(params.Amount, params.Currency); err != nil {
		return nil, err
	}
	if err := s.gate.Confirm(ctx, customerID, params.Pin); err != nil {
		return nil, err
	}
	account, err := s.ownedAccount(ctx, customerID, params.AccountID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDebitable(account); err != nil {
		return nil, err
	}

	debit, remark, err := s.convertWithRemark(params.Amount, params.Currency, account.Currency, params.Remark)
	if err != nil {
		return nil, err
	}
	guard, err := s.debitGuard(ctx, account, debit)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		SenderID:  account.AccountID,
		Type:      domain.Withdraw,
		Amount:    debit,
		Status:    domain.Success,
		Remark:    remark,
		CreatedAt: s.now(),
	}
	changes := map[int64]decimal.Decimal{account.AccountID: debit.Neg()}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn, changes, []portsrepo.MovementGuard{guard})
	if err != nil {
		s.LogError(ctx, err, "withdrawal failed", "account_id", account.AccountID)
		return nil, err
	}
	s.LogInfo(ctx, "withdrawal settled", "account_id", account.AccountID, "transaction_id", saved.TransactionID)
	return saved, nil
}

// Transfer moves money from one of the customer's accounts to any other
// account. The debit, the credit and the journal record commit as one unit.
func (s *TransactionService) Transfer(ctx context.Context, customerID int64, params portssvc.TransferParams) (*domain.Transaction, error) {
	if err := validateAmount(params.Amount, params.Currency); err != nil {
		return nil, err
	}
	if err := s.gate.Confirm(ctx, customerID, params.Pin); err != nil {
		return nil, err
	}
	sender, err := s.ownedAccount(ctx, customerID, params.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.resolveReceiver(ctx, params.Receiver)
	if err != nil {
		return nil, err
	}
	if sender.AccountID == receiver.AccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrAccountState)
	}
	if err := s.checkDebitable(sender); err != nil {
		return nil, err
	}
	if !receiver.Active() {
		return nil, fmt.Errorf("%w: receiving account is %s", apperrors.ErrAccountState, receiver.Status())
	}

	// The journaled amount is in the sender's currency; the receiver is
	// credited with the converted amount.
	debit, err := s.exchange.Convert(params.Amount, params.Currency, sender.Currency)
	if err != nil {
		return nil, err
	}
	credited, remark, err := s.convertWithRemark(debit, sender.Currency, receiver.Currency, params.Remark)
	if err != nil {
		return nil, err
	}
	guard, err := s.debitGuard(ctx, sender, debit)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		SenderID:   sender.AccountID,
		ReceiverID: &receiver.AccountID,
		Type:       domain.Transfer,
		Amount:     debit,
		Status:     domain.Success,
		Remark:     remark,
		CreatedAt:  s.now(),
	}
	changes := map[int64]decimal.Decimal{
		sender.AccountID:   debit.Neg(),
		receiver.AccountID: credited,
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn, changes, []portsrepo.MovementGuard{guard})
	if err != nil {
		s.LogError(ctx, err, "transfer failed",
			"sender_id", sender.AccountID,
			"receiver_id", receiver.AccountID)
		return nil, err
	}
	s.LogInfo(ctx, "transfer settled",
		"sender_id", sender.AccountID,
		"receiver_id", receiver.AccountID,
		"transaction_id", saved.TransactionID)
	return saved, nil
}

// PayBill debits one of the customer's accounts in favour of a bill category.
func (s *TransactionService) PayBill(ctx context.Context, customerID int64, params portssvc.BillPaymentParams) (*domain.Transaction, error) {
	if err := validateAmount(params.Amount, params.Currency); err != nil {
		return nil, err
	}
	if params.BillCategoryID <= 0 {
		return nil, fmt.Errorf("%w: bill category is required", apperrors.ErrValidation)
	}
	if err := s.gate.Confirm(ctx, customerID, params.Pin); err != nil {
		return nil, err
	}
	account, err := s.ownedAccount(ctx, customerID, params.SenderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDebitable(account); err != nil {
		return nil, err
	}

	debit, remark, err := s.convertWithRemark(params.Amount, params.Currency, account.Currency, params.Remark)
	if err != nil {
		return nil, err
	}
	guard, err := s.debitGuard(ctx, account, debit)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		SenderID:       account.AccountID,
		Type:           domain.BillPayment,
		BillCategoryID: &params.BillCategoryID,
		Amount:         debit,
		Status:         domain.Success,
		Remark:         remark,
		CreatedAt:      s.now(),
	}
	changes := map[int64]decimal.Decimal{account.AccountID: debit.Neg()}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn, changes, []portsrepo.MovementGuard{guard})
	if err != nil {
		s.LogError(ctx, err, "bill payment failed", "account_id", account.AccountID)
		return nil, err
	}
	s.LogInfo(ctx, "bill payment settled", "account_id", account.AccountID, "transaction_id", saved.TransactionID)
	return saved, nil
}

// GetTransaction retrieves a transaction one of the customer's accounts took
// part in.
func (s *TransactionService) GetTransaction(ctx context.Context, customerID int64, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if s.participant(ctx, customerID, txn.SenderID) {
		return txn, nil
	}
	if txn.ReceiverID != nil && s.participant(ctx, customerID, *txn.ReceiverID) {
		return txn, nil
	}
	return nil, fmt.Errorf("%w: transaction does not involve the customer's accounts", apperrors.ErrForbidden)
}

// ListTransactions retrieves an account's history, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, customerID int64, accountID int64, limit int, offset int) ([]domain.Transaction, error) {
	if _, err := s.ownedAccount(ctx, customerID, accountID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.txnRepo.ListTransactionsByAccount(ctx, accountID, limit, offset)
}

// ListCustomerTransactions retrieves the history across every account the
// customer owns, newest first.
func (s *TransactionService) ListCustomerTransactions(ctx context.Context, customerID int64, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.txnRepo.ListTransactionsByCustomer(ctx, customerID, limit, offset)
}

func (s *TransactionService) ownedAccount(ctx context.Context, customerID int64, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(customerID, account); err != nil {
		return nil, err
	}
	return account, nil
}

// resolveReceiver accepts either a 9-digit account number or a numeric
// account id.
func (s *TransactionService) resolveReceiver(ctx context.Context, receiver string) (*domain.Account, error) {
	receiver = domain.NormalizeAccountNo(receiver)
	if len(receiver) == 9 {
		if account, err := s.accountRepo.FindAccountByNo(ctx, receiver); err == nil {
			return account, nil
		}
	}
	id, err := strconv.ParseInt(receiver, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid account number or id", apperrors.ErrValidation, receiver)
	}
	return s.accountRepo.FindAccountByID(ctx, id)
}

// checkDebitable rejects debits from frozen, closed or unmatured accounts.
func (s *TransactionService) checkDebitable(account *domain.Account) error {
	if !account.Active() {
		return accountStateError(account)
	}
	if !account.Matured(s.now()) {
		return fmt.Errorf("%w: Fixed account has not matured (maturity date %s)",
			apperrors.ErrAccountState, account.MaturityDate.Format("2006-01-02"))
	}
	return nil
}

// debitGuard pre-checks the balance floor and Saving daily cap and builds the
// guard the store re-evaluates under lock at commit time.
func (s *TransactionService) debitGuard(ctx context.Context, account *domain.Account, debit decimal.Decimal) (portsrepo.MovementGuard, error) {
	floor := account.OverLimit.Neg()
	if account.Balance.Sub(debit).LessThan(floor) {
		return portsrepo.MovementGuard{}, fmt.Errorf("%w: balance %s %s cannot cover %s %s",
			apperrors.ErrInsufficientBalance, account.Balance, account.Currency, debit, account.Currency)
	}

	guard := portsrepo.MovementGuard{AccountID: account.AccountID, Floor: floor}
	if account.AccountType != domain.Saving {
		return guard, nil
	}

	cap := s.policy.SavingDailyLimit[account.Currency]
	from, to := dailyWindow(s.now())
	used, err := s.txnRepo.SumOutgoing(ctx, account.AccountID, from, to)
	if err != nil {
		return portsrepo.MovementGuard{}, err
	}
	if used.Add(debit).GreaterThan(cap) {
		remaining := cap.Sub(used)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		return portsrepo.MovementGuard{}, fmt.Errorf("%w: daily limit of %s %s would be exceeded, %s %s remaining today",
			apperrors.ErrLimitExceeded, cap, account.Currency, remaining, account.Currency)
	}

	guard.DailyCap = &cap
	guard.DayStart = from
	guard.DayEnd = to
	return guard, nil
}

// convertWithRemark converts an amount to the target currency and, when a
// conversion actually happened, appends the applied rate to the remark.
func (s *TransactionService) convertWithRemark(amount decimal.Decimal, from domain.Currency, to domain.Currency, remark string) (decimal.Decimal, string, error) {
	if from == to {
		return amount, remark, nil
	}
	converted, err := s.exchange.Convert(amount, from, to)
	if err != nil {
		return decimal.Zero, "", err
	}
	display, err := s.exchange.RateDisplay(from, to)
	if err != nil {
		return decimal.Zero, "", err
	}
	detail := fmt.Sprintf("Converted %s %s at %s", amount, from, display)
	if remark == "" {
		return converted, detail, nil
	}
	return converted, remark + " | " + detail, nil
}

// participant reports whether the customer owns the given account. Lookup
// failures count as non-participation.
func (s *TransactionService) participant(ctx context.Context, customerID int64, accountID int64) bool {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return false
	}
	return account.CustomerID == customerID
}

func accountStateError(account *domain.Account) error {
	return fmt.Errorf("%w: account is %s", apperrors.ErrAccountState, account.Status())
}
