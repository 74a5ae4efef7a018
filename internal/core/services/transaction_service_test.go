package services_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/core/services"
	"github.com/meypanhawath/corebank/internal/repositories/database/memory"
)

// MockConfirmationGate is a mock type for the ConfirmationGate interface
type MockConfirmationGate struct {
	mock.Mock
}

func (m *MockConfirmationGate) Confirm(ctx context.Context, customerID int64, pin string) error {
	args := m.Called(ctx, customerID, pin)
	return args.Error(0)
}

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	gate  *MockConfirmationGate
	svc   *services.TransactionService
	seq   int64
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.gate = new(MockConfirmationGate)
	s.gate.On("Confirm", mock.Anything, mock.Anything, testPin).Return(nil)

	exchange := services.NewExchangeService(testPolicy())
	s.svc = services.NewTransactionService(s.store.Accounts(), s.store.Transactions(), exchange, s.gate, testPolicy())
}

// seedAccount stores an account directly, bypassing opening validation, so
// tests can shape balances, over-limits and maturity dates freely.
func (s *TransactionServiceTestSuite) seedAccount(customerID int64, accountType domain.AccountType, currency domain.Currency, balance string, modify ...func(*domain.Account)) *domain.Account {
	s.seq++
	account := domain.Account{
		CustomerID:  customerID,
		AccountNo:   strconv.FormatInt(100000000+s.seq, 10),
		Name:        "Test Account",
		Currency:    currency,
		Balance:     decimal.RequireFromString(balance),
		OverLimit:   decimal.Zero,
		AccountType: accountType,
	}
	for _, fn := range modify {
		fn(&account)
	}
	saved, err := s.store.SaveAccount(s.ctx, account, nil)
	s.Require().NoError(err)
	return saved
}

func (s *TransactionServiceTestSuite) balanceOf(accountID int64) decimal.Decimal {
	account, err := s.store.FindAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return account.Balance
}

func (s *TransactionServiceTestSuite) TestDepositWithdrawFlow() {
	account := s.seedAccount(1, domain.Saving, domain.USD, "5.00")

	withdrawn, err := s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("3.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.Require().NoError(err)
	s.Equal(domain.Withdraw, withdrawn.Type)
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("2.00")))

	_, err = s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("2.00")), "failed withdrawal must not move the balance")
}

func (s *TransactionServiceTestSuite) TestDeposit_ExactBalanceArithmetic() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "0.10")

	_, err := s.svc.Deposit(s.ctx, 1, portssvc.DepositParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("0.20"),
		Currency:  domain.USD,
	})
	s.Require().NoError(err)
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("0.30")))
}

func (s *TransactionServiceTestSuite) TestDeposit_FrozenAccountRejected() {
	account := s.seedAccount(1, domain.Saving, domain.USD, "5.00", func(a *domain.Account) {
		a.IsFrozen = true
	})

	_, err := s.svc.Deposit(s.ctx, 1, portssvc.DepositParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("1.00"),
		Currency:  domain.USD,
	})
	s.ErrorIs(err, apperrors.ErrAccountState)
}

func (s *TransactionServiceTestSuite) TestDeposit_CrossCurrencyConverts() {
	account := s.seedAccount(1, domain.Saving, domain.KHR, "20000")

	txn, err := s.svc.Deposit(s.ctx, 1, portssvc.DepositParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
	})
	s.Require().NoError(err)
	s.True(txn.Amount.Equal(decimal.RequireFromString("41000")))
	s.Contains(txn.Remark, "1 USD = 4100 KHR")
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("61000")))
}

func (s *TransactionServiceTestSuite) TestWithdraw_UnmaturedFixedRejected() {
	maturity := time.Now().AddDate(1, 0, 0)
	account := s.seedAccount(1, domain.Fixed, domain.USD, "100.00", func(a *domain.Account) {
		a.MaturityDate = &maturity
	})

	_, err := s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.ErrorIs(err, apperrors.ErrAccountState)

	// Deposits into an unmatured Fixed account stay allowed.
	_, err = s.svc.Deposit(s.ctx, 1, portssvc.DepositParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
	})
	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestWithdraw_MaturityBoundaryIsMatured() {
	today := time.Now()
	account := s.seedAccount(1, domain.Fixed, domain.USD, "100.00", func(a *domain.Account) {
		a.MaturityDate = &today
	})

	_, err := s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.NoError(err, "on the maturity date itself the account counts as matured")
}

func (s *TransactionServiceTestSuite) TestWithdraw_OverLimitAllowance() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "10.00", func(a *domain.Account) {
		a.OverLimit = decimal.RequireFromString("50.00")
	})

	_, err := s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("60.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.Require().NoError(err)
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("-50.00")))

	_, err = s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("0.01"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
}

func (s *TransactionServiceTestSuite) TestTransfer_SameCurrency() {
	sender := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	receiver := s.seedAccount(2, domain.Checking, domain.USD, "1.00")

	txn, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: receiver.AccountNo,
		Amount:   decimal.RequireFromString("25.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.Require().NoError(err)
	s.Equal(domain.Transfer, txn.Type)
	s.Require().NotNil(txn.ReceiverID)
	s.Equal(receiver.AccountID, *txn.ReceiverID)
	s.True(s.balanceOf(sender.AccountID).Equal(decimal.RequireFromString("75.00")))
	s.True(s.balanceOf(receiver.AccountID).Equal(decimal.RequireFromString("26.00")))
}

func (s *TransactionServiceTestSuite) TestTransfer_CrossCurrency() {
	sender := s.seedAccount(1, domain.Saving, domain.USD, "200.00")
	receiver := s.seedAccount(2, domain.Saving, domain.KHR, "0")

	txn, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: strconv.FormatInt(receiver.AccountID, 10),
		Amount:   decimal.RequireFromString("100.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.Require().NoError(err)

	// The journaled amount stays in the sender's currency.
	s.True(txn.Amount.Equal(decimal.RequireFromString("100.00")))
	s.Contains(txn.Remark, "1 USD = 4100 KHR")
	s.True(s.balanceOf(sender.AccountID).Equal(decimal.RequireFromString("100.00")))
	s.True(s.balanceOf(receiver.AccountID).Equal(decimal.RequireFromString("410000")))
}

func (s *TransactionServiceTestSuite) TestTransfer_SelfTransferRejected() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "100.00")

	_, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: account.AccountID,
		Receiver: account.AccountNo,
		Amount:   decimal.RequireFromString("10.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.ErrorIs(err, apperrors.ErrAccountState)
}

func (s *TransactionServiceTestSuite) TestTransfer_InactiveReceiverRejected() {
	sender := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	receiver := s.seedAccount(2, domain.Checking, domain.USD, "0", func(a *domain.Account) {
		a.IsFrozen = true
	})

	_, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: receiver.AccountNo,
		Amount:   decimal.RequireFromString("10.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.ErrorIs(err, apperrors.ErrAccountState)
	s.True(s.balanceOf(sender.AccountID).Equal(decimal.RequireFromString("100.00")))
}

func (s *TransactionServiceTestSuite) TestTransfer_NotSenderOwner() {
	sender := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	receiver := s.seedAccount(2, domain.Checking, domain.USD, "0")

	_, err := s.svc.Transfer(s.ctx, 2, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: receiver.AccountNo,
		Amount:   decimal.RequireFromString("10.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *TransactionServiceTestSuite) TestSavingDailyLimit() {
	sender := s.seedAccount(1, domain.Saving, domain.USD, "10000.00")
	receiver := s.seedAccount(2, domain.Checking, domain.USD, "0")

	_, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: receiver.AccountNo,
		Amount:   decimal.RequireFromString("4990.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.Require().NoError(err)

	_, err = s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: receiver.AccountNo,
		Amount:   decimal.RequireFromString("5000.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.Require().ErrorIs(err, apperrors.ErrLimitExceeded)
	s.Contains(err.Error(), "10")
	s.True(s.balanceOf(sender.AccountID).Equal(decimal.RequireFromString("5010.00")), "failed transfer must not move balances")

	// A movement inside the remaining allowance still settles.
	_, err = s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: sender.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestDailyLimit_DepositsDoNotConsumeAllowance() {
	account := s.seedAccount(1, domain.Saving, domain.USD, "10000.00")

	_, err := s.svc.Deposit(s.ctx, 1, portssvc.DepositParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("4000.00"),
		Currency:  domain.USD,
	})
	s.Require().NoError(err)

	_, err = s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("5000.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.NoError(err, "deposits are not outgoing and must not consume the daily cap")
}

func (s *TransactionServiceTestSuite) TestCheckingHasNoDailyCap() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "20000.00")

	_, err := s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("15000.00"),
		Currency:  domain.USD,
		Pin:       testPin,
	})
	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestPayBill() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "100.00")

	txn, err := s.svc.PayBill(s.ctx, 1, portssvc.BillPaymentParams{
		SenderID:       account.AccountID,
		BillCategoryID: 1,
		Amount:         decimal.RequireFromString("30.00"),
		Currency:       domain.USD,
		Pin:            testPin,
	})
	s.Require().NoError(err)
	s.Equal(domain.BillPayment, txn.Type)
	s.Require().NotNil(txn.BillCategoryID)
	s.Equal(int64(1), *txn.BillCategoryID)
	s.Nil(txn.ReceiverID)
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("70.00")))
}

func (s *TransactionServiceTestSuite) TestWithdraw_PinRejectedBeforeAnyMutation() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	s.gate.On("Confirm", mock.Anything, mock.Anything, "9999").
		Return(apperrors.NewAppError(403, "incorrect confirmation PIN", apperrors.ErrForbidden))

	_, err := s.svc.Withdraw(s.ctx, 1, portssvc.WithdrawParams{
		AccountID: account.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  domain.USD,
		Pin:       "9999",
	})
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.True(s.balanceOf(account.AccountID).Equal(decimal.RequireFromString("100.00")))
}

func (s *TransactionServiceTestSuite) TestListTransactionsNewestFirst() {
	account := s.seedAccount(1, domain.Checking, domain.USD, "100.00")

	for _, amount := range []string{"1.00", "2.00", "3.00"} {
		_, err := s.svc.Deposit(s.ctx, 1, portssvc.DepositParams{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString(amount),
			Currency:  domain.USD,
		})
		s.Require().NoError(err)
	}

	txns, err := s.svc.ListTransactions(s.ctx, 1, account.AccountID, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.True(txns[0].Amount.Equal(decimal.RequireFromString("3.00")))
	s.True(txns[1].Amount.Equal(decimal.RequireFromString("2.00")))
}

func (s *TransactionServiceTestSuite) TestListCustomerTransactionsSpansAccounts() {
	first := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	second := s.seedAccount(1, domain.Saving, domain.USD, "100.00")
	other := s.seedAccount(2, domain.Checking, domain.USD, "100.00")

	for _, account := range []*domain.Account{first, second, other} {
		_, err := s.svc.Deposit(s.ctx, account.CustomerID, portssvc.DepositParams{
			AccountID: account.AccountID,
			Amount:    decimal.RequireFromString("5.00"),
			Currency:  domain.USD,
		})
		s.Require().NoError(err)
	}

	txns, err := s.svc.ListCustomerTransactions(s.ctx, 1, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	for _, txn := range txns {
		s.NotEqual(other.AccountID, txn.SenderID)
	}
}

func (s *TransactionServiceTestSuite) TestTransferAcceptsFormattedAccountNo() {
	sender := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	receiver := s.seedAccount(2, domain.Checking, domain.USD, "0")

	formatted := receiver.AccountNo[0:3] + " " + receiver.AccountNo[3:6] + " " + receiver.AccountNo[6:9]
	_, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: formatted,
		Amount:   decimal.RequireFromString("10.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.Require().NoError(err)
	s.True(s.balanceOf(receiver.AccountID).Equal(decimal.RequireFromString("10.00")))
}

func (s *TransactionServiceTestSuite) TestGetTransaction_ReceiverCanRead() {
	sender := s.seedAccount(1, domain.Checking, domain.USD, "100.00")
	receiver := s.seedAccount(2, domain.Checking, domain.USD, "0")

	txn, err := s.svc.Transfer(s.ctx, 1, portssvc.TransferParams{
		SenderID: sender.AccountID,
		Receiver: receiver.AccountNo,
		Amount:   decimal.RequireFromString("10.00"),
		Currency: domain.USD,
		Pin:      testPin,
	})
	s.Require().NoError(err)

	got, err := s.svc.GetTransaction(s.ctx, 2, txn.TransactionID)
	s.Require().NoError(err)
	s.Equal(txn.TransactionID, got.TransactionID)

	_, err = s.svc.GetTransaction(s.ctx, 3, txn.TransactionID)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
