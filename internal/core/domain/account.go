package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product type of an account.
type AccountType string

const (
	Saving   AccountType = "Saving"
	Checking AccountType = "Checking"
	Fixed    AccountType = "Fixed"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == Saving || t == Checking || t == Fixed
}

// Account represents a customer account holding a balance in one currency.
// The balance is only ever changed through a committed transaction.
type Account struct {
	AccountID    int64           `json:"accountID"`
	CustomerID   int64           `json:"customerID"`
	AccountNo    string          `json:"accountNo"` // 9 digits, first digit 1-9
	Name         string          `json:"name"`
	Currency     Currency        `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	OverLimit    decimal.Decimal `json:"overLimit"` // allowed overdraft, >= 0
	IsFrozen     bool            `json:"isFrozen"`
	IsDeleted    bool            `json:"isDeleted"`
	AccountType  AccountType     `json:"accountType"`
	MaturityDate *time.Time      `json:"maturityDate,omitempty"` // Fixed accounts only
	AuditFields
}

// Active reports whether the account accepts balance-changing operations.
func (a *Account) Active() bool {
	return !a.IsFrozen && !a.IsDeleted
}

// Matured reports whether withdrawals and transfers-out are permitted with
// respect to the maturity date. An account with no maturity date is always
// matured; on the maturity date itself the account counts as matured.
func (a *Account) Matured(today time.Time) bool {
	if a.MaturityDate == nil {
		return true
	}
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	my, mm, md := a.MaturityDate.Date()
	maturity := time.Date(my, mm, md, 0, 0, 0, 0, today.Location())
	return !maturity.After(day)
}

// Status returns the human-readable account status.
func (a *Account) Status() string {
	if a.IsDeleted {
		return "Deleted"
	}
	if a.IsFrozen {
		return "Frozen"
	}
	return "Active"
}

// NormalizeAccountNo strips the display grouping from an account number, so
// "123 456 789" and "123456789" resolve to the same account.
func NormalizeAccountNo(accountNo string) string {
	return strings.ReplaceAll(accountNo, " ", "")
}

// FormattedAccountNo renders the account number as "xxx xxx xxx".
func (a *Account) FormattedAccountNo() string {
	if len(a.AccountNo) != 9 {
		return a.AccountNo
	}
	return a.AccountNo[0:3] + " " + a.AccountNo[3:6] + " " + a.AccountNo[6:9]
}
