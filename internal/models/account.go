package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database row representation of an account.
// Column layout is the compatibility surface for reporting/KYC consumers.
type Account struct {
	AccountID     int64           `db:"account_id"`
	CustomerID    int64           `db:"customer_id"`
	AccountNo     string          `db:"account_no"`
	Name          string          `db:"account_name"`
	Currency      string          `db:"currency"`
	Balance       decimal.Decimal `db:"balance"`
	OverLimit     decimal.Decimal `db:"over_limit"`
	IsFrozen      bool            `db:"is_frozen"`
	IsDeleted     bool            `db:"is_deleted"`
	AccountTypeID int16           `db:"account_type_id"`
	MaturityDate  *time.Time      `db:"maturity_date"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	LastUpdatedBy string          `db:"last_updated_by"`
}
