package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row representation of a journal record.
type Transaction struct {
	TransactionID     int64           `db:"transaction_id"`
	SenderID          int64           `db:"sender_id"`
	ReceiverID        *int64          `db:"receiver_id"`
	TransactionTypeID int16           `db:"transaction_type_id"`
	BillCategoryID    *int64          `db:"bill_category_id"`
	Amount            decimal.Decimal `db:"amount"`
	Status            string          `db:"status"`
	Remark            string          `db:"remark"`
	IsDeleted         bool            `db:"is_deleted"`
	CreatedAt         time.Time       `db:"created_at"`
}
