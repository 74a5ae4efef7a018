package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	Deposit     TransactionType = "Deposit"
	Withdraw    TransactionType = "Withdraw"
	Transfer    TransactionType = "Transfer"
	BillPayment TransactionType = "BillPayment"
)

// TransactionStatus is the settlement outcome of a transaction. It is set
// once at creation; settled rows are never edited.
type TransactionStatus string

const (
	Pending TransactionStatus = "Pending"
	Success TransactionStatus = "Success"
	Failed  TransactionStatus = "Failed"
)

// Transaction is one append-only journal record of a money-movement attempt.
// SenderID is the debited account, or the credited account for a deposit.
// ReceiverID is nil for deposits, withdrawals and bill payments. Amount is
// always positive and denominated in the sender's currency.
type Transaction struct {
	TransactionID  int64             `json:"transactionID"`
	SenderID       int64             `json:"senderID"`
	ReceiverID     *int64            `json:"receiverID,omitempty"`
	Type           TransactionType   `json:"type"`
	BillCategoryID *int64            `json:"billCategoryID,omitempty"`
	Amount         decimal.Decimal   `json:"amount"`
	Status         TransactionStatus `json:"status"`
	Remark         string            `json:"remark"`
	IsDeleted      bool              `json:"isDeleted"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Outgoing reports whether the transaction moved value out of accountID.
// Deposits credit the sender account, so they are never outgoing.
func (t *Transaction) Outgoing(accountID int64) bool {
	return t.SenderID == accountID && t.Type != Deposit
}
