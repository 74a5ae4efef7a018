package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
)

// DepositRequest is the payload for a deposit.
type DepositRequest struct {
	AccountID int64           `json:"accountID" binding:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency  string          `json:"currency" binding:"required,oneof=USD KHR"`
	Remark    string          `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// WithdrawRequest is the payload for a withdrawal.
type WithdrawRequest struct {
	AccountID int64           `json:"accountID" binding:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency  string          `json:"currency" binding:"required,oneof=USD KHR"`
	Remark    string          `json:"remark,omitempty" binding:"omitempty,max=255"`
	Pin       string          `json:"pin" binding:"required,numeric,len=4"`
}

// TransferRequest is the payload for a transfer. Receiver is a 9-digit
// account number or a numeric account id.
type TransferRequest struct {
	SenderID int64           `json:"senderID" binding:"required,gt=0"`
	Receiver string          `json:"receiver" binding:"required,numeric,max=19"`
	Amount   decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency string          `json:"currency" binding:"required,oneof=USD KHR"`
	Remark   string          `json:"remark,omitempty" binding:"omitempty,max=255"`
	Pin      string          `json:"pin" binding:"required,numeric,len=4"`
}

// BillPaymentRequest is the payload for a bill payment.
type BillPaymentRequest struct {
	AccountID      int64           `json:"accountID" binding:"required,gt=0"`
	BillCategoryID int64           `json:"billCategoryID" binding:"required,gt=0"`
	Amount         decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Currency       string          `json:"currency" binding:"required,oneof=USD KHR"`
	Remark         string          `json:"remark,omitempty" binding:"omitempty,max=255"`
	Pin            string          `json:"pin" binding:"required,numeric,len=4"`
}

// TransactionResponse is the API representation of a journal record.
type TransactionResponse struct {
	TransactionID  int64           `json:"transactionID"`
	SenderID       int64           `json:"senderID"`
	ReceiverID     *int64          `json:"receiverID,omitempty"`
	Type           string          `json:"type"`
	BillCategoryID *int64          `json:"billCategoryID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Remark         string          `json:"remark,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain Transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  t.TransactionID,
		SenderID:       t.SenderID,
		ReceiverID:     t.ReceiverID,
		Type:           string(t.Type),
		BillCategoryID: t.BillCategoryID,
		Amount:         t.Amount,
		Status:         string(t.Status),
		Remark:         t.Remark,
		CreatedAt:      t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain Transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return out
}

// DailyLimitResponse reports the remaining daily allowance of an account.
type DailyLimitResponse struct {
	Currency  string          `json:"currency"`
	Limit     decimal.Decimal `json:"limit"`
	Used      decimal.Decimal `json:"used"`
	Remaining decimal.Decimal `json:"remaining"`
}

// AccountLimitResponse is one entry of the per-customer limits summary.
type AccountLimitResponse struct {
	AccountID   int64               `json:"accountID"`
	AccountNo   string              `json:"accountNo"`
	AccountType string              `json:"accountType"`
	DailyLimit  *DailyLimitResponse `json:"dailyLimit,omitempty"`
}

// ToDailyLimitResponse converts a service DailyLimit.
func ToDailyLimitResponse(l *portssvc.DailyLimit) *DailyLimitResponse {
	if l == nil {
		return nil
	}
	return &DailyLimitResponse{
		Currency:  string(l.Currency),
		Limit:     l.Limit,
		Used:      l.Used,
		Remaining: l.Remaining,
	}
}

// ToLimitsSummaryResponse converts the service limits summary.
func ToLimitsSummaryResponse(entries []portssvc.AccountLimit) []AccountLimitResponse {
	out := make([]AccountLimitResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AccountLimitResponse{
			AccountID:   e.AccountID,
			AccountNo:   e.AccountNo,
			AccountType: string(e.AccountType),
			DailyLimit:  ToDailyLimitResponse(e.Limit),
		})
	}
	return out
}
