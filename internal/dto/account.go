package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
)

// OpenAccountRequest is the payload for opening an account.
type OpenAccountRequest struct {
	AccountType    string          `json:"accountType" binding:"required,oneof=Saving Checking Fixed"`
	Currency       string          `json:"currency" binding:"required,oneof=USD KHR"`
	InitialDeposit decimal.Decimal `json:"initialDeposit" binding:"required,dgt0"`
	MaturityDate   *time.Time      `json:"maturityDate,omitempty"`
	Name           string          `json:"name,omitempty" binding:"omitempty,max=100"`
}

// SetFrozenRequest is the payload for freezing or unfreezing an account.
type SetFrozenRequest struct {
	Frozen *bool `json:"frozen" binding:"required"`
}

// CloseAccountRequest is the payload for closing an account.
type CloseAccountRequest struct {
	Pin string `json:"pin" binding:"required,numeric,len=4"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID    int64           `json:"accountID"`
	AccountNo    string          `json:"accountNo"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	OverLimit    decimal.Decimal `json:"overLimit"`
	AccountType  string          `json:"accountType"`
	Status       string          `json:"status"`
	MaturityDate *time.Time      `json:"maturityDate,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		AccountNo:    a.FormattedAccountNo(),
		Name:         a.Name,
		Currency:     string(a.Currency),
		Balance:      a.Balance,
		OverLimit:    a.OverLimit,
		AccountType:  string(a.AccountType),
		Status:       a.Status(),
		MaturityDate: a.MaturityDate,
		CreatedAt:    a.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain Accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}

// AccountTypeAvailabilityResponse reports whether a type/currency slot is open.
type AccountTypeAvailabilityResponse struct {
	AccountType string `json:"accountType"`
	Currency    string `json:"currency"`
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"`
}

// ToAvailabilityResponse converts the service availability report.
func ToAvailabilityResponse(entries []portssvc.AccountTypeAvailability) []AccountTypeAvailabilityResponse {
	out := make([]AccountTypeAvailabilityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AccountTypeAvailabilityResponse{
			AccountType: string(e.AccountType),
			Currency:    string(e.Currency),
			Available:   e.Available,
			Reason:      e.Reason,
		})
	}
	return out
}
