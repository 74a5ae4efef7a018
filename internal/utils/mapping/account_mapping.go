package mapping

import (
	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/models"
)

// Account type ids as seeded by the reference-data migration.
var accountTypeIDs = map[domain.AccountType]int16{
	domain.Saving:   1,
	domain.Checking: 2,
	domain.Fixed:    3,
}

var accountTypeNames = map[int16]domain.AccountType{
	1: domain.Saving,
	2: domain.Checking,
	3: domain.Fixed,
}

// AccountTypeID returns the reference-table id for an account type.
func AccountTypeID(t domain.AccountType) int16 {
	return accountTypeIDs[t]
}

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		CustomerID:    d.CustomerID,
		AccountNo:     d.AccountNo,
		Name:          d.Name,
		Currency:      string(d.Currency),
		Balance:       d.Balance,
		OverLimit:     d.OverLimit,
		IsFrozen:      d.IsFrozen,
		IsDeleted:     d.IsDeleted,
		AccountTypeID: accountTypeIDs[d.AccountType],
		MaturityDate:  d.MaturityDate,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		CustomerID:   m.CustomerID,
		AccountNo:    m.AccountNo,
		Name:         m.Name,
		Currency:     domain.Currency(m.Currency),
		Balance:      m.Balance,
		OverLimit:    m.OverLimit,
		IsFrozen:     m.IsFrozen,
		IsDeleted:    m.IsDeleted,
		AccountType:  accountTypeNames[m.AccountTypeID],
		MaturityDate: m.MaturityDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
