package mapping

import (
	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/models"
)

var transactionTypeIDs = map[domain.TransactionType]int16{
	domain.Deposit:     1,
	domain.Withdraw:    2,
	domain.Transfer:    3,
	domain.BillPayment: 4,
}

var transactionTypeNames = map[int16]domain.TransactionType{
	1: domain.Deposit,
	2: domain.Withdraw,
	3: domain.Transfer,
	4: domain.BillPayment,
}

// TransactionTypeID returns the reference-table id for a transaction type.
func TransactionTypeID(t domain.TransactionType) int16 {
	return transactionTypeIDs[t]
}

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		SenderID:          d.SenderID,
		ReceiverID:        d.ReceiverID,
		TransactionTypeID: transactionTypeIDs[d.Type],
		BillCategoryID:    d.BillCategoryID,
		Amount:            d.Amount,
		Status:            string(d.Status),
		Remark:            d.Remark,
		IsDeleted:         d.IsDeleted,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Type:           transactionTypeNames[m.TransactionTypeID],
		BillCategoryID: m.BillCategoryID,
		Amount:         m.Amount,
		Status:         domain.TransactionStatus(m.Status),
		Remark:         m.Remark,
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
	}
}
