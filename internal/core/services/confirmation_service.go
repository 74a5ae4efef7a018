package services

import (
	"context"
	"fmt"

	"github.com/meypanhawath/corebank/internal/apperrors"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/utils"
)

// PinConfirmationService verifies confirmation PINs against the bcrypt hash
// stored with the customer record.
type PinConfirmationService struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
}

var _ portssvc.ConfirmationGate = (*PinConfirmationService)(nil)

// NewPinConfirmationService creates a new PinConfirmationService.
func NewPinConfirmationService(customerRepo portsrepo.CustomerRepository) *PinConfirmationService {
	return &PinConfirmationService{customerRepo: customerRepo}
}

// Confirm checks the PIN before a balance-reducing operation proceeds.
func (s *PinConfirmationService) Confirm(ctx context.Context, customerID int64, pin string) error {
	if pin == "" {
		return fmt.Errorf("%w: confirmation PIN is required", apperrors.ErrValidation)
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !utils.CheckPinHash(pin, customer.PinHash) {
		s.LogInfo(ctx, "pin confirmation rejected", "customer_id", customerID)
		return fmt.Errorf("%w: incorrect confirmation PIN", apperrors.ErrForbidden)
	}
	return nil
}
