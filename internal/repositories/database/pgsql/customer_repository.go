package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	"github.com/meypanhawath/corebank/internal/models"
	"github.com/meypanhawath/corebank/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

// FindCustomerByID retrieves a customer by their unique identifier.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `
		SELECT customer_id, full_name, pin_hash, created_at, created_by, last_updated_at, last_updated_by
		FROM customers
		WHERE customer_id = $1;
	`
	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&m.CustomerID,
		&m.FullName,
		&m.PinHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer not found")
		}
		return nil, apperrors.NewAppError(500, "failed to read customer row", err)
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}
