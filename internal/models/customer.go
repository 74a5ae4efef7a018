package models

import "time"

// Customer represents the customers database table.
type Customer struct {
	CustomerID    int64     `db:"customer_id"`
	FullName      string    `db:"full_name"`
	PinHash       string    `db:"pin_hash"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
