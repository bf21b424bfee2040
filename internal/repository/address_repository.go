package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Raymond9734/customer-address-api/internal/models"
)

// AddressRepository defines the interface for address data access
type AddressRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]*models.Address, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
	Create(ctx context.Context, address *models.Address) error
	GetOwner(ctx context.Context, addressID int64) (int64, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id int64) error
	ClearPrimary(ctx context.Context, customerID, exceptID int64) error
	Search(ctx context.Context, filter models.AddressFilter) ([]*models.AddressWithCustomer, error)
}

// addressRepository implements AddressRepository using PostgreSQL
type addressRepository struct {
	db *sql.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *sql.DB) AddressRepository {
	return &addressRepository{db: db}
}

// ListByCustomer retrieves a customer's addresses, primary first, then by
// creation order
func (r *addressRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Address, error) {
	query := `
		SELECT id, customer_id, address_details, city, state, pin_code, is_primary, created_at, updated_at
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_primary DESC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, models.ErrStore("failed to list addresses", err)
	}
	defer rows.Close()

	addresses := []*models.Address{}
	for rows.Next() {
		address := &models.Address{}
		err := rows.Scan(
			&address.ID,
			&address.CustomerID,
			&address.AddressDetails,
			&address.City,
			&address.State,
			&address.PinCode,
			&address.IsPrimary,
			&address.CreatedAt,
			&address.UpdatedAt,
		)
		if err != nil {
			return nil, models.ErrStore("failed to scan address", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, models.ErrStore("error iterating addresses", err)
	}

	return addresses, nil
}

// CountByCustomer counts a customer's addresses
func (r *addressRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM addresses WHERE customer_id = $1`,
		customerID,
	).Scan(&count)
	if err != nil {
		return 0, models.ErrStore("failed to count addresses", err)
	}
	return count, nil
}

// Create inserts a new address
func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	query := `
		INSERT INTO addresses (customer_id, address_details, city, state, pin_code, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		address.CustomerID,
		address.AddressDetails,
		address.City,
		address.State,
		address.PinCode,
		address.IsPrimary,
	).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)

	if err != nil {
		return models.ErrStore("failed to create address", err)
	}

	return nil
}

// GetOwner looks up the customer owning an address
func (r *addressRepository) GetOwner(ctx context.Context, addressID int64) (int64, error) {
	var customerID int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT customer_id FROM addresses WHERE id = $1`,
		addressID,
	).Scan(&customerID)

	if err == sql.ErrNoRows {
		return 0, models.ErrNotFoundWithMsg(fmt.Sprintf("address with ID %d not found", addressID))
	}
	if err != nil {
		return 0, models.ErrStore("failed to get address owner", err)
	}

	return customerID, nil
}

// Update replaces all mutable address fields and refreshes updated_at
func (r *addressRepository) Update(ctx context.Context, address *models.Address) error {
	query := `
		UPDATE addresses
		SET address_details = $1, city = $2, state = $3, pin_code = $4, is_primary = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING customer_id, created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		address.AddressDetails,
		address.City,
		address.State,
		address.PinCode,
		address.IsPrimary,
		address.ID,
	).Scan(&address.CustomerID, &address.CreatedAt, &address.UpdatedAt)

	if err == sql.ErrNoRows {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("address with ID %d not found", address.ID))
	}
	if err != nil {
		return models.ErrStore("failed to update address", err)
	}

	return nil
}

// Delete removes an address
func (r *addressRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return models.ErrStore("failed to delete address", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.ErrStore("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("address with ID %d not found", id))
	}

	return nil
}

// ClearPrimary unsets the primary flag on a customer's addresses. exceptID
// excludes the row about to be written; pass 0 to clear all of them.
func (r *addressRepository) ClearPrimary(ctx context.Context, customerID, exceptID int64) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE addresses SET is_primary = FALSE WHERE customer_id = $1 AND id <> $2`,
		customerID,
		exceptID,
	)
	if err != nil {
		return models.ErrStore("failed to clear primary addresses", err)
	}
	return nil
}

// buildAddressSearchQuery constructs the address search query from the
// filter; each clause is appended only when its input is non-empty
func buildAddressSearchQuery(filter models.AddressFilter) (string, []interface{}) {
	query := `
		SELECT a.id, a.customer_id, a.address_details, a.city, a.state, a.pin_code,
		       a.is_primary, a.created_at, a.updated_at,
		       c.first_name, c.last_name, c.phone_number
		FROM addresses a
		INNER JOIN customers c ON c.id = a.customer_id
		WHERE 1=1`

	args := []interface{}{}
	argPos := 1

	if filter.City != "" {
		query += fmt.Sprintf(" AND a.city ILIKE $%d", argPos)
		args = append(args, "%"+filter.City+"%")
		argPos++
	}

	if filter.State != "" {
		query += fmt.Sprintf(" AND a.state ILIKE $%d", argPos)
		args = append(args, "%"+filter.State+"%")
		argPos++
	}

	if filter.PinCode != "" {
		query += fmt.Sprintf(" AND a.pin_code ILIKE $%d", argPos)
		args = append(args, "%"+filter.PinCode+"%")
		argPos++
	}

	query += " ORDER BY c.first_name, c.last_name"

	return query, args
}

// Search retrieves addresses matching the filter, joined with their owning
// customer and ordered by the owner's name
func (r *addressRepository) Search(ctx context.Context, filter models.AddressFilter) ([]*models.AddressWithCustomer, error) {
	query, args := buildAddressSearchQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.ErrStore("failed to search addresses", err)
	}
	defer rows.Close()

	addresses := []*models.AddressWithCustomer{}
	for rows.Next() {
		address := &models.AddressWithCustomer{}
		err := rows.Scan(
			&address.ID,
			&address.CustomerID,
			&address.AddressDetails,
			&address.City,
			&address.State,
			&address.PinCode,
			&address.IsPrimary,
			&address.CreatedAt,
			&address.UpdatedAt,
			&address.FirstName,
			&address.LastName,
			&address.PhoneNumber,
		)
		if err != nil {
			return nil, models.ErrStore("failed to scan address", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, models.ErrStore("error iterating addresses", err)
	}

	return addresses, nil
}
