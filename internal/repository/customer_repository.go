package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Raymond9734/customer-address-api/internal/models"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.CustomerWithStats, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter models.CustomerFilter) ([]*models.CustomerWithStats, int64, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
	ListWithMultipleAddresses(ctx context.Context) ([]*models.CustomerWithStats, error)
	ListWithSingleAddress(ctx context.Context) ([]*models.CustomerWithStats, error)
}

// customerRepository implements CustomerRepository using PostgreSQL
type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// translateConstraintError maps a unique-constraint violation to its domain
// error kind by inspecting which constraint fired; anything else becomes a
// generic store error.
func translateConstraintError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "customers_phone_number_key":
			return models.ErrDuplicatePhone()
		case "customers_email_key":
			return models.ErrDuplicateEmail()
		}
	}
	return models.ErrStore(message, err)
}

// Create inserts a new customer
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, phone_number, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.PhoneNumber,
		customer.Email,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)

	if err != nil {
		return translateConstraintError(err, "failed to create customer")
	}

	return nil
}

// GetByID retrieves a customer by ID together with its address aggregates
func (r *customerRepository) GetByID(ctx context.Context, id int64) (*models.CustomerWithStats, error) {
	query := `
		SELECT c.id, c.first_name, c.last_name, c.phone_number, c.email,
		       c.created_at, c.updated_at,
		       COUNT(a.id) AS address_count,
		       COUNT(a.id) = 1 AS has_only_one_address
		FROM customers c
		LEFT JOIN addresses a ON a.customer_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`

	customer := &models.CustomerWithStats{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.PhoneNumber,
		&customer.Email,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.AddressCount,
		&customer.HasOnlyOneAddress,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	if err != nil {
		return nil, models.ErrStore("failed to get customer", err)
	}

	return customer, nil
}

// Exists reports whether a customer row exists
func (r *customerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return false, models.ErrStore("failed to check customer existence", err)
	}
	return exists, nil
}

// buildCustomerListQuery constructs the listing query and its matching count
// query from the filter. Clauses are appended only when their input is
// non-empty; all values travel as positional parameters. The listing query is
// returned without LIMIT/OFFSET so the count query can share the args slice.
func buildCustomerListQuery(filter models.CustomerFilter) (query, countQuery string, args []interface{}) {
	query = `
		SELECT c.id, c.first_name, c.last_name, c.phone_number, c.email,
		       c.created_at, c.updated_at,
		       COUNT(a.id) AS address_count,
		       COUNT(a.id) = 1 AS has_only_one_address
		FROM customers c
		LEFT JOIN addresses a ON a.customer_id = c.id
		WHERE 1=1`

	// The filter conditions never reference the joined addresses row, so the
	// count can skip the join and the GROUP BY entirely.
	countQuery = `SELECT COUNT(*) FROM customers c WHERE 1=1`

	args = []interface{}{}
	argPos := 1

	if filter.Search != "" {
		cond := fmt.Sprintf(
			" AND (c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.phone_number ILIKE $%d OR c.email ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		)
		query += cond
		countQuery += cond
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	if filter.City != "" || filter.State != "" || filter.PinCode != "" {
		cond := " AND EXISTS (SELECT 1 FROM addresses a2 WHERE a2.customer_id = c.id"
		if filter.City != "" {
			cond += fmt.Sprintf(" AND a2.city ILIKE $%d", argPos)
			args = append(args, "%"+filter.City+"%")
			argPos++
		}
		if filter.State != "" {
			cond += fmt.Sprintf(" AND a2.state ILIKE $%d", argPos)
			args = append(args, "%"+filter.State+"%")
			argPos++
		}
		if filter.PinCode != "" {
			cond += fmt.Sprintf(" AND a2.pin_code ILIKE $%d", argPos)
			args = append(args, "%"+filter.PinCode+"%")
			argPos++
		}
		cond += ")"
		query += cond
		countQuery += cond
	}

	query += fmt.Sprintf(" GROUP BY c.id ORDER BY c.%s %s", filter.SortColumn(), filter.SortDirection())

	return query, countQuery, args
}

// List retrieves customers with search, filtering, sorting and pagination
func (r *customerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]*models.CustomerWithStats, int64, error) {
	models.ValidateAndSetDefaults(&filter.Page, &filter.Limit)

	query, countQuery, args := buildCustomerListQuery(filter)

	var totalItems int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, 0, models.ErrStore("failed to count customers", err)
	}

	offset := models.CalculateOffset(filter.Page, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, models.ErrStore("failed to list customers", err)
	}
	defer rows.Close()

	customers, err := scanCustomersWithStats(rows)
	if err != nil {
		return nil, 0, err
	}

	return customers, totalItems, nil
}

// Update replaces all mutable customer fields and refreshes updated_at
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, phone_number = $3, email = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.PhoneNumber,
		customer.Email,
		customer.ID,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)

	if err == sql.ErrNoRows {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", customer.ID))
	}
	if err != nil {
		return translateConstraintError(err, "failed to update customer")
	}

	return nil
}

// Delete removes a customer; associated addresses are removed by the
// ON DELETE CASCADE constraint
func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return models.ErrStore("failed to delete customer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.ErrStore("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}

	return nil
}

// ListWithMultipleAddresses retrieves customers owning more than one address,
// most addresses first
func (r *customerRepository) ListWithMultipleAddresses(ctx context.Context) ([]*models.CustomerWithStats, error) {
	query := `
		SELECT c.id, c.first_name, c.last_name, c.phone_number, c.email,
		       c.created_at, c.updated_at,
		       COUNT(a.id) AS address_count,
		       COUNT(a.id) = 1 AS has_only_one_address
		FROM customers c
		INNER JOIN addresses a ON a.customer_id = c.id
		GROUP BY c.id
		HAVING COUNT(a.id) > 1
		ORDER BY address_count DESC`

	return r.queryCustomersWithStats(ctx, query)
}

// ListWithSingleAddress retrieves customers owning exactly one address,
// most recently created first
func (r *customerRepository) ListWithSingleAddress(ctx context.Context) ([]*models.CustomerWithStats, error) {
	query := `
		SELECT c.id, c.first_name, c.last_name, c.phone_number, c.email,
		       c.created_at, c.updated_at,
		       COUNT(a.id) AS address_count,
		       COUNT(a.id) = 1 AS has_only_one_address
		FROM customers c
		INNER JOIN addresses a ON a.customer_id = c.id
		GROUP BY c.id
		HAVING COUNT(a.id) = 1
		ORDER BY c.created_at DESC`

	return r.queryCustomersWithStats(ctx, query)
}

func (r *customerRepository) queryCustomersWithStats(ctx context.Context, query string) ([]*models.CustomerWithStats, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, models.ErrStore("failed to query customers", err)
	}
	defer rows.Close()

	return scanCustomersWithStats(rows)
}

func scanCustomersWithStats(rows *sql.Rows) ([]*models.CustomerWithStats, error) {
	customers := []*models.CustomerWithStats{}
	for rows.Next() {
		customer := &models.CustomerWithStats{}
		err := rows.Scan(
			&customer.ID,
			&customer.FirstName,
			&customer.LastName,
			&customer.PhoneNumber,
			&customer.Email,
			&customer.CreatedAt,
			&customer.UpdatedAt,
			&customer.AddressCount,
			&customer.HasOnlyOneAddress,
		)
		if err != nil {
			return nil, models.ErrStore("failed to scan customer", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, models.ErrStore("error iterating customers", err)
	}

	return customers, nil
}
