package service

import (
	"context"
	"log/slog"

	"github.com/Raymond9734/customer-address-api/internal/models"
	"github.com/Raymond9734/customer-address-api/internal/repository"
)

// CustomerService handles customer business logic
type CustomerService interface {
	Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.CustomerWithStats, error)
	List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error)
	Update(ctx context.Context, id int64, req *CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) (*DeleteCustomerResult, error)
	ListWithMultipleAddresses(ctx context.Context) ([]*models.CustomerWithStats, error)
	ListWithSingleAddress(ctx context.Context) ([]*models.CustomerWithStats, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		logger:       logger,
	}
}

// Create validates and creates a new customer
func (s *customerService) Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error) {
	customer := req.toModel()
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("failed to create customer",
			slog.String("phone_number", customer.PhoneNumber),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("customer created",
		slog.Int64("customer_id", customer.ID),
		slog.String("phone_number", customer.PhoneNumber),
	)

	return customer, nil
}

// GetByID retrieves a customer by ID with its address aggregates
func (s *customerService) GetByID(ctx context.Context, id int64) (*models.CustomerWithStats, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// List retrieves customers with search, filtering, sorting and pagination
func (s *customerService) List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error) {
	models.ValidateAndSetDefaults(&filter.Page, &filter.Limit)

	customers, totalItems, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &CustomerListResult{
		Data:       customers,
		Pagination: models.NewPaginationResult(filter.Page, filter.Limit, totalItems),
	}, nil
}

// Update validates and fully replaces an existing customer
func (s *customerService) Update(ctx context.Context, id int64, req *CustomerRequest) (*models.Customer, error) {
	customer := req.toModel()
	customer.ID = id
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Error("failed to update customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("customer updated",
		slog.Int64("customer_id", id),
	)

	return customer, nil
}

// Delete removes a customer; its addresses go with it via the cascade. The
// address count is taken first, purely to report it back to the caller.
func (s *customerService) Delete(ctx context.Context, id int64) (*DeleteCustomerResult, error) {
	addressCount, err := s.addressRepo.CountByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete customer",
			slog.Int64("customer_id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
		slog.Int64("addresses_deleted", addressCount),
	)

	return &DeleteCustomerResult{
		ID:               id,
		AddressesDeleted: addressCount,
	}, nil
}

// ListWithMultipleAddresses retrieves customers owning more than one address
func (s *customerService) ListWithMultipleAddresses(ctx context.Context) ([]*models.CustomerWithStats, error) {
	return s.customerRepo.ListWithMultipleAddresses(ctx)
}

// ListWithSingleAddress retrieves customers owning exactly one address
func (s *customerService) ListWithSingleAddress(ctx context.Context) ([]*models.CustomerWithStats, error) {
	return s.customerRepo.ListWithSingleAddress(ctx)
}
