package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customer-address-api/internal/models"
	"github.com/Raymond9734/customer-address-api/internal/repository"
)

// AddressService handles address business logic, including the rule that a
// customer has at most one primary address
type AddressService interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]*models.Address, error)
	Create(ctx context.Context, customerID int64, req *AddressRequest) (*models.Address, error)
	Update(ctx context.Context, addressID int64, req *AddressRequest) (*models.Address, error)
	Delete(ctx context.Context, addressID int64) error
	Search(ctx context.Context, filter models.AddressFilter) ([]*models.AddressWithCustomer, error)
}

type addressService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	logger       *slog.Logger
}

// NewAddressService creates a new address service
func NewAddressService(
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	logger *slog.Logger,
) AddressService {
	return &addressService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		logger:       logger,
	}
}

// ListForCustomer retrieves a customer's addresses, primary first. An unknown
// customer yields an empty list, not an error.
func (s *addressService) ListForCustomer(ctx context.Context, customerID int64) ([]*models.Address, error) {
	return s.addressRepo.ListByCustomer(ctx, customerID)
}

// Create validates and inserts a new address for an existing customer. When
// the new address is primary, the customer's other primary flags are cleared
// first. The two statements are not transactional; a concurrent write to the
// same customer's addresses between them can leave two primaries.
func (s *addressService) Create(ctx context.Context, customerID int64, req *AddressRequest) (*models.Address, error) {
	address := req.toModel()
	address.CustomerID = customerID
	if err := address.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", customerID))
	}

	if address.IsPrimary {
		if err := s.addressRepo.ClearPrimary(ctx, customerID, 0); err != nil {
			return nil, err
		}
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error("failed to create address",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("address created",
		slog.Int64("address_id", address.ID),
		slog.Int64("customer_id", customerID),
		slog.Bool("is_primary", address.IsPrimary),
	)

	return address, nil
}

// Update validates and fully replaces an existing address. When the address
// becomes primary, the owning customer's other primary flags are cleared
// first, excluding the row being updated.
func (s *addressService) Update(ctx context.Context, addressID int64, req *AddressRequest) (*models.Address, error) {
	address := req.toModel()
	address.ID = addressID
	if err := address.Validate(); err != nil {
		return nil, err
	}

	customerID, err := s.addressRepo.GetOwner(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if address.IsPrimary {
		if err := s.addressRepo.ClearPrimary(ctx, customerID, addressID); err != nil {
			return nil, err
		}
	}

	// The row can vanish between the owner lookup and the update; the
	// repository reports that as not found and we pass it through.
	if err := s.addressRepo.Update(ctx, address); err != nil {
		s.logger.Error("failed to update address",
			slog.Int64("address_id", addressID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("address updated",
		slog.Int64("address_id", addressID),
		slog.Int64("customer_id", customerID),
		slog.Bool("is_primary", address.IsPrimary),
	)

	return address, nil
}

// Delete removes an address
func (s *addressService) Delete(ctx context.Context, addressID int64) error {
	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		s.logger.Error("failed to delete address",
			slog.Int64("address_id", addressID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("address deleted",
		slog.Int64("address_id", addressID),
	)

	return nil
}

// Search retrieves addresses matching at least one filter, joined with their
// owning customer
func (s *addressService) Search(ctx context.Context, filter models.AddressFilter) ([]*models.AddressWithCustomer, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return s.addressRepo.Search(ctx, filter)
}
