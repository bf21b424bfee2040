package service

import (
	"github.com/Raymond9734/customer-address-api/internal/models"
)

// CustomerRequest represents a request to create or fully replace a customer
type CustomerRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Email       *string `json:"email,omitempty"`
}

// toModel converts the request into a customer, treating an empty email as
// absent so the nullable unique constraint is not tripped by empty strings
func (r *CustomerRequest) toModel() *models.Customer {
	email := r.Email
	if email != nil && *email == "" {
		email = nil
	}
	return &models.Customer{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Email:       email,
	}
}

// AddressRequest represents a request to create or fully replace an address
type AddressRequest struct {
	AddressDetails string `json:"address_details"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code"`
	IsPrimary      bool   `json:"is_primary"`
}

func (r *AddressRequest) toModel() *models.Address {
	return &models.Address{
		AddressDetails: r.AddressDetails,
		City:           r.City,
		State:          r.State,
		PinCode:        r.PinCode,
		IsPrimary:      r.IsPrimary,
	}
}

// CustomerListResult represents paginated customer list results
type CustomerListResult struct {
	Data       []*models.CustomerWithStats `json:"data"`
	Pagination models.PaginationResult     `json:"pagination"`
}

// DeleteCustomerResult reports a customer deletion and how many addresses
// went with it
type DeleteCustomerResult struct {
	ID               int64 `json:"id"`
	AddressesDeleted int64 `json:"addressesDeleted"`
}
