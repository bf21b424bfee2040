package models

import (
	"regexp"
	"strings"
	"time"
)

var pinCodeRegex = regexp.MustCompile(`^[1-9]\d{5}$`)

// Address represents a customer address
type Address struct {
	ID             int64     `json:"id"`
	CustomerID     int64     `json:"customer_id"`
	AddressDetails string    `json:"address_details"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	PinCode        string    `json:"pin_code"`
	IsPrimary      bool      `json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AddressWithCustomer is an address joined with its owning customer,
// returned by address search
type AddressWithCustomer struct {
	Address
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// AddressFilter holds search criteria for addresses
type AddressFilter struct {
	City    string
	State   string
	PinCode string
}

// Validate ensures at least one search criterion is present
func (f *AddressFilter) Validate() error {
	if f.City == "" && f.State == "" && f.PinCode == "" {
		return ErrInvalidInput("at least one search parameter is required")
	}
	return nil
}

// Validate performs shape validation on address data
func (a *Address) Validate() error {
	if a.AddressDetails == "" || a.City == "" || a.State == "" || a.PinCode == "" {
		return ErrInvalidInput("address details, city, state, and pin code are required")
	}
	if len(strings.TrimSpace(a.AddressDetails)) < 5 {
		return ErrInvalidInput("address details must be at least 5 characters long")
	}
	if len(strings.TrimSpace(a.City)) < 2 {
		return ErrInvalidInput("city must be at least 2 characters long")
	}
	if len(strings.TrimSpace(a.State)) < 2 {
		return ErrInvalidInput("state must be at least 2 characters long")
	}
	if !pinCodeRegex.MatchString(a.PinCode) {
		return ErrInvalidInput("pin code must be 6 digits and not start with 0")
	}
	return nil
}
