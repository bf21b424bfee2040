package models

import (
	"regexp"
	"strings"
	"time"
)

var (
	phoneRegex      = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Customer represents a customer in the system
type Customer struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	Email       *string   `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerWithStats is a customer with aggregates derived from its addresses
type CustomerWithStats struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	PhoneNumber       string    `json:"phone_number"`
	Email             *string   `json:"email"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	AddressCount      int64     `json:"address_count"`
	HasOnlyOneAddress bool      `json:"has_only_one_address"`
}

// CustomerFilter holds search, filter, sort and pagination options for listing customers
type CustomerFilter struct {
	Search    string
	City      string
	State     string
	PinCode   string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// customerSortFields whitelists the columns a listing may be ordered by
var customerSortFields = map[string]bool{
	"first_name":   true,
	"last_name":    true,
	"phone_number": true,
	"created_at":   true,
}

// SortColumn resolves the sort field, falling back to created_at for
// anything outside the whitelist
func (f *CustomerFilter) SortColumn() string {
	if customerSortFields[f.SortBy] {
		return f.SortBy
	}
	return "created_at"
}

// SortDirection resolves the sort order case-insensitively, falling back to DESC
func (f *CustomerFilter) SortDirection() string {
	if strings.EqualFold(f.SortOrder, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// NormalizePhone strips all whitespace from a phone number before validation
func NormalizePhone(phone string) string {
	return whitespaceRegex.ReplaceAllString(phone, "")
}

// Validate performs shape validation on customer data
func (c *Customer) Validate() error {
	if c.FirstName == "" || c.LastName == "" || c.PhoneNumber == "" {
		return ErrInvalidInput("first name, last name, and phone number are required")
	}
	if len(strings.TrimSpace(c.FirstName)) < 2 {
		return ErrInvalidInput("first name must be at least 2 characters long")
	}
	if len(strings.TrimSpace(c.LastName)) < 2 {
		return ErrInvalidInput("last name must be at least 2 characters long")
	}
	if !phoneRegex.MatchString(NormalizePhone(c.PhoneNumber)) {
		return ErrInvalidInput("invalid phone number format")
	}
	if c.Email != nil && *c.Email != "" && !emailRegex.MatchString(*c.Email) {
		return ErrInvalidInput("invalid email format")
	}
	return nil
}
