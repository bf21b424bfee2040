package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Raymond9734/customer-address-api/internal/models"
)

// mockCustomerRepository is an in-memory CustomerRepository for testing
type mockCustomerRepository struct {
	customers []*models.Customer
	nextID    int64
	calls     []string
}

func (m *mockCustomerRepository) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *mockCustomerRepository) find(id int64) *models.Customer {
	for _, c := range m.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	m.record("Create")
	for _, c := range m.customers {
		if c.PhoneNumber == customer.PhoneNumber {
			return models.ErrDuplicatePhone()
		}
		if c.Email != nil && customer.Email != nil && *c.Email == *customer.Email {
			return models.ErrDuplicateEmail()
		}
	}
	m.nextID++
	customer.ID = m.nextID
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	m.customers = append(m.customers, customer)
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.CustomerWithStats, error) {
	m.record("GetByID")
	c := m.find(id)
	if c == nil {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	return &models.CustomerWithStats{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}, nil
}

func (m *mockCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	m.record("Exists")
	return m.find(id) != nil, nil
}

func matchesSearch(c *models.Customer, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	fields := []string{c.FirstName, c.LastName, c.PhoneNumber}
	if c.Email != nil {
		fields = append(fields, *c.Email)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func (m *mockCustomerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]*models.CustomerWithStats, int64, error) {
	m.record("List")
	models.ValidateAndSetDefaults(&filter.Page, &filter.Limit)

	filtered := []*models.CustomerWithStats{}
	for _, c := range m.customers {
		if !matchesSearch(c, filter.Search) {
			continue
		}
		filtered = append(filtered, &models.CustomerWithStats{
			ID:          c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			PhoneNumber: c.PhoneNumber,
			Email:       c.Email,
		})
	}

	totalItems := int64(len(filtered))

	start := models.CalculateOffset(filter.Page, filter.Limit)
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], totalItems, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	m.record("Update")
	existing := m.find(customer.ID)
	if existing == nil {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", customer.ID))
	}
	for _, c := range m.customers {
		if c.ID == customer.ID {
			continue
		}
		if c.PhoneNumber == customer.PhoneNumber {
			return models.ErrDuplicatePhone()
		}
		if c.Email != nil && customer.Email != nil && *c.Email == *customer.Email {
			return models.ErrDuplicateEmail()
		}
	}
	existing.FirstName = customer.FirstName
	existing.LastName = customer.LastName
	existing.PhoneNumber = customer.PhoneNumber
	existing.Email = customer.Email
	existing.UpdatedAt = time.Now()
	return nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	for i, c := range m.customers {
		if c.ID == id {
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
}

func (m *mockCustomerRepository) ListWithMultipleAddresses(ctx context.Context) ([]*models.CustomerWithStats, error) {
	m.record("ListWithMultipleAddresses")
	return []*models.CustomerWithStats{}, nil
}

func (m *mockCustomerRepository) ListWithSingleAddress(ctx context.Context) ([]*models.CustomerWithStats, error) {
	m.record("ListWithSingleAddress")
	return []*models.CustomerWithStats{}, nil
}

// mockAddressRepository is an in-memory AddressRepository for testing
type mockAddressRepository struct {
	addresses []*models.Address
	nextID    int64
	calls     []string
}

func (m *mockAddressRepository) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *mockAddressRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Address, error) {
	m.record("ListByCustomer")
	result := []*models.Address{}
	for _, a := range m.addresses {
		if a.CustomerID == customerID {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IsPrimary && !result[j].IsPrimary
	})
	return result, nil
}

func (m *mockAddressRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	m.record("CountByCustomer")
	var count int64
	for _, a := range m.addresses {
		if a.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (m *mockAddressRepository) Create(ctx context.Context, address *models.Address) error {
	m.record("Create")
	m.nextID++
	address.ID = m.nextID
	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt
	m.addresses = append(m.addresses, address)
	return nil
}

func (m *mockAddressRepository) GetOwner(ctx context.Context, addressID int64) (int64, error) {
	m.record("GetOwner")
	for _, a := range m.addresses {
		if a.ID == addressID {
			return a.CustomerID, nil
		}
	}
	return 0, models.ErrNotFoundWithMsg(fmt.Sprintf("address with ID %d not found", addressID))
}

func (m *mockAddressRepository) Update(ctx context.Context, address *models.Address) error {
	m.record("Update")
	for _, a := range m.addresses {
		if a.ID == address.ID {
			a.AddressDetails = address.AddressDetails
			a.City = address.City
			a.State = address.State
			a.PinCode = address.PinCode
			a.IsPrimary = address.IsPrimary
			a.UpdatedAt = time.Now()
			address.CustomerID = a.CustomerID
			return nil
		}
	}
	return models.ErrNotFoundWithMsg(fmt.Sprintf("address with ID %d not found", address.ID))
}

func (m *mockAddressRepository) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	for i, a := range m.addresses {
		if a.ID == id {
			m.addresses = append(m.addresses[:i], m.addresses[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFoundWithMsg(fmt.Sprintf("address with ID %d not found", id))
}

func (m *mockAddressRepository) ClearPrimary(ctx context.Context, customerID, exceptID int64) error {
	m.record("ClearPrimary")
	for _, a := range m.addresses {
		if a.CustomerID == customerID && a.ID != exceptID {
			a.IsPrimary = false
		}
	}
	return nil
}

func (m *mockAddressRepository) Search(ctx context.Context, filter models.AddressFilter) ([]*models.AddressWithCustomer, error) {
	m.record("Search")
	result := []*models.AddressWithCustomer{}
	for _, a := range m.addresses {
		if filter.City != "" && !strings.Contains(strings.ToLower(a.City), strings.ToLower(filter.City)) {
			continue
		}
		if filter.State != "" && !strings.Contains(strings.ToLower(a.State), strings.ToLower(filter.State)) {
			continue
		}
		if filter.PinCode != "" && !strings.Contains(a.PinCode, filter.PinCode) {
			continue
		}
		result = append(result, &models.AddressWithCustomer{Address: *a})
	}
	return result, nil
}
