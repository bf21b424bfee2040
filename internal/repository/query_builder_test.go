package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customer-address-api/internal/models"
)

func TestBuildCustomerListQueryNoFilters(t *testing.T) {
	query, countQuery, args := buildCustomerListQuery(models.CustomerFilter{})

	assert.Empty(t, args)
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "EXISTS")
	assert.Contains(t, query, "LEFT JOIN addresses")
	assert.Contains(t, query, "GROUP BY c.id")
	assert.Contains(t, query, "ORDER BY c.created_at DESC")
	assert.NotContains(t, countQuery, "JOIN")
	assert.NotContains(t, countQuery, "GROUP BY")
}

func TestBuildCustomerListQuerySearch(t *testing.T) {
	query, countQuery, args := buildCustomerListQuery(models.CustomerFilter{Search: "ann"})

	// One argument fans out across all four searchable fields
	require.Len(t, args, 1)
	assert.Equal(t, "%ann%", args[0])
	assert.Contains(t, query, "c.first_name ILIKE $1")
	assert.Contains(t, query, "c.last_name ILIKE $1")
	assert.Contains(t, query, "c.phone_number ILIKE $1")
	assert.Contains(t, query, "c.email ILIKE $1")
	assert.Contains(t, countQuery, "c.first_name ILIKE $1")
}

func TestBuildCustomerListQueryAddressFilters(t *testing.T) {
	query, _, args := buildCustomerListQuery(models.CustomerFilter{
		City:  "Pune",
		State: "Maharashtra",
	})

	// Both filters must land inside a single EXISTS subquery, ANDed, so one
	// address row has to satisfy both
	require.Len(t, args, 2)
	assert.Equal(t, "%Pune%", args[0])
	assert.Equal(t, "%Maharashtra%", args[1])
	assert.Contains(t, query, "EXISTS (SELECT 1 FROM addresses a2 WHERE a2.customer_id = c.id AND a2.city ILIKE $1 AND a2.state ILIKE $2)")
	assert.NotContains(t, query, "a2.pin_code")
}

func TestBuildCustomerListQueryPinCodeOnly(t *testing.T) {
	query, _, args := buildCustomerListQuery(models.CustomerFilter{PinCode: "400"})

	require.Len(t, args, 1)
	assert.Contains(t, query, "a2.pin_code ILIKE $1")
	assert.NotContains(t, query, "a2.city")
	assert.NotContains(t, query, "a2.state")
}

func TestBuildCustomerListQueryPlaceholderNumbering(t *testing.T) {
	query, countQuery, args := buildCustomerListQuery(models.CustomerFilter{
		Search:  "ann",
		City:    "Pune",
		State:   "MH",
		PinCode: "400",
	})

	require.Len(t, args, 4)
	assert.Contains(t, query, "c.email ILIKE $1")
	assert.Contains(t, query, "a2.city ILIKE $2")
	assert.Contains(t, query, "a2.state ILIKE $3")
	assert.Contains(t, query, "a2.pin_code ILIKE $4")
	// Count query shares the conditions and the args verbatim
	assert.Contains(t, countQuery, "a2.pin_code ILIKE $4")
}

func TestBuildCustomerListQuerySort(t *testing.T) {
	query, _, _ := buildCustomerListQuery(models.CustomerFilter{
		SortBy:    "last_name",
		SortOrder: "asc",
	})
	assert.Contains(t, query, "ORDER BY c.last_name ASC")

	// Anything outside the whitelist falls back to the default ordering
	query, _, _ = buildCustomerListQuery(models.CustomerFilter{
		SortBy:    "email; DROP TABLE customers",
		SortOrder: "maybe",
	})
	assert.Contains(t, query, "ORDER BY c.created_at DESC")
}

func TestBuildAddressSearchQuery(t *testing.T) {
	query, args := buildAddressSearchQuery(models.AddressFilter{City: "Pune"})

	require.Len(t, args, 1)
	assert.Equal(t, "%Pune%", args[0])
	assert.Contains(t, query, "a.city ILIKE $1")
	assert.NotContains(t, query, "a.state ILIKE")
	assert.NotContains(t, query, "a.pin_code ILIKE")
	assert.Contains(t, query, "INNER JOIN customers")
	assert.Contains(t, query, "ORDER BY c.first_name, c.last_name")
}

func TestBuildAddressSearchQueryAllFilters(t *testing.T) {
	query, args := buildAddressSearchQuery(models.AddressFilter{
		City:    "Pune",
		State:   "MH",
		PinCode: "400",
	})

	require.Len(t, args, 3)
	assert.Contains(t, query, "a.city ILIKE $1")
	assert.Contains(t, query, "a.state ILIKE $2")
	assert.Contains(t, query, "a.pin_code ILIKE $3")
}
