package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationResult(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int64
		wantPages  int
	}{
		{"exact fit", 1, 10, 20, 2},
		{"partial last page", 1, 10, 21, 3},
		{"single item", 1, 10, 1, 1},
		{"empty", 1, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginationResult(tt.page, tt.limit, tt.totalItems)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.totalItems, p.TotalItems)
			assert.Equal(t, tt.limit, p.ItemsPerPage)
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	page, limit := 0, 0
	ValidateAndSetDefaults(&page, &limit)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = -3, 500
	ValidateAndSetDefaults(&page, &limit)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = 4, 25
	ValidateAndSetDefaults(&page, &limit)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 10, CalculateOffset(2, 10))
	assert.Equal(t, 45, CalculateOffset(10, 5))
}
