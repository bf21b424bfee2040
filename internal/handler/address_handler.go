package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer-address-api/internal/models"
	"github.com/Raymond9734/customer-address-api/internal/service"
)

// AddressHandler handles address HTTP requests
type AddressHandler struct {
	addressService service.AddressService
	logger         *slog.Logger
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		logger:         logger,
	}
}

// ListCustomerAddresses handles GET /customers/{id}/addresses
func (h *AddressHandler) ListCustomerAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID")
		return
	}

	addresses, err := h.addressService.ListForCustomer(r.Context(), customerID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, "Addresses retrieved successfully", addresses)
}

// CreateAddress handles POST /customers/{id}/addresses
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID")
		return
	}

	var req service.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	address, err := h.addressService.Create(r.Context(), customerID, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, "Address added successfully", address)
}

// UpdateAddress handles PUT /addresses/{addressId}
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := parseIDParam(r, "addressId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid address ID")
		return
	}

	var req service.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	address, err := h.addressService.Update(r.Context(), addressID, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, "Address updated successfully", address)
}

// DeleteAddress handles DELETE /addresses/{addressId}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := parseIDParam(r, "addressId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid address ID")
		return
	}

	if err := h.addressService.Delete(r.Context(), addressID); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, "Address deleted successfully", map[string]int64{"id": addressID})
}

// SearchAddresses handles GET /addresses/search
func (h *AddressHandler) SearchAddresses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.AddressFilter{
		City:    query.Get("city"),
		State:   query.Get("state"),
		PinCode: query.Get("pin_code"),
	}

	addresses, err := h.addressService.Search(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, "Addresses found successfully", addresses)
}
