package listings

import (
	"errors"

	listsvc "isoko-backend/internal/application/listings"
	"isoko-backend/internal/domain"
	"isoko-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
}

// POST /api/v1/listings
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body struct {
		VendorID    string  `json:"vendor_id"`
		CategoryID  *string `json:"category_id"`
		Title       string  `json:"title"`
		Description *string `json:"description"`
		Price       float64 `json:"price"`
		Currency    string  `json:"currency"`
		ListingType string  `json:"listing_type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	vendorID, err := uuid.Parse(body.VendorID)
	if err != nil {
		return response.Error(c, "Invalid vendor_id format", 400, nil)
	}
	if body.Title == "" {
		return response.Error(c, "title is required", 400, nil)
	}
	if body.Price < 0 {
		return response.Error(c, "price must not be negative", 400, nil)
	}
	var categoryID *uuid.UUID
	if body.CategoryID != nil && *body.CategoryID != "" {
		id, err := uuid.Parse(*body.CategoryID)
		if err != nil {
			return response.Error(c, "Invalid category_id format", 400, nil)
		}
		categoryID = &id
	}

	listing, err := h.Service.CreateListing(c.Context(), listsvc.CreateListingRequest{
		VendorID:    vendorID,
		CategoryID:  categoryID,
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Currency:    body.Currency,
		ListingType: body.ListingType,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVendorNotFound):
			return response.Error(c, err.Error(), 404, nil)
		case errors.Is(err, domain.ErrInvalidListingType):
			return response.Error(c, err.Error(), 400, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GET /api/v1/listings/:listing_id
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	listing, err := h.Service.GetListing(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}
