package referrals

import (
	"errors"

	refsvc "isoko-backend/internal/application/referrals"
	"isoko-backend/internal/domain"
	"isoko-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *refsvc.Service
}

// POST /api/v1/referrals
func (h *Handlers) CreateReferral(c *fiber.Ctx) error {
	var body struct {
		ListingID   string `json:"listing_id"`
		SharerName  string `json:"sharer_name"`
		SharerPhone string `json:"sharer_phone"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	if body.SharerPhone == "" {
		return response.Error(c, "sharer_phone is required", 400, nil)
	}

	result, err := h.Service.CreateReferral(c.Context(), listingID, body.SharerName, body.SharerPhone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			return response.Error(c, err.Error(), 404, nil)
		case errors.Is(err, domain.ErrConflict):
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Referral created successfully", result, nil)
}

// POST /api/v1/referrals/track
//
// Fire-and-forget from the share link redirect; unknown or already-clicked
// codes still acknowledge.
func (h *Handlers) TrackClick(c *fiber.Ctx) error {
	var body struct {
		ReferralCode string `json:"referral_code"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	if err := h.Service.TrackClick(c.Context(), body.ReferralCode); err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Click tracked", fiber.Map{}, nil)
}

// POST /api/v1/sales/confirm
func (h *Handlers) ConfirmSale(c *fiber.Ctx) error {
	var body struct {
		ListingID    string  `json:"listing_id"`
		ReferralCode string  `json:"referral_code"`
		BuyerName    *string `json:"buyer_name"`
		BuyerPhone   *string `json:"buyer_phone"`
		SaleAmount   float64 `json:"sale_amount"`
		ProofImage   *string `json:"proof_image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	if body.SaleAmount < 0 {
		return response.Error(c, "sale_amount must not be negative", 400, nil)
	}

	result, err := h.Service.ConfirmSale(c.Context(), refsvc.ConfirmSaleRequest{
		ListingID:    listingID,
		ReferralCode: body.ReferralCode,
		BuyerName:    body.BuyerName,
		BuyerPhone:   body.BuyerPhone,
		SaleAmount:   body.SaleAmount,
		ProofImage:   body.ProofImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound),
			errors.Is(err, domain.ErrReferralNotFound):
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Sale confirmed", result, nil)
}
