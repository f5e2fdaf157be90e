package reservations

import (
	"errors"
	"time"

	"isoko-backend/internal/application/lifecycle"
	"isoko-backend/internal/domain"
	"isoko-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *lifecycle.Service
}

// POST /api/v1/reservations
func (h *Handlers) CreateReservation(c *fiber.Ctx) error {
	var body struct {
		ListingID     string `json:"listing_id"`
		BuyerID       string `json:"buyer_id"`
		PickupDate    string `json:"pickup_date"`
		PickupTime    string `json:"pickup_time"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	buyerID, err := uuid.Parse(body.BuyerID)
	if err != nil {
		return response.Error(c, "Invalid buyer_id format", 400, nil)
	}
	pickupDate, err := time.Parse("2006-01-02", body.PickupDate)
	if err != nil {
		return response.Error(c, "Invalid pickup_date format, expected YYYY-MM-DD", 400, nil)
	}
	if body.PaymentMethod != domain.PaymentMethodCash && body.PaymentMethod != domain.PaymentMethodMobileMoney {
		return response.Error(c, "payment_method must be cash or mobile_money", 400, nil)
	}

	reservation, err := h.Service.CreateReservation(c.Context(), lifecycle.CreateReservationRequest{
		ListingID:     listingID,
		BuyerID:       buyerID,
		PickupDate:    pickupDate,
		PickupTime:    body.PickupTime,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return response.SuccessCreated(c, "Reservation created successfully", reservation, nil)
}

// PUT /api/v1/reservations/:reservation_id/status
func (h *Handlers) UpdateReservationStatus(c *fiber.Ctx) error {
	reservationID, err := uuid.Parse(c.Params("reservation_id"))
	if err != nil {
		return response.Error(c, "Invalid reservation_id format", 400, nil)
	}

	var body struct {
		VendorID string `json:"vendor_id"`
		Status   string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	vendorID, err := uuid.Parse(body.VendorID)
	if err != nil {
		return response.Error(c, "Invalid vendor_id format", 400, nil)
	}

	if err := h.Service.UpdateReservationStatus(c.Context(), reservationID, vendorID, body.Status); err != nil {
		return errorResponse(c, err)
	}
	return response.Success(c, "Reservation status updated", fiber.Map{
		"reservation_id": reservationID,
		"status":         body.Status,
	}, nil)
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		return response.Error(c, err.Error(), 404, nil)
	case errors.Is(err, domain.ErrNotOwner):
		return response.Error(c, err.Error(), 403, nil)
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Error(c, err.Error(), 409, nil)
	case errors.Is(err, domain.ErrNotAnOffering):
		return response.Error(c, err.Error(), 400, nil)
	default:
		return response.Error(c, "Internal Server Error", 500, nil)
	}
}
