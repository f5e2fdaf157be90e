package orders

import (
	"errors"

	"isoko-backend/internal/application/lifecycle"
	"isoko-backend/internal/domain"
	"isoko-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *lifecycle.Service
}

// POST /api/v1/orders
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var body struct {
		ListingID       string `json:"listing_id"`
		BuyerID         string `json:"buyer_id"`
		DeliveryAddress string `json:"delivery_address"`
		ContactInfo     string `json:"contact_info"`
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
	if body.DeliveryAddress == "" {
		return response.Error(c, "delivery_address is required", 400, nil)
	}

	order, err := h.Service.CreateOrder(c.Context(), lifecycle.CreateOrderRequest{
		ListingID:       listingID,
		BuyerID:         buyerID,
		DeliveryAddress: body.DeliveryAddress,
		ContactInfo:     body.ContactInfo,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return response.SuccessCreated(c, "Order created successfully", order, nil)
}

// POST /api/v1/orders/payment-webhook
//
// Gateway-facing. Replays and out-of-order deliveries are absorbed: a status
// the order already holds acknowledges without side effects.
func (h *Handlers) PaymentWebhook(c *fiber.Ctx) error {
	var body struct {
		OrderID       string `json:"order_id"`
		ExternalRef   string `json:"external_ref"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	orderID, err := uuid.Parse(body.OrderID)
	if err != nil {
		return response.Error(c, "Invalid order_id format", 400, nil)
	}

	if err := h.Service.ProcessPaymentWebhook(c.Context(), orderID, body.ExternalRef, body.PaymentStatus); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return response.Error(c, "Unknown payment_status", 400, nil)
		}
		return errorResponse(c, err)
	}
	return response.Success(c, "Payment status processed", fiber.Map{"order_id": orderID}, nil)
}

// PUT /api/v1/orders/:order_id/delivery
func (h *Handlers) UpdateDeliveryStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		return response.Error(c, "Invalid order_id format", 400, nil)
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

	if err := h.Service.UpdateDeliveryStatus(c.Context(), orderID, vendorID, body.Status); err != nil {
		return errorResponse(c, err)
	}
	return response.Success(c, "Delivery status updated", fiber.Map{
		"order_id": orderID,
		"status":   body.Status,
	}, nil)
}

// POST /api/v1/orders/:order_id/confirm-receipt
func (h *Handlers) ConfirmReceipt(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("order_id"))
	if err != nil {
		return response.Error(c, "Invalid order_id format", 400, nil)
	}

	var body struct {
		BuyerID string `json:"buyer_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	buyerID, err := uuid.Parse(body.BuyerID)
	if err != nil {
		return response.Error(c, "Invalid buyer_id format", 400, nil)
	}

	if err := h.Service.ConfirmReceipt(c.Context(), orderID, buyerID); err != nil {
		return errorResponse(c, err)
	}
	return response.Success(c, "Receipt confirmed", fiber.Map{"order_id": orderID}, nil)
}

func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
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
