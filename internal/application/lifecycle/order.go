package lifecycle

import (
	"context"
	"errors"

	"isoko-backend/internal/application/notifications"
	"isoko-backend/internal/application/trust"
	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	ListingID       uuid.UUID
	BuyerID         uuid.UUID
	DeliveryAddress string
	ContactInfo     string
}

// CreateOrder creates a delivery order against an offering listing, freezing
// vendor_id and amount from the listing. The listing stays active until the
// payment webhook confirms.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := findOffering(tx, req.ListingID)
		if err != nil {
			return err
		}

		order = domain.Order{
			ListingID:       req.ListingID,
			BuyerID:         req.BuyerID,
			VendorID:        listing.VendorID,
			Amount:          listing.Price,
			DeliveryAddress: req.DeliveryAddress,
			ContactInfo:     req.ContactInfo,
			PaymentStatus:   domain.PaymentStatusPending,
			OrderStatus:     domain.OrderStatusPending,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

var validPaymentStatuses = map[string]bool{
	domain.PaymentStatusAuthorized: true,
	domain.PaymentStatusConfirmed:  true,
	domain.PaymentStatusFailed:     true,
}

// ProcessPaymentWebhook applies a payment status update from the payment
// collaborator. Webhooks arrive at-least-once, so the update is idempotent
// keyed on the (order_id, payment_status) transition: re-delivering the same
// status changes nothing and emits nothing. Only the first transition into
// confirmed promotes the order, reserves the listing and notifies both
// parties.
func (s *Service) ProcessPaymentWebhook(ctx context.Context, orderID uuid.UUID, externalRef, paymentStatus string) error {
	if !validPaymentStatuses[paymentStatus] {
		return domain.ErrInvalidTransition
	}

	var listingID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		listingID = order.ListingID

		if order.PaymentStatus == paymentStatus {
			// Redelivered webhook: already applied, nothing to do.
			return nil
		}

		res := tx.Model(&domain.Order{}).
			Where("id = ? AND payment_status = ?", orderID, order.PaymentStatus).
			Updates(map[string]interface{}{
				"payment_status": paymentStatus,
				"external_ref":   externalRef,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent delivery applied a transition first.
			return nil
		}

		if paymentStatus != domain.PaymentStatusConfirmed {
			return nil
		}

		// Only the first confirmation promotes the order.
		res = tx.Model(&domain.Order{}).
			Where("id = ? AND order_status = ?", orderID, domain.OrderStatusPending).
			Update("order_status", domain.OrderStatusConfirmed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		resListing := tx.Model(&domain.Listing{}).
			Where("id = ? AND status = ?", order.ListingID, domain.ListingStatusActive).
			Update("status", domain.ListingStatusReserved)
		if resListing.Error != nil {
			return resListing.Error
		}

		if err := appendEvent(tx, order.ListingID, domain.ListingEventPaymentConfirmed, nil, map[string]interface{}{
			"order_id":     orderID,
			"external_ref": externalRef,
		}); err != nil {
			return err
		}

		if err := notifications.Append(tx, order.VendorID, domain.UserTypeVendor,
			domain.NotificationTypePayment, "Payment Confirmed",
			"Payment confirmed. Please prepare the order for delivery", &orderID); err != nil {
			return err
		}
		return notifications.Append(tx, order.BuyerID, domain.UserTypeBuyer,
			domain.NotificationTypePayment, "Order Confirmed",
			"Your payment has been confirmed. Your order is being prepared", &orderID)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, listingID)
	return nil
}

// deliveryTransitions lists the order statuses a delivery update may move
// from, per target status.
var deliveryTransitions = map[string][]string{
	domain.OrderStatusShipped:   {domain.OrderStatusConfirmed},
	domain.OrderStatusDelivered: {domain.OrderStatusConfirmed, domain.OrderStatusShipped},
}

var deliveryMessages = map[string]string{
	domain.OrderStatusShipped:   "Your order has been shipped",
	domain.OrderStatusDelivered: "Your order has been delivered",
}

// UpdateDeliveryStatus is the vendor's shipped/delivered progression; it
// notifies the buyer with a status-specific message.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, orderID, vendorID uuid.UUID, status string) error {
	from, ok := deliveryTransitions[status]
	if !ok {
		return domain.ErrInvalidTransition
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if order.VendorID != vendorID {
			return domain.ErrNotOwner
		}

		res := tx.Model(&domain.Order{}).
			Where("id = ? AND vendor_id = ? AND order_status IN ?", orderID, vendorID, from).
			Update("order_status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidTransition
		}

		return notifications.Append(tx, order.BuyerID, domain.UserTypeBuyer,
			domain.NotificationTypeOrderStatus, "Delivery Update", deliveryMessages[status], &orderID)
	})
}

// ConfirmReceipt is the buyer's acknowledgement that the order arrived. It
// is the delivery-path analogue of reservation completion and shares the
// same settlement routine: listing completed, trust +10, referral settled.
func (s *Service) ConfirmReceipt(ctx context.Context, orderID, buyerID uuid.UUID) error {
	var listingID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if order.BuyerID != buyerID {
			return domain.ErrNotOwner
		}
		listingID = order.ListingID

		res := tx.Model(&domain.Order{}).
			Where("id = ? AND buyer_id = ? AND order_status <> ?", orderID, buyerID, domain.OrderStatusCancelled).
			Update("order_status", domain.OrderStatusDelivered)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidTransition
		}

		return completeListing(tx, order.ListingID, order.VendorID, trust.DeltaReceiptConfirmed, orderID)
	})
	if err != nil {
		return err
	}

	log.Info().Str("order_id", orderID.String()).Msg("Receipt confirmed, listing completed")
	s.invalidate(ctx, listingID)
	return nil
}
