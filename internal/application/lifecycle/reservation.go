package lifecycle

import (
	"context"
	"errors"
	"time"

	"isoko-backend/internal/application/notifications"
	"isoko-backend/internal/application/trust"
	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateReservationRequest struct {
	ListingID     uuid.UUID
	BuyerID       uuid.UUID
	PickupDate    time.Time
	PickupTime    string
	PaymentMethod string
}

// CreateReservation inserts a pending reservation, moves the listing to
// reserved and notifies the vendor, atomically. The listing must be an
// active offering; vendor_id is frozen from the listing at creation time.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	var reservation domain.Reservation

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := findOffering(tx, req.ListingID)
		if err != nil {
			return err
		}

		// Gate on the active→reserved transition so a concurrent
		// reservation or order cannot double-book the listing.
		res := tx.Model(&domain.Listing{}).
			Where("id = ? AND status = ?", listing.ID, domain.ListingStatusActive).
			Update("status", domain.ListingStatusReserved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidTransition
		}

		reservation = domain.Reservation{
			ListingID:     req.ListingID,
			BuyerID:       req.BuyerID,
			VendorID:      listing.VendorID,
			PickupDate:    req.PickupDate,
			PickupTime:    req.PickupTime,
			PaymentMethod: req.PaymentMethod,
			Status:        domain.ReservationStatusPending,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		if err := appendEvent(tx, listing.ID, domain.ListingEventReserved, &req.BuyerID, map[string]interface{}{
			"reservation_id": reservation.ID,
		}); err != nil {
			return err
		}

		return notifications.Append(tx, listing.VendorID, domain.UserTypeVendor,
			domain.NotificationTypeReservation, "New Reservation Request",
			"You have a new reservation request for pickup", &reservation.ID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.ListingID)
	return &reservation, nil
}

// reservationStatusMessages are the buyer-facing descriptions per status.
var reservationStatusMessages = map[string]string{
	domain.ReservationStatusAccepted:  "Your reservation has been accepted",
	domain.ReservationStatusRejected:  "Your reservation has been rejected",
	domain.ReservationStatusCompleted: "Your order has been completed",
	domain.ReservationStatusCancelled: "Your reservation has been cancelled",
}

// UpdateReservationStatus applies a vendor's decision on a reservation. On
// completed it also completes the listing (trust +5, referral settlement);
// on rejected/cancelled it returns the listing to active. The reservation
// update is conditional on a non-terminal status, so concurrent completions
// serialize: exactly one applies the downstream effects.
func (s *Service) UpdateReservationStatus(ctx context.Context, reservationID, vendorID uuid.UUID, status string) error {
	message, ok := reservationStatusMessages[status]
	if !ok {
		return domain.ErrInvalidTransition
	}

	var listingID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation domain.Reservation
		if err := tx.Where("id = ?", reservationID).First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReservationNotFound
			}
			return err
		}
		if reservation.VendorID != vendorID {
			return domain.ErrNotOwner
		}
		listingID = reservation.ListingID

		res := tx.Model(&domain.Reservation{}).
			Where("id = ? AND vendor_id = ? AND status IN ?", reservationID, vendorID,
				[]string{domain.ReservationStatusPending, domain.ReservationStatusAccepted}).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidTransition
		}

		switch status {
		case domain.ReservationStatusCompleted:
			if err := completeListing(tx, reservation.ListingID, vendorID,
				trust.DeltaReservationCompleted, reservationID); err != nil {
				return err
			}
		case domain.ReservationStatusRejected, domain.ReservationStatusCancelled:
			if err := reopenListing(tx, reservation.ListingID, reservationID); err != nil {
				return err
			}
		}

		return notifications.Append(tx, reservation.BuyerID, domain.UserTypeBuyer,
			domain.NotificationTypeReservation, "Reservation Update", message, &reservationID)
	})
	if err != nil {
		return err
	}

	log.Info().Str("reservation_id", reservationID.String()).Str("status", status).Msg("Reservation status updated")
	s.invalidate(ctx, listingID)
	return nil
}
