package lifecycle

import (
	"isoko-backend/internal/application/referrals"
	"isoko-backend/internal/application/trust"
	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// completeListing is the single completion routine shared by the pickup and
// delivery paths: mark the listing completed, bump the vendor's trust score
// and settle any open referral, all on the caller's transaction.
//
// The conditional listing update gates the side effects: when two callers
// race to complete the same listing, only the one whose update sticks
// applies the trust and referral effects; the other gets ErrInvalidTransition.
func completeListing(tx *gorm.DB, listingID, vendorID uuid.UUID, trustDelta int, relatedID uuid.UUID) error {
	res := tx.Model(&domain.Listing{}).
		Where("id = ? AND status IN ?", listingID, []string{domain.ListingStatusActive, domain.ListingStatusReserved}).
		Update("status", domain.ListingStatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}

	if err := trust.Adjust(tx, vendorID, trustDelta); err != nil {
		return err
	}
	if _, err := referrals.Settle(tx, listingID, &relatedID); err != nil {
		return err
	}
	return appendEvent(tx, listingID, domain.ListingEventCompleted, &vendorID, map[string]interface{}{
		"trust_delta": trustDelta,
		"related_id":  relatedID,
	})
}

// reopenListing returns a listing to active after a rejected or cancelled
// reservation. A listing that already moved on (e.g. expired by the sweep)
// is left alone.
func reopenListing(tx *gorm.DB, listingID uuid.UUID, relatedID uuid.UUID) error {
	res := tx.Model(&domain.Listing{}).
		Where("id = ? AND status = ?", listingID, domain.ListingStatusReserved).
		Update("status", domain.ListingStatusActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return appendEvent(tx, listingID, domain.ListingEventReopened, nil, map[string]interface{}{
		"related_id": relatedID,
	})
}
