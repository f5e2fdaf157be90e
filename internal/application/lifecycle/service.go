package lifecycle

import (
	"context"
	"encoding/json"

	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListingCache is invalidated after every committed status transition so
// cached catalog reads never serve a stale status for long.
type ListingCache interface {
	Invalidate(ctx context.Context, listingID uuid.UUID)
}

// Service is the listing lifecycle coordinator. Every public operation runs
// as one ledger transaction: partial effects never commit.
type Service struct {
	DB    *gorm.DB
	Cache ListingCache
}

func (s *Service) invalidate(ctx context.Context, listingID uuid.UUID) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, listingID)
	}
}

// appendEvent writes an audit row on the transaction of the transition it
// records.
func appendEvent(tx *gorm.DB, listingID uuid.UUID, eventType string, actorID *uuid.UUID, data map[string]interface{}) error {
	b, _ := json.Marshal(data)
	return tx.Create(&domain.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		ActorID:   actorID,
		EventData: datatypes.JSON(b),
	}).Error
}

// findOffering loads an active offering listing for the reservation/order
// paths.
func findOffering(tx *gorm.DB, listingID uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := tx.Where("id = ? AND is_active = ?", listingID, true).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	if listing.ListingType != domain.ListingTypeOffering {
		return nil, domain.ErrNotAnOffering
	}
	return &listing, nil
}
