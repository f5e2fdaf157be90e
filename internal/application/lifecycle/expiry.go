package lifecycle

import (
	"context"
	"time"

	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Expire applies the time-based expiry transition to one listing. Each
// listing's expiry is its own transaction, so an interrupted sweep leaves no
// partial state. A listing that already reached a terminal status yields
// ErrInvalidTransition.
func (s *Service) Expire(ctx context.Context, listingID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Listing{}).
			Where("id = ? AND status IN ?", listingID,
				[]string{domain.ListingStatusActive, domain.ListingStatusReserved}).
			Update("status", domain.ListingStatusExpired)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Listing{}).Where("id = ?", listingID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrListingNotFound
			}
			return domain.ErrInvalidTransition
		}
		return appendEvent(tx, listingID, domain.ListingEventExpired, nil, nil)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, listingID)
	return nil
}

// ExpireOverdue sweeps listings whose expires_at has passed. Listings that
// raced into a terminal state between the scan and their own transaction are
// skipped, not failed.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	var due []domain.Listing
	err := s.DB.WithContext(ctx).
		Select("id").
		Where("expires_at IS NOT NULL AND expires_at <= ? AND status IN ?", time.Now(),
			[]string{domain.ListingStatusActive, domain.ListingStatusReserved}).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, listing := range due {
		if err := s.Expire(ctx, listing.ID); err != nil {
			if err == domain.ErrInvalidTransition || err == domain.ErrListingNotFound {
				continue
			}
			log.Error().Err(err).Str("listing_id", listing.ID.String()).Msg("Listing expiry failed")
			continue
		}
		expired++
	}
	return expired, nil
}
