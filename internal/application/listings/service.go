package listings

import (
	"context"
	"errors"
	"time"

	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OfferingMatcher runs wanted-listing matching for a freshly created
// offering. Matching happens after the listing's transaction has committed.
type OfferingMatcher interface {
	MatchOffering(ctx context.Context, offering *domain.Listing) int
}

// Service creates listings and serves cached listing reads.
type Service struct {
	DB           *gorm.DB
	Cache        *Cache
	Matcher      OfferingMatcher
	LifespanDays int
}

// CreateListingRequest carries the vendor-supplied listing fields. Status,
// trust score and expiry are assigned here, never by the caller.
type CreateListingRequest struct {
	VendorID    uuid.UUID
	CategoryID  *uuid.UUID
	Title       string
	Description *string
	Price       float64
	Currency    string
	ListingType string
}

func (s *Service) CreateListing(ctx context.Context, req CreateListingRequest) (*domain.Listing, error) {
	if req.ListingType == "" {
		req.ListingType = domain.ListingTypeOffering
	}
	if req.ListingType != domain.ListingTypeOffering && req.ListingType != domain.ListingTypeWanted {
		return nil, domain.ErrInvalidListingType
	}
	if req.Currency == "" {
		req.Currency = "BIF"
	}

	lifespan := s.LifespanDays
	if lifespan <= 0 {
		lifespan = 30
	}
	expiresAt := time.Now().AddDate(0, 0, lifespan)

	listing := domain.Listing{
		VendorID:    req.VendorID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		ListingType: req.ListingType,
		Status:      domain.ListingStatusActive,
		IsActive:    true,
		ExpiresAt:   &expiresAt,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Vendor{}).Where("id = ?", req.VendorID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrVendorNotFound
		}
		return tx.Create(&listing).Error
	})
	if err != nil {
		return nil, err
	}

	if listing.ListingType == domain.ListingTypeOffering && s.Matcher != nil {
		matched := s.Matcher.MatchOffering(ctx, &listing)
		if matched > 0 {
			log.Info().
				Str("listing_id", listing.ID.String()).
				Int("matches", matched).
				Msg("Offering matched wanted listings")
		}
	}

	return &listing, nil
}

// GetListing serves a listing through the snapshot cache. Cache misses read
// the ledger and backfill.
func (s *Service) GetListing(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	if cached := s.Cache.Get(ctx, listingID); cached != nil {
		return cached, nil
	}

	var listing domain.Listing
	err := s.DB.WithContext(ctx).First(&listing, "id = ?", listingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	s.Cache.Set(ctx, &listing)
	return &listing, nil
}
