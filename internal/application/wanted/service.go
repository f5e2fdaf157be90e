package wanted

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"isoko-backend/internal/application/notifications"
	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service matches new offerings against open wanted listings and gates
// vendor contact details behind the reveal fee.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// MatchOffering scans active wanted listings for ones the given offering
// satisfies and records a match per hit. It runs after the offering's own
// transaction has committed; each match is written in its own transaction so
// one failure never blocks the rest. Matching is best effort and never
// returns an error for individual candidates.
func (s *Service) MatchOffering(ctx context.Context, offering *domain.Listing) int {
	var candidates []domain.WantedListing
	query := s.DB.WithContext(ctx).Where("status = ?", domain.WantedStatusActive)
	if offering.CategoryID != nil {
		query = query.Where("category_id IS NULL OR category_id = ?", *offering.CategoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}
	if err := query.Find(&candidates).Error; err != nil {
		log.Error().Err(err).Str("listing_id", offering.ID.String()).Msg("Wanted match scan failed")
		return 0
	}

	matched := 0
	for _, wanted := range candidates {
		if !textMatches(offering.Title, wanted.Description) {
			continue
		}
		if err := s.recordMatch(ctx, offering, &wanted); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			log.Error().Err(err).
				Str("listing_id", offering.ID.String()).
				Str("wanted_listing_id", wanted.ID.String()).
				Msg("Wanted match record failed")
			continue
		}
		matched++
	}
	return matched
}

func (s *Service) recordMatch(ctx context.Context, offering *domain.Listing, wanted *domain.WantedListing) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&domain.WantedMatch{}).
			Where("wanted_listing_id = ? AND offering_listing_id = ?", wanted.ID, offering.ID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		match := domain.WantedMatch{
			WantedListingID:   wanted.ID,
			OfferingListingID: offering.ID,
			BuyerID:           wanted.BuyerID,
			VendorID:          offering.VendorID,
		}
		if err := tx.Create(&match).Error; err != nil {
			return err
		}

		return notifications.Append(tx, wanted.BuyerID, domain.UserTypeBuyer,
			domain.NotificationTypeWantedMatch,
			"We Found a Match",
			fmt.Sprintf("A new listing matches what you are looking for: %s", offering.Title),
			&match.ID)
	})
}

// textMatches reports whether the offering title satisfies the wanted
// description. A hit requires some token of length >= 3 from either side to
// appear, case-insensitively, inside the other side's text.
func textMatches(offeringTitle, wantedDescription string) bool {
	title := strings.ToLower(offeringTitle)
	description := strings.ToLower(wantedDescription)
	return containsAnyToken(description, title) || containsAnyToken(title, description)
}

func containsAnyToken(haystack, source string) bool {
	for _, token := range strings.Fields(source) {
		token = strings.Trim(token, ".,;:!?()\"'")
		if len(token) < 3 {
			continue
		}
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

// RevealContactResult carries the outcome of a reveal attempt. Contact fields
// are populated only when Revealed is true.
type RevealContactResult struct {
	Revealed      bool   `json:"contact_revealed"`
	VendorName    string `json:"vendor_name,omitempty"`
	ContactNumber string `json:"vendor_contact,omitempty"`
}

// RevealContact unlocks the vendor's contact details for a match once the
// caller confirms the reveal fee was paid. The payment flag is trusted as
// given; with payment unconfirmed the match is left untouched.
func (s *Service) RevealContact(ctx context.Context, matchID uuid.UUID, paymentConfirmed bool) (*RevealContactResult, error) {
	if !paymentConfirmed {
		return &RevealContactResult{Revealed: false}, nil
	}

	result := &RevealContactResult{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var match domain.WantedMatch
		if err := tx.First(&match, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMatchNotFound
			}
			return err
		}

		err := tx.Model(&domain.WantedMatch{}).
			Where("id = ?", match.ID).
			Updates(map[string]interface{}{
				"is_contact_revealed": true,
				"reveal_fee_paid":     true,
			}).Error
		if err != nil {
			return err
		}

		var vendor domain.Vendor
		if err := tx.First(&vendor, "id = ?", match.VendorID).Error; err != nil {
			return err
		}

		result.Revealed = true
		result.VendorName = vendor.Name
		result.ContactNumber = vendor.ContactNumber
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
