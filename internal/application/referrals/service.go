package referrals

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const codeInsertAttempts = 5

type Service struct {
	DB           *gorm.DB
	ShareBaseURL string
}

// CreateReferralResult carries the generated code plus the share links the
// sharer forwards.
type CreateReferralResult struct {
	ReferralCode string `json:"referral_code"`
	ShareLink    string `json:"share_link"`
	WhatsappLink string `json:"whatsapp_link"`
}

// CreateReferral finds or creates the sharer by phone, inserts a referral
// with a fresh code and default points, and builds the share links.
func (s *Service) CreateReferral(ctx context.Context, listingID uuid.UUID, sharerName, sharerPhone string) (*CreateReferralResult, error) {
	var result *CreateReferralResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("id = ?", listingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrListingNotFound
			}
			return err
		}
		var vendor domain.Vendor
		if err := tx.Where("id = ?", listing.VendorID).First(&vendor).Error; err != nil {
			return err
		}

		sharer, err := findOrCreateSharer(tx, sharerName, sharerPhone)
		if err != nil {
			return err
		}

		ref, err := insertReferral(tx, sharer.ID, listingID)
		if err != nil {
			return err
		}

		shareLink := fmt.Sprintf("%s/listing/%s?ref=%s", s.ShareBaseURL, listingID, ref.ReferralCode)
		message := fmt.Sprintf("Murakoze! Check out this great offer: %s from %s. %s", listing.Title, vendor.Name, shareLink)
		whatsappLink := fmt.Sprintf("https://wa.me/%s?text=%s", vendor.ContactNumber, url.QueryEscape(message))

		result = &CreateReferralResult{
			ReferralCode: ref.ReferralCode,
			ShareLink:    shareLink,
			WhatsappLink: whatsappLink,
		}
		return nil
	})
	return result, err
}

// findOrCreateSharer dedupes by contact number. A concurrent create hitting
// the unique index is resolved by re-reading the winning row.
func findOrCreateSharer(tx *gorm.DB, name, phone string) (*domain.Sharer, error) {
	var sharer domain.Sharer
	err := tx.Where("contact_number = ?", phone).First(&sharer).Error
	if err == nil {
		return &sharer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sharer = domain.Sharer{Name: name, ContactNumber: phone}
	if err := tx.Create(&sharer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing domain.Sharer
			if err := tx.Where("contact_number = ?", phone).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &sharer, nil
}

func insertReferral(tx *gorm.DB, sharerID, listingID uuid.UUID) (*domain.Referral, error) {
	// The open-referral index also rejects inserts; surface that case as a
	// conflict up front so the retry loop below only ever deals with code
	// collisions.
	var open int64
	if err := tx.Model(&domain.Referral{}).
		Where("listing_id = ? AND sale_confirmation_timestamp IS NULL", listingID).
		Count(&open).Error; err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, domain.ErrConflict
	}

	for i := 0; i < codeInsertAttempts; i++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		ref := domain.Referral{
			ReferralCode: code,
			SharerID:     sharerID,
			ListingID:    listingID,
			PointsEarned: domain.DefaultReferralPoints,
		}
		err = tx.Create(&ref).Error
		if err == nil {
			return &ref, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn().Str("code", code).Msg("Referral code collision, retrying")
			continue
		}
		return nil, err
	}
	return nil, domain.ErrConflict
}

// TrackClick records the first click on a referral code. Repeated clicks and
// unknown or empty codes are silent no-ops.
func (s *Service) TrackClick(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return s.DB.WithContext(ctx).Model(&domain.Referral{}).
		Where("referral_code = ? AND click_timestamp IS NULL", code).
		Update("click_timestamp", time.Now()).Error
}

// ConfirmSaleRequest is the vendor-side sale confirmation.
type ConfirmSaleRequest struct {
	ListingID    uuid.UUID
	ReferralCode string
	BuyerName    *string
	BuyerPhone   *string
	SaleAmount   float64
	ProofImage   *string
}

// ConfirmSaleResult reports the recorded sale and any commission credited.
type ConfirmSaleResult struct {
	SaleID       uuid.UUID `json:"sale_id"`
	PointsEarned *int      `json:"points_earned,omitempty"`
}

// ConfirmSale records a sale and, when a referral code for the listing is
// supplied and still open, settles it through the same exactly-once path as
// lifecycle completion.
func (s *Service) ConfirmSale(ctx context.Context, req ConfirmSaleRequest) (*ConfirmSaleResult, error) {
	var result ConfirmSaleResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Listing{}).Where("id = ?", req.ListingID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrListingNotFound
		}

		var referralID *uuid.UUID

		if req.ReferralCode != "" {
			var ref domain.Referral
			err := tx.Where("referral_code = ? AND listing_id = ?", req.ReferralCode, req.ListingID).
				First(&ref).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				referralID = &ref.ID
				credited, err := settleReferral(tx, &ref, &ref.ListingID)
				if err != nil {
					return err
				}
				if credited > 0 {
					result.PointsEarned = &credited
				}
			}
		}

		sale := domain.Sale{
			ListingID:       req.ListingID,
			ReferralID:      referralID,
			BuyerName:       req.BuyerName,
			BuyerPhone:      req.BuyerPhone,
			SaleAmount:      req.SaleAmount,
			ProofImage:      req.ProofImage,
			VendorConfirmed: true,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		result.SaleID = sale.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
