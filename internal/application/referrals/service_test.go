package referrals

import (
	"context"
	"strings"
	"testing"
	"time"

	"isoko-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReferralTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Vendor{}, &domain.Listing{},
		&domain.Sharer{}, &domain.Referral{}, &domain.Sale{},
		&domain.Notification{},
	))
	return &Service{DB: db, ShareBaseURL: "https://getpaid.bi"}, db
}

func seedListing(t *testing.T, db *gorm.DB) (*domain.Vendor, *domain.Listing) {
	vendor := &domain.Vendor{
		Name:          "Chez Nadine",
		ContactNumber: "25779123456",
		VendorType:    domain.VendorTypeGallery,
	}
	require.NoError(t, db.Create(vendor).Error)
	listing := &domain.Listing{
		VendorID:    vendor.ID,
		Title:       "Imigongo painting",
		Price:       45000,
		ListingType: domain.ListingTypeOffering,
		Status:      domain.ListingStatusActive,
		IsActive:    true,
	}
	require.NoError(t, db.Create(listing).Error)
	return vendor, listing
}

func TestCreateReferral_BuildsShareLinks(t *testing.T) {
	svc, db := setupReferralTest(t)
	_, listing := seedListing(t, db)

	result, err := svc.CreateReferral(context.Background(), listing.ID, "Eric", "25768000001")
	require.NoError(t, err)

	assert.Len(t, result.ReferralCode, 8)
	assert.Equal(t, strings.ToUpper(result.ReferralCode), result.ReferralCode)
	assert.Contains(t, result.ShareLink, "https://getpaid.bi/listing/"+listing.ID.String())
	assert.Contains(t, result.ShareLink, "?ref="+result.ReferralCode)
	assert.Contains(t, result.WhatsappLink, "https://wa.me/25779123456?text=")
	assert.Contains(t, result.WhatsappLink, "Murakoze")
}

func TestCreateReferral_DedupesSharerByPhone(t *testing.T) {
	svc, db := setupReferralTest(t)
	_, listing := seedListing(t, db)
	_, listing2 := seedListing2(t, db)

	_, err := svc.CreateReferral(context.Background(), listing.ID, "Eric", "25768000001")
	require.NoError(t, err)
	_, err = svc.CreateReferral(context.Background(), listing2.ID, "Eric Again", "25768000001")
	require.NoError(t, err)

	var count int64
	db.Model(&domain.Sharer{}).Where("contact_number = ?", "25768000001").Count(&count)
	assert.Equal(t, int64(1), count)

	db.Model(&domain.Referral{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func seedListing2(t *testing.T, db *gorm.DB) (*domain.Vendor, *domain.Listing) {
	vendor := &domain.Vendor{
		Name:          "Atelier Juma",
		ContactNumber: "25779654321",
		VendorType:    domain.VendorTypeOutside,
	}
	require.NoError(t, db.Create(vendor).Error)
	listing := &domain.Listing{
		VendorID:    vendor.ID,
		Title:       "Carved stool",
		Price:       30000,
		ListingType: domain.ListingTypeOffering,
		Status:      domain.ListingStatusActive,
		IsActive:    true,
	}
	require.NoError(t, db.Create(listing).Error)
	return vendor, listing
}

func TestCreateReferral_SecondOpenReferralConflicts(t *testing.T) {
	svc, db := setupReferralTest(t)
	_, listing := seedListing(t, db)

	first, err := svc.CreateReferral(context.Background(), listing.ID, "Eric", "25768000001")
	require.NoError(t, err)

	_, err = svc.CreateReferral(context.Background(), listing.ID, "Diane", "25768000002")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The open referral is untouched and stays the only one.
	var count int64
	db.Model(&domain.Referral{}).Where("listing_id = ?", listing.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Once settled, the listing accepts a fresh referral again.
	require.NoError(t, db.Model(&domain.Referral{}).
		Where("referral_code = ?", first.ReferralCode).
		Update("sale_confirmation_timestamp", time.Now()).Error)
	_, err = svc.CreateReferral(context.Background(), listing.ID, "Diane", "25768000002")
	require.NoError(t, err)
}

func TestCreateReferral_MissingListing(t *testing.T) {
	svc, _ := setupReferralTest(t)
	_, err := svc.CreateReferral(context.Background(), uuid.New(), "Eric", "25768000001")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestTrackClick_FirstClickWins(t *testing.T) {
	svc, db := setupReferralTest(t)
	_, listing := seedListing(t, db)

	result, err := svc.CreateReferral(context.Background(), listing.ID, "Eric", "25768000001")
	require.NoError(t, err)

	require.NoError(t, svc.TrackClick(context.Background(), result.ReferralCode))

	var ref domain.Referral
	require.NoError(t, db.First(&ref, "referral_code = ?", result.ReferralCode).Error)
	require.NotNil(t, ref.ClickTimestamp)
	first := *ref.ClickTimestamp

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.TrackClick(context.Background(), result.ReferralCode))

	require.NoError(t, db.First(&ref, "referral_code = ?", result.ReferralCode).Error)
	assert.True(t, ref.ClickTimestamp.Equal(first))
}

func TestTrackClick_UnknownAndEmptyCodesNoOp(t *testing.T) {
	svc, _ := setupReferralTest(t)
	assert.NoError(t, svc.TrackClick(context.Background(), "NOPE1234"))
	assert.NoError(t, svc.TrackClick(context.Background(), ""))
}

func TestConfirmSale_SettlesReferralOnce(t *testing.T) {
	svc, db := setupReferralTest(t)
	_, listing := seedListing(t, db)

	created, err := svc.CreateReferral(context.Background(), listing.ID, "Eric", "25768000001")
	require.NoError(t, err)

	result, err := svc.ConfirmSale(context.Background(), ConfirmSaleRequest{
		ListingID:    listing.ID,
		ReferralCode: created.ReferralCode,
		SaleAmount:   45000,
	})
	require.NoError(t, err)
	require.NotNil(t, result.PointsEarned)
	assert.Equal(t, domain.DefaultReferralPoints, *result.PointsEarned)

	var sharer domain.Sharer
	require.NoError(t, db.First(&sharer, "contact_number = ?", "25768000001").Error)
	assert.Equal(t, domain.DefaultReferralPoints, sharer.GiftPoints)

	var notif domain.Notification
	require.NoError(t, db.First(&notif, "user_id = ?", sharer.ID).Error)
	assert.Equal(t, "Points Credited", notif.Title)

	// Second confirmation records the sale but credits nothing.
	again, err := svc.ConfirmSale(context.Background(), ConfirmSaleRequest{
		ListingID:    listing.ID,
		ReferralCode: created.ReferralCode,
		SaleAmount:   45000,
	})
	require.NoError(t, err)
	assert.Nil(t, again.PointsEarned)

	require.NoError(t, db.First(&sharer, "id = ?", sharer.ID).Error)
	assert.Equal(t, domain.DefaultReferralPoints, sharer.GiftPoints)
}

func TestConfirmSale_NoReferralStillRecordsSale(t *testing.T) {
	svc, db := setupReferralTest(t)
	_, listing := seedListing(t, db)

	result, err := svc.ConfirmSale(context.Background(), ConfirmSaleRequest{
		ListingID:  listing.ID,
		SaleAmount: 12000,
	})
	require.NoError(t, err)
	assert.Nil(t, result.PointsEarned)

	var sale domain.Sale
	require.NoError(t, db.First(&sale, "id = ?", result.SaleID).Error)
	assert.Equal(t, listing.ID, sale.ListingID)
	assert.Nil(t, sale.ReferralID)
	assert.True(t, sale.VendorConfirmed)
}

func TestConfirmSale_MissingListing(t *testing.T) {
	svc, _ := setupReferralTest(t)
	_, err := svc.ConfirmSale(context.Background(), ConfirmSaleRequest{
		ListingID:  uuid.New(),
		SaleAmount: 100,
	})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestGenerateCode_AlphabetAndLength(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = true
	}
	// 50 draws from a 32^8 space should never collide.
	assert.Len(t, seen, 50)
}
