package wanted

import (
	"context"
	"testing"

	"isoko-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWantedTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Vendor{}, &domain.Listing{},
		&domain.WantedListing{}, &domain.WantedMatch{},
		&domain.Notification{},
	))
	return NewService(db), db
}

func seedOffering(t *testing.T, db *gorm.DB, title string, categoryID *uuid.UUID) *domain.Listing {
	vendor := &domain.Vendor{
		Name:          "Vendor " + uuid.New().String()[:8],
		ContactNumber: "2577" + uuid.New().String()[:8],
		VendorType:    domain.VendorTypeGallery,
	}
	require.NoError(t, db.Create(vendor).Error)
	listing := &domain.Listing{
		VendorID:    vendor.ID,
		CategoryID:  categoryID,
		Title:       title,
		Price:       5000,
		ListingType: domain.ListingTypeOffering,
		Status:      domain.ListingStatusActive,
		IsActive:    true,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func seedWanted(t *testing.T, db *gorm.DB, description string, categoryID *uuid.UUID) *domain.WantedListing {
	w := &domain.WantedListing{
		BuyerID:     uuid.New(),
		Description: description,
		CategoryID:  categoryID,
		Status:      domain.WantedStatusActive,
	}
	require.NoError(t, db.Create(w).Error)
	return w
}

func TestMatchOffering_MatchesAndNotifiesBuyer(t *testing.T) {
	svc, db := setupWantedTest(t)
	wanted := seedWanted(t, db, "Looking for a handwoven basket for my kitchen", nil)
	offering := seedOffering(t, db, "Handwoven basket", nil)

	matched := svc.MatchOffering(context.Background(), offering)
	assert.Equal(t, 1, matched)

	var match domain.WantedMatch
	require.NoError(t, db.First(&match, "wanted_listing_id = ?", wanted.ID).Error)
	assert.Equal(t, offering.ID, match.OfferingListingID)
	assert.Equal(t, wanted.BuyerID, match.BuyerID)
	assert.Equal(t, offering.VendorID, match.VendorID)
	assert.False(t, match.IsContactRevealed)
	assert.False(t, match.RevealFeePaid)

	var notif domain.Notification
	require.NoError(t, db.First(&notif, "user_id = ?", wanted.BuyerID).Error)
	assert.Equal(t, domain.NotificationTypeWantedMatch, notif.Type)
	assert.Contains(t, notif.Message, "Handwoven basket")
}

func TestMatchOffering_RerunDoesNotDuplicate(t *testing.T) {
	svc, db := setupWantedTest(t)
	seedWanted(t, db, "Need a carved stool", nil)
	offering := seedOffering(t, db, "Carved stool", nil)

	assert.Equal(t, 1, svc.MatchOffering(context.Background(), offering))
	assert.Equal(t, 0, svc.MatchOffering(context.Background(), offering))

	var count int64
	db.Model(&domain.WantedMatch{}).Count(&count)
	assert.Equal(t, int64(1), count)

	db.Model(&domain.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMatchOffering_NoTextOverlap(t *testing.T) {
	svc, db := setupWantedTest(t)
	seedWanted(t, db, "Looking for a bicycle", nil)
	offering := seedOffering(t, db, "Imigongo painting", nil)

	assert.Equal(t, 0, svc.MatchOffering(context.Background(), offering))
}

func TestMatchOffering_CategoryFilter(t *testing.T) {
	svc, db := setupWantedTest(t)
	furniture := uuid.New()
	art := uuid.New()

	inCategory := seedWanted(t, db, "Any carved stool will do", &furniture)
	seedWanted(t, db, "Any carved stool will do please", &art)
	uncategorized := seedWanted(t, db, "A carved stool, any style", nil)

	offering := seedOffering(t, db, "Carved stool", &furniture)
	matched := svc.MatchOffering(context.Background(), offering)
	assert.Equal(t, 2, matched)

	var count int64
	db.Model(&domain.WantedMatch{}).Where("wanted_listing_id = ?", inCategory.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&domain.WantedMatch{}).Where("wanted_listing_id = ?", uncategorized.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMatchOffering_SkipsInactiveWanted(t *testing.T) {
	svc, db := setupWantedTest(t)
	w := seedWanted(t, db, "Need a carved stool", nil)
	require.NoError(t, db.Model(w).Update("status", domain.WantedStatusFulfilled).Error)

	offering := seedOffering(t, db, "Carved stool", nil)
	assert.Equal(t, 0, svc.MatchOffering(context.Background(), offering))
}

func TestTextMatches(t *testing.T) {
	cases := []struct {
		title       string
		description string
		want        bool
	}{
		{"Handwoven basket", "looking for a handwoven basket", true},
		{"BASKET", "basket needed urgently", true},
		{"Basket, large", "I want a basket.", true},
		{"Stool", "need a stool or chair", true},
		{"TV", "need a tv", false}, // tokens under 3 chars never match
		{"Bicycle", "looking for a moto", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textMatches(tc.title, tc.description),
			"title=%q description=%q", tc.title, tc.description)
	}
}

func TestRevealContact_PaymentUnconfirmed(t *testing.T) {
	svc, db := setupWantedTest(t)
	seedWanted(t, db, "Need a carved stool", nil)
	offering := seedOffering(t, db, "Carved stool", nil)
	require.Equal(t, 1, svc.MatchOffering(context.Background(), offering))

	var match domain.WantedMatch
	require.NoError(t, db.First(&match).Error)

	result, err := svc.RevealContact(context.Background(), match.ID, false)
	require.NoError(t, err)
	assert.False(t, result.Revealed)
	assert.Empty(t, result.ContactNumber)

	require.NoError(t, db.First(&match, "id = ?", match.ID).Error)
	assert.False(t, match.IsContactRevealed)
	assert.False(t, match.RevealFeePaid)
}

func TestRevealContact_PaymentConfirmed(t *testing.T) {
	svc, db := setupWantedTest(t)
	seedWanted(t, db, "Need a carved stool", nil)
	offering := seedOffering(t, db, "Carved stool", nil)
	require.Equal(t, 1, svc.MatchOffering(context.Background(), offering))

	var match domain.WantedMatch
	require.NoError(t, db.First(&match).Error)

	var vendor domain.Vendor
	require.NoError(t, db.First(&vendor, "id = ?", offering.VendorID).Error)

	result, err := svc.RevealContact(context.Background(), match.ID, true)
	require.NoError(t, err)
	assert.True(t, result.Revealed)
	assert.Equal(t, vendor.Name, result.VendorName)
	assert.Equal(t, vendor.ContactNumber, result.ContactNumber)

	require.NoError(t, db.First(&match, "id = ?", match.ID).Error)
	assert.True(t, match.IsContactRevealed)
	assert.True(t, match.RevealFeePaid)
}

func TestRevealContact_MissingMatch(t *testing.T) {
	svc, _ := setupWantedTest(t)
	_, err := svc.RevealContact(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}
