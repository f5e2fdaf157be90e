package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WantedStatusActive    = "active"
	WantedStatusFulfilled = "fulfilled"
	WantedStatusExpired   = "expired"
)

// WantedListing is a buyer request that new offerings are matched against.
type WantedListing struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BuyerID     uuid.UUID  `gorm:"column:buyer_id;type:uuid;not null;index" json:"buyer_id"`
	Description string     `gorm:"column:description;not null" json:"description"`
	CategoryID  *uuid.UUID `gorm:"column:category_id;type:uuid" json:"category_id"`
	Status      string     `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (WantedListing) TableName() string {
	return "wanted_listings"
}

func (w *WantedListing) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WantedMatch pairs a wanted listing with an offering. The composite unique
// index guarantees at most one match per pair even when matching is retried.
type WantedMatch struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WantedListingID   uuid.UUID `gorm:"column:wanted_listing_id;type:uuid;not null;uniqueIndex:idx_wanted_matches_pair" json:"wanted_listing_id"`
	OfferingListingID uuid.UUID `gorm:"column:offering_listing_id;type:uuid;not null;uniqueIndex:idx_wanted_matches_pair" json:"offering_listing_id"`
	BuyerID           uuid.UUID `gorm:"column:buyer_id;type:uuid;not null" json:"buyer_id"`
	VendorID          uuid.UUID `gorm:"column:vendor_id;type:uuid;not null" json:"vendor_id"`
	IsContactRevealed bool      `gorm:"column:is_contact_revealed;default:false" json:"is_contact_revealed"`
	RevealFeePaid     bool      `gorm:"column:reveal_fee_paid;default:false" json:"reveal_fee_paid"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (WantedMatch) TableName() string {
	return "wanted_matches"
}

func (m *WantedMatch) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
