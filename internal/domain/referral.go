package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultReferralPoints is frozen onto the referral at creation.
const DefaultReferralPoints = 100

// Referral entitles its sharer to gift points upon a confirmed sale.
// The partial unique index keeps at most one open referral per listing, so
// settlement is a race-free conditional update rather than scan-then-check.
type Referral struct {
	ID                        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ReferralCode              string     `gorm:"column:referral_code;type:varchar(8);uniqueIndex;not null" json:"referral_code"`
	SharerID                  uuid.UUID  `gorm:"column:sharer_id;type:uuid;not null;index" json:"sharer_id"`
	ListingID                 uuid.UUID  `gorm:"column:listing_id;type:uuid;not null;index:idx_referrals_open_listing,unique,where:sale_confirmation_timestamp IS NULL" json:"listing_id"`
	ClickTimestamp            *time.Time `gorm:"column:click_timestamp" json:"click_timestamp"`
	SaleConfirmationTimestamp *time.Time `gorm:"column:sale_confirmation_timestamp" json:"sale_confirmation_timestamp"`
	PointsEarned              int        `gorm:"column:points_earned;default:100" json:"points_earned"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Sharer is deduplicated by contact number. GiftPoints only grows outside
// explicit admin adjustment.
type Sharer struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	ContactNumber string    `gorm:"column:contact_number;uniqueIndex;not null" json:"contact_number"`
	GiftPoints    int       `gorm:"column:gift_points;default:0" json:"gift_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Sharer) TableName() string {
	return "sharers"
}

func (s *Sharer) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Sale records a confirmed sale, optionally tied to a referral.
type Sale struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID       uuid.UUID  `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	ReferralID      *uuid.UUID `gorm:"column:referral_id;type:uuid" json:"referral_id"`
	BuyerName       *string    `gorm:"column:buyer_name" json:"buyer_name"`
	BuyerPhone      *string    `gorm:"column:buyer_phone" json:"buyer_phone"`
	SaleAmount      float64    `gorm:"column:sale_amount;type:decimal(18,2);not null" json:"sale_amount"`
	ProofImage      *string    `gorm:"column:proof_image" json:"proof_image"`
	VendorConfirmed bool       `gorm:"column:vendor_confirmed;default:false" json:"vendor_confirmed"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (Sale) TableName() string {
	return "sales"
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
