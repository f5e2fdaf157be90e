package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing statuses. Transitions move forward only, except rejection and
// cancellation which return the listing to active.
const (
	ListingStatusActive    = "active"
	ListingStatusReserved  = "reserved"
	ListingStatusCompleted = "completed"
	ListingStatusExpired   = "expired"
)

const (
	ListingTypeOffering = "offering"
	ListingTypeWanted   = "wanted"
)

// Listing is a sellable offering or a wanted request posted against a vendor.
type Listing struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	VendorID    uuid.UUID  `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendor_id"`
	CategoryID  *uuid.UUID `gorm:"column:category_id;type:uuid" json:"category_id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description *string    `gorm:"column:description" json:"description"`
	Price       float64    `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Currency    string     `gorm:"column:currency;type:varchar(3);default:'BIF'" json:"currency"`
	ListingType string     `gorm:"column:listing_type;type:varchar(20);default:'offering'" json:"listing_type"`
	Status      string     `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	TrustScore  int        `gorm:"column:trust_score;default:0" json:"trust_score"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
