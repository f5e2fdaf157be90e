package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationStatusPending   = "pending"
	ReservationStatusAccepted  = "accepted"
	ReservationStatusRejected  = "rejected"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

const (
	PaymentMethodCash        = "cash"
	PaymentMethodMobileMoney = "mobile_money"
)

// Reservation is a gallery-pickup commitment against an offering listing.
// VendorID is denormalized from the listing at creation time.
type Reservation struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID     uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	BuyerID       uuid.UUID `gorm:"column:buyer_id;type:uuid;not null;index" json:"buyer_id"`
	VendorID      uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendor_id"`
	PickupDate    time.Time `gorm:"column:pickup_date;not null" json:"pickup_date"`
	PickupTime    string    `gorm:"column:pickup_time;not null" json:"pickup_time"`
	PaymentMethod string    `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	Status        string    `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
