package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusConfirmed  = "confirmed"
	PaymentStatusFailed     = "failed"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a delivery commitment against an offering listing. Amount is
// frozen from the listing price at creation.
type Order struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID       uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	BuyerID         uuid.UUID `gorm:"column:buyer_id;type:uuid;not null;index" json:"buyer_id"`
	VendorID        uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendor_id"`
	Amount          float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	DeliveryAddress string    `gorm:"column:delivery_address;not null" json:"delivery_address"`
	ContactInfo     string    `gorm:"column:contact_info;not null" json:"contact_info"`
	PaymentStatus   string    `gorm:"column:payment_status;type:varchar(20);default:'pending'" json:"payment_status"`
	OrderStatus     string    `gorm:"column:order_status;type:varchar(20);default:'pending'" json:"order_status"`
	ExternalRef     *string   `gorm:"column:external_ref" json:"external_ref"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
