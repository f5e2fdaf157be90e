package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypeVendor = "vendor"
	UserTypeBuyer  = "buyer"
	UserTypeSharer = "sharer"
)

// Notification types emitted by the workflow engine.
const (
	NotificationTypeReservation    = "reservation"
	NotificationTypePayment        = "payment"
	NotificationTypeOrderStatus    = "order_status"
	NotificationTypePointsCredited = "points_credited"
	NotificationTypeWantedMatch    = "wanted_match"
)

// Notification is append-only; only the read flag is ever mutated, and that
// by the inbox collaborator, not this engine.
type Notification struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	UserType  string     `gorm:"column:user_type;type:varchar(20);not null" json:"user_type"`
	Type      string     `gorm:"column:type;type:varchar(30);not null" json:"type"`
	Title     string     `gorm:"column:title;not null" json:"title"`
	Message   string     `gorm:"column:message;not null" json:"message"`
	RelatedID *uuid.UUID `gorm:"column:related_id;type:uuid" json:"related_id"`
	IsRead    bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
