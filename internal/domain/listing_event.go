package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing event types written by the lifecycle coordinator.
const (
	ListingEventReserved         = "RESERVED"
	ListingEventCompleted        = "COMPLETED"
	ListingEventReopened         = "REOPENED"
	ListingEventExpired          = "EXPIRED"
	ListingEventPaymentConfirmed = "PAYMENT_CONFIRMED"
)

// ListingEvent is an audit row appended inside the same transaction as the
// lifecycle transition it records.
type ListingEvent struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	ActorID   *uuid.UUID     `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	EventData datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt time.Time      `json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}

func (e *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
