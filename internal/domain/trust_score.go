package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrustScore is keyed 1:1 by vendor and mutated only through the trust
// adjuster. Score never goes below zero.
type TrustScore struct {
	VendorID    uuid.UUID `gorm:"column:vendor_id;type:uuid;primaryKey" json:"vendor_id"`
	Score       int       `gorm:"column:score;default:0" json:"score"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (TrustScore) TableName() string {
	return "trust_scores"
}
