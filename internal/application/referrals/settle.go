package referrals

import (
	"errors"
	"fmt"
	"time"

	"isoko-backend/internal/application/notifications"
	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settle confirms the open referral for a listing, if any, and credits the
// sharer exactly once. It runs on the caller's transaction so the crediting
// commits atomically with the sale completion that triggered it. A listing
// without an open referral is a no-op, not an error.
//
// Should more than one open referral exist (a prior bug), only the earliest
// by creation order is settled; the rest are left untouched.
func Settle(tx *gorm.DB, listingID uuid.UUID, relatedID *uuid.UUID) (int, error) {
	var ref domain.Referral
	err := tx.Where("listing_id = ? AND sale_confirmation_timestamp IS NULL", listingID).
		Order("created_at ASC").
		First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return settleReferral(tx, &ref, relatedID)
}

// settleReferral marks one referral confirmed and credits its sharer. The
// conditional update gates both effects: if another transaction settled the
// row first, RowsAffected is zero and nothing is credited.
func settleReferral(tx *gorm.DB, ref *domain.Referral, relatedID *uuid.UUID) (int, error) {
	res := tx.Model(&domain.Referral{}).
		Where("id = ? AND sale_confirmation_timestamp IS NULL", ref.ID).
		Update("sale_confirmation_timestamp", time.Now())
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}

	if err := tx.Model(&domain.Sharer{}).
		Where("id = ?", ref.SharerID).
		Update("gift_points", gorm.Expr("gift_points + ?", ref.PointsEarned)).Error; err != nil {
		return 0, err
	}

	msg := fmt.Sprintf("You earned %d gift points from a confirmed sale", ref.PointsEarned)
	if err := notifications.Append(tx, ref.SharerID, domain.UserTypeSharer,
		domain.NotificationTypePointsCredited, "Points Credited", msg, relatedID); err != nil {
		return 0, err
	}
	return ref.PointsEarned, nil
}
