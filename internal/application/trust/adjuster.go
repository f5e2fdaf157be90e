package trust

import (
	"time"

	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deltas applied by the lifecycle coordinator.
const (
	DeltaReservationCompleted = 5
	DeltaReceiptConfirmed     = 10
)

// Adjust applies a bounded score delta to the vendor's trust score row,
// creating it if absent. The floor at zero is enforced in SQL so concurrent
// adjustments never observe or produce a negative score. This is the single
// code path for all trust score mutation.
func Adjust(tx *gorm.DB, vendorID uuid.UUID, delta int) error {
	res := tx.Model(&domain.TrustScore{}).
		Where("vendor_id = ?", vendorID).
		Updates(map[string]interface{}{
			"score":        gorm.Expr("CASE WHEN score + ? < 0 THEN 0 ELSE score + ? END", delta, delta),
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	score := delta
	if score < 0 {
		score = 0
	}
	return tx.Create(&domain.TrustScore{
		VendorID:    vendorID,
		Score:       score,
		LastUpdated: time.Now(),
	}).Error
}
