package trust

import (
	"testing"

	"isoko-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTrustTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TrustScore{}))
	return db
}

func TestAdjust_CreatesRowOnFirstBump(t *testing.T) {
	db := setupTrustTest(t)
	vendorID := uuid.New()

	require.NoError(t, Adjust(db, vendorID, DeltaReservationCompleted))

	var score domain.TrustScore
	require.NoError(t, db.First(&score, "vendor_id = ?", vendorID).Error)
	assert.Equal(t, 5, score.Score)
}

func TestAdjust_Accumulates(t *testing.T) {
	db := setupTrustTest(t)
	vendorID := uuid.New()

	require.NoError(t, Adjust(db, vendorID, DeltaReservationCompleted))
	require.NoError(t, Adjust(db, vendorID, DeltaReceiptConfirmed))

	var score domain.TrustScore
	require.NoError(t, db.First(&score, "vendor_id = ?", vendorID).Error)
	assert.Equal(t, 15, score.Score)
}

func TestAdjust_FlooredAtZero(t *testing.T) {
	db := setupTrustTest(t)
	vendorID := uuid.New()

	require.NoError(t, Adjust(db, vendorID, 3))
	require.NoError(t, Adjust(db, vendorID, -10))

	var score domain.TrustScore
	require.NoError(t, db.First(&score, "vendor_id = ?", vendorID).Error)
	assert.Equal(t, 0, score.Score)

	// First adjustment negative: row created at the floor.
	otherID := uuid.New()
	require.NoError(t, Adjust(db, otherID, -5))
	var other domain.TrustScore
	require.NoError(t, db.First(&other, "vendor_id = ?", otherID).Error)
	assert.Equal(t, 0, other.Score)
}
