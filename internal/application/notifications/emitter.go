package notifications

import (
	"isoko-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Append inserts a notification row on the caller's transaction so it
// commits or rolls back together with the lifecycle transition that caused
// it. Delivery and read state belong to the inbox collaborator.
func Append(tx *gorm.DB, userID uuid.UUID, userType, notifType, title, message string, relatedID *uuid.UUID) error {
	return tx.Create(&domain.Notification{
		UserID:    userID,
		UserType:  userType,
		Type:      notifType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}).Error
}
