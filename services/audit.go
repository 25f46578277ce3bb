package services

import (
	"gorm.io/gorm"

	"rleomotos-api/models"
)

// RecordAudit inserts a write-once audit row. Call it with the transaction
// handle of the mutation it describes so both commit or roll back together.
func RecordAudit(db *gorm.DB, actorID *uint, entity string, entityID uint, action string, changed models.JSONMap) error {
	entry := models.AuditLog{
		UserID:      actorID,
		Entity:      entity,
		EntityID:    entityID,
		Action:      action,
		ChangedData: changed,
	}
	return db.Create(&entry).Error
}
