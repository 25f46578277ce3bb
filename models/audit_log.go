package models

import (
	"time"
)

// AuditLog is a write-once record of a mutation, never updated after insert.
type AuditLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      *uint     `json:"userId"`
	User        *User     `json:"-" gorm:"foreignKey:UserID"`
	Entity      string    `json:"entity" gorm:"not null;size:80;index:idx_audit_entity"`
	EntityID    uint      `json:"entityId" gorm:"not null;index:idx_audit_entity"`
	Action      string    `json:"action" gorm:"not null;size:30"`
	ChangedData JSONMap   `json:"changedData"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
