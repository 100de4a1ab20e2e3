package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditAction is the type of admin action being audited
type AuditAction string

const (
	AuditEventCreated    AuditAction = "event_created"
	AuditEventUpdated    AuditAction = "event_updated"
	AuditModelsReplaced  AuditAction = "event_models_replaced"
)

// AuditRecord is one persisted admin mutation for accountability
type AuditRecord struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Action    AuditAction    `gorm:"size:64;not null;index" json:"action"`
	ActorID   string         `gorm:"size:255;not null;index" json:"actor_id"`
	EventID   string         `gorm:"size:64;index" json:"event_id,omitempty"`
	Details   datatypes.JSON `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (AuditRecord) TableName() string {
	return "audit_records"
}

// BeforeCreate hook to generate UUID
func (a *AuditRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
