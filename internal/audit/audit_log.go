package audit

import (
	"context"
	"encoding/json"

	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/pkg/logger"
	"gorm.io/gorm"
)

// Logger persists admin mutations for accountability and mirrors them
// to the structured log. Audit failures never fail the audited
// operation; they are logged and dropped.
type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Record writes one audit entry
func (l *Logger) Record(ctx context.Context, action models.AuditAction, actorID, eventID string, details map[string]interface{}) {
	record := models.AuditRecord{
		Action:  action,
		ActorID: actorID,
		EventID: eventID,
	}

	if len(details) > 0 {
		data, err := json.Marshal(details)
		if err == nil {
			record.Details = data
		}
	}

	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		logger.Error("Failed to persist audit record", err, map[string]interface{}{
			"action":   action,
			"actor_id": actorID,
			"event_id": eventID,
		})
		return
	}

	logger.Info("AUDIT: "+string(action), map[string]interface{}{
		"actor_id": actorID,
		"event_id": eventID,
		"details":  details,
	})
}

// Recent returns the n most recent audit entries
func (l *Logger) Recent(ctx context.Context, n int) ([]models.AuditRecord, error) {
	if n <= 0 {
		n = 50
	}
	var records []models.AuditRecord
	err := l.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, models.NewPersistenceError("list audit records", err)
	}
	return records, nil
}

// ForEvent returns all audit entries for one event
func (l *Logger) ForEvent(ctx context.Context, eventID string) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	err := l.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, models.NewPersistenceError("list audit records", err)
	}
	return records, nil
}
