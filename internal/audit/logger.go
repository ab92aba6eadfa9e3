package audit

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

// Logger persists events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Name() string { return "audit_log" }

func (l *Logger) Handle(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		Action:    ev.Action,
		TurnoID:   ev.TurnoID,
		Metadata:  metaJSON,
		CreatedAt: ev.At,
	}

	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return errors.Wrap(err, "writing audit log")
	}
	return nil
}
