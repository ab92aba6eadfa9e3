package models

import "time"

// AuditLog records a lifecycle event of a turno.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action  string `gorm:"size:50;not null;index" json:"action"`
	TurnoID string `gorm:"size:36;index" json:"turno_id"`

	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
