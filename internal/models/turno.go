package models

import "time"

// Turno is a booked or held appointment slot. A slot is identified by
// (ModalidadSlot, Fecha, Hora); the unique index keeps a single row per slot.
type Turno struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Estado string `gorm:"size:30;not null;index:idx_turno_estado_creacion,priority:1" json:"estado"`

	Nombre   string `gorm:"size:100;not null" json:"nombre"`
	Apellido string `gorm:"size:100;not null" json:"apellido"`
	Telefono string `gorm:"size:30;not null" json:"telefono"`

	Motivo        string  `gorm:"size:255;not null" json:"motivo"`
	Modalidad     string  `gorm:"size:50;not null" json:"modalidad"`
	ModalidadSlot string  `gorm:"size:50;not null;uniqueIndex:idx_turno_slot,priority:1" json:"-"`
	Fecha         string  `gorm:"size:10;not null;uniqueIndex:idx_turno_slot,priority:2" json:"fecha"`
	Hora          string  `gorm:"size:5;not null;uniqueIndex:idx_turno_slot,priority:3" json:"hora"`
	Duracion      string  `gorm:"size:50;not null" json:"duracion"`
	Costo         float64 `gorm:"not null" json:"costo"`
	Ubicacion     string  `gorm:"size:255;not null" json:"ubicacion"`

	// Kept out of event payloads and audit metadata.
	TokenCancelacion string `gorm:"size:36;not null;uniqueIndex" json:"-"`

	// nil means the creation time is unknown (legacy imports).
	CreatedAt *time.Time `gorm:"autoCreateTime:false;index:idx_turno_estado_creacion,priority:2" json:"fecha_creacion"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Turno) TableName() string {
	return "turnos"
}
