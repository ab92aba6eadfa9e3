package dto

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

type TurnoDTO struct {
	ID               string     `json:"id"`
	Estado           string     `json:"estado"`
	Nombre           string     `json:"nombre"`
	Apellido         string     `json:"apellido"`
	Telefono         string     `json:"telefono"`
	Motivo           string     `json:"motivo"`
	Modalidad        string     `json:"modalidad"`
	Fecha            string     `json:"fecha"`
	Hora             string     `json:"hora"`
	Duracion         string     `json:"duracion"`
	Costo            float64    `json:"costo"`
	Ubicacion        string     `json:"ubicacion"`
	TokenCancelacion string     `json:"token_cancelacion"`
	CreatedAt        *time.Time `json:"fecha_creacion"`
}

func FromTurnos(turnos []models.Turno) ([]TurnoDTO, error) {
	out := make([]TurnoDTO, 0, len(turnos))
	if len(turnos) == 0 {
		return out, nil
	}
	if err := copier.Copy(&out, &turnos); err != nil {
		return nil, err
	}
	return out, nil
}

type EstadoTurnoDTO struct {
	Estado            string `json:"estado"`
	SegundosRestantes int    `json:"segundos_restantes"`
}
