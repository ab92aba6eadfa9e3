package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
)

// writeError maps use case errors to the HTTP error envelope.
func writeError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case domain.CodeSlotUnavailable:
		httperr.Conflict(c, code, "El horario ya no está disponible.")
	case domain.CodeTurnoNotFound:
		httperr.NotFound(c, code, "Turno no encontrado.")
	case domain.CodePaymentFailed:
		httperr.Internal(c, code, "Error al crear preferencia de pago en Mercado Pago.")
	case domain.CodeInvalidDateOrTime:
		httperr.BadRequest(c, code, "Fecha u hora inválida.")
	case domain.CodeInvalidEstado:
		httperr.BadRequest(c, code, "Estado inválido.")
	case domain.CodeInvalidRequest:
		httperr.BadRequest(c, code, "Datos inválidos.")
	default:
		_ = c.Error(err)
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
		httperr.Internal(c, "internal_error", "Error interno.")
	}
}
