package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnos-scheduler/internal/dto"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/turnos-scheduler/internal/usecase/turno"
)

// ======================================================
// HANDLER
// ======================================================

type TurnoHandler struct {
	createHold *turno.CreateHold
	occupied   *turno.ListOccupied
	cancel     *turno.Cancel
	status     *turno.GetStatus
	list       *turno.ListTurnos
}

func NewTurnoHandler(
	createHold *turno.CreateHold,
	occupied *turno.ListOccupied,
	cancel *turno.Cancel,
	status *turno.GetStatus,
	list *turno.ListTurnos,
) *TurnoHandler {
	return &TurnoHandler{
		createHold: createHold,
		occupied:   occupied,
		cancel:     cancel,
		status:     status,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CrearPreferenciaRequest struct {
	Nombre    string   `json:"nombre" binding:"required"`
	Apellido  string   `json:"apellido" binding:"required"`
	Telefono  string   `json:"telefono" binding:"required"`
	Motivo    string   `json:"motivo" binding:"required"`
	Modalidad string   `json:"modalidad" binding:"required"`
	Fecha     string   `json:"fecha" binding:"required,fecha"` // YYYY-MM-DD
	Hora      string   `json:"hora" binding:"required,hora"`   // HH:MM
	Duracion  string   `json:"duracion" binding:"required"`
	Costo     *float64 `json:"costo" binding:"required,gte=0"` // 0 is a valid price
	Ubicacion string   `json:"ubicacion" binding:"required"`
}

// ======================================================
// CREATE HOLD
// ======================================================

func (h *TurnoHandler) CrearPreferencia(c *gin.Context) {
	var req CrearPreferenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	out, err := h.createHold.Execute(c.Request.Context(), turno.CreateHoldInput{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Telefono:  req.Telefono,
		Motivo:    req.Motivo,
		Modalidad: req.Modalidad,
		Fecha:     req.Fecha,
		Hora:      req.Hora,
		Duracion:  req.Duracion,
		Costo:     *req.Costo,
		Ubicacion: req.Ubicacion,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"pago_url": out.PagoURL,
		"turno_id": out.TurnoID,
	})
}

// ======================================================
// QUERIES
// ======================================================

func (h *TurnoHandler) TurnosOcupados(c *gin.Context) {
	modalidad := c.Query("modalidad")
	fecha := c.Query("fecha")
	if modalidad == "" || fecha == "" {
		httperr.BadRequest(c, "invalid_request", "Faltan modalidad o fecha.")
		return
	}

	horas, err := h.occupied.Execute(c.Request.Context(), modalidad, fecha)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, horas)
}

func (h *TurnoHandler) EstadoTurno(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "invalid_request", "Falta el id del turno.")
		return
	}

	out, err := h.status.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.EstadoTurnoDTO{
		Estado:            string(out.Estado),
		SegundosRestantes: out.SegundosRestantes,
	})
}

func (h *TurnoHandler) VerTurnos(c *gin.Context) {
	turnos, err := h.list.Execute(c.Request.Context(), c.Query("estado"))
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := dto.FromTurnos(turnos)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, "turnos", out)
}

// ======================================================
// CANCEL
// ======================================================

func (h *TurnoHandler) CancelarTurno(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		httperr.BadRequest(c, "invalid_request", "Falta el id del turno.")
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "cancelado"})
}
