package turno

import "github.com/BruksfildServices01/turnos-scheduler/internal/httperr"

// ===============================
// Turno Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendiente_de_pago"
	StatusConfirmed Status = "confirmado"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed:
		return Status(s), true
	}
	return "", false
}

// ===============================
// Validations
// ===============================

// CanConfirm allows only pending holds to become confirmed.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
