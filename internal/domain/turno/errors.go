package turno

// Business error codes surfaced through httperr.BusinessError.
const (
	CodeSlotUnavailable   = "slot_unavailable"
	CodeTurnoNotFound     = "turno_not_found"
	CodePaymentFailed     = "payment_failed"
	CodeInvalidState      = "invalid_state"
	CodeInvalidDateOrTime = "invalid_date_or_time"
	CodeInvalidEstado     = "invalid_estado"
	CodeInvalidRequest    = "invalid_request"
)
