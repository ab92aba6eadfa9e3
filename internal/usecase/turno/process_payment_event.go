package turno

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnos-scheduler/internal/domain/payment"
)

// PaymentEvent is a provider notification reduced to what matters here.
type PaymentEvent struct {
	Type   string
	DataID string
}

// ProcessPaymentEvent resolves a provider notification to a payment and
// forwards its outcome to ConfirmPayment. It never fails; anything unusable
// is acknowledged as ignored.
type ProcessPaymentEvent struct {
	gateway payment.Gateway
	confirm *ConfirmPayment
}

func NewProcessPaymentEvent(
	gateway payment.Gateway,
	confirm *ConfirmPayment,
) *ProcessPaymentEvent {
	return &ProcessPaymentEvent{
		gateway: gateway,
		confirm: confirm,
	}
}

func (uc *ProcessPaymentEvent) Execute(
	ctx context.Context,
	evt PaymentEvent,
) Result {

	if evt.Type != "payment" || evt.DataID == "" {
		return ResultIgnored
	}

	detail, err := uc.gateway.GetPayment(ctx, evt.DataID)
	if err != nil {
		log.Warn().Err(err).Str("payment_id", evt.DataID).Msg("payment lookup failed")
		return ResultIgnored
	}
	if detail.Status == "" || detail.ExternalReference == "" {
		log.Warn().Str("payment_id", evt.DataID).Msg("payment without status or reference")
		return ResultIgnored
	}

	res, err := uc.confirm.Execute(ctx, detail.ExternalReference, detail.Status)
	if err != nil {
		log.Error().Err(err).Str("turno_id", detail.ExternalReference).Msg("confirming payment")
		return ResultIgnored
	}

	return res
}
