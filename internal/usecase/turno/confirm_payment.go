package turno

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	"github.com/BruksfildServices01/turnos-scheduler/internal/domain/payment"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
)

// Result is the acknowledgement returned to the payment provider.
type Result string

const (
	ResultOK      Result = "ok"
	ResultIgnored Result = "ignored"
)

// ConfirmPayment applies a payment outcome to the hold it references.
// Only approved payments change state, and applying the same one twice is a
// no-op.
type ConfirmPayment struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewConfirmPayment(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	externalRef string,
	status string,
) (Result, error) {

	if status != payment.StatusApproved {
		log.Info().Str("turno_id", externalRef).Str("status", status).Msg("payment not approved, ignoring")
		return ResultIgnored, nil
	}

	t, err := uc.repo.GetByID(ctx, externalRef)
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeTurnoNotFound) {
			log.Warn().Str("turno_id", externalRef).Msg("approved payment for unknown turno")
			return ResultIgnored, nil
		}
		return ResultIgnored, err
	}

	if domain.CanConfirm(domain.Status(t.Estado)) != nil {
		return ResultOK, nil
	}

	changed, err := uc.repo.ConfirmPending(ctx, t.ID)
	if err != nil {
		return ResultIgnored, err
	}

	if changed {
		t.Estado = string(domain.StatusConfirmed)
		log.Info().Str("turno_id", t.ID).Msg("turno confirmed")

		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionConfirmed,
			TurnoID:  t.ID,
			At:       uc.clock.Now().UTC(),
			Metadata: *t,
		})
	}

	return ResultOK, nil
}
