package turno

import (
	"context"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
)

// Cancel removes a turno in any state.
type Cancel struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:  repo,
		clock: clk,
		audit: audit,
	}
}

func (uc *Cancel) Execute(ctx context.Context, id string) error {
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:  audit.ActionCancelled,
		TurnoID: id,
		At:      uc.clock.Now().UTC(),
	})

	return nil
}
