package turno

import (
	"context"

	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
)

type StatusOutput struct {
	Estado            domain.Status
	SegundosRestantes int
}

type GetStatus struct {
	repo   domain.Repository
	reaper *Reaper
	clock  clock.Clock
}

func NewGetStatus(
	repo domain.Repository,
	reaper *Reaper,
	clk clock.Clock,
) *GetStatus {
	return &GetStatus{
		repo:   repo,
		reaper: reaper,
		clock:  clk,
	}
}

func (uc *GetStatus) Execute(ctx context.Context, id string) (*StatusOutput, error) {
	uc.reaper.Execute(ctx)

	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		Estado:            domain.Status(t.Estado),
		SegundosRestantes: domain.RemainingSeconds(t, uc.clock.Now(), uc.reaper.Window()),
	}, nil
}
