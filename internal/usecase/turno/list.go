package turno

import (
	"context"

	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

type ListTurnos struct {
	repo   domain.Repository
	reaper *Reaper
}

func NewListTurnos(
	repo domain.Repository,
	reaper *Reaper,
) *ListTurnos {
	return &ListTurnos{
		repo:   repo,
		reaper: reaper,
	}
}

// Execute lists every turno ordered by date and time. An empty estado means
// no filter.
func (uc *ListTurnos) Execute(ctx context.Context, estado string) ([]models.Turno, error) {
	var filter *domain.Status
	if estado != "" {
		s, ok := domain.ParseStatus(estado)
		if !ok {
			return nil, httperr.ErrBusiness(domain.CodeInvalidEstado)
		}
		filter = &s
	}

	uc.reaper.Execute(ctx)

	return uc.repo.List(ctx, filter)
}
