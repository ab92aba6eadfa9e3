package turno

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
)

type ListOccupied struct {
	repo   domain.Repository
	reaper *Reaper
	clock  clock.Clock
}

func NewListOccupied(
	repo domain.Repository,
	reaper *Reaper,
	clk clock.Clock,
) *ListOccupied {
	return &ListOccupied{
		repo:   repo,
		reaper: reaper,
		clock:  clk,
	}
}

// Execute returns the sorted times taken on fecha for modalidad.
func (uc *ListOccupied) Execute(
	ctx context.Context,
	modalidad string,
	fecha string,
) ([]string, error) {

	uc.reaper.Execute(ctx)

	turnos, err := uc.repo.ListBySlotDate(ctx, domain.SlotModalidad(modalidad), fecha)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	window := uc.reaper.Window()

	horas := make([]string, 0, len(turnos))
	for i := range turnos {
		if domain.IsOccupying(&turnos[i], now, window) {
			horas = append(horas, turnos[i].Hora)
		}
	}
	sort.Strings(horas)

	return horas, nil
}
