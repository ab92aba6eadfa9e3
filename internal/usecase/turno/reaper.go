package turno

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
)

// Reaper deletes pending holds older than the hold window. Every entry point
// runs it before touching the store; Run repeats it in the background.
type Reaper struct {
	repo   domain.Repository
	clock  clock.Clock
	window time.Duration
}

func NewReaper(
	repo domain.Repository,
	clk clock.Clock,
	window time.Duration,
) *Reaper {
	if window <= 0 {
		window = domain.DefaultHoldWindow
	}
	return &Reaper{
		repo:   repo,
		clock:  clk,
		window: window,
	}
}

func (r *Reaper) Window() time.Duration {
	return r.window
}

// Execute never fails; store errors are logged.
func (r *Reaper) Execute(ctx context.Context) {
	cutoff := domain.ExpiryCutoff(r.clock.Now(), r.window)

	n, err := r.repo.DeleteExpiredPending(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("expiry sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("expired holds removed")
	}
}

// Run sweeps every interval until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Execute(ctx)
		}
	}
}
