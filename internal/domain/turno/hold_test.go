package turno

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

func turnoAt(estado Status, created *time.Time) *models.Turno {
	return &models.Turno{Estado: string(estado), CreatedAt: created}
}

func TestIsPendingLive(t *testing.T) {
	now := time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC)
	w := 2 * time.Minute
	at := func(d time.Duration) *time.Time { ts := now.Add(-d); return &ts }

	tests := []struct {
		name  string
		turno *models.Turno
		want  bool
	}{
		{"fresh pending", turnoAt(StatusPending, at(10*time.Second)), true},
		{"pending just under window", turnoAt(StatusPending, at(w-time.Nanosecond)), true},
		{"pending exactly at window", turnoAt(StatusPending, at(w)), false},
		{"stale pending", turnoAt(StatusPending, at(5*time.Minute)), false},
		{"pending unknown creation", turnoAt(StatusPending, nil), true},
		{"confirmed is never a live hold", turnoAt(StatusConfirmed, at(time.Second)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPendingLive(tt.turno, now, w))
		})
	}
}

func TestIsPendingLive_NormalizesOffsets(t *testing.T) {
	w := 2 * time.Minute
	cordoba := time.FixedZone("-03", -3*60*60)

	created := time.Date(2025, 11, 20, 10, 0, 0, 0, cordoba)
	now := time.Date(2025, 11, 20, 13, 1, 0, 0, time.UTC)

	assert.True(t, IsPendingLive(turnoAt(StatusPending, &created), now, w))
	assert.False(t, IsPendingLive(turnoAt(StatusPending, &created), now.Add(2*time.Minute), w))
}

func TestIsOccupying(t *testing.T) {
	now := time.Now().UTC()
	old := now.Add(-time.Hour)

	assert.True(t, IsOccupying(turnoAt(StatusConfirmed, &old), now, DefaultHoldWindow))
	assert.False(t, IsOccupying(turnoAt(StatusPending, &old), now, DefaultHoldWindow))
	assert.True(t, IsOccupying(turnoAt(StatusPending, &now), now, DefaultHoldWindow))
}

func TestRemainingSeconds(t *testing.T) {
	now := time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC)
	w := 2 * time.Minute
	at := func(d time.Duration) *time.Time { ts := now.Add(-d); return &ts }

	assert.Equal(t, 120, RemainingSeconds(turnoAt(StatusPending, at(0)), now, w))
	assert.Equal(t, 90, RemainingSeconds(turnoAt(StatusPending, at(30*time.Second)), now, w))
	assert.Equal(t, 0, RemainingSeconds(turnoAt(StatusPending, at(3*time.Minute)), now, w))
	assert.Equal(t, 0, RemainingSeconds(turnoAt(StatusConfirmed, at(0)), now, w))
	assert.Equal(t, 0, RemainingSeconds(turnoAt(StatusPending, nil), now, w))
}

func TestSlotModalidad(t *testing.T) {
	assert.Equal(t, "presencial", SlotModalidad("  Presencial "))
	assert.Equal(t, "virtual", SlotModalidad("VIRTUAL"))
}

func TestParseStatusAndCanConfirm(t *testing.T) {
	s, ok := ParseStatus("confirmado")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, s)

	_, ok = ParseStatus("cancelado")
	assert.False(t, ok)

	assert.NoError(t, CanConfirm(StatusPending))
	assert.Error(t, CanConfirm(StatusConfirmed))
	assert.Equal(t, StatusPending, InitialStatus())
}
