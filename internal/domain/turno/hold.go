package turno

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

// DefaultHoldWindow is how long an unpaid hold keeps its slot.
const DefaultHoldWindow = 2 * time.Minute

// SlotModalidad is the case-insensitive form of a modality used as part of
// the slot key.
func SlotModalidad(modalidad string) string {
	return strings.ToLower(strings.TrimSpace(modalidad))
}

// IsPendingLive reports whether t is a pending hold younger than window.
// A hold with unknown creation time is treated as live.
func IsPendingLive(t *models.Turno, now time.Time, window time.Duration) bool {
	if Status(t.Estado) != StatusPending {
		return false
	}
	if t.CreatedAt == nil {
		return true
	}
	return now.UTC().Sub(t.CreatedAt.UTC()) < window
}

// IsOccupying reports whether t blocks its slot at now.
func IsOccupying(t *models.Turno, now time.Time, window time.Duration) bool {
	return Status(t.Estado) == StatusConfirmed || IsPendingLive(t, now, window)
}

// RemainingSeconds is the whole number of seconds left before a pending hold
// expires, 0 for anything else.
func RemainingSeconds(t *models.Turno, now time.Time, window time.Duration) int {
	if Status(t.Estado) != StatusPending || t.CreatedAt == nil {
		return 0
	}

	left := window - now.UTC().Sub(t.CreatedAt.UTC())
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}

// ExpiryCutoff is the creation time at or before which a pending hold is
// expired.
func ExpiryCutoff(now time.Time, window time.Duration) time.Time {
	return now.UTC().Add(-window)
}
