package turno

import (
	"context"
	"time"

	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

// SlotCheck inspects the records currently stored for a slot and returns an
// error to abort the insert.
type SlotCheck func(existing []models.Turno) error

type Repository interface {
	// -------- Expiry --------
	DeleteExpiredPending(
		ctx context.Context,
		cutoff time.Time,
	) (int64, error)

	// -------- Reserve --------

	// CreateInSlot atomically runs check against the rows stored for t's
	// slot, removes the ones check let through and inserts t. A concurrent
	// insert for the same slot fails with slot_unavailable.
	CreateInSlot(
		ctx context.Context,
		t *models.Turno,
		check SlotCheck,
	) error

	// -------- Lookup --------
	GetByID(
		ctx context.Context,
		id string,
	) (*models.Turno, error)

	ListBySlotDate(
		ctx context.Context,
		modalidadSlot string,
		fecha string,
	) ([]models.Turno, error)

	List(
		ctx context.Context,
		estado *Status,
	) ([]models.Turno, error)

	// -------- State change --------

	// ConfirmPending moves a pending record to confirmed and reports
	// whether a row changed.
	ConfirmPending(
		ctx context.Context,
		id string,
	) (bool, error)

	DeleteByID(
		ctx context.Context,
		id string,
	) error

	// -------- Health --------
	Ping(ctx context.Context) error
}
