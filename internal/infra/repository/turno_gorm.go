package repository

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

type TurnoGormRepository struct {
	db *gorm.DB
}

func NewTurnoGormRepository(db *gorm.DB) *TurnoGormRepository {
	return &TurnoGormRepository{db: db}
}

// --------------------------------------------------
// Expiry
// --------------------------------------------------

func (r *TurnoGormRepository) DeleteExpiredPending(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("estado = ? AND created_at <= ?", string(domain.StatusPending), cutoff.UTC()).
		Delete(&models.Turno{})
	if res.Error != nil {
		return 0, pkgerrors.Wrap(res.Error, "deleting expired holds")
	}

	return res.RowsAffected, nil
}

// --------------------------------------------------
// Reserve
// --------------------------------------------------

func (r *TurnoGormRepository) CreateInSlot(
	ctx context.Context,
	t *models.Turno,
	check domain.SlotCheck,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Turno
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"modalidad_slot = ? AND fecha = ? AND hora = ?",
				t.ModalidadSlot, t.Fecha, t.Hora,
			).
			Find(&existing).Error; err != nil {
			return pkgerrors.Wrap(err, "reading slot")
		}

		if err := check(existing); err != nil {
			return err
		}

		// whatever is left in the slot is a stale hold the sweep has not
		// reached yet; it must go before the unique index accepts t
		if len(existing) > 0 {
			ids := make([]string, 0, len(existing))
			for _, e := range existing {
				ids = append(ids, e.ID)
			}

			if err := tx.
				Where("id IN ? AND estado = ?", ids, string(domain.StatusPending)).
				Delete(&models.Turno{}).Error; err != nil {
				return pkgerrors.Wrap(err, "clearing stale holds")
			}
		}

		if err := tx.Create(t).Error; err != nil {
			return pkgerrors.Wrap(err, "inserting turno")
		}

		return nil
	})

	if err != nil && httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(domain.CodeSlotUnavailable)
	}

	return err
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *TurnoGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Turno, error) {

	var t models.Turno
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error

	if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness(domain.CodeTurnoNotFound)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "getting turno")
	}

	return &t, nil
}

func (r *TurnoGormRepository) ListBySlotDate(
	ctx context.Context,
	modalidadSlot string,
	fecha string,
) ([]models.Turno, error) {

	var turnos []models.Turno
	if err := r.db.WithContext(ctx).
		Where("modalidad_slot = ? AND fecha = ?", modalidadSlot, fecha).
		Order("hora ASC").
		Find(&turnos).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "listing slot date")
	}

	return turnos, nil
}

func (r *TurnoGormRepository) List(
	ctx context.Context,
	estado *domain.Status,
) ([]models.Turno, error) {

	q := r.db.WithContext(ctx)
	if estado != nil {
		q = q.Where("estado = ?", string(*estado))
	}

	var turnos []models.Turno
	if err := q.
		Order("fecha ASC, hora ASC").
		Find(&turnos).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "listing turnos")
	}

	return turnos, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *TurnoGormRepository) ConfirmPending(
	ctx context.Context,
	id string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Turno{}).
		Where("id = ? AND estado = ?", id, string(domain.StatusPending)).
		Update("estado", string(domain.StatusConfirmed))
	if res.Error != nil {
		return false, pkgerrors.Wrap(res.Error, "confirming turno")
	}

	return res.RowsAffected > 0, nil
}

func (r *TurnoGormRepository) DeleteByID(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Turno{})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "deleting turno")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(domain.CodeTurnoNotFound)
	}

	return nil
}

// --------------------------------------------------
// Health
// --------------------------------------------------

func (r *TurnoGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Compile-time check
var _ domain.Repository = (*TurnoGormRepository)(nil)
