package importer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnos-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/infra/repository"
)

const legacyFile = `[
  {"id": "a", "estado": "confirmado", "nombre": "Ana", "apellido": "Pérez", "motivo": "Control",
   "modalidad": "Presencial", "fecha": "2025-11-20", "hora": "10:00", "duracion": "45 minutos",
   "costo": 27500, "ubicacion": "Córdoba", "token_cancelacion": "tok-a",
   "fecha_creacion": "2025-11-19T18:30:00.123456"},
  {"id": "b", "estado": "pendiente_de_pago", "nombre": "Beto", "modalidad": "virtual",
   "fecha": "2025-11-20", "hora": "11:00", "fecha_creacion": "2025-11-20T09:59:00-03:00"},
  {"id": "c", "estado": "pendiente_de_pago", "nombre": "Caro", "modalidad": "virtual",
   "fecha": "2025-11-20", "hora": "12:00", "fecha_creacion": "ayer"},
  {"id": "d", "estado": "confirmado", "nombre": "Dani", "modalidad": "presencial",
   "fecha": "2025-11-20", "hora": "10:00"},
  {"id": "e", "estado": "cancelado", "modalidad": "virtual", "fecha": "2025-11-21", "hora": "10:00"}
]`

func TestImport(t *testing.T) {
	repo := repository.NewTurnoGormRepository(dbtest.New(t))

	cordoba, err := time.LoadLocation("America/Argentina/Cordoba")
	require.NoError(t, err)

	im := New(repo, cordoba, 2*time.Minute)
	im.now = func() time.Time { return time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC) }

	report, err := im.Import(context.Background(), strings.NewReader(legacyFile))
	require.NoError(t, err)
	assert.Equal(t, &Report{Imported: 3, Skipped: 2, NoTimestamps: 1}, report)

	a, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "presencial", a.ModalidadSlot)
	assert.Equal(t, "tok-a", a.TokenCancelacion)
	require.NotNil(t, a.CreatedAt)
	assert.True(t, time.Date(2025, 11, 19, 21, 30, 0, 123456000, time.UTC).Equal(*a.CreatedAt))

	b, err := repo.GetByID(context.Background(), "b")
	require.NoError(t, err)
	require.NotNil(t, b.CreatedAt)
	assert.True(t, time.Date(2025, 11, 20, 12, 59, 0, 0, time.UTC).Equal(*b.CreatedAt))
	assert.NotEmpty(t, b.TokenCancelacion)

	c, err := repo.GetByID(context.Background(), "c")
	require.NoError(t, err)
	assert.Nil(t, c.CreatedAt)
	assert.True(t, domain.IsPendingLive(c, im.now().Add(time.Hour), 2*time.Minute))

	_, err = repo.GetByID(context.Background(), "d")
	assert.Error(t, err)
}

func TestImport_RerunIsSkipped(t *testing.T) {
	repo := repository.NewTurnoGormRepository(dbtest.New(t))
	im := New(repo, time.UTC, 2*time.Minute)

	first, err := im.Import(context.Background(), strings.NewReader(legacyFile))
	require.NoError(t, err)

	second, err := im.Import(context.Background(), strings.NewReader(legacyFile))
	require.NoError(t, err)
	assert.Zero(t, second.Imported)
	assert.Equal(t, first.Imported+first.Skipped, second.Skipped)
}

func TestImport_BadFile(t *testing.T) {
	repo := repository.NewTurnoGormRepository(dbtest.New(t))

	_, err := New(repo, time.UTC, time.Minute).Import(context.Background(), strings.NewReader(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestImport_SkippedRecordDoesNotCountMissingTimestamp(t *testing.T) {
	repo := repository.NewTurnoGormRepository(dbtest.New(t))
	im := New(repo, time.UTC, 2*time.Minute)

	const file = `[
  {"id": "x", "estado": "confirmado", "modalidad": "virtual", "fecha": "2025-11-20", "hora": "10:00",
   "fecha_creacion": "2025-11-19T10:00:00Z"},
  {"id": "y", "estado": "confirmado", "modalidad": "virtual", "fecha": "2025-11-20", "hora": "10:00"}
]`

	report, err := im.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, &Report{Imported: 1, Skipped: 1, NoTimestamps: 0}, report)
}
