package dto

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

func TestFromTurnos(t *testing.T) {
	created := time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC)

	got, err := FromTurnos([]models.Turno{
		{
			ID:               "a",
			Estado:           "confirmado",
			Nombre:           "Ana",
			Modalidad:        "Presencial",
			ModalidadSlot:    "presencial",
			Fecha:            "2025-11-20",
			Hora:             "10:00",
			Costo:            100,
			TokenCancelacion: "tok",
			CreatedAt:        &created,
		},
		{ID: "b", Estado: "pendiente_de_pago"},
	})
	require.NoError(t, err)

	want := []TurnoDTO{
		{
			ID:               "a",
			Estado:           "confirmado",
			Nombre:           "Ana",
			Modalidad:        "Presencial",
			Fecha:            "2025-11-20",
			Hora:             "10:00",
			Costo:            100,
			TokenCancelacion: "tok",
			CreatedAt:        &created,
		},
		{ID: "b", Estado: "pendiente_de_pago"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromTurnos mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTurnos_EmptyIsNotNil(t *testing.T) {
	got, err := FromTurnos(nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
