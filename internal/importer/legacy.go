package importer

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
	"github.com/BruksfildServices01/turnos-scheduler/internal/timezone"
)

// LegacyTurno is one entry of the turnos.json file.
type LegacyTurno struct {
	ID               string  `json:"id"`
	Estado           string  `json:"estado"`
	Nombre           string  `json:"nombre"`
	Apellido         string  `json:"apellido"`
	Telefono         string  `json:"telefono"`
	Motivo           string  `json:"motivo"`
	Modalidad        string  `json:"modalidad"`
	Fecha            string  `json:"fecha"`
	Hora             string  `json:"hora"`
	Duracion         string  `json:"duracion"`
	Costo            float64 `json:"costo"`
	Ubicacion        string  `json:"ubicacion"`
	TokenCancelacion string  `json:"token_cancelacion"`
	FechaCreacion    string  `json:"fecha_creacion"`
}

type Report struct {
	Imported     int
	Skipped      int
	NoTimestamps int
}

// Importer loads legacy records into the store. Slots already occupied are
// skipped; the store keeps the record that got there first.
type Importer struct {
	repo     domain.Repository
	location *time.Location
	now      func() time.Time
	window   time.Duration
}

func New(
	repo domain.Repository,
	location *time.Location,
	window time.Duration,
) *Importer {
	return &Importer{
		repo:     repo,
		location: location,
		now:      time.Now,
		window:   window,
	}
}

func (im *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	var legacy []LegacyTurno
	if err := json.NewDecoder(r).Decode(&legacy); err != nil {
		return nil, errors.Wrap(err, "decoding legacy file")
	}

	report := &Report{}
	for i := range legacy {
		t, err := im.toModel(&legacy[i])
		if err != nil {
			log.Warn().Err(err).Int("index", i).Str("id", legacy[i].ID).Msg("skipping legacy turno")
			report.Skipped++
			continue
		}
		now := im.now()
		err = im.repo.CreateInSlot(ctx, t, func(existing []models.Turno) error {
			for j := range existing {
				if existing[j].ID == t.ID || domain.IsOccupying(&existing[j], now, im.window) {
					return httperr.ErrBusiness(domain.CodeSlotUnavailable)
				}
			}
			return nil
		})
		switch {
		case httperr.IsBusiness(err, domain.CodeSlotUnavailable):
			log.Warn().Str("id", t.ID).Str("fecha", t.Fecha).Str("hora", t.Hora).Msg("slot already taken, skipping")
			report.Skipped++
		case err != nil:
			return report, errors.Wrapf(err, "importing turno %s", t.ID)
		default:
			report.Imported++
			if t.CreatedAt == nil {
				report.NoTimestamps++
			}
		}
	}

	return report, nil
}

func (im *Importer) toModel(l *LegacyTurno) (*models.Turno, error) {
	estado, ok := domain.ParseStatus(strings.TrimSpace(l.Estado))
	if !ok {
		return nil, errors.Errorf("unknown estado %q", l.Estado)
	}
	if l.Modalidad == "" || l.Fecha == "" || l.Hora == "" {
		return nil, errors.New("missing slot fields")
	}

	id := l.ID
	if id == "" {
		id = uuid.NewString()
	}
	token := l.TokenCancelacion
	if token == "" {
		token = uuid.NewString()
	}

	t := &models.Turno{
		ID:               id,
		Estado:           string(estado),
		Nombre:           l.Nombre,
		Apellido:         l.Apellido,
		Telefono:         l.Telefono,
		Motivo:           l.Motivo,
		Modalidad:        l.Modalidad,
		ModalidadSlot:    domain.SlotModalidad(l.Modalidad),
		Fecha:            l.Fecha,
		Hora:             l.Hora,
		Duracion:         l.Duracion,
		Costo:            l.Costo,
		Ubicacion:        l.Ubicacion,
		TokenCancelacion: token,
	}

	if l.FechaCreacion != "" {
		created, err := timezone.NormalizeTimestamp(l.FechaCreacion, im.location)
		if err != nil {
			// unknown creation time keeps a pending hold live
			log.Warn().Str("id", id).Str("fecha_creacion", l.FechaCreacion).Msg("unparsable creation time")
		} else {
			t.CreatedAt = &created
		}
	}

	return t, nil
}
