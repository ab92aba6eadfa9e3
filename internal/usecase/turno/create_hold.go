package turno

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
	"github.com/BruksfildServices01/turnos-scheduler/internal/clock"
	"github.com/BruksfildServices01/turnos-scheduler/internal/domain/payment"
	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
	"github.com/BruksfildServices01/turnos-scheduler/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateHoldInput struct {
	Nombre   string
	Apellido string
	Telefono string

	Motivo    string
	Modalidad string
	Fecha     string
	Hora      string
	Duracion  string
	Costo     float64
	Ubicacion string
}

type CreateHoldOutput struct {
	TurnoID string
	PagoURL string
}

// CheckoutSettings are the fixed parts of every payment session.
type CheckoutSettings struct {
	FrontURL   string
	WebhookURL string
	Currency   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateHold struct {
	repo     domain.Repository
	reaper   *Reaper
	locker   domain.SlotLocker
	gateway  payment.Gateway
	clock    clock.Clock
	audit    *audit.Dispatcher
	checkout CheckoutSettings
}

func NewCreateHold(
	repo domain.Repository,
	reaper *Reaper,
	locker domain.SlotLocker,
	gateway payment.Gateway,
	clk clock.Clock,
	audit *audit.Dispatcher,
	checkout CheckoutSettings,
) *CreateHold {
	if checkout.Currency == "" {
		checkout.Currency = "ARS"
	}
	return &CreateHold{
		repo:     repo,
		reaper:   reaper,
		locker:   locker,
		gateway:  gateway,
		clock:    clk,
		audit:    audit,
		checkout: checkout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateHold) Execute(
	ctx context.Context,
	in CreateHoldInput,
) (*CreateHoldOutput, error) {

	if err := validateSlot(in.Fecha, in.Hora); err != nil {
		return nil, err
	}
	if in.Costo < 0 {
		return nil, httperr.ErrBusiness(domain.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// 1. Sweep
	// --------------------------------------------------
	uc.reaper.Execute(ctx)

	// --------------------------------------------------
	// 2. Atomic check + insert
	// --------------------------------------------------
	t, err := uc.reserve(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Payment session
	// --------------------------------------------------
	checkout, err := uc.gateway.CreateCheckout(ctx, uc.checkoutRequest(t))
	if err != nil {
		log.Error().Err(err).Str("turno_id", t.ID).Msg("payment session failed, releasing hold")

		if delErr := uc.repo.DeleteByID(context.WithoutCancel(ctx), t.ID); delErr != nil &&
			!httperr.IsBusiness(delErr, domain.CodeTurnoNotFound) {
			log.Error().Err(delErr).Str("turno_id", t.ID).Msg("compensating delete failed")
		}
		return nil, httperr.ErrBusiness(domain.CodePaymentFailed)
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionCreated,
		TurnoID:  t.ID,
		At:       *t.CreatedAt,
		Metadata: *t,
	})

	return &CreateHoldOutput{
		TurnoID: t.ID,
		PagoURL: checkout.URL,
	}, nil
}

func (uc *CreateHold) reserve(
	ctx context.Context,
	in CreateHoldInput,
) (*models.Turno, error) {

	release, err := uc.locker.Acquire(ctx, domain.SlotKey(in.Modalidad, in.Fecha, in.Hora))
	if err != nil {
		return nil, err
	}
	defer release()

	now := uc.clock.Now().UTC()
	window := uc.reaper.Window()

	t := &models.Turno{
		ID:               uuid.NewString(),
		Estado:           string(domain.InitialStatus()),
		Nombre:           strings.TrimSpace(in.Nombre),
		Apellido:         strings.TrimSpace(in.Apellido),
		Telefono:         strings.TrimSpace(in.Telefono),
		Motivo:           strings.TrimSpace(in.Motivo),
		Modalidad:        strings.TrimSpace(in.Modalidad),
		ModalidadSlot:    domain.SlotModalidad(in.Modalidad),
		Fecha:            in.Fecha,
		Hora:             in.Hora,
		Duracion:         in.Duracion,
		Costo:            in.Costo,
		Ubicacion:        strings.TrimSpace(in.Ubicacion),
		TokenCancelacion: uuid.NewString(),
		CreatedAt:        &now,
	}

	err = uc.repo.CreateInSlot(ctx, t, func(existing []models.Turno) error {
		for i := range existing {
			if domain.IsOccupying(&existing[i], now, window) {
				return httperr.ErrBusiness(domain.CodeSlotUnavailable)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (uc *CreateHold) checkoutRequest(t *models.Turno) payment.CheckoutRequest {
	details := url.Values{}
	details.Set("nombre", t.Nombre)
	details.Set("apellido", t.Apellido)
	details.Set("motivo", t.Motivo)
	details.Set("modalidad", t.Modalidad)
	details.Set("fecha", t.Fecha)
	details.Set("hora", t.Hora)
	details.Set("ubicacion", t.Ubicacion)

	return payment.CheckoutRequest{
		ExternalReference: t.ID,
		Title:             "Turno - " + t.Motivo,
		Amount:            t.Costo,
		Currency:          uc.checkout.Currency,
		SuccessURL:        uc.checkout.FrontURL + "/gracias?" + details.Encode(),
		FailureURL:        uc.checkout.FrontURL + "/error",
		PendingURL:        uc.checkout.FrontURL + "/pending",
		NotificationURL:   uc.checkout.WebhookURL,
		ExpiresIn:         uc.reaper.Window(),
	}
}

// validateSlot checks the date and time strings of a slot.
func validateSlot(fecha, hora string) error {
	if !validators.IsDate(fecha) || !validators.IsTime(hora) {
		return httperr.ErrBusiness(domain.CodeInvalidDateOrTime)
	}
	return nil
}
