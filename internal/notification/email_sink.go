package notification

import (
	"bytes"
	"context"
	"html/template"

	"github.com/pkg/errors"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
	"github.com/BruksfildServices01/turnos-scheduler/internal/models"
)

var bodyTemplate = template.Must(template.New("turno").Parse(`<h2>{{.Title}}</h2>
<ul>
<li><b>Paciente:</b> {{.Turno.Nombre}} {{.Turno.Apellido}}</li>
<li><b>Teléfono:</b> {{.Turno.Telefono}}</li>
<li><b>Motivo:</b> {{.Turno.Motivo}}</li>
<li><b>Modalidad:</b> {{.Turno.Modalidad}}</li>
<li><b>Fecha:</b> {{.Turno.Fecha}} {{.Turno.Hora}}</li>
<li><b>Duración:</b> {{.Turno.Duracion}}</li>
<li><b>Ubicación:</b> {{.Turno.Ubicacion}}</li>
<li><b>Costo:</b> ${{printf "%.2f" .Turno.Costo}}</li>
</ul>
<p>ID: {{.Turno.ID}}</p>
`))

var subjects = map[string]string{
	audit.ActionCreated:   "Nuevo turno pendiente de pago",
	audit.ActionConfirmed: "Turno confirmado",
}

// EmailSink mails the practitioner when a hold is created or confirmed.
type EmailSink struct {
	sender Sender
	to     []string
}

func NewEmailSink(sender Sender, to ...string) *EmailSink {
	return &EmailSink{sender: sender, to: to}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Handle(ctx context.Context, ev audit.Event) error {
	subject, ok := subjects[ev.Action]
	if !ok || len(s.to) == 0 {
		return nil
	}

	t, ok := ev.Metadata.(models.Turno)
	if !ok {
		return nil
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, struct {
		Title string
		Turno models.Turno
	}{subject, t}); err != nil {
		return errors.Wrap(err, "rendering email")
	}

	return s.sender.Send(ctx, Message{
		To:      s.to,
		Subject: subject + " - " + t.Fecha + " " + t.Hora,
		HTML:    body.String(),
	})
}
