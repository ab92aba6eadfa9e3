package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/turnos-scheduler/internal/audit"
)

// QueueName is the durable queue receiving turno lifecycle events.
const QueueName = "turnos.eventos"

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Message is the JSON body of a published event.
type Message struct {
	Type       string    `json:"type"`
	TurnoID    string    `json:"turno_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Turno      any       `json:"turno,omitempty"`
}

// Publisher sends events to RabbitMQ, opening a connection per event.
type Publisher struct {
	open func() (channel, func(), error)
}

func NewPublisher(url string) *Publisher {
	return &Publisher{
		open: func() (channel, func(), error) {
			conn, err := amqp.Dial(url)
			if err != nil {
				return nil, nil, errors.Wrap(err, "dialing rabbitmq")
			}

			ch, err := conn.Channel()
			if err != nil {
				_ = conn.Close()
				return nil, nil, errors.Wrap(err, "opening channel")
			}

			return ch, func() { _ = conn.Close() }, nil
		},
	}
}

func (p *Publisher) Name() string { return "rabbitmq" }

func (p *Publisher) Handle(ctx context.Context, ev audit.Event) error {
	body, err := json.Marshal(Message{
		Type:       ev.Action,
		TurnoID:    ev.TurnoID,
		OccurredAt: ev.At.UTC(),
		Turno:      ev.Metadata,
	})
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}

	ch, closeConn, err := p.open()
	if err != nil {
		return err
	}
	defer closeConn()
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declaring queue")
	}

	if err := ch.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Action,
		MessageId:    ev.TurnoID + ":" + ev.Action,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		return errors.Wrap(err, "publishing event")
	}

	return nil
}
