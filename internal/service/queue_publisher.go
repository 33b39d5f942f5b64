// Package service holds outbound integrations used by the HTTP handlers.
// Publishing failures are logged and returned so callers can carry on
// without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	q "github.com/iliyamo/fyyur/internal/queue"
)

// DefaultDialTimeout bounds the connect and handshake of one publish.
const DefaultDialTimeout = 2 * time.Second

// AMQPPublisher sends activity events to RabbitMQ. It dials per publish;
// listing edits are rare enough that a pooled connection is not worth the
// reconnect handling. A publish never waits on the broker longer than
// Timeout or the request deadline, whichever is sooner.
type AMQPPublisher struct {
	URL     string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, log logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Timeout: DefaultDialTimeout, Log: log}
}

func (p *AMQPPublisher) dialTimeout(ctx context.Context) time.Duration {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return timeout
}

// Publish marshals ev and sends it to the activity queue as a persistent
// message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ActivityEvent) error {
	log := p.Log.WithField("kind", ev.Kind)

	body, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("rabbitmq: marshal event failed")
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := p.dialTimeout(ctx)
	if timeout <= 0 {
		return context.DeadlineExceeded
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := declareActivityQueue(ch); err != nil {
		log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ActivityQueue, false, false, pub); err != nil {
		log.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}
	return nil
}

func declareActivityQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		q.ActivityQueue, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,
	)
	return err
}

// NopPublisher drops every event. It stands in when activity publishing
// is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.ActivityEvent) error { return nil }
