package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"estate-api/domain"
)

// DefaultQueue se usa cuando no se configura el nombre de la cola
const DefaultQueue = "properties_queue"

// EventHandler procesa eventos de propiedades ya decodificados
type EventHandler interface {
	Handle(ctx context.Context, event domain.PropertyEvent) error
}

// RabbitMQConsumer pasa los eventos de una cola durable a un handler
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	handler    EventHandler
	timeout    time.Duration
}

// NewRabbitMQConsumer se conecta y declara la cola
func NewRabbitMQConsumer(rabbitURL, queueName string, handler EventHandler) (*RabbitMQConsumer, error) {
	if queueName == "" {
		queueName = DefaultQueue
	}

	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	log.Info().Str("queue", queueName).Msg("RabbitMQ consumer connected")

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		handler:    handler,
		timeout:    30 * time.Second,
	}, nil
}

// Run consume de a un mensaje hasta que termine ctx o el broker cierre el canal
// de entregas.
func (c *RabbitMQConsumer) Run(ctx context.Context) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	msgs, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}
	log.Info().Str("queue", c.queueName).Msg("Waiting for property events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.processMessage(ctx, msg)
		}
	}
}

// processMessage hace ack si sale bien, descarta los mensajes mal formados y
// reencola el resto.
func (c *RabbitMQConsumer) processMessage(ctx context.Context, msg amqp.Delivery) {
	var event domain.PropertyEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Warn().Err(err).Msg("Dropping undecodable property event")
		c.nack(msg, false)
		return
	}

	hctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.handler.Handle(hctx, event); err != nil {
		requeue := !errors.Is(err, ErrMalformedEvent)
		log.Error().Err(err).
			Str("action", string(event.Action)).
			Str("property_id", event.PropertyID).
			Bool("requeue", requeue).
			Msg("Error processing property event")
		c.nack(msg, requeue)
		return
	}
	if err := msg.Ack(false); err != nil {
		log.Error().Err(err).Msg("Error acknowledging message")
	}
}

func (c *RabbitMQConsumer) nack(msg amqp.Delivery, requeue bool) {
	if err := msg.Nack(false, requeue); err != nil {
		log.Error().Err(err).Msg("Error rejecting message")
	}
}

// Close cierra el canal y la conexión
func (c *RabbitMQConsumer) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
