package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"estate-api/domain"
)

// Publisher avisa los cambios de propiedades al lado de lectura
type Publisher interface {
	Publish(ctx context.Context, event domain.PropertyEvent) error
	Close() error
}

// RabbitMQPublisher escribe eventos en una cola durable
type RabbitMQPublisher struct {
	mu         sync.Mutex
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
}

// NewRabbitMQPublisher se conecta y declara la cola
func NewRabbitMQPublisher(rabbitURL, queueName string) (*RabbitMQPublisher, error) {
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
	log.Info().Str("queue", queueName).Msg("RabbitMQ publisher connected")
	return &RabbitMQPublisher{connection: conn, channel: ch, queueName: queueName}, nil
}

// Publish envía el evento como mensaje JSON persistente
func (p *RabbitMQPublisher) Publish(ctx context.Context, event domain.PropertyEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling event: %w", err)
	}

	// los canales de amqp no soportan publicar en paralelo
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.Publish("", p.queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("error publishing event: %w", err)
	}
	return nil
}

// Close cierra el canal y la conexión
func (p *RabbitMQPublisher) Close() error {
	return errors.Join(p.channel.Close(), p.connection.Close())
}

// Handler aplica un evento de forma sincrónica
type Handler interface {
	Handle(ctx context.Context, event domain.PropertyEvent) error
}

// InProcessPublisher le pasa los eventos directo a un handler. Reemplaza al
// broker cuando no hay uno configurado.
type InProcessPublisher struct {
	handler Handler
}

// NewInProcessPublisher crea un publisher que llama a handler
func NewInProcessPublisher(handler Handler) *InProcessPublisher {
	return &InProcessPublisher{handler: handler}
}

// Publish ejecuta el handler
func (p *InProcessPublisher) Publish(ctx context.Context, event domain.PropertyEvent) error {
	return p.handler.Handle(ctx, event)
}

// Close no hace nada
func (p *InProcessPublisher) Close() error { return nil }
