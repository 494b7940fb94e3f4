package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события в RabbitMQ
// Публикация best-effort: ошибки логируются и возвращаются, но вызывающая
// сторона не прерывает основной поток запроса из-за недоступности брокера
type Publisher struct {
	url     string
	enabled bool
	log     Logger
}

// NewPublisher создает новый экземпляр публикатора событий
// При enabled = false все публикации превращаются в no-op
func NewPublisher(url string, enabled bool, log Logger) *Publisher {
	return &Publisher{
		url:     url,
		enabled: enabled,
		log:     log,
	}
}

// Publish публикует событие в durable очередь
// Сообщения помечаются persistent и переживают перезапуск брокера
func (p *Publisher) Publish(ctx context.Context, queue string, event interface{}) error {
	if !p.enabled {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("events: rabbitmq dial failed: %v", err)
		return fmt.Errorf("events: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("events: rabbitmq channel open failed: %v", err)
		return fmt.Errorf("events: channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Объявление очереди идемпотентно
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		p.log.Error("events: queue declare failed for %s: %v", queue, err)
		return fmt.Errorf("events: queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: marshal event failed for %s: %v", queue, err)
		return fmt.Errorf("events: marshal: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("events: publish failed for %s: %v", queue, err)
		return fmt.Errorf("events: publish: %w", err)
	}

	p.log.Info("events: published to %s", queue)
	return nil
}
