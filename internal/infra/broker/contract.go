package broker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel часть *amqp.Channel, которой пользуется Publisher
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// MessagePublisher публикует JSON-сообщение с заданным routing key
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, messageID string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
