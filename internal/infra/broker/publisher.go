package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// Publisher публикует сообщения в topic exchange RabbitMQ
// Канал AMQP не потокобезопасен, публикации сериализуются мьютексом
type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp.Connection
	channel  amqpChannel
	dial     func(url, exchange string) (*amqp.Connection, amqpChannel, error)
	logger   Logger
	closed   bool
}

// NewPublisher подключается к RabbitMQ и объявляет durable exchange
func NewPublisher(url, exchange string, logger Logger) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: exchange,
		dial:     dialExchange,
		logger:   logger,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	logger.Info("Broker: connected, exchange=%s", exchange)
	return p, nil
}

func dialExchange(url, exchange string) (*amqp.Connection, amqpChannel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return conn, ch, nil
}

func (p *Publisher) connect() error {
	conn, ch, err := p.dial(p.url, p.exchange)
	if err != nil {
		return err
	}
	p.conn = conn
	p.channel = ch
	return nil
}

// ensureConnection переоткрывает канал и соединение, если хотя бы одно из них закрыто
// Канал закрывается брокером после channel-level exception при живом соединении
func (p *Publisher) ensureConnection() error {
	if p.channel != nil && !p.channel.IsClosed() && (p.conn == nil || !p.conn.IsClosed()) {
		return nil
	}
	p.logger.Warn("Broker: channel or connection lost, reconnecting")
	p.dropConnection()
	return p.connect()
}

// dropConnection закрывает устаревшие канал и соединение перед повторным подключением
func (p *Publisher) dropConnection() {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			p.logger.Warn("Broker: failed to close stale channel: %v", err)
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			p.logger.Warn("Broker: failed to close stale connection: %v", err)
		}
		p.conn = nil
	}
}

// Publish сериализует payload в JSON и отправляет его с persistent delivery
func (p *Publisher) Publish(ctx context.Context, routingKey string, messageID string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := p.ensureConnection(); err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: routing key %s: %v", ErrPublish, routingKey, err)
	}
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("Broker: failed to close channel: %v", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("broker: close connection: %w", err)
		}
	}
	return nil
}
