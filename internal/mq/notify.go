package mq

import (
	"DocVault/config"
	"context"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeNotify = "documents.notify"

	QueueNotify = "documents.notify.queue"

	RoutingNotify = "documents.event"
)

type Client struct {
	Conn      *amqp.Connection //tcp
	Channel   *amqp.Channel    // AMQP
	publishMu sync.Mutex
}

var publisherMu sync.Mutex
var publisher *Client

func Dial() (*Client, error) {
	conn, err := amqp.Dial(config.AppConfig.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Client{Conn: conn, Channel: ch}, nil
}

func GetPublisher() (*Client, error) {
	publisherMu.Lock()
	defer publisherMu.Unlock()
	if publisher != nil {
		if !publisher.Conn.IsClosed() && !publisher.Channel.IsClosed() {
			return publisher, nil
		}
		publisher.Close()
		publisher = nil
	}
	client, err := Dial()
	if err != nil {
		return nil, err
	}
	if err := client.DeclareTopology(); err != nil {
		client.Close()
		return nil, err
	}
	publisher = client
	return publisher, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.Channel != nil {
		_ = c.Channel.Close()
	}
	if c.Conn != nil {
		_ = c.Conn.Close()
	}
}

func (c *Client) DeclareTopology() error {
	if err := c.Channel.ExchangeDeclare(
		ExchangeNotify,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if _, err := c.Channel.QueueDeclare(
		QueueNotify,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	return c.Channel.QueueBind(
		QueueNotify,
		RoutingNotify,
		ExchangeNotify,
		false,
		nil,
	)
}

func (c *Client) PublishEvent(ctx context.Context, body []byte) error {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	msg := amqp.Publishing{
		ContentType:  "text/plain",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}
	return c.Channel.PublishWithContext(
		ctx,
		ExchangeNotify,
		RoutingNotify,
		false,
		false,
		msg,
	)
}

// Notify publishes a human-readable event string. Best effort: delivery
// failures are logged and never propagated to the mutation that raised them.
func Notify(ctx context.Context, event string) {
	if event == "" {
		return
	}
	client, err := GetPublisher()
	if err != nil {
		log.Println("notify: publisher unavailable:", err)
		return
	}
	if err := client.PublishEvent(ctx, []byte(event)); err != nil {
		log.Println("notify: publish failed:", err)
	}
}
