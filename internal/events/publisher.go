package events

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderEvent is the message published after an order mutation commits.
type OrderEvent struct {
	OrderID int       `json:"orderId"`
	Type    string    `json:"type"`
	At      time.Time `json:"at"`
}

// Publisher emits order events to interested consumers. Publishing is
// best effort; callers log failures and carry on.
type Publisher interface {
	PublishOrderEvent(orderID int, eventType string) error
	Close()
}

// AMQPPublisher publishes order events to a durable direct exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) PublishOrderEvent(orderID int, eventType string) error {
	body, err := json.Marshal(OrderEvent{OrderID: orderID, Type: eventType, At: time.Now().UTC()})
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.exchange,
		"order."+eventType,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderEvent(int, string) error { return nil }
func (NoopPublisher) Close()                              {}
