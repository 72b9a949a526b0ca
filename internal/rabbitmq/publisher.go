// Package rabbitmq публикует события мутаций леджера в очередь
// fee.ledger.events. Публикация необязательна: при пустом URL брокера
// сервис работает без неё.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// LedgerEventsQueue — имя очереди для событий мутаций.
const LedgerEventsQueue = "fee.ledger.events"

// LedgerEvent описывает одну мутацию леджера.
type LedgerEvent struct {
	UserUID   string    `json:"user_uid"`
	Action    string    `json:"action"` // create_group, add_entry, set_payment_status, remove_entry
	GroupName string    `json:"group_name"`
	EntryName string    `json:"entry_name,omitempty"`
	Month     int       `json:"month,omitempty"`
	Paid      *bool     `json:"paid,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher держит соединение и канал с объявленной очередью.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher подключается к брокеру и объявляет очередь событий.
func NewPublisher(url string) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err = ch.QueueDeclare(LedgerEventsQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish отправляет событие в очередь.
func (p *Publisher) Publish(event LedgerEvent) error {
	const op = "rabbitmq.Publish"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		"",
		LedgerEventsQueue,
		false,
		false,
		amqp.Publishing{
			MessageId:    uuid.New().String(),
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
