package protocol

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Table is an AMQP field table as used for method arguments and message
// headers. It shares its definition with the amqp091-go client so values can
// be passed between the two without conversion.
type Table = amqp.Table

// Decimal is the AMQP decimal field value ('D').
type Decimal = amqp.Decimal

// Delivery modes for BasicProperties.DeliveryMode
const (
	Transient  uint8 = amqp.Transient
	Persistent uint8 = amqp.Persistent
)
