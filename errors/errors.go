package errors

import (
	"errors"
	"fmt"
)

// AMQPError represents a general AMQP error
type AMQPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Method  string `json:"method,omitempty"`
	Cause   error  `json:"cause,omitempty"`
}

func (e *AMQPError) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("AMQP Error %d in %s: %s", e.Code, e.Method, e.Message)
	}
	return fmt.Sprintf("AMQP Error %d: %s", e.Code, e.Message)
}

func (e *AMQPError) Unwrap() error {
	return e.Cause
}

func (e *AMQPError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = e
		return true
	}
	return false
}

// AMQP reply codes (AMQP 0.9.1 specification, section 1.9)
const (
	ReplySuccess = 200

	// Soft errors close the channel
	ContentTooLarge    = 311
	NoRoute            = 312
	NoConsumers        = 313
	AccessRefused      = 403
	NotFound           = 404
	ResourceLocked     = 405
	PreconditionFailed = 406

	// Hard errors close the connection
	ConnectionForced = 320
	InvalidPath      = 402
	FrameError       = 501
	SyntaxError      = 502
	CommandInvalid   = 503
	ChannelErrorCode = 504
	UnexpectedFrame  = 505
	ResourceError    = 506
	NotAllowed       = 530
	NotImplemented   = 540
	InternalError    = 541
)

// IsSoftErrorCode reports whether a reply code only affects the channel it
// was raised on rather than the whole connection.
func IsSoftErrorCode(code int) bool {
	switch code {
	case ContentTooLarge, NoRoute, NoConsumers, AccessRefused, NotFound, ResourceLocked, PreconditionFailed:
		return true
	}
	return false
}

// Channel Errors

// ChannelError represents channel-specific errors, including a channel.close
// initiated by the broker.
type ChannelError struct {
	AMQPError
	ChannelID uint16 `json:"channel_id"`
	ClassID   uint16 `json:"class_id,omitempty"`
	MethodID  uint16 `json:"method_id,omitempty"`
}

func NewChannelError(code int, message string, channelID uint16) *ChannelError {
	return &ChannelError{
		AMQPError: AMQPError{
			Code:    code,
			Message: message,
		},
		ChannelID: channelID,
	}
}

// NewChannelClosed builds the error reported once the broker closed a channel.
// classID and methodID identify the method that caused the close, if any.
func NewChannelClosed(channelID uint16, replyCode uint16, replyText string, classID, methodID uint16) *ChannelError {
	err := NewChannelError(int(replyCode), fmt.Sprintf("Channel %d closed by broker: %s", channelID, replyText), channelID)
	err.ClassID = classID
	err.MethodID = methodID
	return err
}

func (e *ChannelError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// Message Errors

// MessageError represents delivery-specific errors
type MessageError struct {
	AMQPError
	DeliveryTag uint64 `json:"delivery_tag,omitempty"`
	ChannelID   uint16 `json:"channel_id"`
}

func NewMessageError(code int, message string, deliveryTag uint64, channelID uint16) *MessageError {
	return &MessageError{
		AMQPError: AMQPError{
			Code:    code,
			Message: message,
		},
		DeliveryTag: deliveryTag,
		ChannelID:   channelID,
	}
}

// NewUnknownDeliveryTag reports an ack/nack for a tag that was never delivered
// on the channel or has already been settled. Brokers close the channel with
// PRECONDITION_FAILED for this, so it is raised locally before sending.
func NewUnknownDeliveryTag(deliveryTag uint64, channelID uint16) *MessageError {
	message := fmt.Sprintf("Unknown delivery tag %d", deliveryTag)
	return NewMessageError(PreconditionFailed, message, deliveryTag, channelID)
}

func (e *MessageError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// Configuration Errors

// ConfigError represents configuration-specific errors
type ConfigError struct {
	AMQPError
	Section string `json:"section"`
	Key     string `json:"key,omitempty"`
}

func NewConfigError(message, section, key string, cause error) *ConfigError {
	return &ConfigError{
		AMQPError: AMQPError{
			Code:    InternalError,
			Message: message,
			Cause:   cause,
		},
		Section: section,
		Key:     key,
	}
}

func NewConfigValidationError(section, key, reason string) *ConfigError {
	message := fmt.Sprintf("Configuration validation failed for %s.%s: %s", section, key, reason)
	return NewConfigError(message, section, key, nil)
}

func (e *ConfigError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// NewNotImplemented reports a method this client knows about but refuses to send.
func NewNotImplemented(method string) *AMQPError {
	return &AMQPError{
		Code:    NotImplemented,
		Message: "Method not implemented",
		Method:  method,
	}
}

// Helper functions for common error checking

// IsChannelError checks if an error is a ChannelError
func IsChannelError(err error) bool {
	var chanErr *ChannelError
	return errors.As(err, &chanErr)
}

// IsNotFound checks if an error indicates a resource was not found
func IsNotFound(err error) bool {
	return GetErrorCode(err) == NotFound
}

// IsPreconditionFailed checks if an error indicates a precondition failed
func IsPreconditionFailed(err error) bool {
	return GetErrorCode(err) == PreconditionFailed
}

// IsAccessRefused checks if an error indicates access was refused
func IsAccessRefused(err error) bool {
	return GetErrorCode(err) == AccessRefused
}

// IsNotImplemented checks if an error reports an unimplemented method
func IsNotImplemented(err error) bool {
	return GetErrorCode(err) == NotImplemented
}

// GetErrorCode returns the AMQP error code if the error is an AMQPError
func GetErrorCode(err error) int {
	var amqpErr *AMQPError
	if errors.As(err, &amqpErr) {
		return amqpErr.Code
	}
	return 0
}
