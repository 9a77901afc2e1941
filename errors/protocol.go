package errors

import (
	"errors"
	"fmt"
)

// Protocol Errors

// ProtocolError represents protocol-specific errors
type ProtocolError struct {
	AMQPError
	FrameType byte   `json:"frame_type,omitempty"`
	ClassID   uint16 `json:"class_id,omitempty"`
	MethodID  uint16 `json:"method_id,omitempty"`
}

func NewProtocolError(code int, message string, frameType byte, classID, methodID uint16) *ProtocolError {
	return &ProtocolError{
		AMQPError: AMQPError{
			Code:    code,
			Message: message,
		},
		FrameType: frameType,
		ClassID:   classID,
		MethodID:  methodID,
	}
}

func NewFrameError(message string, frameType byte) *ProtocolError {
	return NewProtocolError(FrameError, fmt.Sprintf("Frame error: %s", message), frameType, 0, 0)
}

func NewSyntaxError(message string) *ProtocolError {
	return NewProtocolError(SyntaxError, fmt.Sprintf("Syntax error: %s", message), 0, 0, 0)
}

// NewMethodSyntaxError reports malformed arguments of a specific method.
func NewMethodSyntaxError(method string, classID, methodID uint16, cause error) *ProtocolError {
	err := NewProtocolError(SyntaxError, fmt.Sprintf("Syntax error: %v", cause), 1, classID, methodID)
	err.Method = method
	err.Cause = cause
	return err
}

func (e *ProtocolError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// UnexpectedFrameKindError is raised when a frame of the wrong kind arrives
// for the state a command assembler is in.
type UnexpectedFrameKindError struct {
	ProtocolError
	State    string `json:"state"`
	Expected byte   `json:"expected"`
}

func NewUnexpectedFrameKind(state string, expected, actual byte) *UnexpectedFrameKindError {
	message := fmt.Sprintf("Unexpected frame while %s: expected type %d, got %d", state, expected, actual)
	return &UnexpectedFrameKindError{
		ProtocolError: *NewProtocolError(UnexpectedFrame, message, actual, 0, 0),
		State:         state,
		Expected:      expected,
	}
}

func (e *UnexpectedFrameKindError) As(target interface{}) bool {
	return asProtocolError(&e.ProtocolError, target)
}

// UnknownClassOrMethodError is raised when the wire carries a class or method
// id with no registered decoder.
type UnknownClassOrMethodError struct {
	ProtocolError
}

// NewUnknownClassOrMethod reports an unregistered (class, method) pair.
// methodID is zero when the lookup was for a content header class.
func NewUnknownClassOrMethod(classID, methodID uint16) *UnknownClassOrMethodError {
	message := fmt.Sprintf("Unknown class or method: %d.%d", classID, methodID)
	return &UnknownClassOrMethodError{
		ProtocolError: *NewProtocolError(CommandInvalid, message, 0, classID, methodID),
	}
}

func (e *UnknownClassOrMethodError) As(target interface{}) bool {
	return asProtocolError(&e.ProtocolError, target)
}

// ContentOverflowError is raised when a body frame carries more bytes than
// the content header declared as remaining.
type ContentOverflowError struct {
	ProtocolError
	Remaining uint64 `json:"remaining"`
	Received  int    `json:"received"`
}

func NewContentOverflow(remaining uint64, received int) *ContentOverflowError {
	message := fmt.Sprintf("Content body overflow: %d bytes received with %d remaining", received, remaining)
	return &ContentOverflowError{
		ProtocolError: *NewProtocolError(FrameError, message, 3, 0, 0),
		Remaining:     remaining,
		Received:      received,
	}
}

func (e *ContentOverflowError) As(target interface{}) bool {
	return asProtocolError(&e.ProtocolError, target)
}

func asProtocolError(e *ProtocolError, target interface{}) bool {
	switch t := target.(type) {
	case **ProtocolError:
		*t = e
		return true
	case **AMQPError:
		*t = &e.AMQPError
		return true
	}
	return false
}

// IllegalStateError signals a programming error in the embedding code, such
// as driving a completed command assembler. It is raised with panic, never
// returned.
type IllegalStateError struct {
	AMQPError
}

func NewIllegalState(format string, args ...interface{}) *IllegalStateError {
	return &IllegalStateError{
		AMQPError: AMQPError{
			Code:    InternalError,
			Message: fmt.Sprintf("Illegal state: "+format, args...),
		},
	}
}

func (e *IllegalStateError) As(target interface{}) bool {
	if amqpErr, ok := target.(**AMQPError); ok {
		*amqpErr = &e.AMQPError
		return true
	}
	return false
}

// TransportError wraps a failure of the underlying writer. It carries no
// reply code; the cause is whatever the transport returned.
type TransportError struct {
	Operation string `json:"operation"`
	ChannelID uint16 `json:"channel_id"`
	Cause     error  `json:"cause"`
}

func NewTransportError(operation string, channelID uint16, cause error) *TransportError {
	return &TransportError{
		Operation: operation,
		ChannelID: channelID,
		Cause:     cause,
	}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s on channel %d: %v", e.Operation, e.ChannelID, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsProtocolError checks if an error is any kind of ProtocolError
func IsProtocolError(err error) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr)
}

// IsUnexpectedFrameKind checks if an error is an UnexpectedFrameKindError
func IsUnexpectedFrameKind(err error) bool {
	var frameErr *UnexpectedFrameKindError
	return errors.As(err, &frameErr)
}

// IsUnknownClassOrMethod checks if an error is an UnknownClassOrMethodError
func IsUnknownClassOrMethod(err error) bool {
	var unknownErr *UnknownClassOrMethodError
	return errors.As(err, &unknownErr)
}

// IsContentOverflow checks if an error is a ContentOverflowError
func IsContentOverflow(err error) bool {
	var overflowErr *ContentOverflowError
	return errors.As(err, &overflowErr)
}

// IsIllegalState checks if an error (or recovered panic value) is an IllegalStateError
func IsIllegalState(err error) bool {
	var stateErr *IllegalStateError
	return errors.As(err, &stateErr)
}

// IsTransportError checks if an error is a TransportError
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
