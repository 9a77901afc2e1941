package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAMQPError(t *testing.T) {
	err := &AMQPError{
		Code:    NotFound,
		Message: "Resource not found",
		Method:  "queue.declare",
	}

	assert.Equal(t, "AMQP Error 404 in queue.declare: Resource not found", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAMQPErrorWithoutMethod(t *testing.T) {
	err := &AMQPError{
		Code:    InternalError,
		Message: "Internal error",
	}

	assert.Equal(t, "AMQP Error 541: Internal error", err.Error())
}

func TestAMQPErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AMQPError{
		Code:    InternalError,
		Message: "Wrapper error",
		Cause:   cause,
	}

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestSoftErrorCodes(t *testing.T) {
	tests := []struct {
		code int
		soft bool
	}{
		{ContentTooLarge, true},
		{NoRoute, true},
		{NoConsumers, true},
		{AccessRefused, true},
		{NotFound, true},
		{ResourceLocked, true},
		{PreconditionFailed, true},
		{ConnectionForced, false},
		{FrameError, false},
		{CommandInvalid, false},
		{NotImplemented, false},
		{InternalError, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.soft, IsSoftErrorCode(tt.code))
		})
	}
}

func TestChannelError(t *testing.T) {
	err := NewChannelError(PreconditionFailed, "Channel state invalid", 5)

	assert.Equal(t, PreconditionFailed, err.Code)
	assert.Equal(t, "Channel state invalid", err.Message)
	assert.Equal(t, uint16(5), err.ChannelID)
	assert.True(t, IsChannelError(err))
	assert.True(t, IsPreconditionFailed(err))
}

func TestChannelClosed(t *testing.T) {
	err := NewChannelClosed(3, NotFound, "NOT_FOUND - no queue 'missing'", 50, 10)

	assert.Equal(t, NotFound, err.Code)
	assert.Equal(t, uint16(3), err.ChannelID)
	assert.Equal(t, uint16(50), err.ClassID)
	assert.Equal(t, uint16(10), err.MethodID)
	assert.Contains(t, err.Error(), "no queue 'missing'")
	assert.True(t, IsNotFound(err))
}

func TestUnknownDeliveryTag(t *testing.T) {
	err := NewUnknownDeliveryTag(42, 1)

	assert.Equal(t, PreconditionFailed, err.Code)
	assert.Equal(t, uint64(42), err.DeliveryTag)
	assert.Equal(t, uint16(1), err.ChannelID)
	assert.Contains(t, err.Message, "42")
}

func TestConfigValidationError(t *testing.T) {
	err := NewConfigValidationError("channel", "frame_max", "must be at least 4096")

	assert.Equal(t, "channel", err.Section)
	assert.Equal(t, "frame_max", err.Key)
	assert.Contains(t, err.Error(), "channel.frame_max")
}

func TestNotImplemented(t *testing.T) {
	err := NewNotImplemented("basic.reject")

	assert.Equal(t, NotImplemented, err.Code)
	assert.Equal(t, "basic.reject", err.Method)
	assert.True(t, IsNotImplemented(err))
	assert.False(t, IsNotImplemented(NewUnknownClassOrMethod(60, 99)))
}

func TestUnexpectedFrameKind(t *testing.T) {
	err := NewUnexpectedFrameKind("ExpectingContentBody", 3, 1)

	assert.Equal(t, UnexpectedFrame, err.Code)
	assert.Equal(t, "ExpectingContentBody", err.State)
	assert.Equal(t, byte(3), err.Expected)
	assert.Equal(t, byte(1), err.FrameType)
	assert.True(t, IsUnexpectedFrameKind(err))
	assert.True(t, IsProtocolError(err))
	assert.False(t, IsContentOverflow(err))
}

func TestUnknownClassOrMethod(t *testing.T) {
	err := NewUnknownClassOrMethod(60, 99)

	assert.Equal(t, CommandInvalid, err.Code)
	assert.Equal(t, uint16(60), err.ClassID)
	assert.Equal(t, uint16(99), err.MethodID)
	assert.True(t, IsUnknownClassOrMethod(err))
	assert.Contains(t, err.Error(), "60.99")
}

func TestContentOverflow(t *testing.T) {
	err := NewContentOverflow(2, 5)

	assert.Equal(t, FrameError, err.Code)
	assert.Equal(t, uint64(2), err.Remaining)
	assert.Equal(t, 5, err.Received)
	assert.True(t, IsContentOverflow(err))
	assert.Equal(t, FrameError, GetErrorCode(err))
}

func TestIllegalState(t *testing.T) {
	err := NewIllegalState("assembler already complete on channel %d", 7)

	assert.Equal(t, InternalError, err.Code)
	assert.Contains(t, err.Error(), "channel 7")
	assert.True(t, IsIllegalState(err))
}

func TestTransportError(t *testing.T) {
	err := NewTransportError("send method", 2, io.ErrClosedPipe)

	assert.True(t, IsTransportError(err))
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
	assert.Equal(t, 0, GetErrorCode(err))
	assert.Equal(t, "transport error during send method on channel 2: io: read/write on closed pipe", err.Error())
}

func TestMethodSyntaxError(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := NewMethodSyntaxError("queue.declare-ok", 50, 11, cause)

	assert.Equal(t, SyntaxError, err.Code)
	assert.Equal(t, "queue.declare-ok", err.Method)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestErrorsAs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"channel", NewChannelError(NotFound, "gone", 1), NotFound},
		{"message", NewUnknownDeliveryTag(1, 1), PreconditionFailed},
		{"config", NewConfigValidationError("log", "level", "bad"), InternalError},
		{"frame", NewFrameError("bad end", 1), FrameError},
		{"syntax", NewSyntaxError("truncated"), SyntaxError},
		{"unexpected", NewUnexpectedFrameKind("ExpectingMethod", 1, 3), UnexpectedFrame},
		{"unknown", NewUnknownClassOrMethod(1, 2), CommandInvalid},
		{"overflow", NewContentOverflow(0, 1), FrameError},
		{"illegal", NewIllegalState("x"), InternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)

			var amqpErr *AMQPError
			require.True(t, errors.As(wrapped, &amqpErr))
			assert.Equal(t, tt.code, amqpErr.Code)
			assert.Equal(t, tt.code, GetErrorCode(wrapped))
		})
	}
}

func TestProtocolErrorAs(t *testing.T) {
	var protoErr *ProtocolError
	err := fmt.Errorf("decode: %w", NewUnknownClassOrMethod(90, 10))

	require.True(t, errors.As(err, &protoErr))
	assert.Equal(t, uint16(90), protoErr.ClassID)
	assert.Equal(t, uint16(10), protoErr.MethodID)
}

func TestGetErrorCodeNonAMQP(t *testing.T) {
	assert.Equal(t, 0, GetErrorCode(errors.New("plain")))
	assert.Equal(t, 0, GetErrorCode(nil))
	assert.False(t, IsNotFound(errors.New("plain")))
}
