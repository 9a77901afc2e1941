package channel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

func TestSendMethodWritesOneFrame(t *testing.T) {
	var buf bytes.Buffer
	ch := New(3, &buf)

	require.NoError(t, ch.Send(&protocol.QueueDeclareMethod{Queue: "jobs", Durable: true}))

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 1)
	assert.Equal(t, uint16(3), frames[0].Channel)

	sent := &protocol.QueueDeclareMethod{}
	decodeSent(t, frames[0], sent)
	assert.Equal(t, "jobs", sent.Queue)
	assert.True(t, sent.Durable)
}

func TestPublishSplitsBodyAtFrameMax(t *testing.T) {
	var buf bytes.Buffer
	ch := New(1, &buf, WithFrameMax(4096))

	body := bytes.Repeat([]byte("x"), 10000)
	require.NoError(t, ch.Send(&protocol.BasicPublishMethod{
		Exchange:   "logs",
		RoutingKey: "info",
		Body:       body,
	}))

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 5)
	assert.Equal(t, byte(protocol.FrameMethod), frames[0].Type)
	assert.Equal(t, byte(protocol.FrameHeader), frames[1].Type)

	var reassembled []byte
	for _, f := range frames[2:] {
		assert.Equal(t, byte(protocol.FrameBody), f.Type)
		assert.LessOrEqual(t, len(f.Payload)+protocol.FrameOverhead, 4096)
		reassembled = append(reassembled, f.Payload...)
	}
	assert.Equal(t, body, reassembled)
	assert.Len(t, frames[2].Payload, 4088)
	assert.Len(t, frames[4].Payload, 10000-2*4088)

	raw, err := protocol.ParseHeaderRecord(frames[1].Payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(10000), raw.BodySize)
}

func TestPublishEmptyBodyWritesNoBodyFrames(t *testing.T) {
	var buf bytes.Buffer
	ch := New(1, &buf)

	require.NoError(t, ch.Send(&protocol.BasicPublishMethod{RoutingKey: "q"}))
	assert.Len(t, readFrames(t, buf.Bytes()), 2)
}

func TestTransportFailure(t *testing.T) {
	ch := New(4, failingWriter{})

	tests := []struct {
		name string
		m    protocol.OutgoingMethod
	}{
		{"method", &protocol.BasicQosMethod{PrefetchCount: 10}},
		{"content", &protocol.BasicPublishMethod{Body: []byte("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ch.Send(tt.m)
			require.Error(t, err)
			assert.True(t, amqperrors.IsTransportError(err))
			assert.True(t, errors.Is(err, errBrokenPipe))

			var transportErr *amqperrors.TransportError
			require.True(t, errors.As(err, &transportErr))
			assert.Equal(t, uint16(4), transportErr.ChannelID)
		})
	}
}

func TestRejectWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	ch := New(1, &buf)

	err := ch.Send(&protocol.BasicRejectMethod{DeliveryTag: 1})
	require.Error(t, err)
	assert.True(t, amqperrors.IsNotImplemented(err))
	assert.Equal(t, 0, buf.Len())
}

func TestHandleFrameReturnsCommandsInTurn(t *testing.T) {
	var buf bytes.Buffer
	ch := New(1, &buf)

	var commands []string
	frames := append(
		contentFrames(t, 1, &protocol.BasicGetOKMethod{DeliveryTag: 1}, "hello"),
		methodFrame(t, 1, &protocol.BasicGetEmptyMethod{}),
	)
	for _, f := range frames {
		cmd, err := ch.HandleFrame(f)
		require.NoError(t, err)
		if cmd != nil {
			commands = append(commands, cmd.Method.Name())
			if cmd.Method.HasContent() {
				assert.Equal(t, []byte("hello"), cmd.Body)
			}
		}
	}
	assert.Equal(t, []string{"basic.get-ok", "basic.get-empty"}, commands)
}

func TestHandleFrameKeepsPartialCommandOnError(t *testing.T) {
	ch := New(1, &bytes.Buffer{})
	frames := contentFrames(t, 1, &protocol.BasicDeliverMethod{ConsumerTag: "c", DeliveryTag: 1}, "hi")

	_, err := ch.HandleFrame(frames[0])
	require.NoError(t, err)

	_, err = ch.HandleFrame(frames[2])
	require.Error(t, err)
	assert.True(t, amqperrors.IsUnexpectedFrameKind(err))

	_, err = ch.HandleFrame(frames[1])
	require.NoError(t, err)
	cmd, err := ch.HandleFrame(frames[2])
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, []byte("hi"), cmd.Body)
}

func TestDeliveryTracking(t *testing.T) {
	var buf bytes.Buffer
	metrics := newRecordingMetrics()
	ch := New(1, &buf, WithDeliveryTracking(true), WithMetrics(metrics))

	for tag := uint64(1); tag <= 3; tag++ {
		for _, f := range contentFrames(t, 1, &protocol.BasicDeliverMethod{ConsumerTag: "c", DeliveryTag: tag}, "m") {
			_, err := ch.HandleFrame(f)
			require.NoError(t, err)
		}
	}
	require.NotNil(t, ch.Deliveries())
	assert.Equal(t, uint64(3), ch.Deliveries().Outstanding())
	assert.Equal(t, uint64(3), metrics.unacked[1])

	err := ch.Send(&protocol.BasicAckMethod{DeliveryTag: 9})
	require.Error(t, err)
	assert.True(t, amqperrors.IsPreconditionFailed(err))
	assert.Equal(t, 0, buf.Len())

	require.NoError(t, ch.Send(&protocol.BasicAckMethod{DeliveryTag: 2, Multiple: true}))
	assert.Equal(t, uint64(1), ch.Deliveries().Outstanding())

	err = ch.Send(&protocol.BasicNackMethod{DeliveryTag: 2})
	assert.True(t, amqperrors.IsPreconditionFailed(err))

	require.NoError(t, ch.Send(&protocol.BasicNackMethod{DeliveryTag: 3, Requeue: true}))
	assert.Equal(t, uint64(0), ch.Deliveries().Outstanding())
	assert.Equal(t, uint64(0), metrics.unacked[1])

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 2)
	ack := &protocol.BasicAckMethod{}
	decodeSent(t, frames[0], ack)
	assert.Equal(t, uint64(2), ack.DeliveryTag)
	assert.True(t, ack.Multiple)
}

func TestAckWithoutTrackingIsPassedThrough(t *testing.T) {
	var buf bytes.Buffer
	ch := New(1, &buf)

	assert.Nil(t, ch.Deliveries())
	require.NoError(t, ch.Send(&protocol.BasicAckMethod{DeliveryTag: 42}))
	assert.Len(t, readFrames(t, buf.Bytes()), 1)
}

func TestGetOKIsTracked(t *testing.T) {
	ch := New(1, &bytes.Buffer{}, WithDeliveryTracking(true))

	for _, f := range contentFrames(t, 1, &protocol.BasicGetOKMethod{DeliveryTag: 7}, "") {
		_, err := ch.HandleFrame(f)
		require.NoError(t, err)
	}
	assert.True(t, ch.Deliveries().Known(7, false))
}

func TestBrokerCloseIsAcknowledged(t *testing.T) {
	var buf bytes.Buffer
	core, logs := observer.New(zapcore.WarnLevel)
	ch := New(5, &buf, WithLogger(zap.New(core)))

	cmd, err := ch.HandleFrame(methodFrame(t, 5, &protocol.ChannelCloseMethod{
		ReplyCode:     amqperrors.NotFound,
		ReplyText:     "NOT_FOUND - no queue 'missing'",
		CauseClassID:  protocol.ClassQueue,
		CauseMethodID: protocol.QueueDeclare,
	}))
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "channel.close", cmd.Method.Name())

	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 1)
	decodeSent(t, frames[0], &protocol.ChannelCloseOKMethod{})

	closeErr := ch.Err()
	require.Error(t, closeErr)
	assert.True(t, amqperrors.IsChannelError(closeErr))
	assert.True(t, amqperrors.IsNotFound(closeErr))

	err = ch.Send(&protocol.BasicQosMethod{PrefetchCount: 1})
	assert.Same(t, closeErr, err)
	assert.Len(t, readFrames(t, buf.Bytes()), 1)

	require.Equal(t, 1, logs.FilterMessage("Channel closed by broker").Len())
	entry := logs.FilterMessage("Channel closed by broker").All()[0]
	assert.EqualValues(t, 5, entry.ContextMap()["channel_id"])
}

func TestClientClose(t *testing.T) {
	var buf bytes.Buffer
	metrics := newRecordingMetrics()
	ch := New(2, &buf, WithMetrics(metrics))

	require.NoError(t, ch.Close())
	assert.Empty(t, metrics.deleted)
	frames := readFrames(t, buf.Bytes())
	require.Len(t, frames, 1)

	sent := &protocol.ChannelCloseMethod{}
	decodeSent(t, frames[0], sent)
	assert.Equal(t, uint16(amqperrors.ReplySuccess), sent.ReplyCode)

	err := ch.Send(&protocol.BasicGetMethod{Queue: "q"})
	assert.True(t, amqperrors.IsChannelError(err))

	cmd, err := ch.HandleFrame(methodFrame(t, 2, &protocol.ChannelCloseOKMethod{}))
	require.NoError(t, err)
	assert.Equal(t, "channel.close-ok", cmd.Method.Name())
	assert.Equal(t, []uint16{2}, metrics.deleted)
}

func TestChannelMetrics(t *testing.T) {
	metrics := newRecordingMetrics()
	ch := New(1, &bytes.Buffer{}, WithMetrics(metrics))

	for _, f := range contentFrames(t, 1, &protocol.BasicDeliverMethod{DeliveryTag: 1}, "abc") {
		_, err := ch.HandleFrame(f)
		require.NoError(t, err)
	}
	_, err := ch.HandleFrame(protocol.NewBodyFrame(1, []byte("x")))
	require.Error(t, err)
	require.NoError(t, ch.Send(&protocol.BasicPublishMethod{Body: []byte("data")}))

	assert.Equal(t, 1, metrics.frames["method"])
	assert.Equal(t, 1, metrics.frames["header"])
	assert.Equal(t, 2, metrics.frames["body"])
	assert.Equal(t, 1, metrics.commands["basic.deliver"])
	assert.Equal(t, 3, metrics.bodyBytes)
	assert.Equal(t, 1, metrics.errors["unexpected_frame"])
	assert.Equal(t, 1, metrics.sent["basic.publish"])
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{amqperrors.NewUnexpectedFrameKind("ExpectingMethod", 1, 3), "unexpected_frame"},
		{amqperrors.NewUnknownClassOrMethod(60, 99), "unknown_method"},
		{amqperrors.NewContentOverflow(1, 2), "content_overflow"},
		{amqperrors.NewSyntaxError("truncated"), "syntax"},
		{amqperrors.NewFrameError("short", 1), "frame"},
		{amqperrors.NewProtocolError(amqperrors.UnexpectedFrame, "wrong channel", 1, 0, 0), "unexpected_frame"},
		{errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.reason, errorReason(tt.err), tt.err.Error())
	}
}
