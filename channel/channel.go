// Package channel connects the command assembler to a transport. A Channel
// writes encoded methods as frames and turns incoming frames into commands;
// a Mux routes a frame stream to the channels it carries.
package channel

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/maxpert/amqp-go-client/command"
	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// DefaultFrameMax is the frame size limit used when none is negotiated
const DefaultFrameMax = 131072

// Option configures a Channel or a Mux
type Option func(*options)

type options struct {
	log             *zap.Logger
	metrics         MetricsCollector
	frameMax        uint32
	trackDeliveries bool
}

// WithLogger sets the logger. Channels log nothing by default.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithFrameMax sets the largest frame the channel writes. Content bodies are
// split into body frames that fit.
func WithFrameMax(frameMax uint32) Option {
	return func(o *options) {
		o.frameMax = frameMax
	}
}

// WithDeliveryTracking makes the channel remember delivery tags from
// basic.deliver and basic.get-ok so acks and nacks for unknown tags fail
// locally instead of closing the channel at the broker. Enable it only for
// consumers that acknowledge manually.
func WithDeliveryTracking(enabled bool) Option {
	return func(o *options) {
		o.trackDeliveries = enabled
	}
}

func buildOptions(opts []Option) options {
	o := options{
		log:      zap.NewNop(),
		metrics:  &NoOpMetricsCollector{},
		frameMax: DefaultFrameMax,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Channel is one AMQP channel over a shared writer. Sends are safe for
// concurrent use; HandleFrame must be called from a single goroutine.
type Channel struct {
	id      uint16
	writer  io.Writer
	writeMu *sync.Mutex

	frameMax   uint32
	log        *zap.Logger
	metrics    MetricsCollector
	deliveries *DeliveryTracker

	assembler *command.Assembler

	stateMu  sync.Mutex
	closeErr error

	// released runs once the close handshake has finished
	released func(*Channel)
}

// New creates a channel writing frames to w. A closed Channel stays closed;
// reopening its id takes a new Channel.
func New(id uint16, w io.Writer, opts ...Option) *Channel {
	return newChannel(id, w, &sync.Mutex{}, buildOptions(opts), nil)
}

func newChannel(id uint16, w io.Writer, writeMu *sync.Mutex, o options, released func(*Channel)) *Channel {
	c := &Channel{
		id:        id,
		writer:    w,
		writeMu:   writeMu,
		frameMax:  o.frameMax,
		log:       o.log.With(zap.Uint16("channel_id", id)),
		metrics:   o.metrics,
		assembler: command.NewAssembler(id),
		released:  released,
	}
	if o.trackDeliveries {
		c.deliveries = NewDeliveryTracker()
	}
	return c
}

// ID returns the channel number
func (c *Channel) ID() uint16 {
	return c.id
}

// Deliveries returns the delivery tracker, or nil when tracking is disabled
func (c *Channel) Deliveries() *DeliveryTracker {
	return c.deliveries
}

// Err returns the error that closed the channel, or nil while it is open
func (c *Channel) Err() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.closeErr
}

func (c *Channel) markClosed(err error) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.closeErr == nil {
		c.closeErr = err
	}
}

// SendMethod writes a single method frame
func (c *Channel) SendMethod(payload []byte) error {
	if err := c.Err(); err != nil {
		return err
	}

	c.writeMu.Lock()
	err := protocol.WriteFrame(c.writer, protocol.NewMethodFrame(c.id, payload))
	c.writeMu.Unlock()

	if err != nil {
		c.log.Error("Failed to send method frame", zap.Error(err))
		return amqperrors.NewTransportError("send method", c.id, err)
	}
	c.metrics.RecordMethodSent(payloadMethodName(payload), 0)
	return nil
}

// SendContent writes a method frame, its content header and the body split
// into frames no larger than the channel frame-max. The frames of one command
// are never interleaved with frames from concurrent sends.
func (c *Channel) SendContent(method, header, body []byte) error {
	if err := c.Err(); err != nil {
		return err
	}

	c.writeMu.Lock()
	err := c.writeContent(method, header, body)
	c.writeMu.Unlock()

	if err != nil {
		c.log.Error("Failed to send content",
			zap.Error(err),
			zap.Int("body_size", len(body)))
		return amqperrors.NewTransportError("send content", c.id, err)
	}
	c.metrics.RecordMethodSent(payloadMethodName(method), len(body))
	return nil
}

func (c *Channel) writeContent(method, header, body []byte) error {
	if err := protocol.WriteFrame(c.writer, protocol.NewMethodFrame(c.id, method)); err != nil {
		return err
	}
	if err := protocol.WriteFrame(c.writer, protocol.NewHeaderFrame(c.id, header)); err != nil {
		return err
	}

	chunk := len(body)
	if c.frameMax > protocol.FrameOverhead {
		chunk = int(c.frameMax - protocol.FrameOverhead)
	}
	for offset := 0; offset < len(body); offset += chunk {
		end := offset + chunk
		if end > len(body) {
			end = len(body)
		}
		if err := protocol.WriteFrame(c.writer, protocol.NewBodyFrame(c.id, body[offset:end])); err != nil {
			return err
		}
	}
	return nil
}

// Send sends an outgoing method on the channel. Acks and nacks are checked
// against the delivery tracker when tracking is enabled.
func (c *Channel) Send(m protocol.OutgoingMethod) error {
	if c.deliveries != nil {
		switch ack := m.(type) {
		case *protocol.BasicAckMethod:
			return c.settle(m, ack.DeliveryTag, ack.Multiple)
		case *protocol.BasicNackMethod:
			return c.settle(m, ack.DeliveryTag, ack.Multiple)
		}
	}
	return m.Send(c)
}

func (c *Channel) settle(m protocol.OutgoingMethod, tag uint64, multiple bool) error {
	if !c.deliveries.Known(tag, multiple) {
		c.log.Warn("Refusing to settle unknown delivery tag",
			zap.String("method", m.Name()),
			zap.Uint64("delivery_tag", tag))
		return amqperrors.NewUnknownDeliveryTag(tag, c.id)
	}
	if err := m.Send(c); err != nil {
		return err
	}
	c.deliveries.Settle(tag, multiple)
	c.metrics.SetUnackedDeliveries(c.id, c.deliveries.Outstanding())
	return nil
}

// Close starts a client initiated close. The channel refuses further sends
// once channel.close is written; the broker answers with channel.close-ok.
func (c *Channel) Close() error {
	err := c.Send(&protocol.ChannelCloseMethod{ReplyCode: amqperrors.ReplySuccess, ReplyText: "Goodbye"})
	if err != nil {
		return err
	}
	c.markClosed(amqperrors.NewChannelError(amqperrors.ReplySuccess, "channel closed by client", c.id))
	return nil
}

// HandleFrame feeds a frame to the command being assembled. It returns the
// command once its last frame arrived and starts a fresh assembler for the
// next one. Failed frames are reported without losing the partial command.
//
// A broker channel.close is answered with channel.close-ok and closes the
// channel; the close command is still returned, together with any error
// from sending the reply.
func (c *Channel) HandleFrame(f *protocol.Frame) (*command.Command, error) {
	c.metrics.RecordFrameReceived(protocol.FrameTypeName(f.Type))

	done, err := c.assembler.HandleFrame(f)
	if err != nil {
		c.metrics.RecordAssemblyError(errorReason(err))
		c.log.Warn("Rejected frame",
			zap.Error(err),
			zap.String("frame_type", protocol.FrameTypeName(f.Type)),
			zap.Stringer("state", c.assembler.State()))
		return nil, err
	}
	if !done {
		return nil, nil
	}

	cmd := c.assembler.Command()
	c.assembler = command.NewAssembler(c.id)
	c.metrics.RecordCommandAssembled(cmd.Method.Name(), len(cmd.Body))

	return cmd, c.observe(cmd)
}

func (c *Channel) observe(cmd *command.Command) error {
	switch m := cmd.Method.(type) {
	case *protocol.BasicDeliverMethod:
		c.track(m.DeliveryTag)
	case *protocol.BasicGetOKMethod:
		c.track(m.DeliveryTag)
	case *protocol.ChannelCloseMethod:
		closeErr := amqperrors.NewChannelClosed(c.id, m.ReplyCode, m.ReplyText, m.CauseClassID, m.CauseMethodID)
		c.log.Warn("Channel closed by broker",
			zap.Uint16("reply_code", m.ReplyCode),
			zap.String("reply_text", m.ReplyText),
			zap.Uint16("class_id", m.CauseClassID),
			zap.Uint16("method_id", m.CauseMethodID))

		// close-ok goes out before the channel is marked closed
		err := (&protocol.ChannelCloseOKMethod{}).Send(c)
		c.markClosed(closeErr)
		c.release()
		return err
	case *protocol.ChannelCloseOKMethod:
		c.markClosed(amqperrors.NewChannelError(amqperrors.ReplySuccess, "channel closed by client", c.id))
		c.log.Debug("Channel close acknowledged")
		c.release()
	}
	return nil
}

// release drops the per-channel state once the close handshake is done
func (c *Channel) release() {
	c.metrics.DeleteChannelMetrics(c.id)
	if c.released != nil {
		c.released(c)
	}
}

func (c *Channel) track(tag uint64) {
	if c.deliveries == nil {
		return
	}
	c.deliveries.Track(tag)
	c.metrics.SetUnackedDeliveries(c.id, c.deliveries.Outstanding())
}

func payloadMethodName(payload []byte) string {
	raw, err := protocol.ParseMethodRecord(payload)
	if err != nil {
		return "invalid"
	}
	return protocol.MethodName(raw.ID)
}

// errorReason maps assembly errors to a small set of metric labels
func errorReason(err error) string {
	switch {
	case amqperrors.IsUnexpectedFrameKind(err):
		return "unexpected_frame"
	case amqperrors.IsUnknownClassOrMethod(err):
		return "unknown_method"
	case amqperrors.IsContentOverflow(err):
		return "content_overflow"
	}
	switch amqperrors.GetErrorCode(err) {
	case amqperrors.SyntaxError:
		return "syntax"
	case amqperrors.FrameError:
		return "frame"
	case amqperrors.UnexpectedFrame:
		return "unexpected_frame"
	}
	return "other"
}
