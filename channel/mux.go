package channel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/maxpert/amqp-go-client/command"
	"github.com/maxpert/amqp-go-client/protocol"
)

// Handler receives every command assembled by a Mux. Returning an error stops
// Mux.Run.
type Handler func(cmd *command.Command) error

// Mux demultiplexes one frame stream into per-channel command assembly.
// Channels are created on first use and share the Mux writer. A channel is
// dropped once its close handshake finishes, so its id can be opened again.
type Mux struct {
	writer  io.Writer
	writeMu sync.Mutex
	handler Handler
	opts    options
	log     *zap.Logger

	mu       sync.Mutex
	channels map[uint16]*Channel
}

// NewMux creates a Mux writing replies to w and passing commands to handler.
// The options apply to every channel the Mux creates.
func NewMux(w io.Writer, handler Handler, opts ...Option) *Mux {
	o := buildOptions(opts)
	return &Mux{
		writer:   w,
		handler:  handler,
		opts:     o,
		log:      o.log,
		channels: make(map[uint16]*Channel),
	}
}

// Channel returns the channel with the given id, creating it if needed
func (m *Mux) Channel(id uint16) *Channel {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.channels[id]
	if !ok {
		ch = newChannel(id, m.writer, &m.writeMu, m.opts, m.remove)
		m.channels[id] = ch
		m.log.Debug("Channel created", zap.Uint16("channel_id", id))
	}
	return ch
}

func (m *Mux) remove(ch *Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.channels[ch.id] == ch {
		delete(m.channels, ch.id)
		m.log.Debug("Channel released", zap.Uint16("channel_id", ch.id))
	}
}

// Channels returns the number of live channels
func (m *Mux) Channels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels)
}

// Run reads frames from src until it is exhausted, ctx is cancelled, a frame
// fails to assemble or the handler returns an error. Heartbeats and
// connection level frames on channel 0 are skipped. Reaching the end of src
// is not an error.
//
// Cancellation is checked between frames; a blocked ReadFrame is not
// interrupted.
func (m *Mux) Run(ctx context.Context, src protocol.FrameReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := src.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading frame: %w", err)
		}

		if frame.Type == protocol.FrameHeartbeat || frame.Channel == 0 {
			m.log.Debug("Skipping connection frame",
				zap.String("frame_type", protocol.FrameTypeName(frame.Type)),
				zap.Uint16("channel_id", frame.Channel))
			continue
		}

		cmd, err := m.Channel(frame.Channel).HandleFrame(frame)
		if err != nil {
			return fmt.Errorf("channel %d: %w", frame.Channel, err)
		}
		if cmd == nil || m.handler == nil {
			continue
		}
		if err := m.handler(cmd); err != nil {
			return err
		}
	}
}
