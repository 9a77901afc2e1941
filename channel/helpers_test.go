package channel

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/maxpert/amqp-go-client/protocol"
	"github.com/stretchr/testify/require"
)

var errBrokenPipe = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errBrokenPipe
}

func methodFrame(t testing.TB, channel uint16, m protocol.Method) *protocol.Frame {
	t.Helper()
	payload, err := protocol.EncodeMethod(m)
	require.NoError(t, err)
	return protocol.NewMethodFrame(channel, payload)
}

func contentFrames(t testing.TB, channel uint16, m protocol.Method, body string) []*protocol.Frame {
	t.Helper()
	header, err := protocol.EncodeHeader(&protocol.BasicHeader{Size: uint64(len(body))})
	require.NoError(t, err)
	frames := []*protocol.Frame{
		methodFrame(t, channel, m),
		protocol.NewHeaderFrame(channel, header),
	}
	if body != "" {
		frames = append(frames, protocol.NewBodyFrame(channel, []byte(body)))
	}
	return frames
}

func readFrames(t testing.TB, data []byte) []*protocol.Frame {
	t.Helper()
	reader := protocol.NewReader(bytes.NewReader(data), 0)
	var frames []*protocol.Frame
	for {
		f, err := reader.ReadFrame()
		if err != nil {
			return frames
		}
		frames = append(frames, f)
	}
}

func decodeSent(t testing.TB, f *protocol.Frame, m protocol.Method) {
	t.Helper()
	require.Equal(t, byte(protocol.FrameMethod), f.Type)
	raw, err := protocol.ParseMethodRecord(f.Payload)
	require.NoError(t, err)
	require.NoError(t, protocol.DecodeMethodInto(raw, m))
}

// recordingMetrics counts what a Channel reports
type recordingMetrics struct {
	mu        sync.Mutex
	frames    map[string]int
	commands  map[string]int
	sent      map[string]int
	errors    map[string]int
	unacked   map[uint16]uint64
	deleted   []uint16
	bodyBytes int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		frames:   make(map[string]int),
		commands: make(map[string]int),
		sent:     make(map[string]int),
		errors:   make(map[string]int),
		unacked:  make(map[uint16]uint64),
	}
}

func (r *recordingMetrics) RecordFrameReceived(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames[kind]++
}

func (r *recordingMetrics) RecordCommandAssembled(method string, bodySize int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[method]++
	r.bodyBytes += bodySize
}

func (r *recordingMetrics) RecordMethodSent(method string, bodySize int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[method]++
}

func (r *recordingMetrics) RecordAssemblyError(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[reason]++
}

func (r *recordingMetrics) SetUnackedDeliveries(channelID uint16, count uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unacked[channelID] = count
}

func (r *recordingMetrics) DeleteChannelMetrics(channelID uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.unacked, channelID)
	r.deleted = append(r.deleted, channelID)
}
