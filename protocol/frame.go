package protocol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Frame types as defined in the AMQP specification
const (
	FrameMethod    = 1
	FrameHeader    = 2
	FrameBody      = 3
	FrameHeartbeat = 8
	FrameEnd       = 0xCE // Frame end marker byte
)

// FrameOverhead is the number of bytes a frame adds around its payload:
// type + channel + size + end-byte
const FrameOverhead = 1 + 2 + 4 + 1

// Frame represents an AMQP frame
type Frame struct {
	Type    byte
	Channel uint16
	Size    uint32
	Payload []byte
}

// NewMethodFrame wraps an encoded method payload for a channel
func NewMethodFrame(channel uint16, payload []byte) *Frame {
	return &Frame{Type: FrameMethod, Channel: channel, Size: uint32(len(payload)), Payload: payload}
}

// NewHeaderFrame wraps an encoded content header payload for a channel
func NewHeaderFrame(channel uint16, payload []byte) *Frame {
	return &Frame{Type: FrameHeader, Channel: channel, Size: uint32(len(payload)), Payload: payload}
}

// NewBodyFrame wraps a content body fragment for a channel
func NewBodyFrame(channel uint16, payload []byte) *Frame {
	return &Frame{Type: FrameBody, Channel: channel, Size: uint32(len(payload)), Payload: payload}
}

// FrameTypeName returns a short label for a frame type, used in logs and metrics
func FrameTypeName(frameType byte) string {
	switch frameType {
	case FrameMethod:
		return "method"
	case FrameHeader:
		return "header"
	case FrameBody:
		return "body"
	case FrameHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// MarshalBinary encodes a frame into binary format following AMQP 0.9.1 spec
// Format: (1-byte type) + (2-byte channel) + (4-byte size) + (size-byte payload) + (1-byte end: 0xCE)
func (f *Frame) MarshalBinary() ([]byte, error) {
	data := make([]byte, FrameOverhead+len(f.Payload))

	data[0] = f.Type
	binary.BigEndian.PutUint16(data[1:3], f.Channel)
	binary.BigEndian.PutUint32(data[3:7], uint32(len(f.Payload)))
	copy(data[7:], f.Payload)
	data[7+len(f.Payload)] = FrameEnd

	return data, nil
}

// UnmarshalBinary decodes a frame from binary format
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < FrameOverhead {
		return amqperrors.NewFrameError("frame too short", 0)
	}

	frameType := data[0]
	payloadSize := binary.BigEndian.Uint32(data[3:7])

	if uint64(len(data)) != uint64(payloadSize)+FrameOverhead {
		return amqperrors.NewFrameError(fmt.Sprintf("frame size mismatch: expected %d bytes but got %d", uint64(payloadSize)+FrameOverhead, len(data)), frameType)
	}

	if data[7+payloadSize] != FrameEnd {
		return amqperrors.NewFrameError("invalid frame end-byte", frameType)
	}

	f.Type = frameType
	f.Channel = binary.BigEndian.Uint16(data[1:3])
	f.Size = payloadSize
	f.Payload = make([]byte, payloadSize)
	copy(f.Payload, data[7:7+payloadSize])

	return nil
}

// ReadFrame reads a frame from an io.Reader
func ReadFrame(reader io.Reader) (*Frame, error) {
	return ReadFrameMax(reader, 0)
}

// ReadFrameMax reads a frame from an io.Reader, rejecting frames whose total
// size exceeds frameMax before allocating the payload. A frameMax of zero
// means no limit.
func ReadFrameMax(reader io.Reader, frameMax uint32) (*Frame, error) {
	var header [7]byte
	if _, err := io.ReadFull(reader, header[:]); err != nil {
		return nil, err
	}

	frameType := header[0]
	channel := binary.BigEndian.Uint16(header[1:3])
	size := binary.BigEndian.Uint32(header[3:7])

	if frameMax > 0 && uint64(size)+FrameOverhead > uint64(frameMax) {
		return nil, amqperrors.NewFrameError(fmt.Sprintf("frame of %d bytes exceeds frame-max %d", uint64(size)+FrameOverhead, frameMax), frameType)
	}

	// Read the payload + end-byte
	payload := make([]byte, int(size)+1)
	if _, err := io.ReadFull(reader, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if payload[size] != FrameEnd {
		return nil, amqperrors.NewFrameError("invalid frame end-byte", frameType)
	}

	return &Frame{
		Type:    frameType,
		Channel: channel,
		Size:    size,
		Payload: payload[:size],
	}, nil
}

// WriteFrame writes a frame to an io.Writer using a pooled buffer so the
// whole frame reaches the writer in a single Write call.
func WriteFrame(writer io.Writer, frame *Frame) error {
	buf := getBuffer()
	defer putBuffer(buf)

	payloadLen := len(frame.Payload)
	buf.Grow(FrameOverhead + payloadLen)

	buf.WriteByte(frame.Type)

	var header [6]byte
	binary.BigEndian.PutUint16(header[0:2], frame.Channel)
	binary.BigEndian.PutUint32(header[2:6], uint32(payloadLen))
	buf.Write(header[:])

	buf.Write(frame.Payload)
	buf.WriteByte(FrameEnd)

	_, err := buf.WriteTo(writer)
	return err
}

// FrameReader is a source of frames, such as a socket or a capture file.
// ReadFrame returns io.EOF once the source is exhausted.
type FrameReader interface {
	ReadFrame() (*Frame, error)
}

// Reader reads frames from a byte stream.
type Reader struct {
	r        *bufio.Reader
	frameMax uint32
}

// NewReader returns a Reader over r. frameMax limits the size of accepted
// frames; zero disables the check.
func NewReader(r io.Reader, frameMax uint32) *Reader {
	return &Reader{r: bufio.NewReader(r), frameMax: frameMax}
}

// ReadFrame reads the next frame from the stream
func (r *Reader) ReadFrame() (*Frame, error) {
	return ReadFrameMax(r.r, r.frameMax)
}
