// Package command reassembles AMQP 0-9-1 commands from the frames of one
// channel. A command is a method frame, followed for content-bearing methods
// by a content header frame and as many body frames as the header announces.
package command

import (
	"fmt"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/maxpert/amqp-go-client/protocol"
)

// State is the position of an Assembler within a command
type State int

const (
	ExpectingMethod State = iota
	ExpectingContentHeader
	ExpectingContentBody
	Complete
)

func (s State) String() string {
	switch s {
	case ExpectingMethod:
		return "ExpectingMethod"
	case ExpectingContentHeader:
		return "ExpectingContentHeader"
	case ExpectingContentBody:
		return "ExpectingContentBody"
	case Complete:
		return "Complete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Command is a fully assembled command. Header is nil and Body is empty for
// methods without content.
type Command struct {
	Channel uint16
	Method  protocol.IncomingMethod
	Header  protocol.ContentHeader
	Body    []byte
}

// Assembler collects the frames of a single command. It is single use: once
// Complete, feeding it another frame panics. Callers start a new Assembler
// for the next command.
//
// An Assembler is not safe for concurrent use.
type Assembler struct {
	channel   uint16
	state     State
	method    protocol.IncomingMethod
	header    protocol.ContentHeader
	remaining uint64
	fragments [][]byte
}

// NewAssembler returns an assembler waiting for the method frame of the next
// command on channel.
func NewAssembler(channel uint16) *Assembler {
	return &Assembler{
		channel: channel,
		state:   ExpectingMethod,
	}
}

// HandleFrame feeds the next frame of the command and reports whether the
// command is now complete. A frame that fails leaves the assembler in the
// state it was in before the call. The frame is only borrowed; body bytes are
// copied.
func (a *Assembler) HandleFrame(f *protocol.Frame) (bool, error) {
	if a.state == Complete {
		panic(amqperrors.NewIllegalState("frame of type %d fed to a completed assembler on channel %d", f.Type, a.channel))
	}
	if f.Channel != a.channel {
		message := fmt.Sprintf("frame for channel %d fed to assembler of channel %d", f.Channel, a.channel)
		return false, amqperrors.NewProtocolError(amqperrors.UnexpectedFrame, message, f.Type, 0, 0)
	}

	switch a.state {
	case ExpectingMethod:
		return a.handleMethod(f)
	case ExpectingContentHeader:
		return a.handleHeader(f)
	default:
		return a.handleBody(f)
	}
}

func (a *Assembler) handleMethod(f *protocol.Frame) (bool, error) {
	if f.Type != protocol.FrameMethod {
		return false, amqperrors.NewUnexpectedFrameKind(a.state.String(), protocol.FrameMethod, f.Type)
	}

	raw, err := protocol.ParseMethodRecord(f.Payload)
	if err != nil {
		return false, err
	}
	method, err := protocol.DecodeMethod(raw)
	if err != nil {
		return false, err
	}

	a.method = method
	if method.HasContent() {
		a.state = ExpectingContentHeader
	} else {
		a.state = Complete
	}
	return a.state == Complete, nil
}

func (a *Assembler) handleHeader(f *protocol.Frame) (bool, error) {
	if f.Type != protocol.FrameHeader {
		return false, amqperrors.NewUnexpectedFrameKind(a.state.String(), protocol.FrameHeader, f.Type)
	}

	raw, err := protocol.ParseHeaderRecord(f.Payload)
	if err != nil {
		return false, err
	}
	header, err := protocol.DecodeHeader(raw)
	if err != nil {
		return false, err
	}
	if header.ClassID() != a.method.ClassID() {
		message := fmt.Sprintf("content header of class %d follows %s", header.ClassID(), a.method.Name())
		return false, amqperrors.NewProtocolError(amqperrors.UnexpectedFrame, message, f.Type, header.ClassID(), 0)
	}

	a.header = header
	a.remaining = header.BodySize()
	if a.remaining == 0 {
		a.state = Complete
	} else {
		a.state = ExpectingContentBody
	}
	return a.state == Complete, nil
}

func (a *Assembler) handleBody(f *protocol.Frame) (bool, error) {
	if f.Type != protocol.FrameBody {
		return false, amqperrors.NewUnexpectedFrameKind(a.state.String(), protocol.FrameBody, f.Type)
	}
	if uint64(len(f.Payload)) > a.remaining {
		return false, amqperrors.NewContentOverflow(a.remaining, len(f.Payload))
	}

	if len(f.Payload) > 0 {
		fragment := make([]byte, len(f.Payload))
		copy(fragment, f.Payload)
		a.fragments = append(a.fragments, fragment)
		a.remaining -= uint64(len(fragment))
	}

	if a.remaining == 0 {
		a.state = Complete
	}
	return a.state == Complete, nil
}

// Channel returns the channel this assembler reads frames for
func (a *Assembler) Channel() uint16 {
	return a.channel
}

// State returns the current assembly state
func (a *Assembler) State() State {
	return a.state
}

// IsComplete reports whether every frame of the command has arrived
func (a *Assembler) IsComplete() bool {
	return a.state == Complete
}

// Remaining returns the number of body bytes still expected
func (a *Assembler) Remaining() uint64 {
	return a.remaining
}

// Method returns the decoded method, or nil before the method frame arrived
func (a *Assembler) Method() protocol.IncomingMethod {
	return a.method
}

// ContentHeader returns the decoded content header, or nil when the command
// has none (yet)
func (a *Assembler) ContentHeader() protocol.ContentHeader {
	return a.header
}

// ContentBody returns the body received so far as one contiguous slice.
// Several fragments are merged once into a single allocation; repeated calls
// return the same slice.
func (a *Assembler) ContentBody() []byte {
	switch len(a.fragments) {
	case 0:
		return []byte{}
	case 1:
		return a.fragments[0]
	}

	total := 0
	for _, fragment := range a.fragments {
		total += len(fragment)
	}
	body := make([]byte, 0, total)
	for _, fragment := range a.fragments {
		body = append(body, fragment...)
	}
	a.fragments = [][]byte{body}
	return body
}

// Command returns the assembled command. It panics if the command is not
// complete.
func (a *Assembler) Command() *Command {
	if a.state != Complete {
		panic(amqperrors.NewIllegalState("command on channel %d requested in state %s", a.channel, a.state))
	}
	return &Command{
		Channel: a.channel,
		Method:  a.method,
		Header:  a.header,
		Body:    a.ContentBody(),
	}
}
