package protocol

import (
	"fmt"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Method is implemented by every concrete AMQP method type in this package.
// The set is closed: the unexported codec hooks keep outside packages from
// adding variants the registry does not know about.
type Method interface {
	ClassID() uint16
	MethodID() uint16
	// Name returns the dotted protocol name, e.g. "queue.declare-ok"
	Name() string
	// HasContent reports whether a content header and body follow the method
	HasContent() bool

	write(e *encoder)
	read(d *decoder)
}

// IncomingMethod is a method the broker sends to the client.
type IncomingMethod interface {
	Method
	// Decode fills the receiver from a raw method record. It fails when the
	// record carries another method's id or malformed arguments.
	Decode(raw RawMethod) error
}

// OutgoingMethod is a method the client sends to the broker.
type OutgoingMethod interface {
	Method
	// Send encodes the method and hands it to the sender. Sender errors are
	// returned unchanged.
	Send(s Sender) error
}

// Sender transmits encoded commands on one channel.
type Sender interface {
	// SendMethod writes a single method frame
	SendMethod(payload []byte) error
	// SendContent writes a method frame, its content header frame and as many
	// body frames as the body needs
	SendContent(method, header, body []byte) error
}

// ContentHeader is the decoded content header that follows a content-bearing
// method.
type ContentHeader interface {
	ClassID() uint16
	ClassName() string
	BodySize() uint64

	write(e *encoder)
}

// EncodeMethod returns the method frame payload for m:
// (2-byte class) + (2-byte method) + arguments
func EncodeMethod(m Method) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	e := newEncoder(buf)
	e.short(m.ClassID())
	e.short(m.MethodID())
	m.write(e)
	if e.err != nil {
		return nil, fmt.Errorf("encoding %s: %w", m.Name(), e.err)
	}

	payload := make([]byte, buf.Len())
	copy(payload, buf.Bytes())
	return payload, nil
}

// EncodeHeader returns the content header frame payload for h.
func EncodeHeader(h ContentHeader) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	e := newEncoder(buf)
	e.short(h.ClassID())
	h.write(e)
	if e.err != nil {
		return nil, fmt.Errorf("encoding %s content header: %w", h.ClassName(), e.err)
	}

	payload := make([]byte, buf.Len())
	copy(payload, buf.Bytes())
	return payload, nil
}

// DecodeMethodInto decodes raw into m after checking that raw carries m's id.
// Arguments beyond the last field of m are ignored.
func DecodeMethodInto(raw RawMethod, m Method) error {
	classID, methodID := SplitMethodKey(raw.ID)
	if raw.ID != MethodKey(m.ClassID(), m.MethodID()) {
		message := fmt.Sprintf("method %d.%d cannot be decoded as %s", classID, methodID, m.Name())
		return amqperrors.NewProtocolError(amqperrors.CommandInvalid, message, FrameMethod, classID, methodID)
	}

	d := newDecoder(raw.Args)
	m.read(d)
	if d.err != nil {
		return amqperrors.NewMethodSyntaxError(m.Name(), classID, methodID, d.err)
	}
	return nil
}

func sendMethod(s Sender, m Method) error {
	payload, err := EncodeMethod(m)
	if err != nil {
		return err
	}
	return s.SendMethod(payload)
}

func sendContent(s Sender, m Method, h ContentHeader, body []byte) error {
	method, err := EncodeMethod(m)
	if err != nil {
		return err
	}
	header, err := EncodeHeader(h)
	if err != nil {
		return err
	}
	return s.SendContent(method, header, body)
}
