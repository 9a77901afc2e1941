package protocol

import (
	"fmt"
	"time"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// Property flags for AMQP content header
const (
	FlagContentType     = 0x8000
	FlagContentEncoding = 0x4000
	FlagHeaders         = 0x2000
	FlagDeliveryMode    = 0x1000
	FlagPriority        = 0x0800
	FlagCorrelationID   = 0x0400
	FlagReplyTo         = 0x0200
	FlagExpiration      = 0x0100
	FlagMessageID       = 0x0080
	FlagTimestamp       = 0x0040
	FlagType            = 0x0020
	FlagUserID          = 0x0010
	FlagAppID           = 0x0008
	FlagClusterID       = 0x0004

	// flagContinuation announces a second flags word. Class basic never
	// needs one.
	flagContinuation = 0x0001
)

// BasicProperties are the message properties of class basic. A property is
// present on the wire when its field holds a non-zero value (Headers: non-nil).
type BasicProperties struct {
	ContentType     string
	ContentEncoding string
	Headers         Table
	DeliveryMode    uint8 // Transient or Persistent
	Priority        uint8
	CorrelationID   string
	ReplyTo         string
	Expiration      string
	MessageID       string
	Timestamp       time.Time // whole seconds, decoded as UTC
	Type            string
	UserID          string
	AppID           string
	ClusterID       string
}

// Flags returns the property flags word describing which properties are set.
func (p *BasicProperties) Flags() uint16 {
	var flags uint16
	if p.ContentType != "" {
		flags |= FlagContentType
	}
	if p.ContentEncoding != "" {
		flags |= FlagContentEncoding
	}
	if p.Headers != nil {
		flags |= FlagHeaders
	}
	if p.DeliveryMode != 0 {
		flags |= FlagDeliveryMode
	}
	if p.Priority != 0 {
		flags |= FlagPriority
	}
	if p.CorrelationID != "" {
		flags |= FlagCorrelationID
	}
	if p.ReplyTo != "" {
		flags |= FlagReplyTo
	}
	if p.Expiration != "" {
		flags |= FlagExpiration
	}
	if p.MessageID != "" {
		flags |= FlagMessageID
	}
	if !p.Timestamp.IsZero() {
		flags |= FlagTimestamp
	}
	if p.Type != "" {
		flags |= FlagType
	}
	if p.UserID != "" {
		flags |= FlagUserID
	}
	if p.AppID != "" {
		flags |= FlagAppID
	}
	if p.ClusterID != "" {
		flags |= FlagClusterID
	}
	return flags
}

func (p *BasicProperties) write(e *encoder) {
	flags := p.Flags()
	e.short(flags)

	if flags&FlagContentType != 0 {
		e.shortstr(p.ContentType)
	}
	if flags&FlagContentEncoding != 0 {
		e.shortstr(p.ContentEncoding)
	}
	if flags&FlagHeaders != 0 {
		e.table(p.Headers)
	}
	if flags&FlagDeliveryMode != 0 {
		e.octet(p.DeliveryMode)
	}
	if flags&FlagPriority != 0 {
		e.octet(p.Priority)
	}
	if flags&FlagCorrelationID != 0 {
		e.shortstr(p.CorrelationID)
	}
	if flags&FlagReplyTo != 0 {
		e.shortstr(p.ReplyTo)
	}
	if flags&FlagExpiration != 0 {
		e.shortstr(p.Expiration)
	}
	if flags&FlagMessageID != 0 {
		e.shortstr(p.MessageID)
	}
	if flags&FlagTimestamp != 0 {
		e.timestamp(p.Timestamp)
	}
	if flags&FlagType != 0 {
		e.shortstr(p.Type)
	}
	if flags&FlagUserID != 0 {
		e.shortstr(p.UserID)
	}
	if flags&FlagAppID != 0 {
		e.shortstr(p.AppID)
	}
	if flags&FlagClusterID != 0 {
		e.shortstr(p.ClusterID)
	}
}

func (p *BasicProperties) read(flags uint16, d *decoder) {
	if flags&FlagContentType != 0 {
		p.ContentType = d.shortstr()
	}
	if flags&FlagContentEncoding != 0 {
		p.ContentEncoding = d.shortstr()
	}
	if flags&FlagHeaders != 0 {
		p.Headers = d.table()
		if p.Headers == nil && d.err == nil {
			// present but empty
			p.Headers = Table{}
		}
	}
	if flags&FlagDeliveryMode != 0 {
		p.DeliveryMode = d.octet()
	}
	if flags&FlagPriority != 0 {
		p.Priority = d.octet()
	}
	if flags&FlagCorrelationID != 0 {
		p.CorrelationID = d.shortstr()
	}
	if flags&FlagReplyTo != 0 {
		p.ReplyTo = d.shortstr()
	}
	if flags&FlagExpiration != 0 {
		p.Expiration = d.shortstr()
	}
	if flags&FlagMessageID != 0 {
		p.MessageID = d.shortstr()
	}
	if flags&FlagTimestamp != 0 {
		p.Timestamp = d.timestamp()
	}
	if flags&FlagType != 0 {
		p.Type = d.shortstr()
	}
	if flags&FlagUserID != 0 {
		p.UserID = d.shortstr()
	}
	if flags&FlagAppID != 0 {
		p.AppID = d.shortstr()
	}
	if flags&FlagClusterID != 0 {
		p.ClusterID = d.shortstr()
	}
}

// BasicHeader is the content header of class basic.
type BasicHeader struct {
	Weight     uint16
	Size       uint64
	Properties BasicProperties
}

func (h *BasicHeader) ClassID() uint16   { return ClassBasic }
func (h *BasicHeader) ClassName() string { return "basic" }
func (h *BasicHeader) BodySize() uint64  { return h.Size }

func (h *BasicHeader) write(e *encoder) {
	e.short(h.Weight)
	e.longlong(h.Size)
	h.Properties.write(e)
}

// Decode fills the header from a raw content header record.
func (h *BasicHeader) Decode(raw RawHeader) error {
	if raw.ClassID != ClassBasic {
		return amqperrors.NewProtocolError(amqperrors.CommandInvalid,
			fmt.Sprintf("content header of class %d cannot be decoded as basic", raw.ClassID), FrameHeader, raw.ClassID, 0)
	}
	if raw.PropertyFlags&flagContinuation != 0 {
		return amqperrors.NewSyntaxError("basic property flags must not carry a continuation")
	}

	h.Weight = raw.Weight
	h.Size = raw.BodySize
	h.Properties = BasicProperties{}

	d := newDecoder(raw.Properties)
	h.Properties.read(raw.PropertyFlags, d)
	if d.err != nil {
		return fmt.Errorf("decoding basic content header: %w", d.err)
	}
	return nil
}
