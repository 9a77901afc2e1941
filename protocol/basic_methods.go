package protocol

import (
	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// BasicQosMethod represents the basic.qos method
type BasicQosMethod struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (m *BasicQosMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicQosMethod) MethodID() uint16 { return BasicQos }
func (m *BasicQosMethod) Name() string     { return "basic.qos" }
func (m *BasicQosMethod) HasContent() bool { return false }

func (m *BasicQosMethod) write(e *encoder) {
	e.long(m.PrefetchSize)
	e.short(m.PrefetchCount)
	e.bits(m.Global)
}

func (m *BasicQosMethod) read(d *decoder) {
	m.PrefetchSize = d.long()
	m.PrefetchCount = d.short()
	d.bits(&m.Global)
}

func (m *BasicQosMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// BasicQosOKMethod represents the basic.qos-ok method
type BasicQosOKMethod struct{}

func (m *BasicQosOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicQosOKMethod) MethodID() uint16 { return BasicQosOK }
func (m *BasicQosOKMethod) Name() string     { return "basic.qos-ok" }
func (m *BasicQosOKMethod) HasContent() bool { return false }

func (m *BasicQosOKMethod) write(e *encoder) {}
func (m *BasicQosOKMethod) read(d *decoder)  {}

func (m *BasicQosOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicConsumeMethod represents the basic.consume method
type BasicConsumeMethod struct {
	Reserved1   uint16
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Arguments   Table
}

func (m *BasicConsumeMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicConsumeMethod) MethodID() uint16 { return BasicConsume }
func (m *BasicConsumeMethod) Name() string     { return "basic.consume" }
func (m *BasicConsumeMethod) HasContent() bool { return false }

func (m *BasicConsumeMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.shortstr(m.ConsumerTag)
	e.bits(m.NoLocal, m.NoAck, m.Exclusive, m.NoWait)
	e.table(m.Arguments)
}

func (m *BasicConsumeMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	m.ConsumerTag = d.shortstr()
	d.bits(&m.NoLocal, &m.NoAck, &m.Exclusive, &m.NoWait)
	m.Arguments = d.table()
}

func (m *BasicConsumeMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// BasicConsumeOKMethod represents the basic.consume-ok method
type BasicConsumeOKMethod struct {
	ConsumerTag string
}

func (m *BasicConsumeOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicConsumeOKMethod) MethodID() uint16 { return BasicConsumeOK }
func (m *BasicConsumeOKMethod) Name() string     { return "basic.consume-ok" }
func (m *BasicConsumeOKMethod) HasContent() bool { return false }

func (m *BasicConsumeOKMethod) write(e *encoder) {
	e.shortstr(m.ConsumerTag)
}

func (m *BasicConsumeOKMethod) read(d *decoder) {
	m.ConsumerTag = d.shortstr()
}

func (m *BasicConsumeOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicCancelMethod represents the basic.cancel method
type BasicCancelMethod struct {
	ConsumerTag string
	NoWait      bool
}

func (m *BasicCancelMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicCancelMethod) MethodID() uint16 { return BasicCancel }
func (m *BasicCancelMethod) Name() string     { return "basic.cancel" }
func (m *BasicCancelMethod) HasContent() bool { return false }

func (m *BasicCancelMethod) write(e *encoder) {
	e.shortstr(m.ConsumerTag)
	e.bits(m.NoWait)
}

func (m *BasicCancelMethod) read(d *decoder) {
	m.ConsumerTag = d.shortstr()
	d.bits(&m.NoWait)
}

func (m *BasicCancelMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// BasicCancelOKMethod represents the basic.cancel-ok method
type BasicCancelOKMethod struct {
	ConsumerTag string
}

func (m *BasicCancelOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicCancelOKMethod) MethodID() uint16 { return BasicCancelOK }
func (m *BasicCancelOKMethod) Name() string     { return "basic.cancel-ok" }
func (m *BasicCancelOKMethod) HasContent() bool { return false }

func (m *BasicCancelOKMethod) write(e *encoder) {
	e.shortstr(m.ConsumerTag)
}

func (m *BasicCancelOKMethod) read(d *decoder) {
	m.ConsumerTag = d.shortstr()
}

func (m *BasicCancelOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicPublishMethod represents the basic.publish method together with the
// message it carries. Send writes the method, a basic content header built
// from Properties and the body frames for Body.
type BasicPublishMethod struct {
	Reserved1  uint16
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool

	Properties BasicProperties
	Body       []byte
}

func (m *BasicPublishMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicPublishMethod) MethodID() uint16 { return BasicPublish }
func (m *BasicPublishMethod) Name() string     { return "basic.publish" }
func (m *BasicPublishMethod) HasContent() bool { return true }

func (m *BasicPublishMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Exchange)
	e.shortstr(m.RoutingKey)
	e.bits(m.Mandatory, m.Immediate)
}

func (m *BasicPublishMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Exchange = d.shortstr()
	m.RoutingKey = d.shortstr()
	d.bits(&m.Mandatory, &m.Immediate)
}

func (m *BasicPublishMethod) Send(s Sender) error {
	header := &BasicHeader{
		Size:       uint64(len(m.Body)),
		Properties: m.Properties,
	}
	return sendContent(s, m, header, m.Body)
}

// BasicReturnMethod represents the basic.return method
type BasicReturnMethod struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (m *BasicReturnMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicReturnMethod) MethodID() uint16 { return BasicReturn }
func (m *BasicReturnMethod) Name() string     { return "basic.return" }
func (m *BasicReturnMethod) HasContent() bool { return true }

func (m *BasicReturnMethod) write(e *encoder) {
	e.short(m.ReplyCode)
	e.shortstr(m.ReplyText)
	e.shortstr(m.Exchange)
	e.shortstr(m.RoutingKey)
}

func (m *BasicReturnMethod) read(d *decoder) {
	m.ReplyCode = d.short()
	m.ReplyText = d.shortstr()
	m.Exchange = d.shortstr()
	m.RoutingKey = d.shortstr()
}

func (m *BasicReturnMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicDeliverMethod represents the basic.deliver method
type BasicDeliverMethod struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (m *BasicDeliverMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicDeliverMethod) MethodID() uint16 { return BasicDeliver }
func (m *BasicDeliverMethod) Name() string     { return "basic.deliver" }
func (m *BasicDeliverMethod) HasContent() bool { return true }

func (m *BasicDeliverMethod) write(e *encoder) {
	e.shortstr(m.ConsumerTag)
	e.longlong(m.DeliveryTag)
	e.bits(m.Redelivered)
	e.shortstr(m.Exchange)
	e.shortstr(m.RoutingKey)
}

func (m *BasicDeliverMethod) read(d *decoder) {
	m.ConsumerTag = d.shortstr()
	m.DeliveryTag = d.longlong()
	d.bits(&m.Redelivered)
	m.Exchange = d.shortstr()
	m.RoutingKey = d.shortstr()
}

func (m *BasicDeliverMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicGetMethod represents the basic.get method
type BasicGetMethod struct {
	Reserved1 uint16
	Queue     string
	NoAck     bool
}

func (m *BasicGetMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicGetMethod) MethodID() uint16 { return BasicGet }
func (m *BasicGetMethod) Name() string     { return "basic.get" }
func (m *BasicGetMethod) HasContent() bool { return false }

func (m *BasicGetMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.bits(m.NoAck)
}

func (m *BasicGetMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	d.bits(&m.NoAck)
}

func (m *BasicGetMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// BasicGetOKMethod represents the basic.get-ok method
type BasicGetOKMethod struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (m *BasicGetOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicGetOKMethod) MethodID() uint16 { return BasicGetOK }
func (m *BasicGetOKMethod) Name() string     { return "basic.get-ok" }
func (m *BasicGetOKMethod) HasContent() bool { return true }

func (m *BasicGetOKMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bits(m.Redelivered)
	e.shortstr(m.Exchange)
	e.shortstr(m.RoutingKey)
	e.long(m.MessageCount)
}

func (m *BasicGetOKMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong()
	d.bits(&m.Redelivered)
	m.Exchange = d.shortstr()
	m.RoutingKey = d.shortstr()
	m.MessageCount = d.long()
}

func (m *BasicGetOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicGetEmptyMethod represents the basic.get-empty method
type BasicGetEmptyMethod struct {
	Reserved1 string
}

func (m *BasicGetEmptyMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicGetEmptyMethod) MethodID() uint16 { return BasicGetEmpty }
func (m *BasicGetEmptyMethod) Name() string     { return "basic.get-empty" }
func (m *BasicGetEmptyMethod) HasContent() bool { return false }

func (m *BasicGetEmptyMethod) write(e *encoder) {
	e.shortstr(m.Reserved1)
}

func (m *BasicGetEmptyMethod) read(d *decoder) {
	m.Reserved1 = d.shortstr()
}

func (m *BasicGetEmptyMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicAckMethod represents the basic.ack method
type BasicAckMethod struct {
	DeliveryTag uint64
	Multiple    bool
}

func (m *BasicAckMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicAckMethod) MethodID() uint16 { return BasicAck }
func (m *BasicAckMethod) Name() string     { return "basic.ack" }
func (m *BasicAckMethod) HasContent() bool { return false }

func (m *BasicAckMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bits(m.Multiple)
}

func (m *BasicAckMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong()
	d.bits(&m.Multiple)
}

func (m *BasicAckMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// BasicRejectMethod represents the basic.reject method. The client does not
// support sending it; use BasicNackMethod instead.
type BasicRejectMethod struct {
	DeliveryTag uint64
	Requeue     bool
}

func (m *BasicRejectMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRejectMethod) MethodID() uint16 { return BasicReject }
func (m *BasicRejectMethod) Name() string     { return "basic.reject" }
func (m *BasicRejectMethod) HasContent() bool { return false }

func (m *BasicRejectMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bits(m.Requeue)
}

func (m *BasicRejectMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong()
	d.bits(&m.Requeue)
}

// Send always fails with a NotImplemented error and writes nothing.
func (m *BasicRejectMethod) Send(s Sender) error {
	return amqperrors.NewNotImplemented(m.Name())
}

// BasicRecoverMethod represents the basic.recover method
type BasicRecoverMethod struct {
	Requeue bool
}

func (m *BasicRecoverMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRecoverMethod) MethodID() uint16 { return BasicRecover }
func (m *BasicRecoverMethod) Name() string     { return "basic.recover" }
func (m *BasicRecoverMethod) HasContent() bool { return false }

func (m *BasicRecoverMethod) write(e *encoder) {
	e.bits(m.Requeue)
}

func (m *BasicRecoverMethod) read(d *decoder) {
	d.bits(&m.Requeue)
}

func (m *BasicRecoverMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// BasicRecoverOKMethod represents the basic.recover-ok method
type BasicRecoverOKMethod struct{}

func (m *BasicRecoverOKMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicRecoverOKMethod) MethodID() uint16 { return BasicRecoverOK }
func (m *BasicRecoverOKMethod) Name() string     { return "basic.recover-ok" }
func (m *BasicRecoverOKMethod) HasContent() bool { return false }

func (m *BasicRecoverOKMethod) write(e *encoder) {}
func (m *BasicRecoverOKMethod) read(d *decoder)  {}

func (m *BasicRecoverOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// BasicNackMethod represents the basic.nack method
type BasicNackMethod struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (m *BasicNackMethod) ClassID() uint16  { return ClassBasic }
func (m *BasicNackMethod) MethodID() uint16 { return BasicNack }
func (m *BasicNackMethod) Name() string     { return "basic.nack" }
func (m *BasicNackMethod) HasContent() bool { return false }

func (m *BasicNackMethod) write(e *encoder) {
	e.longlong(m.DeliveryTag)
	e.bits(m.Multiple, m.Requeue)
}

func (m *BasicNackMethod) read(d *decoder) {
	m.DeliveryTag = d.longlong()
	d.bits(&m.Multiple, &m.Requeue)
}

func (m *BasicNackMethod) Send(s Sender) error {
	return sendMethod(s, m)
}
