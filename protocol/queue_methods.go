package protocol

// QueueDeclareMethod represents the queue.declare method
type QueueDeclareMethod struct {
	Reserved1  uint16
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  Table
}

// NewQueueDeclare builds a queue.declare for a named queue.
func NewQueueDeclare(name string, durable, exclusive, autoDelete bool) *QueueDeclareMethod {
	return &QueueDeclareMethod{
		Queue:      name,
		Durable:    durable,
		Exclusive:  exclusive,
		AutoDelete: autoDelete,
	}
}

// DefaultQueueDeclare asks the broker for a fresh server-named queue that is
// exclusive to this connection and removed when no longer used.
func DefaultQueueDeclare() *QueueDeclareMethod {
	return NewQueueDeclare("", false, true, true)
}

// PassiveQueueDeclare checks that a queue exists without creating it.
func PassiveQueueDeclare(name string) *QueueDeclareMethod {
	return &QueueDeclareMethod{
		Queue:   name,
		Passive: true,
	}
}

func (m *QueueDeclareMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeclareMethod) MethodID() uint16 { return QueueDeclare }
func (m *QueueDeclareMethod) Name() string     { return "queue.declare" }
func (m *QueueDeclareMethod) HasContent() bool { return false }

func (m *QueueDeclareMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.bits(m.Passive, m.Durable, m.Exclusive, m.AutoDelete, m.NoWait)
	e.table(m.Arguments)
}

func (m *QueueDeclareMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	d.bits(&m.Passive, &m.Durable, &m.Exclusive, &m.AutoDelete, &m.NoWait)
	m.Arguments = d.table()
}

func (m *QueueDeclareMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// QueueDeclareOKMethod represents the queue.declare-ok method
type QueueDeclareOKMethod struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (m *QueueDeclareOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeclareOKMethod) MethodID() uint16 { return QueueDeclareOK }
func (m *QueueDeclareOKMethod) Name() string     { return "queue.declare-ok" }
func (m *QueueDeclareOKMethod) HasContent() bool { return false }

func (m *QueueDeclareOKMethod) write(e *encoder) {
	e.shortstr(m.Queue)
	e.long(m.MessageCount)
	e.long(m.ConsumerCount)
}

func (m *QueueDeclareOKMethod) read(d *decoder) {
	m.Queue = d.shortstr()
	m.MessageCount = d.long()
	m.ConsumerCount = d.long()
}

func (m *QueueDeclareOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// QueueBindMethod represents the queue.bind method
type QueueBindMethod struct {
	Reserved1  uint16
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  Table
}

func (m *QueueBindMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueBindMethod) MethodID() uint16 { return QueueBind }
func (m *QueueBindMethod) Name() string     { return "queue.bind" }
func (m *QueueBindMethod) HasContent() bool { return false }

func (m *QueueBindMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.shortstr(m.Exchange)
	e.shortstr(m.RoutingKey)
	e.bits(m.NoWait)
	e.table(m.Arguments)
}

func (m *QueueBindMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	m.Exchange = d.shortstr()
	m.RoutingKey = d.shortstr()
	d.bits(&m.NoWait)
	m.Arguments = d.table()
}

func (m *QueueBindMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// QueueBindOKMethod represents the queue.bind-ok method
type QueueBindOKMethod struct{}

func (m *QueueBindOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueBindOKMethod) MethodID() uint16 { return QueueBindOK }
func (m *QueueBindOKMethod) Name() string     { return "queue.bind-ok" }
func (m *QueueBindOKMethod) HasContent() bool { return false }

func (m *QueueBindOKMethod) write(e *encoder) {}
func (m *QueueBindOKMethod) read(d *decoder)  {}

func (m *QueueBindOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// QueuePurgeMethod represents the queue.purge method
type QueuePurgeMethod struct {
	Reserved1 uint16
	Queue     string
	NoWait    bool
}

func (m *QueuePurgeMethod) ClassID() uint16  { return ClassQueue }
func (m *QueuePurgeMethod) MethodID() uint16 { return QueuePurge }
func (m *QueuePurgeMethod) Name() string     { return "queue.purge" }
func (m *QueuePurgeMethod) HasContent() bool { return false }

func (m *QueuePurgeMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.bits(m.NoWait)
}

func (m *QueuePurgeMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	d.bits(&m.NoWait)
}

func (m *QueuePurgeMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// QueuePurgeOKMethod represents the queue.purge-ok method
type QueuePurgeOKMethod struct {
	MessageCount uint32
}

func (m *QueuePurgeOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueuePurgeOKMethod) MethodID() uint16 { return QueuePurgeOK }
func (m *QueuePurgeOKMethod) Name() string     { return "queue.purge-ok" }
func (m *QueuePurgeOKMethod) HasContent() bool { return false }

func (m *QueuePurgeOKMethod) write(e *encoder) {
	e.long(m.MessageCount)
}

func (m *QueuePurgeOKMethod) read(d *decoder) {
	m.MessageCount = d.long()
}

func (m *QueuePurgeOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// QueueDeleteMethod represents the queue.delete method
type QueueDeleteMethod struct {
	Reserved1 uint16
	Queue     string
	IfUnused  bool
	IfEmpty   bool
	NoWait    bool
}

func (m *QueueDeleteMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeleteMethod) MethodID() uint16 { return QueueDelete }
func (m *QueueDeleteMethod) Name() string     { return "queue.delete" }
func (m *QueueDeleteMethod) HasContent() bool { return false }

func (m *QueueDeleteMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.bits(m.IfUnused, m.IfEmpty, m.NoWait)
}

func (m *QueueDeleteMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	d.bits(&m.IfUnused, &m.IfEmpty, &m.NoWait)
}

func (m *QueueDeleteMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// QueueDeleteOKMethod represents the queue.delete-ok method
type QueueDeleteOKMethod struct {
	MessageCount uint32
}

func (m *QueueDeleteOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueDeleteOKMethod) MethodID() uint16 { return QueueDeleteOK }
func (m *QueueDeleteOKMethod) Name() string     { return "queue.delete-ok" }
func (m *QueueDeleteOKMethod) HasContent() bool { return false }

func (m *QueueDeleteOKMethod) write(e *encoder) {
	e.long(m.MessageCount)
}

func (m *QueueDeleteOKMethod) read(d *decoder) {
	m.MessageCount = d.long()
}

func (m *QueueDeleteOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// QueueUnbindMethod represents the queue.unbind method. Unlike queue.bind it
// has no no-wait flag.
type QueueUnbindMethod struct {
	Reserved1  uint16
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  Table
}

func (m *QueueUnbindMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueUnbindMethod) MethodID() uint16 { return QueueUnbind }
func (m *QueueUnbindMethod) Name() string     { return "queue.unbind" }
func (m *QueueUnbindMethod) HasContent() bool { return false }

func (m *QueueUnbindMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Queue)
	e.shortstr(m.Exchange)
	e.shortstr(m.RoutingKey)
	e.table(m.Arguments)
}

func (m *QueueUnbindMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Queue = d.shortstr()
	m.Exchange = d.shortstr()
	m.RoutingKey = d.shortstr()
	m.Arguments = d.table()
}

func (m *QueueUnbindMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// QueueUnbindOKMethod represents the queue.unbind-ok method
type QueueUnbindOKMethod struct{}

func (m *QueueUnbindOKMethod) ClassID() uint16  { return ClassQueue }
func (m *QueueUnbindOKMethod) MethodID() uint16 { return QueueUnbindOK }
func (m *QueueUnbindOKMethod) Name() string     { return "queue.unbind-ok" }
func (m *QueueUnbindOKMethod) HasContent() bool { return false }

func (m *QueueUnbindOKMethod) write(e *encoder) {}
func (m *QueueUnbindOKMethod) read(d *decoder)  {}

func (m *QueueUnbindOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}
