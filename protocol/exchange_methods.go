package protocol

// ExchangeDeclareMethod represents the exchange.declare method
type ExchangeDeclareMethod struct {
	Reserved1  uint16
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  Table
}

func (m *ExchangeDeclareMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeclareMethod) MethodID() uint16 { return ExchangeDeclare }
func (m *ExchangeDeclareMethod) Name() string     { return "exchange.declare" }
func (m *ExchangeDeclareMethod) HasContent() bool { return false }

func (m *ExchangeDeclareMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Exchange)
	e.shortstr(m.Type)
	e.bits(m.Passive, m.Durable, m.AutoDelete, m.Internal, m.NoWait)
	e.table(m.Arguments)
}

func (m *ExchangeDeclareMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Exchange = d.shortstr()
	m.Type = d.shortstr()
	d.bits(&m.Passive, &m.Durable, &m.AutoDelete, &m.Internal, &m.NoWait)
	m.Arguments = d.table()
}

func (m *ExchangeDeclareMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// ExchangeDeclareOKMethod represents the exchange.declare-ok method
type ExchangeDeclareOKMethod struct{}

func (m *ExchangeDeclareOKMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeclareOKMethod) MethodID() uint16 { return ExchangeDeclareOK }
func (m *ExchangeDeclareOKMethod) Name() string     { return "exchange.declare-ok" }
func (m *ExchangeDeclareOKMethod) HasContent() bool { return false }

func (m *ExchangeDeclareOKMethod) write(e *encoder) {}
func (m *ExchangeDeclareOKMethod) read(d *decoder)  {}

func (m *ExchangeDeclareOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// ExchangeDeleteMethod represents the exchange.delete method
type ExchangeDeleteMethod struct {
	Reserved1 uint16
	Exchange  string
	IfUnused  bool
	NoWait    bool
}

func (m *ExchangeDeleteMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeleteMethod) MethodID() uint16 { return ExchangeDelete }
func (m *ExchangeDeleteMethod) Name() string     { return "exchange.delete" }
func (m *ExchangeDeleteMethod) HasContent() bool { return false }

func (m *ExchangeDeleteMethod) write(e *encoder) {
	e.short(m.Reserved1)
	e.shortstr(m.Exchange)
	e.bits(m.IfUnused, m.NoWait)
}

func (m *ExchangeDeleteMethod) read(d *decoder) {
	m.Reserved1 = d.short()
	m.Exchange = d.shortstr()
	d.bits(&m.IfUnused, &m.NoWait)
}

func (m *ExchangeDeleteMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// ExchangeDeleteOKMethod represents the exchange.delete-ok method
type ExchangeDeleteOKMethod struct{}

func (m *ExchangeDeleteOKMethod) ClassID() uint16  { return ClassExchange }
func (m *ExchangeDeleteOKMethod) MethodID() uint16 { return ExchangeDeleteOK }
func (m *ExchangeDeleteOKMethod) Name() string     { return "exchange.delete-ok" }
func (m *ExchangeDeleteOKMethod) HasContent() bool { return false }

func (m *ExchangeDeleteOKMethod) write(e *encoder) {}
func (m *ExchangeDeleteOKMethod) read(d *decoder)  {}

func (m *ExchangeDeleteOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}
