package protocol

// ChannelOpenMethod represents the channel.open method
type ChannelOpenMethod struct {
	Reserved1 string
}

func (m *ChannelOpenMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelOpenMethod) MethodID() uint16 { return ChannelOpen }
func (m *ChannelOpenMethod) Name() string     { return "channel.open" }
func (m *ChannelOpenMethod) HasContent() bool { return false }

func (m *ChannelOpenMethod) write(e *encoder) {
	e.shortstr(m.Reserved1)
}

func (m *ChannelOpenMethod) read(d *decoder) {
	m.Reserved1 = d.shortstr()
}

func (m *ChannelOpenMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// ChannelOpenOKMethod represents the channel.open-ok method
type ChannelOpenOKMethod struct {
	Reserved1 string
}

func (m *ChannelOpenOKMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelOpenOKMethod) MethodID() uint16 { return ChannelOpenOK }
func (m *ChannelOpenOKMethod) Name() string     { return "channel.open-ok" }
func (m *ChannelOpenOKMethod) HasContent() bool { return false }

func (m *ChannelOpenOKMethod) write(e *encoder) {
	e.longstr(m.Reserved1)
}

func (m *ChannelOpenOKMethod) read(d *decoder) {
	m.Reserved1 = d.longstr()
}

func (m *ChannelOpenOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

// ChannelCloseMethod represents the channel.close method. The broker sends it
// to close a channel on error; the client sends it for an orderly shutdown.
type ChannelCloseMethod struct {
	ReplyCode     uint16
	ReplyText     string
	CauseClassID  uint16 // class of the method that caused the close
	CauseMethodID uint16
}

func (m *ChannelCloseMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelCloseMethod) MethodID() uint16 { return ChannelClose }
func (m *ChannelCloseMethod) Name() string     { return "channel.close" }
func (m *ChannelCloseMethod) HasContent() bool { return false }

func (m *ChannelCloseMethod) write(e *encoder) {
	e.short(m.ReplyCode)
	e.shortstr(m.ReplyText)
	e.short(m.CauseClassID)
	e.short(m.CauseMethodID)
}

func (m *ChannelCloseMethod) read(d *decoder) {
	m.ReplyCode = d.short()
	m.ReplyText = d.shortstr()
	m.CauseClassID = d.short()
	m.CauseMethodID = d.short()
}

func (m *ChannelCloseMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

func (m *ChannelCloseMethod) Send(s Sender) error {
	return sendMethod(s, m)
}

// ChannelCloseOKMethod represents the channel.close-ok method
type ChannelCloseOKMethod struct{}

func (m *ChannelCloseOKMethod) ClassID() uint16  { return ClassChannel }
func (m *ChannelCloseOKMethod) MethodID() uint16 { return ChannelCloseOK }
func (m *ChannelCloseOKMethod) Name() string     { return "channel.close-ok" }
func (m *ChannelCloseOKMethod) HasContent() bool { return false }

func (m *ChannelCloseOKMethod) write(e *encoder) {}
func (m *ChannelCloseOKMethod) read(d *decoder)  {}

func (m *ChannelCloseOKMethod) Decode(raw RawMethod) error {
	return DecodeMethodInto(raw, m)
}

func (m *ChannelCloseOKMethod) Send(s Sender) error {
	return sendMethod(s, m)
}
